package handlers

import (
	"github.com/shipdesk/internal/http/response"
	"github.com/shipdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// ShipmentCreateRequest 创建批次请求
type ShipmentCreateRequest struct {
	Destination   string   `json:"destination" binding:"required"`
	DriverName    *string  `json:"driver_name"`
	DriverVehicle *string  `json:"driver_vehicle"`
	NoteContent   string   `json:"note_content"`
	NoteImages    []string `json:"note_images"`
}

// ShipmentUpdateRequest 更新批次请求
type ShipmentUpdateRequest struct {
	Destination   *string `json:"destination"`
	DriverName    *string `json:"driver_name"`
	DriverVehicle *string `json:"driver_vehicle"`
}

// TransferRequest 部分托运转移请求
type TransferRequest struct {
	PartialShipmentID uint `json:"partial_shipment_id" binding:"required"`
	TargetShipmentID  uint `json:"target_shipment_id" binding:"required"`
}

// ListShipments 批次列表
func (h *Handler) ListShipments(c *gin.Context) {
	shipments, err := h.ShipmentService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, shipments)
}

// GetShipment 批次详情（支持 include 装配）
func (h *Handler) GetShipment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.ShipmentService.Get(c.Request.Context(), id, hydrateOptionsFromQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// CreateShipment 创建批次
func (h *Handler) CreateShipment(c *gin.Context) {
	var req ShipmentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	shipment, err := h.ShipmentService.Create(c.Request.Context(), service.CreateShipmentInput{
		Destination:   req.Destination,
		DriverName:    req.DriverName,
		DriverVehicle: req.DriverVehicle,
		Note: service.NoteInput{
			Content: req.NoteContent,
			Images:  req.NoteImages,
		},
	}, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, shipment)
}

// UpdateShipment 更新批次
func (h *Handler) UpdateShipment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ShipmentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	shipment, err := h.ShipmentService.Update(c.Request.Context(), id, service.UpdateShipmentInput{
		Destination:   req.Destination,
		DriverName:    req.DriverName,
		DriverVehicle: req.DriverVehicle,
	}, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, shipment)
}

// CloseShipment 关闭批次
func (h *Handler) CloseShipment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	shipment, err := h.ShipmentService.Close(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, shipment)
}

// ReopenShipment 重新开放批次
func (h *Handler) ReopenShipment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	shipment, err := h.ShipmentService.Reopen(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, shipment)
}

// UpdateShipmentNote 更新或挂接批次备注
func (h *Handler) UpdateShipmentNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req NoteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	shipment, err := h.ShipmentService.UpdateNote(c.Request.Context(), id, service.NoteInput{
		Content: req.Content,
		Images:  req.Images,
	}, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, shipment)
}

// TransferPartialShipment 把部分托运从本批次转移到目标批次
func (h *Handler) TransferPartialShipment(c *gin.Context) {
	sourceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	partial, err := h.ShipmentService.Transfer(c.Request.Context(), req.PartialShipmentID, sourceID, req.TargetShipmentID, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, partial)
}

// DeleteShipment 删除批次
func (h *Handler) DeleteShipment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ShipmentService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "已删除", nil)
}
