package handlers

import (
	"github.com/shipdesk/internal/http/response"
	"github.com/shipdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// PartialShipmentCreateRequest 创建部分托运请求
type PartialShipmentCreateRequest struct {
	ShipmentID      uint     `json:"shipment_id" binding:"required"`
	CustomerID      uint     `json:"customer_id" binding:"required"`
	Cost            float64  `json:"cost"`
	DiscountAmount  float64  `json:"discount_amount"`
	ExtraCostAmount float64  `json:"extra_cost_amount"`
	ReceiverName    *string  `json:"receiver_name"`
	ReceiverPhone   *string  `json:"receiver_phone"`
	NoteContent     string   `json:"note_content"`
	NoteImages      []string `json:"note_images"`
}

// PartialShipmentUpdateRequest 更新部分托运请求
type PartialShipmentUpdateRequest struct {
	Cost            *float64 `json:"cost"`
	DiscountAmount  *float64 `json:"discount_amount"`
	ExtraCostAmount *float64 `json:"extra_cost_amount"`
	AmountPaid      *float64 `json:"amount_paid"`
	PaymentStatus   *string  `json:"payment_status"`
	ReceiverName    *string  `json:"receiver_name"`
	ReceiverPhone   *string  `json:"receiver_phone"`
}

// PackageRequest 包裹请求
type PackageRequest struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
	Units  int     `json:"units"`
}

// ItemRequest 货物明细请求
type ItemRequest struct {
	Description string `json:"description" binding:"required"`
	Quantity    int    `json:"quantity"`
}

// ListPartialShipments 部分托运列表
func (h *Handler) ListPartialShipments(c *gin.Context) {
	partials, err := h.PartialShipmentService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, partials)
}

// GetPartialShipment 部分托运详情（支持 include 装配）
func (h *Handler) GetPartialShipment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.PartialShipmentService.Get(c.Request.Context(), id, hydrateOptionsFromQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// CreatePartialShipment 创建部分托运
func (h *Handler) CreatePartialShipment(c *gin.Context) {
	var req PartialShipmentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	partial, err := h.PartialShipmentService.Create(c.Request.Context(), service.CreatePartialShipmentInput{
		ShipmentID:      req.ShipmentID,
		CustomerID:      req.CustomerID,
		Cost:            req.Cost,
		DiscountAmount:  req.DiscountAmount,
		ExtraCostAmount: req.ExtraCostAmount,
		ReceiverName:    req.ReceiverName,
		ReceiverPhone:   req.ReceiverPhone,
		Note: service.NoteInput{
			Content: req.NoteContent,
			Images:  req.NoteImages,
		},
	}, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, partial)
}

// UpdatePartialShipment 更新部分托运
func (h *Handler) UpdatePartialShipment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req PartialShipmentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	partial, err := h.PartialShipmentService.Update(c.Request.Context(), id, service.UpdatePartialShipmentInput{
		Cost:            req.Cost,
		DiscountAmount:  req.DiscountAmount,
		ExtraCostAmount: req.ExtraCostAmount,
		AmountPaid:      req.AmountPaid,
		PaymentStatus:   req.PaymentStatus,
		ReceiverName:    req.ReceiverName,
		ReceiverPhone:   req.ReceiverPhone,
	}, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, partial)
}

// UpdatePartialShipmentNote 更新或挂接部分托运备注
func (h *Handler) UpdatePartialShipmentNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req NoteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	partial, err := h.PartialShipmentService.UpdateNote(c.Request.Context(), id, service.NoteInput{
		Content: req.Content,
		Images:  req.Images,
	}, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, partial)
}

// DeletePartialShipment 删除部分托运（级联包裹与明细）
func (h *Handler) DeletePartialShipment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.PartialShipmentService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "已删除", nil)
}

// AddPackage 添加包裹
func (h *Handler) AddPackage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	pkg, err := h.PartialShipmentService.AddPackage(c.Request.Context(), id, service.PackageInput{
		Length: req.Length,
		Width:  req.Width,
		Height: req.Height,
		Weight: req.Weight,
		Units:  req.Units,
	}, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, pkg)
}

// UpdatePackage 更新包裹
func (h *Handler) UpdatePackage(c *gin.Context) {
	packageID, ok := parseIDParam(c, "package_id")
	if !ok {
		return
	}
	var req PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	pkg, err := h.PartialShipmentService.UpdatePackage(c.Request.Context(), packageID, service.PackageInput{
		Length: req.Length,
		Width:  req.Width,
		Height: req.Height,
		Weight: req.Weight,
		Units:  req.Units,
	}, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, pkg)
}

// DeletePackage 删除包裹
func (h *Handler) DeletePackage(c *gin.Context) {
	packageID, ok := parseIDParam(c, "package_id")
	if !ok {
		return
	}
	if err := h.PartialShipmentService.DeletePackage(c.Request.Context(), packageID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "已删除", nil)
}

// AddItem 添加货物明细
func (h *Handler) AddItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	item, err := h.PartialShipmentService.AddItem(c.Request.Context(), id, service.ItemInput{
		Description: req.Description,
		Quantity:    req.Quantity,
	}, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, item)
}

// UpdateItem 更新货物明细
func (h *Handler) UpdateItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	item, err := h.PartialShipmentService.UpdateItem(c.Request.Context(), itemID, service.ItemInput{
		Description: req.Description,
		Quantity:    req.Quantity,
	}, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, item)
}

// DeleteItem 删除货物明细
func (h *Handler) DeleteItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}
	if err := h.PartialShipmentService.DeleteItem(c.Request.Context(), itemID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "已删除", nil)
}
