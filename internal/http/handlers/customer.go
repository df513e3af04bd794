package handlers

import (
	"github.com/shipdesk/internal/http/response"
	"github.com/shipdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// CustomerCreateRequest 创建客户请求
type CustomerCreateRequest struct {
	Name        string   `json:"name" binding:"required"`
	Phone       string   `json:"phone"`
	Address     string   `json:"address"`
	Origin      string   `json:"origin"`
	NoteContent string   `json:"note_content"`
	NoteImages  []string `json:"note_images"`
}

// CustomerUpdateRequest 更新客户请求
type CustomerUpdateRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Origin  *string `json:"origin"`
}

// NoteUpdateRequest 备注更新请求
type NoteUpdateRequest struct {
	Content string   `json:"content"`
	Images  []string `json:"images"`
}

// BalanceAdjustRequest 余额调整请求
type BalanceAdjustRequest struct {
	Delta float64 `json:"delta"`
}

// ListCustomers 客户列表
func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.CustomerService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, customers)
}

// GetCustomer 客户详情（支持 include 装配）
func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.CustomerService.Get(c.Request.Context(), id, hydrateOptionsFromQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// CreateCustomer 创建客户
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req CustomerCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	customer, err := h.CustomerService.Create(c.Request.Context(), service.CreateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Origin:  req.Origin,
		Note: service.NoteInput{
			Content: req.NoteContent,
			Images:  req.NoteImages,
		},
	}, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, customer)
}

// UpdateCustomer 更新客户
func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CustomerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	customer, err := h.CustomerService.Update(c.Request.Context(), id, service.UpdateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Origin:  req.Origin,
	}, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, customer)
}

// UpdateCustomerNote 更新或挂接客户备注
func (h *Handler) UpdateCustomerNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req NoteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	customer, err := h.CustomerService.UpdateNote(c.Request.Context(), id, service.NoteInput{
		Content: req.Content,
		Images:  req.Images,
	}, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, customer)
}

// AdjustCustomerBalance 原子调整客户余额
func (h *Handler) AdjustCustomerBalance(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req BalanceAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}
	customer, err := h.CustomerService.AdjustBalance(c.Request.Context(), id, req.Delta)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, customer)
}

// DeleteCustomer 删除客户
func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CustomerService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "已删除", nil)
}
