package handlers

import (
	"strconv"

	"github.com/shipdesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboard 仪表盘汇总。refresh=true 跳过缓存强制重算。
func (h *Handler) GetDashboard(c *gin.Context) {
	forceRefresh, _ := strconv.ParseBool(c.DefaultQuery("refresh", "false"))
	overview, err := h.DashboardService.Overview(c.Request.Context(), forceRefresh)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, overview)
}
