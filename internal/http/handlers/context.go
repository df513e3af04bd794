package handlers

import (
	"strconv"
	"strings"

	"github.com/shipdesk/internal/http/response"
	"github.com/shipdesk/internal/repository"

	"github.com/gin-gonic/gin"
)

// currentUserID 读取上下文中的当前用户 ID，匿名访问返回 nil
func currentUserID(c *gin.Context) *uint {
	value, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	switch v := value.(type) {
	case uint:
		return &v
	case int:
		if v < 0 {
			return nil
		}
		id := uint(v)
		return &id
	case float64:
		if v < 0 {
			return nil
		}
		id := uint(v)
		return &id
	default:
		return nil
	}
}

// parseIDParam 解析路径中的数字主键，非法时写出 400 并返回 false
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "非法的 ID: "+raw)
		return 0, false
	}
	return uint(id), true
}

// hydrateOptionsFromQuery 从 include 查询参数解析装配选项
// 形如 include=customer,shipment,partials,packages,items,note
func hydrateOptionsFromQuery(c *gin.Context) repository.HydrateOptions {
	var opts repository.HydrateOptions
	raw := c.Query("include")
	if raw == "" {
		return opts
	}
	for _, part := range strings.Split(raw, ",") {
		switch strings.TrimSpace(strings.ToLower(part)) {
		case "customer":
			opts.IncludeCustomer = true
		case "shipment":
			opts.IncludeShipment = true
		case "partials":
			opts.IncludePartials = true
		case "packages":
			opts.IncludePackages = true
		case "items":
			opts.IncludeItems = true
		case "note":
			opts.IncludeNote = true
		}
	}
	return opts
}
