// Package handlers 路由处理器，把 HTTP 请求翻译为服务调用。
package handlers

import "github.com/shipdesk/internal/provider"

// Handler 接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
