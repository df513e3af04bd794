package handlers

import (
	"github.com/shipdesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadNoteImage 上传备注图片，返回的路径可直接放入备注图片列表
func (h *Handler) UploadNoteImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "缺少上传文件")
		return
	}
	path, err := h.UploadService.SaveNoteImage(file)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, gin.H{"path": path})
}
