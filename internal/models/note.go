package models

import "time"

// Note 备注
// 一条备注只属于一个拥有者（客户 / 批次 / 部分托运），通过拥有者记录上的 note_id 关联。
type Note struct {
	ID        uint      `json:"id"`                // 主键
	Content   string    `json:"content,omitempty"` // 文本内容
	Images    []string  `json:"images"`            // 图片地址列表（有序）
	UserID    *uint     `json:"user_id,omitempty"` // 作者
	CreatedAt time.Time `json:"created_at"`        // 创建时间
	UpdatedAt time.Time `json:"updated_at"`        // 更新时间
}
