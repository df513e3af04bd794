package models

import "time"

// Customer 客户
type Customer struct {
	ID              uint      `json:"id"`                           // 主键
	Name            string    `json:"name"`                         // 姓名
	Phone           string    `json:"phone,omitempty"`              // 电话
	Address         string    `json:"address,omitempty"`            // 地址
	Origin          string    `json:"origin,omitempty"`             // 客户来源
	Balance         float64   `json:"balance"`                      // 余额（有符号累计值，仅通过原子自增修改）
	NoteID          *uint     `json:"note_id,omitempty"`            // 备注 ID
	CreatedByUserID *uint     `json:"created_by_user_id,omitempty"` // 创建人
	UpdatedByUserID *uint     `json:"updated_by_user_id,omitempty"` // 最后更新人
	CreatedAt       time.Time `json:"created_at"`                   // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`                   // 更新时间
}
