package models

import "time"

// PartialShipmentItem 托运物品明细
type PartialShipmentItem struct {
	ID                uint      `json:"id"`                           // 主键
	PartialShipmentID uint      `json:"partial_shipment_id"`          // 所属部分托运
	Description       string    `json:"description"`                  // 物品描述
	Quantity          int       `json:"quantity"`                     // 数量
	CreatedByUserID   *uint     `json:"created_by_user_id,omitempty"` // 创建人
	UpdatedByUserID   *uint     `json:"updated_by_user_id,omitempty"` // 最后更新人
	CreatedAt         time.Time `json:"created_at"`                   // 创建时间
	UpdatedAt         time.Time `json:"updated_at"`                   // 更新时间
}
