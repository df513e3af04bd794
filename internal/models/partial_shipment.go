package models

import "time"

// PartialShipment 部分托运（某客户在一个批次内的托运单）
type PartialShipment struct {
	ID              uint      `json:"id"`                           // 主键
	ShipmentID      uint      `json:"shipment_id"`                  // 所属批次
	CustomerID      uint      `json:"customer_id"`                  // 所属客户
	Cost            float64   `json:"cost"`                         // 运费
	DiscountAmount  float64   `json:"discount_amount"`              // 折扣金额
	ExtraCostAmount float64   `json:"extra_cost_amount"`            // 附加费用
	AmountPaid      float64   `json:"amount_paid"`                  // 已付金额
	PaymentStatus   string    `json:"payment_status"`               // 付款状态
	NoteID          *uint     `json:"note_id,omitempty"`            // 备注 ID
	ReceiverName    *string   `json:"receiver_name,omitempty"`      // 收货人姓名
	ReceiverPhone   *string   `json:"receiver_phone,omitempty"`     // 收货人电话
	CreatedByUserID *uint     `json:"created_by_user_id,omitempty"` // 创建人
	UpdatedByUserID *uint     `json:"updated_by_user_id,omitempty"` // 最后更新人
	CreatedAt       time.Time `json:"created_at"`                   // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`                   // 更新时间
}

// Revenue 应收金额（运费 + 附加费用 - 折扣）
func (p PartialShipment) Revenue() float64 {
	return p.Cost + p.ExtraCostAmount - p.DiscountAmount
}

// Outstanding 未结金额
func (p PartialShipment) Outstanding() float64 {
	return p.Revenue() - p.AmountPaid
}
