package models

import (
	"time"

	"github.com/shipdesk/internal/constants"
)

// Shipment 发运批次
// TotalWeight / TotalVolume 为包含的所有部分托运的包裹合计，作为缓存的派生值随写入维护。
type Shipment struct {
	ID              uint       `json:"id"`                           // 主键
	Destination     string     `json:"destination"`                  // 目的地
	DateCreated     time.Time  `json:"date_created"`                 // 开启时间
	DateClosed      *time.Time `json:"date_closed,omitempty"`        // 关闭时间
	IsOpen          bool       `json:"is_open"`                      // 是否开放（开放批次才接受转移）
	TotalWeight     float64    `json:"total_weight"`                 // 总重量
	TotalVolume     float64    `json:"total_volume"`                 // 总体积
	DriverName      *string    `json:"driver_name,omitempty"`        // 司机姓名
	DriverVehicle   *string    `json:"driver_vehicle,omitempty"`     // 车辆信息
	NoteID          *uint      `json:"note_id,omitempty"`            // 备注 ID
	CreatedByUserID *uint      `json:"created_by_user_id,omitempty"` // 创建人
	UpdatedByUserID *uint      `json:"updated_by_user_id,omitempty"` // 最后更新人
	CreatedAt       time.Time  `json:"created_at"`                   // 创建时间
	UpdatedAt       time.Time  `json:"updated_at"`                   // 更新时间
}

// Status 返回派生状态（open / closed）
func (s Shipment) Status() string {
	if s.IsOpen {
		return constants.ShipmentStatusOpen
	}
	return constants.ShipmentStatusClosed
}
