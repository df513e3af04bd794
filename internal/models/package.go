package models

import "time"

// Package 包裹
type Package struct {
	ID                uint      `json:"id"`                           // 主键
	PartialShipmentID uint      `json:"partial_shipment_id"`          // 所属部分托运
	Length            float64   `json:"length"`                       // 长
	Width             float64   `json:"width"`                        // 宽
	Height            float64   `json:"height"`                       // 高
	Weight            float64   `json:"weight"`                       // 单件重量
	Units             int       `json:"units"`                        // 件数
	CreatedByUserID   *uint     `json:"created_by_user_id,omitempty"` // 创建人
	UpdatedByUserID   *uint     `json:"updated_by_user_id,omitempty"` // 最后更新人
	CreatedAt         time.Time `json:"created_at"`                   // 创建时间
	UpdatedAt         time.Time `json:"updated_at"`                   // 更新时间
}

// VolumeTotal 体积贡献（长 × 宽 × 高 × 件数）
func (p Package) VolumeTotal() float64 {
	return p.Length * p.Width * p.Height * float64(p.Units)
}

// WeightTotal 重量贡献（单件重量 × 件数）
func (p Package) WeightTotal() float64 {
	return p.Weight * float64(p.Units)
}
