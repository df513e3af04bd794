// Package stats 提供对仓储列表的纯函数聚合计算。
// 所有函数不修改入参，不访问存储，便于独立测试。
package stats

import (
	"sort"

	"github.com/shipdesk/internal/models"
)

// StatusGroup 按批次状态分组的统计
type StatusGroup struct {
	Status      string  `json:"status"`
	Count       int     `json:"count"`
	TotalWeight float64 `json:"total_weight"`
	TotalVolume float64 `json:"total_volume"`
}

// DestinationGroup 按目的地分组的统计
type DestinationGroup struct {
	Destination string  `json:"destination"`
	Count       int     `json:"count"`
	TotalWeight float64 `json:"total_weight"`
	TotalVolume float64 `json:"total_volume"`
}

// PaymentStatusCount 按付款状态分组的部分托运数量
type PaymentStatusCount struct {
	PaymentStatus string `json:"payment_status"`
	Count         int    `json:"count"`
}

// CustomerCount 按客户分组的部分托运数量
type CustomerCount struct {
	CustomerID uint `json:"customer_id"`
	Count      int  `json:"count"`
}

// DashboardSummary 仪表盘汇总
type DashboardSummary struct {
	ShipmentCount        int                  `json:"shipment_count"`
	PartialShipmentCount int                  `json:"partial_shipment_count"`
	ByStatus             []StatusGroup        `json:"by_status"`
	ByDestination        []DestinationGroup   `json:"by_destination"`
	ByPaymentStatus      []PaymentStatusCount `json:"by_payment_status"`
	ByCustomer           []CustomerCount      `json:"by_customer"`
}

// BuildDashboardSummary 计算仪表盘汇总。
// 分组结果按分组键升序输出，保证同一输入产生同一输出。
func BuildDashboardSummary(shipments []models.Shipment, partials []models.PartialShipment) DashboardSummary {
	byStatus := map[string]*StatusGroup{}
	byDestination := map[string]*DestinationGroup{}
	for _, shipment := range shipments {
		status := shipment.Status()
		sg, ok := byStatus[status]
		if !ok {
			sg = &StatusGroup{Status: status}
			byStatus[status] = sg
		}
		sg.Count++
		sg.TotalWeight += shipment.TotalWeight
		sg.TotalVolume += shipment.TotalVolume

		dg, ok := byDestination[shipment.Destination]
		if !ok {
			dg = &DestinationGroup{Destination: shipment.Destination}
			byDestination[shipment.Destination] = dg
		}
		dg.Count++
		dg.TotalWeight += shipment.TotalWeight
		dg.TotalVolume += shipment.TotalVolume
	}

	byPayment := map[string]int{}
	byCustomer := map[uint]int{}
	for _, partial := range partials {
		byPayment[partial.PaymentStatus]++
		byCustomer[partial.CustomerID]++
	}

	summary := DashboardSummary{
		ShipmentCount:        len(shipments),
		PartialShipmentCount: len(partials),
		ByStatus:             make([]StatusGroup, 0, len(byStatus)),
		ByDestination:        make([]DestinationGroup, 0, len(byDestination)),
		ByPaymentStatus:      make([]PaymentStatusCount, 0, len(byPayment)),
		ByCustomer:           make([]CustomerCount, 0, len(byCustomer)),
	}
	for _, sg := range byStatus {
		summary.ByStatus = append(summary.ByStatus, *sg)
	}
	sort.Slice(summary.ByStatus, func(i, j int) bool {
		return summary.ByStatus[i].Status < summary.ByStatus[j].Status
	})
	for _, dg := range byDestination {
		summary.ByDestination = append(summary.ByDestination, *dg)
	}
	sort.Slice(summary.ByDestination, func(i, j int) bool {
		return summary.ByDestination[i].Destination < summary.ByDestination[j].Destination
	})
	for status, count := range byPayment {
		summary.ByPaymentStatus = append(summary.ByPaymentStatus, PaymentStatusCount{PaymentStatus: status, Count: count})
	}
	sort.Slice(summary.ByPaymentStatus, func(i, j int) bool {
		return summary.ByPaymentStatus[i].PaymentStatus < summary.ByPaymentStatus[j].PaymentStatus
	})
	for customerID, count := range byCustomer {
		summary.ByCustomer = append(summary.ByCustomer, CustomerCount{CustomerID: customerID, Count: count})
	}
	sort.Slice(summary.ByCustomer, func(i, j int) bool {
		return summary.ByCustomer[i].CustomerID < summary.ByCustomer[j].CustomerID
	})
	return summary
}
