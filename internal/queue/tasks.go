package queue

import (
	"encoding/json"

	"github.com/shipdesk/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskShipmentRecalcTotals 批次合计对账任务
	TaskShipmentRecalcTotals = constants.TaskShipmentRecalcTotals
	// TaskDashboardWarmCache 仪表盘缓存预热任务
	TaskDashboardWarmCache = constants.TaskDashboardWarmCache
)

// ShipmentRecalcTotalsPayload 批次合计对账任务载荷
type ShipmentRecalcTotalsPayload struct {
	ShipmentID uint `json:"shipment_id"`
}

// DashboardWarmCachePayload 仪表盘缓存预热任务载荷
type DashboardWarmCachePayload struct{}

// NewShipmentRecalcTotalsTask 创建批次合计对账任务
func NewShipmentRecalcTotalsTask(payload ShipmentRecalcTotalsPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskShipmentRecalcTotals, body), nil
}

// NewDashboardWarmCacheTask 创建仪表盘缓存预热任务
func NewDashboardWarmCacheTask() (*asynq.Task, error) {
	body, err := json.Marshal(DashboardWarmCachePayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardWarmCache, body), nil
}
