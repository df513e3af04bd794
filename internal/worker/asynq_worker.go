package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/shipdesk/internal/logger"
	"github.com/shipdesk/internal/provider"
	"github.com/shipdesk/internal/queue"
	"github.com/shipdesk/internal/store"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskShipmentRecalcTotals, c.handleShipmentRecalcTotals)
	mux.HandleFunc(queue.TaskDashboardWarmCache, c.handleDashboardWarmCache)
}

func (c *Consumer) handleShipmentRecalcTotals(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_shipment_recalc_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ShipmentRecalcTotalsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_shipment_recalc_unmarshal_failed", "error", err)
		return err
	}
	if payload.ShipmentID == 0 {
		logger.Debugw("worker_shipment_recalc_skip_invalid_payload", "shipment_id", payload.ShipmentID)
		return nil
	}
	shipment, err := c.ShipmentService.RecalcTotals(ctx, payload.ShipmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.Debugw("worker_shipment_recalc_skip_not_found", "shipment_id", payload.ShipmentID)
			return nil
		}
		logger.Warnw("worker_shipment_recalc_failed", "shipment_id", payload.ShipmentID, "error", err)
		return err
	}
	logger.Infow("worker_shipment_recalc_done",
		"shipment_id", shipment.ID,
		"total_weight", shipment.TotalWeight,
		"total_volume", shipment.TotalVolume,
	)
	return nil
}

func (c *Consumer) handleDashboardWarmCache(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_dashboard_warm_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	if err := c.DashboardService.WarmCache(ctx); err != nil {
		logger.Warnw("worker_dashboard_warm_failed", "error", err)
		return err
	}
	return nil
}
