package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shipdesk/internal/config"
	"github.com/shipdesk/internal/provider"
	"github.com/shipdesk/internal/queue"
	"github.com/shipdesk/internal/service"
	"github.com/shipdesk/internal/store"

	"github.com/hibiken/asynq"
)

func newWorkerFixture(t *testing.T) *Consumer {
	t.Helper()
	cfg := &config.Config{}
	cfg.Store.Driver = "memory"
	container, err := provider.NewContainer(cfg)
	if err != nil {
		t.Fatalf("create container failed: %v", err)
	}
	return NewConsumer(container)
}

func TestConsumerShipmentRecalcTotals(t *testing.T) {
	ctx := context.Background()
	consumer := newWorkerFixture(t)

	shipment, err := consumer.ShipmentService.Create(ctx, service.CreateShipmentInput{Destination: "Lagos"}, nil)
	if err != nil {
		t.Fatalf("create shipment failed: %v", err)
	}
	customer, err := consumer.CustomerService.Create(ctx, service.CreateCustomerInput{Name: "Ada"}, nil)
	if err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	partial, err := consumer.PartialShipmentService.Create(ctx, service.CreatePartialShipmentInput{
		ShipmentID: shipment.ID,
		CustomerID: customer.ID,
	}, nil)
	if err != nil {
		t.Fatalf("create partial shipment failed: %v", err)
	}
	if _, err := consumer.PartialShipmentService.AddPackage(ctx, partial.ID, service.PackageInput{
		Length: 2, Width: 1, Height: 1, Weight: 5, Units: 3,
	}, nil); err != nil {
		t.Fatalf("add package failed: %v", err)
	}

	// 制造缓存漂移，由对账任务修复
	if _, err := consumer.ShipmentRepo.Update(ctx, shipment.ID, store.Record{"total_weight": 999.0, "total_volume": 999.0}); err != nil {
		t.Fatalf("update shipment failed: %v", err)
	}

	task, err := queue.NewShipmentRecalcTotalsTask(queue.ShipmentRecalcTotalsPayload{ShipmentID: shipment.ID})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleShipmentRecalcTotals(ctx, task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}

	fixed, err := consumer.ShipmentRepo.GetByID(ctx, shipment.ID)
	if err != nil {
		t.Fatalf("get shipment failed: %v", err)
	}
	if fixed.TotalWeight != 15 || fixed.TotalVolume != 6 {
		t.Errorf("totals = %v / %v, want 15 / 6", fixed.TotalWeight, fixed.TotalVolume)
	}
}

func TestConsumerShipmentRecalcSkipsMissingShipment(t *testing.T) {
	ctx := context.Background()
	consumer := newWorkerFixture(t)

	task, err := queue.NewShipmentRecalcTotalsTask(queue.ShipmentRecalcTotalsPayload{ShipmentID: 999})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleShipmentRecalcTotals(ctx, task); err != nil {
		t.Fatalf("missing shipment should be skipped, got %v", err)
	}
}

func TestConsumerShipmentRecalcSkipsZeroID(t *testing.T) {
	ctx := context.Background()
	consumer := newWorkerFixture(t)

	payload, err := json.Marshal(queue.ShipmentRecalcTotalsPayload{ShipmentID: 0})
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	task := asynq.NewTask(queue.TaskShipmentRecalcTotals, payload)
	if err := consumer.handleShipmentRecalcTotals(ctx, task); err != nil {
		t.Fatalf("zero shipment id should be skipped, got %v", err)
	}
}

func TestConsumerShipmentRecalcRejectsBadPayload(t *testing.T) {
	ctx := context.Background()
	consumer := newWorkerFixture(t)

	task := asynq.NewTask(queue.TaskShipmentRecalcTotals, []byte("not-json"))
	if err := consumer.handleShipmentRecalcTotals(ctx, task); err == nil {
		t.Fatal("malformed payload should return error")
	}
}

func TestConsumerDashboardWarmCache(t *testing.T) {
	ctx := context.Background()
	consumer := newWorkerFixture(t)

	task, err := queue.NewDashboardWarmCacheTask()
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleDashboardWarmCache(ctx, task); err != nil {
		t.Fatalf("warm cache task failed: %v", err)
	}
}
