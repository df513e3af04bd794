package queue

import (
	"testing"

	"github.com/shipdesk/internal/config"
)

func TestDisabledClientEnqueueIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("disabled client reports enabled")
	}
	if err := client.EnqueueShipmentRecalcTotals(ShipmentRecalcTotalsPayload{ShipmentID: 1}); err != nil {
		t.Errorf("EnqueueShipmentRecalcTotals on disabled client: %v", err)
	}
	if err := client.EnqueueDashboardWarmCache(); err != nil {
		t.Errorf("EnqueueDashboardWarmCache on disabled client: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close on disabled client: %v", err)
	}
}

func TestNilClientIsSafe(t *testing.T) {
	var client *Client
	if client.Enabled() {
		t.Fatalf("nil client reports enabled")
	}
	if err := client.EnqueueDashboardWarmCache(); err != nil {
		t.Errorf("EnqueueDashboardWarmCache on nil client: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close on nil client: %v", err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{})
	if opt.Addr != "127.0.0.1:6379" {
		t.Errorf("addr = %q, want 127.0.0.1:6379", opt.Addr)
	}
	if cfg.Concurrency != 10 {
		t.Errorf("concurrency = %d, want 10", cfg.Concurrency)
	}
	if weight, ok := cfg.Queues[DefaultQueue]; !ok || weight != 1 {
		t.Errorf("queues = %v, want default queue weight 1", cfg.Queues)
	}
}
