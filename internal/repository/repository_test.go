package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shipdesk/internal/constants"
	"github.com/shipdesk/internal/models"
	"github.com/shipdesk/internal/store"
)

func newTestRepos(t *testing.T) (store.TableStore, *StoreCustomerRepository, *StoreShipmentRepository, *StorePartialShipmentRepository) {
	t.Helper()
	ts := store.NewMemoryStore()
	return ts, NewCustomerRepository(ts), NewShipmentRepository(ts), NewPartialShipmentRepository(ts)
}

func TestCustomerRepositoryCreateAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	_, customers, _, _ := newTestRepos(t)

	first := &models.Customer{Name: "Ada"}
	second := &models.Customer{Name: "Ben"}
	if err := customers.Create(ctx, first); err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	if err := customers.Create(ctx, second); err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", first.ID, second.ID)
	}
	if first.CreatedAt.IsZero() || first.UpdatedAt.IsZero() {
		t.Errorf("audit timestamps not set: %+v", first)
	}

	got, err := customers.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("get customer failed: %v", err)
	}
	if got.Name != "Ada" {
		t.Errorf("name = %q, want Ada", got.Name)
	}
}

func TestCustomerRepositoryIncrementBalance(t *testing.T) {
	ctx := context.Background()
	_, customers, _, _ := newTestRepos(t)

	customer := &models.Customer{Name: "Ada", Balance: 10}
	if err := customers.Create(ctx, customer); err != nil {
		t.Fatalf("create customer failed: %v", err)
	}

	after, err := customers.IncrementBalance(ctx, customer.ID, -2.5)
	if err != nil {
		t.Fatalf("increment balance failed: %v", err)
	}
	if after.Balance != 7.5 {
		t.Errorf("balance = %v, want 7.5", after.Balance)
	}
	// 余额允许为负
	after, err = customers.IncrementBalance(ctx, customer.ID, -10)
	if err != nil {
		t.Fatalf("increment balance failed: %v", err)
	}
	if after.Balance != -2.5 {
		t.Errorf("balance = %v, want -2.5", after.Balance)
	}
}

func TestCustomerRepositoryDeleteGuard(t *testing.T) {
	ctx := context.Background()
	_, customers, shipments, partials := newTestRepos(t)

	customer := &models.Customer{Name: "Ada"}
	if err := customers.Create(ctx, customer); err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	shipment := &models.Shipment{Destination: "Lagos", IsOpen: true}
	if err := shipments.Create(ctx, shipment); err != nil {
		t.Fatalf("create shipment failed: %v", err)
	}
	partial := &models.PartialShipment{ShipmentID: shipment.ID, CustomerID: customer.ID}
	if err := partials.Create(ctx, partial); err != nil {
		t.Fatalf("create partial shipment failed: %v", err)
	}

	if err := customers.Delete(ctx, customer.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("delete referenced customer: err = %v, want ErrConflict", err)
	}
	// 拒绝删除后客户记录保持不变
	if _, err := customers.GetByID(ctx, customer.ID); err != nil {
		t.Fatalf("customer removed despite conflict: %v", err)
	}

	if err := partials.Delete(ctx, partial.ID); err != nil {
		t.Fatalf("delete partial shipment failed: %v", err)
	}
	if err := customers.Delete(ctx, customer.ID); err != nil {
		t.Fatalf("delete unreferenced customer failed: %v", err)
	}
	if _, err := customers.GetByID(ctx, customer.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("customer still present after delete: err = %v", err)
	}
}

func TestShipmentRepositoryDeleteGuard(t *testing.T) {
	ctx := context.Background()
	_, customers, shipments, partials := newTestRepos(t)

	customer := &models.Customer{Name: "Ada"}
	if err := customers.Create(ctx, customer); err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	shipment := &models.Shipment{Destination: "Lagos", IsOpen: true}
	if err := shipments.Create(ctx, shipment); err != nil {
		t.Fatalf("create shipment failed: %v", err)
	}
	partial := &models.PartialShipment{ShipmentID: shipment.ID, CustomerID: customer.ID}
	if err := partials.Create(ctx, partial); err != nil {
		t.Fatalf("create partial shipment failed: %v", err)
	}

	if err := shipments.Delete(ctx, shipment.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("delete referenced shipment: err = %v, want ErrConflict", err)
	}
	if err := partials.Delete(ctx, partial.ID); err != nil {
		t.Fatalf("delete partial shipment failed: %v", err)
	}
	if err := shipments.Delete(ctx, shipment.ID); err != nil {
		t.Fatalf("delete unreferenced shipment failed: %v", err)
	}
}

func TestShipmentRepositoryIncrementTotals(t *testing.T) {
	ctx := context.Background()
	_, _, shipments, _ := newTestRepos(t)

	shipment := &models.Shipment{Destination: "Lagos", IsOpen: true, TotalWeight: 5, TotalVolume: 2}
	if err := shipments.Create(ctx, shipment); err != nil {
		t.Fatalf("create shipment failed: %v", err)
	}

	after, err := shipments.IncrementTotals(ctx, shipment.ID, 15, 18)
	if err != nil {
		t.Fatalf("increment totals failed: %v", err)
	}
	if after.TotalWeight != 20 || after.TotalVolume != 20 {
		t.Errorf("totals = %v / %v, want 20 / 20", after.TotalWeight, after.TotalVolume)
	}
}

func TestPartialShipmentRepositoryDefaultsAndFilters(t *testing.T) {
	ctx := context.Background()
	_, customers, shipments, partials := newTestRepos(t)

	ada := &models.Customer{Name: "Ada"}
	ben := &models.Customer{Name: "Ben"}
	for _, c := range []*models.Customer{ada, ben} {
		if err := customers.Create(ctx, c); err != nil {
			t.Fatalf("create customer failed: %v", err)
		}
	}
	lagos := &models.Shipment{Destination: "Lagos", IsOpen: true}
	abuja := &models.Shipment{Destination: "Abuja", IsOpen: true}
	for _, s := range []*models.Shipment{lagos, abuja} {
		if err := shipments.Create(ctx, s); err != nil {
			t.Fatalf("create shipment failed: %v", err)
		}
	}

	p1 := &models.PartialShipment{ShipmentID: lagos.ID, CustomerID: ada.ID}
	p2 := &models.PartialShipment{ShipmentID: lagos.ID, CustomerID: ben.ID}
	p3 := &models.PartialShipment{ShipmentID: abuja.ID, CustomerID: ada.ID}
	for _, p := range []*models.PartialShipment{p1, p2, p3} {
		if err := partials.Create(ctx, p); err != nil {
			t.Fatalf("create partial shipment failed: %v", err)
		}
	}

	if p1.PaymentStatus != constants.PaymentStatusUnpaid {
		t.Errorf("payment status = %q, want %q", p1.PaymentStatus, constants.PaymentStatusUnpaid)
	}

	byShipment, err := partials.ListByShipmentID(ctx, lagos.ID)
	if err != nil {
		t.Fatalf("list by shipment failed: %v", err)
	}
	if len(byShipment) != 2 {
		t.Errorf("lagos has %d partial shipments, want 2", len(byShipment))
	}

	byCustomer, err := partials.ListByCustomerID(ctx, ada.ID)
	if err != nil {
		t.Fatalf("list by customer failed: %v", err)
	}
	if len(byCustomer) != 2 {
		t.Errorf("ada has %d partial shipments, want 2", len(byCustomer))
	}
}

func TestUserRepositoryGetByUsername(t *testing.T) {
	ctx := context.Background()
	ts := store.NewMemoryStore()
	users := NewUserRepository(ts)

	user := &models.User{Username: "admin", PasswordHash: "hash"}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	got, err := users.GetByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("get by username failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("id = %d, want %d", got.ID, user.ID)
	}

	if _, err := users.GetByUsername(ctx, "nobody"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("get missing username: err = %v, want ErrNotFound", err)
	}
}
