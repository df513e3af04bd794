package repository

import (
	"context"
	"testing"

	"github.com/shipdesk/internal/models"
	"github.com/shipdesk/internal/store"
)

type hydratorFixture struct {
	customers *StoreCustomerRepository
	shipments *StoreShipmentRepository
	partials  *StorePartialShipmentRepository
	packages  *StorePackageRepository
	items     *StoreItemRepository
	notes     *StoreNoteRepository
	hydrator  *Hydrator

	customer models.Customer
	shipment models.Shipment
	partial  models.PartialShipment
}

func newHydratorFixture(t *testing.T) *hydratorFixture {
	t.Helper()
	ctx := context.Background()
	ts := store.NewMemoryStore()

	f := &hydratorFixture{
		customers: NewCustomerRepository(ts),
		shipments: NewShipmentRepository(ts),
		partials:  NewPartialShipmentRepository(ts),
		packages:  NewPackageRepository(ts),
		items:     NewItemRepository(ts),
		notes:     NewNoteRepository(ts),
	}
	f.hydrator = NewHydrator(f.customers, f.shipments, f.partials, f.packages, f.items, f.notes)

	customer := &models.Customer{Name: "Ada"}
	if err := f.customers.Create(ctx, customer); err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	shipment := &models.Shipment{Destination: "Lagos", IsOpen: true}
	if err := f.shipments.Create(ctx, shipment); err != nil {
		t.Fatalf("create shipment failed: %v", err)
	}
	partial := &models.PartialShipment{
		ShipmentID:      shipment.ID,
		CustomerID:      customer.ID,
		Cost:            100,
		ExtraCostAmount: 20,
		DiscountAmount:  10,
		AmountPaid:      50,
	}
	if err := f.partials.Create(ctx, partial); err != nil {
		t.Fatalf("create partial shipment failed: %v", err)
	}
	if err := f.packages.Create(ctx, &models.Package{PartialShipmentID: partial.ID, Length: 2, Width: 1, Height: 1, Weight: 5, Units: 3}); err != nil {
		t.Fatalf("create package failed: %v", err)
	}
	if err := f.items.Create(ctx, &models.PartialShipmentItem{PartialShipmentID: partial.ID, Description: "shoes", Quantity: 4}); err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	f.customer = *customer
	f.shipment = *shipment
	f.partial = *partial
	return f
}

func TestHydratorPartialShipmentOptionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	f := newHydratorFixture(t)

	bare, err := f.hydrator.PartialShipment(ctx, f.partial, HydrateOptions{})
	if err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if bare.Customer != nil || bare.Shipment != nil || bare.Packages != nil || bare.Items != nil || bare.Note != nil {
		t.Errorf("bare view carries associations: %+v", bare)
	}
	if bare.Revenue != 110 {
		t.Errorf("revenue = %v, want 110", bare.Revenue)
	}
	if bare.Outstanding != 60 {
		t.Errorf("outstanding = %v, want 60", bare.Outstanding)
	}

	full, err := f.hydrator.PartialShipment(ctx, f.partial, HydrateOptions{
		IncludeCustomer: true,
		IncludeShipment: true,
		IncludePackages: true,
		IncludeItems:    true,
		IncludeNote:     true,
	})
	if err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if full.Customer == nil || full.Customer.Name != "Ada" {
		t.Errorf("customer not hydrated: %+v", full.Customer)
	}
	if full.Shipment == nil || full.Shipment.Destination != "Lagos" {
		t.Errorf("shipment not hydrated: %+v", full.Shipment)
	}
	if len(full.Packages) != 1 || len(full.Items) != 1 {
		t.Errorf("packages/items = %d/%d, want 1/1", len(full.Packages), len(full.Items))
	}
	if full.Note != nil {
		t.Errorf("note hydrated without note_id: %+v", full.Note)
	}

	onlyPackages, err := f.hydrator.PartialShipment(ctx, f.partial, HydrateOptions{IncludePackages: true})
	if err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if onlyPackages.Customer != nil || len(onlyPackages.Packages) != 1 {
		t.Errorf("include flags not independent: %+v", onlyPackages)
	}
}

func TestHydratorDanglingNoteIsNil(t *testing.T) {
	ctx := context.Background()
	f := newHydratorFixture(t)

	missing := uint(404)
	partial, err := f.partials.Update(ctx, f.partial.ID, store.Record{"note_id": missing})
	if err != nil {
		t.Fatalf("update partial shipment failed: %v", err)
	}

	view, err := f.hydrator.PartialShipment(ctx, *partial, HydrateOptions{IncludeNote: true})
	if err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if view.Note != nil {
		t.Errorf("dangling note_id should hydrate as nil, got %+v", view.Note)
	}
}

func TestHydratorShipmentView(t *testing.T) {
	ctx := context.Background()
	f := newHydratorFixture(t)

	view, err := f.hydrator.Shipment(ctx, f.shipment, HydrateOptions{IncludePartials: true, IncludeCustomer: true})
	if err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if view.Status != "open" {
		t.Errorf("status = %q, want open", view.Status)
	}
	if len(view.PartialShipments) != 1 {
		t.Fatalf("partial shipments = %d, want 1", len(view.PartialShipments))
	}
	if view.PartialShipments[0].Customer == nil {
		t.Errorf("nested customer not hydrated")
	}
}

func TestHydratorCustomerView(t *testing.T) {
	ctx := context.Background()
	f := newHydratorFixture(t)

	note := &models.Note{Content: "vip"}
	if err := f.notes.Create(ctx, note); err != nil {
		t.Fatalf("create note failed: %v", err)
	}
	customer, err := f.customers.Update(ctx, f.customer.ID, store.Record{"note_id": note.ID})
	if err != nil {
		t.Fatalf("update customer failed: %v", err)
	}

	view, err := f.hydrator.Customer(ctx, *customer, HydrateOptions{IncludePartials: true, IncludeNote: true, IncludeShipment: true})
	if err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if view.Note == nil || view.Note.Content != "vip" {
		t.Errorf("customer note not hydrated: %+v", view.Note)
	}
	if len(view.PartialShipments) != 1 {
		t.Fatalf("partial shipments = %d, want 1", len(view.PartialShipments))
	}
	if view.PartialShipments[0].Shipment == nil {
		t.Errorf("nested shipment not hydrated")
	}
}

type countingPartialRepo struct {
	PartialShipmentRepository
	byShipmentCalls int
	byCustomerCalls int
}

func (r *countingPartialRepo) ListByShipmentID(ctx context.Context, shipmentID uint) ([]models.PartialShipment, error) {
	r.byShipmentCalls++
	return r.PartialShipmentRepository.ListByShipmentID(ctx, shipmentID)
}

func (r *countingPartialRepo) ListByCustomerID(ctx context.Context, customerID uint) ([]models.PartialShipment, error) {
	r.byCustomerCalls++
	return r.PartialShipmentRepository.ListByCustomerID(ctx, customerID)
}

func TestHydratorSkipsPartialsUnlessRequested(t *testing.T) {
	ctx := context.Background()
	f := newHydratorFixture(t)

	spy := &countingPartialRepo{PartialShipmentRepository: f.partials}
	hydrator := NewHydrator(f.customers, f.shipments, spy, f.packages, f.items, f.notes)

	shipmentView, err := hydrator.Shipment(ctx, f.shipment, HydrateOptions{})
	if err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if shipmentView.PartialShipments != nil {
		t.Errorf("shipment view carries partials without flag: %+v", shipmentView.PartialShipments)
	}

	customerView, err := hydrator.Customer(ctx, f.customer, HydrateOptions{IncludeNote: true})
	if err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if customerView.PartialShipments != nil {
		t.Errorf("customer view carries partials without flag: %+v", customerView.PartialShipments)
	}

	if spy.byShipmentCalls != 0 || spy.byCustomerCalls != 0 {
		t.Errorf("partials scanned without flag: shipment=%d customer=%d", spy.byShipmentCalls, spy.byCustomerCalls)
	}

	if _, err := hydrator.Customer(ctx, f.customer, HydrateOptions{IncludePartials: true}); err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if spy.byCustomerCalls != 1 {
		t.Errorf("partials not scanned with flag: %d", spy.byCustomerCalls)
	}
}
