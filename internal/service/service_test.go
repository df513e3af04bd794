package service

import (
	"context"
	"testing"

	"github.com/shipdesk/internal/config"
	"github.com/shipdesk/internal/models"
	"github.com/shipdesk/internal/queue"
	"github.com/shipdesk/internal/repository"
	"github.com/shipdesk/internal/store"
)

// serviceFixture 基于内存存储组装全部服务，供服务层测试使用。
type serviceFixture struct {
	ts store.TableStore

	customerRepo *repository.StoreCustomerRepository
	shipmentRepo *repository.StoreShipmentRepository
	partialRepo  *repository.StorePartialShipmentRepository
	packageRepo  *repository.StorePackageRepository
	itemRepo     *repository.StoreItemRepository
	noteRepo     *repository.StoreNoteRepository

	noteService     *NoteService
	customerService *CustomerService
	shipmentService *ShipmentService
	partialService  *PartialShipmentService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	ts := store.NewMemoryStore()

	f := &serviceFixture{
		ts:           ts,
		customerRepo: repository.NewCustomerRepository(ts),
		shipmentRepo: repository.NewShipmentRepository(ts),
		partialRepo:  repository.NewPartialShipmentRepository(ts),
		packageRepo:  repository.NewPackageRepository(ts),
		itemRepo:     repository.NewItemRepository(ts),
		noteRepo:     repository.NewNoteRepository(ts),
	}
	hydrator := repository.NewHydrator(f.customerRepo, f.shipmentRepo, f.partialRepo, f.packageRepo, f.itemRepo, f.noteRepo)

	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("create queue client failed: %v", err)
	}

	f.noteService = NewNoteService(f.noteRepo)
	f.customerService = NewCustomerService(f.customerRepo, f.noteService, hydrator)
	f.shipmentService = NewShipmentService(f.shipmentRepo, f.partialRepo, f.packageRepo, f.noteService, hydrator, queueClient)
	f.partialService = NewPartialShipmentService(f.partialRepo, f.packageRepo, f.itemRepo, f.shipmentRepo, f.customerRepo, f.noteService, hydrator)
	return f
}

func (f *serviceFixture) mustCreateCustomer(t *testing.T, name string) *models.Customer {
	t.Helper()
	customer, err := f.customerService.Create(context.Background(), CreateCustomerInput{Name: name}, nil)
	if err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	return customer
}

func (f *serviceFixture) mustCreateShipment(t *testing.T, destination string) *models.Shipment {
	t.Helper()
	shipment, err := f.shipmentService.Create(context.Background(), CreateShipmentInput{Destination: destination}, nil)
	if err != nil {
		t.Fatalf("create shipment failed: %v", err)
	}
	return shipment
}

func (f *serviceFixture) mustCreatePartial(t *testing.T, shipmentID, customerID uint) *models.PartialShipment {
	t.Helper()
	partial, err := f.partialService.Create(context.Background(), CreatePartialShipmentInput{
		ShipmentID: shipmentID,
		CustomerID: customerID,
	}, nil)
	if err != nil {
		t.Fatalf("create partial shipment failed: %v", err)
	}
	return partial
}

func (f *serviceFixture) mustGetShipment(t *testing.T, id uint) *models.Shipment {
	t.Helper()
	shipment, err := f.shipmentRepo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get shipment failed: %v", err)
	}
	return shipment
}
