package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shipdesk/internal/constants"
	"github.com/shipdesk/internal/models"
	"github.com/shipdesk/internal/store"
)

// CustomerRepository 客户数据访问接口
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
	Update(ctx context.Context, id uint, fields store.Record) (*models.Customer, error)
	IncrementBalance(ctx context.Context, id uint, delta float64) (*models.Customer, error)
	Delete(ctx context.Context, id uint) error
}

// StoreCustomerRepository 表存储客户仓储实现
type StoreCustomerRepository struct {
	store store.TableStore
}

// NewCustomerRepository 创建客户仓储
func NewCustomerRepository(ts store.TableStore) *StoreCustomerRepository {
	return &StoreCustomerRepository{store: ts}
}

// Create 创建客户（分配主键并写入）
func (r *StoreCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	id, err := r.store.NextID(ctx, constants.TableCustomers)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	customer.ID = id
	customer.CreatedAt = now
	customer.UpdatedAt = now

	record, err := store.EncodeRecord(customer)
	if err != nil {
		return fmt.Errorf("encode customer: %w", err)
	}
	return r.store.Put(ctx, constants.TableCustomers, id, record)
}

// GetByID 按主键获取客户
func (r *StoreCustomerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	record, err := r.store.Get(ctx, constants.TableCustomers, id)
	if err != nil {
		return nil, err
	}
	var customer models.Customer
	if err := store.DecodeRecord(record, &customer); err != nil {
		return nil, fmt.Errorf("decode customer %d: %w", id, err)
	}
	return &customer, nil
}

// List 全表扫描客户（顺序不保证）
func (r *StoreCustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	records, err := r.store.List(ctx, constants.TableCustomers)
	if err != nil {
		return nil, err
	}
	return store.DecodeRecords[models.Customer](records)
}

// Update 合并更新给定字段
func (r *StoreCustomerRepository) Update(ctx context.Context, id uint, fields store.Record) (*models.Customer, error) {
	fields["updated_at"] = time.Now().UTC()
	record, err := r.store.Update(ctx, constants.TableCustomers, id, fields)
	if err != nil {
		return nil, err
	}
	var customer models.Customer
	if err := store.DecodeRecord(record, &customer); err != nil {
		return nil, fmt.Errorf("decode customer %d: %w", id, err)
	}
	return &customer, nil
}

// IncrementBalance 存储端原子调整余额
func (r *StoreCustomerRepository) IncrementBalance(ctx context.Context, id uint, delta float64) (*models.Customer, error) {
	record, err := r.store.Increment(ctx, constants.TableCustomers, id, map[string]float64{
		"balance": delta,
	})
	if err != nil {
		return nil, err
	}
	var customer models.Customer
	if err := store.DecodeRecord(record, &customer); err != nil {
		return nil, fmt.Errorf("decode customer %d: %w", id, err)
	}
	return &customer, nil
}

// Delete 删除客户。仍有部分托运引用该客户时返回 ErrConflict 且不做任何修改。
func (r *StoreCustomerRepository) Delete(ctx context.Context, id uint) error {
	partials, err := r.store.List(ctx, constants.TablePartialShipments)
	if err != nil {
		return err
	}
	for _, record := range partials {
		if record.Uint("customer_id") == id {
			return fmt.Errorf("%w: customer %d has partial shipment %d", ErrConflict, id, record.ID())
		}
	}
	return r.store.Delete(ctx, constants.TableCustomers, id)
}
