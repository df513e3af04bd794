package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shipdesk/internal/constants"
	"github.com/shipdesk/internal/models"
	"github.com/shipdesk/internal/store"
)

// PartialShipmentRepository 部分托运数据访问接口
type PartialShipmentRepository interface {
	Create(ctx context.Context, partial *models.PartialShipment) error
	GetByID(ctx context.Context, id uint) (*models.PartialShipment, error)
	List(ctx context.Context) ([]models.PartialShipment, error)
	ListByShipmentID(ctx context.Context, shipmentID uint) ([]models.PartialShipment, error)
	ListByCustomerID(ctx context.Context, customerID uint) ([]models.PartialShipment, error)
	Update(ctx context.Context, id uint, fields store.Record) (*models.PartialShipment, error)
	Delete(ctx context.Context, id uint) error
}

// StorePartialShipmentRepository 表存储部分托运仓储实现
type StorePartialShipmentRepository struct {
	store store.TableStore
}

// NewPartialShipmentRepository 创建部分托运仓储
func NewPartialShipmentRepository(ts store.TableStore) *StorePartialShipmentRepository {
	return &StorePartialShipmentRepository{store: ts}
}

// Create 创建部分托运（分配主键并写入）
func (r *StorePartialShipmentRepository) Create(ctx context.Context, partial *models.PartialShipment) error {
	id, err := r.store.NextID(ctx, constants.TablePartialShipments)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	partial.ID = id
	if partial.PaymentStatus == "" {
		partial.PaymentStatus = constants.PaymentStatusUnpaid
	}
	partial.CreatedAt = now
	partial.UpdatedAt = now

	record, err := store.EncodeRecord(partial)
	if err != nil {
		return fmt.Errorf("encode partial shipment: %w", err)
	}
	return r.store.Put(ctx, constants.TablePartialShipments, id, record)
}

// GetByID 按主键获取部分托运
func (r *StorePartialShipmentRepository) GetByID(ctx context.Context, id uint) (*models.PartialShipment, error) {
	record, err := r.store.Get(ctx, constants.TablePartialShipments, id)
	if err != nil {
		return nil, err
	}
	var partial models.PartialShipment
	if err := store.DecodeRecord(record, &partial); err != nil {
		return nil, fmt.Errorf("decode partial shipment %d: %w", id, err)
	}
	return &partial, nil
}

// List 全表扫描部分托运（顺序不保证）
func (r *StorePartialShipmentRepository) List(ctx context.Context) ([]models.PartialShipment, error) {
	records, err := r.store.List(ctx, constants.TablePartialShipments)
	if err != nil {
		return nil, err
	}
	return store.DecodeRecords[models.PartialShipment](records)
}

// ListByShipmentID 按批次过滤（内存过滤的全表扫描）
func (r *StorePartialShipmentRepository) ListByShipmentID(ctx context.Context, shipmentID uint) ([]models.PartialShipment, error) {
	return r.listFiltered(ctx, "shipment_id", shipmentID)
}

// ListByCustomerID 按客户过滤（内存过滤的全表扫描）
func (r *StorePartialShipmentRepository) ListByCustomerID(ctx context.Context, customerID uint) ([]models.PartialShipment, error) {
	return r.listFiltered(ctx, "customer_id", customerID)
}

func (r *StorePartialShipmentRepository) listFiltered(ctx context.Context, field string, value uint) ([]models.PartialShipment, error) {
	records, err := r.store.List(ctx, constants.TablePartialShipments)
	if err != nil {
		return nil, err
	}
	matched := make([]store.Record, 0, len(records))
	for _, record := range records {
		if record.Uint(field) == value {
			matched = append(matched, record)
		}
	}
	return store.DecodeRecords[models.PartialShipment](matched)
}

// Update 合并更新给定字段
func (r *StorePartialShipmentRepository) Update(ctx context.Context, id uint, fields store.Record) (*models.PartialShipment, error) {
	fields["updated_at"] = time.Now().UTC()
	record, err := r.store.Update(ctx, constants.TablePartialShipments, id, fields)
	if err != nil {
		return nil, err
	}
	var partial models.PartialShipment
	if err := store.DecodeRecord(record, &partial); err != nil {
		return nil, fmt.Errorf("decode partial shipment %d: %w", id, err)
	}
	return &partial, nil
}

// Delete 删除部分托运
func (r *StorePartialShipmentRepository) Delete(ctx context.Context, id uint) error {
	return r.store.Delete(ctx, constants.TablePartialShipments, id)
}
