package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shipdesk/internal/constants"
	"github.com/shipdesk/internal/models"
	"github.com/shipdesk/internal/store"
)

// ItemRepository 货物明细数据访问接口
type ItemRepository interface {
	Create(ctx context.Context, item *models.PartialShipmentItem) error
	GetByID(ctx context.Context, id uint) (*models.PartialShipmentItem, error)
	ListByPartialShipmentID(ctx context.Context, partialShipmentID uint) ([]models.PartialShipmentItem, error)
	Update(ctx context.Context, id uint, fields store.Record) (*models.PartialShipmentItem, error)
	Delete(ctx context.Context, id uint) error
}

// StoreItemRepository 表存储货物明细仓储实现
type StoreItemRepository struct {
	store store.TableStore
}

// NewItemRepository 创建货物明细仓储
func NewItemRepository(ts store.TableStore) *StoreItemRepository {
	return &StoreItemRepository{store: ts}
}

// Create 创建货物明细（分配主键并写入）
func (r *StoreItemRepository) Create(ctx context.Context, item *models.PartialShipmentItem) error {
	id, err := r.store.NextID(ctx, constants.TablePartialShipmentItems)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	item.ID = id
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	item.CreatedAt = now
	item.UpdatedAt = now

	record, err := store.EncodeRecord(item)
	if err != nil {
		return fmt.Errorf("encode item: %w", err)
	}
	return r.store.Put(ctx, constants.TablePartialShipmentItems, id, record)
}

// GetByID 按主键获取货物明细
func (r *StoreItemRepository) GetByID(ctx context.Context, id uint) (*models.PartialShipmentItem, error) {
	record, err := r.store.Get(ctx, constants.TablePartialShipmentItems, id)
	if err != nil {
		return nil, err
	}
	var item models.PartialShipmentItem
	if err := store.DecodeRecord(record, &item); err != nil {
		return nil, fmt.Errorf("decode item %d: %w", id, err)
	}
	return &item, nil
}

// ListByPartialShipmentID 按部分托运过滤（内存过滤的全表扫描）
func (r *StoreItemRepository) ListByPartialShipmentID(ctx context.Context, partialShipmentID uint) ([]models.PartialShipmentItem, error) {
	records, err := r.store.List(ctx, constants.TablePartialShipmentItems)
	if err != nil {
		return nil, err
	}
	matched := make([]store.Record, 0, len(records))
	for _, record := range records {
		if record.Uint("partial_shipment_id") == partialShipmentID {
			matched = append(matched, record)
		}
	}
	return store.DecodeRecords[models.PartialShipmentItem](matched)
}

// Update 合并更新给定字段
func (r *StoreItemRepository) Update(ctx context.Context, id uint, fields store.Record) (*models.PartialShipmentItem, error) {
	fields["updated_at"] = time.Now().UTC()
	record, err := r.store.Update(ctx, constants.TablePartialShipmentItems, id, fields)
	if err != nil {
		return nil, err
	}
	var item models.PartialShipmentItem
	if err := store.DecodeRecord(record, &item); err != nil {
		return nil, fmt.Errorf("decode item %d: %w", id, err)
	}
	return &item, nil
}

// Delete 删除货物明细
func (r *StoreItemRepository) Delete(ctx context.Context, id uint) error {
	return r.store.Delete(ctx, constants.TablePartialShipmentItems, id)
}
