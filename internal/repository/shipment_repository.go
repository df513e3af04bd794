package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shipdesk/internal/constants"
	"github.com/shipdesk/internal/models"
	"github.com/shipdesk/internal/store"
)

// ShipmentRepository 批次数据访问接口
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *models.Shipment) error
	GetByID(ctx context.Context, id uint) (*models.Shipment, error)
	List(ctx context.Context) ([]models.Shipment, error)
	Update(ctx context.Context, id uint, fields store.Record) (*models.Shipment, error)
	IncrementTotals(ctx context.Context, id uint, deltaWeight, deltaVolume float64) (*models.Shipment, error)
	Delete(ctx context.Context, id uint) error
}

// StoreShipmentRepository 表存储批次仓储实现
type StoreShipmentRepository struct {
	store store.TableStore
}

// NewShipmentRepository 创建批次仓储
func NewShipmentRepository(ts store.TableStore) *StoreShipmentRepository {
	return &StoreShipmentRepository{store: ts}
}

// Create 创建批次（分配主键并写入）
func (r *StoreShipmentRepository) Create(ctx context.Context, shipment *models.Shipment) error {
	id, err := r.store.NextID(ctx, constants.TableShipments)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	shipment.ID = id
	if shipment.DateCreated.IsZero() {
		shipment.DateCreated = now
	}
	shipment.CreatedAt = now
	shipment.UpdatedAt = now

	record, err := store.EncodeRecord(shipment)
	if err != nil {
		return fmt.Errorf("encode shipment: %w", err)
	}
	return r.store.Put(ctx, constants.TableShipments, id, record)
}

// GetByID 按主键获取批次
func (r *StoreShipmentRepository) GetByID(ctx context.Context, id uint) (*models.Shipment, error) {
	record, err := r.store.Get(ctx, constants.TableShipments, id)
	if err != nil {
		return nil, err
	}
	var shipment models.Shipment
	if err := store.DecodeRecord(record, &shipment); err != nil {
		return nil, fmt.Errorf("decode shipment %d: %w", id, err)
	}
	return &shipment, nil
}

// List 全表扫描批次（顺序不保证）
func (r *StoreShipmentRepository) List(ctx context.Context) ([]models.Shipment, error) {
	records, err := r.store.List(ctx, constants.TableShipments)
	if err != nil {
		return nil, err
	}
	return store.DecodeRecords[models.Shipment](records)
}

// Update 合并更新给定字段
func (r *StoreShipmentRepository) Update(ctx context.Context, id uint, fields store.Record) (*models.Shipment, error) {
	fields["updated_at"] = time.Now().UTC()
	record, err := r.store.Update(ctx, constants.TableShipments, id, fields)
	if err != nil {
		return nil, err
	}
	var shipment models.Shipment
	if err := store.DecodeRecord(record, &shipment); err != nil {
		return nil, fmt.Errorf("decode shipment %d: %w", id, err)
	}
	return &shipment, nil
}

// IncrementTotals 存储端原子调整批次总重量 / 总体积
func (r *StoreShipmentRepository) IncrementTotals(ctx context.Context, id uint, deltaWeight, deltaVolume float64) (*models.Shipment, error) {
	record, err := r.store.Increment(ctx, constants.TableShipments, id, map[string]float64{
		"total_weight": deltaWeight,
		"total_volume": deltaVolume,
	})
	if err != nil {
		return nil, err
	}
	var shipment models.Shipment
	if err := store.DecodeRecord(record, &shipment); err != nil {
		return nil, fmt.Errorf("decode shipment %d: %w", id, err)
	}
	return &shipment, nil
}

// Delete 删除批次。仍有部分托运引用该批次时返回 ErrConflict 且不做任何修改。
func (r *StoreShipmentRepository) Delete(ctx context.Context, id uint) error {
	partials, err := r.store.List(ctx, constants.TablePartialShipments)
	if err != nil {
		return err
	}
	for _, record := range partials {
		if record.Uint("shipment_id") == id {
			return fmt.Errorf("%w: shipment %d has partial shipment %d", ErrConflict, id, record.ID())
		}
	}
	return r.store.Delete(ctx, constants.TableShipments, id)
}
