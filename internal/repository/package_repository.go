package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shipdesk/internal/constants"
	"github.com/shipdesk/internal/models"
	"github.com/shipdesk/internal/store"
)

// PackageRepository 包裹数据访问接口
type PackageRepository interface {
	Create(ctx context.Context, pkg *models.Package) error
	GetByID(ctx context.Context, id uint) (*models.Package, error)
	ListByPartialShipmentID(ctx context.Context, partialShipmentID uint) ([]models.Package, error)
	Update(ctx context.Context, id uint, fields store.Record) (*models.Package, error)
	Delete(ctx context.Context, id uint) error
}

// StorePackageRepository 表存储包裹仓储实现
type StorePackageRepository struct {
	store store.TableStore
}

// NewPackageRepository 创建包裹仓储
func NewPackageRepository(ts store.TableStore) *StorePackageRepository {
	return &StorePackageRepository{store: ts}
}

// Create 创建包裹（分配主键并写入）
func (r *StorePackageRepository) Create(ctx context.Context, pkg *models.Package) error {
	id, err := r.store.NextID(ctx, constants.TablePackages)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	pkg.ID = id
	if pkg.Units <= 0 {
		pkg.Units = 1
	}
	pkg.CreatedAt = now
	pkg.UpdatedAt = now

	record, err := store.EncodeRecord(pkg)
	if err != nil {
		return fmt.Errorf("encode package: %w", err)
	}
	return r.store.Put(ctx, constants.TablePackages, id, record)
}

// GetByID 按主键获取包裹
func (r *StorePackageRepository) GetByID(ctx context.Context, id uint) (*models.Package, error) {
	record, err := r.store.Get(ctx, constants.TablePackages, id)
	if err != nil {
		return nil, err
	}
	var pkg models.Package
	if err := store.DecodeRecord(record, &pkg); err != nil {
		return nil, fmt.Errorf("decode package %d: %w", id, err)
	}
	return &pkg, nil
}

// ListByPartialShipmentID 按部分托运过滤（内存过滤的全表扫描）
func (r *StorePackageRepository) ListByPartialShipmentID(ctx context.Context, partialShipmentID uint) ([]models.Package, error) {
	records, err := r.store.List(ctx, constants.TablePackages)
	if err != nil {
		return nil, err
	}
	matched := make([]store.Record, 0, len(records))
	for _, record := range records {
		if record.Uint("partial_shipment_id") == partialShipmentID {
			matched = append(matched, record)
		}
	}
	return store.DecodeRecords[models.Package](matched)
}

// Update 合并更新给定字段
func (r *StorePackageRepository) Update(ctx context.Context, id uint, fields store.Record) (*models.Package, error) {
	fields["updated_at"] = time.Now().UTC()
	record, err := r.store.Update(ctx, constants.TablePackages, id, fields)
	if err != nil {
		return nil, err
	}
	var pkg models.Package
	if err := store.DecodeRecord(record, &pkg); err != nil {
		return nil, fmt.Errorf("decode package %d: %w", id, err)
	}
	return &pkg, nil
}

// Delete 删除包裹
func (r *StorePackageRepository) Delete(ctx context.Context, id uint) error {
	return r.store.Delete(ctx, constants.TablePackages, id)
}
