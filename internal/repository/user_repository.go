package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shipdesk/internal/constants"
	"github.com/shipdesk/internal/models"
	"github.com/shipdesk/internal/store"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id uint, fields store.Record) (*models.User, error)
}

// StoreUserRepository 表存储用户仓储实现
type StoreUserRepository struct {
	store store.TableStore
}

// NewUserRepository 创建用户仓储
func NewUserRepository(ts store.TableStore) *StoreUserRepository {
	return &StoreUserRepository{store: ts}
}

// Create 创建用户（分配主键并写入）
func (r *StoreUserRepository) Create(ctx context.Context, user *models.User) error {
	id, err := r.store.NextID(ctx, constants.TableUsers)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now

	record, err := store.EncodeRecord(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return r.store.Put(ctx, constants.TableUsers, id, record)
}

// GetByID 按主键获取用户
func (r *StoreUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	record, err := r.store.Get(ctx, constants.TableUsers, id)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := store.DecodeRecord(record, &user); err != nil {
		return nil, fmt.Errorf("decode user %d: %w", id, err)
	}
	return &user, nil
}

// GetByUsername 按用户名查找（全表扫描），未找到返回 store.ErrNotFound
func (r *StoreUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	records, err := r.store.List(ctx, constants.TableUsers)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record.String("username") != username {
			continue
		}
		var user models.User
		if err := store.DecodeRecord(record, &user); err != nil {
			return nil, fmt.Errorf("decode user %d: %w", record.ID(), err)
		}
		return &user, nil
	}
	return nil, store.ErrNotFound
}

// List 全表扫描用户（顺序不保证）
func (r *StoreUserRepository) List(ctx context.Context) ([]models.User, error) {
	records, err := r.store.List(ctx, constants.TableUsers)
	if err != nil {
		return nil, err
	}
	return store.DecodeRecords[models.User](records)
}

// Update 合并更新给定字段
func (r *StoreUserRepository) Update(ctx context.Context, id uint, fields store.Record) (*models.User, error) {
	fields["updated_at"] = time.Now().UTC()
	record, err := r.store.Update(ctx, constants.TableUsers, id, fields)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := store.DecodeRecord(record, &user); err != nil {
		return nil, fmt.Errorf("decode user %d: %w", id, err)
	}
	return &user, nil
}
