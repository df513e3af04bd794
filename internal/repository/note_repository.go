package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shipdesk/internal/constants"
	"github.com/shipdesk/internal/models"
	"github.com/shipdesk/internal/store"
)

// NoteRepository 备注数据访问接口
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, id uint) (*models.Note, error)
	Update(ctx context.Context, id uint, fields store.Record) (*models.Note, error)
	Delete(ctx context.Context, id uint) error
}

// StoreNoteRepository 表存储备注仓储实现
type StoreNoteRepository struct {
	store store.TableStore
}

// NewNoteRepository 创建备注仓储
func NewNoteRepository(ts store.TableStore) *StoreNoteRepository {
	return &StoreNoteRepository{store: ts}
}

// Create 创建备注（分配主键并写入）
func (r *StoreNoteRepository) Create(ctx context.Context, note *models.Note) error {
	id, err := r.store.NextID(ctx, constants.TableNotes)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	note.ID = id
	if note.Images == nil {
		note.Images = []string{}
	}
	note.CreatedAt = now
	note.UpdatedAt = now

	record, err := store.EncodeRecord(note)
	if err != nil {
		return fmt.Errorf("encode note: %w", err)
	}
	return r.store.Put(ctx, constants.TableNotes, id, record)
}

// GetByID 按主键获取备注
func (r *StoreNoteRepository) GetByID(ctx context.Context, id uint) (*models.Note, error) {
	record, err := r.store.Get(ctx, constants.TableNotes, id)
	if err != nil {
		return nil, err
	}
	var note models.Note
	if err := store.DecodeRecord(record, &note); err != nil {
		return nil, fmt.Errorf("decode note %d: %w", id, err)
	}
	return &note, nil
}

// Update 合并更新给定字段。images 字段整体替换而非追加。
func (r *StoreNoteRepository) Update(ctx context.Context, id uint, fields store.Record) (*models.Note, error) {
	fields["updated_at"] = time.Now().UTC()
	record, err := r.store.Update(ctx, constants.TableNotes, id, fields)
	if err != nil {
		return nil, err
	}
	var note models.Note
	if err := store.DecodeRecord(record, &note); err != nil {
		return nil, fmt.Errorf("decode note %d: %w", id, err)
	}
	return &note, nil
}

// Delete 删除备注
func (r *StoreNoteRepository) Delete(ctx context.Context, id uint) error {
	return r.store.Delete(ctx, constants.TableNotes, id)
}
