package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shipdesk/internal/models"
	"github.com/shipdesk/internal/repository"
	"github.com/shipdesk/internal/store"
)

// NoteInput 备注写入入参。Images 为 nil 表示本次未提供图片列表。
type NoteInput struct {
	Content string
	Images  []string
}

// Empty 内容与图片均为空
func (in NoteInput) Empty() bool {
	return strings.TrimSpace(in.Content) == "" && len(in.Images) == 0
}

// NoteService 备注服务
type NoteService struct {
	notes repository.NoteRepository
}

// NewNoteService 创建备注服务
func NewNoteService(notes repository.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

// Get 获取备注
func (s *NoteService) Get(ctx context.Context, id uint) (*models.Note, error) {
	return s.notes.GetByID(ctx, id)
}

// CreateIfPresent 内容或图片非空时创建备注并返回其 ID；
// 两者皆空时不创建，返回 nil。
func (s *NoteService) CreateIfPresent(ctx context.Context, input NoteInput, userID *uint) (*uint, error) {
	if input.Empty() {
		return nil, nil
	}
	note := &models.Note{
		Content: strings.TrimSpace(input.Content),
		Images:  input.Images,
		UserID:  userID,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return &note.ID, nil
}

// Upsert 更新或新建拥有者备注。
// existingID 非空时原地替换内容，Images 非 nil 时整体替换图片列表；
// existingID 为空时按 CreateIfPresent 语义新建。
// 返回备注 ID（可能为 nil）与是否新建。
func (s *NoteService) Upsert(ctx context.Context, existingID *uint, input NoteInput, userID *uint) (*uint, bool, error) {
	if existingID == nil {
		id, err := s.CreateIfPresent(ctx, input, userID)
		return id, id != nil, err
	}
	fields := store.Record{
		"content": strings.TrimSpace(input.Content),
	}
	if input.Images != nil {
		fields["images"] = input.Images
	}
	if userID != nil {
		fields["user_id"] = *userID
	}
	if _, err := s.notes.Update(ctx, *existingID, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// 悬挂引用，按新建处理
			id, cerr := s.CreateIfPresent(ctx, input, userID)
			return id, id != nil, cerr
		}
		return nil, false, err
	}
	return existingID, false, nil
}
