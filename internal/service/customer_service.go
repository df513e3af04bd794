package service

import (
	"context"
	"strings"

	"github.com/shipdesk/internal/models"
	"github.com/shipdesk/internal/repository"
	"github.com/shipdesk/internal/store"
)

// CreateCustomerInput 创建客户入参
type CreateCustomerInput struct {
	Name    string
	Phone   string
	Address string
	Origin  string
	Note    NoteInput
}

// UpdateCustomerInput 更新客户入参，nil 字段表示不修改
type UpdateCustomerInput struct {
	Name    *string
	Phone   *string
	Address *string
	Origin  *string
}

// CustomerService 客户服务
type CustomerService struct {
	customers repository.CustomerRepository
	notes     *NoteService
	hydrator  *repository.Hydrator
}

// NewCustomerService 创建客户服务
func NewCustomerService(customers repository.CustomerRepository, notes *NoteService, hydrator *repository.Hydrator) *CustomerService {
	return &CustomerService{customers: customers, notes: notes, hydrator: hydrator}
}

// Create 创建客户。备注内容或图片非空时先建备注再挂接。
func (s *CustomerService) Create(ctx context.Context, input CreateCustomerInput, actorID *uint) (*models.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidArgument
	}
	noteID, err := s.notes.CreateIfPresent(ctx, input.Note, actorID)
	if err != nil {
		return nil, err
	}
	customer := &models.Customer{
		Name:            name,
		Phone:           strings.TrimSpace(input.Phone),
		Address:         strings.TrimSpace(input.Address),
		Origin:          strings.TrimSpace(input.Origin),
		NoteID:          noteID,
		CreatedByUserID: actorID,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Get 获取客户装配视图
func (s *CustomerService) Get(ctx context.Context, id uint, opts repository.HydrateOptions) (*repository.CustomerView, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.hydrator.Customer(ctx, *customer, opts)
}

// List 客户列表
func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	return s.customers.List(ctx)
}

// Update 更新客户基础字段
func (s *CustomerService) Update(ctx context.Context, id uint, input UpdateCustomerInput, actorID *uint) (*models.Customer, error) {
	fields := store.Record{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidArgument
		}
		fields["name"] = name
	}
	if input.Phone != nil {
		fields["phone"] = strings.TrimSpace(*input.Phone)
	}
	if input.Address != nil {
		fields["address"] = strings.TrimSpace(*input.Address)
	}
	if input.Origin != nil {
		fields["origin"] = strings.TrimSpace(*input.Origin)
	}
	if actorID != nil {
		fields["updated_by_user_id"] = *actorID
	}
	return s.customers.Update(ctx, id, fields)
}

// UpdateNote 更新或挂接客户备注
func (s *CustomerService) UpdateNote(ctx context.Context, id uint, input NoteInput, actorID *uint) (*models.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	noteID, created, err := s.notes.Upsert(ctx, customer.NoteID, input, actorID)
	if err != nil {
		return nil, err
	}
	if !created {
		return customer, nil
	}
	fields := store.Record{"note_id": *noteID}
	if actorID != nil {
		fields["updated_by_user_id"] = *actorID
	}
	return s.customers.Update(ctx, id, fields)
}

// AdjustBalance 原子调整余额。零增量不产生任何写入，直接返回当前记录。
func (s *CustomerService) AdjustBalance(ctx context.Context, id uint, delta float64) (*models.Customer, error) {
	if delta == 0 {
		return s.customers.GetByID(ctx, id)
	}
	return s.customers.IncrementBalance(ctx, id, delta)
}

// Delete 删除客户。仍被部分托运引用时返回冲突错误。
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	return s.customers.Delete(ctx, id)
}
