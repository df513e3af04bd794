package service

import (
	"context"
	"strings"

	"github.com/shipdesk/internal/models"
	"github.com/shipdesk/internal/repository"
	"github.com/shipdesk/internal/store"
)

// CreatePartialShipmentInput 创建部分托运入参
type CreatePartialShipmentInput struct {
	ShipmentID      uint
	CustomerID      uint
	Cost            float64
	DiscountAmount  float64
	ExtraCostAmount float64
	ReceiverName    *string
	ReceiverPhone   *string
	Note            NoteInput
}

// UpdatePartialShipmentInput 更新部分托运入参，nil 字段表示不修改
type UpdatePartialShipmentInput struct {
	Cost            *float64
	DiscountAmount  *float64
	ExtraCostAmount *float64
	AmountPaid      *float64
	PaymentStatus   *string
	ReceiverName    *string
	ReceiverPhone   *string
}

// PackageInput 包裹入参
type PackageInput struct {
	Length float64
	Width  float64
	Height float64
	Weight float64
	Units  int
}

// ItemInput 货物明细入参
type ItemInput struct {
	Description string
	Quantity    int
}

// PartialShipmentService 部分托运服务
type PartialShipmentService struct {
	partials  repository.PartialShipmentRepository
	packages  repository.PackageRepository
	items     repository.ItemRepository
	shipments repository.ShipmentRepository
	customers repository.CustomerRepository
	notes     *NoteService
	hydrator  *repository.Hydrator
}

// NewPartialShipmentService 创建部分托运服务
func NewPartialShipmentService(
	partials repository.PartialShipmentRepository,
	packages repository.PackageRepository,
	items repository.ItemRepository,
	shipments repository.ShipmentRepository,
	customers repository.CustomerRepository,
	notes *NoteService,
	hydrator *repository.Hydrator,
) *PartialShipmentService {
	return &PartialShipmentService{
		partials:  partials,
		packages:  packages,
		items:     items,
		shipments: shipments,
		customers: customers,
		notes:     notes,
		hydrator:  hydrator,
	}
}

// Create 创建部分托运。所属批次与客户必须存在。
func (s *PartialShipmentService) Create(ctx context.Context, input CreatePartialShipmentInput, actorID *uint) (*models.PartialShipment, error) {
	if input.ShipmentID == 0 || input.CustomerID == 0 {
		return nil, ErrInvalidArgument
	}
	if _, err := s.shipments.GetByID(ctx, input.ShipmentID); err != nil {
		return nil, err
	}
	if _, err := s.customers.GetByID(ctx, input.CustomerID); err != nil {
		return nil, err
	}
	noteID, err := s.notes.CreateIfPresent(ctx, input.Note, actorID)
	if err != nil {
		return nil, err
	}
	partial := &models.PartialShipment{
		ShipmentID:      input.ShipmentID,
		CustomerID:      input.CustomerID,
		Cost:            input.Cost,
		DiscountAmount:  input.DiscountAmount,
		ExtraCostAmount: input.ExtraCostAmount,
		ReceiverName:    input.ReceiverName,
		ReceiverPhone:   input.ReceiverPhone,
		NoteID:          noteID,
		CreatedByUserID: actorID,
	}
	if err := s.partials.Create(ctx, partial); err != nil {
		return nil, err
	}
	return partial, nil
}

// Get 获取部分托运装配视图
func (s *PartialShipmentService) Get(ctx context.Context, id uint, opts repository.HydrateOptions) (*repository.PartialShipmentView, error) {
	partial, err := s.partials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.hydrator.PartialShipment(ctx, *partial, opts)
}

// List 部分托运列表
func (s *PartialShipmentService) List(ctx context.Context) ([]models.PartialShipment, error) {
	return s.partials.List(ctx)
}

// Update 更新部分托运金额与收货信息
func (s *PartialShipmentService) Update(ctx context.Context, id uint, input UpdatePartialShipmentInput, actorID *uint) (*models.PartialShipment, error) {
	fields := store.Record{}
	if input.Cost != nil {
		fields["cost"] = *input.Cost
	}
	if input.DiscountAmount != nil {
		fields["discount_amount"] = *input.DiscountAmount
	}
	if input.ExtraCostAmount != nil {
		fields["extra_cost_amount"] = *input.ExtraCostAmount
	}
	if input.AmountPaid != nil {
		fields["amount_paid"] = *input.AmountPaid
	}
	if input.PaymentStatus != nil {
		fields["payment_status"] = *input.PaymentStatus
	}
	if input.ReceiverName != nil {
		fields["receiver_name"] = *input.ReceiverName
	}
	if input.ReceiverPhone != nil {
		fields["receiver_phone"] = *input.ReceiverPhone
	}
	if actorID != nil {
		fields["updated_by_user_id"] = *actorID
	}
	return s.partials.Update(ctx, id, fields)
}

// UpdateNote 更新或挂接部分托运备注
func (s *PartialShipmentService) UpdateNote(ctx context.Context, id uint, input NoteInput, actorID *uint) (*models.PartialShipment, error) {
	partial, err := s.partials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	noteID, created, err := s.notes.Upsert(ctx, partial.NoteID, input, actorID)
	if err != nil {
		return nil, err
	}
	if !created {
		return partial, nil
	}
	fields := store.Record{"note_id": *noteID}
	if actorID != nil {
		fields["updated_by_user_id"] = *actorID
	}
	return s.partials.Update(ctx, id, fields)
}

// AddPackage 添加包裹并把贡献量累加到所属批次合计
func (s *PartialShipmentService) AddPackage(ctx context.Context, partialID uint, input PackageInput, actorID *uint) (*models.Package, error) {
	partial, err := s.partials.GetByID(ctx, partialID)
	if err != nil {
		return nil, err
	}
	pkg := &models.Package{
		PartialShipmentID: partialID,
		Length:            input.Length,
		Width:             input.Width,
		Height:            input.Height,
		Weight:            input.Weight,
		Units:             input.Units,
		CreatedByUserID:   actorID,
	}
	if err := s.packages.Create(ctx, pkg); err != nil {
		return nil, err
	}
	if err := s.adjustShipmentTotals(ctx, partial.ShipmentID, pkg.WeightTotal(), pkg.VolumeTotal()); err != nil {
		return nil, err
	}
	return pkg, nil
}

// UpdatePackage 更新包裹并按贡献量差值调整批次合计
func (s *PartialShipmentService) UpdatePackage(ctx context.Context, packageID uint, input PackageInput, actorID *uint) (*models.Package, error) {
	before, err := s.packages.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	partial, err := s.partials.GetByID(ctx, before.PartialShipmentID)
	if err != nil {
		return nil, err
	}
	fields := store.Record{
		"length": input.Length,
		"width":  input.Width,
		"height": input.Height,
		"weight": input.Weight,
		"units":  input.Units,
	}
	if actorID != nil {
		fields["updated_by_user_id"] = *actorID
	}
	after, err := s.packages.Update(ctx, packageID, fields)
	if err != nil {
		return nil, err
	}
	deltaWeight := after.WeightTotal() - before.WeightTotal()
	deltaVolume := after.VolumeTotal() - before.VolumeTotal()
	if err := s.adjustShipmentTotals(ctx, partial.ShipmentID, deltaWeight, deltaVolume); err != nil {
		return nil, err
	}
	return after, nil
}

// DeletePackage 删除包裹并从批次合计中扣除其贡献量
func (s *PartialShipmentService) DeletePackage(ctx context.Context, packageID uint) error {
	pkg, err := s.packages.GetByID(ctx, packageID)
	if err != nil {
		return err
	}
	partial, err := s.partials.GetByID(ctx, pkg.PartialShipmentID)
	if err != nil {
		return err
	}
	if err := s.packages.Delete(ctx, packageID); err != nil {
		return err
	}
	return s.adjustShipmentTotals(ctx, partial.ShipmentID, -pkg.WeightTotal(), -pkg.VolumeTotal())
}

// AddItem 添加货物明细
func (s *PartialShipmentService) AddItem(ctx context.Context, partialID uint, input ItemInput, actorID *uint) (*models.PartialShipmentItem, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, ErrInvalidArgument
	}
	if _, err := s.partials.GetByID(ctx, partialID); err != nil {
		return nil, err
	}
	item := &models.PartialShipmentItem{
		PartialShipmentID: partialID,
		Description:       description,
		Quantity:          input.Quantity,
		CreatedByUserID:   actorID,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem 更新货物明细
func (s *PartialShipmentService) UpdateItem(ctx context.Context, itemID uint, input ItemInput, actorID *uint) (*models.PartialShipmentItem, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, ErrInvalidArgument
	}
	fields := store.Record{
		"description": description,
		"quantity":    input.Quantity,
	}
	if actorID != nil {
		fields["updated_by_user_id"] = *actorID
	}
	return s.items.Update(ctx, itemID, fields)
}

// DeleteItem 删除货物明细
func (s *PartialShipmentService) DeleteItem(ctx context.Context, itemID uint) error {
	return s.items.Delete(ctx, itemID)
}

// Delete 删除部分托运，级联删除其包裹与货物明细，
// 并从所属批次合计中扣除包裹贡献量。
func (s *PartialShipmentService) Delete(ctx context.Context, id uint) error {
	partial, err := s.partials.GetByID(ctx, id)
	if err != nil {
		return err
	}
	packages, err := s.packages.ListByPartialShipmentID(ctx, id)
	if err != nil {
		return err
	}
	var weight, volume float64
	for _, pkg := range packages {
		weight += pkg.WeightTotal()
		volume += pkg.VolumeTotal()
		if err := s.packages.Delete(ctx, pkg.ID); err != nil {
			return err
		}
	}
	items, err := s.items.ListByPartialShipmentID(ctx, id)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := s.items.Delete(ctx, item.ID); err != nil {
			return err
		}
	}
	if err := s.partials.Delete(ctx, id); err != nil {
		return err
	}
	return s.adjustShipmentTotals(ctx, partial.ShipmentID, -weight, -volume)
}

// adjustShipmentTotals 原子调整批次合计，两项增量皆为零时不写入
func (s *PartialShipmentService) adjustShipmentTotals(ctx context.Context, shipmentID uint, deltaWeight, deltaVolume float64) error {
	if deltaWeight == 0 && deltaVolume == 0 {
		return nil
	}
	_, err := s.shipments.IncrementTotals(ctx, shipmentID, deltaWeight, deltaVolume)
	return err
}
