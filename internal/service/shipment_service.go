package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shipdesk/internal/logger"
	"github.com/shipdesk/internal/models"
	"github.com/shipdesk/internal/queue"
	"github.com/shipdesk/internal/repository"
	"github.com/shipdesk/internal/store"
)

// CreateShipmentInput 创建批次入参
type CreateShipmentInput struct {
	Destination   string
	DriverName    *string
	DriverVehicle *string
	Note          NoteInput
}

// UpdateShipmentInput 更新批次入参，nil 字段表示不修改
type UpdateShipmentInput struct {
	Destination   *string
	DriverName    *string
	DriverVehicle *string
}

// ShipmentService 批次服务
type ShipmentService struct {
	shipments repository.ShipmentRepository
	partials  repository.PartialShipmentRepository
	packages  repository.PackageRepository
	notes     *NoteService
	hydrator  *repository.Hydrator
	queue     *queue.Client
}

// NewShipmentService 创建批次服务
func NewShipmentService(
	shipments repository.ShipmentRepository,
	partials repository.PartialShipmentRepository,
	packages repository.PackageRepository,
	notes *NoteService,
	hydrator *repository.Hydrator,
	queueClient *queue.Client,
) *ShipmentService {
	return &ShipmentService{
		shipments: shipments,
		partials:  partials,
		packages:  packages,
		notes:     notes,
		hydrator:  hydrator,
		queue:     queueClient,
	}
}

// Create 创建批次，初始为开放状态，合计为零
func (s *ShipmentService) Create(ctx context.Context, input CreateShipmentInput, actorID *uint) (*models.Shipment, error) {
	destination := strings.TrimSpace(input.Destination)
	if destination == "" {
		return nil, ErrInvalidArgument
	}
	noteID, err := s.notes.CreateIfPresent(ctx, input.Note, actorID)
	if err != nil {
		return nil, err
	}
	shipment := &models.Shipment{
		Destination:     destination,
		IsOpen:          true,
		DriverName:      input.DriverName,
		DriverVehicle:   input.DriverVehicle,
		NoteID:          noteID,
		CreatedByUserID: actorID,
	}
	if err := s.shipments.Create(ctx, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

// Get 获取批次装配视图
func (s *ShipmentService) Get(ctx context.Context, id uint, opts repository.HydrateOptions) (*repository.ShipmentView, error) {
	shipment, err := s.shipments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.hydrator.Shipment(ctx, *shipment, opts)
}

// List 批次列表
func (s *ShipmentService) List(ctx context.Context) ([]models.Shipment, error) {
	return s.shipments.List(ctx)
}

// Update 更新批次基础字段
func (s *ShipmentService) Update(ctx context.Context, id uint, input UpdateShipmentInput, actorID *uint) (*models.Shipment, error) {
	fields := store.Record{}
	if input.Destination != nil {
		destination := strings.TrimSpace(*input.Destination)
		if destination == "" {
			return nil, ErrInvalidArgument
		}
		fields["destination"] = destination
	}
	if input.DriverName != nil {
		fields["driver_name"] = *input.DriverName
	}
	if input.DriverVehicle != nil {
		fields["driver_vehicle"] = *input.DriverVehicle
	}
	if actorID != nil {
		fields["updated_by_user_id"] = *actorID
	}
	return s.shipments.Update(ctx, id, fields)
}

// Close 关闭批次。关闭后不再接受转移。
func (s *ShipmentService) Close(ctx context.Context, id uint, actorID *uint) (*models.Shipment, error) {
	fields := store.Record{
		"is_open":     false,
		"date_closed": time.Now().UTC(),
	}
	if actorID != nil {
		fields["updated_by_user_id"] = *actorID
	}
	shipment, err := s.shipments.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.enqueueDashboardWarm()
	return shipment, nil
}

// Reopen 重新开放批次
func (s *ShipmentService) Reopen(ctx context.Context, id uint, actorID *uint) (*models.Shipment, error) {
	fields := store.Record{
		"is_open":     true,
		"date_closed": nil,
	}
	if actorID != nil {
		fields["updated_by_user_id"] = *actorID
	}
	shipment, err := s.shipments.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.enqueueDashboardWarm()
	return shipment, nil
}

// UpdateNote 更新或挂接批次备注
func (s *ShipmentService) UpdateNote(ctx context.Context, id uint, input NoteInput, actorID *uint) (*models.Shipment, error) {
	shipment, err := s.shipments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	noteID, created, err := s.notes.Upsert(ctx, shipment.NoteID, input, actorID)
	if err != nil {
		return nil, err
	}
	if !created {
		return shipment, nil
	}
	fields := store.Record{"note_id": *noteID}
	if actorID != nil {
		fields["updated_by_user_id"] = *actorID
	}
	return s.shipments.Update(ctx, id, fields)
}

// Transfer 在两个开放批次之间转移部分托运。
// 所有前置条件先于任何写入校验，首个不满足的条件即中止且无部分副作用。
// 改挂与合计调整是两条独立的原子单记录操作，之间没有跨记录事务；
// 中途失败会留下可由对账任务修复的暂时不一致（合计为缓存派生值）。
func (s *ShipmentService) Transfer(ctx context.Context, partialID, sourceID, targetID uint, actorID *uint) (*models.PartialShipment, error) {
	if sourceID == targetID {
		return nil, fmt.Errorf("%w: shipment %d", ErrSameShipment, sourceID)
	}
	partial, err := s.partials.GetByID(ctx, partialID)
	if err != nil {
		return nil, err
	}
	if partial.ShipmentID != sourceID {
		return nil, fmt.Errorf("%w: partial shipment %d is in shipment %d", ErrNotInSourceShipment, partialID, partial.ShipmentID)
	}
	source, err := s.shipments.GetByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if !source.IsOpen {
		return nil, fmt.Errorf("%w: source shipment %d", ErrShipmentClosed, sourceID)
	}
	target, err := s.shipments.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !target.IsOpen {
		return nil, fmt.Errorf("%w: target shipment %d", ErrShipmentClosed, targetID)
	}

	weight, volume, err := s.packageTotals(ctx, partialID)
	if err != nil {
		return nil, err
	}

	fields := store.Record{"shipment_id": targetID}
	if actorID != nil {
		fields["updated_by_user_id"] = *actorID
	}
	moved, err := s.partials.Update(ctx, partialID, fields)
	if err != nil {
		return nil, err
	}

	if weight != 0 || volume != 0 {
		if _, err := s.shipments.IncrementTotals(ctx, sourceID, -weight, -volume); err != nil {
			s.enqueueRecalc(sourceID, targetID)
			return nil, fmt.Errorf("decrement source totals: %w", err)
		}
		if _, err := s.shipments.IncrementTotals(ctx, targetID, weight, volume); err != nil {
			s.enqueueRecalc(sourceID, targetID)
			return nil, fmt.Errorf("increment target totals: %w", err)
		}
	}

	logger.Infow("partial_shipment_transferred",
		"partial_shipment_id", partialID,
		"source_shipment_id", sourceID,
		"target_shipment_id", targetID,
		"weight", weight,
		"volume", volume,
	)
	s.enqueueDashboardWarm()
	return moved, nil
}

// RecalcTotals 从包裹重新推导批次合计并整体覆盖。
// 合计是缓存派生值，该操作用于修复转移中途失败留下的不一致。
func (s *ShipmentService) RecalcTotals(ctx context.Context, shipmentID uint) (*models.Shipment, error) {
	partials, err := s.partials.ListByShipmentID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	var weight, volume float64
	for _, partial := range partials {
		w, v, err := s.packageTotals(ctx, partial.ID)
		if err != nil {
			return nil, err
		}
		weight += w
		volume += v
	}
	return s.shipments.Update(ctx, shipmentID, store.Record{
		"total_weight": weight,
		"total_volume": volume,
	})
}

// Delete 删除批次。仍包含部分托运时返回冲突错误。
func (s *ShipmentService) Delete(ctx context.Context, id uint) error {
	return s.shipments.Delete(ctx, id)
}

func (s *ShipmentService) packageTotals(ctx context.Context, partialID uint) (weight, volume float64, err error) {
	packages, err := s.packages.ListByPartialShipmentID(ctx, partialID)
	if err != nil {
		return 0, 0, err
	}
	for _, pkg := range packages {
		weight += pkg.WeightTotal()
		volume += pkg.VolumeTotal()
	}
	return weight, volume, nil
}

// enqueueDashboardWarm 批次开合与转移直接改变仪表盘汇总，成功后预热缓存
func (s *ShipmentService) enqueueDashboardWarm() {
	if err := s.queue.EnqueueDashboardWarmCache(); err != nil {
		logger.Warnw("dashboard_warm_enqueue_failed", "error", err)
	}
}

func (s *ShipmentService) enqueueRecalc(shipmentIDs ...uint) {
	for _, id := range shipmentIDs {
		if err := s.queue.EnqueueShipmentRecalcTotals(queue.ShipmentRecalcTotalsPayload{ShipmentID: id}); err != nil {
			logger.Warnw("shipment_recalc_enqueue_failed", "shipment_id", id, "error", err)
		}
	}
}
