package repository

import (
	"context"
	"errors"

	"github.com/shipdesk/internal/models"
	"github.com/shipdesk/internal/store"
)

// HydrateOptions 装配选项，各开关互相独立，未请求的关联不读存储
type HydrateOptions struct {
	IncludeCustomer bool // 装配所属客户
	IncludeShipment bool // 装配所属批次
	IncludePartials bool // 装配部分托运列表（批次与客户视图）
	IncludePackages bool // 装配包裹列表
	IncludeItems    bool // 装配货物明细列表
	IncludeNote     bool // 装配备注
}

// PartialShipmentView 部分托运装配视图
type PartialShipmentView struct {
	models.PartialShipment
	Revenue     float64                      `json:"revenue"`
	Outstanding float64                      `json:"outstanding"`
	Customer    *models.Customer             `json:"customer,omitempty"`
	Shipment    *models.Shipment             `json:"shipment,omitempty"`
	Packages    []models.Package             `json:"packages,omitempty"`
	Items       []models.PartialShipmentItem `json:"items,omitempty"`
	Note        *models.Note                 `json:"note,omitempty"`
}

// ShipmentView 批次装配视图
type ShipmentView struct {
	models.Shipment
	Status           string                `json:"status"`
	PartialShipments []PartialShipmentView `json:"partial_shipments,omitempty"`
	Note             *models.Note          `json:"note,omitempty"`
}

// CustomerView 客户装配视图
type CustomerView struct {
	models.Customer
	PartialShipments []PartialShipmentView `json:"partial_shipments,omitempty"`
	Note             *models.Note          `json:"note,omitempty"`
}

// Hydrator 把扁平记录装配为带关联对象的视图。
// 悬挂引用（note_id 指向已不存在的备注等）按缺失处理而不报错。
type Hydrator struct {
	customers CustomerRepository
	shipments ShipmentRepository
	partials  PartialShipmentRepository
	packages  PackageRepository
	items     ItemRepository
	notes     NoteRepository
}

// NewHydrator 创建装配器
func NewHydrator(
	customers CustomerRepository,
	shipments ShipmentRepository,
	partials PartialShipmentRepository,
	packages PackageRepository,
	items ItemRepository,
	notes NoteRepository,
) *Hydrator {
	return &Hydrator{
		customers: customers,
		shipments: shipments,
		partials:  partials,
		packages:  packages,
		items:     items,
		notes:     notes,
	}
}

// PartialShipment 装配单条部分托运
func (h *Hydrator) PartialShipment(ctx context.Context, partial models.PartialShipment, opts HydrateOptions) (*PartialShipmentView, error) {
	view := &PartialShipmentView{
		PartialShipment: partial,
		Revenue:         partial.Revenue(),
		Outstanding:     partial.Outstanding(),
	}
	if opts.IncludeCustomer {
		customer, err := h.customers.GetByID(ctx, partial.CustomerID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		view.Customer = customer
	}
	if opts.IncludeShipment {
		shipment, err := h.shipments.GetByID(ctx, partial.ShipmentID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		view.Shipment = shipment
	}
	if opts.IncludePackages {
		packages, err := h.packages.ListByPartialShipmentID(ctx, partial.ID)
		if err != nil {
			return nil, err
		}
		view.Packages = packages
	}
	if opts.IncludeItems {
		items, err := h.items.ListByPartialShipmentID(ctx, partial.ID)
		if err != nil {
			return nil, err
		}
		view.Items = items
	}
	if opts.IncludeNote {
		note, err := h.note(ctx, partial.NoteID)
		if err != nil {
			return nil, err
		}
		view.Note = note
	}
	return view, nil
}

// PartialShipments 批量装配部分托运
func (h *Hydrator) PartialShipments(ctx context.Context, partials []models.PartialShipment, opts HydrateOptions) ([]PartialShipmentView, error) {
	views := make([]PartialShipmentView, 0, len(partials))
	for _, partial := range partials {
		view, err := h.PartialShipment(ctx, partial, opts)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// Shipment 装配批次视图，按选项挂接包含的部分托运与备注
func (h *Hydrator) Shipment(ctx context.Context, shipment models.Shipment, opts HydrateOptions) (*ShipmentView, error) {
	view := &ShipmentView{
		Shipment: shipment,
		Status:   shipment.Status(),
	}
	if opts.IncludePartials {
		partials, err := h.partials.ListByShipmentID(ctx, shipment.ID)
		if err != nil {
			return nil, err
		}
		view.PartialShipments, err = h.PartialShipments(ctx, partials, opts)
		if err != nil {
			return nil, err
		}
	}
	if opts.IncludeNote {
		var err error
		view.Note, err = h.note(ctx, shipment.NoteID)
		if err != nil {
			return nil, err
		}
	}
	return view, nil
}

// Customer 装配客户视图，按选项挂接名下部分托运与备注
func (h *Hydrator) Customer(ctx context.Context, customer models.Customer, opts HydrateOptions) (*CustomerView, error) {
	view := &CustomerView{Customer: customer}
	if opts.IncludePartials {
		partials, err := h.partials.ListByCustomerID(ctx, customer.ID)
		if err != nil {
			return nil, err
		}
		view.PartialShipments, err = h.PartialShipments(ctx, partials, opts)
		if err != nil {
			return nil, err
		}
	}
	if opts.IncludeNote {
		var err error
		view.Note, err = h.note(ctx, customer.NoteID)
		if err != nil {
			return nil, err
		}
	}
	return view, nil
}

func (h *Hydrator) note(ctx context.Context, noteID *uint) (*models.Note, error) {
	if noteID == nil {
		return nil, nil
	}
	note, err := h.notes.GetByID(ctx, *noteID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return note, nil
}
