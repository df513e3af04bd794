package service

import (
	"context"
	"time"

	"github.com/shipdesk/internal/cache"
	"github.com/shipdesk/internal/config"
	"github.com/shipdesk/internal/logger"
	"github.com/shipdesk/internal/repository"
	"github.com/shipdesk/internal/stats"
)

const dashboardCacheKey = "dashboard:overview"

// DashboardOverview 仪表盘聚合结果
type DashboardOverview struct {
	Dashboard   stats.DashboardSummary `json:"dashboard"`
	Financial   stats.FinancialSummary `json:"financial"`
	Customers   stats.CustomerSummary  `json:"customers"`
	Activity    []stats.Activity       `json:"activity"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// DashboardService 仪表盘服务。
// 聚合全量列表计算汇总，结果短 TTL 缓存在 Redis。
type DashboardService struct {
	customers repository.CustomerRepository
	shipments repository.ShipmentRepository
	partials  repository.PartialShipmentRepository
	packages  repository.PackageRepository
	items     repository.ItemRepository
	users     repository.UserRepository
	cacheTTL  time.Duration
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(
	customers repository.CustomerRepository,
	shipments repository.ShipmentRepository,
	partials repository.PartialShipmentRepository,
	packages repository.PackageRepository,
	items repository.ItemRepository,
	users repository.UserRepository,
	cfg config.DashboardConfig,
) *DashboardService {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &DashboardService{
		customers: customers,
		shipments: shipments,
		partials:  partials,
		packages:  packages,
		items:     items,
		users:     users,
		cacheTTL:  ttl,
	}
}

// Overview 获取仪表盘汇总。forceRefresh 跳过缓存并回填。
func (s *DashboardService) Overview(ctx context.Context, forceRefresh bool) (*DashboardOverview, error) {
	if !forceRefresh {
		var cached DashboardOverview
		hit, err := cache.GetJSON(ctx, dashboardCacheKey, &cached)
		if err != nil {
			logger.Warnw("dashboard_cache_read_failed", "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	overview, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, dashboardCacheKey, overview, s.cacheTTL); err != nil {
		logger.Warnw("dashboard_cache_write_failed", "error", err)
	}
	return overview, nil
}

// WarmCache 预热仪表盘缓存
func (s *DashboardService) WarmCache(ctx context.Context) error {
	_, err := s.Overview(ctx, true)
	return err
}

func (s *DashboardService) build(ctx context.Context) (*DashboardOverview, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	shipments, err := s.shipments.List(ctx)
	if err != nil {
		return nil, err
	}
	partials, err := s.partials.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	var activityInput stats.ActivityInput
	activityInput.Customers = customers
	activityInput.Shipments = shipments
	activityInput.Partials = partials
	for _, partial := range partials {
		packages, err := s.packages.ListByPartialShipmentID(ctx, partial.ID)
		if err != nil {
			return nil, err
		}
		activityInput.Packages = append(activityInput.Packages, packages...)
		items, err := s.items.ListByPartialShipmentID(ctx, partial.ID)
		if err != nil {
			return nil, err
		}
		activityInput.Items = append(activityInput.Items, items...)
	}

	return &DashboardOverview{
		Dashboard:   stats.BuildDashboardSummary(shipments, partials),
		Financial:   stats.BuildFinancialSummary(partials),
		Customers:   stats.BuildCustomerSummary(customers, partials),
		Activity:    stats.BuildActivityFeed(activityInput, users),
		GeneratedAt: time.Now().UTC(),
	}, nil
}
