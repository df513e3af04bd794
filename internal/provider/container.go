package provider

import (
	"fmt"

	"github.com/shipdesk/internal/cache"
	"github.com/shipdesk/internal/config"
	"github.com/shipdesk/internal/logger"
	"github.com/shipdesk/internal/queue"
	"github.com/shipdesk/internal/repository"
	"github.com/shipdesk/internal/service"
	"github.com/shipdesk/internal/store"

	"github.com/redis/go-redis/v9"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	Store       store.TableStore
	QueueClient *queue.Client

	// Repositories
	CustomerRepo        repository.CustomerRepository
	ShipmentRepo        repository.ShipmentRepository
	PartialShipmentRepo repository.PartialShipmentRepository
	PackageRepo         repository.PackageRepository
	ItemRepo            repository.ItemRepository
	NoteRepo            repository.NoteRepository
	UserRepo            repository.UserRepository
	Hydrator            *repository.Hydrator

	// Services
	AuthService            *service.AuthService
	CaptchaService         *service.CaptchaService
	UploadService          *service.UploadService
	NoteService            *service.NoteService
	CustomerService        *service.CustomerService
	ShipmentService        *service.ShipmentService
	PartialShipmentService *service.PartialShipmentService
	DashboardService       *service.DashboardService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) (*Container, error) {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Store); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化表存储
	tableStore, err := newTableStore(&cfg.Store)
	if err != nil {
		return nil, err
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		Store:       tableStore,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c, nil
}

func newTableStore(cfg *config.StoreConfig) (store.TableStore, error) {
	switch cfg.Driver {
	case "redis":
		client := cache.Client()
		if client == nil {
			client = redis.NewClient(&redis.Options{
				Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
		}
		return store.NewRedisStore(client, cfg.Prefix), nil
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver: %s", cfg.Driver)
	}
}

func (c *Container) initRepositories() {
	c.CustomerRepo = repository.NewCustomerRepository(c.Store)
	c.ShipmentRepo = repository.NewShipmentRepository(c.Store)
	c.PartialShipmentRepo = repository.NewPartialShipmentRepository(c.Store)
	c.PackageRepo = repository.NewPackageRepository(c.Store)
	c.ItemRepo = repository.NewItemRepository(c.Store)
	c.NoteRepo = repository.NewNoteRepository(c.Store)
	c.UserRepo = repository.NewUserRepository(c.Store)
	c.Hydrator = repository.NewHydrator(
		c.CustomerRepo,
		c.ShipmentRepo,
		c.PartialShipmentRepo,
		c.PackageRepo,
		c.ItemRepo,
		c.NoteRepo,
	)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UploadService = service.NewUploadService(c.Config)
	c.NoteService = service.NewNoteService(c.NoteRepo)
	c.CustomerService = service.NewCustomerService(c.CustomerRepo, c.NoteService, c.Hydrator)
	c.ShipmentService = service.NewShipmentService(
		c.ShipmentRepo,
		c.PartialShipmentRepo,
		c.PackageRepo,
		c.NoteService,
		c.Hydrator,
		c.QueueClient,
	)
	c.PartialShipmentService = service.NewPartialShipmentService(
		c.PartialShipmentRepo,
		c.PackageRepo,
		c.ItemRepo,
		c.ShipmentRepo,
		c.CustomerRepo,
		c.NoteService,
		c.Hydrator,
	)
	c.DashboardService = service.NewDashboardService(
		c.CustomerRepo,
		c.ShipmentRepo,
		c.PartialShipmentRepo,
		c.PackageRepo,
		c.ItemRepo,
		c.UserRepo,
		c.Config.Dashboard,
	)
}
