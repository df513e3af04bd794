// 一次性导入工具：把旧版 SQL 数据库中的实体写入表存储。
// 保留旧主键，并把每张表的 ID 计数器抬升到导入的最大主键之上。
package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/shipdesk/internal/config"
	"github.com/shipdesk/internal/constants"
	"github.com/shipdesk/internal/logger"
	"github.com/shipdesk/internal/models"
	"github.com/shipdesk/internal/provider"
	"github.com/shipdesk/internal/store"

	"github.com/glebarez/sqlite" // 纯 Go SQLite 驱动（基于 modernc.org/sqlite）
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// 旧库行结构，列名与旧版 schema 对应
type legacyCustomer struct {
	ID        uint
	Name      string
	Phone     string
	Address   string
	Origin    string
	Balance   float64
	NoteID    *uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

type legacyShipment struct {
	ID            uint
	Destination   string
	DateCreated   time.Time
	DateClosed    *time.Time
	IsOpen        bool
	TotalWeight   float64
	TotalVolume   float64
	DriverName    *string
	DriverVehicle *string
	NoteID        *uint
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type legacyPartialShipment struct {
	ID              uint
	ShipmentID      uint
	CustomerID      uint
	Cost            float64
	DiscountAmount  float64
	ExtraCostAmount float64
	AmountPaid      float64
	PaymentStatus   string
	NoteID          *uint
	ReceiverName    *string
	ReceiverPhone   *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type legacyPackage struct {
	ID                uint
	PartialShipmentID uint
	Length            float64
	Width             float64
	Height            float64
	Weight            float64
	Units             int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type legacyItem struct {
	ID                uint
	PartialShipmentID uint
	Description       string
	Quantity          int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type legacyNote struct {
	ID        uint
	Content   string
	Images    string // JSON 数组或逗号分隔
	UserID    *uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

type legacyUser struct {
	ID           uint
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (legacyCustomer) TableName() string        { return "customers" }
func (legacyShipment) TableName() string        { return "shipments" }
func (legacyPartialShipment) TableName() string { return "partial_shipments" }
func (legacyPackage) TableName() string         { return "packages" }
func (legacyItem) TableName() string            { return "partial_shipment_items" }
func (legacyNote) TableName() string            { return "notes" }
func (legacyUser) TableName() string            { return "users" }

func main() {
	var driver, dsn string
	flag.StringVar(&driver, "driver", "sqlite", "旧库驱动: sqlite / postgres")
	flag.StringVar(&dsn, "dsn", "", "旧库连接串")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if strings.TrimSpace(dsn) == "" {
		stdLog.Fatalf("缺少 -dsn 参数")
	}

	db, err := openLegacyDB(driver, dsn)
	if err != nil {
		stdLog.Fatalf("旧库连接失败: %v", err)
	}

	container, err := provider.NewContainer(cfg)
	if err != nil {
		stdLog.Fatalf("存储初始化失败: %v", err)
	}
	ts := container.Store
	ctx := context.Background()

	if err := importAll(ctx, db, ts); err != nil {
		stdLog.Fatalf("导入失败: %v", err)
	}
	stdLog.Printf("导入完成")
}

func openLegacyDB(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	return gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

func importAll(ctx context.Context, db *gorm.DB, ts store.TableStore) error {
	if err := importCustomers(ctx, db, ts); err != nil {
		return err
	}
	if err := importShipments(ctx, db, ts); err != nil {
		return err
	}
	if err := importPartialShipments(ctx, db, ts); err != nil {
		return err
	}
	if err := importPackages(ctx, db, ts); err != nil {
		return err
	}
	if err := importItems(ctx, db, ts); err != nil {
		return err
	}
	if err := importNotes(ctx, db, ts); err != nil {
		return err
	}
	return importUsers(ctx, db, ts)
}

func importCustomers(ctx context.Context, db *gorm.DB, ts store.TableStore) error {
	var rows []legacyCustomer
	if err := db.Find(&rows).Error; err != nil {
		return fmt.Errorf("read customers: %w", err)
	}
	var maxID uint
	for _, row := range rows {
		record, err := store.EncodeRecord(models.Customer{
			ID:        row.ID,
			Name:      row.Name,
			Phone:     row.Phone,
			Address:   row.Address,
			Origin:    row.Origin,
			Balance:   row.Balance,
			NoteID:    row.NoteID,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
		if err != nil {
			return err
		}
		if err := ts.Put(ctx, constants.TableCustomers, row.ID, record); err != nil {
			return err
		}
		if row.ID > maxID {
			maxID = row.ID
		}
	}
	logger.Infow("import_table_done", "table", constants.TableCustomers, "count", len(rows))
	return ts.SeedID(ctx, constants.TableCustomers, maxID)
}

func importShipments(ctx context.Context, db *gorm.DB, ts store.TableStore) error {
	var rows []legacyShipment
	if err := db.Find(&rows).Error; err != nil {
		return fmt.Errorf("read shipments: %w", err)
	}
	var maxID uint
	for _, row := range rows {
		record, err := store.EncodeRecord(models.Shipment{
			ID:            row.ID,
			Destination:   row.Destination,
			DateCreated:   row.DateCreated,
			DateClosed:    row.DateClosed,
			IsOpen:        row.IsOpen,
			TotalWeight:   row.TotalWeight,
			TotalVolume:   row.TotalVolume,
			DriverName:    row.DriverName,
			DriverVehicle: row.DriverVehicle,
			NoteID:        row.NoteID,
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
		})
		if err != nil {
			return err
		}
		if err := ts.Put(ctx, constants.TableShipments, row.ID, record); err != nil {
			return err
		}
		if row.ID > maxID {
			maxID = row.ID
		}
	}
	logger.Infow("import_table_done", "table", constants.TableShipments, "count", len(rows))
	return ts.SeedID(ctx, constants.TableShipments, maxID)
}

func importPartialShipments(ctx context.Context, db *gorm.DB, ts store.TableStore) error {
	var rows []legacyPartialShipment
	if err := db.Find(&rows).Error; err != nil {
		return fmt.Errorf("read partial shipments: %w", err)
	}
	var maxID uint
	for _, row := range rows {
		status := row.PaymentStatus
		if status == "" {
			status = constants.PaymentStatusUnpaid
		}
		record, err := store.EncodeRecord(models.PartialShipment{
			ID:              row.ID,
			ShipmentID:      row.ShipmentID,
			CustomerID:      row.CustomerID,
			Cost:            row.Cost,
			DiscountAmount:  row.DiscountAmount,
			ExtraCostAmount: row.ExtraCostAmount,
			AmountPaid:      row.AmountPaid,
			PaymentStatus:   status,
			NoteID:          row.NoteID,
			ReceiverName:    row.ReceiverName,
			ReceiverPhone:   row.ReceiverPhone,
			CreatedAt:       row.CreatedAt,
			UpdatedAt:       row.UpdatedAt,
		})
		if err != nil {
			return err
		}
		if err := ts.Put(ctx, constants.TablePartialShipments, row.ID, record); err != nil {
			return err
		}
		if row.ID > maxID {
			maxID = row.ID
		}
	}
	logger.Infow("import_table_done", "table", constants.TablePartialShipments, "count", len(rows))
	return ts.SeedID(ctx, constants.TablePartialShipments, maxID)
}

func importPackages(ctx context.Context, db *gorm.DB, ts store.TableStore) error {
	var rows []legacyPackage
	if err := db.Find(&rows).Error; err != nil {
		return fmt.Errorf("read packages: %w", err)
	}
	var maxID uint
	for _, row := range rows {
		units := row.Units
		if units <= 0 {
			units = 1
		}
		record, err := store.EncodeRecord(models.Package{
			ID:                row.ID,
			PartialShipmentID: row.PartialShipmentID,
			Length:            row.Length,
			Width:             row.Width,
			Height:            row.Height,
			Weight:            row.Weight,
			Units:             units,
			CreatedAt:         row.CreatedAt,
			UpdatedAt:         row.UpdatedAt,
		})
		if err != nil {
			return err
		}
		if err := ts.Put(ctx, constants.TablePackages, row.ID, record); err != nil {
			return err
		}
		if row.ID > maxID {
			maxID = row.ID
		}
	}
	logger.Infow("import_table_done", "table", constants.TablePackages, "count", len(rows))
	return ts.SeedID(ctx, constants.TablePackages, maxID)
}

func importItems(ctx context.Context, db *gorm.DB, ts store.TableStore) error {
	var rows []legacyItem
	if err := db.Find(&rows).Error; err != nil {
		return fmt.Errorf("read items: %w", err)
	}
	var maxID uint
	for _, row := range rows {
		record, err := store.EncodeRecord(models.PartialShipmentItem{
			ID:                row.ID,
			PartialShipmentID: row.PartialShipmentID,
			Description:       row.Description,
			Quantity:          row.Quantity,
			CreatedAt:         row.CreatedAt,
			UpdatedAt:         row.UpdatedAt,
		})
		if err != nil {
			return err
		}
		if err := ts.Put(ctx, constants.TablePartialShipmentItems, row.ID, record); err != nil {
			return err
		}
		if row.ID > maxID {
			maxID = row.ID
		}
	}
	logger.Infow("import_table_done", "table", constants.TablePartialShipmentItems, "count", len(rows))
	return ts.SeedID(ctx, constants.TablePartialShipmentItems, maxID)
}

func importNotes(ctx context.Context, db *gorm.DB, ts store.TableStore) error {
	var rows []legacyNote
	if err := db.Find(&rows).Error; err != nil {
		return fmt.Errorf("read notes: %w", err)
	}
	var maxID uint
	for _, row := range rows {
		record, err := store.EncodeRecord(models.Note{
			ID:        row.ID,
			Content:   row.Content,
			Images:    parseLegacyImages(row.Images),
			UserID:    row.UserID,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
		if err != nil {
			return err
		}
		if err := ts.Put(ctx, constants.TableNotes, row.ID, record); err != nil {
			return err
		}
		if row.ID > maxID {
			maxID = row.ID
		}
	}
	logger.Infow("import_table_done", "table", constants.TableNotes, "count", len(rows))
	return ts.SeedID(ctx, constants.TableNotes, maxID)
}

func importUsers(ctx context.Context, db *gorm.DB, ts store.TableStore) error {
	var rows []legacyUser
	if err := db.Find(&rows).Error; err != nil {
		return fmt.Errorf("read users: %w", err)
	}
	var maxID uint
	for _, row := range rows {
		record, err := store.EncodeRecord(models.User{
			ID:           row.ID,
			Username:     row.Username,
			PasswordHash: row.PasswordHash,
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
		})
		if err != nil {
			return err
		}
		if err := ts.Put(ctx, constants.TableUsers, row.ID, record); err != nil {
			return err
		}
		if row.ID > maxID {
			maxID = row.ID
		}
	}
	logger.Infow("import_table_done", "table", constants.TableUsers, "count", len(rows))
	return ts.SeedID(ctx, constants.TableUsers, maxID)
}

// parseLegacyImages 兼容 JSON 数组与逗号分隔两种旧格式
func parseLegacyImages(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}
	if strings.HasPrefix(raw, "[") {
		trimmed := strings.Trim(raw, "[]")
		if trimmed == "" {
			return []string{}
		}
		parts := strings.Split(trimmed, ",")
		images := make([]string, 0, len(parts))
		for _, part := range parts {
			image := strings.Trim(strings.TrimSpace(part), `"`)
			if image != "" {
				images = append(images, image)
			}
		}
		return images
	}
	parts := strings.Split(raw, ",")
	images := make([]string, 0, len(parts))
	for _, part := range parts {
		if image := strings.TrimSpace(part); image != "" {
			images = append(images, image)
		}
	}
	return images
}
