package store

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"milling-shop-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	// Block ledger and history.
	CreateNewBlock(ctx context.Context, in NewBlockInput) (model.Block, error)
	ListBlocks(ctx context.Context, f BlockFilter) (BlockListing, error)
	GetBlock(ctx context.Context, id int64) (model.Block, error)
	EditBlock(ctx context.Context, id int64, in BlockEdit) (model.Block, error)
	DeleteBlock(ctx context.Context, id int64) (model.BlockHistory, error)
	ListBlockHistory(ctx context.Context) ([]model.BlockHistory, error)

	// Pending-order queue.
	AddPending(ctx context.Context, code string) (model.PendingOrder, bool, error)
	ListPending(ctx context.Context) ([]model.PendingOrder, error)
	EditPending(ctx context.Context, id int64, code string) (model.PendingOrder, error)
	DeletePending(ctx context.Context, id int64) error
	DeletePendingByCode(ctx context.Context, code string) error

	// Orders and reconciliation.
	Reconcile(ctx context.Context, req ReconcileRequest) (ReconcileResult, error)
	ListOrders(ctx context.Context, f OrderFilter) ([]model.Order, error)
	EditOrder(ctx context.Context, id int64, in OrderEdit) (model.Order, error)
	DeleteOrder(ctx context.Context, id int64) error

	// Tool inventory and installed tools.
	AddStock(ctx context.Context, in StockInput) (model.ToolStock, error)
	ListStock(ctx context.Context) ([]model.ToolStock, error)
	EditStock(ctx context.Context, id int64, in StockInput) (model.ToolStock, error)
	InstallFromStock(ctx context.Context, toolType, machine string) (model.InstalledTool, error)
	ListInstalled(ctx context.Context) ([]model.InstalledTool, error)
	EditInstalled(ctx context.Context, id int64, in InstalledEdit) (model.InstalledTool, error)
	Uninstall(ctx context.Context, id int64, reinstall bool) (*model.InstalledTool, error)

	// Maintenance.
	RecordActivity(ctx context.Context, in ActivityInput) (model.MaintenanceRecord, error)
	ListMaintenance(ctx context.Context) ([]model.MaintenanceRecord, error)
	EditMaintenance(ctx context.Context, id int64, in ActivityInput) (model.MaintenanceRecord, error)
	DeleteMaintenance(ctx context.Context, id int64) error
	MarkDone(ctx context.Context, id int64) (model.MaintenanceRecord, error)

	// Configuration.
	GetList(ctx context.Context, key string, def []string) ([]string, error)
	SetList(ctx context.Context, key string, values []string) error
	Settings(ctx context.Context) (map[string][]string, error)
	SaveSettings(ctx context.Context, lists map[string][]string) error
	MachineDocs(ctx context.Context) ([]MachineDoc, error)
	SaveMachineDocs(ctx context.Context, docs []MachineDoc) error

	// Statistics.
	InventoryStats(ctx context.Context, now time.Time) (InventoryStats, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db       *gorm.DB
	log      logrus.FieldLogger
	settings *cache.Cache
	now      func() time.Time
	suffix   func() string
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB, logger logrus.FieldLogger) Store {
	return newGormStore(db, logger)
}

func newGormStore(db *gorm.DB, logger logrus.FieldLogger) *gormStore {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &gormStore{
		db:       db,
		log:      logger.WithField("module", "store"),
		settings: cache.New(10*time.Minute, 20*time.Minute),
		now:      func() time.Time { return time.Now().UTC() },
		suffix:   randomSuffix,
	}
}

// DB exposes the underlying connection for handlers and tests.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// Migrate creates or updates every table the store uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Block{},
		&model.BlockHistory{},
		&model.Order{},
		&model.PendingOrder{},
		&model.ToolStock{},
		&model.InstalledTool{},
		&model.MaintenanceRecord{},
		&model.Setting{},
	)
}
