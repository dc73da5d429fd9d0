package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"reponotify/pkg/storage"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Config mirrors the storage configuration for the subscriptions table.
type Config struct {
	Driver      string `yaml:"driver"`
	DSN         string `yaml:"dsn"`
	Dialect     string `yaml:"dialect"`
	Table       string `yaml:"table"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

// Store implements storage.Store on top of GORM.
type Store struct {
	db    *gorm.DB
	table string
}

type row struct {
	TenantID   string    `gorm:"column:tenant_id;size:64;not null;uniqueIndex:idx_tenant_repo,priority:1"`
	Repository string    `gorm:"column:repository;size:255;not null;uniqueIndex:idx_tenant_repo,priority:2;index:idx_repository"`
	Secret     string    `gorm:"column:secret;size:255;not null"`
	Enabled    bool      `gorm:"column:enabled"`
	ConfigJSON string    `gorm:"column:config_json;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Open creates a GORM-backed subscription store.
func Open(cfg Config) (*Store, error) {
	if cfg.Driver == "" && cfg.Dialect == "" {
		return nil, errors.New("storage driver or dialect is required")
	}
	if cfg.DSN == "" {
		return nil, errors.New("storage dsn is required")
	}
	driver := normalizeDriver(cfg.Driver)
	if driver == "" {
		driver = normalizeDriver(cfg.Dialect)
	}
	if driver == "" {
		return nil, errors.New("unsupported storage driver")
	}

	gormDB, err := openGorm(driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	table := cfg.Table
	if table == "" {
		table = "repo_subscriptions"
	}
	store := &Store{
		db:    gormDB,
		table: table,
	}
	if cfg.AutoMigrate {
		if err := store.migrate(); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// Close closes the underlying DB connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// UpsertSubscription inserts or updates a subscription record.
func (s *Store) UpsertSubscription(ctx context.Context, record storage.SubscriptionRecord) error {
	if s == nil || s.db == nil {
		return errors.New("store is not initialized")
	}
	if record.TenantID == "" || record.Repository == "" {
		return errors.New("tenant_id and repository are required")
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	data := toRow(record)
	return s.tableDB().
		WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "repository"}},
			DoUpdates: clause.AssignmentColumns([]string{"secret", "enabled", "config_json", "updated_at"}),
		}).
		Create(&data).Error
}

// GetSubscription fetches one tenant's subscription to one repository.
func (s *Store) GetSubscription(ctx context.Context, tenantID, repository string) (*storage.SubscriptionRecord, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	var data row
	err := s.tableDB().
		WithContext(ctx).
		Where("tenant_id = ? AND repository = ?", tenantID, repository).
		Take(&data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	record := fromRow(data)
	return &record, nil
}

// ListByTenant lists every subscription owned by a tenant.
func (s *Store) ListByTenant(ctx context.Context, tenantID string) ([]storage.SubscriptionRecord, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	var data []row
	err := s.tableDB().
		WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Find(&data).Error
	if err != nil {
		return nil, err
	}
	return fromRows(data), nil
}

// FindByRepository lists every tenant subscribed to the repository full name.
func (s *Store) FindByRepository(ctx context.Context, fullName string) ([]storage.SubscriptionRecord, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	var data []row
	err := s.tableDB().
		WithContext(ctx).
		Where("repository = ?", fullName).
		Find(&data).Error
	if err != nil {
		return nil, err
	}
	return fromRows(data), nil
}

// DeleteSubscription removes one tenant's subscription to one repository.
func (s *Store) DeleteSubscription(ctx context.Context, tenantID, repository string) error {
	if s == nil || s.db == nil {
		return errors.New("store is not initialized")
	}
	return s.tableDB().
		WithContext(ctx).
		Where("tenant_id = ? AND repository = ?", tenantID, repository).
		Delete(&row{}).Error
}

func (s *Store) migrate() error {
	return s.tableDB().AutoMigrate(&row{})
}

func (s *Store) tableDB() *gorm.DB {
	return s.db.Table(s.table)
}

func toRow(record storage.SubscriptionRecord) row {
	return row{
		TenantID:   record.TenantID,
		Repository: record.Repository,
		Secret:     record.Secret,
		Enabled:    record.Enabled,
		ConfigJSON: record.ConfigJSON,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
}

func fromRow(data row) storage.SubscriptionRecord {
	return storage.SubscriptionRecord{
		TenantID:   data.TenantID,
		Repository: data.Repository,
		Secret:     data.Secret,
		Enabled:    data.Enabled,
		ConfigJSON: data.ConfigJSON,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func fromRows(data []row) []storage.SubscriptionRecord {
	records := make([]storage.SubscriptionRecord, 0, len(data))
	for _, item := range data {
		records = append(records, fromRow(item))
	}
	return records
}

func normalizeDriver(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "postgres", "postgresql", "pgx":
		return "postgres"
	case "mysql":
		return "mysql"
	case "sqlite", "sqlite3":
		return "sqlite"
	default:
		return ""
	}
}

func openGorm(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "mysql":
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "sqlite":
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", driver)
	}
}
