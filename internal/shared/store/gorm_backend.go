package store

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	slogGorm "github.com/orandin/slog-gorm"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// document is the single table behind GormBackend
type document struct {
	Kind      string         `gorm:"primaryKey;size:64"`
	Parent    string         `gorm:"primaryKey;size:128"`
	Key       string         `gorm:"column:doc_key;primaryKey;size:255"`
	Data      datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (document) TableName() string {
	return "documents"
}

// GormBackend stores documents in a relational database through gorm
type GormBackend struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) a sqlite database file
func OpenSQLite(path string, logger *slog.Logger) (*GormBackend, error) {
	backend, err := openGorm(sqlite.Open(path), logger)
	if err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}

	// sqlite serialises writers anyway; one connection avoids "database is locked"
	sqlDB, err := backend.db.DB()
	if err != nil {
		return nil, oops.With("path", path, "context", "failed to access sqlite pool").Wrap(err)
	}
	sqlDB.SetMaxOpenConns(1)

	return backend, nil
}

// OpenPostgres connects to postgres using a libpq style DSN
func OpenPostgres(dsn string, logger *slog.Logger) (*GormBackend, error) {
	backend, err := openGorm(postgres.Open(dsn), logger)
	if err != nil {
		return nil, oops.With("driver", "postgres").Wrap(err)
	}
	return backend, nil
}

func openGorm(dialector gorm.Dialector, logger *slog.Logger) (*GormBackend, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: slogGorm.New(slogGorm.WithLogger(logger)),
	})
	if err != nil {
		return nil, oops.With("context", "failed to open database").Wrap(err)
	}

	if err := db.AutoMigrate(&document{}); err != nil {
		return nil, oops.With("context", "failed to migrate documents table").Wrap(err)
	}

	return &GormBackend{db: db}, nil
}

func (b *GormBackend) Get(ctx context.Context, kind, parent, key string) ([]byte, error) {
	var doc document
	err := b.db.WithContext(ctx).
		Where("kind = ? AND parent = ? AND doc_key = ?", kind, parent, key).
		First(&doc).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, oops.With("kind", kind, "parent", parent, "key", key).Wrap(errors.ErrNotFound)
		}
		return nil, oops.With("kind", kind, "parent", parent, "key", key, "context", "failed to read document").Wrap(err)
	}

	return doc.Data, nil
}

func (b *GormBackend) Put(ctx context.Context, kind, parent, key string, data []byte) error {
	doc := document{
		Kind:      kind,
		Parent:    parent,
		Key:       key,
		Data:      datatypes.JSON(data),
		UpdatedAt: time.Now(),
	}

	err := b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}, {Name: "parent"}, {Name: "doc_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return oops.With("kind", kind, "parent", parent, "key", key, "context", "failed to write document").Wrap(err)
	}
	return nil
}

func (b *GormBackend) Delete(ctx context.Context, kind, parent, key string) error {
	result := b.db.WithContext(ctx).
		Where("kind = ? AND parent = ? AND doc_key = ?", kind, parent, key).
		Delete(&document{})
	if result.Error != nil {
		return oops.With("kind", kind, "parent", parent, "key", key, "context", "failed to delete document").Wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return oops.With("kind", kind, "parent", parent, "key", key).Wrap(errors.ErrNotFound)
	}
	return nil
}

func (b *GormBackend) List(ctx context.Context, kind, parent string) ([][]byte, error) {
	var docs []document
	err := b.db.WithContext(ctx).
		Where("kind = ? AND parent = ?", kind, parent).
		Order("doc_key").
		Find(&docs).Error
	if err != nil {
		return nil, oops.With("kind", kind, "parent", parent, "context", "failed to list documents").Wrap(err)
	}

	return lo.Map(docs, func(doc document, _ int) []byte {
		return doc.Data
	}), nil
}

func (b *GormBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return oops.With("context", "failed to access connection pool").Wrap(err)
	}
	return sqlDB.Close()
}
