package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// snapshot is the single table backing the Postgres store: one jsonb row per
// collection, replaced wholesale on every save.
type snapshot struct {
	Coleccion string `gorm:"primaryKey"`
	Data      []byte `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (snapshot) TableName() string { return "snapshots" }

// PostgresStore persists snapshots through GORM.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore establishes a GORM connection backed by pgx and creates
// the snapshots table if missing.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)

	if err := db.AutoMigrate(&snapshot{}); err != nil {
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Load(ctx context.Context, coleccion string, dest any) error {
	var row snapshot
	err := s.db.WithContext(ctx).First(&row, "coleccion = ?", coleccion).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(row.Data, dest)
}

func (s *PostgresStore) Save(ctx context.Context, coleccion string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	row := snapshot{Coleccion: coleccion, Data: raw}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "coleccion"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&row).Error
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
