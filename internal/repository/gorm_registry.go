package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"StockPilot/internal/domain/models"
)

// TrainedModel is the relational row behind the model registry. One row
// per ticker; retraining updates it in place.
type TrainedModel struct {
	ID            uint      `gorm:"primaryKey"`
	Ticker        string    `gorm:"uniqueIndex;size:16;not null"`
	ModelPath     string    `gorm:"not null"`
	FeaturesPath  string    `gorm:"not null"`
	LastTrainedAt time.Time `gorm:"not null"`
	DataStart     string    `gorm:"size:10"`
	DataEnd       string    `gorm:"size:10"`
	TrainScore    float64
	ValScore      float64
	IsActive      bool `gorm:"not null;default:true"`
}

// TableName keeps the historical table name.
func (TrainedModel) TableName() string { return "trained_models" }

// GormMetadataStore implements the registry MetadataStore over gorm.
type GormMetadataStore struct {
	db *gorm.DB
}

// NewGormMetadataStore migrates the trained_models table and returns the
// store.
func NewGormMetadataStore(db *gorm.DB) (*GormMetadataStore, error) {
	if err := db.AutoMigrate(&TrainedModel{}); err != nil {
		return nil, fmt.Errorf("migrate trained_models: %w", err)
	}
	return &GormMetadataStore{db: db}, nil
}

// Upsert creates or replaces the ticker's row inside one transaction.
// onCommit runs inside the same transaction, after the row write; if it
// fails the row change is rolled back, which is how the registry keeps
// blob promotion and metadata atomic.
func (s *GormMetadataStore) Upsert(ctx context.Context, entry *models.RegistryEntry, onCommit func() error) error {
	row := TrainedModel{
		Ticker:        entry.Ticker,
		ModelPath:     entry.ModelPath,
		FeaturesPath:  entry.FeaturesPath,
		LastTrainedAt: entry.LastTrainedAt,
		DataStart:     entry.DataStart,
		DataEnd:       entry.DataEnd,
		TrainScore:    entry.TrainScore,
		ValScore:      entry.ValScore,
		IsActive:      entry.IsActive,
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ticker"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"model_path", "features_path", "last_trained_at",
				"data_start", "data_end", "train_score", "val_score", "is_active",
			}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("upsert %s: %w", entry.Ticker, err)
		}
		if onCommit != nil {
			return onCommit()
		}
		return nil
	})
}

// Get returns the ticker's row or models.ErrModelNotFound.
func (s *GormMetadataStore) Get(ctx context.Context, ticker string) (*models.RegistryEntry, error) {
	var row TrainedModel
	err := s.db.WithContext(ctx).Where("ticker = ?", ticker).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", models.ErrModelNotFound, ticker)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", ticker, err)
	}
	return &models.RegistryEntry{
		Ticker:        row.Ticker,
		ModelPath:     row.ModelPath,
		FeaturesPath:  row.FeaturesPath,
		LastTrainedAt: row.LastTrainedAt,
		DataStart:     row.DataStart,
		DataEnd:       row.DataEnd,
		TrainScore:    row.TrainScore,
		ValScore:      row.ValScore,
		IsActive:      row.IsActive,
	}, nil
}
