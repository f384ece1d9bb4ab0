package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"StockPilot/internal/domain/models"
	domrepo "StockPilot/internal/domain/repository"
	"StockPilot/internal/services/ensemble"
	applogger "StockPilot/pkg/logger"
)

// Registry maps ticker to its latest model artifact and bookkeeping row.
// Store is all-or-nothing per ticker: blobs are staged first, promoted
// only while the metadata transaction commits, so a failed upsert leaves
// the prior artifact visible to Load.
type Registry struct {
	blobs  domrepo.BlobStore
	meta   domrepo.MetadataStore
	logger *applogger.Logger
}

// New creates a Registry over the given blob and metadata stores.
func New(blobs domrepo.BlobStore, meta domrepo.MetadataStore, logger *applogger.Logger) *Registry {
	return &Registry{blobs: blobs, meta: meta, logger: logger}
}

// Store persists a training result and upserts the ticker's registry
// entry, replacing any previous artifact in place.
func (r *Registry) Store(ctx context.Context, ticker string, res *ensemble.TrainResult, dataStart, dataEnd string) error {
	modelBlob, err := res.Artifact.EncodeModel()
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}
	columnsBlob, err := res.Artifact.EncodeColumns()
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}

	stagedModel, err := r.blobs.Stage(ctx, ticker, domrepo.BlobModel, modelBlob)
	if err != nil {
		return fmt.Errorf("%w: stage model: %v", models.ErrStorageFailure, err)
	}
	stagedColumns, err := r.blobs.Stage(ctx, ticker, domrepo.BlobFeatures, columnsBlob)
	if err != nil {
		_ = stagedModel.Discard()
		return fmt.Errorf("%w: stage features: %v", models.ErrStorageFailure, err)
	}

	entry := &models.RegistryEntry{
		Ticker:        ticker,
		ModelPath:     stagedModel.Path(),
		FeaturesPath:  stagedColumns.Path(),
		LastTrainedAt: time.Now().UTC(),
		DataStart:     dataStart,
		DataEnd:       dataEnd,
		TrainScore:    res.TrainScore,
		ValScore:      res.ValScore,
		IsActive:      true,
	}

	// Promote inside the metadata transaction: a rename failure rolls the
	// upsert back, an upsert failure leaves the staged files unpromoted.
	err = r.meta.Upsert(ctx, entry, func() error {
		if err := stagedModel.Commit(); err != nil {
			return err
		}
		return stagedColumns.Commit()
	})
	if err != nil {
		_ = stagedModel.Discard()
		_ = stagedColumns.Discard()
		return fmt.Errorf("%w: upsert %s: %v", models.ErrStorageFailure, ticker, err)
	}

	if r.logger != nil {
		r.logger.Info("model stored",
			applogger.String("ticker", ticker),
			applogger.Any("train_score", res.TrainScore),
			applogger.Any("val_score", res.ValScore))
	}
	return nil
}

// Load returns the active artifact for a ticker, or
// models.ErrModelNotFound when none was ever trained.
func (r *Registry) Load(ctx context.Context, ticker string) (*ensemble.Artifact, error) {
	entry, err := r.meta.Get(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if !entry.IsActive {
		return nil, fmt.Errorf("%w: %s inactive", models.ErrModelNotFound, ticker)
	}

	modelBlob, err := r.blobs.Read(ctx, ticker, domrepo.BlobModel)
	if err != nil {
		return nil, wrapBlobErr(ticker, err)
	}
	columnsBlob, err := r.blobs.Read(ctx, ticker, domrepo.BlobFeatures)
	if err != nil {
		return nil, wrapBlobErr(ticker, err)
	}
	return ensemble.DecodeArtifact(modelBlob, columnsBlob)
}

// Entry returns the bookkeeping row for a ticker.
func (r *Registry) Entry(ctx context.Context, ticker string) (*models.RegistryEntry, error) {
	return r.meta.Get(ctx, ticker)
}

// Has reports whether an active model exists for the ticker.
func (r *Registry) Has(ctx context.Context, ticker string) bool {
	entry, err := r.meta.Get(ctx, ticker)
	return err == nil && entry.IsActive
}

func wrapBlobErr(ticker string, err error) error {
	if errors.Is(err, models.ErrModelNotFound) {
		return err
	}
	return fmt.Errorf("%w: read artifact %s: %v", models.ErrStorageFailure, ticker, err)
}
