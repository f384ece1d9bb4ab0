package repository

import (
	"context"
	"time"

	"StockPilot/internal/domain/models"
)

// BarProvider fetches daily OHLCV history from the external market-data
// source. An unknown ticker or empty period yields an empty slice, not
// an error; non-trading days are simply absent.
type BarProvider interface {
	History(ctx context.Context, ticker string, from, to time.Time) ([]models.Bar, error)
}

// QuoteProvider fetches the current market snapshot for a ticker.
type QuoteProvider interface {
	Quote(ctx context.Context, ticker string) (*models.Quote, error)
}

// BlobKind discriminates the two artifact blobs stored per ticker.
type BlobKind string

const (
	BlobModel    BlobKind = "model"
	BlobFeatures BlobKind = "features"
)

// StagedBlob is a written-but-not-visible artifact blob. Commit makes it
// the active blob for its key atomically; Discard drops it.
type StagedBlob interface {
	Path() string
	Commit() error
	Discard() error
}

// BlobStore holds opaque model artifacts content-addressed by
// {ticker, kind}. Writes are two-phase so the registry can keep its
// all-or-nothing guarantee across blob and metadata updates.
type BlobStore interface {
	Stage(ctx context.Context, ticker string, kind BlobKind, blob []byte) (StagedBlob, error)
	Read(ctx context.Context, ticker string, kind BlobKind) ([]byte, error)
}

// MetadataStore is the relational bookkeeping behind the model registry.
// Upsert keys on ticker; Get returns models.ErrModelNotFound when no
// active entry exists.
type MetadataStore interface {
	Upsert(ctx context.Context, entry *models.RegistryEntry, onCommit func() error) error
	Get(ctx context.Context, ticker string) (*models.RegistryEntry, error)
}

// BarArchive persists fetched OHLCV history for later analytics. Writes
// are best-effort from the pipeline's point of view.
type BarArchive interface {
	StoreBars(ctx context.Context, ticker string, bars []models.Bar) error
}

// TrainingQueue publishes training jobs consumed by the training worker.
type TrainingQueue interface {
	Enqueue(ctx context.Context, job models.TrainingJob) error
}

// Metrics records operational measurements without binding the core to
// a metrics backend.
type Metrics interface {
	RecordPrediction(ticker string, class int)
	RecordTraining(ticker string, seconds float64, err error)
	RecordProviderRequest(op string, err error)
	RecordError(kind string)
}
