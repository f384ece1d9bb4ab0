package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"StockPilot/internal/domain/models"
	domrepo "StockPilot/internal/domain/repository"
	"StockPilot/internal/registry"
	applogger "StockPilot/pkg/logger"
)

type fakeBarProvider struct {
	bars  map[string][]models.Bar
	err   error
	calls int

	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeBarProvider) History(_ context.Context, ticker string, from, to time.Time) ([]models.Bar, error) {
	f.calls++
	f.lastFrom, f.lastTo = from, to
	if f.err != nil {
		return nil, f.err
	}
	return f.bars[ticker], nil
}

type fakeQuoteProvider struct {
	quotes map[string]*models.Quote
	err    error
}

func (f *fakeQuoteProvider) Quote(_ context.Context, ticker string) (*models.Quote, error) {
	if f.err != nil {
		return nil, f.err
	}
	q, ok := f.quotes[ticker]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrNoData, ticker)
	}
	return q, nil
}

type fakeQueue struct {
	jobs []models.TrainingJob
	err  error
}

func (f *fakeQueue) Enqueue(_ context.Context, job models.TrainingJob) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

type fakeCache struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{m: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.m[key]
	return b, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[key] = value
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.m, k)
	}
	return nil
}

type memStaged struct {
	store *memBlobStore
	key   string
	blob  []byte
}

func (s *memStaged) Path() string { return "/mem/" + s.key }

func (s *memStaged) Commit() error {
	s.store.blobs[s.key] = s.blob
	return nil
}

func (s *memStaged) Discard() error { return nil }

type memBlobStore struct {
	blobs map[string][]byte
}

func (m *memBlobStore) Stage(_ context.Context, ticker string, kind domrepo.BlobKind, blob []byte) (domrepo.StagedBlob, error) {
	return &memStaged{store: m, key: ticker + "/" + string(kind), blob: blob}, nil
}

func (m *memBlobStore) Read(_ context.Context, ticker string, kind domrepo.BlobKind) ([]byte, error) {
	b, ok := m.blobs[ticker+"/"+string(kind)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrModelNotFound, ticker)
	}
	return b, nil
}

type memMetaStore struct {
	entries map[string]*models.RegistryEntry
}

func (m *memMetaStore) Upsert(_ context.Context, entry *models.RegistryEntry, onCommit func() error) error {
	if err := onCommit(); err != nil {
		return err
	}
	cp := *entry
	m.entries[entry.Ticker] = &cp
	return nil
}

func (m *memMetaStore) Get(_ context.Context, ticker string) (*models.RegistryEntry, error) {
	entry, ok := m.entries[ticker]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrModelNotFound, ticker)
	}
	cp := *entry
	return &cp, nil
}

func newTestRegistry() *registry.Registry {
	return registry.New(
		&memBlobStore{blobs: make(map[string][]byte)},
		&memMetaStore{entries: make(map[string]*models.RegistryEntry)},
		applogger.Nop(),
	)
}

// trendBars builds a drifting daily series long enough to clear the
// indicator warm-up and produce both label classes.
func trendBars(n int) []models.Bar {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, n)
	price := 100.0
	for i := range bars {
		if i%3 == 2 {
			price *= 0.999
		} else {
			price *= 1.008
		}
		bars[i] = models.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   price * 0.995,
			High:   price * 1.01,
			Low:    price * 0.99,
			Close:  price,
			Volume: 1_000_000,
		}
	}
	return bars
}

func floatPtr(v float64) *float64 { return &v }
