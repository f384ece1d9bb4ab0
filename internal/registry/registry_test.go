package registry

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"StockPilot/internal/domain/models"
	domrepo "StockPilot/internal/domain/repository"
	"StockPilot/internal/services/dataset"
	"StockPilot/internal/services/ensemble"
	applogger "StockPilot/pkg/logger"
)

type fakeStaged struct {
	store     *fakeBlobStore
	key       string
	blob      []byte
	failOn    bool
	committed bool
	discarded bool
}

func (s *fakeStaged) Path() string { return "/staging/" + s.key }

func (s *fakeStaged) Commit() error {
	if s.failOn {
		return errors.New("rename failed")
	}
	s.committed = true
	s.store.active[s.key] = s.blob
	return nil
}

func (s *fakeStaged) Discard() error {
	s.discarded = true
	return nil
}

type fakeBlobStore struct {
	active     map[string][]byte
	staged     []*fakeStaged
	failCommit bool
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{active: make(map[string][]byte)}
}

func blobKey(ticker string, kind domrepo.BlobKind) string {
	return ticker + "/" + string(kind)
}

func (f *fakeBlobStore) Stage(_ context.Context, ticker string, kind domrepo.BlobKind, blob []byte) (domrepo.StagedBlob, error) {
	s := &fakeStaged{store: f, key: blobKey(ticker, kind), blob: blob, failOn: f.failCommit}
	f.staged = append(f.staged, s)
	return s, nil
}

func (f *fakeBlobStore) Read(_ context.Context, ticker string, kind domrepo.BlobKind) ([]byte, error) {
	blob, ok := f.active[blobKey(ticker, kind)]
	if !ok {
		return nil, fmt.Errorf("%w: no blob %s", models.ErrModelNotFound, blobKey(ticker, kind))
	}
	return blob, nil
}

type fakeMetaStore struct {
	entries    map[string]*models.RegistryEntry
	failUpsert bool
}

func newFakeMetaStore() *fakeMetaStore {
	return &fakeMetaStore{entries: make(map[string]*models.RegistryEntry)}
}

func (f *fakeMetaStore) Upsert(_ context.Context, entry *models.RegistryEntry, onCommit func() error) error {
	if f.failUpsert {
		return errors.New("connection refused")
	}
	if err := onCommit(); err != nil {
		return err
	}
	cp := *entry
	f.entries[entry.Ticker] = &cp
	return nil
}

func (f *fakeMetaStore) Get(_ context.Context, ticker string) (*models.RegistryEntry, error) {
	entry, ok := f.entries[ticker]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrModelNotFound, ticker)
	}
	cp := *entry
	return &cp, nil
}

func trainedResult(t *testing.T) *ensemble.TrainResult {
	t.Helper()
	X := make([][]float64, 0, 40)
	y := make([]int, 0, 40)
	for i := 0; i < 40; i++ {
		if i%2 == 0 {
			X = append(X, []float64{10, 12, 60, 1, 0.5})
			y = append(y, 1)
		} else {
			X = append(X, []float64{-10, -12, 30, -1, -0.5})
			y = append(y, 0)
		}
	}
	split := &dataset.Split{
		Columns: models.FeatureColumns(),
		TrainX:  X[:28], TrainY: y[:28],
		ValX: X[28:], ValY: y[28:],
	}
	res, err := ensemble.Train(split)
	if err != nil {
		t.Fatalf("train fixture: %v", err)
	}
	return res
}

func TestStoreAndLoad(t *testing.T) {
	blobs := newFakeBlobStore()
	meta := newFakeMetaStore()
	r := New(blobs, meta, applogger.Nop())
	res := trainedResult(t)

	if err := r.Store(context.Background(), "AAPL", res, "2024-01-01", "2024-12-31"); err != nil {
		t.Fatalf("store: %v", err)
	}
	if !r.Has(context.Background(), "AAPL") {
		t.Fatal("Has = false after store")
	}

	art, err := r.Load(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	probe := []float64{10, 12, 60, 1, 0.5}
	if art.Model.Predict(probe) != res.Artifact.Model.Predict(probe) {
		t.Fatal("loaded model disagrees with stored model")
	}

	entry, err := r.Entry(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if entry.DataStart != "2024-01-01" || entry.DataEnd != "2024-12-31" {
		t.Fatalf("entry range %s..%s wrong", entry.DataStart, entry.DataEnd)
	}
	if !entry.IsActive || entry.LastTrainedAt.IsZero() {
		t.Fatal("entry bookkeeping incomplete")
	}
}

func TestStoreReplaces(t *testing.T) {
	blobs := newFakeBlobStore()
	meta := newFakeMetaStore()
	r := New(blobs, meta, applogger.Nop())
	res := trainedResult(t)

	if err := r.Store(context.Background(), "MSFT", res, "2023-01-01", "2023-12-31"); err != nil {
		t.Fatalf("first store: %v", err)
	}
	if err := r.Store(context.Background(), "MSFT", res, "2023-01-01", "2024-06-30"); err != nil {
		t.Fatalf("second store: %v", err)
	}
	entry, err := r.Entry(context.Background(), "MSFT")
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if entry.DataEnd != "2024-06-30" {
		t.Fatalf("entry not replaced, data end %s", entry.DataEnd)
	}
	if _, err := r.Load(context.Background(), "MSFT"); err != nil {
		t.Fatalf("load after replace: %v", err)
	}
}

func TestLoadNotFound(t *testing.T) {
	r := New(newFakeBlobStore(), newFakeMetaStore(), applogger.Nop())
	_, err := r.Load(context.Background(), "NOPE")
	if !errors.Is(err, models.ErrModelNotFound) {
		t.Fatalf("want ErrModelNotFound, got %v", err)
	}
	if r.Has(context.Background(), "NOPE") {
		t.Fatal("Has = true for missing ticker")
	}
}

func TestStoreUpsertFailureLeavesBlobsUnpromoted(t *testing.T) {
	blobs := newFakeBlobStore()
	meta := newFakeMetaStore()
	meta.failUpsert = true
	r := New(blobs, meta, applogger.Nop())

	err := r.Store(context.Background(), "TSLA", trainedResult(t), "2024-01-01", "2024-12-31")
	if !errors.Is(err, models.ErrStorageFailure) {
		t.Fatalf("want ErrStorageFailure, got %v", err)
	}
	if len(blobs.active) != 0 {
		t.Fatalf("%d blobs promoted despite metadata failure", len(blobs.active))
	}
	for _, s := range blobs.staged {
		if !s.discarded {
			t.Fatalf("staged blob %s not discarded", s.key)
		}
	}
	if r.Has(context.Background(), "TSLA") {
		t.Fatal("Has = true after failed store")
	}
}

func TestStorePromotionFailureRollsBack(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.failCommit = true
	meta := newFakeMetaStore()
	r := New(blobs, meta, applogger.Nop())

	err := r.Store(context.Background(), "NVDA", trainedResult(t), "2024-01-01", "2024-12-31")
	if !errors.Is(err, models.ErrStorageFailure) {
		t.Fatalf("want ErrStorageFailure, got %v", err)
	}
	if r.Has(context.Background(), "NVDA") {
		t.Fatal("metadata row survived a failed promotion")
	}
}

func TestLoadInactiveEntry(t *testing.T) {
	blobs := newFakeBlobStore()
	meta := newFakeMetaStore()
	meta.entries["OLD"] = &models.RegistryEntry{Ticker: "OLD", IsActive: false}
	r := New(blobs, meta, applogger.Nop())

	_, err := r.Load(context.Background(), "OLD")
	if !errors.Is(err, models.ErrModelNotFound) {
		t.Fatalf("want ErrModelNotFound, got %v", err)
	}
	if r.Has(context.Background(), "OLD") {
		t.Fatal("Has = true for inactive entry")
	}
}
