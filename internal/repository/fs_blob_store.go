package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"StockPilot/internal/domain/models"
	domrepo "StockPilot/internal/domain/repository"
)

// FSBlobStore keeps artifact blobs on the local filesystem, one file per
// {ticker, kind}. Stage writes to a sibling temp file; Commit renames it
// over the final path, which is atomic on POSIX filesystems.
type FSBlobStore struct {
	dir string
}

// NewFSBlobStore creates the blob directory if needed.
func NewFSBlobStore(dir string) (*FSBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blob dir: %w", err)
	}
	return &FSBlobStore{dir: dir}, nil
}

func (s *FSBlobStore) path(ticker string, kind domrepo.BlobKind) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", ticker, kind))
}

// Stage writes the blob next to its final location without making it
// visible to Read.
func (s *FSBlobStore) Stage(_ context.Context, ticker string, kind domrepo.BlobKind, blob []byte) (domrepo.StagedBlob, error) {
	final := s.path(ticker, kind)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return nil, fmt.Errorf("write staged blob: %w", err)
	}
	return &stagedFile{tmp: tmp, final: final}, nil
}

// Read returns the committed blob for a key, or models.ErrModelNotFound
// when nothing was ever committed there.
func (s *FSBlobStore) Read(_ context.Context, ticker string, kind domrepo.BlobKind) ([]byte, error) {
	b, err := os.ReadFile(s.path(ticker, kind))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: no %s blob for %s", models.ErrModelNotFound, kind, ticker)
	}
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return b, nil
}

type stagedFile struct {
	tmp   string
	final string
}

func (f *stagedFile) Path() string { return f.final }

func (f *stagedFile) Commit() error {
	if err := os.Rename(f.tmp, f.final); err != nil {
		return fmt.Errorf("promote blob: %w", err)
	}
	return nil
}

func (f *stagedFile) Discard() error {
	err := os.Remove(f.tmp)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
