package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"StockPilot/internal/domain/models"
	domrepo "StockPilot/internal/domain/repository"
)

// ClickHouseBarArchive persists fetched daily bars so later analytics can
// replay history without re-hitting the provider. Writes are best-effort
// from the pipeline's point of view; the caller only logs failures.
type ClickHouseBarArchive struct {
	db    *sql.DB
	table string
}

// NewClickHouseBarArchive creates the archive over an open connection.
func NewClickHouseBarArchive(db *sql.DB, table string) domrepo.BarArchive {
	return &ClickHouseBarArchive{db: db, table: table}
}

// StoreBars inserts the bars in chunks. The table uses a replacing merge
// tree keyed on (ticker, date), so re-ingesting a range is idempotent.
func (a *ClickHouseBarArchive) StoreBars(ctx context.Context, ticker string, bars []models.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	const chunkSize = 2000
	for start := 0; start < len(bars); start += chunkSize {
		end := start + chunkSize
		if end > len(bars) {
			end = len(bars)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*7)
		for _, b := range bars[start:end] {
			values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
			args = append(args, ticker, b.Date, b.Open, b.High, b.Low, b.Close, b.Volume)
		}
		q := fmt.Sprintf("INSERT INTO %s (ticker, date, open, high, low, close, volume) VALUES %s",
			a.table, strings.Join(values, ","))
		if _, err := a.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("archive bars %s: %w", ticker, err)
		}
	}
	return nil
}
