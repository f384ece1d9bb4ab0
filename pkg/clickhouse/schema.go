package clickhouse

import "fmt"

// BarsSchema returns the idempotent DDL for the daily bars archive.
// ReplacingMergeTree keyed on (ticker, date) makes repeated archive
// writes for the same day collapse to one row.
func BarsSchema(table string) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			ticker LowCardinality(String),
			date Date,
			open Float64,
			high Float64,
			low Float64,
			close Float64,
			volume Float64,
			inserted_at DateTime DEFAULT now()
		) ENGINE = ReplacingMergeTree(inserted_at)
		ORDER BY (ticker, date)`, table),
	}
}
