package models

import "time"

// RegistryEntry is the per-ticker model bookkeeping row. Exactly one
// active entry exists per ticker; retraining overwrites it in place.
type RegistryEntry struct {
	Ticker        string
	ModelPath     string
	FeaturesPath  string
	LastTrainedAt time.Time
	DataStart     string // YYYY-MM-DD
	DataEnd       string // YYYY-MM-DD
	TrainScore    float64
	ValScore      float64
	IsActive      bool
}
