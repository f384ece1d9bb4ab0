package models

import "time"

// TrainingJob is the payload published to the training topic. Training
// is decoupled from the read path: callers enqueue and move on.
type TrainingJob struct {
	Tickers     []string  `json:"tickers"`
	YearsBack   int       `json:"years_back"`
	RequestedAt time.Time `json:"requested_at"`
}

// TrainingReport summarizes one ticker's training run.
type TrainingReport struct {
	Ticker     string  `json:"ticker"`
	TrainScore float64 `json:"train_score"`
	ValScore   float64 `json:"val_score"`
	Rows       int     `json:"rows"`
}
