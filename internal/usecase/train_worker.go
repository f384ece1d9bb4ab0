package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"StockPilot/internal/domain/models"
	applogger "StockPilot/pkg/logger"
)

// TrainingWorker consumes training jobs from the queue topic and runs
// the trainer. Jobs are idempotent: retraining a ticker replaces its
// artifact, so redelivery is harmless.
type TrainingWorker struct {
	trainer *Trainer
	topic   string
	logger  *applogger.Logger
}

// NewTrainingWorker creates the queue consumer side of the training
// pipeline.
func NewTrainingWorker(trainer *Trainer, topic string, logger *applogger.Logger) *TrainingWorker {
	return &TrainingWorker{trainer: trainer, topic: topic, logger: logger}
}

// Topic names the queue topic this worker subscribes to.
func (w *TrainingWorker) Topic() string { return w.topic }

// Handle decodes a training job and trains every ticker it names. A
// malformed payload is a permanent failure; per-ticker training errors
// are absorbed by the trainer and never fail the message.
func (w *TrainingWorker) Handle(ctx context.Context, data []byte) error {
	var job models.TrainingJob
	if err := json.Unmarshal(data, &job); err != nil {
		return fmt.Errorf("decode training job: %w", err)
	}
	if len(job.Tickers) == 0 {
		w.logger.Warn("training job without tickers dropped")
		return nil
	}

	w.logger.Info("training job received",
		applogger.Any("tickers", job.Tickers),
		applogger.Int("years_back", job.YearsBack))

	reports := w.trainer.TrainTickers(ctx, job.Tickers, job.YearsBack)
	w.logger.Info("training job finished",
		applogger.Int("requested", len(job.Tickers)),
		applogger.Int("trained", len(reports)))
	return nil
}
