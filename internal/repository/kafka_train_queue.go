package repository

import (
	"context"
	"fmt"
	"strings"

	"StockPilot/internal/domain/models"
	domrepo "StockPilot/internal/domain/repository"
	pkgkafka "StockPilot/pkg/kafka"
)

// KafkaTrainingQueue publishes training jobs to the training topic,
// keyed by the joined ticker list so a batch for the same tickers lands
// on one partition.
type KafkaTrainingQueue struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaTrainingQueue creates the queue over an existing producer.
func NewKafkaTrainingQueue(producer *pkgkafka.Producer, topic string) domrepo.TrainingQueue {
	return &KafkaTrainingQueue{producer: producer, topic: topic}
}

// Enqueue publishes one job; delivery is the broker's problem from here.
func (q *KafkaTrainingQueue) Enqueue(ctx context.Context, job models.TrainingJob) error {
	key := []byte(strings.Join(job.Tickers, ","))
	if err := q.producer.Publish(ctx, q.topic, key, job); err != nil {
		return fmt.Errorf("enqueue training job: %w", err)
	}
	return nil
}
