package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	predictions      *prometheus.CounterVec
	trainingRuns     *prometheus.CounterVec
	trainingDuration *prometheus.HistogramVec
	providerRequests *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		predictions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpilot_predictions_total",
				Help: "Total number of predictions served",
			},
			[]string{"ticker", "class"},
		),
		trainingRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpilot_training_runs_total",
				Help: "Total number of per-ticker training runs",
			},
			[]string{"ticker", "result"},
		),
		trainingDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockpilot_training_duration_seconds",
				Help:    "Duration of per-ticker training runs",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"ticker"},
		),
		providerRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpilot_provider_requests_total",
				Help: "Total market data provider requests",
			},
			[]string{"op", "result"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpilot_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordPrediction records a served prediction by directional class.
func (r *Recorder) RecordPrediction(ticker string, class int) {
	label := "up"
	switch {
	case class == 0:
		label = "down"
	case class < 0:
		label = "unavailable"
	}
	r.predictions.WithLabelValues(ticker, label).Inc()
}

// RecordTraining records a training run outcome and duration.
func (r *Recorder) RecordTraining(ticker string, seconds float64, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.trainingRuns.WithLabelValues(ticker, result).Inc()
	r.trainingDuration.WithLabelValues(ticker).Observe(seconds)
}

// RecordProviderRequest records an upstream provider call.
func (r *Recorder) RecordProviderRequest(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.providerRequests.WithLabelValues(op, result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
