package usecase

import (
	"context"
	"encoding/json"
	"time"

	"StockPilot/internal/domain/models"
	domrepo "StockPilot/internal/domain/repository"
	"StockPilot/internal/registry"
	"StockPilot/internal/services/indicators"
	pkgcache "StockPilot/pkg/cache"
	applogger "StockPilot/pkg/logger"
)

// historyDays is how much history the predictor pulls to rebuild the
// latest indicator row.
const historyDays = 365

// Predictor answers directional queries from the latest indicator row
// and the ticker's stored artifact. Predictions are advisory: every
// failure path degrades to the Unavailable class instead of erroring, so
// a missing model never aborts a caller's larger request.
type Predictor struct {
	provider domrepo.BarProvider
	registry *registry.Registry
	cache    pkgcache.Store
	cacheTTL time.Duration
	metrics  domrepo.Metrics
	logger   *applogger.Logger
}

// NewPredictor wires the prediction service. cache may be nil.
func NewPredictor(
	provider domrepo.BarProvider,
	reg *registry.Registry,
	cache pkgcache.Store,
	cacheTTL time.Duration,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
) *Predictor {
	return &Predictor{
		provider: provider,
		registry: reg,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  metrics,
		logger:   logger,
	}
}

// Predict returns the directional class for a ticker, Unavailable when
// no artifact exists, no usable indicator row can be produced, or any
// step fails.
func (p *Predictor) Predict(ctx context.Context, ticker string) models.Prediction {
	if cached, ok := p.cachedPrediction(ctx, ticker); ok {
		return cached
	}

	pred := p.predict(ctx, ticker)
	if p.metrics != nil {
		p.metrics.RecordPrediction(ticker, pred.Class)
	}
	if pred.Available() {
		p.storePrediction(ctx, pred)
	}
	return pred
}

func (p *Predictor) predict(ctx context.Context, ticker string) models.Prediction {
	artifact, err := p.registry.Load(ctx, ticker)
	if err != nil {
		p.logger.Debug("prediction unavailable",
			applogger.String("ticker", ticker),
			applogger.Error(err))
		return models.Unavailable(ticker)
	}

	end := time.Now().UTC()
	bars, err := p.provider.History(ctx, ticker, end.AddDate(0, 0, -historyDays), end)
	if err != nil || len(bars) == 0 {
		if err != nil {
			p.logger.Warn("prediction history fetch failed",
				applogger.String("ticker", ticker),
				applogger.Error(err))
		}
		return models.Unavailable(ticker)
	}

	rows := indicators.Compute(bars)
	if len(rows) == 0 {
		return models.Unavailable(ticker)
	}
	latest := rows[len(rows)-1]

	vec, err := latest.FeatureVector(artifact.Columns)
	if err != nil {
		p.logger.Error("stored feature columns unusable",
			applogger.String("ticker", ticker),
			applogger.Error(err))
		return models.Unavailable(ticker)
	}

	return models.Prediction{Ticker: ticker, Class: artifact.Model.Predict(vec)}
}

func (p *Predictor) cachedPrediction(ctx context.Context, ticker string) (models.Prediction, bool) {
	if p.cache == nil {
		return models.Prediction{}, false
	}
	b, ok, err := p.cache.Get(ctx, "prediction:"+ticker)
	if err != nil || !ok {
		return models.Prediction{}, false
	}
	var pred models.Prediction
	if err := json.Unmarshal(b, &pred); err != nil {
		return models.Prediction{}, false
	}
	return pred, true
}

func (p *Predictor) storePrediction(ctx context.Context, pred models.Prediction) {
	if p.cache == nil {
		return
	}
	b, err := json.Marshal(pred)
	if err != nil {
		return
	}
	if err := p.cache.Set(ctx, "prediction:"+pred.Ticker, b, p.cacheTTL); err != nil {
		p.logger.Debug("prediction cache set failed", applogger.Error(err))
	}
}
