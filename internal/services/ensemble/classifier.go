package ensemble

import (
	"fmt"

	"StockPilot/internal/domain/models"
)

// Tunables shared by the ensemble members. Seed makes every stochastic
// member reproducible across retrains of the same data.
const (
	Seed         = 42
	ForestTrees  = 100
	ForestDepth  = 12
	BoostRounds  = 200
	BoostDepth   = 6
	BoostLR      = 0.05
	LogisticIter = 1000
	LogisticLR   = 0.1
)

// Classifier is the capability shared by the ensemble's members. The
// member set is closed: logistic regression, bagged forest, gradient
// boosting. New variants are added here, not duck-typed in.
type Classifier interface {
	Fit(X [][]float64, y []int) error
	Predict(x []float64) int
}

// checkTrainable rejects degenerate training sets: fewer than two rows,
// or a single label class, would produce a model that always answers the
// same thing.
func checkTrainable(X [][]float64, y []int) error {
	if len(X) != len(y) {
		return fmt.Errorf("feature/label length mismatch: %d vs %d", len(X), len(y))
	}
	if len(X) < 2 {
		return fmt.Errorf("%w: %d rows", models.ErrTrainingDataInsufficient, len(X))
	}
	first := y[0]
	for _, label := range y[1:] {
		if label != first {
			return nil
		}
	}
	return fmt.Errorf("%w: single class %d", models.ErrTrainingDataInsufficient, first)
}

// Accuracy is the share of rows the classifier labels correctly.
func Accuracy(c Classifier, X [][]float64, y []int) float64 {
	if len(X) == 0 {
		return 0
	}
	hits := 0
	for i := range X {
		if c.Predict(X[i]) == y[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(X))
}
