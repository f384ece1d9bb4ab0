package ensemble

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Logistic is a binary logistic regression fit by batch gradient
// descent. Features are standardized at fit time and the moments stored
// with the weights so inference sees the same scale.
type Logistic struct {
	Weights []float64 `json:"weights"` // bias first, then one per feature
	Means   []float64 `json:"means"`
	Scales  []float64 `json:"scales"`

	iterations int
	rate       float64
}

// NewLogistic builds an unfitted logistic classifier.
func NewLogistic() *Logistic {
	return &Logistic{iterations: LogisticIter, rate: LogisticLR}
}

// Fit estimates the weights by gradient descent on the log loss. The
// optimization is deterministic: zero-initialized weights, fixed step
// count and rate.
func (l *Logistic) Fit(X [][]float64, y []int) error {
	if err := checkTrainable(X, y); err != nil {
		return err
	}
	n := len(X)
	d := len(X[0])

	l.Means, l.Scales = featureMoments(X)

	// design matrix with a leading bias column, standardized
	data := make([]float64, n*(d+1))
	for i, row := range X {
		data[i*(d+1)] = 1
		for j, v := range row {
			data[i*(d+1)+1+j] = (v - l.Means[j]) / l.Scales[j]
		}
	}
	design := mat.NewDense(n, d+1, data)

	labels := mat.NewVecDense(n, nil)
	for i, label := range y {
		labels.SetVec(i, float64(label))
	}

	weights := mat.NewVecDense(d+1, nil)
	probs := mat.NewVecDense(n, nil)
	grad := mat.NewVecDense(d+1, nil)

	iterations := l.iterations
	if iterations <= 0 {
		iterations = LogisticIter
	}
	rate := l.rate
	if rate <= 0 {
		rate = LogisticLR
	}

	for it := 0; it < iterations; it++ {
		probs.MulVec(design, weights)
		for i := 0; i < n; i++ {
			probs.SetVec(i, sigmoid(probs.AtVec(i)))
		}
		probs.SubVec(probs, labels)
		grad.MulVec(design.T(), probs)
		weights.AddScaledVec(weights, -rate/float64(n), grad)
	}

	l.Weights = make([]float64, d+1)
	copy(l.Weights, weights.RawVector().Data)
	return nil
}

// Predict returns the class with probability >= 0.5.
func (l *Logistic) Predict(x []float64) int {
	z := l.Weights[0]
	for j, v := range x {
		z += l.Weights[j+1] * (v - l.Means[j]) / l.Scales[j]
	}
	if sigmoid(z) >= 0.5 {
		return 1
	}
	return 0
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// featureMoments returns per-column mean and standard deviation; a
// constant column gets scale 1 so standardization stays defined.
func featureMoments(X [][]float64) (means, scales []float64) {
	n := float64(len(X))
	d := len(X[0])
	means = make([]float64, d)
	scales = make([]float64, d)
	for _, row := range X {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= n
	}
	for _, row := range X {
		for j, v := range row {
			diff := v - means[j]
			scales[j] += diff * diff
		}
	}
	for j := range scales {
		scales[j] = math.Sqrt(scales[j] / n)
		if scales[j] == 0 {
			scales[j] = 1
		}
	}
	return means, scales
}
