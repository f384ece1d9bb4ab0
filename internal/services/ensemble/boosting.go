package ensemble

import (
	"math"
	"math/rand"
)

// Boosting is a gradient-boosted tree classifier on the logistic loss.
// Each round fits a shallow regression tree to the residual
// y - sigmoid(F) and updates leaves with a single Newton step.
type Boosting struct {
	Init  float64     `json:"init"` // initial log-odds
	Rate  float64     `json:"rate"`
	Trees []*TreeNode `json:"trees"`

	rounds   int
	maxDepth int
}

// NewBoosting builds an unfitted boosting classifier with the fixed
// ensemble tunables.
func NewBoosting() *Boosting {
	return &Boosting{Rate: BoostLR, rounds: BoostRounds, maxDepth: BoostDepth}
}

func (b *Boosting) Fit(X [][]float64, y []int) error {
	if err := checkTrainable(X, y); err != nil {
		return err
	}
	rounds := b.rounds
	if rounds <= 0 {
		rounds = BoostRounds
	}
	maxDepth := b.maxDepth
	if maxDepth <= 0 {
		maxDepth = BoostDepth
	}
	if b.Rate <= 0 {
		b.Rate = BoostLR
	}

	n := len(X)
	pos := 0
	for _, label := range y {
		pos += label
	}
	prior := float64(pos) / float64(n)
	b.Init = math.Log(prior / (1 - prior))

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = b.Init
	}

	residuals := make([]float64, n)
	hessians := make([]float64, n)
	allRows := make([]int, n)
	for i := range allRows {
		allRows[i] = i
	}

	// Newton leaf value: sum(residual) / sum(p*(1-p)), guarded against
	// saturated leaves where the hessian vanishes.
	leaf := func(idx []int) float64 {
		var num, den float64
		for _, i := range idx {
			num += residuals[i]
			den += hessians[i]
		}
		if den < 1e-12 {
			return 0
		}
		return num / den
	}

	rng := rand.New(rand.NewSource(Seed))
	b.Trees = make([]*TreeNode, 0, rounds)
	for round := 0; round < rounds; round++ {
		done := true
		for i := range X {
			p := sigmoid(scores[i])
			residuals[i] = float64(y[i]) - p
			hessians[i] = p * (1 - p)
			if math.Abs(residuals[i]) > 1e-9 {
				done = false
			}
		}
		if done {
			break
		}

		builder := &treeBuilder{X: X, maxDepth: maxDepth, minLeaf: 1, rng: rng}
		tree := builder.growReg(residuals, allRows, 0, leaf)
		b.Trees = append(b.Trees, tree)

		for i := range X {
			scores[i] += b.Rate * tree.predictValue(X[i])
		}
	}
	return nil
}

// Predict thresholds the boosted log-odds at zero.
func (b *Boosting) Predict(x []float64) int {
	score := b.Init
	for _, t := range b.Trees {
		score += b.Rate * t.predictValue(x)
	}
	if score >= 0 {
		return 1
	}
	return 0
}
