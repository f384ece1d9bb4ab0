package ensemble

import (
	"math"
	"math/rand"
)

// Forest is a bagged ensemble of gini CART trees. Each tree trains on a
// bootstrap sample with sqrt-of-features candidate splits, the standard
// random-forest recipe.
type Forest struct {
	Trees []*TreeNode `json:"trees"`

	nTrees   int
	maxDepth int
	seed     int64
}

// NewForest builds an unfitted forest with the fixed ensemble tunables.
func NewForest() *Forest {
	return &Forest{nTrees: ForestTrees, maxDepth: ForestDepth, seed: Seed}
}

// Fit grows the bagged trees from a shared seeded source, so retraining
// on identical data reproduces the identical forest.
func (f *Forest) Fit(X [][]float64, y []int) error {
	if err := checkTrainable(X, y); err != nil {
		return err
	}
	nTrees := f.nTrees
	if nTrees <= 0 {
		nTrees = ForestTrees
	}
	maxDepth := f.maxDepth
	if maxDepth <= 0 {
		maxDepth = ForestDepth
	}

	rng := rand.New(rand.NewSource(f.seed))
	mtry := int(math.Ceil(math.Sqrt(float64(len(X[0])))))

	f.Trees = make([]*TreeNode, 0, nTrees)
	for t := 0; t < nTrees; t++ {
		idx := make([]int, len(X))
		for i := range idx {
			idx[i] = rng.Intn(len(X))
		}
		b := &treeBuilder{X: X, maxDepth: maxDepth, minLeaf: 1, mtry: mtry, rng: rng}
		f.Trees = append(f.Trees, b.growClass(y, idx, 0))
	}
	return nil
}

// Predict returns the majority class over the trees.
func (f *Forest) Predict(x []float64) int {
	ones := 0
	for _, t := range f.Trees {
		ones += t.predictClass(x)
	}
	if ones*2 >= len(f.Trees) {
		return 1
	}
	return 0
}
