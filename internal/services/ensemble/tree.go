package ensemble

import (
	"math"
	"math/rand"
	"sort"
)

// TreeNode is one node of a CART decision tree. Leaves carry either a
// discrete class (classification) or a real value (regression); internal
// nodes route on feature <= threshold.
type TreeNode struct {
	Feature   int       `json:"f"`
	Threshold float64   `json:"t"`
	Left      *TreeNode `json:"l,omitempty"`
	Right     *TreeNode `json:"r,omitempty"`
	Leaf      bool      `json:"leaf,omitempty"`
	Class     int       `json:"c,omitempty"`
	Value     float64   `json:"v,omitempty"`
}

func (n *TreeNode) predictClass(x []float64) int {
	for !n.Leaf {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Class
}

func (n *TreeNode) predictValue(x []float64) float64 {
	for !n.Leaf {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

// treeBuilder grows CART trees over a row index subset. mtry limits the
// candidate features per split (bagging); mtry <= 0 considers all.
type treeBuilder struct {
	X        [][]float64
	maxDepth int
	minLeaf  int
	mtry     int
	rng      *rand.Rand
}

// growClass builds a gini-split classification tree over rows idx.
func (b *treeBuilder) growClass(y []int, idx []int, depth int) *TreeNode {
	ones := 0
	for _, i := range idx {
		ones += y[i]
	}
	majority := 0
	if ones*2 >= len(idx) {
		majority = 1
	}
	if depth >= b.maxDepth || len(idx) <= b.minLeaf || ones == 0 || ones == len(idx) {
		return &TreeNode{Leaf: true, Class: majority}
	}

	feature, threshold, ok := b.bestGiniSplit(y, idx)
	if !ok {
		return &TreeNode{Leaf: true, Class: majority}
	}

	left, right := b.partition(idx, feature, threshold)
	if len(left) == 0 || len(right) == 0 {
		return &TreeNode{Leaf: true, Class: majority}
	}
	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      b.growClass(y, left, depth+1),
		Right:     b.growClass(y, right, depth+1),
	}
}

// growReg builds a variance-split regression tree over rows idx. leaf
// computes the leaf value from the member rows, which lets boosting plug
// in its Newton step.
func (b *treeBuilder) growReg(targets []float64, idx []int, depth int, leaf func(idx []int) float64) *TreeNode {
	if depth >= b.maxDepth || len(idx) <= b.minLeaf || constantTargets(targets, idx) {
		return &TreeNode{Leaf: true, Value: leaf(idx)}
	}

	feature, threshold, ok := b.bestVarianceSplit(targets, idx)
	if !ok {
		return &TreeNode{Leaf: true, Value: leaf(idx)}
	}

	left, right := b.partition(idx, feature, threshold)
	if len(left) == 0 || len(right) == 0 {
		return &TreeNode{Leaf: true, Value: leaf(idx)}
	}
	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      b.growReg(targets, left, depth+1, leaf),
		Right:     b.growReg(targets, right, depth+1, leaf),
	}
}

func (b *treeBuilder) partition(idx []int, feature int, threshold float64) (left, right []int) {
	for _, i := range idx {
		if b.X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return left, right
}

// candidateFeatures picks the features examined for one split.
func (b *treeBuilder) candidateFeatures() []int {
	nFeatures := len(b.X[0])
	if b.mtry <= 0 || b.mtry >= nFeatures {
		all := make([]int, nFeatures)
		for i := range all {
			all[i] = i
		}
		return all
	}
	perm := b.rng.Perm(nFeatures)
	return perm[:b.mtry]
}

func (b *treeBuilder) bestGiniSplit(y []int, idx []int) (int, float64, bool) {
	bestScore := math.Inf(1)
	bestFeature, bestThreshold := -1, 0.0

	total := len(idx)
	totalOnes := 0
	for _, i := range idx {
		totalOnes += y[i]
	}

	for _, f := range b.candidateFeatures() {
		ordered := b.orderedBy(idx, f)
		leftOnes, leftN := 0, 0
		for k := 0; k < len(ordered)-1; k++ {
			i := ordered[k]
			leftOnes += y[i]
			leftN++
			// no split between equal feature values
			if b.X[i][f] == b.X[ordered[k+1]][f] {
				continue
			}
			rightOnes := totalOnes - leftOnes
			rightN := total - leftN
			score := giniImpurity(leftOnes, leftN)*float64(leftN) +
				giniImpurity(rightOnes, rightN)*float64(rightN)
			if score < bestScore {
				bestScore = score
				bestFeature = f
				bestThreshold = (b.X[i][f] + b.X[ordered[k+1]][f]) / 2
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}

func (b *treeBuilder) bestVarianceSplit(targets []float64, idx []int) (int, float64, bool) {
	bestScore := math.Inf(1)
	bestFeature, bestThreshold := -1, 0.0

	var totalSum, totalSq float64
	for _, i := range idx {
		totalSum += targets[i]
		totalSq += targets[i] * targets[i]
	}
	total := float64(len(idx))

	for _, f := range b.candidateFeatures() {
		ordered := b.orderedBy(idx, f)
		var leftSum, leftSq float64
		leftN := 0.0
		for k := 0; k < len(ordered)-1; k++ {
			i := ordered[k]
			leftSum += targets[i]
			leftSq += targets[i] * targets[i]
			leftN++
			if b.X[i][f] == b.X[ordered[k+1]][f] {
				continue
			}
			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			rightN := total - leftN
			// summed squared error of both sides
			score := (leftSq - leftSum*leftSum/leftN) + (rightSq - rightSum*rightSum/rightN)
			if score < bestScore {
				bestScore = score
				bestFeature = f
				bestThreshold = (b.X[i][f] + b.X[ordered[k+1]][f]) / 2
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}

func (b *treeBuilder) orderedBy(idx []int, feature int) []int {
	ordered := make([]int, len(idx))
	copy(ordered, idx)
	sort.Slice(ordered, func(a, c int) bool {
		return b.X[ordered[a]][feature] < b.X[ordered[c]][feature]
	})
	return ordered
}

func giniImpurity(ones, n int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(ones) / float64(n)
	return 2 * p * (1 - p)
}

func constantTargets(targets []float64, idx []int) bool {
	for _, i := range idx[1:] {
		if targets[i] != targets[idx[0]] {
			return false
		}
	}
	return true
}
