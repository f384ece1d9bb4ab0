package ensemble

// Voting is the hard-voting ensemble trained per ticker: each member
// casts one class vote and the majority wins. No model family is best
// across all tickers; unweighted voting keeps any single member's
// idiosyncratic errors from dominating without needing probability
// calibration across heterogeneous models.
type Voting struct {
	Logistic *Logistic `json:"logistic"`
	Forest   *Forest   `json:"forest"`
	Boosting *Boosting `json:"boosting"`
}

// NewVoting builds the unfitted three-member ensemble.
func NewVoting() *Voting {
	return &Voting{
		Logistic: NewLogistic(),
		Forest:   NewForest(),
		Boosting: NewBoosting(),
	}
}

// members returns the fixed member order; the order doubles as the
// tie-break preference when votes split evenly.
func (v *Voting) members() []Classifier {
	return []Classifier{v.Logistic, v.Forest, v.Boosting}
}

// Fit trains every member independently on the same rows. A degenerate
// training set fails the whole ensemble before any member is fit.
func (v *Voting) Fit(X [][]float64, y []int) error {
	if err := checkTrainable(X, y); err != nil {
		return err
	}
	for _, m := range v.members() {
		if err := m.Fit(X, y); err != nil {
			return err
		}
	}
	return nil
}

// Predict counts member votes; ties fall to the earliest member's vote.
// With the current three members a binary vote cannot tie, but the
// tie-break keeps the rule total if the member set ever changes.
func (v *Voting) Predict(x []float64) int {
	members := v.members()
	votes := make([]int, len(members))
	ones := 0
	for i, m := range members {
		votes[i] = m.Predict(x)
		ones += votes[i]
	}
	zeros := len(members) - ones
	switch {
	case ones > zeros:
		return 1
	case zeros > ones:
		return 0
	default:
		return votes[0]
	}
}
