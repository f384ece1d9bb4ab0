package ensemble

import (
	"errors"
	"testing"

	"StockPilot/internal/domain/models"
	"StockPilot/internal/services/dataset"
)

// separable builds a cleanly separable two-class set: class 1 rows sit
// well above class 0 rows on every feature.
func separable(n int) ([][]float64, []int) {
	X := make([][]float64, 0, n)
	y := make([]int, 0, n)
	for i := 0; i < n; i++ {
		f := float64(i % 10)
		if i%2 == 0 {
			X = append(X, []float64{10 + f, 12 + f, 60 + f, 1 + f/10, 0.5 + f/10})
			y = append(y, 1)
		} else {
			X = append(X, []float64{-10 - f, -12 - f, 30 - f, -1 - f/10, -0.5 - f/10})
			y = append(y, 0)
		}
	}
	return X, y
}

func TestVotingFitPredict(t *testing.T) {
	X, y := separable(80)
	v := NewVoting()
	if err := v.Fit(X, y); err != nil {
		t.Fatalf("fit: %v", err)
	}
	if acc := Accuracy(v, X, y); acc < 0.95 {
		t.Fatalf("train accuracy %v too low for separable data", acc)
	}
	if got := v.Predict([]float64{15, 17, 65, 1.5, 1}); got != 1 {
		t.Fatalf("up-region prediction = %d, want 1", got)
	}
	if got := v.Predict([]float64{-15, -17, 25, -1.5, -1}); got != 0 {
		t.Fatalf("down-region prediction = %d, want 0", got)
	}
}

func TestVotingTooFewRows(t *testing.T) {
	v := NewVoting()
	err := v.Fit([][]float64{{1, 2, 3, 4, 5}}, []int{1})
	if !errors.Is(err, models.ErrTrainingDataInsufficient) {
		t.Fatalf("want ErrTrainingDataInsufficient, got %v", err)
	}
}

func TestVotingSingleClass(t *testing.T) {
	X := [][]float64{{1, 2, 3, 4, 5}, {2, 3, 4, 5, 6}, {3, 4, 5, 6, 7}}
	v := NewVoting()
	err := v.Fit(X, []int{1, 1, 1})
	if !errors.Is(err, models.ErrTrainingDataInsufficient) {
		t.Fatalf("want ErrTrainingDataInsufficient, got %v", err)
	}
}

func TestVotingLengthMismatch(t *testing.T) {
	v := NewVoting()
	if err := v.Fit([][]float64{{1, 2, 3, 4, 5}, {2, 3, 4, 5, 6}}, []int{1}); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}

func TestTrainDeterministic(t *testing.T) {
	X, y := separable(60)
	a := NewVoting()
	b := NewVoting()
	if err := a.Fit(X, y); err != nil {
		t.Fatalf("fit a: %v", err)
	}
	if err := b.Fit(X, y); err != nil {
		t.Fatalf("fit b: %v", err)
	}
	for i := range X {
		if a.Predict(X[i]) != b.Predict(X[i]) {
			t.Fatalf("row %d: two fits of the same data disagree", i)
		}
	}
}

func TestTrainScoresSplit(t *testing.T) {
	X, y := separable(100)
	split := &dataset.Split{
		Columns: models.FeatureColumns(),
		TrainX:  X[:70],
		TrainY:  y[:70],
		ValX:    X[70:],
		ValY:    y[70:],
	}
	res, err := Train(split)
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if res.Rows != 100 {
		t.Fatalf("rows %d, want 100", res.Rows)
	}
	if res.TrainScore < 0.9 || res.ValScore < 0.9 {
		t.Fatalf("scores %v/%v too low for separable data", res.TrainScore, res.ValScore)
	}
	if len(res.Artifact.Columns) != len(split.Columns) {
		t.Fatal("artifact columns not carried over")
	}
}

func TestArtifactRoundTrip(t *testing.T) {
	X, y := separable(60)
	split := &dataset.Split{
		Columns: models.FeatureColumns(),
		TrainX:  X[:42],
		TrainY:  y[:42],
		ValX:    X[42:],
		ValY:    y[42:],
	}
	res, err := Train(split)
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	modelBlob, err := res.Artifact.EncodeModel()
	if err != nil {
		t.Fatalf("encode model: %v", err)
	}
	colsBlob, err := res.Artifact.EncodeColumns()
	if err != nil {
		t.Fatalf("encode columns: %v", err)
	}

	restored, err := DecodeArtifact(modelBlob, colsBlob)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i := range restored.Columns {
		if restored.Columns[i] != res.Artifact.Columns[i] {
			t.Fatalf("column %d changed across round trip", i)
		}
	}
	for i := range X {
		if restored.Model.Predict(X[i]) != res.Artifact.Model.Predict(X[i]) {
			t.Fatalf("row %d: restored model disagrees with original", i)
		}
	}
}

func TestDecodeArtifactMissingMember(t *testing.T) {
	if _, err := DecodeArtifact([]byte(`{"logistic":null}`), []byte(`["sma"]`)); err == nil {
		t.Fatal("expected error for missing ensemble member")
	}
}

func TestAccuracyEmpty(t *testing.T) {
	if got := Accuracy(NewVoting(), nil, nil); got != 0 {
		t.Fatalf("accuracy on empty set = %v, want 0", got)
	}
}
