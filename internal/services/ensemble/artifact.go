package ensemble

import (
	"encoding/json"
	"fmt"

	"StockPilot/internal/services/dataset"
)

// Artifact is the persisted training output: the fitted ensemble plus
// the exact ordered feature column list it was trained on. Inference
// must select the same columns in the same order.
type Artifact struct {
	Model   *Voting
	Columns []string
}

// TrainResult is what the trainer hands to the registry.
type TrainResult struct {
	Artifact   *Artifact
	TrainScore float64
	ValScore   float64
	Rows       int
}

// Train fits the voting ensemble on a chronological split and scores it
// on both halves.
func Train(split *dataset.Split) (*TrainResult, error) {
	model := NewVoting()
	if err := model.Fit(split.TrainX, split.TrainY); err != nil {
		return nil, err
	}
	columns := make([]string, len(split.Columns))
	copy(columns, split.Columns)
	return &TrainResult{
		Artifact:   &Artifact{Model: model, Columns: columns},
		TrainScore: Accuracy(model, split.TrainX, split.TrainY),
		ValScore:   Accuracy(model, split.ValX, split.ValY),
		Rows:       len(split.TrainY) + len(split.ValY),
	}, nil
}

// EncodeModel serializes the fitted ensemble.
func (a *Artifact) EncodeModel() ([]byte, error) {
	b, err := json.Marshal(a.Model)
	if err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}
	return b, nil
}

// EncodeColumns serializes the ordered feature column list.
func (a *Artifact) EncodeColumns() ([]byte, error) {
	b, err := json.Marshal(a.Columns)
	if err != nil {
		return nil, fmt.Errorf("encode columns: %w", err)
	}
	return b, nil
}

// DecodeArtifact restores an artifact from its two persisted blobs.
func DecodeArtifact(modelBlob, columnsBlob []byte) (*Artifact, error) {
	var model Voting
	if err := json.Unmarshal(modelBlob, &model); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	var columns []string
	if err := json.Unmarshal(columnsBlob, &columns); err != nil {
		return nil, fmt.Errorf("decode columns: %w", err)
	}
	if model.Logistic == nil || model.Forest == nil || model.Boosting == nil {
		return nil, fmt.Errorf("decode model: missing ensemble member")
	}
	return &Artifact{Model: &model, Columns: columns}, nil
}
