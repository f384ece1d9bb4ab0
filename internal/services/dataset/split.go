package dataset

import (
	"time"

	"StockPilot/internal/domain/models"
)

// TrainRatio is the chronological share of rows used for fitting; the
// remainder validates. The split is never shuffled: these are time
// series and shuffling would leak future rows into training.
const TrainRatio = 0.7

// Split is a supervised learning table cut into chronological train and
// validation parts. Every validation row is strictly later in time than
// every training row.
type Split struct {
	Columns []string
	TrainX  [][]float64
	TrainY  []int
	ValX    [][]float64
	ValY    []int

	DataStart time.Time
	DataEnd   time.Time
}

// Build slices the feature columns and labels out of an indicator row
// sequence and splits it 70/30 in order.
func Build(rows []models.IndicatorRow) (*Split, error) {
	columns := models.FeatureColumns()
	features := make([][]float64, 0, len(rows))
	labels := make([]int, 0, len(rows))
	for i := range rows {
		vec, err := rows[i].FeatureVector(columns)
		if err != nil {
			return nil, err
		}
		features = append(features, vec)
		labels = append(labels, rows[i].Target)
	}

	cut := int(float64(len(rows)) * TrainRatio)
	s := &Split{
		Columns: columns,
		TrainX:  features[:cut],
		TrainY:  labels[:cut],
		ValX:    features[cut:],
		ValY:    labels[cut:],
	}
	if len(rows) > 0 {
		s.DataStart = rows[0].Date
		s.DataEnd = rows[len(rows)-1].Date
	}
	return s, nil
}
