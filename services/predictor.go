package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"session-demand-api/models"
)

type Predictor struct {
	store *ModelStore
}

func NewPredictor(store *ModelStore) *Predictor {
	return &Predictor{store: store}
}

// Forecast loads the persisted model and predicts hourly session demand for
// exactly hoursAhead points, starting one hour after lastKnown and
// inheriting its zone. Raw estimator output is clamped at zero and rounded
// to the nearest integer, ties away from zero (math.Round). The model used
// is returned alongside the rows so callers can key caches on TrainedAt.
func (p *Predictor) Forecast(ctx context.Context, lastKnown time.Time, hoursAhead int) ([]models.PredictionRow, *DemandModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if hoursAhead <= 0 {
		return nil, nil, fmt.Errorf("hours ahead must be positive, got %d", hoursAhead)
	}

	model, err := p.store.Load()
	if err != nil {
		predictionFailures.Inc()
		return nil, nil, err
	}

	grid := make([]time.Time, hoursAhead)
	for i := range grid {
		grid[i] = lastKnown.Add(time.Duration(i+1) * time.Hour)
	}

	x := BuildFeatureMatrix(grid)
	if x == nil {
		predictionFailures.Inc()
		return nil, nil, ErrEmptyFeatures
	}

	raw := model.Predict(x)
	rows := make([]models.PredictionRow, hoursAhead)
	for i, v := range raw {
		if v < 0 {
			v = 0
		}
		rows[i] = models.PredictionRow{
			Time:              grid[i],
			PredictedSessions: int(math.Round(v)),
		}
	}

	predictionsServed.Inc()
	return rows, model, nil
}
