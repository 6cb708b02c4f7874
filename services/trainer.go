package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gonum.org/v1/gonum/mat"
)

// svdRcond is the relative threshold below which singular values are
// treated as zero when picking the effective rank of the design matrix.
// Calendar features are heavily collinear over short windows (month and
// quarter barely move), so the fit uses the minimum-norm least squares
// solution rather than failing on rank deficiency.
const svdRcond = 1e-12

type Trainer struct {
	store  *ModelStore
	minObs int
}

func NewTrainer(store *ModelStore, minObservations int) *Trainer {
	return &Trainer{store: store, minObs: minObservations}
}

// Train fits an ordinary least squares model of hourly session counts on
// calendar features and atomically replaces the persisted artifact. The
// previous artifact is untouched unless the whole run, persistence
// included, succeeds.
func (t *Trainer) Train(ctx context.Context, series HourlySeries) (*DemandModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if series.Len() < t.minObs {
		trainingFailures.Inc()
		return nil, fmt.Errorf("%w: have %d hourly observations, need %d",
			ErrInsufficientData, series.Len(), t.minObs)
	}

	x := BuildFeatureMatrix(series.Times())
	if x == nil {
		trainingFailures.Inc()
		return nil, ErrEmptyFeatures
	}

	y := mat.NewVecDense(series.Len(), nil)
	for i, c := range series.Counts {
		y.SetVec(i, float64(c))
	}

	start := time.Now()
	model, err := fitOLS(x, y)
	if err != nil {
		trainingFailures.Inc()
		return nil, fmt.Errorf("ols fit: %w", err)
	}
	model.TrainedAt = time.Now().UTC()
	model.Observations = series.Len()

	if err := t.store.Save(model); err != nil {
		trainingFailures.Inc()
		return nil, fmt.Errorf("persist model: %w", err)
	}

	trainingsTotal.Inc()
	trainingDuration.Observe(time.Since(start).Seconds())
	log.Printf("demand model trained: observations=%d artifact=%s", model.Observations, t.store.Path())
	return model, nil
}

func fitOLS(x *mat.Dense, y *mat.VecDense) (*DemandModel, error) {
	var svd mat.SVD
	if !svd.Factorize(x, mat.SVDThin) {
		return nil, errors.New("svd factorization failed")
	}

	rank := svd.Rank(svdRcond)
	if rank == 0 {
		return nil, errors.New("design matrix has rank zero")
	}

	var beta mat.VecDense
	svd.SolveVecTo(&beta, y, rank)

	model := &DemandModel{Intercept: beta.AtVec(0)}
	for j := 0; j < numFeatures; j++ {
		model.Coefs[j] = beta.AtVec(j + 1)
	}
	return model, nil
}
