package services

import (
	"time"

	"gonum.org/v1/gonum/mat"
)

// The model always sees the same five calendar features, in this order.
const numFeatures = 5

// timeFeatures encodes a timestamp's calendar position: hour of day (0-23),
// day of week with Monday=0, month (1-12), day of year (1-366) and
// quarter (1-4).
func timeFeatures(t time.Time) [numFeatures]float64 {
	month := int(t.Month())
	return [numFeatures]float64{
		float64(t.Hour()),
		float64((int(t.Weekday()) + 6) % 7),
		float64(month),
		float64(t.YearDay()),
		float64((month-1)/3 + 1),
	}
}

// BuildFeatureMatrix turns a timestamp grid into the n x 6 design matrix
// used for fitting and prediction (leading column of ones for the
// intercept). Returns nil for an empty grid. Pure function, no I/O.
func BuildFeatureMatrix(times []time.Time) *mat.Dense {
	if len(times) == 0 {
		return nil
	}
	x := mat.NewDense(len(times), numFeatures+1, nil)
	for i, t := range times {
		x.Set(i, 0, 1)
		f := timeFeatures(t)
		for j, v := range f {
			x.Set(i, j+1, v)
		}
	}
	return x
}
