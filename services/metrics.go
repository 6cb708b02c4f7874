package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	trainingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cybercafe_demand_trainings_total",
		Help: "Total number of successful demand model training runs.",
	})
	trainingFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cybercafe_demand_training_failures_total",
		Help: "Total number of failed demand model training runs.",
	})
	predictionsServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cybercafe_demand_predictions_total",
		Help: "Total number of demand forecasts computed.",
	})
	predictionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cybercafe_demand_prediction_failures_total",
		Help: "Total number of failed demand forecast attempts.",
	})
	trainingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cybercafe_demand_training_duration_seconds",
		Help:    "Duration of a demand model fit, persistence included.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0},
	})
)
