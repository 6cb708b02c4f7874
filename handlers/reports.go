package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"session-demand-api/config"
	"session-demand-api/models"
	"session-demand-api/services"

	"github.com/gin-gonic/gin"
)

// ModelEventsChannel carries retrain notifications from the reports handler
// to WebSocket subscribers.
const ModelEventsChannel = "cybercafe:model"

const forecastCachePrefix = "demand:forecast:"

type ReportsHandler struct {
	sessions  services.SessionSource
	trainer   *services.Trainer
	predictor *services.Predictor
	cache     *services.CacheService
	forecast  config.ForecastConfig
}

func NewReportsHandler(
	sessions services.SessionSource,
	trainer *services.Trainer,
	predictor *services.Predictor,
	cache *services.CacheService,
	forecast config.ForecastConfig,
) *ReportsHandler {
	return &ReportsHandler{
		sessions:  sessions,
		trainer:   trainer,
		predictor: predictor,
		cache:     cache,
		forecast:  forecast,
	}
}

// RetrainDemandModel pulls the lookback window of session history,
// aggregates it into hourly counts and refits the demand model, replacing
// the persisted artifact on success.
func (h *ReportsHandler) RetrainDemandModel(c *gin.Context) {
	ctx := c.Request.Context()

	since := time.Now().UTC().AddDate(0, 0, -h.forecast.LookbackDays)
	sessions, err := h.sessions.RecentSessions(ctx, since)
	if err != nil {
		log.Printf("retrain: session store query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session store unavailable"})
		return
	}
	if len(sessions) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no historical session data to train on"})
		return
	}

	series := services.AggregateHourly(sessions)

	model, err := h.trainer.Train(ctx, series)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrInsufficientData), errors.Is(err, services.ErrEmptyFeatures):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	default:
		log.Printf("retrain: training failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "model training failed"})
		return
	}

	// Drop forecasts computed with the replaced model and tell live
	// subscribers a new model is in place.
	if err := h.cache.InvalidatePrefix(ctx, forecastCachePrefix); err != nil {
		log.Printf("retrain: forecast cache invalidation failed: %v", err)
	}
	if err := h.cache.Publish(ctx, ModelEventsChannel, gin.H{
		"event":        "model_retrained",
		"trained_at":   model.TrainedAt,
		"observations": model.Observations,
	}); err != nil {
		log.Printf("retrain: event publish failed: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"message":      "demand model retrained",
		"observations": model.Observations,
		"trained_at":   model.TrainedAt.Format(time.RFC3339),
	})
}

type forecastResponse struct {
	Status         string                 `json:"status"`
	ModelTrainedAt time.Time              `json:"model_trained_at"`
	Predictions    []models.PredictionRow `json:"predictions"`
}

// GetDemandPrediction forecasts hourly session demand for the next
// hours_ahead hours (default 24, capped at one week), anchored one hour
// after the latest known session start.
func (h *ReportsHandler) GetDemandPrediction(c *gin.Context) {
	ctx := c.Request.Context()

	hoursAhead := h.forecast.DefaultHorizon
	if raw := c.Query("hours_ahead"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > h.forecast.MaxHorizon {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("hours_ahead must be an integer between 1 and %d", h.forecast.MaxHorizon),
			})
			return
		}
		hoursAhead = parsed
	}

	latest, err := h.sessions.LatestStartTime(ctx)
	if errors.Is(err, services.ErrNoSessions) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no session history to anchor the forecast"})
		return
	}
	if err != nil {
		log.Printf("forecast: latest session lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session store unavailable"})
		return
	}
	lastKnown := latest.Truncate(time.Hour)

	cacheKey := fmt.Sprintf("%s%d:%d", forecastCachePrefix, lastKnown.Unix(), hoursAhead)
	var cached forecastResponse
	if err := h.cache.Get(ctx, cacheKey, &cached); err == nil && cached.Predictions != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	rows, model, err := h.predictor.Forecast(ctx, lastKnown, hoursAhead)
	if errors.Is(err, services.ErrModelNotFound) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "demand model not trained yet, run a retrain first",
		})
		return
	}
	if err != nil {
		log.Printf("forecast: prediction failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate forecast"})
		return
	}

	resp := forecastResponse{
		Status:         "success",
		ModelTrainedAt: model.TrainedAt,
		Predictions:    rows,
	}
	go h.cache.Set(context.Background(), cacheKey, resp, 60*time.Second)

	c.JSON(http.StatusOK, resp)
}
