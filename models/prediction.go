package models

import "time"

// PredictionRow is one forecast point. Rows are computed per request and
// never persisted.
type PredictionRow struct {
	Time              time.Time `json:"time"`
	PredictedSessions int       `json:"predicted_sessions"`
}
