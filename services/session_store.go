package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"session-demand-api/models"

	"gorm.io/gorm"
)

// SessionSource is the read-only gateway to the hosted session store. It is
// constructed once at startup and passed to whatever needs it; there is no
// package-level client.
type SessionSource interface {
	// RecentSessions returns sessions with start_time >= since, ascending.
	// An empty slice with a nil error means the store answered and had no
	// rows; a failure to reach the store comes back as ErrStoreUnavailable.
	RecentSessions(ctx context.Context, since time.Time) ([]models.Session, error)

	// LatestStartTime returns the most recent session start. ErrNoSessions
	// when the table is empty or the newest row is unparseable.
	LatestStartTime(ctx context.Context) (time.Time, error)
}

type SessionStore struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) RecentSessions(ctx context.Context, since time.Time) ([]models.Session, error) {
	var rows []models.Session
	err := s.db.WithContext(ctx).
		Select("session_id", "start_time", "end_time", "duration_minutes").
		Where("start_time >= ?", since).
		Order("start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return rows, nil
}

func (s *SessionStore) LatestStartTime(ctx context.Context) (time.Time, error) {
	var row models.Session
	err := s.db.WithContext(ctx).
		Select("start_time").
		Order("start_time DESC").
		Limit(1).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, ErrNoSessions
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	ts, ok := row.StartedAt()
	if !ok {
		return time.Time{}, ErrNoSessions
	}
	return ts, nil
}
