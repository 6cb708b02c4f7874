package models

import "time"

// Session is one computer-use session as stored in the hosted database.
// StartTime and EndTime are kept as the raw ISO-8601 text the store returns;
// rows with unparseable timestamps are dropped during aggregation rather
// than failing the whole query.
type Session struct {
	SessionID       string  `gorm:"column:session_id;primaryKey" json:"session_id"`
	StartTime       string  `gorm:"column:start_time" json:"start_time"`
	EndTime         string  `gorm:"column:end_time" json:"end_time"`
	DurationMinutes float64 `gorm:"column:duration_minutes" json:"duration_minutes"`
}

func (Session) TableName() string { return "sessions" }

// StartedAt parses the raw start_time. The bool is false for malformed rows.
func (s Session) StartedAt() (time.Time, bool) {
	return ParseSessionTime(s.StartTime)
}

var sessionTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseSessionTime parses a timestamp in any of the layouts the hosted
// store is known to emit. Pagination cursors go through the same parser so
// a raw stored value always round-trips as a cursor.
func ParseSessionTime(raw string) (time.Time, bool) {
	for _, layout := range sessionTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
