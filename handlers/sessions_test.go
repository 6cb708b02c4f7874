package handlers

import (
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"session-demand-api/models"

	"github.com/gin-gonic/gin"
)

func pageFromQuery(t *testing.T, query string) sessionPage {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/reports/sessions?"+query, nil)
	return parseSessionPage(c)
}

func TestParseSessionPageDefaults(t *testing.T) {
	p := pageFromQuery(t, "")

	if p.Limit != defaultSessionPageSize {
		t.Errorf("Limit = %d, want %d", p.Limit, defaultSessionPageSize)
	}
	if p.Before != nil {
		t.Errorf("Before = %v, want nil", p.Before)
	}
}

func TestParseSessionPageLimitCap(t *testing.T) {
	p := pageFromQuery(t, "limit=5000")
	if p.Limit != maxSessionPageSize {
		t.Errorf("Limit = %d, want %d", p.Limit, maxSessionPageSize)
	}

	p = pageFromQuery(t, "limit=-1")
	if p.Limit != defaultSessionPageSize {
		t.Errorf("Limit = %d, want %d for negative input", p.Limit, defaultSessionPageSize)
	}
}

func TestParseSessionPageCursorLayouts(t *testing.T) {
	// The cursor accepts every layout the store emits, not just RFC3339
	cases := []struct {
		cursor string
		want   time.Time
	}{
		{"2024-01-15T10:00:00Z", time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)},
		{"2024-01-15T10:00:00.123456", time.Date(2024, 1, 15, 10, 0, 0, 123456000, time.UTC)},
		{"2024-01-15 10:00:00", time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		p := pageFromQuery(t, "before="+url.QueryEscape(tc.cursor))
		if p.Before == nil {
			t.Errorf("before=%q: cursor not parsed", tc.cursor)
			continue
		}
		if !p.Before.Equal(tc.want) {
			t.Errorf("before=%q: Before = %v, want %v", tc.cursor, p.Before, tc.want)
		}
	}

	if p := pageFromQuery(t, "before=garbage"); p.Before != nil {
		t.Errorf("Before = %v for garbage cursor, want nil", p.Before)
	}
}

func TestNextSessionCursor(t *testing.T) {
	rows := []models.Session{
		{SessionID: "a", StartTime: "2024-01-15T12:00:00Z"},
		{SessionID: "b", StartTime: "2024-01-15T11:00:00Z"},
	}

	if got := nextSessionCursor(rows, false); got != "" {
		t.Errorf("cursor on final page = %q, want empty", got)
	}
	if got := nextSessionCursor(nil, true); got != "" {
		t.Errorf("cursor with no rows = %q, want empty", got)
	}

	got := nextSessionCursor(rows, true)
	want := time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC).Format(time.RFC3339Nano)
	if got != want {
		t.Errorf("cursor = %q, want %q", got, want)
	}
}

func TestNextSessionCursorFallbackLayoutLastRow(t *testing.T) {
	// Rows in the store's non-RFC3339 layouts still produce a cursor that
	// round-trips through the session time parser
	rows := []models.Session{
		{SessionID: "a", StartTime: "2024-01-15T12:00:00Z"},
		{SessionID: "b", StartTime: "2024-01-15 11:00:00"},
	}

	got := nextSessionCursor(rows, true)
	if got == "" {
		t.Fatal("cursor is empty for page ending in non-RFC3339 row")
	}
	if _, ok := models.ParseSessionTime(got); !ok {
		t.Errorf("cursor %q does not round-trip through the session time parser", got)
	}
}

func TestNextSessionCursorUnparseableLastRow(t *testing.T) {
	// A fully malformed trailing row must not leave the cursor empty while
	// has_more is true; the raw value is handed back instead
	rows := []models.Session{
		{SessionID: "a", StartTime: "2024-01-15T12:00:00Z"},
		{SessionID: "b", StartTime: "corrupted"},
	}

	got := nextSessionCursor(rows, true)
	if got != "corrupted" {
		t.Errorf("cursor = %q, want raw start_time %q", got, "corrupted")
	}
}
