package services

import (
	"testing"
	"time"

	"session-demand-api/models"
)

func sessionAt(start string) models.Session {
	return models.Session{SessionID: "s-" + start, StartTime: start}
}

func TestAggregateHourlyCountsAndGaps(t *testing.T) {
	sessions := []models.Session{
		sessionAt("2024-01-15T10:15:00Z"),
		sessionAt("2024-01-15T10:45:30Z"),
		sessionAt("2024-01-15T13:05:00Z"),
	}

	series := AggregateHourly(sessions)

	if series.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 (10:00 through 13:00)", series.Len())
	}

	wantStart := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	if !series.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", series.Start, wantStart)
	}

	wantCounts := []int{2, 0, 0, 1}
	for i, want := range wantCounts {
		if series.Counts[i] != want {
			t.Errorf("Counts[%d] = %d, want %d", i, series.Counts[i], want)
		}
	}
}

func TestAggregateHourlyGridIsContiguous(t *testing.T) {
	sessions := []models.Session{
		sessionAt("2024-03-01T00:30:00Z"),
		sessionAt("2024-03-02T23:59:59Z"),
	}

	series := AggregateHourly(sessions)

	// 48 hours between the two floored extremes, inclusive
	if series.Len() != 48 {
		t.Fatalf("Len() = %d, want 48", series.Len())
	}

	for i := 1; i < series.Len(); i++ {
		if got := series.Time(i).Sub(series.Time(i - 1)); got != time.Hour {
			t.Fatalf("grid step at %d = %v, want 1h", i, got)
		}
	}

	total := 0
	for _, c := range series.Counts {
		total += c
	}
	if total != 2 {
		t.Errorf("total count = %d, want 2", total)
	}
}

func TestAggregateHourlyEmptyInput(t *testing.T) {
	series := AggregateHourly(nil)
	if !series.Empty() {
		t.Errorf("expected empty series for nil input, got %d points", series.Len())
	}

	series = AggregateHourly([]models.Session{})
	if !series.Empty() {
		t.Errorf("expected empty series for empty input, got %d points", series.Len())
	}
}

func TestAggregateHourlyDropsMalformedRows(t *testing.T) {
	sessions := []models.Session{
		sessionAt("not-a-timestamp"),
		sessionAt("2024-01-15T10:00:00Z"),
		sessionAt(""),
	}

	series := AggregateHourly(sessions)

	if series.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", series.Len())
	}
	if series.Counts[0] != 1 {
		t.Errorf("Counts[0] = %d, want 1", series.Counts[0])
	}
}

func TestAggregateHourlyAllMalformed(t *testing.T) {
	sessions := []models.Session{
		sessionAt("garbage"),
		sessionAt("2024-13-45T99:00:00Z"),
	}

	series := AggregateHourly(sessions)
	if !series.Empty() {
		t.Errorf("expected empty series for fully unparseable input, got %d points", series.Len())
	}
}

func TestAggregateHourlyPreservesZone(t *testing.T) {
	sessions := []models.Session{
		sessionAt("2024-01-15T10:30:00+05:00"),
		sessionAt("2024-01-15T12:30:00+05:00"),
	}

	series := AggregateHourly(sessions)

	if series.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", series.Len())
	}
	_, offset := series.Start.Zone()
	if offset != 5*3600 {
		t.Errorf("zone offset = %d, want %d", offset, 5*3600)
	}
	if series.Start.Hour() != 10 {
		t.Errorf("Start hour = %d, want 10", series.Start.Hour())
	}
}

func TestAggregateHourlyHalfHourZoneFloorsOnWallClock(t *testing.T) {
	sessions := []models.Session{
		sessionAt("2024-01-15T10:45:00+05:30"),
		sessionAt("2024-01-15T11:10:00+05:30"),
	}

	series := AggregateHourly(sessions)

	if series.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", series.Len())
	}
	// 10:45+05:30 floors to 10:00+05:30 local, not to a whole UTC hour
	if series.Start.Hour() != 10 || series.Start.Minute() != 0 {
		t.Errorf("Start = %v, want 10:00 wall clock", series.Start)
	}
	_, offset := series.Start.Zone()
	if offset != 5*3600+1800 {
		t.Errorf("zone offset = %d, want %d", offset, 5*3600+1800)
	}
	if series.Counts[0] != 1 || series.Counts[1] != 1 {
		t.Errorf("Counts = %v, want [1 1]", series.Counts)
	}
}

func TestAggregateHourlyFallbackLayouts(t *testing.T) {
	// Supabase also hands back timestamps without a zone suffix
	sessions := []models.Session{
		sessionAt("2024-01-15T10:30:00.123456"),
		sessionAt("2024-01-15 11:30:00"),
	}

	series := AggregateHourly(sessions)
	if series.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", series.Len())
	}
	if series.Counts[0] != 1 || series.Counts[1] != 1 {
		t.Errorf("Counts = %v, want [1 1]", series.Counts)
	}
}
