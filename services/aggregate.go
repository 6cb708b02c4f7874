package services

import (
	"time"

	"session-demand-api/models"
)

// HourlySeries is the number of sessions started per hour on a contiguous
// hourly grid. The grid is implicit: index i covers the half-open hour
// [Start+i*1h, Start+(i+1)*1h), so gaps cannot exist by construction;
// hours with no sessions hold an explicit zero.
type HourlySeries struct {
	Start  time.Time
	Counts []int
}

func (s HourlySeries) Len() int { return len(s.Counts) }

func (s HourlySeries) Empty() bool { return len(s.Counts) == 0 }

// Time returns the grid timestamp at index i, in the series' own zone.
func (s HourlySeries) Time(i int) time.Time {
	return s.Start.Add(time.Duration(i) * time.Hour)
}

func (s HourlySeries) Times() []time.Time {
	times := make([]time.Time, len(s.Counts))
	for i := range s.Counts {
		times[i] = s.Time(i)
	}
	return times
}

// AggregateHourly buckets session starts into hourly counts. Rows whose
// start_time fails to parse are dropped rather than failing the whole
// aggregation; empty or fully-unparseable input yields an empty series.
// The zone of the source data is preserved on the output grid.
func AggregateHourly(sessions []models.Session) HourlySeries {
	var loc *time.Location
	counts := make(map[int64]int)
	var minHour, maxHour int64

	for _, sess := range sessions {
		ts, ok := sess.StartedAt()
		if !ok {
			continue
		}
		if loc == nil {
			loc = ts.Location()
		}
		// Floor on the wall clock, not absolute time: for zones with
		// non-whole-hour offsets (+05:30) the two disagree.
		hour := time.Date(ts.Year(), ts.Month(), ts.Day(), ts.Hour(), 0, 0, 0, ts.Location()).Unix()
		if len(counts) == 0 || hour < minHour {
			minHour = hour
		}
		if len(counts) == 0 || hour > maxHour {
			maxHour = hour
		}
		counts[hour]++
	}

	if len(counts) == 0 {
		return HourlySeries{}
	}

	n := int((maxHour-minHour)/3600) + 1
	grid := make([]int, n)
	for hour, c := range counts {
		grid[(hour-minHour)/3600] = c
	}

	return HourlySeries{
		Start:  time.Unix(minHour, 0).In(loc),
		Counts: grid,
	}
}
