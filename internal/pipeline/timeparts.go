package pipeline

import "time"

// TimeRow is the calendar breakdown of one play timestamp, in UTC.
type TimeRow struct {
	StartTime int64 // epoch millis
	Hour      int
	Day       int
	Week      int
	Month     int
	Year      int
}

// TimeParts breaks an epoch-millisecond timestamp down in UTC. Week is the ISO-8601 week.
func TimeParts(epochMillis int64) TimeRow {
	t := time.UnixMilli(epochMillis).UTC()
	_, week := t.ISOWeek()
	return TimeRow{
		StartTime: epochMillis,
		Hour:      t.Hour(),
		Day:       t.Day(),
		Week:      week,
		Month:     int(t.Month()),
		Year:      t.Year(),
	}
}
