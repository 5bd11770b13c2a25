package helper

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"shiftguard.com/shiftguard/utils"
)

// Punch is one raw clock event from a legacy timeclock export.
type Punch struct {
	ID         int
	WorkerCode string
	Timestamp  time.Time
	Date       string
	Location   string
}

// DaySpan is a worker's punches for one calendar day collapsed to a span.
type DaySpan struct {
	WorkerCode string
	Date       string
	From       time.Time
	To         time.Time
	Punches    []Punch
}

// ParsePunchCSV reads a legacy export with columns ID, WorkerCode,
// Timestamp (RFC3339), Location. The offset shifts timestamps into the
// site's wall clock before day grouping.
func ParsePunchCSV(r io.Reader, offset int) ([]Punch, error) {
	rows, err := utils.ParseCSV(r)
	if err != nil {
		return nil, err
	}

	loc := time.FixedZone("OFFSET", offset)

	var punches []Punch
	for i, row := range rows {
		if i == 0 {
			continue
		}

		if len(row) < 4 {
			return nil, fmt.Errorf("row %d: expected 4 columns, got %d", i, len(row))
		}

		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid ID: %w", i, err)
		}

		parsed, err := utils.ParseISOTime(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid timestamp: %w", i, err)
		}
		timestamp := parsed.In(loc)

		punch := Punch{
			ID:         id,
			WorkerCode: row[1],
			Timestamp:  timestamp,
			Date:       timestamp.Format("2006-01-02"),
			Location:   row[3],
		}

		punches = append(punches, punch)
	}

	return punches, nil
}

// GroupPunches collapses punches into one span per worker per day. The first
// punch of the day is the clock-in, the last is the clock-out.
func GroupPunches(punches []Punch) []DaySpan {
	grouped := make(map[string]DaySpan)
	var order []string

	for _, p := range punches {
		key := p.WorkerCode + "|" + p.Date
		span, exists := grouped[key]

		if !exists {
			order = append(order, key)
			grouped[key] = DaySpan{
				WorkerCode: p.WorkerCode,
				Date:       p.Date,
				From:       p.Timestamp,
				To:         p.Timestamp,
				Punches:    []Punch{p},
			}
		} else {
			if p.Timestamp.Before(span.From) {
				span.From = p.Timestamp
			}
			if p.Timestamp.After(span.To) {
				span.To = p.Timestamp
			}
			span.Punches = append(span.Punches, p)
			grouped[key] = span
		}
	}

	spans := make([]DaySpan, 0, len(grouped))
	for _, key := range order {
		spans = append(spans, grouped[key])
	}
	return spans
}
