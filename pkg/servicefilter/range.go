package servicefilter

import (
	"errors"
	"time"

	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/normaliser/pkg/gtfs"
)

// Range describes the dates a feed should be restricted to. Either an explicit
// From/To pair (YYYYMMDD) or a Lookahead ISO-8601 duration from From (or today
// when From is empty). The zero value means no restriction.
type Range struct {
	From      string `yaml:"from"`
	To        string `yaml:"to"`
	Lookahead string `yaml:"lookahead"`
}

func (r Range) IsZero() bool {
	return r.From == "" && r.To == "" && r.Lookahead == ""
}

func (r Range) Bounds(now time.Time) (time.Time, time.Time, error) {
	from := truncateToDate(now)
	if r.From != "" {
		parsed, err := time.Parse(gtfs.DateFormat, r.From)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}

	switch {
	case r.To != "":
		to, err := time.Parse(gtfs.DateFormat, r.To)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if to.Before(from) {
			return time.Time{}, time.Time{}, errors.New("service window ends before it starts")
		}

		return from, to, nil
	case r.Lookahead != "":
		lookahead, err := iso8601.ParseISO8601(r.Lookahead)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}

		return from, lookahead.Shift(from), nil
	default:
		return time.Time{}, time.Time{}, errors.New("service window needs either an end date or a lookahead")
	}
}

// WindowForSchedule computes the service window of a schedule. A zero Range
// gives a nil window, meaning nothing is filtered.
func WindowForSchedule(r Range, schedule *gtfs.Schedule, now time.Time) (*ServiceWindow, error) {
	if r.IsZero() {
		return nil, nil
	}

	from, to, err := r.Bounds(now)
	if err != nil {
		return nil, err
	}

	return ExtractUsefulServiceIDs(schedule.Calendars, schedule.CalendarDates, from, to), nil
}
