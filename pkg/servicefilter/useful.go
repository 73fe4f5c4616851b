package servicefilter

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/normaliser/pkg/gtfs"
)

// ExtractUsefulServiceIDs builds the window of services running on at least one
// day between from and to inclusive
func ExtractUsefulServiceIDs(calendars []gtfs.Calendar, calendarDates []gtfs.CalendarDate, from time.Time, to time.Time) *ServiceWindow {
	from = truncateToDate(from)
	to = truncateToDate(to)

	removed := map[string]map[string]bool{}
	var useful []string

	for _, calendarDate := range calendarDates {
		date, err := time.Parse(gtfs.DateFormat, calendarDate.Date)
		if err != nil {
			log.Warn().Str("service", calendarDate.ServiceID).Str("date", calendarDate.Date).Msg("Invalid calendar date")
			continue
		}

		switch calendarDate.ExceptionType {
		case gtfs.ExceptionTypeAdded:
			if !date.Before(from) && !date.After(to) {
				useful = append(useful, calendarDate.ServiceID)
			}
		case gtfs.ExceptionTypeRemoved:
			if removed[calendarDate.ServiceID] == nil {
				removed[calendarDate.ServiceID] = map[string]bool{}
			}
			removed[calendarDate.ServiceID][calendarDate.Date] = true
		}
	}

	for _, calendar := range calendars {
		start, end, err := calendar.Period()
		if err != nil {
			log.Warn().Str("service", calendar.ServiceID).Err(err).Msg("Invalid calendar period")
			continue
		}

		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}

		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			if calendar.RunsOn(day.Weekday()) && !removed[calendar.ServiceID][day.Format(gtfs.DateFormat)] {
				useful = append(useful, calendar.ServiceID)
				break
			}
		}
	}

	return NewServiceWindow(useful...)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
