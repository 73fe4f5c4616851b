package servicefilter

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/normaliser/pkg/gtfs"
	"github.com/travigo/normaliser/pkg/util"
)

// Policy decides which schedule records are dropped before normalisation
type Policy interface {
	ExcludeCalendar(calendar *gtfs.Calendar) bool
	ExcludeCalendarDate(calendarDate *gtfs.CalendarDate) bool
	ExcludeTrip(trip *gtfs.Trip) bool
}

// PassThrough keeps everything
type PassThrough struct{}

func (PassThrough) ExcludeCalendar(*gtfs.Calendar) bool         { return false }
func (PassThrough) ExcludeCalendarDate(*gtfs.CalendarDate) bool { return false }
func (PassThrough) ExcludeTrip(*gtfs.Trip) bool                 { return false }

// Filter restricts records to a ServiceWindow. With no window every decision is
// delegated to the fallback policy.
type Filter struct {
	window   *ServiceWindow
	fallback Policy
}

func NewFilter(window *ServiceWindow) *Filter {
	return &Filter{
		window:   window,
		fallback: PassThrough{},
	}
}

func (f *Filter) withFallback(policy Policy) *Filter {
	return &Filter{
		window:   f.window,
		fallback: policy,
	}
}

// ExcludingAll is true when a window was supplied but holds no services
func (f *Filter) ExcludingAll() bool {
	return f.window != nil && f.window.Len() == 0
}

func (f *Filter) ExcludeCalendar(calendar *gtfs.Calendar) bool {
	if f.window != nil {
		return !f.window.Contains(calendar.ServiceID)
	}

	return f.fallback.ExcludeCalendar(calendar)
}

func (f *Filter) ExcludeCalendarDate(calendarDate *gtfs.CalendarDate) bool {
	if f.window != nil {
		return !f.window.Contains(calendarDate.ServiceID)
	}

	return f.fallback.ExcludeCalendarDate(calendarDate)
}

func (f *Filter) ExcludeTrip(trip *gtfs.Trip) bool {
	if f.window != nil {
		return !f.window.Contains(trip.ServiceID)
	}

	return f.fallback.ExcludeTrip(trip)
}

// Apply prunes the calendars, calendar dates and trips of a schedule in place
func (f *Filter) Apply(schedule *gtfs.Schedule) {
	calendars := util.InPlaceFilter(&schedule.Calendars, func(calendar gtfs.Calendar) bool {
		return !f.ExcludeCalendar(&calendar)
	})
	calendarDates := util.InPlaceFilter(&schedule.CalendarDates, func(calendarDate gtfs.CalendarDate) bool {
		return !f.ExcludeCalendarDate(&calendarDate)
	})
	trips := util.InPlaceFilter(&schedule.Trips, func(trip gtfs.Trip) bool {
		return !f.ExcludeTrip(&trip)
	})

	log.Info().
		Int("calendars", calendars).
		Int("calendardates", calendarDates).
		Int("trips", trips).
		Msg("Excluded records outside of service window")
}
