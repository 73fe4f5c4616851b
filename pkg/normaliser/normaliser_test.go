package normaliser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/normaliser/pkg/agency"
	"github.com/travigo/normaliser/pkg/ctdf"
	"github.com/travigo/normaliser/pkg/direction"
	"github.com/travigo/normaliser/pkg/gtfs"
	"github.com/travigo/normaliser/pkg/routeid"
	"github.com/travigo/normaliser/pkg/servicefilter"
)

func loadProfile(t *testing.T) *agency.Profile {
	registry := agency.NewRegistry()
	require.NoError(t, registry.LoadDirectory("../../data/agencies"))

	profile, err := registry.Get("ca-qc-rtc")
	require.NoError(t, err)

	return profile
}

func newNormaliser(t *testing.T, window *servicefilter.ServiceWindow) *Normaliser {
	normaliser, err := New(loadProfile(t), window)
	require.NoError(t, err)

	return normaliser
}

func testSchedule() *gtfs.Schedule {
	return &gtfs.Schedule{
		Routes: []gtfs.Route{
			{ID: "r1", ShortName: "12A", LongName: " (Boul. René-Lévesque) — null", Type: 3},
			{ID: "r2", ShortName: "800", Description: "CHARLESBOURG", Type: 3},
		},
		Trips: []gtfs.Trip{
			{ID: "t1", RouteID: "r1", ServiceID: "WEEK", Headsign: "Terminus Beauport (Nord)"},
			{ID: "t2", RouteID: "r2", ServiceID: "WEEK", Headsign: "Gare du Palais (Sud)"},
			{ID: "t3", RouteID: "r2", ServiceID: "WKND", Headsign: "Gare du Palais (Sud)"},
		},
		Stops: []gtfs.Stop{
			{ID: "12345", Name: "Boulevard Hamel / Avenue Nelligan", Latitude: 46.81, Longitude: -71.22},
			{ID: "2", Code: "1002", Name: "RUE SAINT-JEAN", Parent: "12345"},
		},
	}
}

func TestNormalise(t *testing.T) {
	normaliser := newNormaliser(t, nil)

	feed, err := normaliser.Normalise(context.Background(), testSchedule())
	require.NoError(t, err)

	assert.Equal(t, "ca-qc-rtc", feed.AgencyRef)
	assert.Equal(t, OriginalFormat, feed.DataSource.OriginalFormat)

	require.Len(t, feed.Routes, 2)
	express := feed.Routes[0]
	assert.Equal(t, "ca-qc-rtc-route-10012", express.PrimaryIdentifier)
	assert.Equal(t, int64(10012), express.NumericID)
	assert.Equal(t, "12A", express.DisplayShortName)
	assert.Equal(t, "Boulevard René-Lévesque", express.LongName)
	assert.Equal(t, "A3C614", express.Colour)
	assert.Equal(t, ctdf.TransportTypeBus, express.TransportType)
	assert.Equal(t, "r1", express.OtherIdentifiers["GTFS-RouteID"])
	assert.Equal(t, "Charlesbourg", feed.Routes[1].LongName)
	assert.Equal(t, int64(800), feed.Routes[1].NumericID)

	require.Len(t, feed.Trips, 3)
	assert.Equal(t, ctdf.DirectionNorth, feed.Trips[0].Direction)
	assert.Equal(t, "N-Term Beauport", feed.Trips[0].Headsign)
	assert.Equal(t, "ca-qc-rtc-route-10012", feed.Trips[0].RouteRef)
	assert.Equal(t, "ca-qc-rtc-service-WEEK", feed.Trips[0].ServiceRef)
	assert.Equal(t, ctdf.DirectionSouth, feed.Trips[1].Direction)
	assert.Equal(t, "S-Gare du Palais", feed.Trips[1].Headsign)
	assert.Equal(t, "ca-qc-rtc-route-800", feed.Trips[1].RouteRef)

	require.Len(t, feed.Stops, 2)
	assert.Equal(t, "12345", feed.Stops[0].Code)
	assert.Equal(t, "Boul Hamel / Av Nelligan", feed.Stops[0].Name)
	assert.Equal(t, 46.81, feed.Stops[0].Latitude)
	assert.Equal(t, -71.22, feed.Stops[0].Longitude)
	assert.Equal(t, "1002", feed.Stops[1].Code)
	assert.Equal(t, "Rue Saint-Jean", feed.Stops[1].Name)
	assert.Equal(t, "ca-qc-rtc-stop-12345", feed.Stops[1].ParentStation)
}

func TestNormaliseServiceWindow(t *testing.T) {
	normaliser := newNormaliser(t, servicefilter.NewServiceWindow("WEEK"))

	schedule := testSchedule()
	schedule.Trips[2].Headsign = "no direction at all"

	feed, err := normaliser.Normalise(context.Background(), schedule)
	require.NoError(t, err)

	require.Len(t, feed.Trips, 2)
	for _, trip := range feed.Trips {
		assert.Equal(t, "ca-qc-rtc-service-WEEK", trip.ServiceRef)
	}
}

func TestNormaliseExcludingAll(t *testing.T) {
	normaliser := newNormaliser(t, servicefilter.NewServiceWindow())

	feed, err := normaliser.Normalise(context.Background(), testSchedule())
	require.NoError(t, err)
	assert.True(t, feed.IsEmpty())
}

func TestNormaliseUnexpectedRouteID(t *testing.T) {
	normaliser := newNormaliser(t, nil)

	schedule := testSchedule()
	schedule.Routes[1].ShortName = "Métrobus"

	feed, err := normaliser.Normalise(context.Background(), schedule)
	assert.Nil(t, feed)

	var fatal *FatalError
	require.True(t, errors.As(err, &fatal))
	assert.Equal(t, KindUnexpectedRouteID, fatal.Kind)
	assert.Equal(t, "route r2", fatal.Record)
	assert.ErrorIs(t, err, routeid.ErrUnexpectedRouteID)
}

func TestNormaliseUnexpectedHeadsign(t *testing.T) {
	normaliser := newNormaliser(t, nil)
	normaliser.MaxGoroutines = 4

	schedule := testSchedule()
	for i := 0; i < 50; i++ {
		schedule.Trips = append(schedule.Trips, gtfs.Trip{
			ID:        fmt.Sprintf("extra-%d", i),
			RouteID:   "r1",
			ServiceID: "WEEK",
			Headsign:  "Terminus Beauport (Est)",
		})
	}
	schedule.Trips[20].Headsign = "Terminus Beauport"

	feed, err := normaliser.Normalise(context.Background(), schedule)
	assert.Nil(t, feed)

	var fatal *FatalError
	require.True(t, errors.As(err, &fatal))
	assert.Equal(t, KindUnexpectedTripHeadsign, fatal.Kind)
	assert.ErrorIs(t, err, direction.ErrUnexpectedHeadsign)
}

func TestNormaliseKeepsTripOrder(t *testing.T) {
	normaliser := newNormaliser(t, nil)
	normaliser.MaxGoroutines = 8

	schedule := &gtfs.Schedule{
		Routes: []gtfs.Route{{ID: "r1", ShortName: "1"}},
	}
	for i := 0; i < 200; i++ {
		schedule.Trips = append(schedule.Trips, gtfs.Trip{
			ID:        fmt.Sprintf("trip-%d", i),
			RouteID:   "r1",
			ServiceID: "WEEK",
			Headsign:  "Place D'Youville (Ouest)",
		})
	}

	feed, err := normaliser.Normalise(context.Background(), schedule)
	require.NoError(t, err)

	require.Len(t, feed.Trips, 200)
	for i, trip := range feed.Trips {
		assert.Equal(t, fmt.Sprintf("trip-%d", i), trip.OtherIdentifiers["GTFS-TripID"])
		assert.Equal(t, ctdf.DirectionWest, trip.Direction)
		assert.Equal(t, "O-Pl d'Youville", trip.Headsign)
	}
}

func TestNormaliseCancelled(t *testing.T) {
	normaliser := newNormaliser(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	feed, err := normaliser.Normalise(ctx, testSchedule())
	assert.Nil(t, feed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMergeTrips(t *testing.T) {
	normaliser := newNormaliser(t, nil)

	a, err := normaliser.Trip(&gtfs.Trip{ID: "t1", ServiceID: "WEEK", Headsign: "Terminus Beauport (Nord)"}, "route")
	require.NoError(t, err)
	b, err := normaliser.Trip(&gtfs.Trip{ID: "t2", ServiceID: "WEEK", Headsign: "TERMINUS BEAUPORT (NORD)"}, "route")
	require.NoError(t, err)
	assert.Equal(t, a.Headsign, b.Headsign)

	err = normaliser.MergeTrips(a, b)

	var fatal *FatalError
	require.True(t, errors.As(err, &fatal))
	assert.Equal(t, KindUnexpectedTripsToMerge, fatal.Kind)
	assert.ErrorIs(t, err, direction.ErrUnexpectedMerge)
}

func TestStopCodeFallback(t *testing.T) {
	normaliser := newNormaliser(t, nil)

	stop, err := normaliser.Stop(&gtfs.Stop{ID: "12345", Name: "Gare du Palais"})
	require.NoError(t, err)

	assert.Equal(t, "12345", stop.Code)
	assert.Equal(t, "ca-qc-rtc-stop-12345", stop.PrimaryIdentifier)
	assert.NotContains(t, stop.OtherIdentifiers, "GTFS-StopCode")
}

func TestNormaliseTransforms(t *testing.T) {
	profileYaml := `
identifier: test-agency
name: Test Agency
source: feed.zip
locale: fr-CA
colour: A3C614
transforms:
  - type: ctdf.Route
    match:
      ShortName: "21"
    data:
      Colour: "008AC9"
`
	registry := agency.NewRegistry()
	require.NoError(t, registry.Load(strings.NewReader(profileYaml)))
	profile, err := registry.Get("test-agency")
	require.NoError(t, err)

	normaliser, err := New(profile, nil)
	require.NoError(t, err)

	feed, err := normaliser.Normalise(context.Background(), &gtfs.Schedule{
		Routes: []gtfs.Route{
			{ID: "21", ShortName: "21", Type: 3},
			{ID: "22", ShortName: "22", Type: 0},
		},
	})
	require.NoError(t, err)

	require.Len(t, feed.Routes, 2)
	assert.Equal(t, "008AC9", feed.Routes[0].Colour)
	assert.Equal(t, ctdf.TransportTypeBus, feed.Routes[0].TransportType)
	assert.Equal(t, "A3C614", feed.Routes[1].Colour)
	assert.Equal(t, ctdf.TransportTypeTram, feed.Routes[1].TransportType)
}

func TestHeadsignMarkerForms(t *testing.T) {
	normaliser := newNormaliser(t, nil)

	_, _, err := normaliser.Headsign("Boulevard Hamel Est")
	assert.ErrorIs(t, err, direction.ErrUnexpectedHeadsign)

	profile := loadProfile(t)
	profile.Directions.Forms = []direction.Form{direction.FormParenthesised, direction.FormBare}
	require.NoError(t, profile.Validate())

	bare, err := New(profile, nil)
	require.NoError(t, err)

	headsignDirection, headsign, err := bare.Headsign("Boulevard Hamel Est")
	require.NoError(t, err)
	assert.Equal(t, ctdf.DirectionEast, headsignDirection)
	assert.Equal(t, "E-Boul Hamel", headsign)
}
