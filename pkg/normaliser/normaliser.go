package normaliser

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/normaliser/pkg/agency"
	"github.com/travigo/normaliser/pkg/ctdf"
	"github.com/travigo/normaliser/pkg/direction"
	"github.com/travigo/normaliser/pkg/gtfs"
	"github.com/travigo/normaliser/pkg/routeid"
	"github.com/travigo/normaliser/pkg/servicefilter"
	"github.com/travigo/normaliser/pkg/textclean"
)

const OriginalFormat = "gtfs-schedule"

type Normaliser struct {
	profile *agency.Profile
	filter  *servicefilter.Filter

	routes     *routeid.Resolver
	directions *direction.Classifier
	stopNames  textclean.Pipeline

	MaxGoroutines int
}

// New builds the engine for one agency. window may be nil, in which case no
// service filtering happens.
func New(profile *agency.Profile, window *servicefilter.ServiceWindow) (*Normaliser, error) {
	tag := profile.Tag()

	resolver, err := routeid.NewResolver(profile.Routes.Bands, tag, profile.RouteStreetTypes())
	if err != nil {
		return nil, err
	}

	headsigns := textclean.Headsign(tag, profile.HeadsignAbbreviations(), profile.HeadsignStreetTypes())

	classifier, err := direction.NewClassifier(profile.DirectionConvention(), headsigns)
	if err != nil {
		return nil, err
	}

	return &Normaliser{
		profile:       profile,
		filter:        servicefilter.NewFilter(window),
		routes:        resolver,
		directions:    classifier,
		stopNames:     textclean.StopName(tag, profile.StopStreetTypes()),
		MaxGoroutines: runtime.NumCPU(),
	}, nil
}

func (n *Normaliser) Profile() *agency.Profile {
	return n.profile
}

func (n *Normaliser) Filter() *servicefilter.Filter {
	return n.filter
}

func (n *Normaliser) identifier(kind string, id string) string {
	return fmt.Sprintf("%s-%s-%s", n.profile.Identifier, kind, id)
}

func (n *Normaliser) RouteIdentifier(numericID int64) string {
	return n.identifier("route", fmt.Sprint(numericID))
}

func (n *Normaliser) Route(raw *gtfs.Route) (*ctdf.Route, error) {
	numericID, err := n.routes.RouteID(raw.ShortName)
	if err != nil {
		return nil, &FatalError{
			Kind:   KindUnexpectedRouteID,
			Record: fmt.Sprintf("route %s", raw.ID),
			Err:    err,
		}
	}

	transportType := n.profile.TransportType
	if transportType == "" {
		transportType = ctdf.TransportTypeFromGTFS(raw.Type)
	}

	return &ctdf.Route{
		PrimaryIdentifier: n.RouteIdentifier(numericID),
		OtherIdentifiers: map[string]string{
			"GTFS-RouteID": raw.ID,
		},
		NumericID:        numericID,
		ShortName:        strings.TrimSpace(raw.ShortName),
		DisplayShortName: n.routes.DisplayShortName(raw.ShortName),
		LongName:         n.routes.LongName(raw.LongName, raw.Description),
		Colour:           n.profile.Colour,
		TransportType:    transportType,
	}, nil
}

// Headsign classifies a raw headsign into its direction and cleaned text
func (n *Normaliser) Headsign(headsign string) (ctdf.Direction, string, error) {
	return n.directions.Classify(headsign)
}

func (n *Normaliser) Trip(raw *gtfs.Trip, routeRef string) (*ctdf.Trip, error) {
	tripDirection, headsign, err := n.directions.Classify(raw.Headsign)
	if err != nil {
		return nil, &FatalError{
			Kind:   KindUnexpectedTripHeadsign,
			Record: fmt.Sprintf("trip %s", raw.ID),
			Err:    err,
		}
	}

	return &ctdf.Trip{
		PrimaryIdentifier: n.identifier("trip", raw.ID),
		OtherIdentifiers: map[string]string{
			"GTFS-TripID": raw.ID,
		},
		RouteRef:   routeRef,
		ServiceRef: n.identifier("service", raw.ServiceID),
		Headsign:   headsign,
		Direction:  tripDirection,
	}, nil
}

// MergeTrips is the entry point for collapsing two trips into one. Merging is
// not supported so it always fails.
func (n *Normaliser) MergeTrips(a *ctdf.Trip, b *ctdf.Trip) error {
	err := n.directions.MergeHeadsigns(a, b)

	return &FatalError{
		Kind:   KindUnexpectedTripsToMerge,
		Record: fmt.Sprintf("trips %s and %s", a.PrimaryIdentifier, b.PrimaryIdentifier),
		Err:    err,
	}
}

func (n *Normaliser) Stop(raw *gtfs.Stop) (*ctdf.Stop, error) {
	stop := &ctdf.Stop{}
	if err := copier.Copy(stop, raw); err != nil {
		return nil, err
	}

	stop.PrimaryIdentifier = n.identifier("stop", raw.ID)
	stop.OtherIdentifiers = map[string]string{
		"GTFS-StopID": raw.ID,
	}
	if raw.Code != "" {
		stop.OtherIdentifiers["GTFS-StopCode"] = raw.Code
	}

	stop.Code = n.profile.StopCode(raw)
	stop.Name = n.stopNames.Clean(raw.Name)

	if raw.Parent != "" {
		stop.ParentStation = n.identifier("stop", raw.Parent)
	}

	return stop, nil
}

// Normalise turns a whole schedule into a feed. Records outside the service
// window are pruned from the schedule first. Any fatal error discards the
// whole feed.
func (n *Normaliser) Normalise(ctx context.Context, schedule *gtfs.Schedule) (*ctdf.Feed, error) {
	now := time.Now()
	datasource := &ctdf.DataSource{
		OriginalFormat: OriginalFormat,
		Provider:       n.profile.Provider.Name,
		DatasetID:      n.profile.Identifier,
		Timestamp:      now,
	}

	feed := &ctdf.Feed{
		AgencyRef:      n.profile.Identifier,
		GenerationTime: now,
		DataSource:     datasource,
	}

	if n.filter.ExcludingAll() {
		log.Warn().Str("agency", n.profile.Identifier).Msg("Service window excludes every service, nothing to normalise")
		return feed, nil
	}

	n.filter.Apply(schedule)

	routeRefs := map[string]string{}
	for i := range schedule.Routes {
		route, err := n.Route(&schedule.Routes[i])
		if err != nil {
			return nil, err
		}
		route.DataSource = datasource

		routeRefs[schedule.Routes[i].ID] = route.PrimaryIdentifier
		feed.Routes = append(feed.Routes, route)
	}
	log.Info().Str("agency", n.profile.Identifier).Int("length", len(feed.Routes)).Msg("Normalised routes")

	feed.Trips = make([]*ctdf.Trip, len(schedule.Trips))

	maxGoroutines := n.MaxGoroutines
	if maxGoroutines < 1 {
		maxGoroutines = 1
	}

	tripPool := pool.New().
		WithContext(ctx).
		WithFirstError().
		WithCancelOnError().
		WithMaxGoroutines(maxGoroutines)

	for i := range schedule.Trips {
		i := i
		tripPool.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			raw := &schedule.Trips[i]

			routeRef, exists := routeRefs[raw.RouteID]
			if !exists {
				routeRef = n.identifier("route", raw.RouteID)
			}

			trip, err := n.Trip(raw, routeRef)
			if err != nil {
				return err
			}
			trip.DataSource = datasource

			feed.Trips[i] = trip

			return nil
		})
	}

	if err := tripPool.Wait(); err != nil {
		return nil, err
	}
	log.Info().Str("agency", n.profile.Identifier).Int("length", len(feed.Trips)).Msg("Normalised trips")

	for i := range schedule.Stops {
		stop, err := n.Stop(&schedule.Stops[i])
		if err != nil {
			return nil, err
		}
		stop.DataSource = datasource

		feed.Stops = append(feed.Stops, stop)
	}
	log.Info().Str("agency", n.profile.Identifier).Int("length", len(feed.Stops)).Msg("Normalised stops")

	for _, records := range []interface{}{feed.Routes, feed.Trips, feed.Stops} {
		if err := n.profile.Transforms.Transform(records); err != nil {
			return nil, err
		}
	}

	return feed, nil
}

func (n *Normaliser) DisplayShortName(shortName string) string {
	return n.routes.DisplayShortName(shortName)
}
