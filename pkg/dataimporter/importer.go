package dataimporter

import (
	"context"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/normaliser/pkg/agency"
	"github.com/travigo/normaliser/pkg/ctdf"
	"github.com/travigo/normaliser/pkg/gtfs"
	"github.com/travigo/normaliser/pkg/normaliser"
	"github.com/travigo/normaliser/pkg/servicefilter"
)

type Importer struct {
	Registry   *agency.Registry
	Sinks      []Sink
	EventQueue rmq.Queue

	Now func() time.Time
}

// ImportAgency loads the feed of an agency, normalises it and hands it to
// every sink. source overrides the feed location of the profile when set.
// Nothing is written when normalisation fails.
func (i *Importer) ImportAgency(ctx context.Context, identifier string, source string) (*ctdf.Feed, error) {
	profile, err := i.Registry.Get(identifier)
	if err != nil {
		return nil, err
	}

	if source == "" {
		source = profile.Source
	}

	logger := log.With().Str("agency", profile.Identifier).Logger()
	logger.Info().Str("source", source).Msg("Importing agency feed")

	schedule, err := gtfs.Open(ctx, source)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if i.Now != nil {
		now = i.Now()
	}

	window, err := servicefilter.WindowForSchedule(profile.ServiceWindow, schedule, now)
	if err != nil {
		return nil, err
	}
	if window != nil {
		logger.Info().Strs("services", window.IDs()).Msg("Computed service window")
	}

	engine, err := normaliser.New(profile, window)
	if err != nil {
		return nil, err
	}

	feed, err := engine.Normalise(ctx, schedule)
	if err != nil {
		return nil, err
	}

	for _, sink := range i.Sinks {
		if err := sink.Write(ctx, feed); err != nil {
			return nil, err
		}

		logger.Info().Str("sink", sink.Name()).Msg("Wrote normalised feed")
	}

	if i.EventQueue != nil {
		if err := publishFeedNormalised(i.EventQueue, feed); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Int("routes", len(feed.Routes)).
		Int("trips", len(feed.Trips)).
		Int("stops", len(feed.Stops)).
		Msg("Imported agency feed")

	return feed, nil
}
