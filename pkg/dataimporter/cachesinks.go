package dataimporter

import (
	"context"

	"github.com/travigo/normaliser/pkg/ctdf"
	"github.com/travigo/normaliser/pkg/indexer"
	"github.com/travigo/normaliser/pkg/routecache"
)

type RouteCacheSink struct {
	Cache *routecache.Cache
}

func (s *RouteCacheSink) Name() string {
	return OutputRouteCache
}

func (s *RouteCacheSink) Write(ctx context.Context, feed *ctdf.Feed) error {
	return s.Cache.PutFeed(ctx, feed)
}

// StopIndexSink makes the stops of a feed searchable in Elasticsearch
type StopIndexSink struct{}

func (s *StopIndexSink) Name() string {
	return OutputElastic
}

func (s *StopIndexSink) Write(ctx context.Context, feed *ctdf.Feed) error {
	return indexer.IndexStops(ctx, feed.AgencyRef, feed.Stops)
}
