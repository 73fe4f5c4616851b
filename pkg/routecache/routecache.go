package routecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/travigo/normaliser/pkg/ctdf"
)

var ErrNotFound = errors.New("route not in cache")

const DefaultExpiration = 48 * time.Hour

// Cache holds the route identity of the latest normalised feed of each agency
// so the real-time API can resolve a route without reading the whole feed
type Cache struct {
	Cache *cache.Cache[string]
}

func New(client *redis.Client, expiration time.Duration) *Cache {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return &Cache{
		Cache: cache.New[string](redisStore),
	}
}

func Key(agencyRef string, displayShortName string) string {
	return fmt.Sprintf("route_identity:%s:%s", agencyRef, displayShortName)
}

func (c *Cache) Put(ctx context.Context, agencyRef string, route *ctdf.Route) error {
	routeJSON, err := json.Marshal(route)
	if err != nil {
		return err
	}

	return c.Cache.Set(ctx, Key(agencyRef, route.DisplayShortName), string(routeJSON))
}

func (c *Cache) PutFeed(ctx context.Context, feed *ctdf.Feed) error {
	for _, route := range feed.Routes {
		if err := c.Put(ctx, feed.AgencyRef, route); err != nil {
			return err
		}
	}

	return nil
}

func (c *Cache) Get(ctx context.Context, agencyRef string, displayShortName string) (*ctdf.Route, error) {
	key := Key(agencyRef, displayShortName)

	routeJSON, err := c.Cache.Get(ctx, key)
	if isNotFound(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	} else if err != nil {
		return nil, err
	}

	var route *ctdf.Route
	if err := json.Unmarshal([]byte(routeJSON), &route); err != nil {
		return nil, err
	}

	return route, nil
}

// The redis store reports a missing key as a store.NotFound wrapping redis.Nil
func isNotFound(err error) bool {
	if err == nil {
		return false
	}

	var notFound *store.NotFound

	return errors.As(err, &notFound) || errors.Is(err, redis.Nil)
}
