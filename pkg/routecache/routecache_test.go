package routecache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/normaliser/pkg/ctdf"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	server := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	return New(client, time.Hour), server
}

func TestPutAndGet(t *testing.T) {
	routeCache, server := newTestCache(t)
	ctx := context.Background()

	feed := &ctdf.Feed{
		AgencyRef: "ca-qc-rtc",
		Routes: []*ctdf.Route{
			{PrimaryIdentifier: "ca-qc-rtc-route-10012", NumericID: 10012, ShortName: "12a", DisplayShortName: "12A", Colour: "A3C614"},
			{PrimaryIdentifier: "ca-qc-rtc-route-800", NumericID: 800, ShortName: "800", DisplayShortName: "800", Colour: "A3C614"},
		},
	}
	require.NoError(t, routeCache.PutFeed(ctx, feed))

	assert.True(t, server.Exists("route_identity:ca-qc-rtc:12A"))
	assert.True(t, server.Exists("route_identity:ca-qc-rtc:800"))
	assert.Greater(t, server.TTL("route_identity:ca-qc-rtc:12A"), time.Duration(0))

	route, err := routeCache.Get(ctx, "ca-qc-rtc", "12A")
	require.NoError(t, err)
	assert.Equal(t, int64(10012), route.NumericID)
	assert.Equal(t, "ca-qc-rtc-route-10012", route.PrimaryIdentifier)
}

func TestGetMissing(t *testing.T) {
	routeCache, _ := newTestCache(t)

	_, err := routeCache.Get(context.Background(), "ca-qc-rtc", "999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	t.Cleanup(func() { client.Close() })

	_, err := New(client, time.Hour).Get(context.Background(), "ca-qc-rtc", "12A")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
