package dataimporter

import (
	"encoding/json"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/travigo/normaliser/pkg/ctdf"
)

const EventsQueueName = "normaliser-events"

func feedNormalisedEvent(feed *ctdf.Feed) ctdf.Event {
	body := ctdf.FeedNormalisedEventBody{
		AgencyRef:  feed.AgencyRef,
		RouteCount: len(feed.Routes),
		TripCount:  len(feed.Trips),
		StopCount:  len(feed.Stops),
	}
	if feed.DataSource != nil {
		body.DatasetID = feed.DataSource.DatasetID
	}

	return ctdf.Event{
		Type:      ctdf.EventTypeFeedNormalised,
		Timestamp: time.Now(),
		Body:      body,
	}
}

func publishFeedNormalised(queue rmq.Queue, feed *ctdf.Feed) error {
	eventBytes, err := json.Marshal(feedNormalisedEvent(feed))
	if err != nil {
		return err
	}

	return queue.PublishBytes(eventBytes)
}
