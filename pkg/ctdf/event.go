package ctdf

import "time"

type Event struct {
	Type      EventType
	Timestamp time.Time
	Body      interface{}
}

type EventType string

const (
	EventTypeFeedNormalised EventType = "FeedNormalised"
)

type FeedNormalisedEventBody struct {
	AgencyRef  string
	DatasetID  string
	RouteCount int
	TripCount  int
	StopCount  int
}
