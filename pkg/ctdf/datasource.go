package ctdf

import "time"

type DataSource struct {
	OriginalFormat string    `groups:"internal"`
	Provider       string    `groups:"internal"`
	DatasetID      string    `groups:"internal"`
	Timestamp      time.Time `groups:"internal"`
}
