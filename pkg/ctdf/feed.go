package ctdf

import "time"

// Feed is the normalised output of a single agency import
type Feed struct {
	AgencyRef      string    `groups:"basic"`
	GenerationTime time.Time `groups:"basic"`

	DataSource *DataSource `groups:"internal"`

	Routes []*Route `groups:"basic"`
	Trips  []*Trip  `groups:"basic"`
	Stops  []*Stop  `groups:"basic"`
}

func (f *Feed) IsEmpty() bool {
	return len(f.Routes) == 0 && len(f.Trips) == 0 && len(f.Stops) == 0
}
