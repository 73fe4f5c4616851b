package ctdf

type Trip struct {
	PrimaryIdentifier string            `groups:"basic"`
	OtherIdentifiers  map[string]string `groups:"basic"`

	DataSource *DataSource `groups:"internal"`

	RouteRef   string `groups:"basic"`
	ServiceRef string `groups:"basic"`

	Headsign  string    `groups:"basic"`
	Direction Direction `groups:"basic"`
}
