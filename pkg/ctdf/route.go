package ctdf

type Route struct {
	PrimaryIdentifier string            `groups:"basic"`
	OtherIdentifiers  map[string]string `groups:"basic"`

	DataSource *DataSource `groups:"internal"`

	NumericID        int64  `groups:"basic"`
	ShortName        string `groups:"basic"`
	DisplayShortName string `groups:"basic"`
	LongName         string `groups:"basic"`

	Colour        string        `groups:"basic"`
	TransportType TransportType `groups:"basic"`
}
