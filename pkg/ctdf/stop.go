package ctdf

type Stop struct {
	PrimaryIdentifier string            `groups:"basic"`
	OtherIdentifiers  map[string]string `groups:"basic"`

	DataSource *DataSource `groups:"internal"`

	Code string `groups:"basic"`
	Name string `groups:"basic"`

	Latitude  float64 `groups:"basic"`
	Longitude float64 `groups:"basic"`

	ParentStation string `groups:"detailed"`
}
