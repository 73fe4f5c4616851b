package agency

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/travigo/normaliser/pkg/ctdf"
	"github.com/travigo/normaliser/pkg/direction"
	"github.com/travigo/normaliser/pkg/gtfs"
	"github.com/travigo/normaliser/pkg/servicefilter"
	"github.com/travigo/normaliser/pkg/textclean"
	"github.com/travigo/normaliser/pkg/transforms"
	"golang.org/x/text/language"
)

const (
	StopCodeFromStopCode = "stop_code"
	StopCodeFromStopID   = "stop_id"
)

var validate = validator.New()

// Profile is everything agency specific about normalising a feed
type Profile struct {
	Identifier string `validate:"required"`
	Name       string `validate:"required"`
	Provider   Provider

	Source        string             `validate:"required"`
	Locale        string             `validate:"required"`
	TransportType ctdf.TransportType `validate:"omitempty,oneof=Bus Coach Tram Rail Metro Ferry CableCar Funicular"`
	Colour        string             `validate:"required,len=6,hexadecimal"`

	Routes     Routes
	Directions Directions
	Headsigns  Headsigns
	Stops      Stops

	ServiceWindow servicefilter.Range
	Transforms    transforms.Set

	tag                 language.Tag
	convention          direction.Convention
	abbreviations       []textclean.Rule
	routeStreetTypes    textclean.StreetTypes
	headsignStreetTypes textclean.StreetTypes
	stopStreetTypes     textclean.StreetTypes
}

type Provider struct {
	Name    string
	Website string `validate:"omitempty,url"`
}

// Routes configures numeric route identifiers. Bands map the final letter of
// a short name to the offset added to its digits.
type Routes struct {
	Bands       map[string]int64
	StreetTypes string
}

type Directions struct {
	Forms    []direction.Form `validate:"dive,oneof=parenthesised bare"`
	Rewrite  direction.Rewrite `validate:"omitempty,oneof=prefix bare"`
	Suffixes []DirectionSuffix `validate:"dive"`
}

type DirectionSuffix struct {
	Word      string `validate:"required"`
	Direction string `validate:"required"`
	Tag       string
}

type Headsigns struct {
	Abbreviations []Abbreviation `validate:"dive"`
	StreetTypes   string
}

// Abbreviation replaces any of the whole word patterns in Words with Replacement
type Abbreviation struct {
	Replacement string   `validate:"required"`
	Words       []string `validate:"required,min=1"`
}

type Stops struct {
	StreetTypes string
	Code        string `validate:"omitempty,oneof=stop_code stop_id"`
}

// Validate checks the profile and prepares the rules it describes. It must be
// called before any of the accessors.
func (p *Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("agency %s: %w", p.Identifier, err)
	}

	tag, err := language.Parse(p.Locale)
	if err != nil {
		return fmt.Errorf("agency %s locale: %w", p.Identifier, err)
	}
	p.tag = tag
	p.Colour = strings.ToUpper(p.Colour)

	convention, err := p.Directions.convention()
	if err != nil {
		return fmt.Errorf("agency %s directions: %w", p.Identifier, err)
	}
	p.convention = convention

	p.abbreviations = nil
	for _, abbreviation := range p.Headsigns.Abbreviations {
		rule, err := textclean.NewWords(abbreviation.Replacement, abbreviation.Words...)
		if err != nil {
			return fmt.Errorf("agency %s abbreviation %s: %w", p.Identifier, abbreviation.Replacement, err)
		}

		p.abbreviations = append(p.abbreviations, rule)
	}

	if p.routeStreetTypes, err = textclean.LookupStreetTypes(p.Routes.StreetTypes); err != nil {
		return fmt.Errorf("agency %s routes: %w", p.Identifier, err)
	}
	if p.headsignStreetTypes, err = textclean.LookupStreetTypes(p.Headsigns.StreetTypes); err != nil {
		return fmt.Errorf("agency %s headsigns: %w", p.Identifier, err)
	}
	if p.stopStreetTypes, err = textclean.LookupStreetTypes(p.Stops.StreetTypes); err != nil {
		return fmt.Errorf("agency %s stops: %w", p.Identifier, err)
	}

	if err := p.Transforms.Compile(); err != nil {
		return fmt.Errorf("agency %s: %w", p.Identifier, err)
	}

	return nil
}

func (d Directions) convention() (direction.Convention, error) {
	if len(d.Suffixes) == 0 && len(d.Forms) == 0 && d.Rewrite == "" {
		return direction.DefaultConvention, nil
	}

	convention := direction.Convention{
		Suffixes: direction.DefaultConvention.Suffixes,
		Forms:    direction.DefaultConvention.Forms,
		Rewrite:  direction.DefaultConvention.Rewrite,
	}

	if len(d.Forms) > 0 {
		convention.Forms = d.Forms
	}
	if d.Rewrite != "" {
		convention.Rewrite = d.Rewrite
	}

	if len(d.Suffixes) > 0 {
		convention.Suffixes = make([]direction.Suffix, 0, len(d.Suffixes))

		for _, suffix := range d.Suffixes {
			value, err := ctdf.ParseDirection(suffix.Direction)
			if err != nil {
				return direction.Convention{}, err
			}

			convention.Suffixes = append(convention.Suffixes, direction.Suffix{
				Word:      suffix.Word,
				Direction: value,
				Tag:       suffix.Tag,
			})
		}
	}

	return convention, nil
}

func (p *Profile) Tag() language.Tag {
	return p.tag
}

func (p *Profile) DirectionConvention() direction.Convention {
	return p.convention
}

func (p *Profile) HeadsignAbbreviations() []textclean.Rule {
	return p.abbreviations
}

func (p *Profile) RouteStreetTypes() textclean.StreetTypes {
	return p.routeStreetTypes
}

func (p *Profile) HeadsignStreetTypes() textclean.StreetTypes {
	return p.headsignStreetTypes
}

func (p *Profile) StopStreetTypes() textclean.StreetTypes {
	return p.stopStreetTypes
}

// StopCode is the public code of a stop, stop_code when the feed has one and
// the stop_id otherwise
func (p *Profile) StopCode(stop *gtfs.Stop) string {
	if p.Stops.Code == StopCodeFromStopID {
		return stop.ID
	}

	code := strings.TrimSpace(stop.Code)
	if code == "" {
		return stop.ID
	}

	return code
}
