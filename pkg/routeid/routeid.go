package routeid

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/travigo/normaliser/pkg/textclean"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrUnexpectedRouteID = errors.New("unexpected route id")

// DefaultBands offsets the numeric part of a route code by its trailing letter
var DefaultBands = map[string]int64{
	"a": 10000,
	"b": 20000,
	"g": 70000,
	"h": 80000,
}

var (
	allDigits = regexp.MustCompile(`^[0-9]+$`)
	digitRun  = regexp.MustCompile(`[0-9]+`)
)

type Resolver struct {
	tag      language.Tag
	bands    map[rune]int64
	longName textclean.Pipeline
}

func NewResolver(bands map[string]int64, tag language.Tag, streets textclean.StreetTypes) (*Resolver, error) {
	if len(bands) == 0 {
		bands = DefaultBands
	}

	resolver := &Resolver{
		tag:      tag,
		bands:    map[rune]int64{},
		longName: textclean.RouteLongName(tag, streets),
	}

	for suffix, offset := range bands {
		if utf8.RuneCountInString(suffix) != 1 {
			return nil, fmt.Errorf("route id band %q must be a single character", suffix)
		}

		letter, _ := utf8.DecodeRuneInString(suffix)
		resolver.bands[unicode.ToLower(letter)] = offset
	}

	return resolver, nil
}

// RouteID derives the stable numeric identifier of a route from its short name.
// Purely numeric names map to themselves, otherwise the first run of digits is
// offset by the band of the final character.
func (r *Resolver) RouteID(shortName string) (int64, error) {
	if allDigits.MatchString(shortName) {
		id, err := strconv.ParseInt(shortName, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %s", ErrUnexpectedRouteID, shortName, err)
		}

		return id, nil
	}

	digits := digitRun.FindString(shortName)
	if digits == "" {
		return 0, fmt.Errorf("%w: %q has no digits", ErrUnexpectedRouteID, shortName)
	}

	last, _ := utf8.DecodeLastRuneInString(shortName)
	offset, exists := r.bands[unicode.ToLower(last)]
	if !exists {
		return 0, fmt.Errorf("%w: %q has unknown suffix %q", ErrUnexpectedRouteID, shortName, last)
	}

	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %s", ErrUnexpectedRouteID, shortName, err)
	}

	if offset > 0 && id > math.MaxInt64-offset {
		return 0, fmt.Errorf("%w: %q is out of range for band %q", ErrUnexpectedRouteID, shortName, last)
	}

	return id + offset, nil
}

func (r *Resolver) DisplayShortName(shortName string) string {
	return cases.Upper(r.tag).String(strings.TrimSpace(shortName))
}

// LongName picks the route title, falling back to the description, and cleans it
func (r *Resolver) LongName(longName string, description string) string {
	name := longName
	if strings.TrimSpace(name) == "" {
		name = description
	}

	return r.longName.Clean(name)
}
