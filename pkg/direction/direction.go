package direction

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/travigo/normaliser/pkg/ctdf"
	"github.com/travigo/normaliser/pkg/textclean"
)

var (
	ErrUnexpectedHeadsign = errors.New("unexpected trip headsign")
	ErrUnexpectedMerge    = errors.New("unexpected trips to merge")
)

// Form is how a direction marker is attached to the end of a headsign
type Form string

const (
	// FormParenthesised matches "Gare du Palais (Nord)"
	FormParenthesised Form = "parenthesised"
	// FormBare matches "Gare du Palais Nord"
	FormBare Form = "bare"
)

// Rewrite decides what becomes of the marker once it is recognised
type Rewrite string

const (
	// RewritePrefix moves the marker to the front as a short tag, "N-Gare du Palais"
	RewritePrefix Rewrite = "prefix"
	// RewriteBare drops the marker entirely
	RewriteBare Rewrite = "bare"
)

type Suffix struct {
	Word      string
	Direction ctdf.Direction
	Tag       string
}

var FrenchSuffixes = []Suffix{
	{Word: "Nord", Direction: ctdf.DirectionNorth, Tag: "N"},
	{Word: "Sud", Direction: ctdf.DirectionSouth, Tag: "S"},
	{Word: "Est", Direction: ctdf.DirectionEast, Tag: "E"},
	{Word: "Ouest", Direction: ctdf.DirectionWest, Tag: "O"},
}

// Convention is the complete direction rule table of an agency
type Convention struct {
	Suffixes []Suffix
	Forms    []Form
	Rewrite  Rewrite
}

// DefaultConvention only accepts parenthesised markers, a bare trailing word is
// too easily part of a street or place name (Boulevard Hamel Est).
var DefaultConvention = Convention{
	Suffixes: FrenchSuffixes,
	Forms:    []Form{FormParenthesised},
	Rewrite:  RewritePrefix,
}

type matcher struct {
	expression *regexp.Regexp
	suffix     Suffix
}

type Classifier struct {
	matchers []matcher
	rewrite  Rewrite
	cleaner  textclean.Rule
}

func NewClassifier(convention Convention, cleaner textclean.Rule) (*Classifier, error) {
	if len(convention.Suffixes) == 0 {
		return nil, errors.New("direction convention has no suffixes")
	}

	switch convention.Rewrite {
	case RewritePrefix, RewriteBare:
	default:
		return nil, fmt.Errorf("unknown direction rewrite %q", convention.Rewrite)
	}

	classifier := &Classifier{
		rewrite: convention.Rewrite,
		cleaner: cleaner,
	}

	for _, form := range convention.Forms {
		for _, suffix := range convention.Suffixes {
			word := regexp.QuoteMeta(suffix.Word)

			var expression string
			switch form {
			case FormParenthesised:
				expression = `(?i)^(.*?)\s*\(\s*` + word + `\s*\)\s*$`
			case FormBare:
				expression = `(?i)^(.*?)[\s\-]+` + word + `\s*$`
			default:
				return nil, fmt.Errorf("unknown direction form %q", form)
			}

			classifier.matchers = append(classifier.matchers, matcher{
				expression: regexp.MustCompile(expression),
				suffix:     suffix,
			})
		}
	}

	if len(classifier.matchers) == 0 {
		return nil, errors.New("direction convention has no forms")
	}

	return classifier, nil
}

// Classify reads the direction marker off the end of a headsign and returns the
// direction together with the cleaned headsign. A headsign with no marker is an
// error, there is no default direction.
func (c *Classifier) Classify(headsign string) (ctdf.Direction, string, error) {
	for _, matcher := range c.matchers {
		groups := matcher.expression.FindStringSubmatch(headsign)
		if groups == nil {
			continue
		}

		remaining := strings.TrimSpace(groups[1])
		if c.rewrite == RewritePrefix {
			remaining = matcher.suffix.Tag + "-" + remaining
		}

		if c.cleaner != nil {
			remaining = c.cleaner.Apply(remaining)
		}

		return matcher.suffix.Direction, remaining, nil
	}

	return 0, "", fmt.Errorf("%w: %q", ErrUnexpectedHeadsign, headsign)
}

// MergeHeadsigns is called when two trips of the same route and direction
// carry different headsigns. It always fails.
func (c *Classifier) MergeHeadsigns(a *ctdf.Trip, b *ctdf.Trip) error {
	return fmt.Errorf("%w: %q (%s) and %q (%s)", ErrUnexpectedMerge, a.Headsign, a.PrimaryIdentifier, b.Headsign, b.PrimaryIdentifier)
}
