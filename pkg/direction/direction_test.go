package direction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/normaliser/pkg/ctdf"
	"github.com/travigo/normaliser/pkg/textclean"
	"golang.org/x/text/language"
)

func headsignCleaner() textclean.Rule {
	return textclean.Headsign(language.French, []textclean.Rule{
		textclean.MustWords("Cgp", `c[ée]gep`),
		textclean.MustWords("Pl", `place`),
		textclean.MustWords("Term", `terminus`),
		textclean.MustWords("U Laval", `universit[ée] laval`, `univ\.? ?laval`, `u\.? ?laval`),
	}, textclean.StreetTypesFRCA)
}

func TestDirectionCodes(t *testing.T) {
	assert.Equal(t, 0, int(ctdf.DirectionNorth))
	assert.Equal(t, 1, int(ctdf.DirectionSouth))
	assert.Equal(t, 2, int(ctdf.DirectionEast))
	assert.Equal(t, 3, int(ctdf.DirectionWest))
}

var bothForms = Convention{
	Suffixes: FrenchSuffixes,
	Forms:    []Form{FormParenthesised, FormBare},
	Rewrite:  RewritePrefix,
}

func TestClassify(t *testing.T) {
	classifier, err := NewClassifier(bothForms, headsignCleaner())
	require.NoError(t, err)

	tests := []struct {
		headsign  string
		direction ctdf.Direction
		cleaned   string
	}{
		{"Terminus Beauport (Nord)", ctdf.DirectionNorth, "N-Term Beauport"},
		{"Cégep Garneau (Sud)", ctdf.DirectionSouth, "S-Cgp Garneau"},
		{"Place D'Youville (est)", ctdf.DirectionEast, "E-Pl d'Youville"},
		{"Université Laval(Ouest)", ctdf.DirectionWest, "O-U Laval"},
		{"Gare du Palais Nord", ctdf.DirectionNorth, "N-Gare du Palais"},
		{"Gare-Est", ctdf.DirectionEast, "E-Gare"},
		{"Ouest (NORD)", ctdf.DirectionNorth, "N-Ouest"},
	}

	for _, tt := range tests {
		t.Run(tt.headsign, func(t *testing.T) {
			direction, cleaned, err := classifier.Classify(tt.headsign)
			require.NoError(t, err)
			assert.Equal(t, tt.direction, direction)
			assert.Equal(t, tt.cleaned, cleaned)
		})
	}
}

func TestClassifyUnexpectedHeadsign(t *testing.T) {
	classifier, err := NewClassifier(DefaultConvention, headsignCleaner())
	require.NoError(t, err)

	for _, headsign := range []string{"", "Gare du Palais", "Nord", "Gare du Palais (Nord-Est)", "Gare du Palais Nord", "Boulevard Hamel Est"} {
		t.Run(headsign, func(t *testing.T) {
			_, _, err := classifier.Classify(headsign)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnexpectedHeadsign)
		})
	}
}

func TestClassifyBareForm(t *testing.T) {
	parenthesisedOnly, err := NewClassifier(DefaultConvention, headsignCleaner())
	require.NoError(t, err)
	_, _, err = parenthesisedOnly.Classify("Boulevard Hamel Est")
	assert.ErrorIs(t, err, ErrUnexpectedHeadsign)

	classifier, err := NewClassifier(bothForms, headsignCleaner())
	require.NoError(t, err)

	direction, cleaned, err := classifier.Classify("Boulevard Hamel Est")
	require.NoError(t, err)
	assert.Equal(t, ctdf.DirectionEast, direction)
	assert.Equal(t, "E-Boul Hamel", cleaned)
}

func TestClassifyBareRewrite(t *testing.T) {
	classifier, err := NewClassifier(Convention{
		Suffixes: FrenchSuffixes,
		Forms:    []Form{FormParenthesised},
		Rewrite:  RewriteBare,
	}, headsignCleaner())
	require.NoError(t, err)

	direction, cleaned, err := classifier.Classify("Terminus Beauport (Nord)")
	require.NoError(t, err)
	assert.Equal(t, ctdf.DirectionNorth, direction)
	assert.Equal(t, "Term Beauport", cleaned)

	_, _, err = classifier.Classify("Terminus Beauport Nord")
	assert.ErrorIs(t, err, ErrUnexpectedHeadsign)
}

func TestClassifyWithoutCleaner(t *testing.T) {
	classifier, err := NewClassifier(DefaultConvention, nil)
	require.NoError(t, err)

	direction, cleaned, err := classifier.Classify("Terminus Beauport (Sud)")
	require.NoError(t, err)
	assert.Equal(t, ctdf.DirectionSouth, direction)
	assert.Equal(t, "S-Terminus Beauport", cleaned)
}

func TestNewClassifierValidation(t *testing.T) {
	_, err := NewClassifier(Convention{Forms: []Form{FormBare}, Rewrite: RewriteBare}, nil)
	require.Error(t, err)

	_, err = NewClassifier(Convention{Suffixes: FrenchSuffixes, Forms: []Form{FormBare}, Rewrite: "sideways"}, nil)
	require.Error(t, err)

	_, err = NewClassifier(Convention{Suffixes: FrenchSuffixes, Forms: []Form{"suffix"}, Rewrite: RewriteBare}, nil)
	require.Error(t, err)

	_, err = NewClassifier(Convention{Suffixes: FrenchSuffixes, Rewrite: RewriteBare}, nil)
	require.Error(t, err)
}

func TestMergeHeadsigns(t *testing.T) {
	classifier, err := NewClassifier(DefaultConvention, nil)
	require.NoError(t, err)

	err = classifier.MergeHeadsigns(
		&ctdf.Trip{PrimaryIdentifier: "trip-1", Headsign: "N-Term Beauport"},
		&ctdf.Trip{PrimaryIdentifier: "trip-2", Headsign: "N-Gare du Palais"},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedMerge)
}
