package agency

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/normaliser/pkg/ctdf"
	"github.com/travigo/normaliser/pkg/direction"
	"github.com/travigo/normaliser/pkg/gtfs"
)

const minimalProfile = `
identifier: test-agency
name: Test Agency
source: feed.zip
locale: fr-CA
transporttype: Bus
colour: a3c614
`

func TestLoadShippedProfiles(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.LoadDirectory("../../data/agencies"))

	profile, err := registry.Get("ca-qc-rtc")
	require.NoError(t, err)

	assert.Equal(t, "A3C614", profile.Colour)
	assert.Equal(t, ctdf.TransportTypeBus, profile.TransportType)
	assert.Equal(t, "fr-CA", profile.Tag().String())
	assert.Equal(t, int64(10000), profile.Routes.Bands["a"])
	assert.Equal(t, "P1M", profile.ServiceWindow.Lookahead)
	assert.Len(t, profile.HeadsignAbbreviations(), 8)

	convention := profile.DirectionConvention()
	assert.Equal(t, direction.RewritePrefix, convention.Rewrite)
	assert.Equal(t, []direction.Form{direction.FormParenthesised}, convention.Forms)
	assert.Equal(t, direction.FrenchSuffixes, convention.Suffixes)
}

func TestLoadMultipleDocuments(t *testing.T) {
	stream := minimalProfile + "---\n" + strings.Replace(minimalProfile, "test-agency", "another-agency", 1)

	registry := NewRegistry()
	require.NoError(t, registry.Load(strings.NewReader(stream)))

	profiles := registry.List()
	require.Len(t, profiles, 2)
	assert.Equal(t, "another-agency", profiles[0].Identifier)
	assert.Equal(t, "test-agency", profiles[1].Identifier)
}

func TestLoadDirectorySkipsOtherFiles(t *testing.T) {
	directory := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(directory, "agency.yaml"), []byte(minimalProfile), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(directory, "README.md"), []byte("# not a profile"), 0o644))

	registry := NewRegistry()
	require.NoError(t, registry.LoadDirectory(directory))
	assert.Len(t, registry.List(), 1)
}

func TestRegistryErrors(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Load(strings.NewReader(minimalProfile)))

	_, err := registry.Get("missing")
	assert.ErrorIs(t, err, ErrUnknownAgency)

	err = registry.Load(strings.NewReader(minimalProfile))
	assert.ErrorContains(t, err, "more than once")
}

func TestDefaultConvention(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Load(strings.NewReader(minimalProfile)))

	profile, err := registry.Get("test-agency")
	require.NoError(t, err)

	assert.Equal(t, direction.DefaultConvention, profile.DirectionConvention())
	assert.Empty(t, profile.HeadsignAbbreviations())
}

func TestInvalidProfiles(t *testing.T) {
	tests := []struct {
		name    string
		replace [2]string
	}{
		{name: "colour too short", replace: [2]string{"colour: a3c614", "colour: a3c"}},
		{name: "colour not hex", replace: [2]string{"colour: a3c614", "colour: zzzzzz"}},
		{name: "missing identifier", replace: [2]string{"identifier: test-agency", "identifier: \"\""}},
		{name: "bad locale", replace: [2]string{"locale: fr-CA", "locale: \"not a locale!\""}},
		{name: "unknown transport type", replace: [2]string{"transporttype: Bus", "transporttype: Hovercraft"}},
		{name: "unknown field", replace: [2]string{"colour: a3c614", "colour: a3c614\ncolor: a3c614"}},
		{name: "bad stop code", replace: [2]string{"colour: a3c614", "colour: a3c614\nstops:\n  code: platform"}},
		{name: "bad street types", replace: [2]string{"colour: a3c614", "colour: a3c614\nheadsigns:\n  streettypes: en-GB"}},
		{name: "bad direction", replace: [2]string{"colour: a3c614", "colour: a3c614\ndirections:\n  suffixes:\n    - word: Up\n      direction: up"}},
		{name: "bad form", replace: [2]string{"colour: a3c614", "colour: a3c614\ndirections:\n  forms: [suffixed]"}},
		{name: "bad abbreviation", replace: [2]string{"colour: a3c614", "colour: a3c614\nheadsigns:\n  abbreviations:\n    - replacement: X\n      words: [\"(\"]"}},
		{name: "bad transform", replace: [2]string{"colour: a3c614", "colour: a3c614\ntransforms:\n  - when: \"ShortName ==\""}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			profile := strings.Replace(minimalProfile, test.replace[0], test.replace[1], 1)

			registry := NewRegistry()
			assert.Error(t, registry.Load(strings.NewReader(profile)))
		})
	}
}

func TestStopCode(t *testing.T) {
	profile := &Profile{}

	assert.Equal(t, "1234", profile.StopCode(&gtfs.Stop{ID: "12345", Code: "1234"}))
	assert.Equal(t, "12345", profile.StopCode(&gtfs.Stop{ID: "12345", Code: ""}))
	assert.Equal(t, "12345", profile.StopCode(&gtfs.Stop{ID: "12345", Code: "  "}))

	profile.Stops.Code = StopCodeFromStopID
	assert.Equal(t, "12345", profile.StopCode(&gtfs.Stop{ID: "12345", Code: "1234"}))
}

func TestDefaultDirectory(t *testing.T) {
	t.Setenv("NORMALISER_AGENCIES_DIR", "/etc/normaliser/agencies")
	assert.Equal(t, "/etc/normaliser/agencies", DefaultDirectory())

	t.Setenv("NORMALISER_AGENCIES_DIR", "")
	assert.Equal(t, "data/agencies/", DefaultDirectory())
}
