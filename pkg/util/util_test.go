package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvironmentVariables(t *testing.T) {
	t.Setenv("NORMALISER_REDIS_ADDRESS", "localhost:6379")
	t.Setenv("NORMALISER_EMPTY", "")
	t.Setenv("OTHER_REDIS_ADDRESS", "elsewhere:6379")

	env := GetEnvironmentVariables()

	assert.Equal(t, "localhost:6379", env["NORMALISER_REDIS_ADDRESS"])
	assert.Contains(t, env, "NORMALISER_EMPTY")
	assert.NotContains(t, env, "OTHER_REDIS_ADDRESS")
}

func TestEnvironmentFlag(t *testing.T) {
	t.Setenv("NORMALISER_DEBUG", "yes")
	t.Setenv("NORMALISER_ELASTICSEARCH_INSECURE", "NO")

	assert.True(t, EnvironmentFlag("DEBUG"))
	assert.False(t, EnvironmentFlag("ELASTICSEARCH_INSECURE"))
	assert.False(t, EnvironmentFlag("UNSET_FLAG"))
}

func TestInPlaceFilter(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		removed  int
	}{
		{"keeps even", []int{1, 2, 3, 4, 6}, []int{2, 4, 6}, 2},
		{"removes all", []int{1, 3}, []int{}, 2},
		{"empty", []int{}, []int{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.input
			removed := InPlaceFilter(&s, func(i int) bool { return i%2 == 0 })

			assert.Equal(t, tt.removed, removed)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestDeduplicate(t *testing.T) {
	assert.Equal(t, []string{"mongo", "json"}, Deduplicate([]string{"mongo", "", "json", "mongo"}))
	assert.Equal(t, []string{"json"}, Deduplicate([]string{"mongo", "json"}, "mongo"))
	assert.Nil(t, Deduplicate([]string{"", ""}))
}
