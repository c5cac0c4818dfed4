package recognition

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLandmark(t *testing.T) {
	t.Run("name and single line history", func(t *testing.T) {
		name, history, err := parseLandmark("NAME: Eiffel Tower\nHISTORY: Built in 1889...")
		require.NoError(t, err)
		assert.Equal(t, "Eiffel Tower", name)
		assert.Equal(t, "Built in 1889...", history)
	})

	t.Run("history runs to end of reply", func(t *testing.T) {
		reply := "NAME: Borobudur\nHISTORY: Built in the 9th century.\n\nRestored between 1975 and 1982.\n"
		_, history, err := parseLandmark(reply)
		require.NoError(t, err)
		assert.Equal(t, "Built in the 9th century.\n\nRestored between 1975 and 1982.", history)
	})

	t.Run("code fences are ignored", func(t *testing.T) {
		name, _, err := parseLandmark("```\nNAME: Colosseum\nHISTORY: Opened in AD 80.\n```")
		require.NoError(t, err)
		assert.Equal(t, "Colosseum", name)
	})

	t.Run("name does not spill into next line", func(t *testing.T) {
		_, _, err := parseLandmark("NAME:\nHISTORY: something")
		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "NAME", pe.Field)
	})

	for _, reply := range []string{
		"HISTORY: only history",
		"NAME: only name",
		"The landmark is the Eiffel Tower.",
		"",
	} {
		_, _, err := parseLandmark(reply)
		var pe *ParseError
		assert.ErrorAs(t, err, &pe, "reply %q", reply)
	}
}

func TestParseDirections(t *testing.T) {
	t.Run("stops before map url", func(t *testing.T) {
		d, err := parseDirections("DIRECTIONS:\n1. Go north\n2. Turn left\n\nMAP_URL: https://maps.example/x")
		require.NoError(t, err)
		assert.Equal(t, "1. Go north\n2. Turn left", d.Directions)
		assert.Equal(t, "https://maps.example/x", d.MapURL)
	})

	t.Run("no blank separator", func(t *testing.T) {
		d, err := parseDirections("DIRECTIONS:\n1. Go north\nMAP_URL: https://maps.example/y\n")
		require.NoError(t, err)
		assert.Equal(t, "1. Go north", d.Directions)
		assert.Equal(t, "https://maps.example/y", d.MapURL)
	})

	t.Run("steps on marker line", func(t *testing.T) {
		d, err := parseDirections("DIRECTIONS: 1. Walk 200 m east\n2. Arrive\n\nMAP_URL: https://maps.example/z")
		require.NoError(t, err)
		assert.Equal(t, "1. Walk 200 m east\n2. Arrive", d.Directions)
	})

	t.Run("missing map url", func(t *testing.T) {
		_, err := parseDirections("DIRECTIONS:\n1. Go north\n")
		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "MAP_URL", pe.Field)
	})

	t.Run("missing directions", func(t *testing.T) {
		_, err := parseDirections("MAP_URL: https://maps.example/x")
		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "DIRECTIONS", pe.Field)
	})
}

func TestDedupeSources(t *testing.T) {
	got := DedupeSources([]Citation{
		{Title: "Wiki", URI: "https://a"},
		{Title: "No uri"},
		{URI: "https://no-title"},
		{Title: "Blog", URI: "https://b"},
		{Title: "Wiki again", URI: "https://a"},
		{Title: "Blog", URI: "https://b"},
		{Title: "Museum", URI: "https://c"},
	})
	want := []Source{
		{Title: "Wiki", URI: "https://a"},
		{Title: "Blog", URI: "https://b"},
		{Title: "Museum", URI: "https://c"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DedupeSources mismatch (-want +got):\n%s", diff)
	}

	empty := DedupeSources(nil)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
