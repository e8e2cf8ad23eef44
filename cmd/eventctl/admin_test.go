package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/eventlens/internal/core/model"
)

func TestParseFields(t *testing.T) {
	patch, err := parseFields([]string{"people_killed=12", "summary=Flood in Dhaka", "verified=true", "note=null", "locations=Dhaka, Sylhet"})
	require.NoError(t, err)

	assert.Equal(t, model.Number(12), patch.PeopleKilled)
	assert.Equal(t, "Flood in Dhaka", patch.Summary)
	assert.Equal(t, "Dhaka, Sylhet", patch.Locations)

	v, ok := patch.Get("verified")
	require.True(t, ok)
	assert.Equal(t, model.KindBool, v.Kind)
	v, _ = patch.Get("note")
	assert.Equal(t, model.KindNull, v.Kind)

	_, err = parseFields([]string{"oops"})
	assert.Error(t, err)
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "abc", shorten("abc", 5))
	assert.Equal(t, "abcd…", shorten("abcdefgh", 5))
}
