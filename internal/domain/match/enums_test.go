package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePosition(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"leftWing", "rightWing", "center", "leftDefense", "rightDefense", "defenseMen", "goalie"} {
		pos, ok := ParsePosition(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, raw, string(pos))
	}

	_, ok := ParsePosition("rover")
	assert.False(t, ok)
	_, ok = ParsePosition("")
	assert.False(t, ok)

	assert.True(t, PositionGoalie.IsGoalie())
	assert.False(t, PositionCenter.IsGoalie())
}

func TestParseTeamSide(t *testing.T) {
	t.Parallel()

	side, ok := ParseTeamSide(0)
	assert.True(t, ok)
	assert.Equal(t, SideHome, side)

	side, ok = ParseTeamSide(1)
	assert.True(t, ok)
	assert.Equal(t, SideAway, side)

	_, ok = ParseTeamSide(2)
	assert.False(t, ok)
	_, ok = ParseTeamSide(-1)
	assert.False(t, ok)
}

func TestParsePlatform(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"ps5", "ps4", "xbox-series-xs", "xboxone", "common-gen5"} {
		_, ok := ParsePlatform(raw)
		assert.True(t, ok, raw)
	}

	_, ok := ParsePlatform("dreamcast")
	assert.False(t, ok)
}

func TestParseMatchType(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"gameType5", "gameType10", "club_private"} {
		_, ok := ParseMatchType(raw)
		assert.True(t, ok, raw)
	}

	_, ok := ParseMatchType("ranked")
	assert.False(t, ok)
}
