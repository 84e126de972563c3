package league

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SpencerPresley/ea-woc-league/internal/domain/match"
)

func TestPlayerValidate(t *testing.T) {
	t.Parallel()

	valid := Player{ID: "player-1", Name: "Kova", EAID: "ea-9000"}
	assert.NoError(t, valid.Validate())

	assert.Error(t, Player{Name: "Kova", EAID: "ea-9000"}.Validate())
	assert.Error(t, Player{ID: "player-1", EAID: "ea-9000"}.Validate())
	assert.Error(t, Player{ID: "player-1", Name: "Kova"}.Validate())
}

func TestTeamValidate(t *testing.T) {
	t.Parallel()

	team := NewTeam("team-101", "Ice Hawks", "101")
	assert.NoError(t, team.Validate())

	assert.Error(t, NewTeam("", "Ice Hawks", "101").Validate())
	assert.Error(t, NewTeam("team-101", "Ice Hawks", "").Validate())
}

func TestTeamRoster(t *testing.T) {
	t.Parallel()

	team := NewTeam("team-101", "Ice Hawks", "101")

	team.AddPlayer("player-1")
	team.AddPlayer("player-2")
	team.AddPlayer("player-1")
	assert.Equal(t, 2, team.PlayerIDs.Cardinality())

	team.RemovePlayer("player-1")
	assert.False(t, team.PlayerIDs.Contains("player-1"))
	assert.True(t, team.PlayerIDs.Contains("player-2"))

	team.AddManager("player-2")
	assert.True(t, team.ManagerIDs.Contains("player-2"))
}

func TestManagerRoles(t *testing.T) {
	t.Parallel()

	player := Player{
		ID:              "player-1",
		Name:            "Kova",
		Position:        match.PositionCenter,
		EAID:            "ea-9000",
		Role:            RoleOwner,
		IsActiveManager: true,
	}
	assert.NoError(t, player.Validate())
	assert.Equal(t, ManagerRole("owner"), player.Role)
	assert.Equal(t, ManagerRole("gm"), RoleGM)
	assert.Equal(t, ManagerRole("agm"), RoleAGM)
}
