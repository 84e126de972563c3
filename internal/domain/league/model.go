package league

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/SpencerPresley/ea-woc-league/internal/domain/match"
)

// ManagerRole marks the management duty a player holds on top of their
// playing role.
type ManagerRole string

const (
	RoleOwner ManagerRole = "owner"
	RoleGM    ManagerRole = "gm"
	RoleAGM   ManagerRole = "agm"
)

// Player is a league participant bound to an EA identity. League
// identity stays stable across seasons even when the EA display name
// changes.
type Player struct {
	ID       string
	Name     string
	Position match.Position

	EAID      string
	EAName    string
	DiscordID string

	TeamID string

	Role            ManagerRole
	IsActiveManager bool
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.EAID == "" {
		return fmt.Errorf("player ea id is required")
	}

	return nil
}

// Team is a persistent league club bound to an EA club id. Roster sets
// hold league player ids, not EA ids.
type Team struct {
	ID   string
	Name string

	EAClubID   string
	EAClubName string

	PlayerIDs  mapset.Set[string]
	ManagerIDs mapset.Set[string]
}

func NewTeam(id, name, eaClubID string) *Team {
	return &Team{
		ID:         id,
		Name:       name,
		EAClubID:   eaClubID,
		PlayerIDs:  mapset.NewSet[string](),
		ManagerIDs: mapset.NewSet[string](),
	}
}

func (t *Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.EAClubID == "" {
		return fmt.Errorf("team ea club id is required")
	}

	return nil
}

func (t *Team) AddPlayer(playerID string) {
	t.PlayerIDs.Add(playerID)
}

func (t *Team) RemovePlayer(playerID string) {
	t.PlayerIDs.Remove(playerID)
}

func (t *Team) AddManager(playerID string) {
	t.ManagerIDs.Add(playerID)
}
