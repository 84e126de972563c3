// Package memory holds map-backed repositories. They are the default
// persistence layer when no database is configured and the fixtures
// layer for service tests.
package memory

import (
	"context"
	"sort"
	"sync"

	crerr "github.com/cockroachdb/errors"

	"github.com/SpencerPresley/ea-woc-league/internal/domain/league"
)

type LeagueRepository struct {
	mu sync.RWMutex

	teamsByEAClubID   map[string]*league.Team
	playersByEAID     map[string]league.Player
	teamIDsByEAClubID []string
}

var _ league.Repository = (*LeagueRepository)(nil)

func NewLeagueRepository() *LeagueRepository {
	return &LeagueRepository{
		teamsByEAClubID: make(map[string]*league.Team),
		playersByEAID:   make(map[string]league.Player),
	}
}

func (r *LeagueRepository) ListTeams(_ context.Context) ([]*league.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*league.Team, 0, len(r.teamsByEAClubID))
	for _, eaClubID := range r.teamIDsByEAClubID {
		out = append(out, cloneTeam(r.teamsByEAClubID[eaClubID]))
	}
	return out, nil
}

func (r *LeagueRepository) GetTeamByEAClubID(_ context.Context, eaClubID string) (*league.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	team, ok := r.teamsByEAClubID[eaClubID]
	if !ok {
		return nil, false, nil
	}
	return cloneTeam(team), true, nil
}

func (r *LeagueRepository) UpsertTeam(_ context.Context, team *league.Team) error {
	if team == nil {
		return crerr.New("memory: team is required")
	}
	if team.EAClubID == "" {
		return crerr.New("memory: team ea club id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.teamsByEAClubID[team.EAClubID]; !exists {
		r.teamIDsByEAClubID = append(r.teamIDsByEAClubID, team.EAClubID)
	}
	r.teamsByEAClubID[team.EAClubID] = cloneTeam(team)
	return nil
}

func (r *LeagueRepository) ListPlayers(_ context.Context) ([]league.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.Player, 0, len(r.playersByEAID))
	for _, player := range r.playersByEAID {
		out = append(out, player)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *LeagueRepository) GetPlayerByEAID(_ context.Context, eaID string) (league.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	player, ok := r.playersByEAID[eaID]
	return player, ok, nil
}

func (r *LeagueRepository) UpsertPlayer(_ context.Context, player league.Player) error {
	if err := player.Validate(); err != nil {
		return crerr.Wrap(err, "memory: upsert player")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.playersByEAID[player.EAID] = player
	return nil
}

// cloneTeam copies the team and its roster sets so callers cannot
// mutate stored state through shared pointers.
func cloneTeam(team *league.Team) *league.Team {
	out := *team
	if team.PlayerIDs != nil {
		out.PlayerIDs = team.PlayerIDs.Clone()
	}
	if team.ManagerIDs != nil {
		out.ManagerIDs = team.ManagerIDs.Clone()
	}
	return &out
}
