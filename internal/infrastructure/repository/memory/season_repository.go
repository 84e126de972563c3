package memory

import (
	"context"
	"sync"

	crerr "github.com/cockroachdb/errors"

	"github.com/SpencerPresley/ea-woc-league/internal/domain/season"
)

type seasonRecord struct {
	teams   map[string]*season.TeamSummary
	players map[string]*season.PlayerSummary

	teamOrder   []string
	playerOrder []string
}

// SeasonRepository keeps finished summaries keyed by season id. Saving
// the same season again replaces the previous summary wholesale; runs
// are idempotent, not incremental.
type SeasonRepository struct {
	mu      sync.RWMutex
	seasons map[string]*seasonRecord
}

var _ season.Repository = (*SeasonRepository)(nil)

func NewSeasonRepository() *SeasonRepository {
	return &SeasonRepository{seasons: make(map[string]*seasonRecord)}
}

func (r *SeasonRepository) SaveSummary(_ context.Context, summary season.Summary) error {
	if summary.SeasonID == "" {
		return crerr.New("memory: season id is required")
	}

	record := &seasonRecord{
		teams:   make(map[string]*season.TeamSummary, len(summary.Teams)),
		players: make(map[string]*season.PlayerSummary, len(summary.Players)),
	}
	for _, team := range summary.Teams {
		record.teams[team.ClubID] = cloneTeamSummary(team)
		record.teamOrder = append(record.teamOrder, team.ClubID)
	}
	for _, player := range summary.Players {
		record.players[player.PlayerID] = clonePlayerSummary(player)
		record.playerOrder = append(record.playerOrder, player.PlayerID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seasons[summary.SeasonID] = record
	return nil
}

func (r *SeasonRepository) GetTeamSummary(_ context.Context, seasonID, clubID string) (*season.TeamSummary, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.seasons[seasonID]
	if !ok {
		return nil, false, nil
	}
	team, ok := record.teams[clubID]
	if !ok {
		return nil, false, nil
	}
	return cloneTeamSummary(team), true, nil
}

func (r *SeasonRepository) GetPlayerSummary(_ context.Context, seasonID, playerID string) (*season.PlayerSummary, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.seasons[seasonID]
	if !ok {
		return nil, false, nil
	}
	player, ok := record.players[playerID]
	if !ok {
		return nil, false, nil
	}
	return clonePlayerSummary(player), true, nil
}

func (r *SeasonRepository) ListTeamSummaries(_ context.Context, seasonID string) ([]*season.TeamSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.seasons[seasonID]
	if !ok {
		return nil, nil
	}
	out := make([]*season.TeamSummary, 0, len(record.teamOrder))
	for _, clubID := range record.teamOrder {
		out = append(out, cloneTeamSummary(record.teams[clubID]))
	}
	return out, nil
}

func (r *SeasonRepository) ListPlayerSummaries(_ context.Context, seasonID string) ([]*season.PlayerSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.seasons[seasonID]
	if !ok {
		return nil, nil
	}
	out := make([]*season.PlayerSummary, 0, len(record.playerOrder))
	for _, playerID := range record.playerOrder {
		out = append(out, clonePlayerSummary(record.players[playerID]))
	}
	return out, nil
}

func cloneTeamSummary(team *season.TeamSummary) *season.TeamSummary {
	out := *team
	return &out
}

func clonePlayerSummary(player *season.PlayerSummary) *season.PlayerSummary {
	out := *player
	if player.Teams != nil {
		out.Teams = player.Teams.Clone()
	}
	if player.Positions != nil {
		out.Positions = player.Positions.Clone()
	}
	if player.Goalie != nil {
		goalie := *player.Goalie
		out.Goalie = &goalie
	}
	return &out
}
