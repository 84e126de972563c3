package postgres

import (
	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/SpencerPresley/ea-woc-league/internal/domain/match"
	"github.com/SpencerPresley/ea-woc-league/internal/domain/season"
)

type teamSummaryModel struct {
	SeasonID      string `db:"season_id"`
	ClubID        string `db:"club_id"`
	Rank          int    `db:"rank"`
	Name          string `db:"name"`
	MatchesPlayed int    `db:"matches_played"`
	Points        int    `db:"points"`
	Stats         []byte `db:"stats"`
}

type playerSummaryModel struct {
	SeasonID      string `db:"season_id"`
	PlayerID      string `db:"player_id"`
	Rank          int    `db:"rank"`
	Name          string `db:"name"`
	MatchesPlayed int    `db:"matches_played"`
	Points        int    `db:"points"`
	Stats         []byte `db:"stats"`
}

// playerSummaryPayload is the jsonb shape of a player summary. The
// mapset fields flatten to plain slices on the wire.
type playerSummaryPayload struct {
	PlayerID  string   `json:"playerId"`
	Name      string   `json:"name"`
	Teams     []string `json:"teams"`
	Positions []string `json:"positions"`

	MatchesPlayed int `json:"matchesPlayed"`

	Skater       match.SkaterStats       `json:"skater"`
	Shooting     match.ShootingStats     `json:"shooting"`
	Passing      match.PassingStats      `json:"passing"`
	Physical     match.PhysicalStats     `json:"physical"`
	PuckControl  match.PuckControlStats  `json:"puckControl"`
	Faceoffs     match.FaceoffStats      `json:"faceoffs"`
	SpecialTeams match.SpecialTeamsStats `json:"specialTeams"`
	Penalties    match.PenaltyStats      `json:"penalties"`

	Goalie *match.GoalieStats `json:"goalie,omitempty"`

	TOIMinutes int `json:"toiMinutes"`
	TOISeconds int `json:"toiSeconds"`

	PointsPerGame float64 `json:"pointsPerGame"`
}

func newTeamSummaryModel(seasonID string, rank int, team *season.TeamSummary) (teamSummaryModel, error) {
	stats, err := sonic.Marshal(team)
	if err != nil {
		return teamSummaryModel{}, crerr.Wrapf(err, "encode team summary club_id=%s", team.ClubID)
	}
	return teamSummaryModel{
		SeasonID:      seasonID,
		ClubID:        team.ClubID,
		Rank:          rank,
		Name:          team.Name,
		MatchesPlayed: team.MatchesPlayed,
		Points:        team.Points,
		Stats:         stats,
	}, nil
}

func (m teamSummaryModel) toDomain() (*season.TeamSummary, error) {
	var out season.TeamSummary
	if err := sonic.Unmarshal(m.Stats, &out); err != nil {
		return nil, crerr.Wrapf(err, "decode team summary club_id=%s", m.ClubID)
	}
	return &out, nil
}

func newPlayerSummaryModel(seasonID string, rank int, player *season.PlayerSummary) (playerSummaryModel, error) {
	payload := playerSummaryPayload{
		PlayerID:      player.PlayerID,
		Name:          player.Name,
		Teams:         player.Teams.ToSlice(),
		MatchesPlayed: player.MatchesPlayed,
		Skater:        player.Skater,
		Shooting:      player.Shooting,
		Passing:       player.Passing,
		Physical:      player.Physical,
		PuckControl:   player.PuckControl,
		Faceoffs:      player.Faceoffs,
		SpecialTeams:  player.SpecialTeams,
		Penalties:     player.Penalties,
		Goalie:        player.Goalie,
		TOIMinutes:    player.TOIMinutes,
		TOISeconds:    player.TOISeconds,
		PointsPerGame: player.PointsPerGame,
	}
	for _, position := range player.Positions.ToSlice() {
		payload.Positions = append(payload.Positions, string(position))
	}

	stats, err := sonic.Marshal(payload)
	if err != nil {
		return playerSummaryModel{}, crerr.Wrapf(err, "encode player summary player_id=%s", player.PlayerID)
	}
	return playerSummaryModel{
		SeasonID:      seasonID,
		PlayerID:      player.PlayerID,
		Rank:          rank,
		Name:          player.Name,
		MatchesPlayed: player.MatchesPlayed,
		Points:        player.Skater.Points,
		Stats:         stats,
	}, nil
}

func (m playerSummaryModel) toDomain() (*season.PlayerSummary, error) {
	var payload playerSummaryPayload
	if err := sonic.Unmarshal(m.Stats, &payload); err != nil {
		return nil, crerr.Wrapf(err, "decode player summary player_id=%s", m.PlayerID)
	}

	out := season.NewPlayerSummary(payload.PlayerID)
	out.Name = payload.Name
	out.MatchesPlayed = payload.MatchesPlayed
	out.Skater = payload.Skater
	out.Shooting = payload.Shooting
	out.Passing = payload.Passing
	out.Physical = payload.Physical
	out.PuckControl = payload.PuckControl
	out.Faceoffs = payload.Faceoffs
	out.SpecialTeams = payload.SpecialTeams
	out.Penalties = payload.Penalties
	out.Goalie = payload.Goalie
	out.TOIMinutes = payload.TOIMinutes
	out.TOISeconds = payload.TOISeconds
	out.PointsPerGame = payload.PointsPerGame
	for _, clubID := range payload.Teams {
		out.Teams.Add(clubID)
	}
	for _, position := range payload.Positions {
		out.Positions.Add(match.Position(position))
	}
	return out, nil
}
