package postgres

import (
	"database/sql"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/SpencerPresley/ea-woc-league/internal/domain/league"
	"github.com/SpencerPresley/ea-woc-league/internal/domain/match"
)

type teamModel struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	EAClubID   string `db:"ea_club_id"`
	EAClubName string `db:"ea_club_name"`
	PlayerIDs  []byte `db:"player_ids"`
	ManagerIDs []byte `db:"manager_ids"`
}

type playerModel struct {
	ID              string         `db:"id"`
	Name            string         `db:"name"`
	Position        sql.NullString `db:"position"`
	EAID            string         `db:"ea_id"`
	EAName          string         `db:"ea_name"`
	DiscordID       string         `db:"discord_id"`
	TeamID          string         `db:"team_id"`
	Role            sql.NullString `db:"role"`
	IsActiveManager bool           `db:"is_active_manager"`
}

func newTeamModel(team *league.Team) (teamModel, error) {
	playerIDs, err := sonic.Marshal(team.PlayerIDs.ToSlice())
	if err != nil {
		return teamModel{}, crerr.Wrapf(err, "encode roster team=%s", team.ID)
	}
	managerIDs, err := sonic.Marshal(team.ManagerIDs.ToSlice())
	if err != nil {
		return teamModel{}, crerr.Wrapf(err, "encode managers team=%s", team.ID)
	}
	return teamModel{
		ID:         team.ID,
		Name:       team.Name,
		EAClubID:   team.EAClubID,
		EAClubName: team.EAClubName,
		PlayerIDs:  playerIDs,
		ManagerIDs: managerIDs,
	}, nil
}

func (m teamModel) toDomain() (*league.Team, error) {
	team := league.NewTeam(m.ID, m.Name, m.EAClubID)
	team.EAClubName = m.EAClubName

	var playerIDs []string
	if err := sonic.Unmarshal(m.PlayerIDs, &playerIDs); err != nil {
		return nil, crerr.Wrapf(err, "decode roster team=%s", m.ID)
	}
	for _, playerID := range playerIDs {
		team.AddPlayer(playerID)
	}

	var managerIDs []string
	if err := sonic.Unmarshal(m.ManagerIDs, &managerIDs); err != nil {
		return nil, crerr.Wrapf(err, "decode managers team=%s", m.ID)
	}
	for _, managerID := range managerIDs {
		team.ManagerIDs.Add(managerID)
	}

	return team, nil
}

func newPlayerModel(player league.Player) playerModel {
	model := playerModel{
		ID:              player.ID,
		Name:            player.Name,
		EAID:            player.EAID,
		EAName:          player.EAName,
		DiscordID:       player.DiscordID,
		TeamID:          player.TeamID,
		IsActiveManager: player.IsActiveManager,
	}
	if player.Position != "" {
		model.Position = sql.NullString{String: string(player.Position), Valid: true}
	}
	if player.Role != "" {
		model.Role = sql.NullString{String: string(player.Role), Valid: true}
	}
	return model
}

func (m playerModel) toDomain() league.Player {
	player := league.Player{
		ID:              m.ID,
		Name:            m.Name,
		EAID:            m.EAID,
		EAName:          m.EAName,
		DiscordID:       m.DiscordID,
		TeamID:          m.TeamID,
		IsActiveManager: m.IsActiveManager,
	}
	if m.Position.Valid {
		player.Position = match.Position(m.Position.String)
	}
	if m.Role.Valid {
		player.Role = league.ManagerRole(m.Role.String)
	}
	return player
}
