package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/SpencerPresley/ea-woc-league/internal/domain/league"
	qb "github.com/SpencerPresley/ea-woc-league/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

var _ league.Repository = (*LeagueRepository)(nil)

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) ListTeams(ctx context.Context) ([]*league.Team, error) {
	query, args, err := qb.Select("id", "name", "ea_club_id", "ea_club_name", "player_ids", "manager_ids").
		From("teams").
		OrderBy("id ASC").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list teams query")
	}

	var rows []teamModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "list teams")
	}

	out := make([]*league.Team, 0, len(rows))
	for _, row := range rows {
		team, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, team)
	}
	return out, nil
}

func (r *LeagueRepository) GetTeamByEAClubID(ctx context.Context, eaClubID string) (*league.Team, bool, error) {
	query, args, err := qb.Select("id", "name", "ea_club_id", "ea_club_name", "player_ids", "manager_ids").
		From("teams").
		Where(qb.Eq("ea_club_id", eaClubID)).
		ToSQL()
	if err != nil {
		return nil, false, crerr.Wrap(err, "build get team query")
	}

	var row teamModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, crerr.Wrapf(err, "get team ea_club_id=%s", eaClubID)
	}

	team, err := row.toDomain()
	if err != nil {
		return nil, false, err
	}
	return team, true, nil
}

func (r *LeagueRepository) UpsertTeam(ctx context.Context, team *league.Team) error {
	if team == nil {
		return crerr.New("postgres: team is required")
	}
	if team.EAClubID == "" {
		return crerr.New("postgres: team ea club id is required")
	}

	model, err := newTeamModel(team)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertInto("teams").
		Columns("id", "name", "ea_club_id", "ea_club_name", "player_ids", "manager_ids").
		Values(model.ID, model.Name, model.EAClubID, model.EAClubName, model.PlayerIDs, model.ManagerIDs).
		Suffix(`ON CONFLICT (ea_club_id)
DO UPDATE SET
    name = EXCLUDED.name,
    ea_club_name = EXCLUDED.ea_club_name,
    player_ids = EXCLUDED.player_ids,
    manager_ids = EXCLUDED.manager_ids,
    updated_at = NOW()`).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build upsert team query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "upsert team ea_club_id=%s", team.EAClubID)
	}
	return nil
}

func (r *LeagueRepository) ListPlayers(ctx context.Context) ([]league.Player, error) {
	query, args, err := qb.Select("id", "name", "position", "ea_id", "ea_name", "discord_id", "team_id", "role", "is_active_manager").
		From("players").
		OrderBy("id ASC").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list players query")
	}

	var rows []playerModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "list players")
	}

	out := make([]league.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *LeagueRepository) GetPlayerByEAID(ctx context.Context, eaID string) (league.Player, bool, error) {
	query, args, err := qb.Select("id", "name", "position", "ea_id", "ea_name", "discord_id", "team_id", "role", "is_active_manager").
		From("players").
		Where(qb.Eq("ea_id", eaID)).
		ToSQL()
	if err != nil {
		return league.Player{}, false, crerr.Wrap(err, "build get player query")
	}

	var row playerModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.Player{}, false, nil
		}
		return league.Player{}, false, crerr.Wrapf(err, "get player ea_id=%s", eaID)
	}

	return row.toDomain(), true, nil
}

func (r *LeagueRepository) UpsertPlayer(ctx context.Context, player league.Player) error {
	if err := player.Validate(); err != nil {
		return crerr.Wrap(err, "postgres: upsert player")
	}

	model := newPlayerModel(player)

	query, args, err := qb.InsertInto("players").
		Columns("id", "name", "position", "ea_id", "ea_name", "discord_id", "team_id", "role", "is_active_manager").
		Values(model.ID, model.Name, model.Position, model.EAID, model.EAName, model.DiscordID, model.TeamID, model.Role, model.IsActiveManager).
		Suffix(`ON CONFLICT (ea_id)
DO UPDATE SET
    name = EXCLUDED.name,
    position = EXCLUDED.position,
    ea_name = EXCLUDED.ea_name,
    discord_id = EXCLUDED.discord_id,
    team_id = EXCLUDED.team_id,
    role = EXCLUDED.role,
    is_active_manager = EXCLUDED.is_active_manager,
    updated_at = NOW()`).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build upsert player query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "upsert player ea_id=%s", player.EAID)
	}
	return nil
}
