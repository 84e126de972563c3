package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/SpencerPresley/ea-woc-league/internal/domain/season"
	qb "github.com/SpencerPresley/ea-woc-league/internal/platform/querybuilder"
)

// SeasonRepository persists finished summaries. A save replaces the
// whole season in one transaction so readers never observe a partially
// written run.
type SeasonRepository struct {
	db *sqlx.DB
}

var _ season.Repository = (*SeasonRepository)(nil)

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) SaveSummary(ctx context.Context, summary season.Summary) error {
	if summary.SeasonID == "" {
		return crerr.New("postgres: season id is required")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin save summary tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"team_summaries", "player_summaries"} {
		query, args, err := qb.DeleteFrom(table).
			Where(qb.Eq("season_id", summary.SeasonID)).
			ToSQL()
		if err != nil {
			return crerr.Wrapf(err, "build clear %s query", table)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return crerr.Wrapf(err, "clear %s season_id=%s", table, summary.SeasonID)
		}
	}

	for rank, team := range summary.Teams {
		model, err := newTeamSummaryModel(summary.SeasonID, rank+1, team)
		if err != nil {
			return err
		}
		query, args, err := qb.InsertInto("team_summaries").
			Columns("season_id", "club_id", "rank", "name", "matches_played", "points", "stats").
			Values(model.SeasonID, model.ClubID, model.Rank, model.Name, model.MatchesPlayed, model.Points, model.Stats).
			ToSQL()
		if err != nil {
			return crerr.Wrap(err, "build insert team summary query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return crerr.Wrapf(err, "insert team summary club_id=%s", model.ClubID)
		}
	}

	for rank, player := range summary.Players {
		model, err := newPlayerSummaryModel(summary.SeasonID, rank+1, player)
		if err != nil {
			return err
		}
		query, args, err := qb.InsertInto("player_summaries").
			Columns("season_id", "player_id", "rank", "name", "matches_played", "points", "stats").
			Values(model.SeasonID, model.PlayerID, model.Rank, model.Name, model.MatchesPlayed, model.Points, model.Stats).
			ToSQL()
		if err != nil {
			return crerr.Wrap(err, "build insert player summary query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return crerr.Wrapf(err, "insert player summary player_id=%s", model.PlayerID)
		}
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit save summary tx")
	}
	return nil
}

func (r *SeasonRepository) GetTeamSummary(ctx context.Context, seasonID, clubID string) (*season.TeamSummary, bool, error) {
	query, args, err := qb.Select("season_id", "club_id", "rank", "name", "matches_played", "points", "stats").
		From("team_summaries").
		Where(qb.Eq("season_id", seasonID), qb.Eq("club_id", clubID)).
		ToSQL()
	if err != nil {
		return nil, false, crerr.Wrap(err, "build get team summary query")
	}

	var row teamSummaryModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, crerr.Wrapf(err, "get team summary club_id=%s", clubID)
	}

	team, err := row.toDomain()
	if err != nil {
		return nil, false, err
	}
	return team, true, nil
}

func (r *SeasonRepository) GetPlayerSummary(ctx context.Context, seasonID, playerID string) (*season.PlayerSummary, bool, error) {
	query, args, err := qb.Select("season_id", "player_id", "rank", "name", "matches_played", "points", "stats").
		From("player_summaries").
		Where(qb.Eq("season_id", seasonID), qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return nil, false, crerr.Wrap(err, "build get player summary query")
	}

	var row playerSummaryModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, crerr.Wrapf(err, "get player summary player_id=%s", playerID)
	}

	player, err := row.toDomain()
	if err != nil {
		return nil, false, err
	}
	return player, true, nil
}

func (r *SeasonRepository) ListTeamSummaries(ctx context.Context, seasonID string) ([]*season.TeamSummary, error) {
	query, args, err := qb.Select("season_id", "club_id", "rank", "name", "matches_played", "points", "stats").
		From("team_summaries").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("rank ASC").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list team summaries query")
	}

	var rows []teamSummaryModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrapf(err, "list team summaries season_id=%s", seasonID)
	}

	out := make([]*season.TeamSummary, 0, len(rows))
	for _, row := range rows {
		team, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, team)
	}
	return out, nil
}

func (r *SeasonRepository) ListPlayerSummaries(ctx context.Context, seasonID string) ([]*season.PlayerSummary, error) {
	query, args, err := qb.Select("season_id", "player_id", "rank", "name", "matches_played", "points", "stats").
		From("player_summaries").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("rank ASC").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list player summaries query")
	}

	var rows []playerSummaryModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrapf(err, "list player summaries season_id=%s", seasonID)
	}

	out := make([]*season.PlayerSummary, 0, len(rows))
	for _, row := range rows {
		player, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, player)
	}
	return out, nil
}
