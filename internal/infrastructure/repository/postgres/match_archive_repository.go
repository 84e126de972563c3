package postgres

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/SpencerPresley/ea-woc-league/internal/domain/match"
	qb "github.com/SpencerPresley/ea-woc-league/internal/platform/querybuilder"
	"github.com/SpencerPresley/ea-woc-league/internal/usecase"
)

type rawMatchModel struct {
	SeasonID   string    `db:"season_id"`
	MatchID    string    `db:"match_id"`
	PlayedAt   time.Time `db:"played_at"`
	HomeClubID string    `db:"home_club_id"`
	AwayClubID string    `db:"away_club_id"`
	Payload    []byte    `db:"payload"`
}

// MatchArchiveRepository keeps the original payload of every folded
// match so a season can be replayed after a validator or parser fix.
type MatchArchiveRepository struct {
	db *sqlx.DB
}

var _ usecase.MatchArchive = (*MatchArchiveRepository)(nil)

func NewMatchArchiveRepository(db *sqlx.DB) *MatchArchiveRepository {
	return &MatchArchiveRepository{db: db}
}

func (r *MatchArchiveRepository) ArchiveMatches(ctx context.Context, seasonID string, matches []match.Match, payloads map[string]match.RawMatch) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin archive tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, m := range matches {
		model, err := newRawMatchModel(seasonID, m, payloads[m.MatchID])
		if err != nil {
			return err
		}
		query, args, err := qb.InsertInto("raw_matches").
			Columns("season_id", "match_id", "played_at", "home_club_id", "away_club_id", "payload").
			Values(model.SeasonID, model.MatchID, model.PlayedAt, model.HomeClubID, model.AwayClubID, model.Payload).
			Suffix(`ON CONFLICT (match_id)
DO UPDATE SET
    season_id = EXCLUDED.season_id,
    played_at = EXCLUDED.played_at,
    home_club_id = EXCLUDED.home_club_id,
    away_club_id = EXCLUDED.away_club_id,
    payload = EXCLUDED.payload,
    ingested_at = NOW()`).
			ToSQL()
		if err != nil {
			return crerr.Wrap(err, "build archive match query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return crerr.Wrapf(err, "archive match match_id=%s", m.MatchID)
		}
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit archive tx")
	}
	return nil
}

// ListPayloads returns the archived payloads of one season, oldest
// first, decoded back into their raw shape.
func (r *MatchArchiveRepository) ListPayloads(ctx context.Context, seasonID string) ([]match.RawMatch, error) {
	query, args, err := qb.Select("season_id", "match_id", "played_at", "home_club_id", "away_club_id", "payload").
		From("raw_matches").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("played_at ASC", "match_id ASC").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list archived payloads query")
	}

	var rows []rawMatchModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrapf(err, "list archived payloads season_id=%s", seasonID)
	}

	out := make([]match.RawMatch, 0, len(rows))
	for _, row := range rows {
		var raw match.RawMatch
		if err := sonic.Unmarshal(row.Payload, &raw); err != nil {
			return nil, crerr.Wrapf(err, "decode archived payload match_id=%s", row.MatchID)
		}
		out = append(out, raw)
	}
	return out, nil
}

func newRawMatchModel(seasonID string, m match.Match, payload match.RawMatch) (rawMatchModel, error) {
	if payload == nil {
		return rawMatchModel{}, crerr.Newf("postgres: no payload for match %s", m.MatchID)
	}
	encoded, err := sonic.Marshal(payload)
	if err != nil {
		return rawMatchModel{}, crerr.Wrapf(err, "encode payload match_id=%s", m.MatchID)
	}

	homeID, _ := m.HomeClubID()
	awayID, _ := m.AwayClubID()
	return rawMatchModel{
		SeasonID:   seasonID,
		MatchID:    m.MatchID,
		PlayedAt:   m.Timestamp,
		HomeClubID: homeID,
		AwayClubID: awayID,
		Payload:    encoded,
	}, nil
}
