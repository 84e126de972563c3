package usecase

import (
	"context"
	"sort"

	crerr "github.com/cockroachdb/errors"

	"github.com/SpencerPresley/ea-woc-league/internal/domain/match"
	"github.com/SpencerPresley/ea-woc-league/internal/domain/season"
	"github.com/SpencerPresley/ea-woc-league/internal/platform/logging"
)

// AggregationService folds validated matches into season summaries.
// Summation order cannot change the totals, but matches are still
// folded oldest first so any two runs over the same set are
// byte-identical, including name backfills from the latest appearance.
type AggregationService struct {
	seasonRepo season.Repository
	logger     *logging.Logger
}

func NewAggregationService(seasonRepo season.Repository, logger *logging.Logger) *AggregationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AggregationService{seasonRepo: seasonRepo, logger: logger}
}

// BuildSeason rolls the given matches into one summary per club and per
// player keyed by persistent ids. Matches must already be validated;
// a malformed match here is a programming error, not an input error.
func (s *AggregationService) BuildSeason(ctx context.Context, seasonID string, matches []match.Match) (season.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.BuildSeason")
	defer span.End()

	if seasonID == "" {
		return season.Summary{}, crerr.Wrap(ErrInvalidInput, "season id is required")
	}

	ordered := make([]match.Match, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Timestamp.Equal(ordered[j].Timestamp) {
			return ordered[i].Timestamp.Before(ordered[j].Timestamp)
		}
		return ordered[i].MatchID < ordered[j].MatchID
	})

	teams := make(map[string]*season.TeamSummary)
	players := make(map[string]*season.PlayerSummary)

	for _, m := range ordered {
		for clubID, club := range m.Clubs {
			opponentID, ok := m.OpponentID(clubID)
			if !ok {
				return season.Summary{}, crerr.AssertionFailedf(
					"match %s: club %s has no opponent after validation", m.MatchID, clubID)
			}
			opponent := m.Clubs[opponentID]

			agg, ok := m.ClubAggregate(clubID)
			if !ok {
				return season.Summary{}, crerr.AssertionFailedf(
					"match %s: club %s has no aggregate after validation", m.MatchID, clubID)
			}
			oppAgg, ok := m.ClubAggregate(opponentID)
			if !ok {
				return season.Summary{}, crerr.AssertionFailedf(
					"match %s: club %s has no aggregate after validation", m.MatchID, opponentID)
			}

			team, exists := teams[clubID]
			if !exists {
				team = &season.TeamSummary{ClubID: clubID}
				teams[clubID] = team
			}
			team.AddMatch(club, opponent, agg, oppAgg)

			for playerID, line := range m.ClubPlayers(clubID) {
				player, exists := players[playerID]
				if !exists {
					player = season.NewPlayerSummary(playerID)
					players[playerID] = player
				}
				player.AddMatch(clubID, line)
			}
		}
	}

	summary := season.BuildSummary(seasonID, teams, players)

	s.logger.InfoContext(ctx, "season summary built",
		"season_id", seasonID,
		"matches", len(ordered),
		"teams", len(summary.Teams),
		"players", len(summary.Players),
	)

	if s.seasonRepo != nil {
		if err := s.seasonRepo.SaveSummary(ctx, summary); err != nil {
			return season.Summary{}, crerr.Wrapf(err, "save season summary %s", seasonID)
		}
	}

	return summary, nil
}
