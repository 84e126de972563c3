package usecase

import (
	"context"

	crerr "github.com/cockroachdb/errors"

	"github.com/SpencerPresley/ea-woc-league/internal/domain/analytics"
	"github.com/SpencerPresley/ea-woc-league/internal/domain/match"
	"github.com/SpencerPresley/ea-woc-league/internal/domain/season"
	"github.com/SpencerPresley/ea-woc-league/internal/platform/logging"
)

// MatchSource delivers raw match payloads for a club, most recent
// first, exactly as the upstream API shapes them.
type MatchSource interface {
	ClubMatches(ctx context.Context, clubID int64) ([]match.RawMatch, error)
}

// MatchArchive keeps the original payloads of folded matches alongside
// their validated identity, for replay and data-quality inspection.
type MatchArchive interface {
	ArchiveMatches(ctx context.Context, seasonID string, matches []match.Match, payloads map[string]match.RawMatch) error
}

// ReportService runs the full pipeline: fetch raw payloads per club,
// validate, sync the league registry, fold the season and derive
// per-match insights.
type ReportService struct {
	source     MatchSource
	validator  *ValidationService
	aggregator *AggregationService
	registry   *RegistryService
	archive    MatchArchive
	logger     *logging.Logger
}

func NewReportService(
	source MatchSource,
	validator *ValidationService,
	aggregator *AggregationService,
	registry *RegistryService,
	logger *logging.Logger,
) *ReportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReportService{
		source:     source,
		validator:  validator,
		aggregator: aggregator,
		registry:   registry,
		logger:     logger,
	}
}

// WithArchive stores every folded match's original payload through the
// given archive.
func (s *ReportService) WithArchive(archive MatchArchive) *ReportService {
	s.archive = archive
	return s
}

type ReportInput struct {
	SeasonID string
	ClubIDs  []int64
	// SkipInvalid folds only the payloads that validate instead of
	// rejecting the whole batch.
	SkipInvalid bool
}

// MatchInsights carries the derived analytics for one match.
type MatchInsights struct {
	MatchID      string                        `json:"match_id"`
	Possession   analytics.PossessionMetrics   `json:"possession"`
	Efficiency   analytics.EfficiencyMetrics   `json:"efficiency"`
	SpecialTeams analytics.SpecialTeamsMetrics `json:"special_teams"`
	Momentum     analytics.MomentumMetrics     `json:"momentum"`
}

type ReportResult struct {
	Summary  season.Summary  `json:"summary"`
	Insights []MatchInsights `json:"insights"`
	Skipped  []InvalidMatch  `json:"skipped,omitempty"`

	MatchesFetched int `json:"matches_fetched"`
	MatchesFolded  int `json:"matches_folded"`
}

func (s *ReportService) Run(ctx context.Context, input ReportInput) (ReportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.Run")
	defer span.End()

	if input.SeasonID == "" {
		return ReportResult{}, crerr.Wrap(ErrInvalidInput, "season id is required")
	}
	if len(input.ClubIDs) == 0 {
		return ReportResult{}, crerr.Wrap(ErrInvalidInput, "at least one club id is required")
	}
	if s.source == nil || s.validator == nil || s.aggregator == nil {
		return ReportResult{}, crerr.Wrap(ErrDependencyUnavailable, "report pipeline is not fully configured")
	}

	raws, err := s.fetch(ctx, input.ClubIDs)
	if err != nil {
		return ReportResult{}, err
	}

	result := ReportResult{MatchesFetched: len(raws)}

	var matches []match.Match
	if input.SkipInvalid {
		matches, result.Skipped, err = s.validator.ValidateBatch(ctx, raws)
	} else {
		matches, err = s.validator.ValidateAll(ctx, raws)
	}
	if err != nil {
		return ReportResult{}, err
	}

	matches = dedupeMatches(matches)
	result.MatchesFolded = len(matches)

	if s.registry != nil {
		if _, err := s.registry.SyncFromMatches(ctx, matches); err != nil {
			return ReportResult{}, err
		}
	}

	if s.archive != nil {
		payloads := make(map[string]match.RawMatch, len(matches))
		for _, raw := range raws {
			if id := rawMatchID(raw); id != "" {
				payloads[id] = raw
			}
		}
		if err := s.archive.ArchiveMatches(ctx, input.SeasonID, matches, payloads); err != nil {
			return ReportResult{}, crerr.Wrap(err, "archive matches")
		}
	}

	result.Summary, err = s.aggregator.BuildSeason(ctx, input.SeasonID, matches)
	if err != nil {
		return ReportResult{}, err
	}

	result.Insights = make([]MatchInsights, 0, len(matches))
	for _, m := range matches {
		insight, ok := matchInsights(m)
		if !ok {
			return ReportResult{}, crerr.AssertionFailedf(
				"match %s: sides unresolvable after validation", m.MatchID)
		}
		result.Insights = append(result.Insights, insight)
	}

	s.logger.InfoContext(ctx, "season report complete",
		"season_id", input.SeasonID,
		"fetched", result.MatchesFetched,
		"folded", result.MatchesFolded,
		"skipped", len(result.Skipped),
	)

	return result, nil
}

func (s *ReportService) fetch(ctx context.Context, clubIDs []int64) ([]match.RawMatch, error) {
	out := make([]match.RawMatch, 0, len(clubIDs)*8)
	for _, clubID := range clubIDs {
		raws, err := s.source.ClubMatches(ctx, clubID)
		if err != nil {
			return nil, crerr.Wrapf(err, "fetch matches for club %d", clubID)
		}
		out = append(out, raws...)
	}
	return out, nil
}

func matchInsights(m match.Match) (MatchInsights, bool) {
	possession, ok := analytics.Possession(m)
	if !ok {
		return MatchInsights{}, false
	}
	efficiency, ok := analytics.Efficiency(m)
	if !ok {
		return MatchInsights{}, false
	}
	specialTeams, ok := analytics.SpecialTeams(m)
	if !ok {
		return MatchInsights{}, false
	}
	momentum, ok := analytics.Momentum(m)
	if !ok {
		return MatchInsights{}, false
	}

	return MatchInsights{
		MatchID:      m.MatchID,
		Possession:   possession,
		Efficiency:   efficiency,
		SpecialTeams: specialTeams,
		Momentum:     momentum,
	}, true
}

// dedupeMatches drops repeats of the same match id. Fetching both
// participating clubs yields each shared match twice; folding it twice
// would double every counter.
func dedupeMatches(matches []match.Match) []match.Match {
	seen := make(map[string]struct{}, len(matches))
	out := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if _, dup := seen[m.MatchID]; dup {
			continue
		}
		seen[m.MatchID] = struct{}{}
		out = append(out, m)
	}
	return out
}
