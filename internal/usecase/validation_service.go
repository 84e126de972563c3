package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/SpencerPresley/ea-woc-league/internal/domain/match"
	"github.com/SpencerPresley/ea-woc-league/internal/platform/logging"
)

// InvalidMatch records one payload that failed validation, preserving
// its position in the input batch and the raw match id when one could
// be read.
type InvalidMatch struct {
	Index   int    `json:"index"`
	MatchID string `json:"match_id,omitempty"`
	Reason  string `json:"reason"`

	err error
}

func (im InvalidMatch) Unwrap() error { return im.err }

// ValidationService turns raw payload batches into validated matches.
// Each payload is parsed in isolation; one bad field rejects that whole
// match and never partially admits it.
type ValidationService struct {
	workers int
	logger  *logging.Logger
}

func NewValidationService(workers int, logger *logging.Logger) *ValidationService {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ValidationService{workers: workers, logger: logger}
}

type validationRow struct {
	index   int
	matchID string
	parsed  match.Match
	err     error
}

// ValidateBatch parses every payload in the batch concurrently and
// returns the valid matches in input order plus one entry per rejected
// payload. The whole batch is always examined; callers decide whether
// rejects are fatal.
func (s *ValidationService) ValidateBatch(ctx context.Context, raws []match.RawMatch) ([]match.Match, []InvalidMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ValidationService.ValidateBatch")
	defer span.End()

	if len(raws) == 0 {
		return nil, nil, nil
	}

	workerCount := s.workers
	if workerCount > len(raws) {
		workerCount = len(raws)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	rows := make(chan validationRow, len(raws))
	var rejected atomic.Int32

	var workers sync.WaitGroup
	for i, raw := range raws {
		i, raw := i, raw
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row := validationRow{index: i, matchID: rawMatchID(raw)}
			row.parsed, row.err = match.Parse(raw)
			if row.err != nil {
				rejected.Add(1)
			}
			rows <- row
		}); err != nil {
			workers.Done()
			return nil, nil, fmt.Errorf("submit payload to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	collected := make([]validationRow, 0, len(raws))
	for row := range rows {
		collected = append(collected, row)
	}
	sort.SliceStable(collected, func(i, j int) bool {
		return collected[i].index < collected[j].index
	})

	valid := make([]match.Match, 0, len(collected)-int(rejected.Load()))
	invalid := make([]InvalidMatch, 0, rejected.Load())
	for _, row := range collected {
		if row.err != nil {
			invalid = append(invalid, InvalidMatch{
				Index:   row.index,
				MatchID: row.matchID,
				Reason:  row.err.Error(),
				err:     row.err,
			})
			continue
		}
		valid = append(valid, row.parsed)
	}

	if len(invalid) > 0 {
		s.logger.WarnContext(ctx, "payloads rejected during validation",
			"total", len(raws),
			"rejected", len(invalid),
		)
	}

	return valid, invalid, nil
}

// ValidateAll is the strict entry point: every payload must validate or
// the batch is rejected as a whole and nothing is handed downstream.
func (s *ValidationService) ValidateAll(ctx context.Context, raws []match.RawMatch) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ValidationService.ValidateAll")
	defer span.End()

	valid, invalid, err := s.ValidateBatch(ctx, raws)
	if err != nil {
		return nil, err
	}
	if len(invalid) > 0 {
		first := invalid[0]
		return nil, crerr.Wrapf(ErrValidationFailed,
			"%d of %d payloads rejected, first at index %d (match %q): %s",
			len(invalid), len(raws), first.Index, first.MatchID, first.Reason)
	}

	return valid, nil
}

// rawMatchID best-effort reads the match id off an unvalidated payload
// for diagnostics only.
func rawMatchID(raw match.RawMatch) string {
	for _, key := range []string{"matchId", "match_id"} {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}
