// Package app assembles the report pipeline from configuration:
// telemetry, persistence, the EA client and the use case services.
package app

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/SpencerPresley/ea-woc-league/external/eaapi"
	"github.com/SpencerPresley/ea-woc-league/internal/config"
	"github.com/SpencerPresley/ea-woc-league/internal/domain/league"
	"github.com/SpencerPresley/ea-woc-league/internal/domain/season"
	"github.com/SpencerPresley/ea-woc-league/internal/infrastructure/repository/memory"
	"github.com/SpencerPresley/ea-woc-league/internal/infrastructure/repository/postgres"
	"github.com/SpencerPresley/ea-woc-league/internal/observability"
	"github.com/SpencerPresley/ea-woc-league/internal/platform/cache"
	"github.com/SpencerPresley/ea-woc-league/internal/platform/logging"
	"github.com/SpencerPresley/ea-woc-league/internal/platform/resilience"
	"github.com/SpencerPresley/ea-woc-league/internal/usecase"
)

type App struct {
	cfg    config.Config
	logger *logging.Logger

	Report *usecase.ReportService

	db        *sqlx.DB
	shutdowns []func(context.Context) error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	a := &App{cfg: cfg, logger: logger}

	uptraceShutdown, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, crerr.Wrap(err, "init uptrace")
	}
	a.shutdowns = append(a.shutdowns, uptraceShutdown)

	pyroscopeStop, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return nil, crerr.Wrap(err, "init pyroscope")
	}
	a.shutdowns = append(a.shutdowns, func(context.Context) error { return pyroscopeStop() })

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	source, err := eaapi.NewClient(eaapi.ClientConfig{
		BaseURL:    cfg.EABaseURL,
		UserAgent:  cfg.EAUserAgent,
		Platform:   cfg.Platform,
		MatchType:  cfg.MatchType,
		Timeout:    cfg.EATimeout,
		MaxRetries: cfg.EAMaxRetries,
		Logger:     logger,
		Cache:      store,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.EACircuitEnabled,
			FailureThreshold: cfg.EACircuitFailureCount,
			OpenTimeout:      cfg.EACircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.EACircuitHalfOpenMax,
		},
	})
	if err != nil {
		return nil, crerr.Wrap(err, "build ea client")
	}

	var seasonRepo season.Repository
	var leagueRepo league.Repository
	if cfg.DBEnabled {
		db, err := otelsqlx.Open("postgres", cfg.DBURL,
			otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
			otelsql.WithDBName("ea_woc_league"),
		)
		if err != nil {
			return nil, crerr.Wrap(err, "open database")
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, crerr.Wrap(err, "ping database")
		}
		a.db = db
		seasonRepo = postgres.NewSeasonRepository(db)
		leagueRepo = postgres.NewLeagueRepository(db)
	} else {
		seasonRepo = memory.NewSeasonRepository()
		leagueRepo = memory.NewLeagueRepository()
	}

	validator := usecase.NewValidationService(cfg.ValidationWorkers, logger)
	aggregator := usecase.NewAggregationService(seasonRepo, logger)
	registry := usecase.NewRegistryService(leagueRepo, logger)
	a.Report = usecase.NewReportService(source, validator, aggregator, registry, logger)
	if a.db != nil {
		a.Report.WithArchive(postgres.NewMatchArchiveRepository(a.db))
	}

	return a, nil
}

// Run executes one full report for the configured season and clubs.
func (a *App) Run(ctx context.Context, skipInvalid bool) (usecase.ReportResult, error) {
	return a.Report.Run(ctx, usecase.ReportInput{
		SeasonID:    a.cfg.SeasonID,
		ClubIDs:     a.cfg.ClubIDs,
		SkipInvalid: skipInvalid,
	})
}

func (a *App) Close(ctx context.Context) error {
	var firstErr error
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		if err := a.shutdowns[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
