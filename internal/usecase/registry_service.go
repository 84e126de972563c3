package usecase

import (
	"context"
	"strconv"

	crerr "github.com/cockroachdb/errors"

	"github.com/SpencerPresley/ea-woc-league/internal/domain/league"
	"github.com/SpencerPresley/ea-woc-league/internal/domain/match"
	"github.com/SpencerPresley/ea-woc-league/internal/platform/logging"
)

// RegistryService keeps the persistent league registry in step with the
// identities observed in validated matches: clubs become league teams
// and match participants become league players bound by EA id.
type RegistryService struct {
	repo   league.Repository
	logger *logging.Logger
}

func NewRegistryService(repo league.Repository, logger *logging.Logger) *RegistryService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RegistryService{repo: repo, logger: logger}
}

type RegistrySyncResult struct {
	TeamsCreated   int `json:"teams_created"`
	TeamsUpdated   int `json:"teams_updated"`
	PlayersCreated int `json:"players_created"`
	PlayersUpdated int `json:"players_updated"`
}

// SyncFromMatches upserts every club and player seen in the given
// matches. Known identities get their display names refreshed; rosters
// grow but never shrink here, releases go through the registry
// directly.
func (s *RegistryService) SyncFromMatches(ctx context.Context, matches []match.Match) (RegistrySyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistryService.SyncFromMatches")
	defer span.End()

	var result RegistrySyncResult
	if s.repo == nil {
		return result, crerr.Wrap(ErrDependencyUnavailable, "league registry is not configured")
	}

	for _, m := range matches {
		for clubID, club := range m.Clubs {
			team, found, err := s.repo.GetTeamByEAClubID(ctx, clubID)
			if err != nil {
				return result, crerr.Wrapf(err, "load team by ea club id %s", clubID)
			}
			if !found {
				team = league.NewTeam("team-"+clubID, club.Name(), clubID)
				result.TeamsCreated++
			} else {
				result.TeamsUpdated++
			}
			if club.Name() != "" {
				team.EAClubName = club.Name()
				if team.Name == "" {
					team.Name = club.Name()
				}
			}

			for playerID, line := range m.ClubPlayers(clubID) {
				player, err := s.syncPlayer(ctx, playerID, line, team.ID, &result)
				if err != nil {
					return result, err
				}
				team.AddPlayer(player.ID)
			}

			if err := s.repo.UpsertTeam(ctx, team); err != nil {
				return result, crerr.Wrapf(err, "upsert team %s", team.ID)
			}
		}
	}

	s.logger.InfoContext(ctx, "league registry synced",
		"teams_created", result.TeamsCreated,
		"players_created", result.PlayersCreated,
	)

	return result, nil
}

func (s *RegistryService) syncPlayer(ctx context.Context, eaID string, line match.PlayerStats, teamID string, result *RegistrySyncResult) (league.Player, error) {
	player, found, err := s.repo.GetPlayerByEAID(ctx, eaID)
	if err != nil {
		return league.Player{}, crerr.Wrapf(err, "load player by ea id %s", eaID)
	}
	if !found {
		player = league.Player{
			ID:   "player-" + eaID,
			EAID: eaID,
		}
		result.PlayersCreated++
	} else {
		result.PlayersUpdated++
	}

	if line.Name != "" {
		player.EAName = line.Name
		if player.Name == "" {
			player.Name = line.Name
		}
	}
	if player.Position == "" {
		player.Position = line.Position
	}
	player.TeamID = teamID

	if err := player.Validate(); err != nil {
		return league.Player{}, crerr.Wrapf(err, "validate player ea_id=%s", eaID)
	}
	if err := s.repo.UpsertPlayer(ctx, player); err != nil {
		return league.Player{}, crerr.Wrapf(err, "upsert player %s", player.ID)
	}

	return player, nil
}

// FindTeamByClub resolves a league team from a raw EA club id, used by
// report consumers that key on EA ids.
func (s *RegistryService) FindTeamByClub(ctx context.Context, eaClubID int64) (*league.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistryService.FindTeamByClub")
	defer span.End()

	if s.repo == nil {
		return nil, crerr.Wrap(ErrDependencyUnavailable, "league registry is not configured")
	}

	team, found, err := s.repo.GetTeamByEAClubID(ctx, strconv.FormatInt(eaClubID, 10))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, crerr.Wrapf(ErrNotFound, "team for ea club id %d", eaClubID)
	}
	return team, nil
}
