package usecase

import (
	"context"
	"testing"

	"github.com/SpencerPresley/ea-woc-league/internal/domain/league"
)

type leagueRepoStub struct {
	teams   map[string]*league.Team
	players map[string]league.Player
}

func newLeagueRepoStub() *leagueRepoStub {
	return &leagueRepoStub{
		teams:   make(map[string]*league.Team),
		players: make(map[string]league.Player),
	}
}

func (s *leagueRepoStub) ListTeams(context.Context) ([]*league.Team, error) {
	out := make([]*league.Team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, t)
	}
	return out, nil
}

func (s *leagueRepoStub) GetTeamByEAClubID(_ context.Context, eaClubID string) (*league.Team, bool, error) {
	t, ok := s.teams[eaClubID]
	return t, ok, nil
}

func (s *leagueRepoStub) UpsertTeam(_ context.Context, team *league.Team) error {
	s.teams[team.EAClubID] = team
	return nil
}

func (s *leagueRepoStub) ListPlayers(context.Context) ([]league.Player, error) {
	out := make([]league.Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	return out, nil
}

func (s *leagueRepoStub) GetPlayerByEAID(_ context.Context, eaID string) (league.Player, bool, error) {
	p, ok := s.players[eaID]
	return p, ok, nil
}

func (s *leagueRepoStub) UpsertPlayer(_ context.Context, player league.Player) error {
	s.players[player.EAID] = player
	return nil
}

func TestRegistryService_CreatesTeamsAndPlayers(t *testing.T) {
	t.Parallel()

	repo := newLeagueRepoStub()
	svc := NewRegistryService(repo, nil)

	matches := parseFixtures(t, rawFixture("m-1", 100, "101", "202", 2, 1))

	result, err := svc.SyncFromMatches(context.Background(), matches)
	if err != nil {
		t.Fatalf("SyncFromMatches failed: %v", err)
	}
	if result.TeamsCreated != 2 {
		t.Fatalf("expected 2 teams created, got %d", result.TeamsCreated)
	}
	if result.PlayersCreated != 4 {
		t.Fatalf("expected 4 players created, got %d", result.PlayersCreated)
	}

	team, ok := repo.teams["101"]
	if !ok {
		t.Fatal("expected team for ea club 101")
	}
	if team.EAClubName != "Home HC" {
		t.Fatalf("unexpected team name: %q", team.EAClubName)
	}
	if team.PlayerIDs.Cardinality() != 2 {
		t.Fatalf("expected 2 rostered players, got %d", team.PlayerIDs.Cardinality())
	}

	player, ok := repo.players["p-101-1"]
	if !ok {
		t.Fatal("expected player bound to ea id p-101-1")
	}
	if player.TeamID != team.ID {
		t.Fatalf("player not assigned to team: %q", player.TeamID)
	}
}

func TestRegistryService_SecondSyncUpdatesInPlace(t *testing.T) {
	t.Parallel()

	repo := newLeagueRepoStub()
	svc := NewRegistryService(repo, nil)

	matches := parseFixtures(t, rawFixture("m-1", 100, "101", "202", 2, 1))
	if _, err := svc.SyncFromMatches(context.Background(), matches); err != nil {
		t.Fatalf("first sync failed: %v", err)
	}

	result, err := svc.SyncFromMatches(context.Background(), matches)
	if err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if result.TeamsCreated != 0 || result.PlayersCreated != 0 {
		t.Fatalf("second sync must not create: %+v", result)
	}
	if len(repo.teams) != 2 || len(repo.players) != 4 {
		t.Fatalf("registry grew on resync: teams=%d players=%d", len(repo.teams), len(repo.players))
	}
}

func TestRegistryService_RequiresRepository(t *testing.T) {
	t.Parallel()

	svc := NewRegistryService(nil, nil)
	if _, err := svc.SyncFromMatches(context.Background(), nil); err == nil {
		t.Fatal("expected error without a repository")
	}
}
