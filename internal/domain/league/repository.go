package league

import "context"

// Repository describes league registry persistence needs from use
// cases.
type Repository interface {
	ListTeams(ctx context.Context) ([]*Team, error)
	GetTeamByEAClubID(ctx context.Context, eaClubID string) (*Team, bool, error)
	UpsertTeam(ctx context.Context, team *Team) error

	ListPlayers(ctx context.Context) ([]Player, error)
	GetPlayerByEAID(ctx context.Context, eaID string) (Player, bool, error)
	UpsertPlayer(ctx context.Context, player Player) error
}
