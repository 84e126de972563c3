package season

import "context"

// Repository stores finished season summaries for the reporting
// collaborators. The aggregation engine itself never reads them back;
// summaries are write-once per run.
type Repository interface {
	SaveSummary(ctx context.Context, summary Summary) error
	GetTeamSummary(ctx context.Context, seasonID, clubID string) (*TeamSummary, bool, error)
	GetPlayerSummary(ctx context.Context, seasonID, playerID string) (*PlayerSummary, bool, error)
	ListTeamSummaries(ctx context.Context, seasonID string) ([]*TeamSummary, error)
	ListPlayerSummaries(ctx context.Context, seasonID string) ([]*PlayerSummary, error)
}
