package season

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SpencerPresley/ea-woc-league/internal/domain/match"
)

func sideClub(name string, goals, against, shots, ppg, ppo int) match.Club {
	return match.Club{
		ClubID:                 "101",
		Goals:                  goals,
		GoalsAgainst:           against,
		Score:                  goals,
		OpponentScore:          against,
		Shots:                  shots,
		TimeOnAttack:           480,
		PassesAttempted:        120,
		PassesCompleted:        90,
		PowerplayGoals:         ppg,
		PowerplayOpportunities: ppo,
		Details:                match.ClubDetails{Name: name},
	}
}

func TestTeamSummaryWinLossPoints(t *testing.T) {
	t.Parallel()

	var s TeamSummary
	win := sideClub("Ice Hawks", 4, 2, 20, 1, 3)
	loss := sideClub("Polar Bears", 2, 4, 18, 0, 2)

	s.AddMatch(win, loss, match.AggregateStats{}, match.AggregateStats{})
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 2, s.Points)

	s.AddMatch(loss, win, match.AggregateStats{}, match.AggregateStats{})
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 2, s.Points)
	assert.Equal(t, 2, s.MatchesPlayed)
	assert.Equal(t, 6, s.GoalsFor)
	assert.Equal(t, 6, s.GoalsAgainst)
}

func TestTeamSummaryFinalizeRates(t *testing.T) {
	t.Parallel()

	var s TeamSummary
	win := sideClub("Ice Hawks", 4, 2, 20, 1, 4)
	loss := sideClub("Polar Bears", 2, 4, 18, 2, 5)

	s.AddMatch(win, loss, match.AggregateStats{}, match.AggregateStats{})
	s.Finalize()

	assert.Equal(t, 2, s.GoalDifferential)
	assert.InDelta(t, 100.0, s.WinPct, 1e-9)
	assert.InDelta(t, 4.0, s.GoalsPerGame, 1e-9)
	assert.InDelta(t, float64(4)/20*100, s.ShootingPct, 1e-9)
	assert.InDelta(t, 25.0, s.PowerplayPct, 1e-9)
	// Opponent scored 2 powerplay goals on 5 opportunities.
	assert.InDelta(t, 60.0, s.PenaltyKillPct, 1e-9)
}

func TestTeamSummaryPenaltyKillFallsBackTo100(t *testing.T) {
	t.Parallel()

	var s TeamSummary
	win := sideClub("Ice Hawks", 3, 1, 15, 0, 0)
	loss := sideClub("Polar Bears", 1, 3, 10, 0, 0)

	s.AddMatch(win, loss, match.AggregateStats{}, match.AggregateStats{})
	s.Finalize()

	assert.InDelta(t, 100.0, s.PenaltyKillPct, 1e-9)
	assert.InDelta(t, 50.0, s.PossessionPct, 1e-9)
}

func TestTeamSummaryPossessionAndDifferentials(t *testing.T) {
	t.Parallel()

	agg := match.AggregateStats{}
	agg.PuckControl.PossessionSeconds = 300
	agg.Physical.Hits = 10
	agg.PuckControl.Takeaways = 8
	agg.PuckControl.Giveaways = 3

	oppAgg := match.AggregateStats{}
	oppAgg.PuckControl.PossessionSeconds = 100
	oppAgg.Physical.Hits = 4
	oppAgg.PuckControl.Takeaways = 2
	oppAgg.PuckControl.Giveaways = 6

	var s TeamSummary
	s.AddMatch(sideClub("Ice Hawks", 4, 2, 20, 0, 0), sideClub("Polar Bears", 2, 4, 15, 0, 0), agg, oppAgg)
	s.Finalize()

	assert.Equal(t, 5, s.ShotDifferential)
	assert.Equal(t, 6, s.HitDifferential)
	assert.Equal(t, 9, s.TakeawayGiveawayDifferential)
	assert.Equal(t, 200, s.PossessionDifferential)
	assert.InDelta(t, 75.0, s.PossessionPct, 1e-9)
}

func TestTeamSummaryTracksLatestName(t *testing.T) {
	t.Parallel()

	var s TeamSummary
	first := sideClub("Old Name", 1, 0, 5, 0, 0)
	second := sideClub("New Name", 1, 0, 5, 0, 0)
	opp := sideClub("Opp", 0, 1, 5, 0, 0)

	s.AddMatch(first, opp, match.AggregateStats{}, match.AggregateStats{})
	s.AddMatch(second, opp, match.AggregateStats{}, match.AggregateStats{})

	assert.Equal(t, "New Name", s.Name)
}
