package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SpencerPresley/ea-woc-league/internal/domain/match"
)

func metricsMatch() match.Match {
	home := match.Club{
		ClubID: "101", Side: match.SideHome,
		TimeOnAttack: 540, PowerplayGoals: 1, PowerplayOpportunities: 4,
		ShootingPct: 20, PassingPct: 75,
	}
	away := match.Club{
		ClubID: "303", Side: match.SideAway,
		TimeOnAttack: 360, PowerplayGoals: 2, PowerplayOpportunities: 5,
		ShootingPct: 10, PassingPct: 60,
	}

	homeAgg := match.AggregateStats{Side: match.SideHome}
	homeAgg.PuckControl.PossessionSeconds = 300
	homeAgg.Shooting.OnGoal = 20
	homeAgg.Physical.Hits = 10
	homeAgg.PuckControl.Takeaways = 8
	homeAgg.PuckControl.Giveaways = 3

	awayAgg := match.AggregateStats{Side: match.SideAway}
	awayAgg.PuckControl.PossessionSeconds = 100
	awayAgg.Shooting.OnGoal = 15
	awayAgg.Physical.Hits = 6
	awayAgg.PuckControl.Takeaways = 4
	awayAgg.PuckControl.Giveaways = 7

	return match.Match{
		MatchID: "m-1",
		Clubs:   map[string]match.Club{"101": home, "303": away},
		Aggregates: map[string]match.AggregateStats{
			"101": homeAgg,
			"303": awayAgg,
		},
	}
}

func TestPossession(t *testing.T) {
	t.Parallel()

	p, ok := Possession(metricsMatch())
	require.True(t, ok)

	assert.Equal(t, 200, p.PossessionDifferential)
	assert.InDelta(t, 75.0, p.HomePossessionPct, 1e-9)
	assert.InDelta(t, 25.0, p.AwayPossessionPct, 1e-9)
	assert.Equal(t, 180, p.TimeOnAttackDifferential)
}

func TestPossessionZeroSecondsSplitsEvenly(t *testing.T) {
	t.Parallel()

	m := metricsMatch()
	m.Aggregates = map[string]match.AggregateStats{}

	p, ok := Possession(m)
	require.True(t, ok)
	assert.InDelta(t, 50.0, p.HomePossessionPct, 1e-9)
	assert.InDelta(t, 50.0, p.AwayPossessionPct, 1e-9)
}

func TestEfficiency(t *testing.T) {
	t.Parallel()

	e, ok := Efficiency(metricsMatch())
	require.True(t, ok)

	assert.InDelta(t, 20.0, e.HomeShootingPct, 1e-9)
	assert.InDelta(t, 10.0, e.AwayShootingPct, 1e-9)
	assert.InDelta(t, float64(540)/3600*100, e.HomeAttackTimePct, 1e-9)
	assert.InDelta(t, float64(360)/3600*100, e.AwayAttackTimePct, 1e-9)
}

func TestSpecialTeams(t *testing.T) {
	t.Parallel()

	st, ok := SpecialTeams(metricsMatch())
	require.True(t, ok)

	assert.InDelta(t, 25.0, st.HomePowerplayPct, 1e-9)
	// Away went 2 for 5 on the powerplay, so home killed 60%.
	assert.InDelta(t, 60.0, st.HomePenaltyKillPct, 1e-9)
	assert.InDelta(t, 75.0, st.AwayPenaltyKillPct, 1e-9)
}

func TestSpecialTeamsNoOpportunitiesMeansPerfectKill(t *testing.T) {
	t.Parallel()

	m := metricsMatch()
	home := m.Clubs["101"]
	home.PowerplayOpportunities = 0
	home.PowerplayGoals = 0
	m.Clubs["101"] = home

	st, ok := SpecialTeams(m)
	require.True(t, ok)
	assert.InDelta(t, 100.0, st.AwayPenaltyKillPct, 1e-9)
}

func TestMomentum(t *testing.T) {
	t.Parallel()

	mm, ok := Momentum(metricsMatch())
	require.True(t, ok)

	assert.Equal(t, 5, mm.ShotDifferential)
	assert.Equal(t, 4, mm.HitDifferential)
	assert.Equal(t, 8, mm.TakeawayGiveawayDifferential)
	// 5*1.0 + 4*0.5 + 8*0.7
	assert.InDelta(t, 12.6, mm.HomeScore, 1e-9)
	assert.Zero(t, mm.AwayScore)
}

func TestMomentumNegativeScoreGoesToAway(t *testing.T) {
	t.Parallel()

	m := metricsMatch()
	m.Aggregates["101"], m.Aggregates["303"] = m.Aggregates["303"], m.Aggregates["101"]

	mm, ok := Momentum(m)
	require.True(t, ok)
	assert.Zero(t, mm.HomeScore)
	assert.InDelta(t, 12.6, mm.AwayScore, 1e-9)
}

func TestMetricsRequireResolvableSides(t *testing.T) {
	t.Parallel()

	m := metricsMatch()
	away := m.Clubs["303"]
	away.Side = match.SideHome
	m.Clubs["303"] = away

	_, ok := Possession(m)
	assert.False(t, ok)
	_, ok = Efficiency(m)
	assert.False(t, ok)
	_, ok = SpecialTeams(m)
	assert.False(t, ok)
	_, ok = Momentum(m)
	assert.False(t, ok)
}
