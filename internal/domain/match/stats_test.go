package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPctZeroDenominator(t *testing.T) {
	t.Parallel()

	assert.Zero(t, pct(5, 0))
	assert.InDelta(t, 50.0, pct(1, 2), 1e-9)
	assert.Zero(t, ratio(3, 0))
	assert.InDelta(t, 1.5, ratio(3, 2), 1e-9)
}

func TestRounding(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 45.5, Round1(45.4545), 1e-9)
	assert.InDelta(t, 45.45, Round2(45.4545), 1e-9)
	assert.InDelta(t, -1.3, Round1(-1.25), 1e-9)
}

func TestShootingDeriveClampsMissed(t *testing.T) {
	t.Parallel()

	s := ShootingStats{Attempts: 5, OnGoal: 8}
	s.derive(2)
	assert.Zero(t, s.Missed)
	assert.InDelta(t, 25.0, s.ShootingPct, 1e-9)
	assert.InDelta(t, 160.0, s.ShotOnNetPct, 1e-9)
}

func TestPenaltyBreakdown(t *testing.T) {
	t.Parallel()

	cases := []struct {
		minutes               int
		majors, minors, total int
	}{
		{0, 0, 0, 0},
		{2, 0, 1, 1},
		{4, 0, 2, 2},
		{5, 1, 0, 1},
		{7, 1, 1, 2},
		{12, 2, 1, 3},
	}
	for _, tc := range cases {
		p := PenaltyStats{Minutes: tc.minutes, Drawn: 1}
		p.derive()
		assert.Equal(t, tc.majors, p.Majors, "minutes=%d", tc.minutes)
		assert.Equal(t, tc.minors, p.Minors, "minutes=%d", tc.minutes)
		assert.Equal(t, tc.total, p.Total, "minutes=%d", tc.minutes)
		assert.Equal(t, 1-tc.total, p.Differential, "minutes=%d", tc.minutes)
	}
}

func TestGoalieDerive(t *testing.T) {
	t.Parallel()

	g := GoalieStats{ShotsFaced: 30, Saves: 27, GoalsAgainst: 3, BreakawayShots: 2, BreakawaySaves: 1}
	g.derive()
	assert.Equal(t, 27, g.GoalsSaved)
	assert.InDelta(t, 90.0, g.SavePct, 1e-9)
	assert.InDelta(t, 50.0, g.BreakawaySavePct, 1e-9)
	assert.Zero(t, g.PenaltySavePct)
}

func TestPointsPer60(t *testing.T) {
	t.Parallel()

	p := PlayerStats{TOIMinutes: 40}
	p.Skater.Points = 2
	assert.InDelta(t, 3.0, p.PointsPer60(), 1e-9)

	idle := PlayerStats{}
	assert.Zero(t, idle.PointsPer60())
}
