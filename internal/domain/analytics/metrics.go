// Package analytics derives per-match metrics from a single validated
// match: possession splits, efficiency rates, special teams and
// momentum. Zero denominators normalize instead of erroring so report
// consumers never see NaN.
package analytics

import "github.com/SpencerPresley/ea-woc-league/internal/domain/match"

// PossessionMetrics compares puck possession between the two sides.
// Differentials are in seconds; positive values favor the home side.
type PossessionMetrics struct {
	PossessionDifferential   int
	HomePossessionPct        float64
	AwayPossessionPct        float64
	TimeOnAttackDifferential int
}

type EfficiencyMetrics struct {
	HomeShootingPct   float64
	AwayShootingPct   float64
	HomePassingPct    float64
	AwayPassingPct    float64
	HomeAttackTimePct float64
	AwayAttackTimePct float64
}

type SpecialTeamsMetrics struct {
	HomePowerplayPct   float64
	AwayPowerplayPct   float64
	HomePenaltyKillPct float64
	AwayPenaltyKillPct float64
}

// MomentumMetrics weighs shots, hits and puck battles into a single
// control score per side.
type MomentumMetrics struct {
	HomeScore                    float64
	AwayScore                    float64
	ShotDifferential             int
	HitDifferential              int
	TakeawayGiveawayDifferential int
}

const (
	shotWeight     = 1.0
	hitWeight      = 0.5
	takeawayWeight = 0.7

	regulationSeconds = 3600
)

func sides(m match.Match) (home, away match.Club, homeAgg, awayAgg match.AggregateStats, ok bool) {
	homeID, hasHome := m.HomeClubID()
	awayID, hasAway := m.AwayClubID()
	if !hasHome || !hasAway {
		return match.Club{}, match.Club{}, match.AggregateStats{}, match.AggregateStats{}, false
	}
	return m.Clubs[homeID], m.Clubs[awayID], m.Aggregates[homeID], m.Aggregates[awayID], true
}

func Possession(m match.Match) (PossessionMetrics, bool) {
	home, away, homeAgg, awayAgg, ok := sides(m)
	if !ok {
		return PossessionMetrics{}, false
	}

	homeSec := homeAgg.PuckControl.PossessionSeconds
	awaySec := awayAgg.PuckControl.PossessionSeconds
	total := homeSec + awaySec

	out := PossessionMetrics{
		PossessionDifferential:   homeSec - awaySec,
		HomePossessionPct:        50,
		AwayPossessionPct:        50,
		TimeOnAttackDifferential: home.TimeOnAttack - away.TimeOnAttack,
	}
	if total > 0 {
		out.HomePossessionPct = float64(homeSec) / float64(total) * 100
		out.AwayPossessionPct = float64(awaySec) / float64(total) * 100
	}
	return out, true
}

func Efficiency(m match.Match) (EfficiencyMetrics, bool) {
	home, away, _, _, ok := sides(m)
	if !ok {
		return EfficiencyMetrics{}, false
	}
	return EfficiencyMetrics{
		HomeShootingPct:   home.ShootingPct,
		AwayShootingPct:   away.ShootingPct,
		HomePassingPct:    home.PassingPct,
		AwayPassingPct:    away.PassingPct,
		HomeAttackTimePct: float64(home.TimeOnAttack) / regulationSeconds * 100,
		AwayAttackTimePct: float64(away.TimeOnAttack) / regulationSeconds * 100,
	}, true
}

func SpecialTeams(m match.Match) (SpecialTeamsMetrics, bool) {
	home, away, _, _, ok := sides(m)
	if !ok {
		return SpecialTeamsMetrics{}, false
	}

	out := SpecialTeamsMetrics{
		HomePowerplayPct:   home.PowerplayPct,
		AwayPowerplayPct:   away.PowerplayPct,
		HomePenaltyKillPct: 100,
		AwayPenaltyKillPct: 100,
	}
	if away.PowerplayOpportunities > 0 {
		out.HomePenaltyKillPct = (1 - float64(away.PowerplayGoals)/float64(away.PowerplayOpportunities)) * 100
	}
	if home.PowerplayOpportunities > 0 {
		out.AwayPenaltyKillPct = (1 - float64(home.PowerplayGoals)/float64(home.PowerplayOpportunities)) * 100
	}
	return out, true
}

func Momentum(m match.Match) (MomentumMetrics, bool) {
	_, _, homeAgg, awayAgg, ok := sides(m)
	if !ok {
		return MomentumMetrics{}, false
	}

	shotDiff := homeAgg.Shooting.OnGoal - awayAgg.Shooting.OnGoal
	hitDiff := homeAgg.Physical.Hits - awayAgg.Physical.Hits
	battleDiff := (homeAgg.PuckControl.Takeaways - homeAgg.PuckControl.Giveaways) -
		(awayAgg.PuckControl.Takeaways - awayAgg.PuckControl.Giveaways)

	score := float64(shotDiff)*shotWeight + float64(hitDiff)*hitWeight + float64(battleDiff)*takeawayWeight

	out := MomentumMetrics{
		ShotDifferential:             shotDiff,
		HitDifferential:              hitDiff,
		TakeawayGiveawayDifferential: battleDiff,
	}
	if score > 0 {
		out.HomeScore = score
	} else {
		out.AwayScore = -score
	}
	return out, true
}
