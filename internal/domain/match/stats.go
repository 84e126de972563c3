package match

import "math"

// pct computes a percentage from base counters. A zero denominator
// yields 0 rather than NaN; missing denominators are common (a goalie
// who faced no shots, a skater with no faceoffs) and must not break
// downstream consumers.
func pct(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator) * 100
}

func ratio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}

// Round1 rounds to one decimal place, the precision used by the season
// report consumers.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SkaterStats are the headline skater counters.
type SkaterStats struct {
	Goals          int
	Assists        int
	Points         int
	PlusMinus      int
	PenaltyMinutes int
	GameWinning    int
}

// ShootingStats carries shot counters and their derived rates. RawShotPct
// and RawShotOnNetPct hold whatever the payload claimed and are retained
// for data-quality inspection only; ShootingPct and ShotOnNetPct are
// always recomputed from the counters.
type ShootingStats struct {
	Attempts        int
	OnGoal          int
	Missed          int
	ShootingPct     float64
	ShotOnNetPct    float64
	RawShotPct      float64
	RawShotOnNetPct float64
}

func (s *ShootingStats) derive(goals int) {
	s.Missed = s.Attempts - s.OnGoal
	if s.Missed < 0 {
		s.Missed = 0
	}
	s.ShootingPct = pct(goals, s.OnGoal)
	s.ShotOnNetPct = pct(s.OnGoal, s.Attempts)
}

type PassingStats struct {
	Attempts     int
	Completed    int
	Missed       int
	SaucerPasses int
	PassPct      float64
	RawPassPct   float64
}

func (p *PassingStats) derive() {
	p.Missed = p.Attempts - p.Completed
	if p.Missed < 0 {
		p.Missed = 0
	}
	p.PassPct = pct(p.Completed, p.Attempts)
}

type PhysicalStats struct {
	Hits          int
	BlockedShots  int
	Deflections   int
	Interceptions int
}

type PuckControlStats struct {
	Takeaways             int
	Giveaways             int
	PossessionSeconds     int
	TakeawayGiveawayRatio float64
}

func (p *PuckControlStats) derive() {
	p.TakeawayGiveawayRatio = ratio(p.Takeaways, p.Giveaways)
}

type FaceoffStats struct {
	Won    int
	Lost   int
	Total  int
	WinPct float64
	RawPct float64
}

func (f *FaceoffStats) derive() {
	f.Total = f.Won + f.Lost
	f.WinPct = pct(f.Won, f.Total)
}

type SpecialTeamsStats struct {
	PowerplayGoals   int
	ShorthandedGoals int
	PKClearZone      int
}

// PenaltyStats breaks PIM into major (5 min) and minor (2 min) counts
// the same way the source data encodes them.
type PenaltyStats struct {
	Minutes      int
	Drawn        int
	Majors       int
	Minors       int
	Total        int
	Differential int
}

func (p *PenaltyStats) derive() {
	p.Majors = p.Minutes / 5
	p.Minors = (p.Minutes % 5) / 2
	p.Total = p.Majors + p.Minors
	p.Differential = p.Drawn - p.Total
}

// GoalieStats is only present on records whose position is goalie.
type GoalieStats struct {
	ShotsFaced       int
	Saves            int
	GoalsAgainst     int
	GoalsSaved       int
	SavePct          float64
	RawSavePct       float64
	BreakawayShots   int
	BreakawaySaves   int
	BreakawaySavePct float64
	PenaltyShots     int
	PenaltySaves     int
	PenaltySavePct   float64
	DesperationSaves int
	PokeChecks       int
	PKClearZone      int
	ShutoutPeriods   int
	RawGAA           float64
}

func (g *GoalieStats) derive() {
	g.GoalsSaved = g.ShotsFaced - g.GoalsAgainst
	if g.GoalsSaved < 0 {
		g.GoalsSaved = 0
	}
	g.SavePct = pct(g.Saves, g.ShotsFaced)
	g.BreakawaySavePct = pct(g.BreakawaySaves, g.BreakawayShots)
	g.PenaltySavePct = pct(g.PenaltySaves, g.PenaltyShots)
}
