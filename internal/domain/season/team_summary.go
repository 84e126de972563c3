package season

import "github.com/SpencerPresley/ea-woc-league/internal/domain/match"

// TeamSummary accumulates one club's counters across every match it
// played in a season. It is a mutable accumulator exclusively owned by
// a single fold; rate fields are populated by Finalize only after all
// matches are folded in, never by averaging per-match percentages.
type TeamSummary struct {
	ClubID string
	Name   string

	MatchesPlayed int
	Wins          int
	Losses        int
	Points        int

	GoalsFor     int
	GoalsAgainst int
	Shots        int
	ShotsAgainst int

	PowerplayGoals           int
	PowerplayOpportunities   int
	PenaltyKillGoalsAgainst  int
	PenaltyKillOpportunities int

	TimeOnAttack      int
	PassesAttempted   int
	PassesCompleted   int
	PossessionSeconds int

	// Differentials compare opposing totals within each paired match,
	// summed across matches.
	ShotDifferential             int
	HitDifferential              int
	TakeawayGiveawayDifferential int
	TimeOnAttackDifferential     int
	PossessionDifferential       int
	OpponentPossessionSeconds    int

	// Derived season rates, valid after Finalize.
	WinPct              float64
	GoalsPerGame        float64
	GoalsAgainstPerGame float64
	GoalDifferential    int
	ShootingPct         float64
	PassingPct          float64
	PowerplayPct        float64
	PenaltyKillPct      float64
	TimeOnAttackPerGame float64
	PossessionPct       float64
}

// AddMatch folds one match appearance into the summary. club is this
// team's slot, opponent the other side; agg carries the club-level
// player roll-ups used for possession and differential metrics.
func (s *TeamSummary) AddMatch(club, opponent match.Club, agg, oppAgg match.AggregateStats) {
	s.MatchesPlayed++
	if club.Name() != "" {
		s.Name = club.Name()
	}

	if club.Score > opponent.Score {
		s.Wins++
		s.Points += 2
	} else {
		s.Losses++
	}

	s.GoalsFor += club.Goals
	s.GoalsAgainst += club.GoalsAgainst
	s.Shots += club.Shots
	s.ShotsAgainst += opponent.Shots

	s.PowerplayGoals += club.PowerplayGoals
	s.PowerplayOpportunities += club.PowerplayOpportunities
	s.PenaltyKillGoalsAgainst += opponent.PowerplayGoals
	s.PenaltyKillOpportunities += opponent.PowerplayOpportunities

	s.TimeOnAttack += club.TimeOnAttack
	s.PassesAttempted += club.PassesAttempted
	s.PassesCompleted += club.PassesCompleted
	s.PossessionSeconds += agg.PuckControl.PossessionSeconds
	s.OpponentPossessionSeconds += oppAgg.PuckControl.PossessionSeconds

	s.ShotDifferential += club.Shots - opponent.Shots
	s.HitDifferential += agg.Physical.Hits - oppAgg.Physical.Hits
	s.TakeawayGiveawayDifferential +=
		(agg.PuckControl.Takeaways - agg.PuckControl.Giveaways) -
			(oppAgg.PuckControl.Takeaways - oppAgg.PuckControl.Giveaways)
	s.TimeOnAttackDifferential += club.TimeOnAttack - opponent.TimeOnAttack
	s.PossessionDifferential += agg.PuckControl.PossessionSeconds - oppAgg.PuckControl.PossessionSeconds
}

// Finalize computes season rates from the accumulated counters.
func (s *TeamSummary) Finalize() {
	s.GoalDifferential = s.GoalsFor - s.GoalsAgainst
	s.WinPct = pct(s.Wins, s.MatchesPlayed)
	s.GoalsPerGame = perGame(s.GoalsFor, s.MatchesPlayed)
	s.GoalsAgainstPerGame = perGame(s.GoalsAgainst, s.MatchesPlayed)
	s.ShootingPct = pct(s.GoalsFor, s.Shots)
	s.PassingPct = pct(s.PassesCompleted, s.PassesAttempted)
	s.PowerplayPct = pct(s.PowerplayGoals, s.PowerplayOpportunities)
	if s.PenaltyKillOpportunities > 0 {
		s.PenaltyKillPct = (1 - float64(s.PenaltyKillGoalsAgainst)/float64(s.PenaltyKillOpportunities)) * 100
	} else {
		s.PenaltyKillPct = 100
	}
	s.TimeOnAttackPerGame = perGame(s.TimeOnAttack, s.MatchesPlayed)
	total := s.PossessionSeconds + s.OpponentPossessionSeconds
	if total > 0 {
		s.PossessionPct = float64(s.PossessionSeconds) / float64(total) * 100
	} else {
		s.PossessionPct = 50
	}
}

func pct(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator) * 100
}

func perGame(total, games int) float64 {
	if games == 0 {
		return 0
	}
	return float64(total) / float64(games)
}
