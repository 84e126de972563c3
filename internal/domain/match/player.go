package match

// PlayerStats is one player's validated line for a single match. It is
// an immutable value object: constructed once from a payload, never
// mutated afterwards.
type PlayerStats struct {
	PlayerID string   `validate:"required"`
	Name     string   `validate:"required"`
	Position Position `validate:"required"`

	Level        int
	LevelDisplay int
	Platform     string
	GameType     string
	IsGuest      bool
	DNF          bool

	// Match-local plumbing. TeamID and Side identify the slot the
	// player occupied in this match only.
	TeamID         int
	Side           TeamSide
	OpponentClubID string
	OpponentScore  int
	Score          int

	RatingOffense  float64
	RatingDefense  float64
	RatingTeamplay float64

	TOIMinutes int
	TOISeconds int

	Skater       SkaterStats
	Shooting     ShootingStats
	Passing      PassingStats
	Physical     PhysicalStats
	PuckControl  PuckControlStats
	Faceoffs     FaceoffStats
	SpecialTeams SpecialTeamsStats
	Penalties    PenaltyStats

	// Goalie is nil for every position except goalie; absent, not
	// zero-filled.
	Goalie *GoalieStats
}

// Recompute refreshes every derived rate field from the base counters.
// Season accumulators reuse it so season rates come from totals, not
// from averaged per-match percentages.
func (p *PlayerStats) Recompute() {
	p.Skater.Points = p.Skater.Goals + p.Skater.Assists
	p.Shooting.derive(p.Skater.Goals)
	p.Passing.derive()
	p.PuckControl.derive()
	p.Faceoffs.derive()
	p.Penalties.derive()
	if p.Goalie != nil {
		p.Goalie.derive()
	}
}

// PointsPer60 normalizes scoring by ice time.
func (p PlayerStats) PointsPer60() float64 {
	if p.TOIMinutes == 0 {
		return 0
	}
	return float64(p.Skater.Points*60) / float64(p.TOIMinutes)
}
