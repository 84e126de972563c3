package match

// CustomKit is the club's custom uniform configuration.
type CustomKit struct {
	IsCustomTeam bool
	CrestAssetID string
	UseBaseAsset bool
}

// ClubDetails identifies the persistent club behind a match slot.
type ClubDetails struct {
	Name      string `validate:"required"`
	ClubID    int
	RegionID  int
	TeamID    int
	CustomKit CustomKit
}

// Club is one side of a match: score line, team counters and the
// persistent club details. ClubID is the aggregation key that stays
// stable across matches; Side is per-match plumbing.
type Club struct {
	ClubID string `validate:"required"`
	Side   TeamSide

	Goals         int
	GoalsAgainst  int
	Score         int
	OpponentScore int
	ScoreString   string
	Result        int
	Losses        int
	WinnerByDNF   bool
	GoalieDNFWin  bool

	Shots                  int
	TimeOnAttack           int
	PassesAttempted        int
	PassesCompleted        int
	PowerplayGoals         int
	PowerplayOpportunities int

	Division     int
	GameType     string
	MemberString string

	TeamArtAbbr         string
	OpponentClubID      string `validate:"required"`
	OpponentTeamArtAbbr string

	Details ClubDetails

	// Derived rates, recomputed from counters at validation time.
	ShootingPct  float64
	PassingPct   float64
	PowerplayPct float64
}

// Name returns the club's display name.
func (c Club) Name() string {
	return c.Details.Name
}

func (c *Club) derive() {
	c.ShootingPct = pct(c.Goals, c.Shots)
	c.PassingPct = pct(c.PassesCompleted, c.PassesAttempted)
	c.PowerplayPct = pct(c.PowerplayGoals, c.PowerplayOpportunities)
}

// AggregateStats is the club-level roll-up of its players' counters for
// one match, as carried by the payload. When the payload omits the
// aggregate section it is rebuilt by summing the club's player lines.
type AggregateStats struct {
	Side  TeamSide
	Score int

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
}

func (a *AggregateStats) derive() {
	a.Skater.Points = a.Skater.Goals + a.Skater.Assists
	a.Shooting.derive(a.Skater.Goals)
	a.Passing.derive()
	a.PuckControl.derive()
	a.Faceoffs.derive()
	a.Penalties.derive()
}

func aggregateFromPlayers(side TeamSide, score int, players map[string]PlayerStats) AggregateStats {
	agg := AggregateStats{Side: side, Score: score}
	for _, p := range players {
		agg.TOIMinutes += p.TOIMinutes
		agg.TOISeconds += p.TOISeconds
		agg.Skater.Goals += p.Skater.Goals
		agg.Skater.Assists += p.Skater.Assists
		agg.Skater.PlusMinus += p.Skater.PlusMinus
		agg.Skater.PenaltyMinutes += p.Skater.PenaltyMinutes
		agg.Skater.GameWinning += p.Skater.GameWinning
		agg.Shooting.Attempts += p.Shooting.Attempts
		agg.Shooting.OnGoal += p.Shooting.OnGoal
		agg.Passing.Attempts += p.Passing.Attempts
		agg.Passing.Completed += p.Passing.Completed
		agg.Passing.SaucerPasses += p.Passing.SaucerPasses
		agg.Physical.Hits += p.Physical.Hits
		agg.Physical.BlockedShots += p.Physical.BlockedShots
		agg.Physical.Deflections += p.Physical.Deflections
		agg.Physical.Interceptions += p.Physical.Interceptions
		agg.PuckControl.Takeaways += p.PuckControl.Takeaways
		agg.PuckControl.Giveaways += p.PuckControl.Giveaways
		agg.PuckControl.PossessionSeconds += p.PuckControl.PossessionSeconds
		agg.Faceoffs.Won += p.Faceoffs.Won
		agg.Faceoffs.Lost += p.Faceoffs.Lost
		agg.SpecialTeams.PowerplayGoals += p.SpecialTeams.PowerplayGoals
		agg.SpecialTeams.ShorthandedGoals += p.SpecialTeams.ShorthandedGoals
		agg.SpecialTeams.PKClearZone += p.SpecialTeams.PKClearZone
		agg.Penalties.Minutes += p.Penalties.Minutes
		agg.Penalties.Drawn += p.Penalties.Drawn
	}
	agg.derive()
	return agg
}
