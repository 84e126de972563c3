package season

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/SpencerPresley/ea-woc-league/internal/domain/match"
)

// PlayerSummary accumulates one player's counters across a season,
// keyed by the persistent player id. A player may appear under more
// than one club within a season; the distinct clubs are tracked as a
// set so TeamsPlayedFor is a cardinality, not a sequence.
type PlayerSummary struct {
	PlayerID string
	Name     string

	Teams     mapset.Set[string]
	Positions mapset.Set[match.Position]

	MatchesPlayed int

	Skater       match.SkaterStats
	Shooting     match.ShootingStats
	Passing      match.PassingStats
	Physical     match.PhysicalStats
	PuckControl  match.PuckControlStats
	Faceoffs     match.FaceoffStats
	SpecialTeams match.SpecialTeamsStats
	Penalties    match.PenaltyStats

	// Goalie totals exist only if the player ever appeared in goal.
	Goalie *match.GoalieStats

	TOIMinutes int
	TOISeconds int

	PointsPerGame float64
}

func NewPlayerSummary(playerID string) *PlayerSummary {
	return &PlayerSummary{
		PlayerID:  playerID,
		Teams:     mapset.NewSet[string](),
		Positions: mapset.NewSet[match.Position](),
	}
}

// TeamsPlayedFor is the number of distinct clubs the player appeared
// under this season.
func (s *PlayerSummary) TeamsPlayedFor() int {
	return s.Teams.Cardinality()
}

// AddMatch folds one match line into the season totals. clubID is the
// persistent club the player appeared for in that match.
func (s *PlayerSummary) AddMatch(clubID string, p match.PlayerStats) {
	s.MatchesPlayed++
	if p.Name != "" {
		s.Name = p.Name
	}
	s.Teams.Add(clubID)
	s.Positions.Add(p.Position)

	s.TOIMinutes += p.TOIMinutes
	s.TOISeconds += p.TOISeconds

	s.Skater.Goals += p.Skater.Goals
	s.Skater.Assists += p.Skater.Assists
	s.Skater.PlusMinus += p.Skater.PlusMinus
	s.Skater.PenaltyMinutes += p.Skater.PenaltyMinutes
	s.Skater.GameWinning += p.Skater.GameWinning

	s.Shooting.Attempts += p.Shooting.Attempts
	s.Shooting.OnGoal += p.Shooting.OnGoal

	s.Passing.Attempts += p.Passing.Attempts
	s.Passing.Completed += p.Passing.Completed
	s.Passing.SaucerPasses += p.Passing.SaucerPasses

	s.Physical.Hits += p.Physical.Hits
	s.Physical.BlockedShots += p.Physical.BlockedShots
	s.Physical.Deflections += p.Physical.Deflections
	s.Physical.Interceptions += p.Physical.Interceptions

	s.PuckControl.Takeaways += p.PuckControl.Takeaways
	s.PuckControl.Giveaways += p.PuckControl.Giveaways
	s.PuckControl.PossessionSeconds += p.PuckControl.PossessionSeconds

	s.Faceoffs.Won += p.Faceoffs.Won
	s.Faceoffs.Lost += p.Faceoffs.Lost

	s.SpecialTeams.PowerplayGoals += p.SpecialTeams.PowerplayGoals
	s.SpecialTeams.ShorthandedGoals += p.SpecialTeams.ShorthandedGoals
	s.SpecialTeams.PKClearZone += p.SpecialTeams.PKClearZone

	s.Penalties.Minutes += p.Penalties.Minutes
	s.Penalties.Drawn += p.Penalties.Drawn

	if p.Goalie != nil {
		if s.Goalie == nil {
			s.Goalie = &match.GoalieStats{}
		}
		s.Goalie.ShotsFaced += p.Goalie.ShotsFaced
		s.Goalie.Saves += p.Goalie.Saves
		s.Goalie.GoalsAgainst += p.Goalie.GoalsAgainst
		s.Goalie.BreakawayShots += p.Goalie.BreakawayShots
		s.Goalie.BreakawaySaves += p.Goalie.BreakawaySaves
		s.Goalie.PenaltyShots += p.Goalie.PenaltyShots
		s.Goalie.PenaltySaves += p.Goalie.PenaltySaves
		s.Goalie.DesperationSaves += p.Goalie.DesperationSaves
		s.Goalie.PokeChecks += p.Goalie.PokeChecks
		s.Goalie.PKClearZone += p.Goalie.PKClearZone
		s.Goalie.ShutoutPeriods += p.Goalie.ShutoutPeriods
	}
}

// Finalize recomputes every derived rate from the season totals.
func (s *PlayerSummary) Finalize() {
	derived := match.PlayerStats{
		Skater:       s.Skater,
		Shooting:     s.Shooting,
		Passing:      s.Passing,
		PuckControl:  s.PuckControl,
		Faceoffs:     s.Faceoffs,
		SpecialTeams: s.SpecialTeams,
		Penalties:    s.Penalties,
		Goalie:       s.Goalie,
	}
	derived.Recompute()

	s.Skater = derived.Skater
	s.Shooting = derived.Shooting
	s.Passing = derived.Passing
	s.PuckControl = derived.PuckControl
	s.Faceoffs = derived.Faceoffs
	s.Penalties = derived.Penalties
	s.Goalie = derived.Goalie

	s.PointsPerGame = perGame(s.Skater.Points, s.MatchesPlayed)
}
