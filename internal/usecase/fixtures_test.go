package usecase

import (
	"strconv"

	"github.com/SpencerPresley/ea-woc-league/internal/domain/match"
)

// rawFixture builds one EA-shaped payload with two clubs, a skater and
// a goalie per side. Numbers arrive as float64 to mimic decoded JSON;
// a few fields use string digits on purpose since the upstream feed
// mixes both.
func rawFixture(matchID string, ts int, homeClub, awayClub string, homeGoals, awayGoals int) match.RawMatch {
	return match.RawMatch{
		"matchId":   matchID,
		"timestamp": float64(ts),
		"matchType": "club_private",
		"clubs": map[string]any{
			homeClub: rawClub(0, homeGoals, awayGoals, awayClub, "Home HC"),
			awayClub: rawClub(1, awayGoals, homeGoals, homeClub, "Away HC"),
		},
		"players": map[string]any{
			homeClub: map[string]any{
				"p-" + homeClub + "-1": rawSkater("Skater "+homeClub, 0, homeGoals, awayGoals),
				"p-" + homeClub + "-2": rawGoalie("Goalie "+homeClub, 0, homeGoals, awayGoals),
			},
			awayClub: map[string]any{
				"p-" + awayClub + "-1": rawSkater("Skater "+awayClub, 1, awayGoals, homeGoals),
				"p-" + awayClub + "-2": rawGoalie("Goalie "+awayClub, 1, awayGoals, homeGoals),
			},
		},
	}
}

func rawClub(side, score, oppScore int, oppClubID, name string) map[string]any {
	return map[string]any{
		"teamSide":       float64(side),
		"goals":          strconv.Itoa(score),
		"goalsAgainst":   float64(oppScore),
		"score":          float64(score),
		"opponentScore":  float64(oppScore),
		"opponentClubId": oppClubID,
		"shots":          float64(22),
		"toa":            float64(480),
		"passa":          float64(120),
		"passc":          float64(90),
		"ppg":            float64(1),
		"ppo":            float64(3),
		"details": map[string]any{
			"name":   name,
			"clubId": float64(1),
		},
	}
}

func rawSkater(name string, side, score, oppScore int) map[string]any {
	return map[string]any{
		"position":       "center",
		"playername":     name,
		"teamSide":       float64(side),
		"score":          float64(score),
		"opponentScore":  float64(oppScore),
		"ratingOffense":  float64(80),
		"ratingDefense":  float64(75),
		"ratingTeamplay": float64(70),
		"toi":            float64(60),
		"toiseconds":     float64(3600),
		"skgoals":        float64(score),
		"skassists":      float64(1),
		"skplusmin":      float64(1),
		"skpim":          float64(2),
		"skshotattempts": float64(9),
		"skshots":        "6",
		"skpassattempts": float64(40),
		"skpasses":       float64(30),
		"skhits":         float64(4),
		"sktakeaways":    float64(3),
		"skgiveaways":    float64(2),
		"skfow":          float64(10),
		"skfol":          float64(8),
		"skpossession":   float64(240),
	}
}

func rawGoalie(name string, side, score, oppScore int) map[string]any {
	g := rawSkater(name, side, score, oppScore)
	g["position"] = "goalie"
	g["skgoals"] = float64(0)
	g["glshots"] = float64(20)
	g["glsaves"] = float64(20 - oppScore)
	g["glga"] = float64(oppScore)
	return g
}
