package season

import "sort"

// Summary is the finished product of one season computation: one entry
// per team and per player that actually appeared in a folded match.
// Teams are ordered by points (wins as tie-break, then id), players by
// points then id, so repeated runs emit identical output.
type Summary struct {
	SeasonID string
	Teams    []*TeamSummary
	Players  []*PlayerSummary
}

func BuildSummary(seasonID string, teams map[string]*TeamSummary, players map[string]*PlayerSummary) Summary {
	out := Summary{
		SeasonID: seasonID,
		Teams:    make([]*TeamSummary, 0, len(teams)),
		Players:  make([]*PlayerSummary, 0, len(players)),
	}

	for _, team := range teams {
		if team.MatchesPlayed == 0 {
			continue
		}
		team.Finalize()
		out.Teams = append(out.Teams, team)
	}
	for _, player := range players {
		if player.MatchesPlayed == 0 {
			continue
		}
		player.Finalize()
		out.Players = append(out.Players, player)
	}

	sort.SliceStable(out.Teams, func(i, j int) bool {
		if out.Teams[i].Points != out.Teams[j].Points {
			return out.Teams[i].Points > out.Teams[j].Points
		}
		if out.Teams[i].Wins != out.Teams[j].Wins {
			return out.Teams[i].Wins > out.Teams[j].Wins
		}
		return out.Teams[i].ClubID < out.Teams[j].ClubID
	})
	sort.SliceStable(out.Players, func(i, j int) bool {
		if out.Players[i].Skater.Points != out.Players[j].Skater.Points {
			return out.Players[i].Skater.Points > out.Players[j].Skater.Points
		}
		return out.Players[i].PlayerID < out.Players[j].PlayerID
	})

	return out
}

// Team finds a team summary by club id.
func (s Summary) Team(clubID string) (*TeamSummary, bool) {
	for _, team := range s.Teams {
		if team.ClubID == clubID {
			return team, true
		}
	}
	return nil, false
}

// Player finds a player summary by player id.
func (s Summary) Player(playerID string) (*PlayerSummary, bool) {
	for _, player := range s.Players {
		if player.PlayerID == playerID {
			return player, true
		}
	}
	return nil, false
}
