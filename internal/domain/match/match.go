package match

import "time"

// Match is one validated game. Clubs and Players are keyed by the
// persistent club id; Players is further keyed by the persistent player
// id. Exactly two clubs participate and their sides are disjoint.
type Match struct {
	MatchID   string `validate:"required"`
	Timestamp time.Time
	GameType  string

	Clubs      map[string]Club                   `validate:"len=2,dive"`
	Players    map[string]map[string]PlayerStats `validate:"required"`
	Aggregates map[string]AggregateStats
}

// clubIDBySide returns the club id occupying the given side.
func (m Match) clubIDBySide(side TeamSide) (string, bool) {
	for id, club := range m.Clubs {
		if club.Side == side {
			return id, true
		}
	}
	return "", false
}

func (m Match) HomeClubID() (string, bool) { return m.clubIDBySide(SideHome) }
func (m Match) AwayClubID() (string, bool) { return m.clubIDBySide(SideAway) }

func (m Match) HomeClub() (Club, bool) {
	id, ok := m.HomeClubID()
	if !ok {
		return Club{}, false
	}
	club, ok := m.Clubs[id]
	return club, ok
}

func (m Match) AwayClub() (Club, bool) {
	id, ok := m.AwayClubID()
	if !ok {
		return Club{}, false
	}
	club, ok := m.Clubs[id]
	return club, ok
}

// OpponentID returns the other club in the match.
func (m Match) OpponentID(clubID string) (string, bool) {
	for id := range m.Clubs {
		if id != clubID {
			return id, true
		}
	}
	return "", false
}

// ClubPlayers returns the roster that appeared for the club in this
// match, nil if the club is unknown.
func (m Match) ClubPlayers(clubID string) map[string]PlayerStats {
	return m.Players[clubID]
}

func (m Match) ClubAggregate(clubID string) (AggregateStats, bool) {
	agg, ok := m.Aggregates[clubID]
	return agg, ok
}
