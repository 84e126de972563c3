package match

import "strings"

// Position is a player's position as reported by the EA payload.
type Position string

const (
	PositionLeftWing     Position = "leftWing"
	PositionRightWing    Position = "rightWing"
	PositionCenter       Position = "center"
	PositionLeftDefense  Position = "leftDefense"
	PositionRightDefense Position = "rightDefense"
	PositionDefense      Position = "defenseMen"
	PositionGoalie       Position = "goalie"
)

var knownPositions = map[string]Position{
	"leftWing":     PositionLeftWing,
	"rightWing":    PositionRightWing,
	"center":       PositionCenter,
	"leftDefense":  PositionLeftDefense,
	"rightDefense": PositionRightDefense,
	"defenseMen":   PositionDefense,
	"goalie":       PositionGoalie,
}

func ParsePosition(value string) (Position, bool) {
	p, ok := knownPositions[strings.TrimSpace(value)]
	return p, ok
}

func (p Position) IsGoalie() bool {
	return p == PositionGoalie
}

// TeamSide is the match-local home/away designation. It is ephemeral
// per-match plumbing and never an aggregation key.
type TeamSide int

const (
	SideHome TeamSide = 0
	SideAway TeamSide = 1
)

func ParseTeamSide(value int) (TeamSide, bool) {
	switch value {
	case 0:
		return SideHome, true
	case 1:
		return SideAway, true
	default:
		return 0, false
	}
}

// Platform is the gaming platform a club plays on.
type Platform string

const (
	PlatformPS5        Platform = "ps5"
	PlatformPS4        Platform = "ps4"
	PlatformXboxX      Platform = "xbox-series-xs"
	PlatformXboxOne    Platform = "xboxone"
	PlatformCommonGen5 Platform = "common-gen5"
)

var knownPlatforms = map[string]Platform{
	"ps5":            PlatformPS5,
	"ps4":            PlatformPS4,
	"xbox-series-xs": PlatformXboxX,
	"xboxone":        PlatformXboxOne,
	"common-gen5":    PlatformCommonGen5,
}

func ParsePlatform(value string) (Platform, bool) {
	p, ok := knownPlatforms[strings.TrimSpace(value)]
	return p, ok
}

// MatchType selects which EASHL game mode a match was played in.
type MatchType string

const (
	MatchTypeRegular MatchType = "gameType5"
	MatchTypeThrees  MatchType = "gameType10"
	MatchTypePrivate MatchType = "club_private"
)

var knownMatchTypes = map[string]MatchType{
	"gameType5":    MatchTypeRegular,
	"gameType10":   MatchTypeThrees,
	"club_private": MatchTypePrivate,
}

func ParseMatchType(value string) (MatchType, bool) {
	m, ok := knownMatchTypes[strings.TrimSpace(value)]
	return m, ok
}
