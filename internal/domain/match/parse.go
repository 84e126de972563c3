package match

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

var structValidate = validator.New(validator.WithRequiredStructEnabled())

// Parse validates one raw payload into a Match. Validation is atomic:
// if any club or player sub-record fails, the whole match fails and no
// partial Match is returned. Unknown payload fields are ignored.
func Parse(raw RawMatch) (Match, error) {
	root := newSection("", raw)

	var m Match
	r := &reader{section: root}
	r.str(&m.MatchID, "matchId", "match_id")
	var ts int
	r.num(&ts, "timestamp")
	r.optStr(&m.GameType, "matchType", "match_type")
	if r.err != nil {
		return Match{}, r.err
	}
	m.Timestamp = time.Unix(int64(ts), 0).UTC()

	clubsObj, ok := root.object("clubs")
	if !ok {
		return Match{}, structuralError("clubs", "missing clubs section")
	}
	if len(clubsObj) != 2 {
		return Match{}, structuralError("clubs", "expected exactly 2 clubs, got %d", len(clubsObj))
	}

	m.Clubs = make(map[string]Club, 2)
	for clubID, v := range clubsObj {
		obj, ok := v.(map[string]any)
		if !ok {
			return Match{}, structuralError("clubs."+clubID, "club entry is not an object")
		}
		club, err := parseClub(clubID, obj)
		if err != nil {
			return Match{}, err
		}
		m.Clubs[clubID] = club
	}

	playersObj, ok := root.object("players")
	if !ok {
		return Match{}, structuralError("players", "missing players section")
	}
	m.Players = make(map[string]map[string]PlayerStats, 2)
	for clubID := range m.Clubs {
		rosterRaw, ok := playersObj[clubID]
		if !ok {
			return Match{}, structuralError("players."+clubID, "missing roster for club")
		}
		rosterObj, ok := rosterRaw.(map[string]any)
		if !ok {
			return Match{}, structuralError("players."+clubID, "roster is not an object")
		}
		roster := make(map[string]PlayerStats, len(rosterObj))
		for playerID, pv := range rosterObj {
			pobj, ok := pv.(map[string]any)
			if !ok {
				return Match{}, structuralError("players."+clubID+"."+playerID, "player entry is not an object")
			}
			ps, err := parsePlayer("players."+clubID+"."+playerID, playerID, pobj)
			if err != nil {
				return Match{}, err
			}
			roster[playerID] = ps
		}
		m.Players[clubID] = roster
	}

	m.Aggregates = make(map[string]AggregateStats, 2)
	if aggObj, ok := root.object("aggregate"); ok {
		for clubID := range m.Clubs {
			entry, ok := aggObj[clubID]
			if !ok {
				continue
			}
			obj, ok := entry.(map[string]any)
			if !ok {
				return Match{}, structuralError("aggregate."+clubID, "aggregate entry is not an object")
			}
			agg, err := parseAggregate("aggregate."+clubID, obj)
			if err != nil {
				return Match{}, err
			}
			m.Aggregates[clubID] = agg
		}
	}
	for clubID, club := range m.Clubs {
		if _, ok := m.Aggregates[clubID]; !ok {
			m.Aggregates[clubID] = aggregateFromPlayers(club.Side, club.Score, m.Players[clubID])
		}
	}

	if err := checkConsistency(m); err != nil {
		return Match{}, err
	}
	if err := structValidate.Struct(m); err != nil {
		return Match{}, translateStructErr(err)
	}
	return m, nil
}

func checkConsistency(m Match) error {
	homeID, hasHome := m.HomeClubID()
	awayID, hasAway := m.AwayClubID()
	if !hasHome || !hasAway {
		return consistencyError(m.MatchID, "team side values collide: no disjoint home/away assignment")
	}
	home := m.Clubs[homeID]
	away := m.Clubs[awayID]
	if home.Score != away.OpponentScore || away.Score != home.OpponentScore {
		return consistencyError(m.MatchID,
			"mirrored scores disagree: home %d/%d vs away %d/%d",
			home.Score, home.OpponentScore, away.Score, away.OpponentScore)
	}
	if home.OpponentClubID != awayID || away.OpponentClubID != homeID {
		return consistencyError(m.MatchID, "opponent club ids do not cross-reference")
	}
	return nil
}

func parseClub(clubID string, obj map[string]any) (Club, error) {
	r := &reader{section: newSection("clubs."+clubID, obj)}

	c := Club{ClubID: clubID}
	var side int
	r.num(&side, "teamSide", "team_side")
	r.num(&c.Goals, "goals")
	r.num(&c.GoalsAgainst, "goalsAgainst", "goals_against")
	r.num(&c.Score, "score")
	r.num(&c.OpponentScore, "opponentScore", "opponent_score")
	r.str(&c.OpponentClubID, "opponentClubId", "opponent_club_id")
	r.num(&c.Shots, "shots")
	r.num(&c.TimeOnAttack, "toa", "time_on_attack")
	r.num(&c.PassesAttempted, "passa", "passes_attempted")
	r.num(&c.PassesCompleted, "passc", "passes_completed")
	r.num(&c.PowerplayGoals, "ppg", "powerplay_goals")
	r.num(&c.PowerplayOpportunities, "ppo", "powerplay_opportunities")
	r.optNum(&c.Losses, "losses")
	r.optNum(&c.Result, "result")
	r.optNum(&c.Division, "clubDivision", "club_division")
	r.optStr(&c.ScoreString, "scoreString", "score_string")
	r.optStr(&c.GameType, "cNhlOnlineGameType")
	r.optStr(&c.MemberString, "memberString", "member_string")
	r.optStr(&c.TeamArtAbbr, "teamArtAbbr")
	r.optStr(&c.OpponentTeamArtAbbr, "opponentTeamArtAbbr")
	r.boolean(&c.WinnerByDNF, "winnerByDnf")
	r.boolean(&c.GoalieDNFWin, "winnerByGoalieDnf")
	if r.err != nil {
		return Club{}, r.err
	}

	teamSide, ok := ParseTeamSide(side)
	if !ok {
		return Club{}, enumError("clubs."+clubID+".teamSide", side)
	}
	c.Side = teamSide

	detailsObj, ok := r.object("details")
	if !ok {
		return Club{}, structuralError("clubs."+clubID+".details", "missing club details")
	}
	details, err := parseClubDetails("clubs."+clubID+".details", detailsObj)
	if err != nil {
		return Club{}, err
	}
	c.Details = details

	c.derive()
	return c, nil
}

func parseClubDetails(path string, obj map[string]any) (ClubDetails, error) {
	r := &reader{section: newSection(path, obj)}

	var d ClubDetails
	r.str(&d.Name, "name")
	r.num(&d.ClubID, "clubId", "club_id")
	r.optNum(&d.RegionID, "regionId", "region_id")
	r.optNum(&d.TeamID, "teamId", "team_id")
	if r.err != nil {
		return ClubDetails{}, r.err
	}

	if kitObj, ok := r.object("customKit", "custom_kit"); ok {
		kr := &reader{section: newSection(path+".customKit", kitObj)}
		kr.boolean(&d.CustomKit.IsCustomTeam, "isCustomTeam", "is_custom_team")
		kr.optStr(&d.CustomKit.CrestAssetID, "crestAssetId", "crest_asset_id")
		kr.boolean(&d.CustomKit.UseBaseAsset, "useBaseAsset", "use_base_asset")
		if kr.err != nil {
			return ClubDetails{}, kr.err
		}
	}

	return d, nil
}

func parsePlayer(path, playerID string, obj map[string]any) (PlayerStats, error) {
	r := &reader{section: newSection(path, obj)}

	p := PlayerStats{PlayerID: playerID}
	var rawPosition string
	var side int
	r.str(&rawPosition, "position")
	r.str(&p.Name, "playername", "player_name")
	r.num(&side, "teamSide", "team_side")
	r.num(&p.Score, "score")
	r.num(&p.OpponentScore, "opponentScore", "opponent_score")
	r.optStr(&p.OpponentClubID, "opponentClubId", "opponent_club_id")
	r.optNum(&p.TeamID, "teamId", "team_id")
	r.optNum(&p.Level, "class")
	r.optNum(&p.LevelDisplay, "playerLevel", "player_level")
	r.optStr(&p.GameType, "pNhlOnlineGameType")
	r.boolean(&p.IsGuest, "isGuest", "is_guest")
	r.boolean(&p.DNF, "player_dnf", "playerDnf")
	r.flt(&p.RatingOffense, "ratingOffense", "rating_offense")
	r.flt(&p.RatingDefense, "ratingDefense", "rating_defense")
	r.flt(&p.RatingTeamplay, "ratingTeamplay", "rating_teamplay")
	r.num(&p.TOIMinutes, "toi")
	r.num(&p.TOISeconds, "toiseconds", "toi_seconds")

	r.num(&p.Skater.Goals, "skgoals", "sk_goals")
	r.num(&p.Skater.Assists, "skassists", "sk_assists")
	r.num(&p.Skater.PlusMinus, "skplusmin", "sk_plus_minus")
	r.num(&p.Skater.PenaltyMinutes, "skpim", "sk_penalty_minutes")
	r.optNum(&p.Skater.GameWinning, "skgwg", "sk_gwg")

	r.num(&p.Shooting.Attempts, "skshotattempts", "sk_shot_attempts")
	r.num(&p.Shooting.OnGoal, "skshots", "sk_shots")
	r.optFlt(&p.Shooting.RawShotPct, "skshotpct", "sk_shot_pct")
	r.optFlt(&p.Shooting.RawShotOnNetPct, "skshotonnetpct", "sk_shot_on_net_pct")

	r.num(&p.Passing.Attempts, "skpassattempts", "sk_pass_attempts")
	r.num(&p.Passing.Completed, "skpasses", "sk_passes")
	r.optNum(&p.Passing.SaucerPasses, "sksaucerpasses", "sk_saucer_passes")
	r.optFlt(&p.Passing.RawPassPct, "skpasspct", "sk_pass_pct")

	r.num(&p.Physical.Hits, "skhits", "sk_hits")
	r.optNum(&p.Physical.BlockedShots, "skbs", "sk_blocked_shots")
	r.optNum(&p.Physical.Deflections, "skdeflections", "sk_deflections")
	r.optNum(&p.Physical.Interceptions, "skinterceptions", "sk_interceptions")

	r.num(&p.PuckControl.Takeaways, "sktakeaways", "sk_takeaways")
	r.num(&p.PuckControl.Giveaways, "skgiveaways", "sk_giveaways")
	r.optNum(&p.PuckControl.PossessionSeconds, "skpossession", "sk_possession")

	r.num(&p.Faceoffs.Won, "skfow", "sk_faceoffs_won")
	r.num(&p.Faceoffs.Lost, "skfol", "sk_faceoffs_lost")
	r.optFlt(&p.Faceoffs.RawPct, "skfopct", "sk_faceoff_pct")

	r.optNum(&p.SpecialTeams.PowerplayGoals, "skppg", "sk_powerplay_goals")
	r.optNum(&p.SpecialTeams.ShorthandedGoals, "skshg", "sk_shorthanded_goals")
	r.optNum(&p.SpecialTeams.PKClearZone, "skpkclearzone", "sk_pk_clear_zone")

	r.optNum(&p.Penalties.Drawn, "skpenaltiesdrawn", "sk_penalties_drawn")

	if r.err != nil {
		return PlayerStats{}, r.err
	}
	p.Penalties.Minutes = p.Skater.PenaltyMinutes

	position, ok := ParsePosition(rawPosition)
	if !ok {
		return PlayerStats{}, enumError(path+".position", rawPosition)
	}
	p.Position = position

	teamSide, ok := ParseTeamSide(side)
	if !ok {
		return PlayerStats{}, enumError(path+".teamSide", side)
	}
	p.Side = teamSide

	var platform string
	r.optStr(&platform, "clientPlatform", "client_platform")
	if r.err != nil {
		return PlayerStats{}, r.err
	}
	if platform != "" {
		parsed, ok := ParsePlatform(platform)
		if !ok {
			return PlayerStats{}, enumError(path+".clientPlatform", platform)
		}
		p.Platform = string(parsed)
	}

	if position.IsGoalie() {
		g, err := parseGoalie(path, r.section)
		if err != nil {
			return PlayerStats{}, err
		}
		p.Goalie = g
	}

	p.Recompute()
	return p, nil
}

func parseGoalie(path string, s section) (*GoalieStats, error) {
	r := &reader{section: s}

	var g GoalieStats
	r.num(&g.ShotsFaced, "glshots", "gl_shots")
	r.num(&g.Saves, "glsaves", "gl_saves")
	r.num(&g.GoalsAgainst, "glga", "gl_goals_against")
	r.optNum(&g.BreakawayShots, "glbrkshots", "gl_breakaway_shots")
	r.optNum(&g.BreakawaySaves, "glbrksaves", "gl_breakaway_saves")
	r.optNum(&g.PenaltyShots, "glpenshots", "gl_penalty_shots")
	r.optNum(&g.PenaltySaves, "glpensaves", "gl_penalty_saves")
	r.optNum(&g.DesperationSaves, "gldsaves", "gl_desperation_saves")
	r.optNum(&g.PokeChecks, "glpokechecks", "gl_poke_checks")
	r.optNum(&g.PKClearZone, "glpkclearzone", "gl_pk_clear_zone")
	r.optNum(&g.ShutoutPeriods, "glsoperiods", "gl_shutout_periods")
	r.optFlt(&g.RawSavePct, "glsavepct", "gl_save_pct")
	r.optFlt(&g.RawGAA, "glgaa", "gl_gaa")
	if r.err != nil {
		return nil, r.err
	}
	return &g, nil
}

func parseAggregate(path string, obj map[string]any) (AggregateStats, error) {
	r := &reader{section: newSection(path, obj)}

	var a AggregateStats
	var side int
	r.num(&side, "teamSide", "team_side")
	r.num(&a.Score, "score")
	r.optNum(&a.TOIMinutes, "toi")
	r.optNum(&a.TOISeconds, "toiseconds", "toi_seconds")
	r.num(&a.Skater.Goals, "skgoals", "sk_goals")
	r.num(&a.Skater.Assists, "skassists", "sk_assists")
	r.optNum(&a.Skater.PlusMinus, "skplusmin", "sk_plus_minus")
	r.optNum(&a.Skater.PenaltyMinutes, "skpim", "sk_penalty_minutes")
	r.optNum(&a.Skater.GameWinning, "skgwg", "sk_gwg")
	r.num(&a.Shooting.Attempts, "skshotattempts", "sk_shot_attempts")
	r.num(&a.Shooting.OnGoal, "skshots", "sk_shots")
	r.num(&a.Passing.Attempts, "skpassattempts", "sk_pass_attempts")
	r.num(&a.Passing.Completed, "skpasses", "sk_passes")
	r.optNum(&a.Passing.SaucerPasses, "sksaucerpasses", "sk_saucer_passes")
	r.num(&a.Physical.Hits, "skhits", "sk_hits")
	r.optNum(&a.Physical.BlockedShots, "skbs", "sk_blocked_shots")
	r.optNum(&a.Physical.Deflections, "skdeflections", "sk_deflections")
	r.optNum(&a.Physical.Interceptions, "skinterceptions", "sk_interceptions")
	r.num(&a.PuckControl.Takeaways, "sktakeaways", "sk_takeaways")
	r.num(&a.PuckControl.Giveaways, "skgiveaways", "sk_giveaways")
	r.optNum(&a.PuckControl.PossessionSeconds, "skpossession", "sk_possession")
	r.optNum(&a.Faceoffs.Won, "skfow", "sk_faceoffs_won")
	r.optNum(&a.Faceoffs.Lost, "skfol", "sk_faceoffs_lost")
	r.optNum(&a.SpecialTeams.PowerplayGoals, "skppg", "sk_powerplay_goals")
	r.optNum(&a.SpecialTeams.ShorthandedGoals, "skshg", "sk_shorthanded_goals")
	r.optNum(&a.SpecialTeams.PKClearZone, "skpkclearzone", "sk_pk_clear_zone")
	r.optNum(&a.Penalties.Drawn, "skpenaltiesdrawn", "sk_penalties_drawn")
	if r.err != nil {
		return AggregateStats{}, r.err
	}

	teamSide, ok := ParseTeamSide(side)
	if !ok {
		return AggregateStats{}, enumError(path+".teamSide", side)
	}
	a.Side = teamSide
	a.Penalties.Minutes = a.Skater.PenaltyMinutes

	a.derive()
	return a, nil
}

// reader accumulates the first field failure so call sites can string
// reads together without checking after each one.
type reader struct {
	section
	err error
}

func (r *reader) num(dst *int, keys ...string) {
	if r.err != nil {
		return
	}
	v, ferr := r.requiredInt(keys...)
	if ferr != nil {
		r.err = ferr
		return
	}
	*dst = v
}

func (r *reader) optNum(dst *int, keys ...string) {
	if r.err != nil {
		return
	}
	v, ferr := r.optionalInt(0, keys...)
	if ferr != nil {
		r.err = ferr
		return
	}
	*dst = v
}

func (r *reader) flt(dst *float64, keys ...string) {
	if r.err != nil {
		return
	}
	v, ferr := r.requiredFloat(keys...)
	if ferr != nil {
		r.err = ferr
		return
	}
	*dst = v
}

func (r *reader) optFlt(dst *float64, keys ...string) {
	if r.err != nil {
		return
	}
	v, ferr := r.optionalFloat(keys...)
	if ferr != nil {
		r.err = ferr
		return
	}
	*dst = v
}

func (r *reader) str(dst *string, keys ...string) {
	if r.err != nil {
		return
	}
	v, ferr := r.requiredString(keys...)
	if ferr != nil {
		r.err = ferr
		return
	}
	*dst = v
}

func (r *reader) optStr(dst *string, keys ...string) {
	if r.err != nil {
		return
	}
	v, ferr := r.optionalString(keys...)
	if ferr != nil {
		r.err = ferr
		return
	}
	*dst = v
}

func (r *reader) boolean(dst *bool, keys ...string) {
	if r.err != nil {
		return
	}
	v, ferr := r.optionalBool(keys...)
	if ferr != nil {
		r.err = ferr
		return
	}
	*dst = v
}

func translateStructErr(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		switch first.Tag() {
		case "len":
			return structuralError(first.Namespace(), "wrong collection size")
		default:
			return missingField(first.Namespace())
		}
	}
	return err
}
