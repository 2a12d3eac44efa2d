package models

// ContestType is the contest's shape
type ContestType string

const (
	// ContestTypeGroup is a round-robin contest scored by placement points
	ContestTypeGroup ContestType = "group"

	// ContestTypeVersus is an elimination contest scored by round wins
	ContestTypeVersus ContestType = "versus"
)

// BanPhase controls how many chart bans precede each pick
type BanPhase string

const (
	// BanPhaseNormal gives every team one ban per round, at the cost of the
	// first team's turn
	BanPhaseNormal BanPhase = "normal"

	// BanPhaseClassic gives every team one ban per round without the turn
	// penalty
	BanPhaseClassic BanPhase = "classic"

	// BanPhaseFirstOnly runs the ban phase before the first round only
	BanPhaseFirstOnly BanPhase = "first_phase"

	// BanPhaseNone skips bans entirely
	BanPhaseNone BanPhase = "none"
)

// DifficultyFilter restricts the chart pool to difficulty tiers
type DifficultyFilter string

const (
	DifficultyAll            DifficultyFilter = "all"
	DifficultyPast           DifficultyFilter = "past"
	DifficultyPresent        DifficultyFilter = "present"
	DifficultyFuture         DifficultyFilter = "future"
	DifficultyBeyond         DifficultyFilter = "beyond"
	DifficultyFutureOrBeyond DifficultyFilter = "future_or_beyond"
)

// ColorFilter restricts the chart pool to sides
type ColorFilter string

const (
	ColorBoth            ColorFilter = "both"
	ColorLight           ColorFilter = "light"
	ColorDark            ColorFilter = "dark"
	ColorLightInvertible ColorFilter = "light_invertible"
	ColorDarkInvertible  ColorFilter = "dark_invertible"

	// ColorLightVsDark draws a symmetric light/dark pool; each team drafts
	// only from its own side
	ColorLightVsDark ColorFilter = "light_vs_dark"

	// ColorLightVsDarkInverted is ColorLightVsDark with invertible chart
	// sides swapped
	ColorLightVsDarkInverted ColorFilter = "light_vs_dark_inverted"
)

// IsDualSide reports whether the filter runs the dual-side draft ritual.
func (f ColorFilter) IsDualSide() bool {
	return f == ColorLightVsDark || f == ColorLightVsDarkInverted
}

// RankBy selects the metric rounds are scored by
type RankBy string

const (
	// RankByScore ranks teams by summed raw score
	RankByScore RankBy = "score"

	// RankByShinies ranks teams by summed shiny pure count
	RankByShinies RankBy = "shinies"
)

// OrderBy selects the initial team ordering
type OrderBy string

const (
	// OrderByRating orders teams by summed rating, lowest first
	OrderByRating OrderBy = "rating"

	// OrderByBest30 orders teams by summed best-30 average, lowest first
	OrderByBest30 OrderBy = "best30"

	// OrderByRandom shuffles the teams
	OrderByRandom OrderBy = "random"
)
