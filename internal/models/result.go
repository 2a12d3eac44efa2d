package models

// TeamScore is one team's outcome for a single round
type TeamScore struct {
	// Team is the scored team
	Team *Team

	// Score is the team's summed raw score for the round. When the contest
	// ranks by shinies this holds the shiny count instead.
	Score int

	// Shinies is the team's summed shiny pure count for the round
	Shinies int
}

// RoundResult is the ordered outcome of one round, winner first
type RoundResult []TeamScore

// ResultMode selects how round results are reported. It is fixed when the
// session is configured.
type ResultMode string

const (
	// ResultModeScore reports each team's numeric score
	ResultModeScore ResultMode = "score"

	// ResultModePlacement reports placements only
	ResultModePlacement ResultMode = "placement"
)
