package models

import (
	"fmt"
	"strings"
)

// Allegiance is a team's assigned chart side in dual-side contests
type Allegiance string

const (
	// AllegianceNone indicates the team has no assigned side
	AllegianceNone Allegiance = "none"

	// AllegianceLight indicates the team plays the light side
	AllegianceLight Allegiance = "light"

	// AllegianceDark indicates the team plays the dark (conflict) side
	AllegianceDark Allegiance = "dark"
)

// Team groups contestants for one contest session. The contestant list is
// fixed at construction; only Allegiance changes during a session.
type Team struct {
	contestants []*Contestant

	// Allegiance is the team's side in dual-side contests
	Allegiance Allegiance
}

// NewTeam creates a team from a contestant list. The slice is copied.
func NewTeam(contestants []*Contestant) *Team {
	members := make([]*Contestant, len(contestants))
	copy(members, contestants)

	return &Team{
		contestants: members,
		Allegiance:  AllegianceNone,
	}
}

// Contestants returns the team's members.
func (t *Team) Contestants() []*Contestant {
	return t.contestants
}

// UserIDs returns the Discord user IDs of the team's members.
func (t *Team) UserIDs() []string {
	ids := make([]string, len(t.contestants))
	for i, c := range t.contestants {
		ids[i] = c.UserID
	}
	return ids
}

// HasUser reports whether the given user is a member of the team.
func (t *Team) HasUser(userID string) bool {
	for _, c := range t.contestants {
		if c.UserID == userID {
			return true
		}
	}
	return false
}

// RatingSum sums the members' skill ratings.
func (t *Team) RatingSum() int {
	sum := 0
	for _, c := range t.contestants {
		sum += c.Rating
	}
	return sum
}

// Best30Sum sums the members' best-30 averages, falling back to the rating
// for members who have never synced theirs.
func (t *Team) Best30Sum() int {
	sum := 0
	for _, c := range t.contestants {
		if c.Best30 != 0 {
			sum += c.Best30
		} else {
			sum += c.Rating
		}
	}
	return sum
}

// Mention renders the team as a list of Discord mentions.
func (t *Team) Mention(separator string) string {
	parts := make([]string, len(t.contestants))
	for i, c := range t.contestants {
		parts[i] = fmt.Sprintf("<@%s>", c.UserID)
	}
	return strings.Join(parts, separator)
}

// DisplayName renders the team as a list of in-game names, each truncated
// to maxLen runes.
func (t *Team) DisplayName(maxLen int) string {
	parts := make([]string, len(t.contestants))
	for i, c := range t.contestants {
		name := c.Name
		if runes := []rune(name); len(runes) > maxLen {
			name = string(runes[:maxLen])
		}
		parts[i] = name
	}
	return strings.Join(parts, ", ")
}

// AllContestants flattens the member lists of the given teams.
func AllContestants(teams []*Team) []*Contestant {
	var all []*Contestant
	for _, t := range teams {
		all = append(all, t.contestants...)
	}
	return all
}
