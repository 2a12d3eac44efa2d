package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ChartColor is the catalog's color classification of a chart
type ChartColor string

const (
	// ChartColorLight indicates a light-side chart
	ChartColorLight ChartColor = "LIGHT"

	// ChartColorDark indicates a dark (conflict) side chart
	ChartColorDark ChartColor = "DARK"

	// ChartColorless indicates a chart with no side
	ChartColorless ChartColor = "COLORLESS"
)

// ChartStatus is a chart's draft state within a session pool
type ChartStatus string

const (
	// ChartStatusReady indicates the chart can still be banned or picked
	ChartStatusReady ChartStatus = "ready"

	// ChartStatusBanned indicates the chart was banned this session
	ChartStatusBanned ChartStatus = "banned"

	// ChartStatusPicked indicates the chart was picked and played
	ChartStatusPicked ChartStatus = "picked"
)

// Chart tiers
const (
	TierPast = iota
	TierPresent
	TierFuture
	TierBeyond
)

var tierLabels = []string{"PST", "PRS", "FTR", "BYD"}

// TierLabel returns the short display name of a difficulty tier.
func TierLabel(tier int) string {
	if tier < 0 || tier >= len(tierLabels) {
		return "Unknown"
	}
	return tierLabels[tier]
}

// Chart is a song+difficulty pair selectable during a contest draft
type Chart struct {
	// Name is the song's display name
	Name string `json:"name"`

	// SongKey is the song's identifier on the score API
	SongKey string `json:"song_key"`

	// Tier is the difficulty tier (0 PST .. 3 BYD)
	Tier int `json:"tier"`

	// Constant is the chart's difficulty constant, in fixed-point units (x10)
	Constant int `json:"constant"`

	// Color is the chart's side classification
	Color ChartColor `json:"color"`

	// Pack is the song pack the chart belongs to
	Pack string `json:"pack"`

	// LightBG is non-empty when the chart has an alternate light background
	LightBG string `json:"light_bg"`

	// DarkBG is non-empty when the chart has an alternate dark background
	DarkBG string `json:"dark_bg"`

	// Status is the chart's draft state. Transitions are one-way:
	// ready to banned, or ready to picked.
	Status ChartStatus `json:"status,omitempty"`
}

// Ref returns the chart's identity.
func (c *Chart) Ref() ChartRef {
	return ChartRef{SongKey: c.SongKey, Tier: c.Tier}
}

// Side maps the chart's color to a draft side. Colorless charts count as
// light.
func (c *Chart) Side() Allegiance {
	if c.Color == ChartColorDark {
		return AllegianceDark
	}
	return AllegianceLight
}

// ChartRef identifies a chart by song key and difficulty tier
type ChartRef struct {
	SongKey string
	Tier    int
}

// String renders the reference as "songkey/tier".
func (r ChartRef) String() string {
	return fmt.Sprintf("%s/%d", r.SongKey, r.Tier)
}

// ParseChartRef parses a "songkey/tier" reference.
func ParseChartRef(s string) (ChartRef, error) {
	idx := strings.LastIndex(s, "/")
	if idx <= 0 || idx == len(s)-1 {
		return ChartRef{}, fmt.Errorf("malformed chart reference %q", s)
	}

	tier, err := strconv.Atoi(s[idx+1:])
	if err != nil {
		return ChartRef{}, fmt.Errorf("malformed chart tier in %q: %w", s, err)
	}

	return ChartRef{SongKey: s[:idx], Tier: tier}, nil
}
