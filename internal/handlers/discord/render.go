package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/nairobininja/fina/internal/models"
	"github.com/nairobininja/fina/internal/services/contest"
)

// Embed colors
const (
	colorInfo    = 0x5865f2
	colorSuccess = 0x57f287
	colorWarning = 0xfee75c
)

// renderConstant renders a fixed-point chart constant, e.g. 107 -> "10.7".
func renderConstant(c int) string {
	return fmt.Sprintf("%d.%d", c/10, c%10)
}

func placementLabel(placement int) string {
	switch placement {
	case 0:
		return "1st"
	case 1:
		return "2nd"
	case 2:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", placement+1)
	}
}

func banPhaseLabel(phase models.BanPhase) string {
	switch phase {
	case models.BanPhaseClassic:
		return "Classic"
	case models.BanPhaseNormal:
		return "Normal"
	case models.BanPhaseFirstOnly:
		return "First round only"
	default:
		return "None"
	}
}

func colorLabel(color models.ColorFilter) string {
	switch color {
	case models.ColorLight:
		return "Light"
	case models.ColorDark:
		return "Dark"
	case models.ColorLightInvertible:
		return "Light (invertible)"
	case models.ColorDarkInvertible:
		return "Dark (invertible)"
	case models.ColorLightVsDark:
		return "Light vs Dark"
	case models.ColorLightVsDarkInverted:
		return "Light vs Dark (inverted)"
	default:
		return "Both"
	}
}

func contestTypeLabel(t models.ContestType) string {
	if t == models.ContestTypeGroup {
		return "Group"
	}
	return "Versus"
}

func rankByLabel(r models.RankBy) string {
	if r == models.RankByShinies {
		return "Shiny pures"
	}
	return "Score"
}

// chartLine renders one pool entry. Banned charts are struck through and
// picked ones marked, dual side pools carry a side marker.
func chartLine(c *models.Chart, dualSide bool) string {
	var b strings.Builder
	if dualSide {
		if c.Side() == models.AllegianceDark {
			b.WriteString(":new_moon: ")
		} else {
			b.WriteString(":full_moon: ")
		}
	}

	entry := fmt.Sprintf("%s [%s %s]", c.Name, models.TierLabel(c.Tier), renderConstant(c.Constant))
	switch c.Status {
	case models.ChartStatusBanned:
		b.WriteString("~~" + entry + "~~")
	case models.ChartStatusPicked:
		b.WriteString(":dart: " + entry)
	default:
		b.WriteString(entry)
	}
	return b.String()
}

// chartListEmbed renders the pool. Side markers appear whenever the pool
// mixes both sides.
func chartListEmbed(charts []*models.Chart) *discordgo.MessageEmbed {
	var hasLight, hasDark bool
	for _, c := range charts {
		if c.Side() == models.AllegianceDark {
			hasDark = true
		} else {
			hasLight = true
		}
	}
	mixed := hasLight && hasDark

	lines := make([]string, len(charts))
	for i, c := range charts {
		lines[i] = chartLine(c, mixed)
	}
	return &discordgo.MessageEmbed{
		Title:       "Chart pool",
		Description: strings.Join(lines, "\n"),
		Color:       colorInfo,
	}
}

func sessionEmbed(meta *contest.SessionMeta) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Type", Value: contestTypeLabel(meta.ContestType), Inline: true},
		{Name: "Rounds", Value: fmt.Sprintf("%d", meta.Rounds), Inline: true},
		{Name: "Level", Value: fmt.Sprintf("%s - %s", renderConstant(meta.MinConstant), renderConstant(meta.MaxConstant)), Inline: true},
		{Name: "Ranked by", Value: rankByLabel(meta.RankBy), Inline: true},
		{Name: "Bans", Value: banPhaseLabel(meta.BanPhase), Inline: true},
		{Name: "Colors", Value: colorLabel(meta.Color), Inline: true},
	}
	return &discordgo.MessageEmbed{
		Title:  meta.Name,
		Color:  colorSuccess,
		Fields: fields,
		Footer: &discordgo.MessageEmbedFooter{Text: "Session " + meta.SessionID},
	}
}

func roundResultsEmbed(round int, result models.RoundResult, mode models.ResultMode) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(result))
	for placement, ts := range result {
		value := placementLabel(placement)
		if mode == models.ResultModeScore {
			value = fmt.Sprintf("%s with %d", value, ts.Score)
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  ts.Team.DisplayName(40),
			Value: value,
		})
	}
	return &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("Round %d results", round),
		Color:  colorInfo,
		Fields: fields,
	}
}

func standingsEmbed(rounds int, entries []contest.StandingsEntry) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(entries))
	for _, entry := range entries {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   entry.Team.DisplayName(40),
			Value:  fmt.Sprintf("%d", entry.Points),
			Inline: true,
		})
	}
	return &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("Standings (%d rounds)", rounds),
		Color:  colorInfo,
		Fields: fields,
	}
}
