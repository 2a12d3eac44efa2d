package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/nairobininja/fina/internal/models"
	"github.com/nairobininja/fina/internal/services/contest"
)

// modalInputLimit is Discord's cap on text inputs per modal.
const modalInputLimit = 5

// ResultsCommand handles the /results command
type ResultsCommand struct {
	BaseCommand
	contestService contest.Service
}

// NewResultsCommand creates a new results command handler
func NewResultsCommand(contestService contest.Service) *ResultsCommand {
	return &ResultsCommand{
		BaseCommand: BaseCommand{
			Name:        "results",
			Description: "Report the results of the picked chart",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "auto",
					Description: "Read everyone's most recent play from the score service",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "manual",
					Description: "Enter everyone's score by hand",
				},
			},
		},
		contestService: contestService,
	}
}

// Handle processes a Discord interaction for the results command
func (c *ResultsCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	switch data.Options[0].Name {
	case "auto":
		return c.handleAuto(s, i)
	case "manual":
		return c.handleManual(s, i)
	default:
		return errors.New("unknown subcommand")
	}
}

// handleAuto collects everyone's most recent play
func (c *ResultsCommand) handleAuto(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	err := c.contestService.CollectResults(context.Background(), &contest.CollectResultsInput{
		ThreadID: i.ChannelID,
	})
	if err != nil {
		return RespondWithError(s, i, renderServiceError(err))
	}

	// The thread already carries the round report.
	return RespondWithEphemeralMessage(s, i, "Results collected.")
}

// handleManual opens a score entry modal with one input per contestant
func (c *ResultsCommand) handleManual(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	out, err := c.contestService.GetSession(context.Background(), &contest.GetSessionInput{
		ThreadID: i.ChannelID,
	})
	if err != nil {
		return RespondWithError(s, i, renderServiceError(err))
	}
	sess := out.Session

	if sess.RankBy() == models.RankByShinies {
		return RespondWithError(s, i, contest.ErrManualUnsupported.Error())
	}
	if _, awaiting := sess.AwaitingResults(); !awaiting {
		return RespondWithError(s, i, contest.ErrNotAwaitingResults.Error())
	}

	contestants := models.AllContestants(sess.Teams())
	if len(contestants) > modalInputLimit {
		return RespondWithError(s, i, fmt.Sprintf(
			"Too many contestants for manual entry (at most %d). Use `/results auto` instead.", modalInputLimit))
	}

	rows := make([]discordgo.MessageComponent, 0, len(contestants))
	for _, contestant := range contestants {
		rows = append(rows, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    scoreInputPrefix + contestant.UserID,
					Label:       contestant.Name,
					Style:       discordgo.TextInputShort,
					Placeholder: "9'850'000",
					Required:    true,
				},
			},
		})
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   scoresModalID,
			Title:      "Round scores",
			Components: rows,
		},
	})
}
