package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/nairobininja/fina/internal/services/contest"
)

// ProfileCommand handles the /profile command
type ProfileCommand struct {
	BaseCommand
	contestService contest.Service
}

// NewProfileCommand creates a new profile command handler
func NewProfileCommand(contestService contest.Service) *ProfileCommand {
	return &ProfileCommand{
		BaseCommand: BaseCommand{
			Name:        "profile",
			Description: "Link and refresh your score service profile",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "link",
					Description: "Link your score service account",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "account-id",
							Description: "Your numeric account ID",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "In-game name, defaults to your Discord name",
						},
						{
							Type:        discordgo.ApplicationCommandOptionNumber,
							Name:        "rating",
							Description: "Your potential rating, e.g. 12.25",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "sync",
					Description: "Refresh your best-30 average from the score service",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "packs",
					Description: "Declare the song packs you own",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "packs",
							Description: "Comma-separated pack names, e.g. Vicious Labyrinth, Luminous Sky",
							Required:    true,
						},
					},
				},
			},
		},
		contestService: contestService,
	}
}

// Handle processes a Discord interaction for the profile command
func (c *ProfileCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	userID := i.Member.User.ID
	username := i.Member.User.Username
	if i.Member.Nick != "" {
		username = i.Member.Nick
	}

	switch data.Options[0].Name {
	case "link":
		return c.handleLink(s, i, userID, username, data.Options[0].Options)
	case "sync":
		return c.handleSync(s, i, userID)
	case "packs":
		return c.handlePacks(s, i, userID, data.Options[0].Options)
	default:
		return errors.New("unknown subcommand")
	}
}

// handleLink handles the link subcommand
func (c *ProfileCommand) handleLink(s *discordgo.Session, i *discordgo.InteractionCreate, userID, username string, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	opts := commandOptions(options)

	input := &contest.LinkProfileInput{
		UserID:    userID,
		Name:      username,
		AccountID: opts["account-id"].StringValue(),
	}
	if opt, ok := opts["name"]; ok {
		input.Name = opt.StringValue()
	}
	if opt, ok := opts["rating"]; ok {
		// Ratings are entered as e.g. 12.25 and stored in hundredths.
		input.Rating = int(opt.FloatValue()*100 + 0.5)
	}

	if err := c.contestService.LinkProfile(context.Background(), input); err != nil {
		log.Printf("Error linking profile for %s: %v", userID, err)
		return RespondWithError(s, i, renderServiceError(err))
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Linked account `%s`. Run `/profile sync` to pull your best plays.", input.AccountID))
}

// handlePacks handles the packs subcommand
func (c *ProfileCommand) handlePacks(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	opts := commandOptions(options)

	var packs []string
	for _, pack := range strings.Split(opts["packs"].StringValue(), ",") {
		if trimmed := strings.TrimSpace(pack); trimmed != "" {
			packs = append(packs, trimmed)
		}
	}
	if len(packs) == 0 {
		return RespondWithError(s, i, "Name at least one pack.")
	}

	out, err := c.contestService.SetOwnedPacks(context.Background(), &contest.SetOwnedPacksInput{
		UserID: userID,
		Packs:  packs,
	})
	if err != nil {
		log.Printf("Error setting owned packs for %s: %v", userID, err)
		return RespondWithError(s, i, renderServiceError(err))
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf(
		"Got it, %d packs covering %d charts.", len(packs), out.ChartCount))
}

// handleSync handles the sync subcommand
func (c *ProfileCommand) handleSync(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	out, err := c.contestService.SyncProfile(context.Background(), &contest.SyncProfileInput{
		UserID: userID,
	})
	if err != nil {
		log.Printf("Error syncing profile for %s: %v", userID, err)
		return RespondWithError(s, i, renderServiceError(err))
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf(
		"Profile refreshed. Best-30 average: %.2f", float64(out.Profile.Best30)/100))
}
