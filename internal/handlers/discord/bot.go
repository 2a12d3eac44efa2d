package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/nairobininja/fina/internal/models"
	"github.com/nairobininja/fina/internal/services/contest"
)

// Bot represents the Discord bot instance
type Bot struct {
	session        *discordgo.Session
	commands       map[string]CommandHandler
	commandIDs     map[string]string // Maps command name to command ID
	contestService contest.Service
	config         *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token, used when no session is supplied
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Session is an existing Discord session to reuse. The contest
	// service's notifier usually shares it.
	Session *discordgo.Session

	// Contest service
	ContestService contest.Service
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.ContestService == nil {
		return nil, errors.New("contest service cannot be nil")
	}

	session := cfg.Session
	if session == nil {
		if cfg.Token == "" {
			return nil, errors.New("token cannot be empty")
		}
		var err error
		session, err = discordgo.New("Bot " + cfg.Token)
		if err != nil {
			return nil, fmt.Errorf("failed to create Discord session: %w", err)
		}
	}

	bot := &Bot{
		session:        session,
		commands:       make(map[string]CommandHandler),
		commandIDs:     make(map[string]string),
		contestService: cfg.ContestService,
		config:         cfg,
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Session returns the underlying Discord session
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	handlers := []CommandHandler{
		NewContestCommand(b.contestService),
		NewResultsCommand(b.contestService),
		NewProfileCommand(b.contestService),
	}
	for _, h := range handlers {
		if err := b.RegisterCommand(h); err != nil {
			return fmt.Errorf("failed to register %s command: %w", h.GetName(), err)
		}
	}

	log.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log.Printf("Failed to delete command %s (ID: %s): %v", cmdName, cmdID, err)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	appID := b.config.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}

	// If guild ID is provided, register command for that specific guild
	// Otherwise, register it globally
	guildID := b.config.GuildID
	if guildID != "" {
		log.Printf("Registering command %s for guild %s", cmd.GetName(), guildID)
	} else {
		log.Printf("Registering command %s globally", cmd.GetName())
	}

	createdCmd, err := b.session.ApplicationCommandCreate(appID, guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log.Printf("Registered command: %s with ID: %s", cmd.GetName(), createdCmd.ID)

	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
			if err := h.Handle(s, i); err != nil {
				log.Printf("Error handling command %s: %v", i.ApplicationCommandData().Name, err)
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			log.Printf("Error handling component interaction: %v", err)
		}
	case discordgo.InteractionModalSubmit:
		if err := b.handleModalSubmit(s, i); err != nil {
			log.Printf("Error handling modal submit: %v", err)
		}
	}
}

// handleComponentInteraction handles draft menus and side choice buttons
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID
	userID := i.Member.User.ID

	switch {
	case strings.HasPrefix(customID, draftMenuPrefix):
		return b.handleDraftMenu(s, i, customID, userID)
	case customID == sideButtonLight:
		return b.handleSideButton(s, i, userID, models.AllegianceLight)
	case customID == sideButtonDark:
		return b.handleSideButton(s, i, userID, models.AllegianceDark)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown component: %s", customID))
	}
}

// handleDraftMenu applies a chart selection from a draft menu
func (b *Bot) handleDraftMenu(s *discordgo.Session, i *discordgo.InteractionCreate, customID, userID string) error {
	parts := strings.Split(customID, ":")
	if len(parts) < 2 {
		return RespondWithError(s, i, "Malformed draft menu.")
	}
	action := contest.DraftAction(parts[1])

	values := i.MessageComponentData().Values
	if len(values) != 1 {
		return RespondWithError(s, i, "Select exactly one chart.")
	}
	ref, err := models.ParseChartRef(values[0])
	if err != nil {
		return RespondWithError(s, i, fmt.Sprintf("Malformed chart reference: %v", err))
	}

	err = b.contestService.ProcessDraftChoice(context.Background(), &contest.ProcessDraftChoiceInput{
		ThreadID: i.ChannelID,
		ActorID:  userID,
		Action:   action,
		Ref:      ref,
	})
	if err != nil {
		return RespondWithError(s, i, renderServiceError(err))
	}

	// The service already announced the outcome in the thread.
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

// handleSideButton applies a side choice button click
func (b *Bot) handleSideButton(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, side models.Allegiance) error {
	err := b.contestService.ProcessSideChoice(context.Background(), &contest.ProcessSideChoiceInput{
		ThreadID: i.ChannelID,
		ActorID:  userID,
		Side:     side,
	})
	if err != nil {
		return RespondWithError(s, i, renderServiceError(err))
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

// handleModalSubmit applies manually entered scores
func (b *Bot) handleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ModalSubmitData()
	if data.CustomID != scoresModalID {
		return fmt.Errorf("unknown modal: %s", data.CustomID)
	}

	var scores []contest.ContestantScore
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			input, ok := component.(*discordgo.TextInput)
			if !ok || !strings.HasPrefix(input.CustomID, scoreInputPrefix) {
				continue
			}
			userID := strings.TrimPrefix(input.CustomID, scoreInputPrefix)
			score, err := parseScore(input.Value)
			if err != nil {
				return RespondWithError(s, i, fmt.Sprintf("Invalid score for <@%s>: %v", userID, err))
			}
			scores = append(scores, contest.ContestantScore{UserID: userID, Score: score})
		}
	}

	err := b.contestService.SubmitManualScores(context.Background(), &contest.SubmitManualScoresInput{
		ThreadID: i.ChannelID,
		Scores:   scores,
	})
	if err != nil {
		return RespondWithError(s, i, renderServiceError(err))
	}

	return RespondWithEphemeralMessage(s, i, "Results recorded.")
}

// parseScore reads a score as typed by a user, tolerating separators.
func parseScore(value string) (int, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', ',', '\'', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(value))
	return strconv.Atoi(cleaned)
}

// renderServiceError maps service errors to user-facing text
func renderServiceError(err error) string {
	var contestErr contest.ContestError
	if errors.As(err, &contestErr) {
		return err.Error()
	}
	return fmt.Sprintf("Something went wrong: %v", err)
}
