package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/nairobininja/fina/internal/models"
	"github.com/nairobininja/fina/internal/services/contest"
)

// Contest defaults applied when an option is omitted.
const (
	defaultVersusRounds = 3
	defaultMinConstant  = 10
	defaultMaxConstant  = 126
	maxPoolSize         = 50

	// Light vs Conflict presets
	conflictRounds      = 5
	conflictPoolSize    = 20
	conflictMinConstant = 97
	conflictMaxConstant = 120
)

// ContestCommand handles the /contest command
type ContestCommand struct {
	BaseCommand
	contestService contest.Service
}

// NewContestCommand creates a new contest command handler
func NewContestCommand(contestService contest.Service) *ContestCommand {
	filterOptions := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "rounds",
			Description: "Number of rounds to play",
		},
		{
			Type:        discordgo.ApplicationCommandOptionNumber,
			Name:        "min-level",
			Description: "Lowest chart constant, e.g. 9.5",
		},
		{
			Type:        discordgo.ApplicationCommandOptionNumber,
			Name:        "max-level",
			Description: "Highest chart constant, e.g. 10.9",
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "bans",
			Description: "Ban phase type",
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Normal", Value: string(models.BanPhaseNormal)},
				{Name: "Classic", Value: string(models.BanPhaseClassic)},
				{Name: "First round only", Value: string(models.BanPhaseFirstOnly)},
				{Name: "None", Value: string(models.BanPhaseNone)},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "rank-by",
			Description: "Metric that decides each round",
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Score", Value: string(models.RankByScore)},
				{Name: "Shiny pures", Value: string(models.RankByShinies)},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "difficulty",
			Description: "Difficulty classes allowed in the pool",
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "All", Value: string(models.DifficultyAll)},
				{Name: "Past", Value: string(models.DifficultyPast)},
				{Name: "Present", Value: string(models.DifficultyPresent)},
				{Name: "Future", Value: string(models.DifficultyFuture)},
				{Name: "Beyond", Value: string(models.DifficultyBeyond)},
				{Name: "Future or Beyond", Value: string(models.DifficultyFutureOrBeyond)},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "colors",
			Description: "Chart colors allowed in the pool",
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Both", Value: string(models.ColorBoth)},
				{Name: "Light", Value: string(models.ColorLight)},
				{Name: "Dark", Value: string(models.ColorDark)},
				{Name: "Light (invertible)", Value: string(models.ColorLightInvertible)},
				{Name: "Dark (invertible)", Value: string(models.ColorDarkInvertible)},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "order-by",
			Description: "How the first draft order is decided",
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Rating", Value: string(models.OrderByRating)},
				{Name: "Best 30", Value: string(models.OrderByBest30)},
				{Name: "Random", Value: string(models.OrderByRandom)},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "pool-size",
			Description: "Number of charts in the pool",
		},
	}

	versusOptions := append([]*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "opponent",
			Description: "Who you are playing against",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "teammate",
			Description: "Your teammate for a two-a-side match",
		},
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "opponent-teammate",
			Description: "The opponent's teammate for a two-a-side match",
		},
	}, filterOptions...)

	conflictOptions := append([]*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "opponent",
			Description: "Who you are playing against",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        "inverted",
			Description: "Swap sides for charts with an opposite-side background",
		},
	}, filterOptions...)

	groupOptions := append([]*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "player2",
			Description: "Second contestant",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "player3",
			Description: "Third contestant",
		},
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "player4",
			Description: "Fourth contestant",
		},
	}, filterOptions...)

	return &ContestCommand{
		BaseCommand: BaseCommand{
			Name:        "contest",
			Description: "Rhythm game contest sessions",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "versus",
					Description: "Start a head to head contest",
					Options:     versusOptions,
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "group",
					Description: "Start a free-for-all contest",
					Options:     groupOptions,
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "conflict",
					Description: "Start a light vs dark contest",
					Options:     conflictOptions,
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "info",
					Description: "Show the session running in this thread",
				},
			},
		},
		contestService: contestService,
	}
}

// Handle processes a Discord interaction for the contest command
func (c *ContestCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	userID := i.Member.User.ID

	var err error
	switch data.Options[0].Name {
	case "versus":
		err = c.handleVersus(s, i, userID, data.Options[0].Options)
	case "group":
		err = c.handleGroup(s, i, userID, data.Options[0].Options)
	case "conflict":
		err = c.handleConflict(s, i, userID, data.Options[0].Options)
	case "info":
		err = c.handleInfo(s, i)
	default:
		err = errors.New("unknown subcommand")
	}

	return err
}

// baseInput reads the shared filter options into a session input.
func baseInput(channelID string, options map[string]*discordgo.ApplicationCommandInteractionDataOption) *contest.CreateSessionInput {
	input := &contest.CreateSessionInput{
		ParentChannelID: channelID,
		MinConstant:     defaultMinConstant,
		MaxConstant:     defaultMaxConstant,
		Difficulty:      models.DifficultyAll,
		Color:           models.ColorBoth,
		OrderBy:         models.OrderByRating,
		RankBy:          models.RankByScore,
		BanPhase:        models.BanPhaseNormal,
	}

	if opt, ok := options["rounds"]; ok {
		input.Rounds = int(opt.IntValue())
	}
	if opt, ok := options["min-level"]; ok {
		input.MinConstant = int(opt.FloatValue()*10 + 0.5)
	}
	if opt, ok := options["max-level"]; ok {
		input.MaxConstant = int(opt.FloatValue()*10 + 0.5)
	}
	if opt, ok := options["bans"]; ok {
		input.BanPhase = models.BanPhase(opt.StringValue())
	}
	if opt, ok := options["rank-by"]; ok {
		input.RankBy = models.RankBy(opt.StringValue())
	}
	if opt, ok := options["difficulty"]; ok {
		input.Difficulty = models.DifficultyFilter(opt.StringValue())
	}
	if opt, ok := options["colors"]; ok {
		input.Color = models.ColorFilter(opt.StringValue())
	}
	if opt, ok := options["order-by"]; ok {
		input.OrderBy = models.OrderBy(opt.StringValue())
	}
	if opt, ok := options["pool-size"]; ok {
		input.PoolSize = int(opt.IntValue())
	}
	return input
}

// applyDefaults fills rounds and pool size once the teams are known.
func applyDefaults(input *contest.CreateSessionInput) {
	if input.Rounds <= 0 {
		if input.ContestType == models.ContestTypeGroup {
			contestants := 0
			for _, team := range input.TeamUserIDs {
				contestants += len(team)
			}
			input.Rounds = contestants
		} else {
			input.Rounds = defaultVersusRounds
		}
	}
	if input.PoolSize <= 0 {
		input.PoolSize = input.Rounds * 10
		if input.PoolSize > maxPoolSize {
			input.PoolSize = maxPoolSize
		}
	}
}

func (c *ContestCommand) createSession(s *discordgo.Session, i *discordgo.InteractionCreate, input *contest.CreateSessionInput) error {
	applyDefaults(input)

	out, err := c.contestService.CreateSession(context.Background(), input)
	if err != nil {
		log.Printf("Error creating contest session: %v", err)
		return RespondWithError(s, i, renderServiceError(err))
	}

	return RespondWithMessage(s, i, fmt.Sprintf("Contest started in <#%s>. Good luck!", out.ThreadID))
}

// handleVersus handles the versus subcommand
func (c *ContestCommand) handleVersus(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	opts := commandOptions(options)
	input := baseInput(i.ChannelID, opts)
	input.ContestType = models.ContestTypeVersus

	home := []string{userID}
	away := []string{opts["opponent"].UserValue(s).ID}
	if opt, ok := opts["teammate"]; ok {
		home = append(home, opt.UserValue(s).ID)
	}
	if opt, ok := opts["opponent-teammate"]; ok {
		away = append(away, opt.UserValue(s).ID)
	}
	input.TeamUserIDs = [][]string{home, away}

	return c.createSession(s, i, input)
}

// handleGroup handles the group subcommand, a free-for-all where every
// contestant is their own team
func (c *ContestCommand) handleGroup(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	opts := commandOptions(options)
	input := baseInput(i.ChannelID, opts)
	input.ContestType = models.ContestTypeGroup

	teams := [][]string{{userID}}
	for _, name := range []string{"player2", "player3", "player4"} {
		if opt, ok := opts[name]; ok {
			teams = append(teams, []string{opt.UserValue(s).ID})
		}
	}
	input.TeamUserIDs = teams

	return c.createSession(s, i, input)
}

// handleConflict handles the light vs dark subcommand
func (c *ContestCommand) handleConflict(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	opts := commandOptions(options)
	input := baseInput(i.ChannelID, opts)
	input.ContestType = models.ContestTypeVersus
	input.Color = models.ColorLightVsDark
	if opt, ok := opts["inverted"]; ok && opt.BoolValue() {
		input.Color = models.ColorLightVsDarkInverted
	}

	// The conflict format plays longer, harder sets than a plain versus.
	if _, ok := opts["rounds"]; !ok {
		input.Rounds = conflictRounds
	}
	if _, ok := opts["pool-size"]; !ok {
		input.PoolSize = conflictPoolSize
	}
	if _, ok := opts["min-level"]; !ok {
		input.MinConstant = conflictMinConstant
	}
	if _, ok := opts["max-level"]; !ok {
		input.MaxConstant = conflictMaxConstant
	}
	if _, ok := opts["difficulty"]; !ok {
		input.Difficulty = models.DifficultyFutureOrBeyond
	}

	input.TeamUserIDs = [][]string{{userID}, {opts["opponent"].UserValue(s).ID}}

	return c.createSession(s, i, input)
}

// handleInfo shows the session running in the current thread
func (c *ContestCommand) handleInfo(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	out, err := c.contestService.GetSession(context.Background(), &contest.GetSessionInput{
		ThreadID: i.ChannelID,
	})
	if err != nil {
		return RespondWithError(s, i, renderServiceError(err))
	}
	sess := out.Session

	teams := sess.Teams()
	names := make([]string, len(teams))
	for idx, team := range teams {
		names[idx] = team.Mention(", ")
	}

	status := fmt.Sprintf("Round %d, drafting", sess.Round())
	if ref, ok := sess.AwaitingResults(); ok {
		status = fmt.Sprintf("Round %d, awaiting results for %s", sess.Round(), ref)
	}
	if sess.GameOver() {
		status = "Finished"
	}

	embed := &discordgo.MessageEmbed{
		Title: sess.Name(),
		Color: colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Status", Value: status},
			{Name: "Draft order", Value: strings.Join(names, "\n")},
			{Name: "Rounds", Value: fmt.Sprintf("%d", sess.Rounds()), Inline: true},
			{Name: "Ranked by", Value: rankByLabel(sess.RankBy()), Inline: true},
		},
	}
	return RespondWithEmbed(s, i, embed)
}
