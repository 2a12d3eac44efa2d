package discord

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/nairobininja/fina/internal/models"
	"github.com/nairobininja/fina/internal/services/contest"
)

// Component custom IDs. Draft menus carry the action and batch index so a
// stale menu can be told apart from the pending one.
const (
	draftMenuPrefix  = "draft:"
	sideButtonLight  = "side:light"
	sideButtonDark   = "side:dark"
	scoresModalID    = "scores"
	scoreInputPrefix = "score:"
)

// threadArchiveMinutes keeps session threads around for a day.
const threadArchiveMinutes = 1440

// Notifier delivers contest events to Discord threads. It also implements
// the thread operations the contest service needs, so one value serves as
// both the service's Notifier and its Platform.
type Notifier struct {
	session *discordgo.Session
}

// NewNotifier creates a notifier on top of an open Discord session
func NewNotifier(session *discordgo.Session) (*Notifier, error) {
	if session == nil {
		return nil, errors.New("session cannot be nil")
	}
	return &Notifier{session: session}, nil
}

// SessionCreated posts the welcome embed for a new session
func (n *Notifier) SessionCreated(_ context.Context, meta *contest.SessionMeta) error {
	_, err := n.session.ChannelMessageSendEmbed(meta.ThreadID, sessionEmbed(meta))
	return err
}

// PostChartList posts the chart pool listing and pins it. A failed pin is
// logged but does not fail the call.
func (n *Notifier) PostChartList(_ context.Context, threadID string, charts []*models.Chart) error {
	msg, err := n.session.ChannelMessageSendEmbed(threadID, chartListEmbed(charts))
	if err != nil {
		return err
	}
	if err := n.session.ChannelMessagePin(threadID, msg.ID); err != nil {
		log.Printf("failed to pin chart list in thread %s: %v", threadID, err)
	}
	return nil
}

// RefreshChartList re-posts the chart pool listing after a status change
func (n *Notifier) RefreshChartList(_ context.Context, threadID string, charts []*models.Chart) error {
	_, err := n.session.ChannelMessageSendEmbed(threadID, chartListEmbed(charts))
	return err
}

// RequestDraft prompts the given team with one select menu per option batch
func (n *Notifier) RequestDraft(_ context.Context, threadID string, action contest.DraftAction, team *models.Team, batches [][]contest.DraftOption) error {
	verb := "pick"
	if action == contest.DraftActionBan {
		verb = "ban"
	}

	for batch, options := range batches {
		menuOptions := make([]discordgo.SelectMenuOption, 0, len(options))
		for _, opt := range options {
			menuOptions = append(menuOptions, discordgo.SelectMenuOption{
				Label:       opt.Label,
				Value:       opt.Ref.String(),
				Description: opt.Description,
			})
		}

		content := ""
		if batch == 0 {
			content = fmt.Sprintf("%s, %s a chart.", team.Mention(", "), verb)
		}

		_, err := n.session.ChannelMessageSendComplex(threadID, &discordgo.MessageSend{
			Content: content,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.SelectMenu{
							CustomID:    fmt.Sprintf("%s%s:%d", draftMenuPrefix, action, batch),
							Placeholder: fmt.Sprintf("Chart to %s", verb),
							Options:     menuOptions,
						},
					},
				},
			},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// ChartResolved announces a completed ban or pick
func (n *Notifier) ChartResolved(_ context.Context, threadID string, actorID string, c *models.Chart, action contest.DraftAction) error {
	var content string
	if action == contest.DraftActionBan {
		content = fmt.Sprintf(":no_entry: <@%s> banned **%s** [%s].", actorID, c.Name, models.TierLabel(c.Tier))
	} else {
		content = fmt.Sprintf(":dart: <@%s> picked **%s** [%s]. Play it and report the results!", actorID, c.Name, models.TierLabel(c.Tier))
	}
	_, err := n.session.ChannelMessageSend(threadID, content)
	return err
}

// RoundResults announces the outcome of a round
func (n *Notifier) RoundResults(_ context.Context, threadID string, round int, result models.RoundResult, mode models.ResultMode) error {
	_, err := n.session.ChannelMessageSendEmbed(threadID, roundResultsEmbed(round, result, mode))
	return err
}

// Standings announces the accumulated standings
func (n *Notifier) Standings(_ context.Context, threadID string, rounds int, entries []contest.StandingsEntry) error {
	_, err := n.session.ChannelMessageSendEmbed(threadID, standingsEmbed(rounds, entries))
	return err
}

// MatchOver announces the end of the contest
func (n *Notifier) MatchOver(_ context.Context, threadID string) error {
	_, err := n.session.ChannelMessageSend(threadID, ":trophy: The contest is over, thanks for playing!")
	return err
}

// RequestSideChoice prompts the given contestant to choose a side
func (n *Notifier) RequestSideChoice(_ context.Context, threadID string, userID string) error {
	_, err := n.session.ChannelMessageSendComplex(threadID, &discordgo.MessageSend{
		Content: fmt.Sprintf("<@%s>, choose your side.", userID),
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Light",
						Style:    discordgo.SecondaryButton,
						CustomID: sideButtonLight,
						Emoji:    &discordgo.ComponentEmoji{Name: "🌕"},
					},
					discordgo.Button{
						Label:    "Conflict",
						Style:    discordgo.PrimaryButton,
						CustomID: sideButtonDark,
						Emoji:    &discordgo.ComponentEmoji{Name: "🌑"},
					},
				},
			},
		},
	})
	return err
}

// AnnounceSides announces which team plays which side
func (n *Notifier) AnnounceSides(_ context.Context, threadID string, light *models.Team, dark *models.Team) error {
	content := fmt.Sprintf("🌕 %s plays Light.\n🌑 %s plays Conflict.",
		light.Mention(", "), dark.Mention(", "))
	_, err := n.session.ChannelMessageSend(threadID, content)
	return err
}

// Warn posts a non-fatal warning to the session thread
func (n *Notifier) Warn(_ context.Context, threadID string, message string) error {
	_, err := n.session.ChannelMessageSendEmbed(threadID, &discordgo.MessageEmbed{
		Description: ":warning: " + message,
		Color:       colorWarning,
	})
	return err
}

// CreateThread opens a private thread for a new session
func (n *Notifier) CreateThread(_ context.Context, parentChannelID string, name string) (string, error) {
	thread, err := n.session.ThreadStartComplex(parentChannelID, &discordgo.ThreadStart{
		Name:                name,
		AutoArchiveDuration: threadArchiveMinutes,
		Type:                discordgo.ChannelTypeGuildPrivateThread,
		Invitable:           false,
	})
	if err != nil {
		return "", err
	}
	return thread.ID, nil
}

// AddThreadMember adds a user to a session thread
func (n *Notifier) AddThreadMember(_ context.Context, threadID string, userID string) error {
	return n.session.ThreadMemberAdd(threadID, userID)
}

// RemoveThread deletes a session thread
func (n *Notifier) RemoveThread(_ context.Context, threadID string) error {
	_, err := n.session.ChannelDelete(threadID)
	return err
}

// RenameThread renames a session thread
func (n *Notifier) RenameThread(_ context.Context, threadID string, name string) error {
	_, err := n.session.ChannelEdit(threadID, &discordgo.ChannelEdit{Name: name})
	return err
}
