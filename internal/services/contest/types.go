package contest

import (
	"context"
	"time"

	"github.com/nairobininja/fina/internal/arcapi"
	"github.com/nairobininja/fina/internal/common/clock"
	"github.com/nairobininja/fina/internal/common/shuffle"
	"github.com/nairobininja/fina/internal/common/uuid"
	"github.com/nairobininja/fina/internal/models"
	"github.com/nairobininja/fina/internal/repositories/chart"
	"github.com/nairobininja/fina/internal/repositories/profile"
)

const (
	// DefaultSessionTTL is how long an idle session stays in the registry.
	DefaultSessionTTL = 2 * time.Hour

	// DefaultSweepInterval is how often expired sessions are reaped.
	DefaultSweepInterval = time.Minute

	// DraftBatchSize is the maximum number of options per draft menu.
	DraftBatchSize = 25
)

// DraftAction identifies what a draft choice does to a chart.
type DraftAction string

const (
	DraftActionBan  DraftAction = "ban"
	DraftActionPick DraftAction = "pick"
)

// DraftOption is a single selectable chart in a draft menu.
type DraftOption struct {
	// Ref identifies the chart
	Ref models.ChartRef

	// Label is the song name shown in the menu
	Label string

	// Description is the difficulty label shown under the song name
	Description string
}

// StandingsEntry is one team's accumulated points or wins.
type StandingsEntry struct {
	Team   *models.Team
	Points int
}

// SessionMeta describes a session for the welcome message.
type SessionMeta struct {
	SessionID   string
	ThreadID    string
	Name        string
	ContestType models.ContestType
	Rounds      int
	MinConstant int
	MaxConstant int
	OrderBy     models.OrderBy
	RankBy      models.RankBy
	BanPhase    models.BanPhase
	Color       models.ColorFilter
}

// Notifier delivers session events to the platform channel. Implementations
// must not call back into the service.
//
//go:generate mockgen -destination=mocks/mock_notifier.go -package=mocks github.com/nairobininja/fina/internal/services/contest Notifier
type Notifier interface {
	// SessionCreated posts the welcome message for a new session
	SessionCreated(ctx context.Context, meta *SessionMeta) error

	// PostChartList posts the chart pool listing and pins it
	PostChartList(ctx context.Context, threadID string, charts []*models.Chart) error

	// RefreshChartList re-posts the chart pool listing after a status change
	RefreshChartList(ctx context.Context, threadID string, charts []*models.Chart) error

	// RequestDraft prompts the given team to ban or pick a chart
	RequestDraft(ctx context.Context, threadID string, action DraftAction, team *models.Team, batches [][]DraftOption) error

	// ChartResolved announces a completed ban or pick
	ChartResolved(ctx context.Context, threadID string, actorID string, c *models.Chart, action DraftAction) error

	// RoundResults announces the outcome of a round
	RoundResults(ctx context.Context, threadID string, round int, result models.RoundResult, mode models.ResultMode) error

	// Standings announces the accumulated standings
	Standings(ctx context.Context, threadID string, rounds int, entries []StandingsEntry) error

	// MatchOver announces the end of the contest
	MatchOver(ctx context.Context, threadID string) error

	// RequestSideChoice prompts the given contestant to choose a side
	RequestSideChoice(ctx context.Context, threadID string, userID string) error

	// AnnounceSides announces which team plays which side
	AnnounceSides(ctx context.Context, threadID string, light *models.Team, dark *models.Team) error

	// Warn posts a non-fatal warning to the session thread
	Warn(ctx context.Context, threadID string, message string) error
}

// Platform abstracts the thread operations the service needs.
//
//go:generate mockgen -destination=mocks/mock_platform.go -package=mocks github.com/nairobininja/fina/internal/services/contest Platform
type Platform interface {
	// CreateThread creates a thread under the parent channel and returns its ID
	CreateThread(ctx context.Context, parentChannelID string, name string) (string, error)

	// AddThreadMember adds a user to a thread
	AddThreadMember(ctx context.Context, threadID string, userID string) error

	// RemoveThread deletes a thread
	RemoveThread(ctx context.Context, threadID string) error

	// RenameThread renames a thread
	RenameThread(ctx context.Context, threadID string, name string) error
}

// Config holds the dependencies for the contest service
type Config struct {
	ProfileRepo   profile.Repository
	ChartRepo     chart.Repository
	ScoreClient   arcapi.Client
	Notifier      Notifier
	Platform      Platform
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Shuffler      shuffle.Shuffler

	// SessionTTL overrides DefaultSessionTTL when positive
	SessionTTL time.Duration

	// SweepInterval overrides DefaultSweepInterval when positive
	SweepInterval time.Duration
}

// CreateSessionInput holds the parameters for creating a session
type CreateSessionInput struct {
	// ParentChannelID is the channel the session thread is created under
	ParentChannelID string

	// TeamUserIDs lists each team's contestants by user ID
	TeamUserIDs [][]string

	ContestType models.ContestType

	// Rounds is the number of picked charts needed to finish the contest
	Rounds int

	// PoolSize is the requested chart pool size
	PoolSize int

	// MinConstant and MaxConstant bound the pool in tenths of a unit
	MinConstant int
	MaxConstant int

	Difficulty models.DifficultyFilter
	Color      models.ColorFilter
	OrderBy    models.OrderBy
	RankBy     models.RankBy
	BanPhase   models.BanPhase

	// ResultMode selects how round results are reported. Defaults to
	// ResultModeScore.
	ResultMode models.ResultMode
}

// CreateSessionOutput holds the result of creating a session
type CreateSessionOutput struct {
	ThreadID string
	Session  *Session
}

// GetSessionInput holds the parameters for looking up a session
type GetSessionInput struct {
	ThreadID string
}

// GetSessionOutput holds the result of looking up a session
type GetSessionOutput struct {
	Session *Session
}

// ProcessDraftChoiceInput holds the parameters for a ban or pick
type ProcessDraftChoiceInput struct {
	ThreadID string
	ActorID  string
	Action   DraftAction
	Ref      models.ChartRef
}

// ProcessSideChoiceInput holds the parameters for a side choice
type ProcessSideChoiceInput struct {
	ThreadID string
	ActorID  string
	Side     models.Allegiance
}

// ContestantScore is one contestant's manually reported score
type ContestantScore struct {
	UserID string
	Score  int
}

// SubmitManualScoresInput holds the parameters for manual result entry
type SubmitManualScoresInput struct {
	ThreadID string
	Scores   []ContestantScore
}

// CollectResultsInput holds the parameters for automated result collection
type CollectResultsInput struct {
	ThreadID string
}

// LinkProfileInput holds the parameters for linking a profile
type LinkProfileInput struct {
	UserID    string
	Name      string
	AccountID string
	Rating    int
}

// SetOwnedPacksInput holds the parameters for declaring owned song packs
type SetOwnedPacksInput struct {
	UserID string
	Packs  []string
}

// SetOwnedPacksOutput reports how much of the catalog the packs cover
type SetOwnedPacksOutput struct {
	ChartCount int
}

// SyncProfileInput holds the parameters for refreshing a profile
type SyncProfileInput struct {
	UserID string
}

// SyncProfileOutput holds the refreshed profile
type SyncProfileOutput struct {
	Profile *models.Contestant
}
