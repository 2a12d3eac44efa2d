package contest

import "context"

// Service defines the interface for the contest service
//
//go:generate mockgen -destination=mocks/mock_service.go -package=mocks github.com/nairobininja/fina/internal/services/contest Service
type Service interface {
	// CreateSession builds the teams and the chart pool, opens a session
	// thread and starts the draft
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// GetSession looks up the live session for a thread
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// ProcessDraftChoice applies a ban or pick to the session's current turn
	ProcessDraftChoice(ctx context.Context, input *ProcessDraftChoiceInput) error

	// ProcessSideChoice applies a side choice in a dual side contest
	ProcessSideChoice(ctx context.Context, input *ProcessSideChoiceInput) error

	// SubmitManualScores records a round result from manually entered scores
	SubmitManualScores(ctx context.Context, input *SubmitManualScoresInput) error

	// CollectResults records a round result from each contestant's most
	// recent play
	CollectResults(ctx context.Context, input *CollectResultsInput) error

	// LinkProfile stores a contestant's score API account
	LinkProfile(ctx context.Context, input *LinkProfileInput) error

	// SetOwnedPacks replaces a contestant's owned charts with the charts
	// of the given song packs
	SetOwnedPacks(ctx context.Context, input *SetOwnedPacksInput) (*SetOwnedPacksOutput, error)

	// SyncProfile refreshes a contestant's best-30 average from the score API
	SyncProfile(ctx context.Context, input *SyncProfileInput) (*SyncProfileOutput, error)

	// Close stops the session registry's background sweeper
	Close()
}
