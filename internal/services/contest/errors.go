package contest

// ContestError is a custom error type for contest-related errors
type ContestError string

// Error implements the error interface
func (e ContestError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNoActiveSession     ContestError = "no active contest session in this channel"
	ErrSessionBusy         ContestError = "this session is already processing another action"
	ErrAwaitingResults     ContestError = "this session is awaiting results"
	ErrNotAwaitingResults  ContestError = "this session is not awaiting results"
	ErrNotYourTurn         ContestError = "it's not your turn"
	ErrUnknownContestant   ContestError = "contestant is not part of this session"
	ErrChartNotFound       ContestError = "unable to find the chart"
	ErrChartResolved       ContestError = "this chart has already been banned or picked"
	ErrWrongSide           ContestError = "this chart belongs to the wrong side"
	ErrDuplicateContestant ContestError = "the list of contestants cannot have duplicates"
	ErrMissingProfile      ContestError = "contestant has not linked their profile"
	ErrInsufficientCharts  ContestError = "insufficient number of charts for this contest type"
	ErrDrawNotAllowed      ContestError = "draws are not allowed, replay the round"
	ErrSongMismatch        ContestError = "most recent play does not match the current chart"
	ErrManualUnsupported   ContestError = "manual results are only supported for contests ranked by score"
	ErrNoSideChoice        ContestError = "this contest has no side choice"
	ErrSideAlreadyChosen   ContestError = "the sides have already been chosen"
	ErrNilConfig           ContestError = "config cannot be nil"
	ErrNilProfileRepo      ContestError = "profile repository cannot be nil"
	ErrNilChartRepo        ContestError = "chart repository cannot be nil"
	ErrNilScoreClient      ContestError = "score client cannot be nil"
	ErrNilNotifier         ContestError = "notifier cannot be nil"
	ErrNilPlatform         ContestError = "platform cannot be nil"
	ErrNilClock            ContestError = "clock cannot be nil"
	ErrNilShuffler         ContestError = "shuffler cannot be nil"
	ErrNilUUIDGenerator    ContestError = "UUID generator cannot be nil"
)
