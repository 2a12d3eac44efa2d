package contest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/nairobininja/fina/internal/arcapi"
	"github.com/nairobininja/fina/internal/common/clock"
	"github.com/nairobininja/fina/internal/common/shuffle"
	"github.com/nairobininja/fina/internal/common/uuid"
	"github.com/nairobininja/fina/internal/models"
	"github.com/nairobininja/fina/internal/repositories/chart"
	"github.com/nairobininja/fina/internal/repositories/profile"
)

type registryEntry struct {
	session   *Session
	expiresAt time.Time
}

type service struct {
	profileRepo profile.Repository
	chartRepo   chart.Repository
	scoreClient arcapi.Client
	notifier    Notifier
	platform    Platform
	clock       clock.Clock
	uuider      uuid.UUID
	shuffler    shuffle.Shuffler

	ttl           time.Duration
	sweepInterval time.Duration

	mu       sync.RWMutex
	sessions map[string]*registryEntry

	stopOnce sync.Once
	stop     chan struct{}
}

// New creates a new contest service and starts its registry sweeper
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.ProfileRepo == nil {
		return nil, ErrNilProfileRepo
	}
	if cfg.ChartRepo == nil {
		return nil, ErrNilChartRepo
	}
	if cfg.ScoreClient == nil {
		return nil, ErrNilScoreClient
	}
	if cfg.Notifier == nil {
		return nil, ErrNilNotifier
	}
	if cfg.Platform == nil {
		return nil, ErrNilPlatform
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}
	if cfg.Shuffler == nil {
		return nil, ErrNilShuffler
	}

	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	sweepInterval := cfg.SweepInterval
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}

	svc := &service{
		profileRepo:   cfg.ProfileRepo,
		chartRepo:     cfg.ChartRepo,
		scoreClient:   cfg.ScoreClient,
		notifier:      cfg.Notifier,
		platform:      cfg.Platform,
		clock:         cfg.Clock,
		uuider:        cfg.UUIDGenerator,
		shuffler:      cfg.Shuffler,
		ttl:           ttl,
		sweepInterval: sweepInterval,
		sessions:      make(map[string]*registryEntry),
		stop:          make(chan struct{}),
	}
	go svc.sweepLoop()
	return svc, nil
}

// Close stops the registry sweeper. Safe to call more than once.
func (s *service) Close() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

func (s *service) sweepLoop() {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *service) sweep() {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for threadID, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, threadID)
			log.Printf("expired contest session %s in thread %s", entry.session.ID(), threadID)
		}
	}
}

// CreateSession resolves the contestants' profiles, builds the chart pool,
// opens a session thread and starts the draft. Dual side contests prompt
// for a side choice instead of drafting immediately.
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if len(input.TeamUserIDs) < 2 {
		return nil, errors.New("a contest needs at least two teams")
	}
	if input.Rounds < 1 {
		return nil, errors.New("a contest needs at least one round")
	}
	if input.Color.IsDualSide() && len(input.TeamUserIDs) != 2 {
		return nil, errors.New("a dual side contest needs exactly two teams")
	}

	var allUserIDs []string
	seen := make(map[string]struct{})
	for _, members := range input.TeamUserIDs {
		if len(members) == 0 {
			return nil, errors.New("a team needs at least one contestant")
		}
		for _, userID := range members {
			if _, ok := seen[userID]; ok {
				return nil, fmt.Errorf("%w: <@%s>", ErrDuplicateContestant, userID)
			}
			seen[userID] = struct{}{}
			allUserIDs = append(allUserIDs, userID)
		}
	}

	teams, err := s.buildTeams(ctx, input)
	if err != nil {
		return nil, err
	}

	pool, err := s.buildPool(ctx, input, allUserIDs)
	if err != nil {
		return nil, err
	}

	threadID, err := s.platform.CreateThread(ctx, input.ParentChannelID, threadName(teams))
	if err != nil {
		return nil, fmt.Errorf("failed to create the session thread: %w", err)
	}
	for _, userID := range allUserIDs {
		if err := s.platform.AddThreadMember(ctx, threadID, userID); err != nil {
			if removeErr := s.platform.RemoveThread(ctx, threadID); removeErr != nil {
				log.Printf("failed to remove thread %s: %v", threadID, removeErr)
			}
			return nil, fmt.Errorf("failed to add <@%s> to the session thread: %w", userID, err)
		}
	}

	sess, downgraded := newSession(s.uuider.NewUUID(), threadID, input, teams, pool, s.notifier, s.platform)

	if err := s.notifier.PostChartList(ctx, threadID, sess.Charts()); err != nil {
		log.Printf("failed to post chart list for session %s: %v", sess.ID(), err)
	}
	if downgraded {
		if err := s.notifier.Warn(ctx, threadID, "Insufficient number of charts for the requested ban phase type."); err != nil {
			log.Printf("failed to post ban phase warning for session %s: %v", sess.ID(), err)
		}
	}

	s.mu.Lock()
	s.sessions[threadID] = &registryEntry{
		session:   sess,
		expiresAt: s.clock.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	if err := s.notifier.SessionCreated(ctx, sess.meta()); err != nil {
		log.Printf("failed to post welcome message for session %s: %v", sess.ID(), err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if input.Color.IsDualSide() {
		chooser := sess.teams[1].UserIDs()[0]
		if err := s.notifier.RequestSideChoice(ctx, threadID, chooser); err != nil {
			return nil, fmt.Errorf("failed to request the side choice: %w", err)
		}
	} else if err := sess.start(ctx); err != nil {
		return nil, err
	}

	return &CreateSessionOutput{ThreadID: threadID, Session: sess}, nil
}

// buildTeams resolves each team's profiles and orders the initial rotation.
func (s *service) buildTeams(ctx context.Context, input *CreateSessionInput) ([]*models.Team, error) {
	teams := make([]*models.Team, 0, len(input.TeamUserIDs))
	for _, members := range input.TeamUserIDs {
		out, err := s.profileRepo.GetProfiles(ctx, &profile.GetProfilesInput{UserIDs: members})
		if err != nil {
			if errors.Is(err, profile.ErrProfileNotFound) {
				return nil, fmt.Errorf("%w: %v", ErrMissingProfile, err)
			}
			return nil, fmt.Errorf("failed to load contestant profiles: %w", err)
		}
		teams = append(teams, models.NewTeam(out.Profiles))
	}

	switch input.OrderBy {
	case models.OrderByRating:
		sort.SliceStable(teams, func(i, j int) bool {
			return teams[i].RatingSum() < teams[j].RatingSum()
		})
	case models.OrderByBest30:
		sort.SliceStable(teams, func(i, j int) bool {
			return teams[i].Best30Sum() < teams[j].Best30Sum()
		})
	default:
		s.shuffler.Shuffle(len(teams), func(i, j int) {
			teams[i], teams[j] = teams[j], teams[i]
		})
	}
	return teams, nil
}

// GetSession looks up the live session for a thread. Expired sessions are
// dropped lazily here as well as by the sweeper.
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	s.mu.RLock()
	entry, ok := s.sessions[input.ThreadID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNoActiveSession
	}

	if s.clock.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, input.ThreadID)
		s.mu.Unlock()
		return nil, ErrNoActiveSession
	}

	return &GetSessionOutput{Session: entry.session}, nil
}

// ProcessDraftChoice applies a ban or pick. A session already processing
// another action rejects the choice with ErrSessionBusy.
func (s *service) ProcessDraftChoice(ctx context.Context, input *ProcessDraftChoiceInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	out, err := s.GetSession(ctx, &GetSessionInput{ThreadID: input.ThreadID})
	if err != nil {
		return err
	}
	sess := out.Session

	if !sess.mu.TryLock() {
		return ErrSessionBusy
	}
	defer sess.mu.Unlock()

	return sess.processDraftChoice(ctx, input.ActorID, input.Action, input.Ref)
}

// ProcessSideChoice applies a side choice in a dual side contest.
func (s *service) ProcessSideChoice(ctx context.Context, input *ProcessSideChoiceInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	out, err := s.GetSession(ctx, &GetSessionInput{ThreadID: input.ThreadID})
	if err != nil {
		return err
	}
	sess := out.Session

	if !sess.mu.TryLock() {
		return ErrSessionBusy
	}
	defer sess.mu.Unlock()

	return sess.processSideChoice(ctx, input.ActorID, input.Side)
}
