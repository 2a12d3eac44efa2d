package contest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/nairobininja/fina/internal/arcapi"
	arcapiMocks "github.com/nairobininja/fina/internal/arcapi/mocks"
	clockMocks "github.com/nairobininja/fina/internal/common/clock/mocks"
	uuidMocks "github.com/nairobininja/fina/internal/common/uuid/mocks"
	"github.com/nairobininja/fina/internal/models"
	chartRepo "github.com/nairobininja/fina/internal/repositories/chart"
	chartMocks "github.com/nairobininja/fina/internal/repositories/chart/mocks"
	profileRepo "github.com/nairobininja/fina/internal/repositories/profile"
	profileMocks "github.com/nairobininja/fina/internal/repositories/profile/mocks"
)

type ContestServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockProfileRepo *profileMocks.MockRepository
	mockChartRepo   *chartMocks.MockRepository
	mockScoreClient *arcapiMocks.MockClient
	mockClock       *clockMocks.MockClock
	mockUUID        *uuidMocks.MockUUID
	notifier        *fakeNotifier
	platform        *fakePlatform
	svc             Service
	ctx             context.Context

	// Test data
	testTime time.Time
	now      time.Time
	profiles map[string]*models.Contestant

	// Per-test knobs read by the mock resolvers
	poolCharts []*models.Chart
	playSong   models.ChartRef
	playScores map[string]int
	playShiny  map[string]int
}

func (s *ContestServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockProfileRepo = profileMocks.NewMockRepository(s.mockCtrl)
	s.mockChartRepo = chartMocks.NewMockRepository(s.mockCtrl)
	s.mockScoreClient = arcapiMocks.NewMockClient(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.notifier = &fakeNotifier{}
	s.platform = newFakePlatform()
	s.ctx = context.Background()

	s.testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = s.testTime

	s.profiles = map[string]*models.Contestant{
		"u-alice": {UserID: "u-alice", Name: "alice", AccountID: "000000001", Rating: 1150},
		"u-bob":   {UserID: "u-bob", Name: "bob", AccountID: "000000002", Rating: 1225},
		"u-carol": {UserID: "u-carol", Name: "carol", AccountID: "000000003", Rating: 1300},
		"u-dave":  {UserID: "u-dave", Name: "dave", AccountID: "000000004", Rating: 1375},
	}
	s.playScores = make(map[string]int)
	s.playShiny = make(map[string]int)

	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time {
		return s.now
	}).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().Return("session-1").AnyTimes()

	s.mockProfileRepo.EXPECT().GetProfiles(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *profileRepo.GetProfilesInput) (*profileRepo.GetProfilesOutput, error) {
			out := &profileRepo.GetProfilesOutput{}
			for _, userID := range input.UserIDs {
				p, ok := s.profiles[userID]
				if !ok {
					return nil, fmt.Errorf("%w: %s", profileRepo.ErrProfileNotFound, userID)
				}
				out.Profiles = append(out.Profiles, p)
			}
			return out, nil
		}).AnyTimes()

	s.mockChartRepo.EXPECT().QueryCommonCharts(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *chartRepo.QueryCommonChartsInput) (*chartRepo.QueryCommonChartsOutput, error) {
			return &chartRepo.QueryCommonChartsOutput{Charts: s.poolCharts}, nil
		}).AnyTimes()

	s.mockScoreClient.EXPECT().GetRecentPlay(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, accountID string) (*arcapi.RecentPlay, error) {
			return &arcapi.RecentPlay{
				SongKey:    s.playSong.SongKey,
				Tier:       s.playSong.Tier,
				Score:      s.playScores[accountID],
				ShinyPures: s.playShiny[accountID],
			}, nil
		}).AnyTimes()

	svc, err := New(&Config{
		ProfileRepo:   s.mockProfileRepo,
		ChartRepo:     s.mockChartRepo,
		ScoreClient:   s.mockScoreClient,
		Notifier:      s.notifier,
		Platform:      s.platform,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		Shuffler:      noShuffle{},
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *ContestServiceTestSuite) TearDownTest() {
	s.svc.Close()
	s.mockCtrl.Finish()
}

func TestContestServiceSuite(t *testing.T) {
	suite.Run(t, new(ContestServiceTestSuite))
}

func chartFixture(name, songKey string, tier int, color models.ChartColor) *models.Chart {
	return &models.Chart{
		Name:     name,
		SongKey:  songKey,
		Tier:     tier,
		Constant: 100,
		Color:    color,
	}
}

func versusInput(teams [][]string, rounds int, banPhase models.BanPhase) *CreateSessionInput {
	return &CreateSessionInput{
		ParentChannelID: "channel-1",
		TeamUserIDs:     teams,
		ContestType:     models.ContestTypeVersus,
		Rounds:          rounds,
		PoolSize:        50,
		MinConstant:     90,
		MaxConstant:     110,
		Difficulty:      models.DifficultyAll,
		Color:           models.ColorBoth,
		OrderBy:         models.OrderByRating,
		RankBy:          models.RankByScore,
		BanPhase:        banPhase,
	}
}

func (s *ContestServiceTestSuite) createSession(input *CreateSessionInput, pool []*models.Chart) *Session {
	s.poolCharts = pool
	out, err := s.svc.CreateSession(s.ctx, input)
	s.Require().NoError(err)
	s.Require().NotNil(out.Session)
	return out.Session
}

// chooseFromLastDraft answers the pending draft prompt with its first option.
func (s *ContestServiceTestSuite) chooseFromLastDraft(threadID, actorID string) error {
	req := s.notifier.lastDraft()
	return s.svc.ProcessDraftChoice(s.ctx, &ProcessDraftChoiceInput{
		ThreadID: threadID,
		ActorID:  actorID,
		Action:   req.action,
		Ref:      req.batches[0][0].Ref,
	})
}

func (s *ContestServiceTestSuite) collect(threadID string, scores map[string]int) error {
	sess, err := s.svc.GetSession(s.ctx, &GetSessionInput{ThreadID: threadID})
	s.Require().NoError(err)
	awaiting, ok := sess.Session.AwaitingResults()
	s.Require().True(ok)

	s.playSong = awaiting
	s.playScores = scores
	return s.svc.CollectResults(s.ctx, &CollectResultsInput{ThreadID: threadID})
}

func (s *ContestServiceTestSuite) TestCreateSessionValidation() {
	_, err := s.svc.CreateSession(s.ctx, nil)
	s.Error(err)

	_, err = s.svc.CreateSession(s.ctx, versusInput([][]string{{"u-alice"}}, 3, models.BanPhaseNone))
	s.Error(err)

	_, err = s.svc.CreateSession(s.ctx, versusInput([][]string{{"u-alice"}, {"u-alice"}}, 3, models.BanPhaseNone))
	s.ErrorIs(err, ErrDuplicateContestant)

	input := versusInput([][]string{{"u-alice"}, {"u-bob"}}, 0, models.BanPhaseNone)
	_, err = s.svc.CreateSession(s.ctx, input)
	s.Error(err)
}

func (s *ContestServiceTestSuite) TestCreateSessionRollsBackThread() {
	pool := []*models.Chart{
		chartFixture("Chart A", "a", 2, models.ChartColorLight),
		chartFixture("Chart B", "b", 2, models.ChartColorLight),
		chartFixture("Chart C", "c", 2, models.ChartColorLight),
	}
	s.poolCharts = pool
	s.platform.failMember = "u-bob"

	_, err := s.svc.CreateSession(s.ctx, versusInput([][]string{{"u-alice"}, {"u-bob"}}, 3, models.BanPhaseNone))
	s.Error(err)

	// The half-built thread was torn down and no session registered.
	s.Equal([]string{"thread-1"}, s.platform.removed)
	_, err = s.svc.GetSession(s.ctx, &GetSessionInput{ThreadID: "thread-1"})
	s.ErrorIs(err, ErrNoActiveSession)
}

func (s *ContestServiceTestSuite) TestCreateSessionFailsWhenDraftUndeliverable() {
	pool := []*models.Chart{
		chartFixture("Chart A", "a", 2, models.ChartColorLight),
		chartFixture("Chart B", "b", 2, models.ChartColorLight),
		chartFixture("Chart C", "c", 2, models.ChartColorLight),
	}
	s.poolCharts = pool
	s.notifier.failRequest = true

	_, err := s.svc.CreateSession(s.ctx, versusInput([][]string{{"u-alice"}, {"u-bob"}}, 3, models.BanPhaseNone))
	s.Error(err)
}

func (s *ContestServiceTestSuite) TestCreateSessionMissingProfile() {
	_, err := s.svc.CreateSession(s.ctx, versusInput([][]string{{"u-alice"}, {"u-nobody"}}, 3, models.BanPhaseNone))
	s.ErrorIs(err, ErrMissingProfile)
}

func (s *ContestServiceTestSuite) TestCreateSessionStartsWithPick() {
	pool := []*models.Chart{
		chartFixture("Brand New World", "brandnewworld", 2, models.ChartColorLight),
		chartFixture("Axium Crisis", "axiumcrisis", 2, models.ChartColorLight),
		chartFixture("Grievous Lady", "grievouslady", 3, models.ChartColorDark),
		chartFixture("Fracture Ray", "fractureray", 2, models.ChartColorLight),
	}
	sess := s.createSession(versusInput([][]string{{"u-bob"}, {"u-alice"}}, 3, models.BanPhaseNone), pool)

	s.Equal("thread-1", sess.ThreadID())
	s.Equal(1, s.notifier.chartLists)
	s.Require().Len(s.notifier.created, 1)
	s.Equal(models.BanPhaseNone, s.notifier.created[0].BanPhase)
	s.ElementsMatch([]string{"u-alice", "u-bob"}, s.platform.members["thread-1"])

	// Lowest rating sum drafts first.
	s.Require().Len(s.notifier.drafts, 1)
	draft := s.notifier.lastDraft()
	s.Equal(DraftActionPick, draft.action)
	s.True(draft.team.HasUser("u-alice"))

	// The pool is listed alphabetically.
	s.Require().Len(draft.batches, 1)
	s.Equal("Axium Crisis", draft.batches[0][0].Label)
	s.Empty(s.notifier.warnings)
}

func (s *ContestServiceTestSuite) TestNormalBanSkipsLeadingTeam() {
	pool := []*models.Chart{
		chartFixture("Chart A", "a", 2, models.ChartColorLight),
		chartFixture("Chart B", "b", 2, models.ChartColorLight),
		chartFixture("Chart C", "c", 2, models.ChartColorLight),
		chartFixture("Chart D", "d", 2, models.ChartColorLight),
	}
	s.createSession(versusInput([][]string{{"u-alice"}, {"u-bob"}}, 2, models.BanPhaseNormal), pool)

	// Alice would draft first, but under the normal ban phase she gives up
	// her ban and bob bans instead.
	s.Empty(s.notifier.warnings)
	draft := s.notifier.lastDraft()
	s.Equal(DraftActionBan, draft.action)
	s.True(draft.team.HasUser("u-bob"))

	// Out-of-turn choices are rejected before any state changes.
	err := s.chooseFromLastDraft("thread-1", "u-alice")
	s.ErrorIs(err, ErrNotYourTurn)

	bannedRef := draft.batches[0][0].Ref
	s.Require().NoError(s.chooseFromLastDraft("thread-1", "u-bob"))

	// After the ban the rotation comes back around to alice for the pick.
	draft = s.notifier.lastDraft()
	s.Equal(DraftActionPick, draft.action)
	s.True(draft.team.HasUser("u-alice"))

	// The banned chart is no longer offered or acceptable.
	for _, opt := range draft.batches[0] {
		s.NotEqual(bannedRef, opt.Ref)
	}
	err = s.svc.ProcessDraftChoice(s.ctx, &ProcessDraftChoiceInput{
		ThreadID: "thread-1",
		ActorID:  "u-alice",
		Action:   DraftActionPick,
		Ref:      bannedRef,
	})
	s.ErrorIs(err, ErrChartResolved)
}

func (s *ContestServiceTestSuite) TestBanPhaseDowngradesToNone() {
	// Four charts cannot sustain any ban phase over three rounds with two
	// teams, so the cascade lands on no bans with a single warning.
	pool := []*models.Chart{
		chartFixture("Chart A", "a", 2, models.ChartColorLight),
		chartFixture("Chart B", "b", 2, models.ChartColorLight),
		chartFixture("Chart C", "c", 2, models.ChartColorLight),
		chartFixture("Chart D", "d", 2, models.ChartColorLight),
	}
	s.createSession(versusInput([][]string{{"u-alice"}, {"u-bob"}}, 3, models.BanPhaseClassic), pool)

	s.Require().Len(s.notifier.warnings, 1)
	s.Require().Len(s.notifier.created, 1)
	s.Equal(models.BanPhaseNone, s.notifier.created[0].BanPhase)
	s.Equal(DraftActionPick, s.notifier.lastDraft().action)
}

func (s *ContestServiceTestSuite) TestBanPhaseDowngradesToFirstPhase() {
	// Five charts sustain the first phase over three rounds with two teams
	// but not classic or normal bans.
	pool := []*models.Chart{
		chartFixture("Chart A", "a", 2, models.ChartColorLight),
		chartFixture("Chart B", "b", 2, models.ChartColorLight),
		chartFixture("Chart C", "c", 2, models.ChartColorLight),
		chartFixture("Chart D", "d", 2, models.ChartColorLight),
		chartFixture("Chart E", "e", 2, models.ChartColorLight),
	}
	s.createSession(versusInput([][]string{{"u-alice"}, {"u-bob"}}, 3, models.BanPhaseClassic), pool)

	s.Require().Len(s.notifier.warnings, 1)
	s.Equal(models.BanPhaseFirstOnly, s.notifier.created[0].BanPhase)

	// Round one: both teams ban, then a pick.
	s.Equal(DraftActionBan, s.notifier.lastDraft().action)
	s.Require().NoError(s.chooseFromLastDraft("thread-1", "u-alice"))
	s.Equal(DraftActionBan, s.notifier.lastDraft().action)
	s.Require().NoError(s.chooseFromLastDraft("thread-1", "u-bob"))
	s.Equal(DraftActionPick, s.notifier.lastDraft().action)
	s.Require().NoError(s.chooseFromLastDraft("thread-1", "u-alice"))

	// Later rounds skip straight to the pick.
	s.Require().NoError(s.collect("thread-1", map[string]int{
		"000000001": 9_900_000,
		"000000002": 9_800_000,
	}))
	s.Equal(DraftActionPick, s.notifier.lastDraft().action)
}

func (s *ContestServiceTestSuite) TestVersusMatchEndsOnMajority() {
	pool := []*models.Chart{
		chartFixture("Chart A", "a", 2, models.ChartColorLight),
		chartFixture("Chart B", "b", 2, models.ChartColorLight),
		chartFixture("Chart C", "c", 2, models.ChartColorLight),
		chartFixture("Chart D", "d", 2, models.ChartColorLight),
	}
	sess := s.createSession(versusInput([][]string{{"u-alice"}, {"u-bob"}}, 3, models.BanPhaseNone), pool)

	// Round one: alice picks and wins.
	s.Require().NoError(s.chooseFromLastDraft("thread-1", "u-alice"))
	s.Require().NoError(s.collect("thread-1", map[string]int{
		"000000001": 9_900_000,
		"000000002": 9_800_000,
	}))

	s.Require().Len(s.notifier.rounds, 1)
	s.Equal(models.ResultModeScore, s.notifier.rounds[0].mode)
	s.True(s.notifier.rounds[0].result[0].Team.HasUser("u-alice"))
	s.False(sess.GameOver())

	// The loser drafts first in round two.
	draft := s.notifier.lastDraft()
	s.Equal(DraftActionPick, draft.action)
	s.True(draft.team.HasUser("u-bob"))

	// Round two: alice wins again and holds the majority of three rounds.
	s.Require().NoError(s.chooseFromLastDraft("thread-1", "u-bob"))
	s.Require().NoError(s.collect("thread-1", map[string]int{
		"000000001": 9_950_000,
		"000000002": 9_700_000,
	}))

	s.True(sess.GameOver())
	s.Equal(1, s.notifier.matchOvers)
	s.Equal("[2-0] alice vs bob", s.platform.renames["thread-1"])

	// A finished session rejects further drafting.
	err := s.svc.ProcessDraftChoice(s.ctx, &ProcessDraftChoiceInput{
		ThreadID: "thread-1",
		ActorID:  "u-alice",
		Action:   DraftActionPick,
		Ref:      pool[2].Ref(),
	})
	s.ErrorIs(err, ErrNoActiveSession)
}

func (s *ContestServiceTestSuite) TestCollectResultsDrawRejected() {
	pool := []*models.Chart{
		chartFixture("Chart A", "a", 2, models.ChartColorLight),
		chartFixture("Chart B", "b", 2, models.ChartColorLight),
		chartFixture("Chart C", "c", 2, models.ChartColorLight),
	}
	sess := s.createSession(versusInput([][]string{{"u-alice"}, {"u-bob"}}, 3, models.BanPhaseNone), pool)
	s.Require().NoError(s.chooseFromLastDraft("thread-1", "u-alice"))

	err := s.collect("thread-1", map[string]int{
		"000000001": 9_900_000,
		"000000002": 9_900_000,
	})
	s.ErrorIs(err, ErrDrawNotAllowed)

	// Nothing was committed; the round can be replayed.
	_, awaiting := sess.AwaitingResults()
	s.True(awaiting)
	s.Empty(s.notifier.rounds)
	s.Equal(1, sess.Round())
}

func (s *ContestServiceTestSuite) TestCollectResultsSongMismatch() {
	pool := []*models.Chart{
		chartFixture("Chart A", "a", 2, models.ChartColorLight),
		chartFixture("Chart B", "b", 2, models.ChartColorLight),
		chartFixture("Chart C", "c", 2, models.ChartColorLight),
	}
	sess := s.createSession(versusInput([][]string{{"u-alice"}, {"u-bob"}}, 3, models.BanPhaseNone), pool)
	s.Require().NoError(s.chooseFromLastDraft("thread-1", "u-alice"))

	s.playSong = models.ChartRef{SongKey: "somethingelse", Tier: 2}
	s.playScores = map[string]int{"000000001": 9_900_000, "000000002": 9_800_000}
	err := s.svc.CollectResults(s.ctx, &CollectResultsInput{ThreadID: "thread-1"})
	s.ErrorIs(err, ErrSongMismatch)

	_, awaiting := sess.AwaitingResults()
	s.True(awaiting)
}

func (s *ContestServiceTestSuite) TestCollectResultsReissuesDraftWhenNotAwaiting() {
	pool := []*models.Chart{
		chartFixture("Chart A", "a", 2, models.ChartColorLight),
		chartFixture("Chart B", "b", 2, models.ChartColorLight),
		chartFixture("Chart C", "c", 2, models.ChartColorLight),
	}
	s.createSession(versusInput([][]string{{"u-alice"}, {"u-bob"}}, 3, models.BanPhaseNone), pool)
	before := len(s.notifier.drafts)

	err := s.svc.CollectResults(s.ctx, &CollectResultsInput{ThreadID: "thread-1"})
	s.ErrorIs(err, ErrNotAwaitingResults)
	s.Len(s.notifier.drafts, before+1)
}

func (s *ContestServiceTestSuite) TestCollectResultsRankedByShinies() {
	pool := []*models.Chart{
		chartFixture("Chart A", "a", 2, models.ChartColorLight),
		chartFixture("Chart B", "b", 2, models.ChartColorLight),
		chartFixture("Chart C", "c", 2, models.ChartColorLight),
	}
	input := versusInput([][]string{{"u-alice"}, {"u-bob"}}, 3, models.BanPhaseNone)
	input.RankBy = models.RankByShinies
	sess := s.createSession(input, pool)
	s.Require().NoError(s.chooseFromLastDraft("thread-1", "u-alice"))

	// Equal shiny counts are not a draw while the raw scores differ; the
	// higher raw score breaks the tie.
	s.playShiny = map[string]int{"000000001": 800, "000000002": 800}
	s.Require().NoError(s.collect("thread-1", map[string]int{
		"000000001": 9_800_000,
		"000000002": 9_900_000,
	}))

	s.Require().Len(s.notifier.rounds, 1)
	result := s.notifier.rounds[0].result
	s.True(result[0].Team.HasUser("u-bob"))
	s.Equal(800, result[0].Score)

	// A full tie on both metrics is a draw.
	s.Require().NoError(s.chooseFromLastDraft("thread-1", "u-alice"))
	s.playShiny = map[string]int{"000000001": 750, "000000002": 750}
	err := s.collect("thread-1", map[string]int{
		"000000001": 9_850_000,
		"000000002": 9_850_000,
	})
	s.ErrorIs(err, ErrDrawNotAllowed)
	s.False(sess.GameOver())
}

func (s *ContestServiceTestSuite) TestSubmitManualScoresGroup() {
	pool := []*models.Chart{
		chartFixture("Chart A", "a", 2, models.ChartColorLight),
		chartFixture("Chart B", "b", 2, models.ChartColorLight),
		chartFixture("Chart C", "c", 2, models.ChartColorLight),
	}
	input := versusInput([][]string{{"u-alice"}, {"u-bob"}, {"u-carol"}}, 2, models.BanPhaseNone)
	input.ContestType = models.ContestTypeGroup
	sess := s.createSession(input, pool)
	s.Require().NoError(s.chooseFromLastDraft("thread-1", "u-alice"))

	err := s.svc.SubmitManualScores(s.ctx, &SubmitManualScoresInput{
		ThreadID: "thread-1",
		Scores: []ContestantScore{
			{UserID: "u-alice", Score: 9_800_000},
			{UserID: "u-bob", Score: 9_900_000},
			{UserID: "u-carol", Score: 9_800_000},
		},
	})
	s.Require().NoError(err)

	// Placements earn 10, 7 and 5 points. The tied teams keep their
	// rotation order.
	s.Require().Len(s.notifier.standings, 1)
	entries := s.notifier.standings[0]
	s.True(entries[0].Team.HasUser("u-bob"))
	s.Equal(10, entries[0].Points)
	s.Equal(7, entries[1].Points)
	s.Equal(5, entries[2].Points)

	// Group contests run every round regardless of the lead.
	s.False(sess.GameOver())
	draft := s.notifier.lastDraft()
	s.Equal(DraftActionPick, draft.action)
	s.True(draft.team.HasUser("u-bob"))
}

func (s *ContestServiceTestSuite) TestSubmitManualScoresValidation() {
	pool := []*models.Chart{
		chartFixture("Chart A", "a", 2, models.ChartColorLight),
		chartFixture("Chart B", "b", 2, models.ChartColorLight),
		chartFixture("Chart C", "c", 2, models.ChartColorLight),
	}
	input := versusInput([][]string{{"u-alice", "u-bob"}, {"u-carol"}}, 3, models.BanPhaseNone)
	sess := s.createSession(input, pool)

	// Not awaiting results yet.
	err := s.svc.SubmitManualScores(s.ctx, &SubmitManualScoresInput{
		ThreadID: "thread-1",
		Scores:   []ContestantScore{{UserID: "u-carol", Score: 1}},
	})
	s.ErrorIs(err, ErrNotAwaitingResults)

	s.Require().NoError(s.chooseFromLastDraft("thread-1", "u-carol"))

	err = s.svc.SubmitManualScores(s.ctx, &SubmitManualScoresInput{
		ThreadID: "thread-1",
		Scores:   []ContestantScore{{UserID: "u-dave", Score: 1}},
	})
	s.ErrorIs(err, ErrUnknownContestant)

	// Every team member needs a score.
	err = s.svc.SubmitManualScores(s.ctx, &SubmitManualScoresInput{
		ThreadID: "thread-1",
		Scores: []ContestantScore{
			{UserID: "u-alice", Score: 9_000_000},
			{UserID: "u-carol", Score: 9_100_000},
		},
	})
	s.Error(err)
	_, awaiting := sess.AwaitingResults()
	s.True(awaiting)
}

func (s *ContestServiceTestSuite) TestSubmitManualScoresShiniesUnsupported() {
	pool := []*models.Chart{
		chartFixture("Chart A", "a", 2, models.ChartColorLight),
		chartFixture("Chart B", "b", 2, models.ChartColorLight),
		chartFixture("Chart C", "c", 2, models.ChartColorLight),
	}
	input := versusInput([][]string{{"u-alice"}, {"u-bob"}}, 3, models.BanPhaseNone)
	input.RankBy = models.RankByShinies
	s.createSession(input, pool)
	s.Require().NoError(s.chooseFromLastDraft("thread-1", "u-alice"))

	err := s.svc.SubmitManualScores(s.ctx, &SubmitManualScoresInput{
		ThreadID: "thread-1",
		Scores:   []ContestantScore{{UserID: "u-alice", Score: 1}},
	})
	s.ErrorIs(err, ErrManualUnsupported)
}

func (s *ContestServiceTestSuite) TestSessionBusy() {
	pool := []*models.Chart{
		chartFixture("Chart A", "a", 2, models.ChartColorLight),
		chartFixture("Chart B", "b", 2, models.ChartColorLight),
		chartFixture("Chart C", "c", 2, models.ChartColorLight),
	}
	sess := s.createSession(versusInput([][]string{{"u-alice"}, {"u-bob"}}, 3, models.BanPhaseNone), pool)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	err := s.svc.ProcessDraftChoice(s.ctx, &ProcessDraftChoiceInput{
		ThreadID: "thread-1",
		ActorID:  "u-alice",
		Action:   DraftActionPick,
		Ref:      pool[0].Ref(),
	})
	s.ErrorIs(err, ErrSessionBusy)

	s.ErrorIs(s.svc.CollectResults(s.ctx, &CollectResultsInput{ThreadID: "thread-1"}), ErrSessionBusy)
}

func (s *ContestServiceTestSuite) TestGetSessionExpiry() {
	pool := []*models.Chart{
		chartFixture("Chart A", "a", 2, models.ChartColorLight),
		chartFixture("Chart B", "b", 2, models.ChartColorLight),
		chartFixture("Chart C", "c", 2, models.ChartColorLight),
	}
	s.createSession(versusInput([][]string{{"u-alice"}, {"u-bob"}}, 3, models.BanPhaseNone), pool)

	_, err := s.svc.GetSession(s.ctx, &GetSessionInput{ThreadID: "thread-1"})
	s.NoError(err)

	_, err = s.svc.GetSession(s.ctx, &GetSessionInput{ThreadID: "thread-2"})
	s.ErrorIs(err, ErrNoActiveSession)

	s.now = s.testTime.Add(3 * time.Hour)
	_, err = s.svc.GetSession(s.ctx, &GetSessionInput{ThreadID: "thread-1"})
	s.ErrorIs(err, ErrNoActiveSession)
}

func (s *ContestServiceTestSuite) TestSideChoiceFlow() {
	pool := []*models.Chart{
		chartFixture("Chart L1", "l1", 2, models.ChartColorLight),
		chartFixture("Chart L2", "l2", 2, models.ChartColorLight),
		chartFixture("Chart D1", "d1", 2, models.ChartColorDark),
		chartFixture("Chart D2", "d2", 2, models.ChartColorDark),
	}
	input := versusInput([][]string{{"u-alice"}, {"u-bob"}}, 2, models.BanPhaseNone)
	input.Color = models.ColorLightVsDark
	sess := s.createSession(input, pool)

	// The draft waits for the side choice, which goes to the second team.
	s.Empty(s.notifier.drafts)
	s.Equal([]string{"u-bob"}, s.notifier.sideAsks)

	err := s.svc.ProcessSideChoice(s.ctx, &ProcessSideChoiceInput{
		ThreadID: "thread-1", ActorID: "u-alice", Side: models.AllegianceDark,
	})
	s.ErrorIs(err, ErrNotYourTurn)

	s.Require().NoError(s.svc.ProcessSideChoice(s.ctx, &ProcessSideChoiceInput{
		ThreadID: "thread-1", ActorID: "u-bob", Side: models.AllegianceDark,
	}))

	s.Require().Len(s.notifier.sides, 1)
	s.True(s.notifier.sides[0][0].HasUser("u-alice"))
	s.True(s.notifier.sides[0][1].HasUser("u-bob"))

	// Alice picks from the light side only.
	draft := s.notifier.lastDraft()
	s.Equal(DraftActionPick, draft.action)
	s.True(draft.team.HasUser("u-alice"))
	for _, opt := range draft.batches[0] {
		s.Contains([]string{"l1", "l2"}, opt.Ref.SongKey)
	}

	// Picking an enemy chart is rejected.
	err = s.svc.ProcessDraftChoice(s.ctx, &ProcessDraftChoiceInput{
		ThreadID: "thread-1",
		ActorID:  "u-alice",
		Action:   DraftActionPick,
		Ref:      models.ChartRef{SongKey: "d1", Tier: 2},
	})
	s.ErrorIs(err, ErrWrongSide)

	// Choosing again is rejected.
	err = s.svc.ProcessSideChoice(s.ctx, &ProcessSideChoiceInput{
		ThreadID: "thread-1", ActorID: "u-bob", Side: models.AllegianceLight,
	})
	s.ErrorIs(err, ErrSideAlreadyChosen)

	s.Equal(models.AllegianceDark, sess.Teams()[1].Allegiance)
}

func (s *ContestServiceTestSuite) TestLinkProfile() {
	var saved *models.Contestant
	s.mockProfileRepo.EXPECT().SaveProfile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *profileRepo.SaveProfileInput) error {
			saved = input.Profile
			return nil
		})

	err := s.svc.LinkProfile(s.ctx, &LinkProfileInput{
		UserID:    "u-erin",
		Name:      "erin",
		AccountID: "000000009",
		Rating:    1080,
	})
	s.Require().NoError(err)
	s.Require().NotNil(saved)
	s.Equal("000000009", saved.AccountID)

	s.Error(s.svc.LinkProfile(s.ctx, &LinkProfileInput{UserID: "u-erin"}))
}

func (s *ContestServiceTestSuite) TestSetOwnedPacks() {
	catalog := &chartRepo.ListChartsOutput{Charts: []*models.Chart{
		{Name: "A", SongKey: "a", Tier: 2, Pack: "Vicious Labyrinth"},
		{Name: "B", SongKey: "b", Tier: 3, Pack: "Vicious Labyrinth"},
		{Name: "C", SongKey: "c", Tier: 2, Pack: "Luminous Sky"},
	}}
	s.mockChartRepo.EXPECT().ListCharts(gomock.Any()).Return(catalog, nil)

	var saved *chartRepo.SetOwnershipInput
	s.mockChartRepo.EXPECT().SetOwnership(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *chartRepo.SetOwnershipInput) error {
			saved = input
			return nil
		})

	out, err := s.svc.SetOwnedPacks(s.ctx, &SetOwnedPacksInput{
		UserID: "u-alice",
		Packs:  []string{"vicious labyrinth", " Unknown Pack "},
	})
	s.Require().NoError(err)
	s.Equal(2, out.ChartCount)
	s.Require().NotNil(saved)
	s.Equal("u-alice", saved.UserID)
	s.ElementsMatch([]models.ChartRef{
		{SongKey: "a", Tier: 2},
		{SongKey: "b", Tier: 3},
	}, saved.Refs)
}

func (s *ContestServiceTestSuite) TestSyncProfile() {
	s.mockProfileRepo.EXPECT().GetProfile(gomock.Any(), &profileRepo.GetProfileInput{UserID: "u-alice"}).
		Return(s.profiles["u-alice"], nil)

	plays := make([]arcapi.BestPlay, 0, 40)
	for i := 0; i < 40; i++ {
		plays = append(plays, arcapi.BestPlay{PotentialValue: 1200 - i})
	}
	s.mockScoreClient.EXPECT().GetBestPlays(gomock.Any(), "000000001").Return(plays, nil)

	var saved *models.Contestant
	s.mockProfileRepo.EXPECT().SaveProfile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *profileRepo.SaveProfileInput) error {
			saved = input.Profile
			return nil
		})

	out, err := s.svc.SyncProfile(s.ctx, &SyncProfileInput{UserID: "u-alice"})
	s.Require().NoError(err)

	// Only the top thirty plays feed the average.
	want := 0
	for i := 0; i < 30; i++ {
		want += 1200 - i
	}
	want /= 30
	s.Equal(want, out.Profile.Best30)
	s.Require().NotNil(saved)
	s.Equal(want, saved.Best30)
}

func (s *ContestServiceTestSuite) TestSyncProfileMissing() {
	s.mockProfileRepo.EXPECT().GetProfile(gomock.Any(), gomock.Any()).
		Return(nil, profileRepo.ErrProfileNotFound)

	_, err := s.svc.SyncProfile(s.ctx, &SyncProfileInput{UserID: "u-ghost"})
	s.ErrorIs(err, ErrMissingProfile)
}

func (s *ContestServiceTestSuite) TestDraftBatchesAreChunked() {
	pool := make([]*models.Chart, 0, 60)
	for i := 0; i < 60; i++ {
		pool = append(pool, chartFixture(
			fmt.Sprintf("Chart %03d", i),
			fmt.Sprintf("chart%03d", i),
			2,
			models.ChartColorLight,
		))
	}
	input := versusInput([][]string{{"u-alice"}, {"u-bob"}}, 3, models.BanPhaseNone)
	input.PoolSize = 60
	s.createSession(input, pool)

	draft := s.notifier.lastDraft()
	s.Require().Len(draft.batches, 3)
	s.Len(draft.batches[0], 25)
	s.Len(draft.batches[1], 25)
	s.Len(draft.batches[2], 10)
}
