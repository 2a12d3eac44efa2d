package contest

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/nairobininja/fina/internal/models"
)

// groupPoints are the points awarded per placement in group contests.
var groupPoints = [...]int{10, 7, 5, 4}

// teamNameLimit caps each team's share of the thread name.
const teamNameLimit = 20

// Session is the live state of one contest. All mutating methods assume the
// caller holds mu; the service acquires it with TryLock so concurrent
// interactions are rejected instead of queued.
type Session struct {
	mu sync.Mutex

	id       string
	threadID string
	name     string

	contestType models.ContestType
	rounds      int
	rankBy      models.RankBy
	orderBy     models.OrderBy
	color       models.ColorFilter
	banPhase    models.BanPhase
	resultMode  models.ResultMode
	minConstant int
	maxConstant int

	teams  []*models.Team
	charts []*models.Chart

	results           []models.RoundResult
	bannedThisRound   int
	awaitingResultsOf *models.ChartRef
	gameOver          bool

	notifier Notifier
	platform Platform
}

// newSession builds a session from validated inputs. The chart slice is
// sorted in place and the ban phase may be downgraded when the pool is too
// small for the requested one; the second return reports whether that
// happened.
func newSession(id, threadID string, input *CreateSessionInput, teams []*models.Team, charts []*models.Chart, notifier Notifier, platform Platform) (*Session, bool) {
	sortCharts(charts, input.Color)

	banPhase, downgraded := effectiveBanPhase(input.BanPhase, len(charts), input.Rounds, len(teams))

	resultMode := input.ResultMode
	if resultMode == "" {
		resultMode = models.ResultModeScore
	}

	return &Session{
		id:          id,
		threadID:    threadID,
		name:        threadName(teams),
		contestType: input.ContestType,
		rounds:      input.Rounds,
		rankBy:      input.RankBy,
		orderBy:     input.OrderBy,
		color:       input.Color,
		banPhase:    banPhase,
		resultMode:  resultMode,
		minConstant: input.MinConstant,
		maxConstant: input.MaxConstant,
		teams:       teams,
		charts:      charts,
		notifier:    notifier,
		platform:    platform,
	}, downgraded
}

// effectiveBanPhase steps the requested ban phase down until the pool can
// sustain it. Classic consumes rounds*(teams+1) charts, normal rounds*teams,
// first phase rounds+teams.
func effectiveBanPhase(requested models.BanPhase, poolSize, rounds, teamCount int) (models.BanPhase, bool) {
	phase := requested
	if phase == models.BanPhaseClassic && poolSize < rounds*(teamCount+1) {
		phase = models.BanPhaseNormal
	}
	if phase == models.BanPhaseNormal && poolSize < rounds*teamCount {
		phase = models.BanPhaseFirstOnly
	}
	if phase == models.BanPhaseFirstOnly && poolSize < rounds+teamCount {
		phase = models.BanPhaseNone
	}
	return phase, phase != requested
}

// sortCharts orders the pool for display: by song name, then tier. Dual side
// pools group all light charts before all dark ones.
func sortCharts(charts []*models.Chart, color models.ColorFilter) {
	sort.SliceStable(charts, func(i, j int) bool {
		if color.IsDualSide() {
			si, sj := charts[i].Side(), charts[j].Side()
			if si != sj {
				return si == models.AllegianceLight
			}
		}
		if charts[i].Name != charts[j].Name {
			return charts[i].Name < charts[j].Name
		}
		return charts[i].Tier < charts[j].Tier
	})
}

func threadName(teams []*models.Team) string {
	names := make([]string, len(teams))
	for i, team := range teams {
		names[i] = team.DisplayName(teamNameLimit)
	}
	return strings.Join(names, " vs ")
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// ThreadID returns the thread the session lives in.
func (s *Session) ThreadID() string {
	return s.threadID
}

// Name returns the session's display name.
func (s *Session) Name() string {
	return s.name
}

// ContestType returns the session's contest type.
func (s *Session) ContestType() models.ContestType {
	return s.contestType
}

// Rounds returns the number of rounds needed to finish the contest.
func (s *Session) Rounds() int {
	return s.rounds
}

// RankBy returns the metric results are ranked by.
func (s *Session) RankBy() models.RankBy {
	return s.rankBy
}

// Teams returns the current rotation, next drafter first.
func (s *Session) Teams() []*models.Team {
	teams := make([]*models.Team, len(s.teams))
	copy(teams, s.teams)
	return teams
}

// Charts returns the chart pool in display order.
func (s *Session) Charts() []*models.Chart {
	charts := make([]*models.Chart, len(s.charts))
	copy(charts, s.charts)
	return charts
}

// Round returns the current round number, starting at 1.
func (s *Session) Round() int {
	return len(s.results) + 1
}

// GameOver reports whether the contest has finished.
func (s *Session) GameOver() bool {
	return s.gameOver
}

// AwaitingResults returns the picked chart the session is waiting on, if any.
func (s *Session) AwaitingResults() (models.ChartRef, bool) {
	if s.awaitingResultsOf == nil {
		return models.ChartRef{}, false
	}
	return *s.awaitingResultsOf, true
}

// meta builds the session's welcome message description.
func (s *Session) meta() *SessionMeta {
	return &SessionMeta{
		SessionID:   s.id,
		ThreadID:    s.threadID,
		Name:        s.name,
		ContestType: s.contestType,
		Rounds:      s.rounds,
		MinConstant: s.minConstant,
		MaxConstant: s.maxConstant,
		OrderBy:     s.orderBy,
		RankBy:      s.rankBy,
		BanPhase:    s.banPhase,
		Color:       s.color,
	}
}

// start kicks off the draft. Dual side sessions call this only after the
// side choice resolves.
func (s *Session) start(ctx context.Context) error {
	s.preRotateIfNormalBan()
	return s.continueRound(ctx)
}

// preRotateIfNormalBan skips the leading team to the back of the rotation
// and counts it as having banned. Under the normal ban phase the team that
// would draft first each round gives up its ban instead.
func (s *Session) preRotateIfNormalBan() {
	if s.banPhase != models.BanPhaseNormal {
		return
	}
	s.bannedThisRound++
	s.teams = rotated(s.teams)
}

// rotated returns a new rotation with the leading team moved to the back.
// The input slice is never mutated.
func rotated(teams []*models.Team) []*models.Team {
	next := make([]*models.Team, 0, len(teams))
	next = append(next, teams[1:]...)
	return append(next, teams[0])
}

// expectedAction returns what the current draft prompt asks for.
func (s *Session) expectedAction() DraftAction {
	if s.banPhase == models.BanPhaseNone || s.bannedThisRound >= len(s.teams) {
		return DraftActionPick
	}
	return DraftActionBan
}

// continueRound prompts the leading team for the next draft step.
func (s *Session) continueRound(ctx context.Context) error {
	action := s.expectedAction()
	head := s.teams[0]

	batches := s.draftBatches(action, head)
	if err := s.notifier.RequestDraft(ctx, s.threadID, action, head, batches); err != nil {
		return fmt.Errorf("failed to request a %s from team %s: %w", action, head.DisplayName(teamNameLimit), err)
	}
	return nil
}

// draftBatches lists the eligible charts for the given action, chunked to
// the platform's menu option limit. In dual side contests a team picks from
// its own side and bans from the enemy's.
func (s *Session) draftBatches(action DraftAction, team *models.Team) [][]DraftOption {
	var options []DraftOption
	for _, c := range s.charts {
		if c.Status != models.ChartStatusReady {
			continue
		}
		if team.Allegiance != models.AllegianceNone {
			friendly := c.Side() == team.Allegiance
			if action == DraftActionPick && !friendly {
				continue
			}
			if action == DraftActionBan && friendly {
				continue
			}
		}
		options = append(options, DraftOption{
			Ref:         c.Ref(),
			Label:       c.Name,
			Description: models.TierLabel(c.Tier),
		})
	}

	var batches [][]DraftOption
	for len(options) > DraftBatchSize {
		batches = append(batches, options[:DraftBatchSize])
		options = options[DraftBatchSize:]
	}
	if len(options) > 0 {
		batches = append(batches, options)
	}
	return batches
}

// processDraftChoice validates and applies a ban or pick from the given
// actor. Validation happens before any state changes.
func (s *Session) processDraftChoice(ctx context.Context, actorID string, action DraftAction, ref models.ChartRef) error {
	if s.gameOver {
		return ErrNoActiveSession
	}
	if s.awaitingResultsOf != nil {
		return ErrAwaitingResults
	}

	head := s.teams[0]
	if !head.HasUser(actorID) {
		return ErrNotYourTurn
	}
	if action != s.expectedAction() {
		return ErrNotYourTurn
	}

	c := s.findChart(ref)
	if c == nil {
		return fmt.Errorf("%w: %s", ErrChartNotFound, ref)
	}
	if c.Status != models.ChartStatusReady {
		return fmt.Errorf("%w: %s", ErrChartResolved, c.Name)
	}
	if head.Allegiance != models.AllegianceNone {
		friendly := c.Side() == head.Allegiance
		if action == DraftActionPick && !friendly {
			return fmt.Errorf("%w: cannot pick an enemy chart", ErrWrongSide)
		}
		if action == DraftActionBan && friendly {
			return fmt.Errorf("%w: cannot ban a friendly chart", ErrWrongSide)
		}
	}

	if action == DraftActionBan {
		c.Status = models.ChartStatusBanned
	} else {
		c.Status = models.ChartStatusPicked
	}

	if err := s.notifier.ChartResolved(ctx, s.threadID, actorID, c, action); err != nil {
		log.Printf("failed to announce %s of %s in session %s: %v", action, c.Name, s.id, err)
	}
	if err := s.notifier.RefreshChartList(ctx, s.threadID, s.charts); err != nil {
		log.Printf("failed to refresh chart list for session %s: %v", s.id, err)
	}

	if action == DraftActionBan {
		s.bannedThisRound++
		s.teams = rotated(s.teams)
		return s.continueRound(ctx)
	}

	picked := c.Ref()
	s.awaitingResultsOf = &picked
	return nil
}

func (s *Session) findChart(ref models.ChartRef) *models.Chart {
	for _, c := range s.charts {
		if c.SongKey == ref.SongKey && c.Tier == ref.Tier {
			return c
		}
	}
	return nil
}

// processSideChoice resolves the side choice in a dual side contest. The
// first member of the second team in the initial order chooses; the other
// team gets the opposite side. The draft starts once sides are set.
func (s *Session) processSideChoice(ctx context.Context, actorID string, side models.Allegiance) error {
	if !s.color.IsDualSide() {
		return ErrNoSideChoice
	}
	if side != models.AllegianceLight && side != models.AllegianceDark {
		return fmt.Errorf("invalid side choice: %q", side)
	}
	chooser := s.teams[1]
	if chooser.Allegiance != models.AllegianceNone {
		return ErrSideAlreadyChosen
	}
	if chooser.UserIDs()[0] != actorID {
		return ErrNotYourTurn
	}

	chooser.Allegiance = side
	if side == models.AllegianceLight {
		s.teams[0].Allegiance = models.AllegianceDark
	} else {
		s.teams[0].Allegiance = models.AllegianceLight
	}

	light, dark := s.teams[0], s.teams[1]
	if light.Allegiance != models.AllegianceLight {
		light, dark = dark, light
	}
	if err := s.notifier.AnnounceSides(ctx, s.threadID, light, dark); err != nil {
		log.Printf("failed to announce sides for session %s: %v", s.id, err)
	}

	return s.start(ctx)
}

// addResults commits a completed round and moves the session forward: it
// records the result, rebuilds the rotation, reports standings and either
// ends the contest or prompts the next draft. The result is ordered winner
// first.
func (s *Session) addResults(ctx context.Context, result models.RoundResult) error {
	round := len(s.results) + 1
	s.results = append(s.results, result)
	s.bannedThisRound = 0
	s.awaitingResultsOf = nil

	if s.contestType == models.ContestTypeVersus {
		// The loser drafts first next round.
		next := make([]*models.Team, 0, len(result))
		for i := len(result) - 1; i >= 0; i-- {
			next = append(next, result[i].Team)
		}
		s.teams = next
	} else {
		s.teams = rotated(s.teams)
	}

	if err := s.notifier.RoundResults(ctx, s.threadID, round, result, s.resultMode); err != nil {
		log.Printf("failed to announce round %d results for session %s: %v", round, s.id, err)
	}

	entries, over, err := s.computeStandings()
	if err != nil {
		return err
	}
	if err := s.notifier.Standings(ctx, s.threadID, s.rounds, entries); err != nil {
		log.Printf("failed to announce standings for session %s: %v", s.id, err)
	}

	if over {
		s.gameOver = true
		if err := s.platform.RenameThread(ctx, s.threadID, s.finalThreadName(entries)); err != nil {
			log.Printf("failed to rename thread %s: %v", s.threadID, err)
		}
		if err := s.notifier.MatchOver(ctx, s.threadID); err != nil {
			log.Printf("failed to announce match over for session %s: %v", s.id, err)
		}
		return nil
	}

	s.preRotateIfNormalBan()
	if s.banPhase == models.BanPhaseFirstOnly {
		// Bans happened in round one only; every later round goes
		// straight to a pick.
		s.bannedThisRound = len(s.teams)
	}
	return s.continueRound(ctx)
}

// computeStandings tallies points for every team and reports whether the
// contest is over. In group contests placements earn fixed points and the
// contest runs all rounds. In versus contests round wins count and the
// contest ends as soon as one team holds a majority; more than one majority
// holder means the recorded results are corrupt.
func (s *Session) computeStandings() ([]StandingsEntry, bool, error) {
	points := make(map[*models.Team]int, len(s.teams))
	var over bool

	if s.contestType == models.ContestTypeVersus {
		for _, result := range s.results {
			points[result[0].Team]++
		}
		winners := 0
		for _, team := range s.teams {
			if points[team]*2 > s.rounds {
				winners++
				over = true
			}
		}
		if winners > 1 {
			return nil, false, fmt.Errorf("recorded results are corrupt: %d teams hold a winning majority", winners)
		}
	} else {
		over = len(s.results) >= s.rounds
		for _, result := range s.results {
			for placement, ts := range result {
				if placement < len(groupPoints) {
					points[ts.Team] += groupPoints[placement]
				}
			}
		}
	}

	entries := make([]StandingsEntry, 0, len(s.teams))
	for _, team := range s.teams {
		entries = append(entries, StandingsEntry{Team: team, Points: points[team]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	return entries, over, nil
}

// finalThreadName prefixes the session name with the final standings, for
// example "[10-7] alice vs bob".
func (s *Session) finalThreadName(entries []StandingsEntry) string {
	values := make([]string, len(entries))
	for i, entry := range entries {
		values[i] = strconv.Itoa(entry.Points)
	}
	return fmt.Sprintf("[%s] %s", strings.Join(values, "-"), s.name)
}
