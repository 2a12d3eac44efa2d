package contest

import (
	"context"
	"fmt"
	"sync"

	"github.com/nairobininja/fina/internal/models"
)

// draftRequest captures one RequestDraft call.
type draftRequest struct {
	threadID string
	action   DraftAction
	team     *models.Team
	batches  [][]DraftOption
}

// roundReport captures one RoundResults call.
type roundReport struct {
	round  int
	result models.RoundResult
	mode   models.ResultMode
}

// fakeNotifier records every notification. The state machine emits several
// notifications per operation, so a recording fake keeps assertions about
// ordering readable.
type fakeNotifier struct {
	mu sync.Mutex

	created     []*SessionMeta
	chartLists  int
	refreshes   int
	drafts      []draftRequest
	resolved    []models.ChartRef
	rounds      []roundReport
	standings   [][]StandingsEntry
	matchOvers  int
	sideAsks    []string
	sides       [][2]*models.Team
	warnings    []string
	failRequest bool
}

func (f *fakeNotifier) SessionCreated(_ context.Context, meta *SessionMeta) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, meta)
	return nil
}

func (f *fakeNotifier) PostChartList(_ context.Context, _ string, _ []*models.Chart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chartLists++
	return nil
}

func (f *fakeNotifier) RefreshChartList(_ context.Context, _ string, _ []*models.Chart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes++
	return nil
}

func (f *fakeNotifier) RequestDraft(_ context.Context, threadID string, action DraftAction, team *models.Team, batches [][]DraftOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRequest {
		return fmt.Errorf("delivery failed")
	}
	f.drafts = append(f.drafts, draftRequest{threadID: threadID, action: action, team: team, batches: batches})
	return nil
}

func (f *fakeNotifier) ChartResolved(_ context.Context, _ string, _ string, c *models.Chart, _ DraftAction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolved = append(f.resolved, c.Ref())
	return nil
}

func (f *fakeNotifier) RoundResults(_ context.Context, _ string, round int, result models.RoundResult, mode models.ResultMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rounds = append(f.rounds, roundReport{round: round, result: result, mode: mode})
	return nil
}

func (f *fakeNotifier) Standings(_ context.Context, _ string, _ int, entries []StandingsEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.standings = append(f.standings, entries)
	return nil
}

func (f *fakeNotifier) MatchOver(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matchOvers++
	return nil
}

func (f *fakeNotifier) RequestSideChoice(_ context.Context, _ string, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sideAsks = append(f.sideAsks, userID)
	return nil
}

func (f *fakeNotifier) AnnounceSides(_ context.Context, _ string, light *models.Team, dark *models.Team) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sides = append(f.sides, [2]*models.Team{light, dark})
	return nil
}

func (f *fakeNotifier) Warn(_ context.Context, _ string, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.warnings = append(f.warnings, message)
	return nil
}

// lastDraft returns the most recent draft request.
func (f *fakeNotifier) lastDraft() draftRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.drafts[len(f.drafts)-1]
}

// fakePlatform hands out sequential thread IDs and records renames.
type fakePlatform struct {
	mu sync.Mutex

	threads    int
	members    map[string][]string
	renames    map[string]string
	removed    []string
	failMember string
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		members: make(map[string][]string),
		renames: make(map[string]string),
	}
}

func (f *fakePlatform) CreateThread(_ context.Context, _ string, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.threads++
	return fmt.Sprintf("thread-%d", f.threads), nil
}

func (f *fakePlatform) AddThreadMember(_ context.Context, threadID string, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if userID == f.failMember {
		return fmt.Errorf("cannot add member")
	}
	f.members[threadID] = append(f.members[threadID], userID)
	return nil
}

func (f *fakePlatform) RemoveThread(_ context.Context, threadID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, threadID)
	return nil
}

func (f *fakePlatform) RenameThread(_ context.Context, threadID string, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renames[threadID] = name
	return nil
}

// noShuffle keeps slices in their input order so tests can reason about the
// pool and the initial rotation.
type noShuffle struct{}

func (noShuffle) Shuffle(int, func(i, j int)) {}
