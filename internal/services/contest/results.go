package contest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/nairobininja/fina/internal/models"
	"github.com/nairobininja/fina/internal/repositories/profile"
)

// SubmitManualScores records a round result from manually entered scores.
// Contests ranked by shinies cannot take manual results because the entry
// form has no shiny field.
func (s *service) SubmitManualScores(ctx context.Context, input *SubmitManualScoresInput) error {
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

	if sess.rankBy == models.RankByShinies {
		return ErrManualUnsupported
	}
	if sess.awaitingResultsOf == nil {
		return ErrNotAwaitingResults
	}

	type teamTally struct {
		team   *models.Team
		sum    int
		best   int
		scored int
	}

	tallies := make([]*teamTally, len(sess.teams))
	for i, team := range sess.teams {
		tallies[i] = &teamTally{team: team}
	}

	for _, score := range input.Scores {
		var tally *teamTally
		for _, t := range tallies {
			if t.team.HasUser(score.UserID) {
				tally = t
				break
			}
		}
		if tally == nil {
			return fmt.Errorf("%w: <@%s>", ErrUnknownContestant, score.UserID)
		}
		tally.sum += score.Score
		if score.Score > tally.best {
			tally.best = score.Score
		}
		tally.scored++
	}

	for _, t := range tallies {
		if t.scored != len(t.team.Contestants()) {
			return fmt.Errorf("expected a score for every member of team %s", t.team.DisplayName(teamNameLimit))
		}
	}

	// Summed score decides placement, best single score breaks ties. Full
	// ties are allowed here; teams share a placement arbitrarily.
	sort.SliceStable(tallies, func(i, j int) bool {
		if tallies[i].sum != tallies[j].sum {
			return tallies[i].sum > tallies[j].sum
		}
		return tallies[i].best > tallies[j].best
	})

	result := make(models.RoundResult, 0, len(tallies))
	for _, t := range tallies {
		result = append(result, models.TeamScore{Team: t.team, Score: t.sum})
	}

	return sess.addResults(ctx, result)
}

// CollectResults queries the score API for every contestant's most recent
// play and records the round result. The session stays locked for the whole
// collection so a concurrent submission cannot interleave. When the session
// is not awaiting results the pending draft prompt is re-issued instead.
func (s *service) CollectResults(ctx context.Context, input *CollectResultsInput) error {
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

	if sess.gameOver {
		return ErrNoActiveSession
	}
	if sess.awaitingResultsOf == nil {
		if err := sess.continueRound(ctx); err != nil {
			log.Printf("failed to re-issue draft prompt for session %s: %v", sess.ID(), err)
		}
		return ErrNotAwaitingResults
	}
	awaiting := *sess.awaitingResultsOf

	result := make(models.RoundResult, 0, len(sess.teams))
	for _, team := range sess.teams {
		profilesOut, err := s.profileRepo.GetProfiles(ctx, &profile.GetProfilesInput{UserIDs: team.UserIDs()})
		if err != nil {
			if errors.Is(err, profile.ErrProfileNotFound) {
				return fmt.Errorf("%w: %v", ErrMissingProfile, err)
			}
			return fmt.Errorf("failed to load contestant profiles: %w", err)
		}

		var scoreSum, shinySum int
		for _, p := range profilesOut.Profiles {
			play, err := s.scoreClient.GetRecentPlay(ctx, p.AccountID)
			if err != nil {
				return fmt.Errorf("failed to query the score API for <@%s>: %w", p.UserID, err)
			}
			if play.SongKey != awaiting.SongKey || play.Tier != awaiting.Tier {
				return fmt.Errorf("%w: <@%s> last played %s", ErrSongMismatch, p.UserID, play.SongKey)
			}
			scoreSum += play.Score
			shinySum += play.ShinyPures
		}
		result = append(result, models.TeamScore{Team: team, Score: scoreSum, Shinies: shinySum})
	}

	// Draws are rejected before anything is committed so the round can be
	// replayed.
	if sess.rankBy == models.RankByShinies {
		for i := range result {
			for j := i + 1; j < len(result); j++ {
				if result[i].Shinies == result[j].Shinies && result[i].Score == result[j].Score {
					return ErrDrawNotAllowed
				}
			}
		}
		sort.SliceStable(result, func(i, j int) bool {
			if result[i].Shinies != result[j].Shinies {
				return result[i].Shinies > result[j].Shinies
			}
			return result[i].Score > result[j].Score
		})
		// Report the ranking metric as the score.
		for i := range result {
			result[i].Score = result[i].Shinies
		}
	} else {
		for i := range result {
			for j := i + 1; j < len(result); j++ {
				if result[i].Score == result[j].Score {
					return ErrDrawNotAllowed
				}
			}
		}
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Score > result[j].Score
		})
	}

	return sess.addResults(ctx, result)
}
