package contest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nairobininja/fina/internal/models"
	"github.com/nairobininja/fina/internal/repositories/chart"
	"github.com/nairobininja/fina/internal/repositories/profile"
)

// best30Window is how many best plays feed the best-30 average.
const best30Window = 30

// LinkProfile stores a contestant's score API account. Linking again
// overwrites the previous account but keeps nothing else.
func (s *service) LinkProfile(ctx context.Context, input *LinkProfileInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if input.UserID == "" || input.AccountID == "" {
		return errors.New("user ID and account ID cannot be empty")
	}

	err := s.profileRepo.SaveProfile(ctx, &profile.SaveProfileInput{
		Profile: &models.Contestant{
			UserID:    input.UserID,
			Name:      input.Name,
			AccountID: input.AccountID,
			Rating:    input.Rating,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to save the profile: %w", err)
	}
	return nil
}

// SetOwnedPacks replaces a contestant's owned charts with every catalog
// chart belonging to one of the given packs. Pack names match ignoring case.
func (s *service) SetOwnedPacks(ctx context.Context, input *SetOwnedPacksInput) (*SetOwnedPacksOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.UserID == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	catalog, err := s.chartRepo.ListCharts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list the chart catalog: %w", err)
	}

	var refs []models.ChartRef
	for _, c := range catalog.Charts {
		for _, pack := range input.Packs {
			if strings.EqualFold(c.Pack, strings.TrimSpace(pack)) {
				refs = append(refs, c.Ref())
				break
			}
		}
	}

	err = s.chartRepo.SetOwnership(ctx, &chart.SetOwnershipInput{
		UserID: input.UserID,
		Refs:   refs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save chart ownership: %w", err)
	}

	return &SetOwnedPacksOutput{ChartCount: len(refs)}, nil
}

// SyncProfile refreshes a contestant's best-30 average from the score API
// and persists it. The average is left untouched when the API returns no
// plays.
func (s *service) SyncProfile(ctx context.Context, input *SyncProfileInput) (*SyncProfileOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	prof, err := s.profileRepo.GetProfile(ctx, &profile.GetProfileInput{UserID: input.UserID})
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, fmt.Errorf("%w: <@%s>", ErrMissingProfile, input.UserID)
		}
		return nil, fmt.Errorf("failed to load the profile: %w", err)
	}

	plays, err := s.scoreClient.GetBestPlays(ctx, prof.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query the score API for <@%s>: %w", input.UserID, err)
	}

	if len(plays) > 0 {
		window := plays
		if len(window) > best30Window {
			window = window[:best30Window]
		}
		sum := 0
		for _, play := range window {
			sum += play.PotentialValue
		}
		prof.Best30 = sum / len(window)
	}

	if err := s.profileRepo.SaveProfile(ctx, &profile.SaveProfileInput{Profile: prof}); err != nil {
		return nil, fmt.Errorf("failed to save the profile: %w", err)
	}

	return &SyncProfileOutput{Profile: prof}, nil
}
