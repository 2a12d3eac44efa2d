package profile

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/nairobininja/fina/internal/repositories/profile Repository

import (
	"context"

	"github.com/nairobininja/fina/internal/models"
)

// Repository defines the interface for contestant profile persistence
type Repository interface {
	// SaveProfile persists a contestant profile
	SaveProfile(ctx context.Context, input *SaveProfileInput) error

	// GetProfile retrieves a contestant profile by user ID
	GetProfile(ctx context.Context, input *GetProfileInput) (*models.Contestant, error)

	// GetProfiles retrieves profiles for all given user IDs; every ID must resolve
	GetProfiles(ctx context.Context, input *GetProfilesInput) (*GetProfilesOutput, error)
}
