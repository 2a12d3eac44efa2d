package profile

import "github.com/nairobininja/fina/internal/models"

type SaveProfileInput struct {
	Profile *models.Contestant
}

type GetProfileInput struct {
	UserID string
}

type GetProfilesInput struct {
	UserIDs []string
}

type GetProfilesOutput struct {
	Profiles []*models.Contestant
}
