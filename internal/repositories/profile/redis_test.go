package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/nairobininja/fina/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetProfile() {
	contestant := &models.Contestant{
		UserID:    "user-1",
		Name:      "Nami",
		AccountID: "61616161",
		Rating:    1150,
		Best30:    1203,
	}

	err := s.repo.SaveProfile(context.Background(), &SaveProfileInput{
		Profile: contestant,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetProfile(context.Background(), &GetProfileInput{
		UserID: "user-1",
	})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved)

	s.Equal("user-1", retrieved.UserID)
	s.Equal("Nami", retrieved.Name)
	s.Equal("61616161", retrieved.AccountID)
	s.Equal(1150, retrieved.Rating)
	s.Equal(1203, retrieved.Best30)
}

func (s *RedisRepositoryTestSuite) TestGetProfileNotFound() {
	_, err := s.repo.GetProfile(context.Background(), &GetProfileInput{
		UserID: "missing",
	})
	s.Require().Error(err)
	s.True(errors.Is(err, ErrProfileNotFound))
}

func (s *RedisRepositoryTestSuite) TestGetProfiles() {
	for _, contestant := range []*models.Contestant{
		{UserID: "user-1", Name: "Nami", Rating: 1150},
		{UserID: "user-2", Name: "Toa", Rating: 1220},
	} {
		err := s.repo.SaveProfile(context.Background(), &SaveProfileInput{
			Profile: contestant,
		})
		s.Require().NoError(err)
	}

	out, err := s.repo.GetProfiles(context.Background(), &GetProfilesInput{
		UserIDs: []string{"user-1", "user-2"},
	})
	s.Require().NoError(err)
	s.Require().Len(out.Profiles, 2)
	s.Equal("Nami", out.Profiles[0].Name)
	s.Equal("Toa", out.Profiles[1].Name)
}

func (s *RedisRepositoryTestSuite) TestGetProfilesPartialMiss() {
	err := s.repo.SaveProfile(context.Background(), &SaveProfileInput{
		Profile: &models.Contestant{UserID: "user-1", Name: "Nami"},
	})
	s.Require().NoError(err)

	_, err = s.repo.GetProfiles(context.Background(), &GetProfilesInput{
		UserIDs: []string{"user-1", "user-2"},
	})
	s.Require().Error(err)
	s.True(errors.Is(err, ErrProfileNotFound))
	s.Contains(err.Error(), "user-2")
}
