package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nairobininja/fina/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis
	profileKeyPrefix = "profile:"
)

// ErrProfileNotFound is returned when a contestant profile is not found
var ErrProfileNotFound = errors.New("profile not found")

// Config holds configuration for the Redis profile repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed profile repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveProfile persists a contestant profile to Redis
func (r *redisRepository) SaveProfile(ctx context.Context, input *SaveProfileInput) error {
	if input == nil || input.Profile == nil {
		return errors.New("input and profile cannot be nil")
	}

	if input.Profile.UserID == "" {
		return errors.New("profile user ID cannot be empty")
	}

	profileJSON, err := json.Marshal(input.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	key := fmt.Sprintf("%s%s", profileKeyPrefix, input.Profile.UserID)
	if err := r.client.Set(ctx, key, profileJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

// GetProfile retrieves a contestant profile by user ID from Redis
func (r *redisRepository) GetProfile(ctx context.Context, input *GetProfileInput) (*models.Contestant, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	key := fmt.Sprintf("%s%s", profileKeyPrefix, input.UserID)
	profileJSON, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var contestant models.Contestant
	if err := json.Unmarshal([]byte(profileJSON), &contestant); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	return &contestant, nil
}

// GetProfiles retrieves profiles for all given user IDs. A missing profile
// fails the whole batch with ErrProfileNotFound.
func (r *redisRepository) GetProfiles(ctx context.Context, input *GetProfilesInput) (*GetProfilesOutput, error) {
	if input == nil || len(input.UserIDs) == 0 {
		return nil, errors.New("input and user IDs cannot be empty")
	}

	keys := make([]string, len(input.UserIDs))
	for i, userID := range input.UserIDs {
		keys[i] = fmt.Sprintf("%s%s", profileKeyPrefix, userID)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}

	profiles := make([]*models.Contestant, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, input.UserIDs[i])
		}

		var contestant models.Contestant
		if err := json.Unmarshal([]byte(raw), &contestant); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile %s: %w", input.UserIDs[i], err)
		}
		profiles = append(profiles, &contestant)
	}

	return &GetProfilesOutput{Profiles: profiles}, nil
}
