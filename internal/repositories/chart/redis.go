package chart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/nairobininja/fina/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	chartKeyPrefix = "chart:"
	ownedKeyPrefix = "owned:"
	catalogKey     = "charts"
)

// ErrChartMissing is returned when a chart is not in the catalog
var ErrChartMissing = errors.New("chart not found in catalog")

// Config holds configuration for the Redis chart repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed chart repository
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

// SaveChart upserts a chart into the catalog
func (r *redisRepository) SaveChart(ctx context.Context, input *SaveChartInput) error {
	if input == nil || input.Chart == nil {
		return errors.New("input and chart cannot be nil")
	}

	// Draft status is per-session state, never catalog state
	catalogChart := *input.Chart
	catalogChart.Status = ""

	chartJSON, err := json.Marshal(&catalogChart)
	if err != nil {
		return fmt.Errorf("failed to marshal chart: %w", err)
	}

	ref := input.Chart.Ref().String()

	pipe := r.client.Pipeline()
	pipe.Set(ctx, fmt.Sprintf("%s%s", chartKeyPrefix, ref), chartJSON, 0)
	pipe.SAdd(ctx, catalogKey, ref)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save chart: %w", err)
	}

	return nil
}

// GetChart retrieves a catalog chart by reference
func (r *redisRepository) GetChart(ctx context.Context, input *GetChartInput) (*models.Chart, error) {
	if input == nil || input.Ref.SongKey == "" {
		return nil, errors.New("input and chart reference cannot be empty")
	}

	key := fmt.Sprintf("%s%s", chartKeyPrefix, input.Ref.String())
	chartJSON, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrChartMissing
		}
		return nil, fmt.Errorf("failed to get chart: %w", err)
	}

	var c models.Chart
	if err := json.Unmarshal([]byte(chartJSON), &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chart: %w", err)
	}

	return &c, nil
}

// ListCharts retrieves the whole catalog. Dangling catalog references are
// logged and skipped.
func (r *redisRepository) ListCharts(ctx context.Context) (*ListChartsOutput, error) {
	refs, err := r.client.SMembers(ctx, catalogKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list the catalog: %w", err)
	}
	if len(refs) == 0 {
		return &ListChartsOutput{}, nil
	}

	chartKeys := make([]string, len(refs))
	for i, ref := range refs {
		chartKeys[i] = fmt.Sprintf("%s%s", chartKeyPrefix, ref)
	}

	values, err := r.client.MGet(ctx, chartKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get charts: %w", err)
	}

	charts := make([]*models.Chart, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			log.Printf("catalog entry %s has no chart record, skipping", refs[i])
			continue
		}

		var c models.Chart
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal chart %s: %w", refs[i], err)
		}
		charts = append(charts, &c)
	}

	return &ListChartsOutput{Charts: charts}, nil
}

// SetOwnership replaces the set of charts a user owns
func (r *redisRepository) SetOwnership(ctx context.Context, input *SetOwnershipInput) error {
	if input == nil || input.UserID == "" {
		return errors.New("input and user ID cannot be empty")
	}

	key := fmt.Sprintf("%s%s", ownedKeyPrefix, input.UserID)

	pipe := r.client.Pipeline()
	pipe.Del(ctx, key)
	if len(input.Refs) > 0 {
		members := make([]interface{}, len(input.Refs))
		for i, ref := range input.Refs {
			members[i] = ref.String()
		}
		pipe.SAdd(ctx, key, members...)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set ownership: %w", err)
	}

	return nil
}

// QueryCommonCharts intersects the users' ownership sets and filters the
// resulting charts by difficulty window, tier and color. The returned charts
// are freshly allocated; callers may mutate them freely.
func (r *redisRepository) QueryCommonCharts(ctx context.Context, input *QueryCommonChartsInput) (*QueryCommonChartsOutput, error) {
	if input == nil || len(input.UserIDs) == 0 {
		return nil, errors.New("input and user IDs cannot be empty")
	}

	keys := make([]string, len(input.UserIDs))
	for i, userID := range input.UserIDs {
		keys[i] = fmt.Sprintf("%s%s", ownedKeyPrefix, userID)
	}

	refs, err := r.client.SInter(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to intersect ownership sets: %w", err)
	}

	if len(refs) == 0 {
		return &QueryCommonChartsOutput{}, nil
	}

	chartKeys := make([]string, len(refs))
	for i, ref := range refs {
		chartKeys[i] = fmt.Sprintf("%s%s", chartKeyPrefix, ref)
	}

	values, err := r.client.MGet(ctx, chartKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get charts: %w", err)
	}

	charts := make([]*models.Chart, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// Ownership references a chart the catalog no longer has
			log.Printf("owned chart %s missing from catalog, skipping", refs[i])
			continue
		}

		var c models.Chart
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal chart %s: %w", refs[i], err)
		}

		if c.Constant < input.MinConstant || c.Constant > input.MaxConstant {
			continue
		}
		if !matchesDifficulty(&c, input.Difficulty) {
			continue
		}
		if !matchesColor(&c, input.Color) {
			continue
		}

		charts = append(charts, &c)
	}

	return &QueryCommonChartsOutput{Charts: charts}, nil
}

func matchesDifficulty(c *models.Chart, filter models.DifficultyFilter) bool {
	switch filter {
	case models.DifficultyAll, "":
		return true
	case models.DifficultyPast:
		return c.Tier == models.TierPast
	case models.DifficultyPresent:
		return c.Tier == models.TierPresent
	case models.DifficultyFuture:
		return c.Tier == models.TierFuture
	case models.DifficultyBeyond:
		return c.Tier == models.TierBeyond
	case models.DifficultyFutureOrBeyond:
		return c.Tier >= models.TierFuture
	default:
		log.Printf("unknown difficulty filter %q, ignoring", filter)
		return true
	}
}

func matchesColor(c *models.Chart, filter models.ColorFilter) bool {
	switch filter {
	case models.ColorBoth, "":
		return true
	case models.ColorLight:
		return c.Color == models.ChartColorLight || c.Color == models.ChartColorless
	case models.ColorDark:
		return c.Color == models.ChartColorDark
	case models.ColorLightInvertible:
		// Light charts, plus dark ones that can show a light background
		return c.Color != models.ChartColorDark || c.LightBG != ""
	case models.ColorDarkInvertible:
		return c.Color == models.ChartColorDark || c.DarkBG != ""
	case models.ColorLightVsDark, models.ColorLightVsDarkInverted:
		// Dual-side pools keep both colors; the pool builder partitions them
		return true
	default:
		log.Printf("unknown color filter %q, ignoring", filter)
		return true
	}
}
