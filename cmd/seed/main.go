package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/nairobininja/fina/internal/models"
	chartRepo "github.com/nairobininja/fina/internal/repositories/chart"
)

// Loads a chart catalog JSON file into Redis. The file holds an array of
// chart objects in the same shape the repository stores.
func main() {
	file := flag.String("file", "charts.json", "path to the chart catalog file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}

	var charts []*models.Chart
	if err := json.Unmarshal(raw, &charts); err != nil {
		log.Fatalf("Failed to parse %s: %v", *file, err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	repo, err := chartRepo.NewRedis(&chartRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create chart repository: %v", err)
	}

	for _, c := range charts {
		if err := repo.SaveChart(context.Background(), &chartRepo.SaveChartInput{Chart: c}); err != nil {
			log.Fatalf("Failed to save chart %s: %v", c.Ref(), err)
		}
	}

	log.Printf("Seeded %d charts from %s", len(charts), *file)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
