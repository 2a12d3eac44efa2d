package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/nairobininja/fina/internal/arcapi"
	"github.com/nairobininja/fina/internal/common/clock"
	"github.com/nairobininja/fina/internal/common/shuffle"
	"github.com/nairobininja/fina/internal/common/uuid"
	"github.com/nairobininja/fina/internal/handlers/discord"
	chartRepo "github.com/nairobininja/fina/internal/repositories/chart"
	profileRepo "github.com/nairobininja/fina/internal/repositories/profile"
	"github.com/nairobininja/fina/internal/services/contest"
)

func main() {
	// Local development overrides; a missing .env file is fine
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	profiles, err := profileRepo.NewRedis(&profileRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create profile repository: %v", err)
	}

	charts, err := chartRepo.NewRedis(&chartRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create chart repository: %v", err)
	}

	// Initialize score API client
	scoreAPIURL := getEnv("SCORE_API_URL", "")
	if scoreAPIURL == "" {
		log.Fatal("SCORE_API_URL environment variable is required")
	}
	scoreClient, err := arcapi.New(&arcapi.Config{
		BaseURL: scoreAPIURL,
		Token:   getEnv("SCORE_API_TOKEN", ""),
	})
	if err != nil {
		log.Fatalf("Failed to create score API client: %v", err)
	}

	// Get Discord token from environment
	discordToken := getEnv("DISCORD_TOKEN", "")
	if discordToken == "" {
		log.Fatal("DISCORD_TOKEN environment variable is required")
	}

	// The notifier and the bot share one Discord session
	session, err := discordgo.New("Bot " + discordToken)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	notifier, err := discord.NewNotifier(session)
	if err != nil {
		log.Fatalf("Failed to create notifier: %v", err)
	}

	// Initialize contest service
	contestSvc, err := contest.New(&contest.Config{
		ProfileRepo:   profiles,
		ChartRepo:     charts,
		ScoreClient:   scoreClient,
		Notifier:      notifier,
		Platform:      notifier,
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
		Shuffler:      shuffle.New(&shuffle.Config{}),
	})
	if err != nil {
		log.Fatalf("Failed to create contest service: %v", err)
	}
	defer contestSvc.Close()

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		ApplicationID:  getEnv("APPLICATION_ID", ""),
		GuildID:        getEnv("GUILD_ID", ""),
		Session:        session,
		ContestService: contestSvc,
	})
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	// Start the bot
	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Shutdown the bot
	if err := bot.Stop(); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}

	log.Println("Bot has been shut down")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
