package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"msgleader/bot"
	"msgleader/config"
	"msgleader/service"
	"msgleader/storage"
	"msgleader/store"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting message leaderboard bot...")

	// Load configuration
	cfg := config.Get()

	// Load persisted state; missing or malformed documents start empty
	messagesPath := filepath.Join(cfg.DataDir, storage.MessagesFile)
	settingsPath := filepath.Join(cfg.DataDir, storage.SettingsFile)
	records := store.NewRecordStoreFrom(storage.LoadMessages(messagesPath, cfg.GuildID))
	settings := store.NewSettingsStoreFrom(storage.LoadSettings(settingsPath, cfg.GuildID))
	log.Info("Persisted state loaded")

	// Initialize persistence manager and periodic snapshots
	manager := storage.NewManager(cfg.DataDir, records, settings)
	if err := manager.StartScheduler(); err != nil {
		return fmt.Errorf("failed to start snapshot scheduler: %w", err)
	}

	// Initialize services
	counterService := service.NewCounterService(records, settings)
	altService := service.NewAltService(records, manager)
	leaderboardService := service.NewLeaderboardService(records, settings, manager)
	settingsService := service.NewSettingsService(settings, manager)
	userService := service.NewUserService(records, manager)
	log.Info("Services initialized successfully")

	// Initialize Discord bot
	botConfig := bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.GuildID,
	}
	discordBot, err := bot.New(botConfig, counterService, altService, leaderboardService, settingsService, userService)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Info("Shutting down bot...")

	// Close Discord bot connection
	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	// Flush state to disk before exiting
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := manager.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to flush state on shutdown: %w", err)
	}

	log.Info("Shutdown completed")
	return nil
}
