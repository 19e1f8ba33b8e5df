// Package bot is the Discord adapter: it translates gateway events and
// slash commands into core operations and renders the results. All
// user-facing phrasing lives here.
package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"msgleader/service"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
}

// messageCacheSize bounds the per-channel message cache. Delete events
// carry no author, so the state cache must hold recent messages for
// handleMessageDelete to resolve who to debit.
const messageCacheSize = 2000

type Bot struct {
	config             Config
	session            *discordgo.Session
	counterService     *service.CounterService
	altService         *service.AltService
	leaderboardService *service.LeaderboardService
	settingsService    *service.SettingsService
	userService        *service.UserService
}

func New(config Config, counterService *service.CounterService, altService *service.AltService, leaderboardService *service.LeaderboardService, settingsService *service.SettingsService, userService *service.UserService) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages
	dg.State.MaxMessageCount = messageCacheSize

	bot := &Bot{
		config:             config,
		session:            dg,
		counterService:     counterService,
		altService:         altService,
		leaderboardService: leaderboardService,
		settingsService:    settingsService,
		userService:        userService,
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register gateway event handlers for message counting
	dg.AddHandler(bot.handleMessageCreate)
	dg.AddHandler(bot.handleMessageDelete)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "leaderboard":
		b.handleLeaderboard(s, i)
	case "rank":
		b.handleRank(s, i)
	case "alts":
		b.handleAltInfo(s, i)
	case "minfo":
		b.handleMinimumInfo(s, i)
	case "name":
		b.handleNameRefresh(s, i)
	case "edit":
		b.handleEdit(s, i)
	case "alt":
		b.handleAltCommand(s, i)
	case "bot":
		b.handleBotFlag(s, i)
	case "delete":
		b.handleDelete(s, i)
	case "minimum":
		b.handleMinimum(s, i)
	case "autoupdate":
		b.handleAutoUpdate(s, i)
	}
}
