package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// requireManageChannels enforces the admin gate at invocation time.
// Registration already restricts the commands via default member
// permissions; this backstop covers guilds that loosened the overrides.
func (b *Bot) requireManageChannels(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if i.Member == nil || i.Member.Permissions&discordgo.PermissionManageChannels == 0 {
		b.respondWithError(s, i, "You need the Manage Channels permission to do that")
		return false
	}
	return true
}

// handleEdit sets a user's message count explicitly, creating the record
// when needed.
func (b *Bot) handleEdit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireManageChannels(s, i) {
		return
	}
	ctx := context.Background()

	var target *discordgo.User
	var count int
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "user":
			target = opt.UserValue(s)
		case "count":
			count = int(opt.IntValue())
		}
	}
	if target == nil {
		b.respondWithError(s, i, "You must choose a user")
		return
	}

	if err := b.userService.EditCount(ctx, i.GuildID, target.ID, target.Username, count); err != nil {
		b.respondWithServiceError(s, i, err)
		return
	}
	b.respond(s, i, fmt.Sprintf("**%s** was saved with **%s** messages", target.Username, FormatCount(count)))
}

// handleAltCommand routes /alt link and /alt unlink.
func (b *Bot) handleAltCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireManageChannels(s, i) {
		return
	}
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondWithError(s, i, "Please specify a subcommand: link or unlink")
		return
	}

	var primary, alt *discordgo.User
	for _, opt := range options[0].Options {
		switch opt.Name {
		case "user":
			primary = opt.UserValue(s)
		case "alt":
			alt = opt.UserValue(s)
		}
	}
	if primary == nil || alt == nil {
		b.respondWithError(s, i, "You must choose both users")
		return
	}

	ctx := context.Background()
	switch options[0].Name {
	case "link":
		if err := b.altService.LinkAlt(ctx, i.GuildID, primary.ID, alt.ID); err != nil {
			b.respondWithServiceError(s, i, err)
			return
		}
		b.respond(s, i, fmt.Sprintf("**%s** was saved as an alt of **%s**", alt.Username, primary.Username))
	case "unlink":
		if err := b.altService.UnlinkAlt(ctx, i.GuildID, primary.ID, alt.ID); err != nil {
			b.respondWithServiceError(s, i, err)
			return
		}
		b.respond(s, i, fmt.Sprintf("**%s** is no longer an alt of **%s**", alt.Username, primary.Username))
	default:
		b.respondWithError(s, i, "Unknown subcommand")
	}
}

// handleBotFlag routes /bot set and /bot unset.
func (b *Bot) handleBotFlag(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireManageChannels(s, i) {
		return
	}
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondWithError(s, i, "Please specify a subcommand: set or unset")
		return
	}

	target := userOption(s, i, options[0].Options)
	ctx := context.Background()

	switch options[0].Name {
	case "set":
		if err := b.userService.SetBotFlag(ctx, i.GuildID, target.ID, true); err != nil {
			b.respondWithServiceError(s, i, err)
			return
		}
		b.respond(s, i, fmt.Sprintf("**%s** is now listed as a bot", target.Username))
	case "unset":
		if err := b.userService.SetBotFlag(ctx, i.GuildID, target.ID, false); err != nil {
			b.respondWithServiceError(s, i, err)
			return
		}
		b.respond(s, i, fmt.Sprintf("**%s** is no longer listed as a bot", target.Username))
	default:
		b.respondWithError(s, i, "Unknown subcommand")
	}
}

// handleDelete removes a user from the leaderboard entirely.
func (b *Bot) handleDelete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireManageChannels(s, i) {
		return
	}
	ctx := context.Background()
	target := userOption(s, i, i.ApplicationCommandData().Options)

	if err := b.userService.DeleteUser(ctx, i.GuildID, target.ID); err != nil {
		b.respondWithServiceError(s, i, err)
		return
	}
	b.respond(s, i, fmt.Sprintf("**%s** was deleted", target.Username))
}

// handleMinimum changes the guild's leaderboard threshold.
func (b *Bot) handleMinimum(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireManageChannels(s, i) {
		return
	}
	ctx := context.Background()

	var value int
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "value" {
			value = int(opt.IntValue())
		}
	}

	if err := b.settingsService.SetMinimum(ctx, i.GuildID, value); err != nil {
		b.respondWithServiceError(s, i, err)
		return
	}
	if value == 1 {
		b.respond(s, i, "Every user with more than **1** message will now be displayed on the leaderboard")
		return
	}
	b.respond(s, i, fmt.Sprintf("Every user with more than **%s** messages will now be displayed on the leaderboard", FormatCount(value)))
}

// handleAutoUpdate toggles the listen-to-all enrollment policy.
func (b *Bot) handleAutoUpdate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireManageChannels(s, i) {
		return
	}
	ctx := context.Background()

	enabled, err := b.settingsService.ToggleListenToAll(ctx, i.GuildID)
	if err != nil {
		b.respondWithServiceError(s, i, err)
		return
	}
	if enabled {
		b.respond(s, i, "New users **will** get added to the leaderboard")
		return
	}
	b.respond(s, i, "New users **will not** get added to the leaderboard anymore")
}
