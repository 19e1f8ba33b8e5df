package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var manageChannels int64 = discordgo.PermissionManageChannels

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "leaderboard",
			Description: "Show the message leaderboard",
		},
		{
			Name:        "rank",
			Description: "Show a user's message count and standing",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to look up (defaults to you)",
				},
			},
		},
		{
			Name:        "alts",
			Description: "Show a user's linked alt accounts",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to look up (defaults to you)",
				},
			},
		},
		{
			Name:        "minfo",
			Description: "Show the minimum message count needed to appear on the leaderboard",
		},
		{
			Name:        "name",
			Description: "Refresh your name on the leaderboard",
		},
		{
			Name:                     "edit",
			Description:              "Set a user's message count",
			DefaultMemberPermissions: &manageChannels,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to edit",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "count",
					Description: "New message count",
					Required:    true,
				},
			},
		},
		{
			Name:                     "alt",
			Description:              "Link or unlink alt accounts",
			DefaultMemberPermissions: &manageChannels,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "link",
					Description: "Count an alt's messages toward a user's total",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Main account",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "alt",
							Description: "Alt account",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "unlink",
					Description: "Remove an alt from a user",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Main account",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "alt",
							Description: "Alt account",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:                     "bot",
			Description:              "Mark or unmark a user as a bot account",
			DefaultMemberPermissions: &manageChannels,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "List a user in the bot section of the leaderboard",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "User to mark",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "unset",
					Description: "Remove the bot tag from a user",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "User to unmark",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:                     "delete",
			Description:              "Delete a user from the leaderboard",
			DefaultMemberPermissions: &manageChannels,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to delete",
					Required:    true,
				},
			},
		},
		{
			Name:                     "minimum",
			Description:              "Change the minimum message count needed to appear on the leaderboard",
			DefaultMemberPermissions: &manageChannels,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "value",
					Description: "New minimum (must be positive)",
					Required:    true,
				},
			},
		},
		{
			Name:                     "autoupdate",
			Description:              "Toggle automatic addition of new users to the leaderboard",
			DefaultMemberPermissions: &manageChannels,
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
