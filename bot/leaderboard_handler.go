package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"msgleader/models"
)

// embedColor matches the purple the leaderboard has always used.
const embedColor = 7419530

// handleLeaderboard renders the guild leaderboard as an embed.
func (b *Bot) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	lb, err := b.leaderboardService.Build(ctx, i.GuildID, invoker(i).ID)
	if err != nil {
		log.Errorf("Error building leaderboard for guild %s: %v", i.GuildID, err)
		b.respondWithError(s, i, "Unable to build the leaderboard. Please try again.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Message Leaderboard",
		Color:       embedColor,
		Description: RenderLeaderboard(lb),
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		log.Errorf("Error responding to leaderboard command: %v", err)
	}
}

// RenderLeaderboard turns the structured result into embed text: ranked
// rows first, bots after a blank line, and the invoker's own row last when
// it fell below the minimum.
func RenderLeaderboard(lb *models.Leaderboard) string {
	if len(lb.Ranked) == 0 && len(lb.Bots) == 0 && lb.Invoker == nil {
		return "Nobody here yet."
	}

	var sb strings.Builder
	for _, entry := range lb.Ranked {
		sb.WriteString(renderEntry(entry))
		sb.WriteString("\n")
	}

	if len(lb.Bots) > 0 {
		sb.WriteString("\n")
		for _, entry := range lb.Bots {
			sb.WriteString(renderEntry(entry))
			sb.WriteString("\n")
		}
	}

	if lb.Invoker != nil {
		sb.WriteString("\n")
		sb.WriteString(renderEntry(*lb.Invoker))
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderEntry(entry models.LeaderboardEntry) string {
	line := fmt.Sprintf("%s: %s%s", FormatCount(entry.Total), entry.Name, FormatAltSuffix(entry.AltCount))
	if entry.Highlighted {
		return fmt.Sprintf("**%s**", line)
	}
	return line
}

// handleRank shows a single user's standing, alt totals included.
func (b *Bot) handleRank(s *discordgo.Session, i *discordgo.InteractionCreate) {
	target := userOption(s, i, i.ApplicationCommandData().Options)

	standing, err := b.userService.QueryUser(i.GuildID, target.ID)
	if err != nil {
		b.respondWithServiceError(s, i, err)
		return
	}

	line := fmt.Sprintf("**%s** has **%s** messages", standing.Name, FormatCount(standing.Messages))
	if standing.AltCount > 0 {
		line += fmt.Sprintf(" (**%s** counting %s)", FormatCount(standing.Total), altNoun(standing.AltCount))
	}
	if standing.IsAlt {
		line += " (counted toward their main account)"
	}
	b.respond(s, i, line)
}

// handleAltInfo describes a user's alt links.
func (b *Bot) handleAltInfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	target := userOption(s, i, i.ApplicationCommandData().Options)

	info, err := b.userService.QueryAltInfo(i.GuildID, target.ID)
	if err != nil {
		b.respondWithServiceError(s, i, err)
		return
	}

	switch {
	case info.IsAlt:
		b.respond(s, i, fmt.Sprintf("**%s** is an alt of <@%s>", info.Name, info.PrimaryID))
	case len(info.AltIDs) > 0:
		mentions := make([]string, len(info.AltIDs))
		for n, id := range info.AltIDs {
			mentions[n] = fmt.Sprintf("<@%s>", id)
		}
		b.respond(s, i, fmt.Sprintf("**%s** has %s: %s", info.Name, altNoun(len(info.AltIDs)), strings.Join(mentions, ", ")))
	default:
		b.respond(s, i, fmt.Sprintf("**%s** has no alts", info.Name))
	}
}

func altNoun(n int) string {
	if n == 1 {
		return "1 alt"
	}
	return fmt.Sprintf("%d alts", n)
}

// handleMinimumInfo prints the guild's current leaderboard threshold.
func (b *Bot) handleMinimumInfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	minimum := b.settingsService.Minimum(i.GuildID)
	b.respond(s, i, fmt.Sprintf("The current minimum is **%s** messages", FormatCount(minimum)))
}

// handleNameRefresh updates the invoker's stored display name on demand.
func (b *Bot) handleNameRefresh(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	user := invoker(i)

	changed, err := b.userService.UpdateName(ctx, i.GuildID, user.ID, user.Username)
	if err != nil {
		b.respondWithServiceError(s, i, err)
		return
	}
	if !changed {
		b.respond(s, i, "Your name is already up to date")
		return
	}
	b.respond(s, i, fmt.Sprintf("Name updated to **%s**", user.Username))
}
