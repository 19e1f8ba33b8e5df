package bot

import (
	"github.com/bwmarrin/discordgo"
)

// handleMessageCreate counts every guild message except the bot's own.
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}
	if m.GuildID == "" {
		return
	}

	b.counterService.RecordMessage(m.GuildID, m.Author.ID, m.Author.Username, m.Author.Bot)
}

// handleMessageDelete takes a count back when a message is removed. The
// delete event carries no author, so the cached copy resolves who to debit.
func (b *Bot) handleMessageDelete(s *discordgo.Session, m *discordgo.MessageDelete) {
	if m.GuildID == "" {
		return
	}

	cached := m.BeforeDelete
	if cached == nil || cached.Author == nil {
		return
	}
	if cached.Author.ID == s.State.User.ID {
		return
	}

	b.counterService.RemoveMessage(m.GuildID, cached.Author.ID)
}
