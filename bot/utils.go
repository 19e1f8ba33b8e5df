package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"msgleader/service"
	"msgleader/storage"
	"msgleader/store"
)

// FormatCount formats a message count with thousand separators
func FormatCount(count int) string {
	str := fmt.Sprintf("%d", count)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatAltSuffix renders the alt-count annotation appended to a
// leaderboard row: nothing for zero, "+ alt" for one, "+ N alts" above.
func FormatAltSuffix(altCount int) string {
	switch {
	case altCount <= 0:
		return ""
	case altCount == 1:
		return " + alt"
	default:
		return fmt.Sprintf(" + %d alts", altCount)
	}
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:         content,
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		},
	})
	if err != nil {
		log.Errorf("Error sending response: %v", err)
	}
}

func (b *Bot) respondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// respondWithServiceError maps a core error onto user-facing phrasing. The
// core returns typed values and never dictates wording.
func (b *Bot) respondWithServiceError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	var persistErr *storage.PersistenceError

	switch {
	case errors.Is(err, store.ErrNotFound):
		b.respondWithError(s, i, "User not found, try `/edit user count` first")
	case errors.Is(err, service.ErrSelfReference):
		b.respondWithError(s, i, "A user can't be an alt of itself")
	case errors.Is(err, service.ErrAlreadyAlt):
		b.respondWithError(s, i, "That user is already an alt")
	case errors.Is(err, service.ErrNotAnAlt):
		b.respondWithError(s, i, "Those users are not linked")
	case errors.Is(err, service.ErrValidation):
		b.respondWithError(s, i, "You must input a valid number")
	case errors.As(err, &persistErr):
		log.WithError(err).Error("Persistence failure during command")
		b.respondWithError(s, i, "Saved in memory, but writing to disk failed. The change may not survive a restart.")
	default:
		log.WithError(err).Error("Unexpected error during command")
		b.respondWithError(s, i, "Something went wrong. Please try again later.")
	}
}

// invoker returns the user who triggered the interaction, from either a
// guild member or a direct invocation.
func invoker(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

// userOption extracts the "user" option from opts, falling back to the
// invoker when the option is absent.
func userOption(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.User {
	for _, opt := range opts {
		if opt.Name == "user" && opt.Type == discordgo.ApplicationCommandOptionUser {
			return opt.UserValue(s)
		}
	}
	return invoker(i)
}
