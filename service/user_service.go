package service

import (
	"context"
	"fmt"

	"msgleader/models"
	"msgleader/store"
)

// UserService covers the explicit record edits: count overrides, bot
// flagging, deletion, name refresh, and the single-user queries.
type UserService struct {
	records   *store.RecordStore
	persister Persister
}

// NewUserService creates a new user service
func NewUserService(records *store.RecordStore, persister Persister) *UserService {
	return &UserService{records: records, persister: persister}
}

// EditCount sets a user's raw count, creating the record when absent.
func (s *UserService) EditCount(ctx context.Context, guildID, userID, displayName string, count int) error {
	if count < 0 {
		return fmt.Errorf("message count must not be negative, got %d: %w", count, ErrValidation)
	}
	_ = s.records.Update(guildID, func(records store.GuildRecords) error {
		if rec, ok := records[userID]; ok {
			rec.Messages = count
			return nil
		}
		rec := models.NewUserRecord(displayName, false)
		rec.Messages = count
		records[userID] = rec
		return nil
	})
	if err := s.persister.SaveMessages(ctx); err != nil {
		return fmt.Errorf("count updated but not persisted: %w", err)
	}
	return nil
}

// SetBotFlag marks or unmarks a user as a bot account. Bot entries are
// listed in their own leaderboard segment.
func (s *UserService) SetBotFlag(ctx context.Context, guildID, userID string, isBot bool) error {
	err := s.records.Update(guildID, func(records store.GuildRecords) error {
		rec, ok := records[userID]
		if !ok {
			return store.ErrNotFound
		}
		rec.IsBot = isBot
		return nil
	})
	if err != nil {
		return err
	}
	if err := s.persister.SaveMessages(ctx); err != nil {
		return fmt.Errorf("bot flag updated but not persisted: %w", err)
	}
	return nil
}

// DeleteUser removes a user's record and repairs any link touching it: a
// deleted alt is dropped from its primary's list, and a deleted primary
// releases all of its alts.
func (s *UserService) DeleteUser(ctx context.Context, guildID, userID string) error {
	err := s.records.Update(guildID, func(records store.GuildRecords) error {
		rec, ok := records[userID]
		if !ok {
			return store.ErrNotFound
		}

		if rec.IsAlt {
			for _, primary := range records {
				if primary.Alts.Contains(userID) {
					primary.Alts = primary.Alts.Remove(userID)
				}
			}
		}
		for _, altID := range rec.Alts {
			if alt, ok := records[altID]; ok {
				alt.IsAlt = false
			}
		}

		delete(records, userID)
		return nil
	})
	if err != nil {
		return err
	}
	if err := s.persister.SaveMessages(ctx); err != nil {
		return fmt.Errorf("user deleted but not persisted: %w", err)
	}
	return nil
}

// UpdateName refreshes a user's stored display name. It reports false when
// the name was already up to date.
func (s *UserService) UpdateName(ctx context.Context, guildID, userID, name string) (bool, error) {
	var changed bool
	err := s.records.Update(guildID, func(records store.GuildRecords) error {
		rec, ok := records[userID]
		if !ok {
			return store.ErrNotFound
		}
		if rec.Name != name {
			rec.Name = name
			changed = true
		}
		return nil
	})
	if err != nil || !changed {
		return false, err
	}
	if err := s.persister.SaveMessages(ctx); err != nil {
		return true, fmt.Errorf("name updated but not persisted: %w", err)
	}
	return true, nil
}

// QueryUser returns a user's standing using the same effective-total
// formula as the leaderboard.
func (s *UserService) QueryUser(guildID, userID string) (*models.UserStanding, error) {
	var standing *models.UserStanding
	err := s.records.View(guildID, func(records store.GuildRecords) error {
		rec, ok := records[userID]
		if !ok {
			return store.ErrNotFound
		}
		standing = &models.UserStanding{
			UserID:   userID,
			Name:     rec.Name,
			Messages: rec.Messages,
			Total:    effectiveTotal(records, userID),
			AltCount: len(rec.Alts),
			IsAlt:    rec.IsAlt,
			IsBot:    rec.IsBot,
		}
		return nil
	})
	return standing, err
}

// QueryAltInfo describes a user's position in an alt link: the primary it
// rolls up into when it is an alt, or its linked alts otherwise.
func (s *UserService) QueryAltInfo(guildID, userID string) (*models.AltInfo, error) {
	var info *models.AltInfo
	err := s.records.View(guildID, func(records store.GuildRecords) error {
		rec, ok := records[userID]
		if !ok {
			return store.ErrNotFound
		}
		info = &models.AltInfo{
			UserID: userID,
			Name:   rec.Name,
			IsAlt:  rec.IsAlt,
			AltIDs: append([]string(nil), rec.Alts...),
		}
		if rec.IsAlt {
			info.PrimaryID = resolvePrimary(records, userID)
		}
		return nil
	})
	return info, err
}
