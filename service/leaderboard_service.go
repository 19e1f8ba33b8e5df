package service

import (
	"context"
	"sort"

	log "github.com/sirupsen/logrus"

	"msgleader/models"
	"msgleader/store"
)

// LeaderboardService aggregates effective totals across a guild into the
// three-segment leaderboard result.
type LeaderboardService struct {
	records   *store.RecordStore
	settings  *store.SettingsStore
	persister Persister
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(records *store.RecordStore, settings *store.SettingsStore, persister Persister) *LeaderboardService {
	return &LeaderboardService{records: records, settings: settings, persister: persister}
}

// Build produces the leaderboard for a guild. Alts are never ranked on
// their own; each non-alt candidate is scored with the effective-total
// formula. Non-bot candidates at or above the guild minimum form the
// ranked segment, sorted by total descending with ties broken by user id
// ascending so the output is deterministic. Bots follow unconditionally in
// id order. If the invoker's resolved primary did not clear the minimum,
// its row is appended last so the invoker always sees their own standing.
//
// A best-effort flush of the messages document runs alongside the query;
// a flush failure is logged, never surfaced.
func (s *LeaderboardService) Build(ctx context.Context, guildID, invokerID string) (*models.Leaderboard, error) {
	gs, _ := s.settings.GetOrCreate(guildID)
	lb := &models.Leaderboard{Minimum: gs.Minimum}

	err := s.records.View(guildID, func(records store.GuildRecords) error {
		primaryID := resolvePrimary(records, invokerID)

		var candidates []models.LeaderboardEntry
		for id, rec := range records {
			if rec.IsAlt {
				continue
			}
			candidates = append(candidates, models.LeaderboardEntry{
				UserID:      id,
				Name:        rec.Name,
				Total:       effectiveTotal(records, id),
				AltCount:    len(rec.Alts),
				IsBot:       rec.IsBot,
				Highlighted: id == primaryID,
			})
		}
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].Total != candidates[j].Total {
				return candidates[i].Total > candidates[j].Total
			}
			return candidates[i].UserID < candidates[j].UserID
		})

		for _, entry := range candidates {
			switch {
			case entry.IsBot:
				lb.Bots = append(lb.Bots, entry)
			case entry.Total >= gs.Minimum:
				lb.Ranked = append(lb.Ranked, entry)
			case entry.Highlighted:
				row := entry
				lb.Invoker = &row
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Bots keep a stable id order rather than a rank by total.
	sort.Slice(lb.Bots, func(i, j int) bool { return lb.Bots[i].UserID < lb.Bots[j].UserID })

	if err := s.persister.SaveMessages(ctx); err != nil {
		log.WithError(err).Warn("Best-effort flush alongside leaderboard query failed")
	}
	return lb, nil
}
