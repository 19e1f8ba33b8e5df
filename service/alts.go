package service

import (
	"fmt"

	"msgleader/store"
)

// The alt link rules operate on a guild's record map directly so that every
// check-and-mutate sequence runs inside a single store transaction.

// linkAlt appends altID to primaryID's alt list and marks altID as an alt.
// An alt cannot itself have alts, so a record already marked is rejected
// before any mutation.
func linkAlt(records store.GuildRecords, primaryID, altID string) error {
	if primaryID == altID {
		return ErrSelfReference
	}
	primary, ok := records[primaryID]
	if !ok {
		return fmt.Errorf("primary %s: %w", primaryID, store.ErrNotFound)
	}
	alt, ok := records[altID]
	if !ok {
		return fmt.Errorf("alt %s: %w", altID, store.ErrNotFound)
	}
	if alt.IsAlt {
		return ErrAlreadyAlt
	}

	primary.Alts = append(primary.Alts, altID)
	alt.IsAlt = true
	return nil
}

// unlinkAlt removes altID from primaryID's alt list and clears the alt
// mark. Both sides must currently be linked.
func unlinkAlt(records store.GuildRecords, primaryID, altID string) error {
	if primaryID == altID {
		return ErrSelfReference
	}
	primary, ok := records[primaryID]
	if !ok {
		return fmt.Errorf("primary %s: %w", primaryID, store.ErrNotFound)
	}
	alt, ok := records[altID]
	if !ok {
		return fmt.Errorf("alt %s: %w", altID, store.ErrNotFound)
	}
	if !primary.HasAlts() || !alt.IsAlt || !primary.Alts.Contains(altID) {
		return ErrNotAnAlt
	}

	primary.Alts = primary.Alts.Remove(altID)
	alt.IsAlt = false
	return nil
}

// effectiveTotal is the canonical aggregation formula: the user's own count
// plus the counts of every listed alt. The leaderboard and the single-user
// query both go through here. A listed id missing from the guild's records
// contributes nothing.
func effectiveTotal(records store.GuildRecords, userID string) int {
	rec, ok := records[userID]
	if !ok {
		return 0
	}
	total := rec.Messages
	for _, altID := range rec.Alts {
		if alt, ok := records[altID]; ok {
			total += alt.Messages
		}
	}
	return total
}

// resolvePrimary maps an alt id to the primary whose list contains it, and
// returns any other id unchanged.
func resolvePrimary(records store.GuildRecords, userID string) string {
	rec, ok := records[userID]
	if !ok || !rec.IsAlt {
		return userID
	}
	for id, candidate := range records {
		if candidate.Alts.Contains(userID) {
			return id
		}
	}
	return userID
}
