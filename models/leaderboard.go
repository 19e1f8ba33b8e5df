package models

// LeaderboardEntry is a single rendered row candidate.
type LeaderboardEntry struct {
	UserID      string
	Name        string
	Total       int // effective total: own messages plus linked alts
	AltCount    int
	IsBot       bool
	Highlighted bool // true when this row belongs to the invoking user's primary
}

// Leaderboard is the structured result of a leaderboard query. Segments are
// emitted in fixed order: Ranked, then Bots, then Invoker when the invoking
// user's primary fell below the guild minimum.
type Leaderboard struct {
	Ranked  []LeaderboardEntry // non-bot entries at or above the guild minimum, descending by total
	Bots    []LeaderboardEntry // bot entries, listed unconditionally after the ranked segment
	Invoker *LeaderboardEntry  // set only when the invoker's row is absent from Ranked
	Minimum int
}

// UserStanding is the result of a single-user query. It uses the same
// effective-total formula as the leaderboard.
type UserStanding struct {
	UserID   string
	Name     string
	Messages int // raw own count
	Total    int // effective total
	AltCount int
	IsAlt    bool
	IsBot    bool
}

// AltInfo describes a user's position in an alt link, if any.
type AltInfo struct {
	UserID    string
	Name      string
	IsAlt     bool
	PrimaryID string   // set when IsAlt: the record whose alt list contains this id
	AltIDs    []string // set for primaries: linked alt ids in insertion order
}
