package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msgleader/models"
	"msgleader/store"
)

const testGuild = "100"

func seedRecords(t *testing.T, records map[string]*models.UserRecord) *store.RecordStore {
	t.Helper()
	s := store.NewRecordStore()
	for id, rec := range records {
		s.Upsert(testGuild, id, rec)
	}
	return s
}

func TestAltService_LinkAlt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		records   map[string]*models.UserRecord
		primaryID string
		altID     string
		wantErr   error
	}{
		{
			name: "links two existing users",
			records: map[string]*models.UserRecord{
				"1": {Messages: 100, Name: "main"},
				"2": {Messages: 50, Name: "alt"},
			},
			primaryID: "1",
			altID:     "2",
		},
		{
			name: "self link fails",
			records: map[string]*models.UserRecord{
				"1": {Messages: 100, Name: "main"},
			},
			primaryID: "1",
			altID:     "1",
			wantErr:   ErrSelfReference,
		},
		{
			name: "unknown primary fails",
			records: map[string]*models.UserRecord{
				"2": {Messages: 50, Name: "alt"},
			},
			primaryID: "1",
			altID:     "2",
			wantErr:   store.ErrNotFound,
		},
		{
			name: "unknown alt fails",
			records: map[string]*models.UserRecord{
				"1": {Messages: 100, Name: "main"},
			},
			primaryID: "1",
			altID:     "2",
			wantErr:   store.ErrNotFound,
		},
		{
			name: "already linked alt fails",
			records: map[string]*models.UserRecord{
				"1": {Messages: 100, Name: "main"},
				"2": {Messages: 50, Name: "alt", IsAlt: true},
				"3": {Messages: 10, Name: "other", Alts: models.AltList{"2"}},
			},
			primaryID: "1",
			altID:     "2",
			wantErr:   ErrAlreadyAlt,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			records := seedRecords(t, tt.records)
			svc := NewAltService(records, &mockPersister{})

			err := svc.LinkAlt(context.Background(), testGuild, tt.primaryID, tt.altID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			primary, err := records.Get(testGuild, tt.primaryID)
			require.NoError(t, err)
			assert.True(t, primary.Alts.Contains(tt.altID))

			alt, err := records.Get(testGuild, tt.altID)
			require.NoError(t, err)
			assert.True(t, alt.IsAlt)
			assert.Empty(t, alt.Alts, "an alt must not carry its own alts")
		})
	}
}

func TestAltService_LinkSupportsMultipleAlts(t *testing.T) {
	t.Parallel()

	records := seedRecords(t, map[string]*models.UserRecord{
		"1": {Messages: 100, Name: "main"},
		"2": {Messages: 50, Name: "alt-a"},
		"3": {Messages: 25, Name: "alt-b"},
	})
	svc := NewAltService(records, &mockPersister{})
	ctx := context.Background()

	require.NoError(t, svc.LinkAlt(ctx, testGuild, "1", "2"))
	require.NoError(t, svc.LinkAlt(ctx, testGuild, "1", "3"))

	primary, err := records.Get(testGuild, "1")
	require.NoError(t, err)
	assert.Equal(t, models.AltList{"2", "3"}, primary.Alts, "insertion order is preserved")

	total, err := svc.EffectiveTotal(testGuild, "1")
	require.NoError(t, err)
	assert.Equal(t, 175, total)
}

func TestAltService_LinkThenUnlinkRoundTrip(t *testing.T) {
	t.Parallel()

	records := seedRecords(t, map[string]*models.UserRecord{
		"1": {Messages: 100, Name: "main"},
		"2": {Messages: 50, Name: "alt"},
	})
	svc := NewAltService(records, &mockPersister{})
	ctx := context.Background()

	require.NoError(t, svc.LinkAlt(ctx, testGuild, "1", "2"))
	require.NoError(t, svc.UnlinkAlt(ctx, testGuild, "1", "2"))

	primary, err := records.Get(testGuild, "1")
	require.NoError(t, err)
	assert.Empty(t, primary.Alts)

	alt, err := records.Get(testGuild, "2")
	require.NoError(t, err)
	assert.False(t, alt.IsAlt)
}

func TestAltService_UnlinkAlt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		records   map[string]*models.UserRecord
		primaryID string
		altID     string
		wantErr   error
	}{
		{
			name: "self unlink fails",
			records: map[string]*models.UserRecord{
				"1": {Messages: 100},
			},
			primaryID: "1",
			altID:     "1",
			wantErr:   ErrSelfReference,
		},
		{
			name: "primary without alts fails",
			records: map[string]*models.UserRecord{
				"1": {Messages: 100},
				"2": {Messages: 50},
			},
			primaryID: "1",
			altID:     "2",
			wantErr:   ErrNotAnAlt,
		},
		{
			name: "alt linked to a different primary fails",
			records: map[string]*models.UserRecord{
				"1": {Messages: 100, Alts: models.AltList{"3"}},
				"2": {Messages: 50, IsAlt: true},
				"3": {Messages: 10, IsAlt: true},
				"4": {Messages: 5, Alts: models.AltList{"2"}},
			},
			primaryID: "1",
			altID:     "2",
			wantErr:   ErrNotAnAlt,
		},
		{
			name: "unknown user fails",
			records: map[string]*models.UserRecord{
				"1": {Messages: 100, Alts: models.AltList{"2"}},
			},
			primaryID: "1",
			altID:     "2",
			wantErr:   store.ErrNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			records := seedRecords(t, tt.records)
			svc := NewAltService(records, &mockPersister{})

			err := svc.UnlinkAlt(context.Background(), testGuild, tt.primaryID, tt.altID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAltService_EffectiveTotal(t *testing.T) {
	t.Parallel()

	records := seedRecords(t, map[string]*models.UserRecord{
		"1": {Messages: 100, Alts: models.AltList{"2", "3"}},
		"2": {Messages: 50, IsAlt: true},
		"3": {Messages: 25, IsAlt: true},
		"4": {Messages: 7},
	})
	svc := NewAltService(records, &mockPersister{})

	total, err := svc.EffectiveTotal(testGuild, "1")
	require.NoError(t, err)
	assert.Equal(t, 175, total)

	total, err = svc.EffectiveTotal(testGuild, "4")
	require.NoError(t, err)
	assert.Equal(t, 7, total, "a user without alts keeps the raw value")

	_, err = svc.EffectiveTotal(testGuild, "99")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAltService_ResolvePrimary(t *testing.T) {
	t.Parallel()

	records := seedRecords(t, map[string]*models.UserRecord{
		"1": {Messages: 100, Alts: models.AltList{"2"}},
		"2": {Messages: 50, IsAlt: true},
		"3": {Messages: 10},
	})
	svc := NewAltService(records, &mockPersister{})

	resolved, err := svc.ResolvePrimary(testGuild, "2")
	require.NoError(t, err)
	assert.Equal(t, "1", resolved)

	resolved, err = svc.ResolvePrimary(testGuild, "3")
	require.NoError(t, err)
	assert.Equal(t, "3", resolved)

	resolved, err = svc.ResolvePrimary(testGuild, "99")
	require.NoError(t, err)
	assert.Equal(t, "99", resolved, "unknown ids pass through unchanged")
}

func TestAltService_LinkPersistsChanges(t *testing.T) {
	t.Parallel()

	records := seedRecords(t, map[string]*models.UserRecord{
		"1": {Messages: 100},
		"2": {Messages: 50},
	})
	persister := &mockPersister{}
	svc := NewAltService(records, persister)

	require.NoError(t, svc.LinkAlt(context.Background(), testGuild, "1", "2"))

	messages, _ := persister.counts()
	assert.Equal(t, 1, messages)
}
