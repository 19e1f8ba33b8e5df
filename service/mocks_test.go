package service

import (
	"context"
	"sync"
)

// mockPersister records save calls and can be told to fail.
type mockPersister struct {
	mu            sync.Mutex
	messagesSaves int
	settingsSaves int
	failWith      error
}

func (m *mockPersister) SaveMessages(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messagesSaves++
	return m.failWith
}

func (m *mockPersister) SaveSettings(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settingsSaves++
	return m.failWith
}

func (m *mockPersister) counts() (messages, settings int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.messagesSaves, m.settingsSaves
}
