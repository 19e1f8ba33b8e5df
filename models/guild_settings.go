package models

// Default values applied when a guild is first observed.
const (
	DefaultMinimum     = 20000
	DefaultListenToAll = true
)

// GuildSettings represents per-guild configuration settings
type GuildSettings struct {
	Minimum     int  `json:"minimum"`
	ListenToAll bool `json:"listen_to_all"`
}

// NewGuildSettings returns settings with the defaults applied.
func NewGuildSettings() *GuildSettings {
	return &GuildSettings{
		Minimum:     DefaultMinimum,
		ListenToAll: DefaultListenToAll,
	}
}

// Clone returns a copy of the settings.
func (gs *GuildSettings) Clone() *GuildSettings {
	c := *gs
	return &c
}
