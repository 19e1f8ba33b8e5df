package models

import (
	"encoding/json"
	"fmt"
)

// AltList holds the user ids linked to a record as alts. Older documents
// stored the field as null or a single id string; it unmarshals from any of
// those shapes and always marshals back as an array.
type AltList []string

// UnmarshalJSON accepts null, a bare string, or an array of strings.
func (a *AltList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = AltList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("alt field is neither null, string, nor array: %w", err)
	}
	*a = AltList(many)
	return nil
}

// Contains reports whether id is present in the list.
func (a AltList) Contains(id string) bool {
	for _, v := range a {
		if v == id {
			return true
		}
	}
	return false
}

// Remove returns the list with id removed, nil if the result is empty.
func (a AltList) Remove(id string) AltList {
	var out AltList
	for _, v := range a {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// UserRecord is the per-guild tally for a single identity.
type UserRecord struct {
	Messages int     `json:"messages"`
	Name     string  `json:"name"`
	Alts     AltList `json:"alt"`
	IsAlt    bool    `json:"is_alt"`
	IsBot    bool    `json:"is_bot"`
}

// NewUserRecord creates a record for a first observed message.
func NewUserRecord(name string, isBot bool) *UserRecord {
	return &UserRecord{
		Messages: 1,
		Name:     name,
		IsBot:    isBot,
	}
}

// HasAlts reports whether any alts are linked to this record.
func (u *UserRecord) HasAlts() bool {
	return len(u.Alts) > 0
}

// Clone returns a deep copy of the record.
func (u *UserRecord) Clone() *UserRecord {
	c := *u
	c.Alts = append(AltList(nil), u.Alts...)
	return &c
}
