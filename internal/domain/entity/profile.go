package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProfileID uniquely identifies a style profile.
type ProfileID string

// StyleProfile is a named, user-saved snapshot of the style attribute set.
// Profiles are only ever created, updated, and deleted by explicit user
// action; nothing mutates them implicitly.
type StyleProfile struct {
	ID        ProfileID     `json:"id"`
	Name      string        `json:"name"`
	Style     SubtitleStyle `json:"style"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// NewStyleProfile creates a profile with a fresh ID and the given style
// snapshot.
func NewStyleProfile(name string, style SubtitleStyle) *StyleProfile {
	now := time.Now().UTC()
	return &StyleProfile{
		ID:        ProfileID(uuid.NewString()),
		Name:      name,
		Style:     style,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps the profile's UpdatedAt timestamp.
func (p *StyleProfile) Touch() {
	p.UpdatedAt = time.Now().UTC()
}
