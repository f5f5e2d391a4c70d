// Package repository defines the persistence interfaces implemented by the
// infrastructure layer.
package repository

import (
	"context"

	"github.com/substyle/substyle/internal/domain/entity"
)

// StyleProfileRepository persists named style profiles.
type StyleProfileRepository interface {
	// Save inserts a new profile.
	Save(ctx context.Context, profile *entity.StyleProfile) error

	// Update replaces an existing profile's name and style.
	Update(ctx context.Context, profile *entity.StyleProfile) error

	// FindByID returns the profile with the given ID, or nil if absent.
	FindByID(ctx context.Context, id entity.ProfileID) (*entity.StyleProfile, error)

	// FindByName returns the profile with the given name, or nil if absent.
	FindByName(ctx context.Context, name string) (*entity.StyleProfile, error)

	// GetAll returns all profiles ordered by UpdatedAt descending.
	GetAll(ctx context.Context) ([]*entity.StyleProfile, error)

	// Delete removes the profile with the given ID.
	Delete(ctx context.Context, id entity.ProfileID) error
}
