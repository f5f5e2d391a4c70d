// Package usecase contains the application operations invoked by the view
// layer and the CLI.
package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/substyle/substyle/internal/domain/entity"
	"github.com/substyle/substyle/internal/domain/repository"
	"github.com/substyle/substyle/internal/logging"
)

// Profile usecase errors.
var (
	ErrProfileNameEmpty = errors.New("profile name must not be empty")
	ErrProfileNameTaken = errors.New("a profile with that name already exists")
	ErrProfileNotFound  = errors.New("profile not found")
)

// SaveProfileUseCase creates a named snapshot of the current style.
type SaveProfileUseCase struct {
	profiles repository.StyleProfileRepository
}

// NewSaveProfileUseCase creates a new SaveProfileUseCase.
func NewSaveProfileUseCase(profiles repository.StyleProfileRepository) *SaveProfileUseCase {
	return &SaveProfileUseCase{profiles: profiles}
}

// SaveProfileInput contains the parameters for saving a profile.
type SaveProfileInput struct {
	Name  string
	Style entity.SubtitleStyle
}

// Execute validates the name, guards against duplicates, and persists the
// snapshot.
func (uc *SaveProfileUseCase) Execute(ctx context.Context, input SaveProfileInput) (*entity.StyleProfile, error) {
	log := logging.FromContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProfileNameEmpty
	}

	existing, err := uc.profiles.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProfileNameTaken
	}

	profile := entity.NewStyleProfile(name, input.Style)
	if err := uc.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}

	log.Info().Str("profile_id", string(profile.ID)).Str("name", name).Msg("style profile saved")
	return profile, nil
}
