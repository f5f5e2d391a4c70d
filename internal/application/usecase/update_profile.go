package usecase

import (
	"context"
	"strings"

	"github.com/substyle/substyle/internal/domain/entity"
	"github.com/substyle/substyle/internal/domain/repository"
	"github.com/substyle/substyle/internal/logging"
)

// UpdateProfileUseCase renames a profile and/or replaces its style
// snapshot.
type UpdateProfileUseCase struct {
	profiles repository.StyleProfileRepository
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase.
func NewUpdateProfileUseCase(profiles repository.StyleProfileRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{profiles: profiles}
}

// UpdateProfileInput contains the parameters for updating a profile. A nil
// Style keeps the stored snapshot; an empty Name keeps the stored name.
type UpdateProfileInput struct {
	ID    entity.ProfileID
	Name  string
	Style *entity.SubtitleStyle
}

// Execute applies the requested changes and bumps UpdatedAt.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*entity.StyleProfile, error) {
	log := logging.FromContext(ctx)

	profile, err := uc.profiles.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	if name := strings.TrimSpace(input.Name); name != "" && name != profile.Name {
		existing, err := uc.profiles.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != profile.ID {
			return nil, ErrProfileNameTaken
		}
		profile.Name = name
	}
	if input.Style != nil {
		profile.Style = *input.Style
	}
	profile.Touch()

	if err := uc.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	log.Info().Str("profile_id", string(profile.ID)).Msg("style profile updated")
	return profile, nil
}
