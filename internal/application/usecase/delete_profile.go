package usecase

import (
	"context"

	"github.com/substyle/substyle/internal/domain/entity"
	"github.com/substyle/substyle/internal/domain/repository"
	"github.com/substyle/substyle/internal/logging"
)

// DeleteProfileUseCase removes a saved profile.
type DeleteProfileUseCase struct {
	profiles repository.StyleProfileRepository
}

// NewDeleteProfileUseCase creates a new DeleteProfileUseCase.
func NewDeleteProfileUseCase(profiles repository.StyleProfileRepository) *DeleteProfileUseCase {
	return &DeleteProfileUseCase{profiles: profiles}
}

// Execute deletes the profile with the given ID.
func (uc *DeleteProfileUseCase) Execute(ctx context.Context, id entity.ProfileID) error {
	log := logging.FromContext(ctx)

	profile, err := uc.profiles.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrProfileNotFound
	}

	log.Info().Str("profile_id", string(id)).Str("name", profile.Name).Msg("deleting style profile")
	return uc.profiles.Delete(ctx, id)
}
