package usecase

import (
	"context"

	"github.com/substyle/substyle/internal/domain/entity"
	"github.com/substyle/substyle/internal/domain/repository"
)

// ListProfilesUseCase returns all saved profiles, most recently updated
// first.
type ListProfilesUseCase struct {
	profiles repository.StyleProfileRepository
}

// NewListProfilesUseCase creates a new ListProfilesUseCase.
func NewListProfilesUseCase(profiles repository.StyleProfileRepository) *ListProfilesUseCase {
	return &ListProfilesUseCase{profiles: profiles}
}

// Execute lists the saved profiles.
func (uc *ListProfilesUseCase) Execute(ctx context.Context) ([]*entity.StyleProfile, error) {
	return uc.profiles.GetAll(ctx)
}

// GetProfileUseCase fetches one profile by ID.
type GetProfileUseCase struct {
	profiles repository.StyleProfileRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase.
func NewGetProfileUseCase(profiles repository.StyleProfileRepository) *GetProfileUseCase {
	return &GetProfileUseCase{profiles: profiles}
}

// Execute returns the profile or ErrProfileNotFound.
func (uc *GetProfileUseCase) Execute(ctx context.Context, id entity.ProfileID) (*entity.StyleProfile, error) {
	profile, err := uc.profiles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}
