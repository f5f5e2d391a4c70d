package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/substyle/substyle/internal/domain/entity"
	"github.com/substyle/substyle/internal/domain/repository"
)

// Envelope constants for the profile export format.
const (
	EnvelopeFormat  = "substyle-profiles"
	EnvelopeVersion = 1
)

// ProfileEnvelope is the JSON export/import container for style profiles.
type ProfileEnvelope struct {
	Format     string                 `json:"format"`
	Version    int                    `json:"version"`
	ExportedAt time.Time              `json:"exportedAt"`
	Profiles   []*entity.StyleProfile `json:"profiles"`
}

// ExportProfilesUseCase serializes all saved profiles into the envelope.
type ExportProfilesUseCase struct {
	profiles repository.StyleProfileRepository
}

// NewExportProfilesUseCase creates a new ExportProfilesUseCase.
func NewExportProfilesUseCase(profiles repository.StyleProfileRepository) *ExportProfilesUseCase {
	return &ExportProfilesUseCase{profiles: profiles}
}

// Execute returns the envelope as indented JSON.
func (uc *ExportProfilesUseCase) Execute(ctx context.Context) ([]byte, error) {
	all, err := uc.profiles.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	envelope := ProfileEnvelope{
		Format:     EnvelopeFormat,
		Version:    EnvelopeVersion,
		ExportedAt: time.Now().UTC(),
		Profiles:   all,
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal profile envelope: %w", err)
	}
	return data, nil
}
