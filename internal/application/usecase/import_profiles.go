package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/substyle/substyle/internal/domain/entity"
	"github.com/substyle/substyle/internal/domain/repository"
	"github.com/substyle/substyle/internal/logging"
)

// Import errors.
var (
	ErrEnvelopeFormat  = errors.New("not a substyle profile export")
	ErrEnvelopeVersion = errors.New("unsupported profile export version")
)

// ImportProfilesUseCase restores profiles from an export envelope. Imported
// profiles get fresh IDs; name collisions with existing profiles are
// resolved by suffixing.
type ImportProfilesUseCase struct {
	profiles repository.StyleProfileRepository
}

// NewImportProfilesUseCase creates a new ImportProfilesUseCase.
func NewImportProfilesUseCase(profiles repository.StyleProfileRepository) *ImportProfilesUseCase {
	return &ImportProfilesUseCase{profiles: profiles}
}

// Execute imports the envelope and returns the number of profiles created.
func (uc *ImportProfilesUseCase) Execute(ctx context.Context, data []byte) (int, error) {
	log := logging.FromContext(ctx)

	var envelope ProfileEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return 0, fmt.Errorf("parse profile envelope: %w", err)
	}
	if envelope.Format != EnvelopeFormat {
		return 0, ErrEnvelopeFormat
	}
	if envelope.Version != EnvelopeVersion {
		return 0, fmt.Errorf("%w: %d", ErrEnvelopeVersion, envelope.Version)
	}

	imported := 0
	for _, p := range envelope.Profiles {
		if p == nil || p.Name == "" {
			continue
		}

		name, err := uc.availableName(ctx, p.Name)
		if err != nil {
			return imported, err
		}

		profile := entity.NewStyleProfile(name, p.Style)
		if err := uc.profiles.Save(ctx, profile); err != nil {
			return imported, err
		}
		imported++
	}

	log.Info().Int("count", imported).Msg("profiles imported")
	return imported, nil
}

// availableName returns the name itself when free, otherwise a suffixed
// variant.
func (uc *ImportProfilesUseCase) availableName(ctx context.Context, name string) (string, error) {
	existing, err := uc.profiles.FindByName(ctx, name)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return name, nil
	}

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (imported)", name)
		if i > 1 {
			candidate = fmt.Sprintf("%s (imported %d)", name, i)
		}
		existing, err := uc.profiles.FindByName(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
	}
}
