package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/substyle/substyle/internal/domain/entity"
	"github.com/substyle/substyle/internal/domain/repository"
	"github.com/substyle/substyle/internal/logging"
)

type profileRepo struct {
	db *sql.DB
}

// NewStyleProfileRepository creates a new SQLite-backed profile repository.
func NewStyleProfileRepository(db *sql.DB) repository.StyleProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Save(ctx context.Context, profile *entity.StyleProfile) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("name", profile.Name).Msg("saving style profile")

	styleJSON, err := json.Marshal(profile.Style)
	if err != nil {
		return fmt.Errorf("marshal style: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO style_profiles (id, name, style, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		string(profile.ID), profile.Name, string(styleJSON),
		profile.CreatedAt.UTC(), profile.UpdatedAt.UTC(),
	)
	return err
}

func (r *profileRepo) Update(ctx context.Context, profile *entity.StyleProfile) error {
	styleJSON, err := json.Marshal(profile.Style)
	if err != nil {
		return fmt.Errorf("marshal style: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE style_profiles SET name = ?, style = ?, updated_at = ? WHERE id = ?`,
		profile.Name, string(styleJSON), profile.UpdatedAt.UTC(), string(profile.ID),
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("style profile %s not found", profile.ID)
	}
	return nil
}

func (r *profileRepo) FindByID(ctx context.Context, id entity.ProfileID) (*entity.StyleProfile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, style, created_at, updated_at FROM style_profiles WHERE id = ?`,
		string(id),
	)
	return scanProfile(row)
}

func (r *profileRepo) FindByName(ctx context.Context, name string) (*entity.StyleProfile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, style, created_at, updated_at FROM style_profiles WHERE name = ?`,
		name,
	)
	return scanProfile(row)
}

func (r *profileRepo) GetAll(ctx context.Context) ([]*entity.StyleProfile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, style, created_at, updated_at
		 FROM style_profiles ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*entity.StyleProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *profileRepo) Delete(ctx context.Context, id entity.ProfileID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM style_profiles WHERE id = ?`, string(id))
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*entity.StyleProfile, error) {
	var (
		id, name, styleJSON  string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &styleJSON, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var style entity.SubtitleStyle
	if err := json.Unmarshal([]byte(styleJSON), &style); err != nil {
		return nil, fmt.Errorf("unmarshal style for profile %s: %w", id, err)
	}

	return &entity.StyleProfile{
		ID:        entity.ProfileID(id),
		Name:      name,
		Style:     style,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
