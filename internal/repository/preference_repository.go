package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sebastupa/testAssist/internal/database"
	"github.com/sebastupa/testAssist/internal/domain/preference"
)

type PostgresPreferenceRepository struct {
	db database.DB
}

func NewPostgresPreferenceRepository(db database.DB) *PostgresPreferenceRepository {
	return &PostgresPreferenceRepository{db: db}
}

func (r *PostgresPreferenceRepository) Create(ctx context.Context, p preference.Preferences) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_preferences (id, user_id, timezone, country) VALUES ($1, $2, $3, $4)`,
		p.ID, p.UserID, p.Timezone, p.Country,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return preference.ErrAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return preference.ErrUserMissing
		}
		return err
	}
	return nil
}

func (r *PostgresPreferenceRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (preference.Preferences, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, timezone, country, created_at, updated_at
		 FROM user_preferences WHERE user_id = $1`,
		userID,
	)

	var p preference.Preferences
	if err := row.Scan(&p.ID, &p.UserID, &p.Timezone, &p.Country, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return preference.Preferences{}, preference.ErrNotFound
		}
		return preference.Preferences{}, err
	}
	return p, nil
}

func (r *PostgresPreferenceRepository) UpdateByUserID(ctx context.Context, userID uuid.UUID, timezone, country *string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE user_preferences SET timezone = $2, country = $3, updated_at = now() WHERE user_id = $1`,
		userID, timezone, country,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return preference.ErrNotFound
	}
	return nil
}
