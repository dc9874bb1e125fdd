package repository

import (
	"context"

	"github.com/sebastupa/testAssist/internal/database"
	"github.com/sebastupa/testAssist/internal/domain/job"
)

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, title, company_name, location, remote, job_types, added_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		j.ID, j.Title, j.CompanyName, j.Location, j.Remote, j.JobTypes, j.AddedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return job.ErrCreatorMissing
		}
		return err
	}
	return nil
}

func (r *PostgresJobRepository) List(ctx context.Context, limit, offset int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, title, company_name, location, remote, job_types, added_by, created_at
		 FROM jobs
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.CompanyName, &j.Location, &j.Remote, &j.JobTypes, &j.AddedBy, &j.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
