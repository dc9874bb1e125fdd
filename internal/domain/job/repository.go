package job

import (
	"context"
	"errors"
)

var ErrCreatorMissing = errors.New("job creator does not exist")

type Repository interface {
	Create(ctx context.Context, j Job) error
	List(ctx context.Context, limit, offset int) ([]Job, error)
}
