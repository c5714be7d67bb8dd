package repository

import (
	"context"

	"github.com/diillson/campaign-attribution-go/internal/domain/entity"
)

// TableRepository loads a delimited table from a local path or object storage URI.
type TableRepository interface {
	Load(ctx context.Context, name, source string) (*entity.RawTable, error)
}
