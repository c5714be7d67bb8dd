package table

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/diillson/campaign-attribution-go/internal/domain/entity"
	"github.com/diillson/campaign-attribution-go/internal/domain/repository"
	"github.com/diillson/campaign-attribution-go/internal/shared/types"
)

const s3Scheme = "s3://"

var errEmptyTable = errors.New("table has no header row")

// CSVTableRepository implementa o TableRepository para arquivos delimitados.
type CSVTableRepository struct {
	store     repository.ObjectStore
	delimiter rune
}

// NewCSVTableRepository creates a loader. store may be nil when every source
// is a local path.
func NewCSVTableRepository(store repository.ObjectStore, delimiter rune) repository.TableRepository {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVTableRepository{store: store, delimiter: delimiter}
}

// Load reads the whole table into memory. Any failure to open or decode the
// source is reported as *types.IOError.
func (r *CSVTableRepository) Load(ctx context.Context, name, source string) (*entity.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc, err := r.open(ctx, source)
	if err != nil {
		return nil, &types.IOError{Path: source, Err: err}
	}
	defer rc.Close()

	reader := csv.NewReader(rc)
	reader.Comma = r.delimiter

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &types.IOError{Path: source, Err: errEmptyTable}
	}
	if err != nil {
		return nil, &types.IOError{Path: source, Err: fmt.Errorf("reading header: %w", err)}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &types.IOError{Path: source, Err: fmt.Errorf("reading rows: %w", err)}
	}

	return &entity.RawTable{Name: name, Header: header, Rows: rows}, nil
}

func (r *CSVTableRepository) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, s3Scheme) {
		if r.store == nil {
			return nil, fmt.Errorf("object storage is not configured")
		}
		return r.store.Open(ctx, source)
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", source)
	}
	return os.Open(source)
}
