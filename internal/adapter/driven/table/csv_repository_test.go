package table

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/campaign-attribution-go/internal/shared/types"
)

type fakeStore struct {
	objects map[string]string
	opened  []string
}

func (f *fakeStore) Open(_ context.Context, uri string) (io.ReadCloser, error) {
	f.opened = append(f.opened, uri)
	body, ok := f.objects[uri]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func (f *fakeStore) Upload(context.Context, string, string) error { return nil }

func (f *fakeStore) AccountID(context.Context) (string, error) { return "123456789012", nil }

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadLocalFile(t *testing.T) {
	path := writeFile(t, "ads.csv", "\ufeffcreated_at, d_utm_source ,m_cost\n2024-01-01,yandex,10\n2024-01-02,yandex,\n")
	repo := NewCSVTableRepository(nil, ',')

	tbl, err := repo.Load(context.Background(), "ads", path)
	require.NoError(t, err)

	assert.Equal(t, "ads", tbl.Name)
	assert.Equal(t, []string{"created_at", "d_utm_source", "m_cost"}, tbl.Header)
	assert.Equal(t, [][]string{{"2024-01-01", "yandex", "10"}, {"2024-01-02", "yandex", ""}}, tbl.Rows)
	assert.Equal(t, 2, tbl.ColumnIndex("m_cost"))
}

func TestLoadCustomDelimiter(t *testing.T) {
	path := writeFile(t, "leads.csv", "lead_id;client_id\n1;42\n")

	tbl, err := NewCSVTableRepository(nil, ';').Load(context.Background(), "leads", path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "42"}}, tbl.Rows)
}

func TestLoadMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.csv")

	_, err := NewCSVTableRepository(nil, ',').Load(context.Background(), "ads", missing)

	var ioErr *types.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, missing, ioErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", "")

	_, err := NewCSVTableRepository(nil, ',').Load(context.Background(), "ads", path)
	assert.ErrorIs(t, err, errEmptyTable)
}

func TestLoadRaggedRows(t *testing.T) {
	path := writeFile(t, "bad.csv", "a,b\n1,2,3\n")

	_, err := NewCSVTableRepository(nil, ',').Load(context.Background(), "ads", path)
	var ioErr *types.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestLoadFromObjectStore(t *testing.T) {
	store := &fakeStore{objects: map[string]string{
		"s3://bucket/purchases.csv": "purchase_id,client_id\np1,7\n",
	}}
	repo := NewCSVTableRepository(store, ',')

	tbl, err := repo.Load(context.Background(), "purchases", "s3://bucket/purchases.csv")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"p1", "7"}}, tbl.Rows)
	assert.Equal(t, []string{"s3://bucket/purchases.csv"}, store.opened)

	_, err = repo.Load(context.Background(), "purchases", "s3://bucket/missing.csv")
	var ioErr *types.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestLoadObjectStoreNotConfigured(t *testing.T) {
	_, err := NewCSVTableRepository(nil, ',').Load(context.Background(), "ads", "s3://bucket/ads.csv")
	var ioErr *types.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCSVTableRepository(nil, ',').Load(ctx, "ads", "whatever.csv")
	assert.ErrorIs(t, err, context.Canceled)
}
