package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFileFormats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"report.toml": `
ads = "data/ads.csv"
leads = "/abs/leads.csv"
purchases = "s3://bucket/purchases.csv"
report_type = ["xlsx", "csv"]
tie_break = "smallest_lead_id"
`,
		"report.yaml": `
ads: data/ads.csv
leads: /abs/leads.csv
purchases: s3://bucket/purchases.csv
report_type: [xlsx, csv]
tie_break: smallest_lead_id
`,
		"report.json": `{
  "ads": "data/ads.csv",
  "leads": "/abs/leads.csv",
  "purchases": "s3://bucket/purchases.csv",
  "report_type": ["xlsx", "csv"],
  "tie_break": "smallest_lead_id"
}`,
	}

	repo := NewConfigRepository()
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			cfg, err := repo.LoadConfigFile(write(t, dir, name, content))
			require.NoError(t, err)

			assert.Equal(t, filepath.Join(dir, "data", "ads.csv"), cfg.Ads)
			assert.Equal(t, "/abs/leads.csv", cfg.Leads)
			assert.Equal(t, "s3://bucket/purchases.csv", cfg.Purchases)
			assert.Equal(t, []string{"xlsx", "csv"}, cfg.ReportType)
			assert.Equal(t, "smallest_lead_id", cfg.TieBreak)
			assert.Empty(t, cfg.Dir)
		})
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	dir := t.TempDir()
	repo := NewConfigRepository()

	_, err := repo.LoadConfigFile(write(t, dir, "report.ini", "ads=x"))
	assert.ErrorContains(t, err, "unsupported config file format")

	_, err = repo.LoadConfigFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = repo.LoadConfigFile(write(t, dir, "broken.json", "{"))
	assert.ErrorContains(t, err, "error parsing JSON file")

	require.NoError(t, os.Mkdir(filepath.Join(dir, "cfg.toml"), 0o755))
	_, err = repo.LoadConfigFile(filepath.Join(dir, "cfg.toml"))
	assert.ErrorContains(t, err, "is a directory")
}
