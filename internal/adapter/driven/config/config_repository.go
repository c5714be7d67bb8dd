package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/diillson/campaign-attribution-go/internal/domain/repository"
	"github.com/diillson/campaign-attribution-go/internal/shared/types"
)

// decoders by lower-cased file extension.
var decoders = map[string]struct {
	format string
	decode func([]byte, interface{}) error
}{
	".toml": {"TOML", toml.Unmarshal},
	".yaml": {"YAML", yaml.Unmarshal},
	".yml":  {"YAML", yaml.Unmarshal},
	".json": {"JSON", json.Unmarshal},
}

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
// Relative input paths in the file are resolved against the file's directory.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	dec, ok := decoders[strings.ToLower(filepath.Ext(filePath))]
	if !ok {
		return nil, fmt.Errorf("unsupported config file format: %s", filepath.Ext(filePath))
	}

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg types.Config
	if err := dec.decode(fileData, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s file: %w", dec.format, err)
	}

	baseDir := filepath.Dir(filePath)
	cfg.Ads = resolve(baseDir, cfg.Ads)
	cfg.Leads = resolve(baseDir, cfg.Leads)
	cfg.Purchases = resolve(baseDir, cfg.Purchases)
	if cfg.Dir != "" {
		cfg.Dir = resolve(baseDir, cfg.Dir)
	}

	return &cfg, nil
}

func resolve(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) || strings.Contains(p, "://") {
		return p
	}
	return filepath.Join(baseDir, p)
}
