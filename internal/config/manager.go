package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/travisify/internal/errors"
	"gopkg.in/yaml.v3"
)

// Format represents the configuration file format
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const configSuggestion = `create ~/.config/travisify.json with {"user": "...", "pass": "..."} or {"token": "..."}, or set TRAVISIFY_TOKEN`

// fileLoader supports both JSON and YAML configuration files
type fileLoader struct {
	configPath string
	format     Format
}

// NewLoader creates a loader for configPath. An empty path selects DefaultPath.
func NewLoader(configPath string) (Loader, error) {
	if configPath == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		configPath = p
	}

	return &fileLoader{
		configPath: configPath,
		format:     formatFromPath(configPath),
	}, nil
}

// DefaultPath returns the config file location under the user config dir.
// travisify.json wins; travisify.yaml / travisify.yml are used when it is absent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrTypeConfig, "cannot locate user config directory", err)
	}

	jsonPath := filepath.Join(dir, "travisify.json")
	for _, name := range []string{"travisify.json", "travisify.yaml", "travisify.yml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return jsonPath, nil
}

// formatFromPath determines format based on extension
func formatFromPath(configPath string) Format {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads the config file in either JSON or YAML format, applies
// environment overrides and validates the result.
func (l *fileLoader) Load() (*Config, error) {
	var config Config

	data, err := os.ReadFile(l.configPath)
	switch {
	case err == nil:
		if err := l.decode(data, &config); err != nil {
			return nil, errors.Wrap(errors.ErrTypeConfig, fmt.Sprintf("failed to parse %s", l.configPath), err).
				WithSuggestion("check the config file syntax")
		}
	case os.IsNotExist(err):
		// 文件缺失时允许完全由环境变量提供凭据
	default:
		return nil, errors.Wrap(errors.ErrTypeConfig, "failed to read config file", err)
	}

	applyEnv(&config)

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// decode tries the configured format first and the other one as fallback.
// Each attempt decodes into a fresh Config; config is only set on success.
func (l *fileLoader) decode(data []byte, config *Config) error {
	primary, fallback := unmarshalJSON, unmarshalYAML
	name := "JSON"
	if l.format == FormatYAML {
		primary, fallback = unmarshalYAML, unmarshalJSON
		name = "YAML"
	}

	var first Config
	err := primary(data, &first)
	if err == nil {
		*config = first
		return nil
	}

	var second Config
	if fallback(data, &second) == nil {
		*config = second
		return nil
	}
	return fmt.Errorf("failed to parse config as %s: %w", name, err)
}

func unmarshalJSON(data []byte, config *Config) error { return json.Unmarshal(data, config) }

func unmarshalYAML(data []byte, config *Config) error { return yaml.Unmarshal(data, config) }

func applyEnv(config *Config) {
	if v := os.Getenv(EnvUser); v != "" {
		config.User = v
	}
	if v := os.Getenv(EnvPass); v != "" {
		config.Pass = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		config.Token = v
	}
	if v := os.Getenv(EnvAPIURL); v != "" {
		config.APIURL = v
	}
}

func validate(config *Config) error {
	if config.Token == "" && (config.User == "" || config.Pass == "") {
		return errors.New(errors.ErrTypeConfig, "no credentials configured").WithSuggestion(configSuggestion)
	}

	if config.APIURL == "" {
		config.APIURL = DefaultAPIURL
	}
	config.APIURL = strings.TrimRight(config.APIURL, "/")

	u, err := url.Parse(config.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.Newf(errors.ErrTypeConfig, "invalid api_url %q", config.APIURL)
	}

	return nil
}
