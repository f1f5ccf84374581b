package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/stargazer/internal/apod"
)

// Config captures the settings Stargazer reads at startup. Display timings
// are fixed and deliberately absent.
type Config struct {
	APIKey       string
	APIURL       string
	SpeechEngine string
	Theme        string
	LogDir       string
}

const (
	defaultConfigPath   = "~/.config/stargazer/config.toml"
	defaultLogDir       = "~/.local/share/stargazer/logs"
	defaultSpeechEngine = "auto"
	defaultTheme        = "Nightfox"

	// APIKeyEnv overrides api_key from the file.
	APIKeyEnv = "NASA_API_KEY"
)

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyEnv()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIKey       string `toml:"api_key"`
		APIURL       string `toml:"api_url"`
		SpeechEngine string `toml:"speech_engine"`
		Theme        string `toml:"theme"`
		LogDir       string `toml:"log_dir"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIKey = orDefault(raw.APIKey, cfg.APIKey)
	cfg.APIURL = orDefault(raw.APIURL, cfg.APIURL)
	cfg.SpeechEngine = strings.ToLower(orDefault(raw.SpeechEngine, cfg.SpeechEngine))
	cfg.Theme = orDefault(raw.Theme, cfg.Theme)
	cfg.LogDir = mustExpand(orDefault(raw.LogDir, defaultLogDir))
	cfg.applyEnv()

	return cfg, nil
}

// UsingDemoKey reports whether requests will go out with the shared demo
// key, which is rate limited to a few dozen requests per hour.
func (c Config) UsingDemoKey() bool {
	return c.APIKey == apod.DemoKey
}

func defaults() Config {
	return Config{
		APIKey:       apod.DemoKey,
		APIURL:       apod.DefaultBaseURL,
		SpeechEngine: defaultSpeechEngine,
		Theme:        defaultTheme,
		LogDir:       mustExpand(defaultLogDir),
	}
}

func (c *Config) applyEnv() {
	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		c.APIKey = key
	}
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
