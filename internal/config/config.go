package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "faqbot/pkg/errors"
)

// Matcher modes.
const (
	ModeRebuild = "rebuild"
	ModeCached  = "cached"
)

// DataConfig points at the question bank.
type DataConfig struct {
	// Path of the JSON question bank; empty selects the built-in bank.
	Path string `yaml:"path"`
}

// MatcherConfig selects how the vector space is maintained.
type MatcherConfig struct {
	Mode string `yaml:"mode"`
}

// UIConfig tunes the chat interface.
type UIConfig struct {
	Title     string `yaml:"title"`
	Greeting  string `yaml:"greeting"`
	ShowScore bool   `yaml:"show_score"`
	ShowAbout bool   `yaml:"show_about"`
}

// TranslatorConfig configures the translation endpoint.
type TranslatorConfig struct {
	BaseURL       string `yaml:"base_url"`
	TimeoutSecs   int    `yaml:"timeout_secs"`
	MaxRetries    int    `yaml:"max_retries"`
	DefaultTarget string `yaml:"default_target"`
}

// SpeechConfig configures text-to-speech output.
type SpeechConfig struct {
	Enabled     bool   `yaml:"enabled"`
	BaseURL     string `yaml:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	OutputDir   string `yaml:"output_dir"`
}

// LogConfig configures the rotating log file.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Data       DataConfig       `yaml:"data"`
	Matcher    MatcherConfig    `yaml:"matcher"`
	UI         UIConfig         `yaml:"ui"`
	Translator TranslatorConfig `yaml:"translator"`
	Speech     SpeechConfig     `yaml:"speech"`
	Log        LogConfig        `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Environment overrides are applied on top of the file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnvOverrides(cfg)
			return cfg, validate(cfg)
		}
		return nil, err
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeConfig, "parse "+path, err)
	}
	applyConfigDefaults(cfg)
	applyEnvOverrides(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/faqbot/config.yaml.
// If neither exists, it writes defaults to ~/.config/faqbot/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnvOverrides(cfg)
	return cfg, userPath, validate(cfg)
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Dir returns the per-user directory holding config, logs and audio output.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "faqbot"), nil
}

func defaultUserConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Matcher: MatcherConfig{Mode: ModeRebuild},
		UI: UIConfig{
			Title:     "University FAQ Chatbot",
			Greeting:  "Hello! How can I help you today?",
			ShowAbout: true,
		},
		Translator: TranslatorConfig{
			BaseURL:       "https://translate.googleapis.com",
			TimeoutSecs:   15,
			MaxRetries:    3,
			DefaultTarget: "spanish",
		},
		Speech: SpeechConfig{
			Enabled:     true,
			BaseURL:     "https://translate.google.com",
			TimeoutSecs: 15,
		},
		Log: LogConfig{Level: "info", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Matcher.Mode == "" {
		cfg.Matcher.Mode = def.Matcher.Mode
	}
	if cfg.UI.Title == "" {
		cfg.UI.Title = def.UI.Title
	}
	if cfg.UI.Greeting == "" {
		cfg.UI.Greeting = def.UI.Greeting
	}
	if cfg.Translator.BaseURL == "" {
		cfg.Translator.BaseURL = def.Translator.BaseURL
	}
	if cfg.Translator.TimeoutSecs == 0 {
		cfg.Translator.TimeoutSecs = def.Translator.TimeoutSecs
	}
	if cfg.Translator.DefaultTarget == "" {
		cfg.Translator.DefaultTarget = def.Translator.DefaultTarget
	}
	if cfg.Speech.BaseURL == "" {
		cfg.Speech.BaseURL = def.Speech.BaseURL
	}
	if cfg.Speech.TimeoutSecs == 0 {
		cfg.Speech.TimeoutSecs = def.Speech.TimeoutSecs
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = def.Log.MaxSizeMB
	}
}

// applyEnvOverrides lets .env files and the environment override YAML.
func applyEnvOverrides(cfg *AppConfig) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"FAQBOT_DATA_PATH", &cfg.Data.Path},
		{"FAQBOT_MATCHER_MODE", &cfg.Matcher.Mode},
		{"FAQBOT_LOG_LEVEL", &cfg.Log.Level},
		{"FAQBOT_LOG_FILE", &cfg.Log.File},
		{"TRANSLATOR_BASE_URL", &cfg.Translator.BaseURL},
		{"TTS_BASE_URL", &cfg.Speech.BaseURL},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && strings.TrimSpace(v) != "" {
			*o.dst = strings.TrimSpace(v)
		}
	}
}

func validate(cfg *AppConfig) error {
	switch cfg.Matcher.Mode {
	case ModeRebuild, ModeCached:
	default:
		return apperrors.Wrap(apperrors.CodeConfig, fmt.Sprintf("unknown matcher mode %q", cfg.Matcher.Mode), nil)
	}
	if cfg.Translator.MaxRetries < 0 {
		return apperrors.Wrap(apperrors.CodeConfig, "translator.max_retries must not be negative", nil)
	}
	return nil
}
