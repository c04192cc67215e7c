// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for atomine.
//
// Configuration is TOML with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file location (in order of precedence):
//   - ~/.atomine/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/atomine/atomine-tui/internal/model"
	"github.com/atomine/atomine-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete atomine configuration.
type Config struct {
	Version string `toml:"version"`

	// API configuration
	API APIConfig `toml:"api"`

	// Chat defaults
	Chat ChatConfig `toml:"chat"`

	// Image generation configuration
	Image ImageConfig `toml:"image"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// APIConfig contains integration-proxy settings.
type APIConfig struct {
	// BaseURL is the integration proxy every request goes through.
	BaseURL string `toml:"base_url"`

	// StreamTimeoutSecs bounds a whole streaming turn, in seconds.
	StreamTimeoutSecs int `toml:"stream_timeout_secs"`
}

// ChatConfig contains default chat behavior.
type ChatConfig struct {
	// DefaultModel is the model new conversations start with: "o1",
	// "o1-mini", or "v1".
	DefaultModel string `toml:"default_model"`

	// Creativity is the sampling temperature, 0.0 to 1.0.
	Creativity float64 `toml:"creativity"`

	// ResponseLength caps reply tokens; 0 means adaptive.
	ResponseLength int `toml:"response_length"`

	// WritingStyle is the response format hint.
	WritingStyle string `toml:"writing_style"`

	// ResponseMode is "think", "deepThink", or "deeperThink".
	ResponseMode string `toml:"response_mode"`
}

// ImageConfig contains image generation settings.
type ImageConfig struct {
	// Backend is "dall-e" or "stable-diffusion".
	Backend string `toml:"backend"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Theme is "dark" or "light".
	Theme string `toml:"theme"`

	// ShowTimestamps renders message times in the transcript.
	ShowTimestamps bool `toml:"show_timestamps"`

	// MarkdownRendering enables glamour rendering of assistant replies.
	MarkdownRendering bool `toml:"markdown_rendering"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: "1.0",
		API: APIConfig{
			BaseURL:           "https://proxy.atomine.app",
			StreamTimeoutSecs: 120,
		},
		Chat: ChatConfig{
			DefaultModel:   string(model.ModelO1),
			Creativity:     0.7,
			ResponseLength: 0,
			WritingStyle:   "balanced",
			ResponseMode:   string(model.ModeThink),
		},
		Image: ImageConfig{
			Backend: string(model.BackendDallE),
		},
		UI: UIConfig{
			Theme:             "dark",
			ShowTimestamps:    false,
			MarkdownRendering: true,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the atomine configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".atomine"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads configuration from disk, falling back to defaults when no
// file exists. Environment overrides and validation apply either way.
// On first run the defaults are written out, so the user has a file to
// edit and the watcher has one to watch.
func Load() (*Config, error) {
	cfg := Default()
	firstRun := false

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		} else if os.IsNotExist(statErr) {
			firstRun = true
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// The written file holds the pristine defaults; environment
	// overrides stay session-local.
	if firstRun {
		if err := Save(Default()); err != nil {
			log.Printf("could not write initial config: %v", err)
		}
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from an explicit path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the default path atomically.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to the given path atomically.
func SaveTOML(cfg *Config, path string) error {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, []byte(b.String()), 0600)
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors aggregates validation failures.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.API.BaseURL == "" {
		errs = append(errs, ValidationError{"api.base_url", "must not be empty"})
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		errs = append(errs, ValidationError{"api.base_url", "must be an http(s) URL"})
	}
	if c.API.StreamTimeoutSecs <= 0 {
		errs = append(errs, ValidationError{"api.stream_timeout_secs", "must be positive"})
	}

	if !model.ModelID(c.Chat.DefaultModel).IsValid() || c.Chat.DefaultModel == string(model.ModelImageGen) {
		errs = append(errs, ValidationError{"chat.default_model", "must be o1, o1-mini, or v1"})
	}
	if c.Chat.Creativity < 0 || c.Chat.Creativity > 1 {
		errs = append(errs, ValidationError{"chat.creativity", "must be between 0.0 and 1.0"})
	}
	if c.Chat.ResponseLength < 0 {
		errs = append(errs, ValidationError{"chat.response_length", "must be >= 0"})
	}
	if !model.ResponseMode(c.Chat.ResponseMode).IsValid() {
		errs = append(errs, ValidationError{"chat.response_mode", "must be think, deepThink, or deeperThink"})
	}

	if !model.ImageBackend(c.Image.Backend).IsValid() {
		errs = append(errs, ValidationError{"image.backend", "must be dall-e or stable-diffusion"})
	}

	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		errs = append(errs, ValidationError{"ui.theme", "must be dark or light"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills any zero-valued fields that have a meaningful default.
// Loading a sparse config file leaves untouched sections zeroed; this
// repairs them before validation.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Version == "" {
		c.Version = d.Version
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.StreamTimeoutSecs == 0 {
		c.API.StreamTimeoutSecs = d.API.StreamTimeoutSecs
	}
	if c.Chat.DefaultModel == "" {
		c.Chat.DefaultModel = d.Chat.DefaultModel
	}
	if c.Chat.WritingStyle == "" {
		c.Chat.WritingStyle = d.Chat.WritingStyle
	}
	if c.Chat.ResponseMode == "" {
		c.Chat.ResponseMode = d.Chat.ResponseMode
	}
	if c.Image.Backend == "" {
		c.Image.Backend = d.Image.Backend
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies ATOMINE_* environment variables over the
// loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if base := os.Getenv("ATOMINE_BASE_URL"); base != "" {
		c.API.BaseURL = base
	}
	if m := os.Getenv("ATOMINE_MODEL"); m != "" {
		c.Chat.DefaultModel = m
	}
	if backend := os.Getenv("ATOMINE_IMAGE_BACKEND"); backend != "" {
		c.Image.Backend = backend
	}
	if theme := os.Getenv("ATOMINE_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if timeout := os.Getenv("ATOMINE_STREAM_TIMEOUT"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil && secs > 0 {
			c.API.StreamTimeoutSecs = secs
		}
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// DefaultModel returns the configured default model as a typed ID.
func (c *Config) DefaultModel() model.ModelID {
	return model.Normalize(model.ModelID(c.Chat.DefaultModel))
}

// ImageBackend returns the configured image backend, falling back to
// dall-e for unknown values.
func (c *Config) ImageBackend() model.ImageBackend {
	b := model.ImageBackend(c.Image.Backend)
	if !b.IsValid() {
		return model.BackendDallE
	}
	return b
}

// Preferences projects the chat defaults into session preferences.
func (c *Config) Preferences() model.Preferences {
	mode := model.ResponseMode(c.Chat.ResponseMode)
	if !mode.IsValid() {
		mode = model.ModeThink
	}
	return model.Preferences{
		Creativity:     c.Chat.Creativity,
		ResponseLength: c.Chat.ResponseLength,
		WritingStyle:   c.Chat.WritingStyle,
		Mode:           mode,
	}
}

// =============================================================================
// GLOBAL INSTANCE
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
	globalOverrides  Overrides
)

// Overrides are command-line settings that outrank the config file.
// They are re-applied on every global load and reload, so a file edit
// picked up by the watcher can never silently undo a flag.
type Overrides struct {
	BaseURL string
}

// apply writes the non-zero overrides over cfg.
func (o Overrides) apply(cfg *Config) {
	if o.BaseURL != "" {
		cfg.API.BaseURL = o.BaseURL
	}
}

// SetOverrides records the command-line overrides. Call before the first
// Global or SetGlobal. Thread-safe.
func SetOverrides(o Overrides) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalOverrides = o
}

// Global returns the global configuration instance, loading it on first
// access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalOverrides.apply(cfg)
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk, with the
// recorded overrides re-applied. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalOverrides.apply(cfg)
	globalConfig = cfg
	return nil
}

// SetGlobal replaces the global configuration instance. The recorded
// overrides are applied to cfg. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalOverrides.apply(cfg)
	globalConfig = cfg
}
