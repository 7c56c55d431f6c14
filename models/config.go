package models

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// RenderMode selects how page HTML is acquired.
const (
	RenderModeBrowser = "browser" // headless Chrome, fully rendered DOM
	RenderModeStatic  = "static"  // plain HTTP GET, server-rendered HTML only
)

// Config holds runtime configuration for a scan. Values come from a YAML
// config file, CLI flags, or both; flags win.
type Config struct {
	StartURL     string   `yaml:"start_url"`
	Languages    []string `yaml:"languages"`     // target languages, ISO 639-1
	BaseLanguage string   `yaml:"base_language"` // source language of the site
	MaxPages     int      `yaml:"max_pages"`
	RenderMode   string   `yaml:"render_mode"`
	LingoAPIKey  string   `yaml:"lingo_api_key"`
	OutputDir    string   `yaml:"output_dir"`
	Workers      int      `yaml:"workers"` // translation lookup concurrency
}

// DefaultConfig returns a Config with working defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Languages:    []string{"es"},
		BaseLanguage: "en",
		MaxPages:     5,
		RenderMode:   RenderModeBrowser,
		OutputDir:    "loc-results",
		Workers:      5,
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file is
// not an error; callers may configure everything through flags.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a scan. Invalid
// configuration is the one class of failure that aborts a run outright.
func (c *Config) Validate() error {
	if c.StartURL == "" {
		return fmt.Errorf("start_url is required")
	}
	parsed, err := url.Parse(c.StartURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("start_url %q is not a valid http(s) URL", c.StartURL)
	}
	if len(c.Languages) == 0 {
		return fmt.Errorf("at least one target language is required")
	}
	if c.BaseLanguage == "" {
		return fmt.Errorf("base_language is required")
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("max_pages must be positive, got %d", c.MaxPages)
	}
	if c.RenderMode != RenderModeBrowser && c.RenderMode != RenderModeStatic {
		return fmt.Errorf("render_mode must be %q or %q", RenderModeBrowser, RenderModeStatic)
	}
	if c.Workers <= 0 {
		c.Workers = 5
	}
	return nil
}

// MockTranslations reports whether the translation client should run in mock
// mode. Selected automatically when no credential is configured.
func (c *Config) MockTranslations() bool {
	return c.LingoAPIKey == ""
}

// TargetLanguages returns the configured languages excluding the base
// language, preserving order.
func (c *Config) TargetLanguages() []string {
	targets := make([]string, 0, len(c.Languages))
	for _, lang := range c.Languages {
		if lang != c.BaseLanguage {
			targets = append(targets, lang)
		}
	}
	return targets
}
