package config

import (
	"fmt"
	"os"
	"time"

	"github.com/JaimeStill/docket/internal/reviews"
)

const (
	EnvEditorDebounceDelay = "DOCKET_EDITOR_DEBOUNCE_DELAY"
	EnvEditorSavedWindow   = "DOCKET_EDITOR_SAVED_WINDOW"
)

// EditorConfig holds review editor auto-save tunables.
type EditorConfig struct {
	DebounceDelay string `toml:"debounce_delay"`
	SavedWindow   string `toml:"saved_window"`
}

// SessionConfig converts the editor settings into the review session tunables.
func (c *EditorConfig) SessionConfig() reviews.SessionConfig {
	delay, _ := time.ParseDuration(c.DebounceDelay)
	window, _ := time.ParseDuration(c.SavedWindow)
	return reviews.SessionConfig{
		Delay:       delay,
		SavedWindow: window,
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *EditorConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *EditorConfig) Merge(overlay *EditorConfig) {
	if overlay.DebounceDelay != "" {
		c.DebounceDelay = overlay.DebounceDelay
	}
	if overlay.SavedWindow != "" {
		c.SavedWindow = overlay.SavedWindow
	}
}

func (c *EditorConfig) loadDefaults() {
	if c.DebounceDelay == "" {
		c.DebounceDelay = "1s"
	}
	if c.SavedWindow == "" {
		c.SavedWindow = "2s"
	}
}

func (c *EditorConfig) loadEnv() {
	if v := os.Getenv(EnvEditorDebounceDelay); v != "" {
		c.DebounceDelay = v
	}
	if v := os.Getenv(EnvEditorSavedWindow); v != "" {
		c.SavedWindow = v
	}
}

func (c *EditorConfig) validate() error {
	if _, err := time.ParseDuration(c.DebounceDelay); err != nil {
		return fmt.Errorf("invalid debounce_delay: %w", err)
	}
	if _, err := time.ParseDuration(c.SavedWindow); err != nil {
		return fmt.Errorf("invalid saved_window: %w", err)
	}
	return nil
}
