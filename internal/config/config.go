// Package config provides configuration types, defaults, and persistence for
// inkdown.
package config

import (
	"fmt"
	"strings"
	"time"
)

// UIConfig holds user interface options.
type UIConfig struct {
	ShowStatusBar bool `mapstructure:"show_status_bar"`
}

// ThemeConfig holds the color assigned to each decoration kind. Values are
// hex colors, e.g. "#10B981".
type ThemeConfig struct {
	Heading       string `mapstructure:"heading"`
	Bold          string `mapstructure:"bold"`
	Italic        string `mapstructure:"italic"`
	Code          string `mapstructure:"code"`
	CodeBlockBg   string `mapstructure:"code_block_bg"`
	Link          string `mapstructure:"link"`
	Image         string `mapstructure:"image"`
	Blockquote    string `mapstructure:"blockquote"`
	ListBullet    string `mapstructure:"list_bullet"`
	Checkbox      string `mapstructure:"checkbox"`
	Rule          string `mapstructure:"rule"`
	Strikethrough string `mapstructure:"strikethrough"`
}

// TracingConfig controls span export for the inspect command.
type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Exporter string `mapstructure:"exporter"` // "stdout" or "none"
}

// Config holds all configuration options for inkdown.
type Config struct {
	// DebounceMS is how long a document must be quiet after an edit before
	// decorations are recomputed.
	DebounceMS int `mapstructure:"debounce_ms"`

	// CacheCapacity is the number of documents whose decorations are kept;
	// least recently used entries are evicted beyond it.
	CacheCapacity int `mapstructure:"cache_capacity"`

	// AutoReload re-reads the file when it changes on disk.
	AutoReload bool `mapstructure:"auto_reload"`

	UI      UIConfig      `mapstructure:"ui"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// Defaults returns the configuration used when no file or flags override it.
func Defaults() Config {
	return Config{
		DebounceMS:    300,
		CacheCapacity: 10,
		AutoReload:    true,
		UI: UIConfig{
			ShowStatusBar: true,
		},
		Theme: ThemeConfig{
			Heading:       "#7AA2F7",
			Bold:          "#E0AF68",
			Italic:        "#BB9AF7",
			Code:          "#9ECE6A",
			CodeBlockBg:   "#1F2335",
			Link:          "#7DCFFF",
			Image:         "#2AC3DE",
			Blockquote:    "#565F89",
			ListBullet:    "#FF9E64",
			Checkbox:      "#9ECE6A",
			Rule:          "#3B4261",
			Strikethrough: "#565F89",
		},
		Tracing: TracingConfig{
			Enabled:  false,
			Exporter: "stdout",
		},
	}
}

// Debounce returns DebounceMS as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Validate reports the first invalid setting, if any.
func (c Config) Validate() error {
	if c.DebounceMS < 0 {
		return fmt.Errorf("debounce_ms must be >= 0, got %d", c.DebounceMS)
	}
	if c.CacheCapacity < 1 {
		return fmt.Errorf("cache_capacity must be >= 1, got %d", c.CacheCapacity)
	}
	switch c.Tracing.Exporter {
	case "", "stdout", "none":
	default:
		return fmt.Errorf("tracing.exporter must be \"stdout\" or \"none\", got %q", c.Tracing.Exporter)
	}
	if err := validateColors(c.Theme); err != nil {
		return err
	}
	return nil
}

func validateColors(t ThemeConfig) error {
	colors := map[string]string{
		"heading":       t.Heading,
		"bold":          t.Bold,
		"italic":        t.Italic,
		"code":          t.Code,
		"code_block_bg": t.CodeBlockBg,
		"link":          t.Link,
		"image":         t.Image,
		"blockquote":    t.Blockquote,
		"list_bullet":   t.ListBullet,
		"checkbox":      t.Checkbox,
		"rule":          t.Rule,
		"strikethrough": t.Strikethrough,
	}
	for name, v := range colors {
		if v == "" {
			continue // empty means terminal default
		}
		if !strings.HasPrefix(v, "#") || (len(v) != 4 && len(v) != 7) {
			return fmt.Errorf("theme.%s: %q is not a hex color", name, v)
		}
	}
	return nil
}
