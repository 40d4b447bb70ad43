package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with yaml tags for writing the default file.
type fileConfig struct {
	DebounceMS    int  `yaml:"debounce_ms"`
	CacheCapacity int  `yaml:"cache_capacity"`
	AutoReload    bool `yaml:"auto_reload"`
	UI            struct {
		ShowStatusBar bool `yaml:"show_status_bar"`
	} `yaml:"ui"`
	Theme map[string]string `yaml:"theme"`
}

// WriteDefaultConfig creates a config file at path populated with Defaults().
// Parent directories are created as needed.
func WriteDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	d := Defaults()
	var fc fileConfig
	fc.DebounceMS = d.DebounceMS
	fc.CacheCapacity = d.CacheCapacity
	fc.AutoReload = d.AutoReload
	fc.UI.ShowStatusBar = d.UI.ShowStatusBar
	fc.Theme = map[string]string{
		"heading":       d.Theme.Heading,
		"bold":          d.Theme.Bold,
		"italic":        d.Theme.Italic,
		"code":          d.Theme.Code,
		"code_block_bg": d.Theme.CodeBlockBg,
		"link":          d.Theme.Link,
		"image":         d.Theme.Image,
		"blockquote":    d.Theme.Blockquote,
		"list_bullet":   d.Theme.ListBullet,
		"checkbox":      d.Theme.Checkbox,
		"rule":          d.Theme.Rule,
		"strikethrough": d.Theme.Strikethrough,
	}

	data, err := yaml.Marshal(&fc)
	if err != nil {
		return fmt.Errorf("marshaling default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
