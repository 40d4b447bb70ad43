package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/inkdown/internal/config"
	"github.com/zjrosen/inkdown/internal/log"
	"github.com/zjrosen/inkdown/internal/ui"
	"github.com/zjrosen/inkdown/internal/watcher"
)

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "inkdown <file>",
	Short:   "A terminal markdown viewer with live inline decorations",
	Long: `inkdown opens a markdown file and renders it in place: syntax markers are
hidden and content is styled until the cursor lands on a line, at which point
the raw markdown is revealed for editing.`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE:    runViewer,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/inkdown/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write a debug log to inkdown.log")
	rootCmd.Flags().Int("debounce", 0,
		"decoration recompute delay after an edit, in milliseconds")
	rootCmd.Flags().Bool("no-reload", false,
		"do not reload the file when it changes on disk")

	_ = viper.BindPFlag("debounce_ms", rootCmd.Flags().Lookup("debounce"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("debounce_ms", defaults.DebounceMS)
	viper.SetDefault("cache_capacity", defaults.CacheCapacity)
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("theme.heading", defaults.Theme.Heading)
	viper.SetDefault("theme.bold", defaults.Theme.Bold)
	viper.SetDefault("theme.italic", defaults.Theme.Italic)
	viper.SetDefault("theme.code", defaults.Theme.Code)
	viper.SetDefault("theme.code_block_bg", defaults.Theme.CodeBlockBg)
	viper.SetDefault("theme.link", defaults.Theme.Link)
	viper.SetDefault("theme.image", defaults.Theme.Image)
	viper.SetDefault("theme.blockquote", defaults.Theme.Blockquote)
	viper.SetDefault("theme.list_bullet", defaults.Theme.ListBullet)
	viper.SetDefault("theme.checkbox", defaults.Theme.Checkbox)
	viper.SetDefault("theme.rule", defaults.Theme.Rule)
	viper.SetDefault("theme.strikethrough", defaults.Theme.Strikethrough)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .inkdown/config.yaml (current directory)
		// 2. ~/.config/inkdown/config.yaml (user config)
		if _, err := os.Stat(".inkdown/config.yaml"); err == nil {
			viper.SetConfigFile(".inkdown/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "inkdown"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, herr := os.UserHomeDir()
			if herr == nil {
				defaultPath := filepath.Join(home, ".config", "inkdown", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If the write fails, just continue with defaults.
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runViewer(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := initLogging(); err != nil {
		return err
	}

	path := args[0]
	noReload, _ := cmd.Flags().GetBool("no-reload")

	var reload <-chan struct{}
	if cfg.AutoReload && !noReload {
		w, err := watcher.New(watcher.DefaultConfig(path))
		if err != nil {
			return fmt.Errorf("starting file watcher: %w", err)
		}
		ch, err := w.Start()
		if err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		defer func() { _ = w.Stop() }()
		reload = ch
	}

	model, err := ui.New(cfg, path, reload)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}

func initLogging() error {
	if !debug && os.Getenv("INKDOWN_DEBUG") == "" {
		return nil
	}
	cleanup, err := log.Init("inkdown.log", "inkdown")
	if err != nil {
		return fmt.Errorf("initializing debug log: %w", err)
	}
	cobra.OnFinalize(cleanup)
	return nil
}

// SetVersion overrides the version shown by --version.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
