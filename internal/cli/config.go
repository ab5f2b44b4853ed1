package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/pkg/cache"
	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/sink"
)

// configFileName is the name of the config file inside the config directory.
const configFileName = "config.toml"

// Config is the on-disk configuration. Zero values mean "not set" and leave
// the built-in defaults in place.
type Config struct {
	Generate GenerateConfig `toml:"generate"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
}

// GenerateConfig holds defaults for `mondrian generate`.
type GenerateConfig struct {
	Mode        string   `toml:"mode,omitempty"`
	Width       int      `toml:"width,omitempty"`
	Height      int      `toml:"height,omitempty"`
	Formats     []string `toml:"formats,omitempty"`
	Output      string   `toml:"output,omitempty"`
	Seed        uint64   `toml:"seed,omitempty"`
	JPEGQuality int      `toml:"jpeg_quality,omitempty"`
}

// CacheConfig selects and tunes the artifact cache.
type CacheConfig struct {
	Enabled  bool     `toml:"enabled"`
	Dir      string   `toml:"dir,omitempty"`
	RedisURL string   `toml:"redis_url,omitempty"`
	TTL      Duration `toml:"ttl"`
}

// ServerConfig holds settings for `mondrian serve`.
type ServerConfig struct {
	Addr      string `toml:"addr"`
	MaxWidth  int    `toml:"max_width"`
	MaxHeight int    `toml:"max_height"`
}

// Duration is a time.Duration written as a string ("24h", "90m") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{
		Cache: CacheConfig{
			Enabled: true,
			TTL:     Duration{cache.TTLArtifact},
		},
		Server: ServerConfig{
			Addr:      ":8080",
			MaxWidth:  4096,
			MaxHeight: 4096,
		},
	}
}

// configDir returns the config directory using XDG standard (~/.config/mondrian/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// resolveConfigPath returns path, or the default location when path is empty.
func resolveConfigPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// loadConfig reads the config file on top of the defaults.
// A missing file is only an error when explicit is true.
// Keys the file sets but Config does not know are returned for reporting.
func loadConfig(path string, explicit bool) (Config, []string, error) {
	cfg := defaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		return cfg, nil, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}

	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, unknown, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, unknown, nil
}

func (c Config) validate() error {
	g := c.Generate
	if g.Mode != "" {
		if _, err := mondrian.ParseMode(g.Mode); err != nil {
			return err
		}
	}
	if g.Width < 0 || g.Height < 0 {
		return fmt.Errorf("generate: width and height must not be negative")
	}
	if err := sink.ValidateFormats(g.Formats); err != nil {
		return err
	}
	if g.JPEGQuality < 0 || g.JPEGQuality > 100 {
		return fmt.Errorf("generate: jpeg_quality must be between 1 and 100")
	}
	if c.Cache.TTL.Duration < 0 {
		return fmt.Errorf("cache: ttl must not be negative")
	}
	if c.Server.MaxWidth < 0 || c.Server.MaxHeight < 0 {
		return fmt.Errorf("server: max_width and max_height must not be negative")
	}
	return nil
}

// writeConfig encodes cfg as TOML.
func writeConfig(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize the configuration file",
	}

	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configInitCommand())

	return cmd
}

func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(c.configPath)
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func (c *CLI) configShowCommand() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if raw {
				return writeConfig(cmd.OutOrStdout(), c.Config)
			}
			fmt.Fprintln(cmd.OutOrStdout(), configTable(c.Config))
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "toml", false, "print as TOML instead of a table")
	return cmd
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(c.configPath)
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := writeConfig(f, defaultConfig()); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			printSuccess("Wrote default config")
			printFile(path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// configTable renders the effective settings as a bordered table.
func configTable(cfg Config) string {
	orDefault := func(v string) string {
		if v == "" {
			return StyleDim.Render("default")
		}
		return v
	}
	num := func(n int) string {
		if n == 0 {
			return StyleDim.Render("default")
		}
		return fmt.Sprint(n)
	}
	seed := StyleDim.Render("random")
	if cfg.Generate.Seed != 0 {
		seed = fmt.Sprint(cfg.Generate.Seed)
	}
	formats := ""
	for i, f := range cfg.Generate.Formats {
		if i > 0 {
			formats += ","
		}
		formats += f
	}
	cacheBackend := "file"
	switch {
	case !cfg.Cache.Enabled:
		cacheBackend = "disabled"
	case cfg.Cache.RedisURL != "":
		cacheBackend = "redis"
	}

	rows := [][]string{
		{"generate", "mode", orDefault(cfg.Generate.Mode)},
		{"", "width", num(cfg.Generate.Width)},
		{"", "height", num(cfg.Generate.Height)},
		{"", "formats", orDefault(formats)},
		{"", "output", orDefault(cfg.Generate.Output)},
		{"", "seed", seed},
		{"", "jpeg_quality", num(cfg.Generate.JPEGQuality)},
		{"cache", "backend", cacheBackend},
		{"", "dir", orDefault(cfg.Cache.Dir)},
		{"", "ttl", cfg.Cache.TTL.String()},
		{"server", "addr", cfg.Server.Addr},
		{"", "max_width", num(cfg.Server.MaxWidth)},
		{"", "max_height", num(cfg.Server.MaxHeight)},
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Section", "Key", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleHighlight
			case col == 1:
				return lipgloss.NewStyle().Foreground(colorGray)
			default:
				return StyleValue
			}
		}).
		Render()
}
