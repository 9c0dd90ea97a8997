package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Export ExportConfig
	Upload UploadConfig
	Guide  GuideConfig
	Vendor VendorConfig
	UI     UIConfig
	Log    LogConfig
}

// ExportConfig controls where and how the order guide is exported.
type ExportConfig struct {
	Dir    string
	Format string // csv or sqlite
}

// UploadConfig bounds price sheet uploads.
type UploadConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

// GuideConfig holds order guide generation settings.
type GuideConfig struct {
	InvalidateOnUpload bool `mapstructure:"invalidate_on_upload"`
}

// VendorConfig holds vendor form settings.
type VendorConfig struct {
	SimilarityDistance int `mapstructure:"similarity_distance"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	GridHeight  int `mapstructure:"grid_height"`
	ColumnWidth int `mapstructure:"column_width"`
	PreviewRows int `mapstructure:"preview_rows"`
}

// LogConfig holds log sink settings.
type LogConfig struct {
	Path  string
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix ORDERGUIDE_.
func Load() (Config, error) {
	return LoadFile(os.Getenv("ORDERGUIDE_CONFIG"))
}

// LoadFile is Load with an explicit config file; an empty path searches the
// default config directory.
func LoadFile(cfgPath string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ORDERGUIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit path that does not exist is an error, a missing default file is not
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	home := os.Getenv("HOME")
	v.SetDefault("export.dir", filepath.Join(home, "Documents", "orderguide"))
	v.SetDefault("export.format", "csv")
	v.SetDefault("upload.max_bytes", 20<<20)
	v.SetDefault("guide.invalidate_on_upload", false)
	v.SetDefault("vendor.similarity_distance", 2)
	v.SetDefault("ui.grid_height", 15)
	v.SetDefault("ui.column_width", 18)
	v.SetDefault("ui.preview_rows", 5)
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "orderguide", "orderguide.log"))
	v.SetDefault("log.level", "info")
}

// Validate rejects settings the app cannot run with.
func (c Config) Validate() error {
	switch c.Export.Format {
	case "csv", "sqlite":
	default:
		return fmt.Errorf("export.format must be csv or sqlite, got %q", c.Export.Format)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be positive")
	}
	if c.UI.GridHeight <= 0 || c.UI.ColumnWidth <= 0 {
		return fmt.Errorf("ui.grid_height and ui.column_width must be positive")
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	return SaveFile(cfg, Path())
}

// Path is the config file Load reads when no explicit file is given.
func Path() string {
	if path := os.Getenv("ORDERGUIDE_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(configDir(), "config.toml")
}

// SaveFile writes cfg as TOML to path.
func SaveFile(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("export.dir", cfg.Export.Dir)
	v.Set("export.format", cfg.Export.Format)
	v.Set("upload.max_bytes", cfg.Upload.MaxBytes)
	v.Set("guide.invalidate_on_upload", cfg.Guide.InvalidateOnUpload)
	v.Set("vendor.similarity_distance", cfg.Vendor.SimilarityDistance)
	v.Set("ui.grid_height", cfg.UI.GridHeight)
	v.Set("ui.column_width", cfg.UI.ColumnWidth)
	v.Set("ui.preview_rows", cfg.UI.PreviewRows)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func configDir() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "orderguide")
}
