package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/KostasZigo/gogit-odb/internal/constants"
	"github.com/klauspost/compress/zlib"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Configuration keys. Environment overrides use the GOGIT_ prefix
// with dots replaced by underscores (GOGIT_STORE_DIR).
const (
	KeyStoreDir         = "store.dir"
	KeyCompressionLevel = "compression.level"
	KeyLogLevel         = "log.level"
)

// Config holds the settings the commands read at startup.
type Config struct {
	// StoreDir is the store directory name created by init and searched for by other commands.
	StoreDir string

	// CompressionLevel is the zlib level for stored objects (-2..9).
	CompressionLevel int

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// File is the config file that was read, empty when none was found.
	File string
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		StoreDir:         constants.Gogit,
		CompressionLevel: zlib.DefaultCompression,
		LogLevel:         constants.DefaultLogLevel,
	}
}

// Load reads defaults, then the config file, then GOGIT_ environment variables.
// cfgFile is optional; when empty gogit.yaml is searched in the working
// directory and in $HOME/.config/gogit. A missing file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "gogit"))
		}
		v.SetConfigName(constants.ConfigFileName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Only a missing file found by search is tolerated, an explicit one must exist
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// GetInt would turn a non-numeric level into 0 (no compression)
	level, err := cast.ToIntE(v.Get(KeyCompressionLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", KeyCompressionLevel, err)
	}

	cfg := &Config{
		StoreDir:         v.GetString(KeyStoreDir),
		CompressionLevel: level,
		LogLevel:         v.GetString(KeyLogLevel),
		File:             v.ConfigFileUsed(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault(KeyStoreDir, defaults.StoreDir)
	v.SetDefault(KeyCompressionLevel, defaults.CompressionLevel)
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
}

// Validate checks every setting against its allowed range.
func (c *Config) Validate() error {
	if c.StoreDir == "" || strings.ContainsRune(c.StoreDir, filepath.Separator) {
		return fmt.Errorf("invalid %s %q: must be a single directory name", KeyStoreDir, c.StoreDir)
	}

	if c.CompressionLevel < zlib.HuffmanOnly || c.CompressionLevel > zlib.BestCompression {
		return fmt.Errorf("invalid %s %d: must be between %d and %d",
			KeyCompressionLevel, c.CompressionLevel, zlib.HuffmanOnly, zlib.BestCompression)
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// ParseLogLevel maps a level name to a slog.Level.
func ParseLogLevel(level string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return lvl, fmt.Errorf("invalid %s %q: %w", KeyLogLevel, level, err)
	}
	return lvl, nil
}

// NewLogger builds a text logger writing to w at the given level.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
