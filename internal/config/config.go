package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/alnah/go-mdlayout"
	"github.com/alnah/go-mdlayout/internal/fileutil"
	"github.com/alnah/go-mdlayout/internal/storage"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config")
)

// EnvConfig names the environment variable read when no --config flag is set.
const EnvConfig = "MDLAYOUT_CONFIG"

// AppDir is the directory name under the user config directory.
const AppDir = "mdlayout"

// MaxInputSize limits config files (1MB).
const MaxInputSize = 1 << 20

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxAddrLength     = 255
	MaxPasswordLength = 512
	MaxTitleLength    = 200
)

// Defaults applied by DefaultConfig.
const (
	DefaultLogLevel = "warn"
	DefaultTemplate = "journal-two-column"
	DefaultTimeout  = "30s"
	storageFileName = "templates.json"
)

// Config holds all CLI configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Assets  AssetsConfig  `yaml:"assets"`
	Render  RenderConfig  `yaml:"render"`
}

// StorageConfig selects where the template collection is persisted.
type StorageConfig struct {
	Backend string      `yaml:"backend"` // file, sqlite, redis, memory
	Path    string      `yaml:"path"`    // file or database path
	Key     string      `yaml:"key"`     // record key, default mdlayout.templates
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LogConfig sets the console logger level.
type LogConfig struct {
	Level string `yaml:"level"` // none, debug, info, warn, error
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// RenderConfig holds render command defaults.
type RenderConfig struct {
	Template string `yaml:"template"` // template key used when -t is not given
	Title    string `yaml:"title"`
	Timeout  string `yaml:"timeout"` // Go duration, e.g. "45s"
}

// StorageOptions converts the storage section for storage.New.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:       c.Storage.Backend,
		Key:           c.Storage.Key,
		Path:          c.Storage.Path,
		RedisAddr:     c.Storage.Redis.Addr,
		RedisPassword: c.Storage.Redis.Password,
		RedisDB:       c.Storage.Redis.DB,
	}
}

// TimeoutDuration parses Render.Timeout. An empty value yields the default.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	v := c.Render.Timeout
	if v == "" {
		v = DefaultTimeout
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("render.timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("render.timeout: must be positive, got %s", v)
	}
	return d, nil
}

// Validate reports every invalid field. Called automatically by LoadConfig.
func (c *Config) Validate() error {
	var errs error

	if b := c.Storage.Backend; b != "" && !slices.Contains(storage.Backends(), strings.ToLower(b)) {
		errs = multierr.Append(errs, fmt.Errorf("storage.backend: invalid value %q (must be one of %s)",
			b, strings.Join(storage.Backends(), ", ")))
	}
	if strings.EqualFold(c.Storage.Backend, storage.BackendRedis) && c.Storage.Redis.Addr == "" {
		errs = multierr.Append(errs, errors.New("storage.redis.addr: required when backend is redis"))
	}
	if c.Storage.Redis.DB < 0 {
		errs = multierr.Append(errs, fmt.Errorf("storage.redis.db: must be >= 0, got %d", c.Storage.Redis.DB))
	}
	errs = multierr.Append(errs, validateFieldLength("storage.path", c.Storage.Path, MaxPathLength))
	errs = multierr.Append(errs, validateFieldLength("storage.redis.addr", c.Storage.Redis.Addr, MaxAddrLength))
	errs = multierr.Append(errs, validateFieldLength("storage.redis.password", c.Storage.Redis.Password, MaxPasswordLength))
	errs = multierr.Append(errs, validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength))
	errs = multierr.Append(errs, validateFieldLength("render.title", c.Render.Title, MaxTitleLength))

	if c.Log.Level != "" && c.Log.Level != "none" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("log.level: invalid value %q (must be none, debug, info, warn or error)", c.Log.Level))
		}
	}
	if c.Render.Template != "" {
		if err := mdlayout.ValidateKey(c.Render.Template); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("render.template: %w", err))
		}
	}
	if c.Render.Timeout != "" {
		if _, err := c.TimeoutDuration(); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errs)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// templates persisted as JSON in the user config directory.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: storage.BackendFile,
			Path:    DefaultStoragePath(),
			Key:     storage.DefaultKey,
		},
		Log:    LogConfig{Level: DefaultLogLevel},
		Render: RenderConfig{Template: DefaultTemplate, Timeout: DefaultTimeout},
	}
}

// DefaultStoragePath returns <user config dir>/mdlayout/templates.json, or a
// file in the working directory when the user config dir is unknown.
func DefaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "." + AppDir + "-" + storageFileName
	}
	return filepath.Join(dir, AppDir, storageFileName)
}

// Resolve picks the config to load: the flag value, then $MDLAYOUT_CONFIG
// read through getenv (os.Getenv when nil). An empty result means no config
// file and DefaultConfig applies.
func Resolve(flagValue string, getenv func(string) string) string {
	if flagValue != "" {
		return flagValue
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	return getenv(EnvConfig)
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// Parse decodes YAML over DefaultConfig, rejecting unknown fields, and
// validates the result.
func Parse(data []byte) (*Config, error) {
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: input exceeds %d bytes", ErrConfigParse, MaxInputSize)
	}

	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists the candidate files for a config name, in lookup order:
// current directory, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing search path.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
