package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// DefaultEnvPrefix prefixes every environment override, e.g.
	// APP_SERVER_PORT.
	DefaultEnvPrefix = "APP_"
	defaultConfigDir = "configs"
)

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	configDir string
	envPrefix string
	extra     []string
}

// WithConfigDir sets the directory holding base.yaml and the profile files.
// Defaults to "configs" relative to the working directory.
func WithConfigDir(dir string) Option {
	return func(o *loadOptions) {
		o.configDir = dir
	}
}

// WithEnvPrefix replaces DefaultEnvPrefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.envPrefix = prefix
	}
}

// WithFile layers an extra YAML file over the profile, before environment
// overrides. Empty paths are ignored, so the value of an unset variable can
// be passed straight through.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		if path != "" {
			o.extra = append(o.extra, path)
		}
	}
}

// Load builds a Config from these layers, later ones winning:
//
//	defaults            built in, see defaults.go
//	base.yaml           shared by every profile
//	{profile}.yaml      local, dev, prod, ...
//	WithFile paths      in the order given
//	environment         APP_ prefix unless WithEnvPrefix
//
// Environment names are matched against the keys already known, so
// APP_SERVER_READ_TIMEOUT sets server.read_timeout rather than
// server.read.timeout:
//
//	APP_SERVER_PORT                  -> server.port
//	APP_DATABASE_BUSY_TIMEOUT        -> database.busy_timeout
//	APP_EXPORT_OUTPUT_DIR            -> export.output_dir
//	APP_FORMATTER_RETRY_MAX_ATTEMPTS -> formatter.retry.max_attempts
//
// The result is validated before it is returned.
func Load(profile string, opts ...Option) (*Config, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	o := &loadOptions{configDir: defaultConfigDir, envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(o)
	}

	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, err
	}

	files := append([]string{
		filepath.Join(o.configDir, "base.yaml"),
		filepath.Join(o.configDir, profile+".yaml"),
	}, o.extra...)
	for _, path := range files {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := loadEnv(k, o.envPrefix); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// loadDefaults seeds k so every key is known to the environment lookup even
// when no file sets it.
func loadDefaults(k *koanf.Koanf) error {
	for key, value := range defaults() {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("setting default %s: %w", key, err)
		}
	}
	return nil
}

func loadEnv(k *koanf.Koanf, prefix string) error {
	known := envKeys(k.Keys())

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: prefix,
		TransformFunc: func(name, value string) (string, any) {
			name = strings.ToLower(strings.TrimPrefix(name, prefix))
			if key, ok := known[name]; ok {
				return key, value
			}
			return strings.ReplaceAll(name, "_", "."), value
		},
	}), nil)
	if err != nil {
		return fmt.Errorf("loading env vars: %w", err)
	}
	return nil
}

// validateProfile rejects empty names and names that would escape the
// config directory.
func validateProfile(profile string) error {
	switch {
	case strings.TrimSpace(profile) == "":
		return errors.New("profile must not be empty")
	case strings.ContainsAny(profile, `/\`):
		return fmt.Errorf("profile must not contain path separators, got %q", profile)
	case strings.Contains(profile, ".."):
		return fmt.Errorf("profile must not contain path traversal, got %q", profile)
	}
	return nil
}

// envKeys maps the lower-case environment spelling of each dotted key
// (server_read_timeout) back to the key (server.read_timeout).
func envKeys(keys []string) map[string]string {
	m := make(map[string]string, len(keys))
	for _, key := range keys {
		m[strings.ReplaceAll(key, ".", "_")] = key
	}
	return m
}
