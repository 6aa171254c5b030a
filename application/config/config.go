// Package config loads the codec host configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	domainerrors "github.com/reglet-dev/reglet-codec/domain/errors"
	"github.com/reglet-dev/reglet-codec/hostfuncs"
	"github.com/reglet-dev/reglet-codec/infrastructure/wazero"
	"github.com/reglet-dev/reglet-codec/log"
	"gopkg.in/yaml.v3"
)

// HostConfig configures the codec host.
type HostConfig struct {
	// ModuleName is the import module guests link host functions from.
	ModuleName string `yaml:"module_name" validate:"required,max=64"`

	// MaxRequestSize bounds the request a guest may pass to a host function.
	MaxRequestSize uint32 `yaml:"max_request_size" validate:"gt=0"`

	// MaxOutputSize bounds the buffer any decode call may fill.
	MaxOutputSize int `yaml:"max_output_size" validate:"gt=0"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures host logging.
type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"omitempty,oneof=json text"`
	Source bool   `yaml:"source"`
}

// Default returns the configuration used when nothing is overridden.
func Default() HostConfig {
	return HostConfig{
		ModuleName:     wazero.DefaultModuleName,
		MaxRequestSize: hostfuncs.DefaultMaxRequestSize,
		MaxOutputSize:  hostfuncs.DefaultMaxOutputSize,
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load parses YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Load(data []byte) (HostConfig, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return HostConfig{}, &domainerrors.ConfigError{Err: fmt.Errorf("failed to parse YAML: %w", err)}
	}

	if err := cfg.Validate(); err != nil {
		return HostConfig{}, err
	}
	return cfg, nil
}

// LoadFile reads and parses the YAML file at path.
func LoadFile(path string) (HostConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is supplied by the operator
	if err != nil {
		return HostConfig{}, &domainerrors.ConfigError{Err: fmt.Errorf("failed to read %s: %w", path, err)}
	}
	return Load(data)
}

// Validate checks the configuration. The first failing field is reported as
// a ConfigError naming its YAML key.
func (c HostConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.TrimPrefix(fe.Namespace(), "HostConfig.")
		return &domainerrors.ConfigError{
			Field: field,
			Err:   fmt.Errorf("failed on '%s' (value %v)", fe.Tag(), fe.Value()),
		}
	}
	return &domainerrors.ConfigError{Err: err}
}

// AdapterOptions returns the wazero adapter options for this configuration.
func (c HostConfig) AdapterOptions() []wazero.AdapterOption {
	return []wazero.AdapterOption{
		wazero.WithModuleName(c.ModuleName),
		wazero.WithMaxRequestSize(c.MaxRequestSize),
	}
}

// CodecOptions returns the codec host function options for this configuration.
func (c HostConfig) CodecOptions() []hostfuncs.CodecOption {
	return []hostfuncs.CodecOption{
		hostfuncs.WithMaxOutputSize(c.MaxOutputSize),
	}
}

// Logger builds the host logger writing to w.
func (c HostConfig) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, &domainerrors.ConfigError{Field: "log.level", Err: err}
	}
	return log.NewLogger(w,
		log.WithLevel(level),
		log.WithSource(c.Log.Source),
		log.WithText(c.Log.Format == "text"),
	), nil
}
