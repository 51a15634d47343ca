package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🎯 Load reads the record at path. The format follows the file extension:
// .json, .yaml/.yml or .hcl. A missing file is reported as ErrNotFound.
// Blank fields are not an error here; Validate is the caller's call.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var cfg *Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		cfg, err = loadJSON(data)
	case ".yaml", ".yml":
		cfg, err = loadYAML(data)
	case ".hcl":
		cfg, err = loadHCL(data, path)
	default:
		return nil, errors.Errorf("unsupported file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	cfg.location = path
	return cfg, nil
}

// 🆕 EnsureDefault writes an empty record at path unless a file already exists.
// It reports whether a new file was created.
func EnsureDefault(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, errors.Errorf("checking config file: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("path", path).Msg("creating default configuration")
	if err := Save(ctx, path, Default()); err != nil {
		return false, err
	}
	return true, nil
}

// 💾 Save writes cfg to path in the format its extension names. The write goes
// through a pending file so a crash never leaves a half-written record.
func Save(ctx context.Context, path string, cfg *Config) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("saving configuration")

	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = encodeJSON(cfg)
	case ".yaml", ".yml":
		data, err = encodeYAML(cfg)
	case ".hcl":
		data = encodeHCL(cfg)
	default:
		return errors.Errorf("unsupported file extension %q", ext)
	}
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Errorf("creating config directory: %w", err)
		}
	}

	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return errors.Errorf("writing config file: %w", err)
	}

	cfg.location = path
	return nil
}

func loadJSON(data []byte) (*Config, error) {
	var cfg Config
	// unknown keys are ignored
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &cfg, nil
}

func loadYAML(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		// an empty document decodes to the zero record
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}

func encodeJSON(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cfg); err != nil {
		return nil, errors.Errorf("encoding JSON: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeYAML(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return nil, errors.Errorf("encoding YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.Errorf("encoding YAML: %w", err)
	}
	return buf.Bytes(), nil
}
