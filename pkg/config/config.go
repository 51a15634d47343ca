// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📄 DefaultFileName is the record file name looked up next to the executable
const DefaultFileName = "config.json"

var (
	// 🔍 ErrNotFound is returned by Load when the record file does not exist
	ErrNotFound = errors.Base("config not found")

	// ⚠️ ErrIncomplete is returned by Validate when a required field is blank
	ErrIncomplete = errors.Base("config incomplete")
)

// 📚 Config is the versioning record: which file to copy, where to, and how
// many copies to keep.
type Config struct {
	SourceDirectory      string      `json:"ruta_origen" yaml:"ruta_origen"`
	SourceFileName       string      `json:"archivo" yaml:"archivo"`
	DestinationDirectory string      `json:"ruta_destino" yaml:"ruta_destino"`
	MaxVersions          MaxVersions `json:"max_versions" yaml:"max_versions"`

	location string
}

// 🏭 Default returns the empty record written when no file exists yet
func Default() *Config {
	return &Config{}
}

// 📍 DefaultPath returns config.json in the directory holding the running executable
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Errorf("locating executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", errors.Errorf("resolving executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), DefaultFileName), nil
}

// Location returns the path the record was loaded from or last saved to.
func (cfg *Config) Location() string {
	return cfg.location
}

// ✂️ Trimmed returns a copy with surrounding whitespace removed from every path field
func (cfg Config) Trimmed() Config {
	cfg.SourceDirectory = strings.TrimSpace(cfg.SourceDirectory)
	cfg.SourceFileName = strings.TrimSpace(cfg.SourceFileName)
	cfg.DestinationDirectory = strings.TrimSpace(cfg.DestinationDirectory)
	return cfg
}

// 🔍 Validate checks that every required field is non-blank
func (cfg Config) Validate() error {
	t := cfg.Trimmed()

	var missing []string
	if t.SourceDirectory == "" {
		missing = append(missing, "ruta_origen")
	}
	if t.SourceFileName == "" {
		missing = append(missing, "archivo")
	}
	if t.DestinationDirectory == "" {
		missing = append(missing, "ruta_destino")
	}

	if len(missing) > 0 {
		return errors.Errorf("%w: %s required", ErrIncomplete, strings.Join(missing, ", "))
	}
	return nil
}

// SourcePath joins the source directory and file name.
func (cfg Config) SourcePath() string {
	t := cfg.Trimmed()
	return filepath.Join(t.SourceDirectory, t.SourceFileName)
}

// 📂 SetSource splits a picked file path into directory and file name
func (cfg *Config) SetSource(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.Errorf("source path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Errorf("resolving source path: %w", err)
	}
	cfg.SourceDirectory = filepath.Dir(abs)
	cfg.SourceFileName = filepath.Base(abs)
	return nil
}

// SetDestination stores the destination folder as an absolute path.
func (cfg *Config) SetDestination(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.Errorf("destination path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Errorf("resolving destination path: %w", err)
	}
	cfg.DestinationDirectory = abs
	return nil
}

// 📝 String returns a string representation of the config
func (cfg Config) String() string {
	keep := "unlimited"
	if cfg.MaxVersions > 0 {
		keep = fmt.Sprintf("keep %d", cfg.MaxVersions)
	}
	return fmt.Sprintf("%s -> %s (%s)", cfg.SourcePath(), strings.TrimSpace(cfg.DestinationDirectory), keep)
}
