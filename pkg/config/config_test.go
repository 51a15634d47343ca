package config

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		want        *Config
		errContains string
	}{
		{
			name: "json_full_record",
			file: "config.json",
			config: `{
  "ruta_origen": "/data",
  "archivo": "report.xlsx",
  "ruta_destino": "/versions",
  "max_versions": 2
}`,
			want: &Config{SourceDirectory: "/data", SourceFileName: "report.xlsx", DestinationDirectory: "/versions", MaxVersions: 2},
		},
		{
			name:   "json_missing_max_versions",
			file:   "config.json",
			config: `{"ruta_origen": "/data", "archivo": "a.txt", "ruta_destino": "/v"}`,
			want:   &Config{SourceDirectory: "/data", SourceFileName: "a.txt", DestinationDirectory: "/v"},
		},
		{
			name:   "json_numeric_string_max_versions",
			file:   "config.json",
			config: `{"max_versions": "3"}`,
			want:   &Config{MaxVersions: 3},
		},
		{
			name:   "json_non_numeric_max_versions",
			file:   "config.json",
			config: `{"max_versions": "lots"}`,
			want:   &Config{},
		},
		{
			name:   "json_negative_max_versions",
			file:   "config.json",
			config: `{"max_versions": -4}`,
			want:   &Config{},
		},
		{
			name:   "json_null_max_versions",
			file:   "config.json",
			config: `{"max_versions": null}`,
			want:   &Config{},
		},
		{
			name:   "json_fractional_max_versions",
			file:   "config.json",
			config: `{"max_versions": 2.7}`,
			want:   &Config{MaxVersions: 2},
		},
		{
			name:   "json_unknown_field_ignored",
			file:   "config.json",
			config: `{"ruta_origen": "/data", "archivo": "a.txt", "ruta_destino": "/v", "max_versions": 0, "ultima_ejecucion": "x"}`,
			want:   &Config{SourceDirectory: "/data", SourceFileName: "a.txt", DestinationDirectory: "/v"},
		},
		{
			name:        "json_malformed",
			file:        "config.json",
			config:      `{"ruta_origen": "/data",`,
			errContains: "parsing JSON",
		},
		{
			name:        "yaml_unknown_field",
			file:        "config.yaml",
			config:      "archivo: a.txt\nextra: true\n",
			errContains: "parsing YAML",
		},
		{
			name: "yaml_full_record",
			file: "config.yaml",
			config: `
ruta_origen: /data
archivo: report.xlsx
ruta_destino: /versions
max_versions: 5
`,
			want: &Config{SourceDirectory: "/data", SourceFileName: "report.xlsx", DestinationDirectory: "/versions", MaxVersions: 5},
		},
		{
			name:   "yaml_non_numeric_max_versions",
			file:   "config.yml",
			config: "archivo: a.txt\nmax_versions: many\n",
			want:   &Config{SourceFileName: "a.txt"},
		},
		{
			name:   "yaml_empty_document",
			file:   "config.yaml",
			config: "",
			want:   &Config{},
		},
		{
			name: "hcl_full_record",
			file: "config.hcl",
			config: `
ruta_origen  = "/data"
archivo      = "report.xlsx"
ruta_destino = "/versions"
max_versions = 2
`,
			want: &Config{SourceDirectory: "/data", SourceFileName: "report.xlsx", DestinationDirectory: "/versions", MaxVersions: 2},
		},
		{
			name:   "hcl_string_max_versions",
			file:   "config.hcl",
			config: `max_versions = "7"`,
			want:   &Config{MaxVersions: 7},
		},
		{
			name:   "hcl_negative_max_versions",
			file:   "config.hcl",
			config: `max_versions = -1`,
			want:   &Config{},
		},
		{
			name:   "hcl_missing_max_versions",
			file:   "config.hcl",
			config: `archivo = "a.txt"`,
			want:   &Config{SourceFileName: "a.txt"},
		},
		{
			name:        "unsupported_extension",
			file:        "config.toml",
			config:      `archivo = "a.txt"`,
			errContains: "unsupported file extension",
		},
	}

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0o644), "writing config file should succeed")

			cfg, err := Load(ctx, path)
			if tt.errContains != "" {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			if diff := cmp.Diff(tt.want, cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, path, cfg.Location(), "location should be recorded")
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	_, err := Load(ctx, filepath.Join(t.TempDir(), "config.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound), "missing file should be ErrNotFound, got %v", err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		errContains string
	}{
		{
			name: "complete",
			cfg:  Config{SourceDirectory: "/data", SourceFileName: "a.txt", DestinationDirectory: "/v"},
		},
		{
			name:        "all_blank",
			cfg:         Config{},
			errContains: "ruta_origen, archivo, ruta_destino required",
		},
		{
			name:        "whitespace_only_file_name",
			cfg:         Config{SourceDirectory: "/data", SourceFileName: "   ", DestinationDirectory: "/v"},
			errContains: "archivo required",
		},
		{
			name:        "tab_only_destination",
			cfg:         Config{SourceDirectory: "/data", SourceFileName: "a.txt", DestinationDirectory: "\t"},
			errContains: "ruta_destino required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrIncomplete), "should be ErrIncomplete")
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestSaveDefaultJSONLayout(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	path := filepath.Join(t.TempDir(), "config.json")

	require.NoError(t, Save(ctx, path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{
  "ruta_origen": "",
  "archivo": "",
  "ruta_destino": "",
  "max_versions": 0
}
`, string(data))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "config.json")
	require.NoError(t, writeFileAtomic(path, []byte("{}"), 0o644))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	err = writeFileAtomic(filepath.Join(dir, "missing", "config.json"), []byte("{}"), 0o644)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "cause should be kept: %v", err)

	var pathErr *fs.PathError
	require.True(t, errors.As(err, &pathErr), "should wrap the os error")
	assert.NotEqual(t, pathErr.Error(), err.Error(), "os error should be wrapped with context")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files should be left behind")
}

func TestSaveThenLoad(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	want := &Config{
		SourceDirectory:      "/data/ñandú",
		SourceFileName:       "informe <final>.xlsx",
		DestinationDirectory: "/versions",
		MaxVersions:          4,
	}

	for _, file := range []string{"config.json", "config.yaml", "config.hcl"} {
		t.Run(file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", file)
			require.NoError(t, Save(ctx, path, want))

			got, err := Load(ctx, path)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got, cmpopts.IgnoreUnexported(Config{})); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEnsureDefault(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	path := filepath.Join(t.TempDir(), "config.json")

	created, err := EnsureDefault(ctx, path)
	require.NoError(t, err)
	assert.True(t, created, "first call should create the file")

	cfg, err := Load(ctx, path)
	require.NoError(t, err)
	cfg.SourceFileName = "keep.txt"
	require.NoError(t, Save(ctx, path, cfg))

	created, err = EnsureDefault(ctx, path)
	require.NoError(t, err)
	assert.False(t, created, "second call should leave the file alone")

	cfg, err = Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "keep.txt", cfg.SourceFileName, "existing record should not be overwritten")
}

func TestSetSource(t *testing.T) {
	dir := t.TempDir()
	var cfg Config

	require.NoError(t, cfg.SetSource(filepath.Join(dir, "sub", "report.xlsx")))
	assert.Equal(t, filepath.Join(dir, "sub"), cfg.SourceDirectory)
	assert.Equal(t, "report.xlsx", cfg.SourceFileName)
	assert.Equal(t, filepath.Join(dir, "sub", "report.xlsx"), cfg.SourcePath())

	assert.Error(t, cfg.SetSource("  "), "blank source should be rejected")
}

func TestConfigString(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "unlimited",
			cfg:  Config{SourceDirectory: "/data", SourceFileName: "a.txt", DestinationDirectory: "/v"},
			want: "/data/a.txt -> /v (unlimited)",
		},
		{
			name: "bounded",
			cfg:  Config{SourceDirectory: "/data", SourceFileName: "a.txt", DestinationDirectory: "/v", MaxVersions: 3},
			want: "/data/a.txt -> /v (keep 3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.String())
		})
	}
}
