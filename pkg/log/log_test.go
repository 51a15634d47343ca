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

package log

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_new_version",
			op: func(t *testing.T, logger *Logger) {
				logger.LogVersion(context.Background(), VersionOperation{
					Name:   "report_20240101_100010.xlsx",
					Size:   2048,
					Status: "CREATED",
					IsNew:  true,
				})
			},
			wantLogs: []string{
				"✓ report_20240101_100010.xlsx         2.0 KiB    CREATED",
			},
		},
		{
			name: "log_run_bounded",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRun(context.Background(), RunOperation{
					Source:      "/data/report.xlsx",
					Destination: "/versions",
					MaxVersions: 2,
				})
			},
			wantLogs: []string{
				"[versioning /versions]",
				"◆ /data/report.xlsx • keep 2",
			},
		},
		{
			name: "log_run_unlimited",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRun(context.Background(), RunOperation{
					Source:      "/data/report.xlsx",
					Destination: "/versions",
				})
				logger.EndRun(context.Background())
				logger.EndRun(context.Background())
			},
			wantLogs: []string{
				"[versioning /versions]",
				"◆ /data/report.xlsx • unlimited",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Warning("warning message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"⚠️  warning message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Warningf("could not delete %s", "a_20240101_000000.txt")
				logger.Successf("Pruned %d version(s), kept %d", 3, 1)
			},
			wantLogs: []string{
				"⚠️  could not delete a_20240101_000000.txt",
				"✅ Pruned 3 version(s), kept 1",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("creating version")
			},
			wantLogs: []string{
				"copyver • creating version",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.New(zerolog.NewTestWriter(t)))

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestVersionOperationFormatting(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   VersionOperation
		want string
	}{
		{
			name: "created_version",
			op: VersionOperation{
				Name:   "a_20240101_000000.txt",
				Size:   12,
				Status: "CREATED",
				IsNew:  true,
			},
			want: "    ✓ a_20240101_000000.txt               12 B       CREATED        ",
		},
		{
			name: "pruned_version",
			op: VersionOperation{
				Name:      "a_20240101_000000.txt",
				Status:    "PRUNED",
				IsRemoved: true,
			},
			want: "    ✗ a_20240101_000000.txt                          PRUNED         ",
		},
		{
			name: "failed_prune",
			op: VersionOperation{
				Name:      "a_20240101_000000.txt",
				Status:    "FAILED",
				IsRemoved: true,
				IsFailed:  true,
			},
			want: "    ! a_20240101_000000.txt                          FAILED         ",
		},
		{
			name: "kept_version",
			op: VersionOperation{
				Name:   "a_20240101_000000.txt",
				Size:   3 * 1024 * 1024,
				Status: "kept",
			},
			want: "    • a_20240101_000000.txt               3.0 MiB    kept           ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Nop())

			logger.LogVersion(context.Background(), tt.op)

			// only the trailing newline is trimmed; column padding is part of the layout
			assert.Equal(t, tt.want, strings.TrimSuffix(buf.String(), "\n"), "formatted output should match")
		})
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{in: 0, want: "0 B"},
		{in: 1023, want: "1023 B"},
		{in: 1024, want: "1.0 KiB"},
		{in: 1536, want: "1.5 KiB"},
		{in: 5 * 1024 * 1024 * 1024, want: "5.0 GiB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanSize(tt.in))
		})
	}
}
