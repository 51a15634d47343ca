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
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent version entries
	nameWidth   = 35 // Base width for version name
	sizeWidth   = 10 // Width for size column
	statusWidth = 15 // Width for status text
)

// 🎯 VersionOperation is one line of run output
type VersionOperation struct {
	Name      string // Version file name
	Size      int64  // Size in bytes, 0 when unknown
	Status    string // Operation status
	IsNew     bool   // Created by this run
	IsRemoved bool   // Pruned by this run
	IsFailed  bool   // Prune attempted and failed
}

// 📦 RunOperation describes the versioning run being reported
type RunOperation struct {
	Source      string // Absolute source path
	Destination string // Destination directory
	MaxVersions int    // 0 means unlimited
}

// 🎯 Logger prints console lines for a versioning run and mirrors each one
// to zerolog
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentRun *RunOperation
	operations []VersionOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 📏 HumanSize renders a byte count the way the list table shows it
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// 📝 formatVersionOperation formats a version operation for display
func (l *Logger) formatVersionOperation(op VersionOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsFailed:
		symbol = '!'
		symbolColor = color.FgYellow
	case op.IsRemoved:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.IsNew:
		symbol = '✓'
		symbolColor = color.FgGreen
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	size := ""
	if op.Size > 0 {
		size = HumanSize(op.Size)
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Name),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", sizeWidth, size)),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
}

// 📝 LogVersion logs a created, kept, pruned or failed version
func (l *Logger) LogVersion(ctx context.Context, op VersionOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatVersionOperation(op))

	ev := l.zlog.Info()
	if op.IsFailed {
		ev = l.zlog.Warn()
	}
	ev.Str("version", op.Name).
		Int64("size", op.Size).
		Str("status", op.Status).
		Bool("is_new", op.IsNew).
		Bool("is_removed", op.IsRemoved).
		Bool("is_failed", op.IsFailed).
		Msg("version operation")
}

// 📝 StartRun prints the run header
func (l *Logger) StartRun(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentRun = &op
	l.operations = nil

	fmt.Fprintf(l.console, "[versioning %s]\n",
		color.New(color.FgCyan).Sprint(op.Destination))

	keep := "unlimited"
	if op.MaxVersions > 0 {
		keep = fmt.Sprintf("keep %d", op.MaxVersions)
	}
	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Source),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(keep))

	l.zlog.Info().
		Str("source", op.Source).
		Str("destination", op.Destination).
		Int("max_versions", op.MaxVersions).
		Msg("starting versioning run")
}

// 📝 EndRun ends the current run
func (l *Logger) EndRun(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentRun == nil {
		return
	}

	created, removed, failed := 0, 0, 0
	for _, op := range l.operations {
		switch {
		case op.IsFailed:
			failed++
		case op.IsRemoved:
			removed++
		case op.IsNew:
			created++
		}
	}

	l.zlog.Info().
		Str("source", l.currentRun.Source).
		Int("created", created).
		Int("pruned", removed).
		Int("failed", failed).
		Msg("versioning run complete")

	l.currentRun = nil
	l.operations = nil
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("copyver")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
