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

// Package versions names, finds and prunes timestamped copies of a file.
// The destination directory is the only record of which versions exist.
package versions

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// TimestampLayout is YYYYMMDD_HHMMSS.
const TimestampLayout = "20060102_150405"

// Version is one timestamped copy found in a destination directory.
type Version struct {
	Name    string    // file name inside the directory
	Size    int64     // size in bytes
	ModTime time.Time // modification time used for ordering
}

// Split returns the file name without its last extension, and that extension
// including the dot. Only the final segment counts: "archive.tar.gz" splits into
// "archive.tar" and ".gz". A leading dot does not start an extension, so
// ".bashrc" has no extension.
func Split(name string) (base, ext string) {
	name = filepath.Base(name)
	ext = filepath.Ext(name)
	if ext == name || ext == "." {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}

// Timestamp formats t with second resolution.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// FileName builds "{base}_{timestamp}{ext}".
func FileName(base string, t time.Time, ext string) string {
	return base + "_" + Timestamp(t) + ext
}

// Pattern is the glob matching every version of base/ext: "{base}_*{ext}".
// Glob metacharacters inside base and ext are escaped so they match literally.
func Pattern(base, ext string) string {
	return escapeMeta(base) + "_*" + escapeMeta(ext)
}

// List returns every regular file in fsys matching Pattern(base, ext), newest
// first. Files sharing a modification time are ordered by name, highest first,
// which for equal prefixes puts the later timestamp first.
func List(fsys fs.FS, base, ext string) ([]Version, error) {
	matches, err := doublestar.Glob(fsys, Pattern(base, ext))
	if err != nil {
		return nil, errors.Errorf("globbing versions: %w", err)
	}

	out := make([]Version, 0, len(matches))
	for _, name := range matches {
		info, err := fs.Stat(fsys, name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// removed between glob and stat
				continue
			}
			return nil, errors.Errorf("stat %s: %w", name, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		out = append(out, Version{
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	Sort(out)
	return out, nil
}

// Sort orders versions newest first, breaking modification time ties by name.
func Sort(vs []Version) {
	sort.SliceStable(vs, func(i, j int) bool {
		if !vs[i].ModTime.Equal(vs[j].ModTime) {
			return vs[i].ModTime.After(vs[j].ModTime)
		}
		return vs[i].Name > vs[j].Name
	})
}

// Pin moves the version called name to the front of vs, keeping the order of
// the rest. vs is returned unchanged when no version has that name.
func Pin(vs []Version, name string) []Version {
	for i, v := range vs {
		if v.Name != name {
			continue
		}
		if i == 0 {
			return vs
		}
		out := make([]Version, 0, len(vs))
		out = append(out, v)
		out = append(out, vs[:i]...)
		return append(out, vs[i+1:]...)
	}
	return vs
}

func escapeMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
