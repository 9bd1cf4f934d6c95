// Copyright 2025 Ian Lewis
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

// Package driver formats structured text files on disk.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ianlewis/go-stfmt"
)

// ErrNoFiles indicates that no source files were found.
var ErrNoFiles = errors.New("no structured text files found")

// Extensions are the file extensions of structured text source files.
var Extensions = []string{".st", ".iecst"}

// Options configures file formatting.
type Options struct {
	// Formatter formats each file. If nil, the default Formatter is used.
	Formatter *stfmt.Formatter

	// Write writes changed files back to disk.
	Write bool

	// Jobs is the number of files formatted at once. If zero or less,
	// GOMAXPROCS is used.
	Jobs int

	// Logger receives debug logs. If nil, logs are discarded.
	Logger *slog.Logger
}

// Result is the result of formatting a single file.
type Result struct {
	Path string

	// Changed is true if formatting changes the file.
	Changed bool

	// Formatted is the formatted file contents.
	Formatted []byte

	Err error
}

// FormatPaths formats the given files and the source files found under the
// given directories. Results are sorted by path. Errors for single files are
// reported in the results; the returned error is only set when the paths
// cannot be collected or ctx is done.
func FormatPaths(ctx context.Context, paths []string, opts *Options) ([]Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	f := opts.Formatter
	if f == nil {
		f = stfmt.New(nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	files, err := Collect(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	// Each goroutine writes to its own index.
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatFile(f, path, opts.Write)
			logger.Debug("formatted file",
				"path", path,
				"changed", results[i].Changed,
				"err", results[i].Err,
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("formatting files: %w", err)
	}

	return results, nil
}

func formatFile(f *stfmt.Formatter, path string, write bool) Result {
	r := Result{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		r.Err = fmt.Errorf("reading %q: %w", path, err)
		return r
	}
	src, err := os.ReadFile(path)
	if err != nil {
		r.Err = fmt.Errorf("reading %q: %w", path, err)
		return r
	}

	r.Formatted = []byte(f.Format(string(src)))
	r.Changed = !bytes.Equal(src, r.Formatted)

	if write && r.Changed {
		if err := os.WriteFile(path, r.Formatted, info.Mode().Perm()); err != nil {
			r.Err = fmt.Errorf("writing %q: %w", path, err)
		}
	}
	return r
}

// Collect returns the source files named by paths. Directories are walked
// for files with one of the Extensions. Files named directly are always
// included. The result is sorted and has no duplicates.
func Collect(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err //nolint:wrapcheck // context errors are returned as is
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("collecting files: %w", err)
		}
		if !info.IsDir() {
			files = append(files, filepath.Clean(p))
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if !d.IsDir() && IsSource(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("collecting files: %w", err)
		}
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

// IsSource reports whether path has a structured text file extension.
func IsSource(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}
