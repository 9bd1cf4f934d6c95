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

// Package config loads formatter settings from TOML files.
//
// A config file looks like this:
//
//	indent = "    "
//
//	[vocabulary]
//	functions = ["my_fb"]
//	types = ["st_motor"]
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ianlewis/go-stfmt"
	"github.com/ianlewis/go-stfmt/vocab"
)

// FileName is the name of a project config file.
const FileName = ".stfmt.toml"

// ErrInvalid indicates that a config file could not be used.
var ErrInvalid = errors.New("invalid config")

// Config is the formatter configuration.
type Config struct {
	// Path is the file the config was loaded from. It is empty for the
	// default config.
	Path string `toml:"-"`

	// Indent is the text used for one level of indentation.
	Indent string `toml:"indent"`

	// Vocabulary holds names added to the built-in vocabulary.
	Vocabulary Vocabulary `toml:"vocabulary"`
}

// Vocabulary holds extra vocabulary names by category.
type Vocabulary struct {
	Functions []string `toml:"functions"`
	Keywords  []string `toml:"keywords"`
	Types     []string `toml:"types"`
	Blocks    []string `toml:"blocks"`
}

// Default returns the default config.
func Default() *Config {
	return &Config{
		Indent: stfmt.DefaultOptions.Indent,
	}
}

// Find walks up from startDir and returns the path of the first project config
// file found.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolving %q: %w", startDir, err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("checking %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load reads the config file at path. Unknown keys are an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%w: %s: unknown keys: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	if strings.Trim(cfg.Indent, " \t") != "" {
		return nil, fmt.Errorf("%w: %s: indent must only hold spaces and tabs: %q", ErrInvalid, path, cfg.Indent)
	}
	if cfg.Indent == "" {
		cfg.Indent = stfmt.DefaultOptions.Indent
	}
	cfg.Path = path
	return cfg, nil
}

// Resolve returns the config to use. An explicit path is always loaded.
// Otherwise the project config found from startDir is used, then the first
// existing file in userPaths, then the default config.
func Resolve(explicit, startDir string, userPaths []string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}

	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if ok {
		return Load(path)
	}

	for _, p := range userPaths {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// Options returns the formatter options for the config.
func (c *Config) Options() *stfmt.Options {
	return &stfmt.Options{
		Indent: c.Indent,
		Vocabulary: vocab.Extra{
			Functions: c.Vocabulary.Functions,
			Keywords:  c.Vocabulary.Keywords,
			Types:     c.Vocabulary.Types,
			Blocks:    c.Vocabulary.Blocks,
		},
	}
}
