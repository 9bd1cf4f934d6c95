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

package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-stfmt"
	"github.com/ianlewis/go-stfmt/internal/testutil"
	"github.com/ianlewis/go-stfmt/vocab"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contents string
		expected *Config
		err      error
	}{
		{
			name:     "empty",
			contents: "",
			expected: &Config{
				Indent: "\t",
			},
		},
		{
			name: "full",
			contents: testutil.Source(
				`indent = "    "`,
				``,
				`[vocabulary]`,
				`functions = ["my_fb"]`,
				`keywords = ["region"]`,
				`types = ["st_motor"]`,
				`blocks = ["region"]`,
			),
			expected: &Config{
				Indent: "    ",
				Vocabulary: Vocabulary{
					Functions: []string{"my_fb"},
					Keywords:  []string{"region"},
					Types:     []string{"st_motor"},
					Blocks:    []string{"region"},
				},
			},
		},
		{
			name:     "unknown key",
			contents: "indnet = \"  \"\n",
			err:      ErrInvalid,
		},
		{
			name:     "unknown vocabulary key",
			contents: "[vocabulary]\nfunctoins = [\"x\"]\n",
			err:      ErrInvalid,
		},
		{
			name:     "bad indent",
			contents: "indent = \"x\"\n",
			err:      ErrInvalid,
		},
		{
			name:     "syntax error",
			contents: "indent = \n",
			err:      ErrInvalid,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			dir := testutil.MakeTree(t, map[string]string{
				FileName: test.contents,
			})
			path := filepath.Join(dir, FileName)

			got, err := Load(path)
			if !errors.Is(err, test.err) {
				t.Fatalf("Load: got error %v, want %v", err, test.err)
			}
			if test.err != nil {
				return
			}

			test.expected.Path = path
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("Load (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	dir := testutil.MakeTree(t, map[string]string{
		FileName:        "",
		"src/a/main.st": "",
	})

	got, ok, err := Find(filepath.Join(dir, "src", "a"))
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !ok {
		t.Fatalf("Find: config not found")
	}
	if diff := cmp.Diff(filepath.Join(dir, FileName), got); diff != "" {
		t.Errorf("Find (-want, +got):\n%s", diff)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	dir := testutil.MakeTree(t, map[string]string{
		"project/" + FileName:    "indent = \"  \"\n",
		"project/src/main.st":    "",
		"user/config.toml":       "indent = \"    \"\n",
		"explicit/settings.toml": "indent = \"\\t\\t\"\n",
	})
	user := filepath.Join(dir, "user", "config.toml")

	tests := []struct {
		name     string
		explicit string
		startDir string
		expected string
	}{
		{
			name:     "explicit",
			explicit: filepath.Join(dir, "explicit", "settings.toml"),
			startDir: filepath.Join(dir, "project", "src"),
			expected: "\t\t",
		},
		{
			name:     "project",
			startDir: filepath.Join(dir, "project", "src"),
			expected: "  ",
		},
		{
			name:     "user",
			startDir: filepath.Join(dir, "user"),
			expected: "    ",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := Resolve(test.explicit, test.startDir, []string{filepath.Join(dir, "missing.toml"), user})
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if diff := cmp.Diff(test.expected, cfg.Indent); diff != "" {
				t.Errorf("Indent (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestConfig_Options(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Indent: "  ",
		Vocabulary: Vocabulary{
			Functions: []string{"my_fb"},
		},
	}

	want := &stfmt.Options{
		Indent: "  ",
		Vocabulary: vocab.Extra{
			Functions: []string{"my_fb"},
		},
	}
	if diff := cmp.Diff(want, cfg.Options()); diff != "" {
		t.Errorf("Options (-want, +got):\n%s", diff)
	}
}
