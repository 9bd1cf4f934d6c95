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

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-stfmt/internal/config"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError

	// ExitCodeNotFormatted is the exit code when --check finds files that
	// need formatting.
	ExitCodeNotFormatted
)

// ErrStfmt is a parent error for all command errors.
var ErrStfmt = errors.New("stfmt")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrStfmt)

// ErrNotFormatted indicates that files need formatting.
var ErrNotFormatted = fmt.Errorf("%w: not formatted", ErrStfmt)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't use commands.
	//
	// This is done because `stfmt --help foo` will display a
	// "command foo not found" error instead of the help.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// exitCode returns the process exit code for an error returned by the app.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, ErrFlagParse):
		return ExitCodeFlagParseError
	case errors.Is(err, ErrNotFormatted):
		return ExitCodeNotFormatted
	default:
		return ExitCodeUnknownError
	}
}

func printVersion(c *cli.Context) error {
	info := version.GetVersionInfo()
	_, err := fmt.Fprintln(c.App.Writer, info.String())
	if err != nil {
		return fmt.Errorf("%w: printing version: %w", ErrStfmt, err)
	}
	return nil
}

// colorEnabled reports whether output to w is colored for the given --color
// mode.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "auto":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		return isTerminal(w), nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	default:
		return false, fmt.Errorf("%w: invalid --color value %q", ErrFlagParse, mode)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// newLogger returns a logger writing to w. Debug logs are enabled when
// verbose is set.
func newLogger(w io.Writer, verbose, colored bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:   level,
		NoColor: !colored,
	}))
}

// loggerFor returns the logger configured by the global flags.
func loggerFor(c *cli.Context, w io.Writer) (*slog.Logger, error) {
	colored, err := colorEnabled(c.String("color"), w)
	if err != nil {
		return nil, err
	}
	return newLogger(w, c.Bool("verbose"), colored), nil
}

// loadConfig resolves the config from the --config flag, the working
// directory and the user config locations.
func loadConfig(c *cli.Context, logger *slog.Logger) (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStfmt, err)
	}

	cfg, err := config.Resolve(c.String("config"), wd, configLocations())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStfmt, err)
	}
	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path)
	}
	return cfg, nil
}

func newStfmtApp() *cli.App {
	return &cli.App{
		Name:      filepath.Base(os.Args[0]),
		Usage:     "Format IEC 61131-3 structured text.",
		UsageText: filepath.Base(os.Args[0]) + " [OPTION]... [PATH]...",
		Description: strings.Join([]string{
			"Formats structured text files. Directories are searched for *.st",
			"and *.iecst files. With no PATH, standard input is formatted to",
			"standard output.",
			"",
			"http://github.com/ianlewis/go-stfmt",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:               "write",
				Usage:              "write the result to the source files",
				Aliases:            []string{"w"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "list",
				Usage:              "list files whose formatting differs",
				Aliases:            []string{"l"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "check",
				Usage:              "report files whose formatting differs and exit non-zero",
				Aliases:            []string{"c"},
				DisableDefaultText: true,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "read settings from `FILE`",
			},
			&cli.IntFlag{
				Name:        "jobs",
				Usage:       "format `N` files at once",
				Aliases:     []string{"j"},
				DefaultText: "number of CPUs",
			},
			&cli.StringFlag{
				Name:  "color",
				Usage: "colorize output: auto, always or never",
				Value: "auto",
			},
			&cli.BoolFlag{
				Name:               "verbose",
				Usage:              "print debug logs",
				Aliases:            []string{"v"},
				DisableDefaultText: true,
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		Reader:          os.Stdin,
		Writer:          os.Stdout,
		ErrWriter:       os.Stderr,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: formatAction,
		Commands: []*cli.Command{
			lspCommand(),
			vocabCommand(),
		},
	}
}
