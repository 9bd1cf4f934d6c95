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
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-stfmt"
	"github.com/ianlewis/go-stfmt/internal/driver"
)

// stdinName is the path reported for standard input.
const stdinName = "<stdin>"

func formatAction(c *cli.Context) error {
	if c.Bool("help") {
		check(cli.ShowAppHelp(c))
		return nil
	}
	if c.Bool("version") {
		return printVersion(c)
	}
	if c.Bool("write") && c.Bool("check") {
		return fmt.Errorf("%w: --write and --check cannot be used together", ErrFlagParse)
	}
	if c.Bool("write") && c.NArg() == 0 {
		return fmt.Errorf("%w: --write requires a path", ErrFlagParse)
	}

	colored, err := colorEnabled(c.String("color"), c.App.Writer)
	if err != nil {
		return err
	}
	logger, err := loggerFor(c, c.App.ErrWriter)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c, logger)
	if err != nil {
		return err
	}
	f := stfmt.New(cfg.Options())

	var results []driver.Result
	if c.NArg() == 0 {
		results = []driver.Result{formatReader(f, c.App.Reader)}
	} else {
		results, err = driver.FormatPaths(c.Context, c.Args().Slice(), &driver.Options{
			Formatter: f,
			Write:     c.Bool("write"),
			Jobs:      c.Int("jobs"),
			Logger:    logger,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStfmt, err)
		}
	}

	return report(c, logger, results, colored)
}

// formatReader formats all of r.
func formatReader(f *stfmt.Formatter, r io.Reader) driver.Result {
	res := driver.Result{Path: stdinName}

	src, err := io.ReadAll(r)
	if err != nil {
		res.Err = fmt.Errorf("reading %s: %w", stdinName, err)
		return res
	}
	res.Formatted = []byte(f.Format(string(src)))
	res.Changed = !bytes.Equal(src, res.Formatted)
	return res
}

// report prints the results in the mode selected by the flags.
func report(c *cli.Context, logger *slog.Logger, results []driver.Result, colored bool) error {
	var failed int
	var changed []driver.Result
	for _, r := range results {
		if r.Err != nil {
			logger.Error("formatting failed", "path", r.Path, "err", r.Err)
			failed++
			continue
		}
		if r.Changed {
			changed = append(changed, r)
		}
	}

	w := c.App.Writer
	switch {
	case c.Bool("check"):
		if len(changed) > 0 {
			printCheck(w, changed, colored)
		}
	case c.Bool("list"):
		for _, r := range changed {
			if _, err := fmt.Fprintln(w, r.Path); err != nil {
				return fmt.Errorf("%w: %w", ErrStfmt, err)
			}
		}
	case c.Bool("write"):
		for _, r := range changed {
			logger.Info("formatted", "path", r.Path)
		}
	default:
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			if _, err := w.Write(r.Formatted); err != nil {
				return fmt.Errorf("%w: %w", ErrStfmt, err)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files could not be formatted", ErrStfmt, failed, len(results))
	}
	if c.Bool("check") && len(changed) > 0 {
		return fmt.Errorf("%w: %d files", ErrNotFormatted, len(changed))
	}
	return nil
}

// printCheck prints a table of the files that need formatting.
func printCheck(w io.Writer, changed []driver.Result, colored bool) {
	headerColor := color.New(color.FgGreen, color.Underline)
	pathColor := color.New(color.FgYellow)
	if colored {
		headerColor.EnableColor()
		pathColor.EnableColor()
	} else {
		headerColor.DisableColor()
		pathColor.DisableColor()
	}

	tbl := table.New("File", "Status").
		WithWriter(w).
		WithHeaderFormatter(headerColor.SprintfFunc()).
		WithFirstColumnFormatter(pathColor.SprintfFunc())
	for _, r := range changed {
		tbl.AddRow(r.Path, "needs formatting")
	}
	tbl.Print()
}
