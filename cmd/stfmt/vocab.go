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
	"fmt"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-stfmt/vocab"
)

func vocabCommand() *cli.Command {
	return &cli.Command{
		Name:      "vocab",
		Usage:     "list the vocabulary used to normalize case",
		UsageText: "stfmt [--config FILE] vocab [CATEGORY]...",
		Description: "Lists the built-in vocabulary and the names added by the config file.\n" +
			"CATEGORY is one of functions, keywords, types or blocks.",
		Action: vocabAction,
	}
}

func vocabAction(c *cli.Context) error {
	categories := vocab.Categories
	if c.NArg() > 0 {
		categories = nil
		for _, name := range c.Args().Slice() {
			cat, ok := parseCategory(name)
			if !ok {
				return fmt.Errorf("%w: unknown category %q", ErrFlagParse, name)
			}
			categories = append(categories, cat)
		}
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
	set := vocab.New(&cfg.Options().Vocabulary)

	headerColor := color.New(color.FgGreen, color.Underline)
	if colored {
		headerColor.EnableColor()
	} else {
		headerColor.DisableColor()
	}

	tbl := table.New("Category", "Entry").
		WithWriter(c.App.Writer).
		WithHeaderFormatter(headerColor.SprintfFunc())
	for _, cat := range categories {
		for _, e := range set.Entries(cat) {
			tbl.AddRow(cat, e)
		}
	}
	tbl.Print()
	return nil
}

func parseCategory(name string) (vocab.Category, bool) {
	for _, c := range vocab.Categories {
		if c.String() == name {
			return c, true
		}
	}
	return 0, false
}
