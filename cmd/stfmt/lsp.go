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
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-stfmt/internal/lsp"
)

func lspCommand() *cli.Command {
	return &cli.Command{
		Name:      "lsp",
		Usage:     "run a language server on standard input and output",
		UsageText: "stfmt [--config FILE] [--verbose] lsp [--log-file FILE]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "write logs to `FILE` instead of standard error",
			},
		},
		Action: lspAction,
	}
}

func lspAction(c *cli.Context) error {
	logOut := c.App.ErrWriter
	if path := c.String("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("%w: opening log file: %w", ErrStfmt, err)
		}
		defer f.Close()
		logOut = f
	}

	logger, err := loggerFor(c, logOut)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c, logger)
	if err != nil {
		return err
	}

	info := version.GetVersionInfo()
	srv := lsp.NewServer(&lsp.Options{
		Format:  cfg.Options(),
		Version: info.GitVersion,
		Logger:  logger,
	})
	if err := srv.Serve(c.Context, c.App.Reader, writeCloser(c.App.Writer)); err != nil {
		return fmt.Errorf("%w: %w", ErrStfmt, err)
	}
	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

// writeCloser returns w as an io.WriteCloser. Writers without a Close method
// are never closed.
func writeCloser(w io.Writer) io.WriteCloser {
	if wc, ok := w.(io.WriteCloser); ok {
		return wc
	}
	return nopWriteCloser{w}
}
