// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package query is query subcommand to evaluate Starlark expressions
// against AndroidManifest.xml.
package query

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/axml/apk"
	"go.chromium.org/infra/build/axml/manifest"
	"go.chromium.org/infra/build/axml/starquery"
)

const usage = `query AndroidManifest.xml with Starlark expression

 $ axml query -e <expr> <file>

<expr> is evaluated with "manifest" struct. e.g.

 manifest.package
 manifest.has_permission("android.permission.INTERNET")
 [a.name for a in manifest.application.activities if a.exported]
`

// Cmd returns the Command for the `query` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "query -e <expr> <file>",
		ShortDesc: "query AndroidManifest.xml with Starlark",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	expr string
}

func (c *run) init() {
	c.Flags.StringVar(&c.expr, "e", "", "Starlark expression to evaluate")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, a.GetOut(), args)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usage)
			return 2
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context, w io.Writer, args []string) error {
	if c.expr == "" {
		return fmt.Errorf("missing -e: %w", flag.ErrHelp)
	}
	if len(args) != 1 {
		return fmt.Errorf("need one input file: %w", flag.ErrHelp)
	}
	buf, err := apk.ReadManifest(ctx, args[0])
	if err != nil {
		return err
	}
	m, err := manifest.Parse(buf)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	v, err := starquery.Eval(ctx, m, c.expr)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, starquery.Format(v))
	return err
}
