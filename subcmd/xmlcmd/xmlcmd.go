// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package xmlcmd is xml subcommand to decode binary XML into text.
package xmlcmd

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
	"go.chromium.org/infra/build/axml/axml"
	"go.chromium.org/infra/build/axml/o11y/clog"
)

const usage = `decode binary xml into textual xml

 $ axml xml [-o <output>] [-indent <indent>] <file>

<file> is a binary xml file (e.g. AndroidManifest.xml) or an apk.
`

// Cmd returns the Command for the `xml` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "xml [-o <output>] <file>",
		ShortDesc: "decode binary xml into textual xml",
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

	output string
	indent string
}

func (c *run) init() {
	c.Flags.StringVar(&c.output, "o", "", "output filename. default is stdout")
	c.Flags.StringVar(&c.indent, "indent", "  ", "indent string")
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

func (c *run) run(ctx context.Context, stdout io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("need one input file: %w", flag.ErrHelp)
	}
	buf, err := apk.ReadManifest(ctx, args[0])
	if err != nil {
		return err
	}
	doc, err := axml.Parse(buf)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	if c.output == "" {
		return doc.WriteXML(stdout, c.indent)
	}
	f, err := os.Create(c.output)
	if err != nil {
		return err
	}
	err = doc.WriteXML(f, c.indent)
	cerr := f.Close()
	if err != nil {
		return err
	}
	if cerr != nil {
		return cerr
	}
	clog.Infof(ctx, "wrote %s", c.output)
	return nil
}
