// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package stringscmd is strings subcommand to print the string pool.
package stringscmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/axml/apk"
	"go.chromium.org/infra/build/axml/axml"
)

const usage = `print string pool of binary xml

 $ axml strings [-resources] <file>

Prints "<index>: <string>" for each string.
With -resources, also prints the resource id of each name in the
resource map.
`

// Cmd returns the Command for the `strings` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "strings <file>",
		ShortDesc: "print string pool of binary xml",
		LongDesc:  usage,
		Advanced:  true,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	resources bool
	quote     bool
}

func (c *run) init() {
	c.Flags.BoolVar(&c.resources, "resources", false, "print resource ids")
	c.Flags.BoolVar(&c.quote, "quote", false, "print strings as quoted go strings")
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
	if len(args) != 1 {
		return fmt.Errorf("need one input file: %w", flag.ErrHelp)
	}
	buf, err := apk.ReadManifest(ctx, args[0])
	if err != nil {
		return err
	}
	p, err := axml.NewParser(buf)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	// string pool and resource map precede node chunks,
	// so they are read by the time the first event is returned.
	_, err = p.Next()
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	pool := p.StringPool()
	resIDs := p.ResourceIDs()
	for i := 0; i < pool.Len(); i++ {
		s := pool.String(uint32(i))
		if c.quote {
			s = strconv.Quote(s)
		}
		if c.resources && i < len(resIDs) {
			name := ""
			if n, ok := axml.AttrName(resIDs[i]); ok {
				name = " android:" + n
			}
			_, err = fmt.Fprintf(w, "%d: %s [0x%08x%s]\n", i, s, resIDs[i], name)
		} else {
			_, err = fmt.Fprintf(w, "%d: %s\n", i, s)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
