// seehuhn.de/go/gridfont - compile pixel-grid glyph sources into fonts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/term"

	"seehuhn.de/go/gridfont/config"
	"seehuhn.de/go/gridfont/pipeline"
	"seehuhn.de/go/gridfont/tools/internal/buildinfo"
	"seehuhn.de/go/gridfont/tools/internal/profile"
	"seehuhn.de/go/gridfont/validate"
)

var (
	verbose    = flag.Bool("v", false, "log progress to stderr")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile = flag.String("memprofile", "", "write memory profile to `file`")
)

// configFlags registers the options which override settings of the
// configuration file.
func configFlags(fs *flag.FlagSet) {
	fs.String("config", "", "read settings from the YAML `file`")
	fs.String("o", "", "write fonts into `dir`")
	fs.String("weights", "", "comma-separated `list` of weights to build")
	fs.Bool("woff2", false, "also write WOFF2 files")
	fs.Bool("proof", false, "check the generated fonts against the sources")
	fs.Bool("ligatures", false, "enable ligature support")
}

var errInvalidCorpus = errors.New("glyph corpus failed validation")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gridfont \u2014 compile pixel-grid glyphs into fonts\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("gridfont"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  gridfont [options] [dir...]\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  dir   glyph source directories, overriding the configuration\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  gridfont -config font.yaml\n")
		fmt.Fprintf(os.Stderr, "  gridfont -woff2 -o build glyphs\n")
	}
	configFlags(flag.CommandLine)
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() (err error) {
	stop, err := profile.Start(*cpuprofile, *memprofile)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, stop())
	}()

	cfg, err := loadConfig(flag.CommandLine)
	if err != nil {
		return err
	}

	if *verbose {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		pipeline.SetLogger(slog.New(h))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	res, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}

	p := newPrinter(os.Stderr)
	for _, w := range res.Warnings {
		p.Report("warning", w)
	}
	if res.Failed() {
		for _, e := range res.Errors {
			p.Report("error", e)
		}
		return errInvalidCorpus
	}

	files, err := res.WriteFiles(cfg.Output)
	if err != nil {
		return err
	}
	for _, fname := range files {
		fmt.Println(fname)
	}
	return nil
}

// loadConfig reads the configuration file, if any, and then applies the
// options set in fs.  Positional arguments replace the glyph directories.
func loadConfig(fs *flag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	if fname := fs.Lookup("config").Value.String(); fname != "" {
		var err error
		cfg, err = config.Load(fname)
		if err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		val := f.Value.String()
		switch f.Name {
		case "o":
			cfg.Output = val
		case "weights":
			cfg.Weights = strings.Split(val, ",")
		case "woff2":
			cfg.WOFF2 = val == "true"
		case "proof":
			cfg.Proof = val == "true"
		case "ligatures":
			cfg.Ligatures = val == "true"
		}
	})
	if fs.NArg() > 0 {
		cfg.Dirs = fs.Args()
	}
	return cfg, nil
}

// printer writes diagnostics.  On a terminal, the severity is highlighted.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(f *os.File) *printer {
	return &printer{
		w:     f,
		color: term.IsTerminal(int(f.Fd())),
	}
}

func (p *printer) Report(severity string, e validate.Error) {
	label := severity + ":"
	if p.color {
		code := "33" // yellow
		if severity == "error" {
			code = "31" // red
		}
		label = "\x1b[1;" + code + "m" + label + "\x1b[0m"
	}
	fmt.Fprintln(p.w, label, e.Error())
}
