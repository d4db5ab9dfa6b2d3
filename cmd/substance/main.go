// Package main is the entry point for the substance document tool. It
// loads a document fixture, optionally applies a Lua edit script, and
// prints the resulting outline or fixture JSON.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/archivist/substance/internal/config"
	"github.com/archivist/substance/internal/document"
	"github.com/archivist/substance/internal/document/schema"
	"github.com/archivist/substance/internal/document/selection"
	"github.com/archivist/substance/internal/fixture"
	"github.com/archivist/substance/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath string
	DocPath    string
	ScriptPath string
	LogLevel   string
	Dump       bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid config: %v\n", err)
		return 1
	}
	logger := newLogger(cfg.Log)

	s := schema.New("article", "1.0", "paragraph")
	if err := s.AddNodes(schema.Builtins()...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to build schema: %v\n", err)
		return 1
	}
	d, err := document.New(s,
		document.WithContainerID(cfg.Document.ContainerID),
		document.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create document: %v\n", err)
		return 1
	}

	if opts.DocPath != "" {
		data, err := os.ReadFile(opts.DocPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read document: %v\n", err)
			return 1
		}
		if err := fixture.Load(data, d); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load document: %v\n", err)
			return 1
		}
		if err := d.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid document: %v\n", err)
			return 1
		}
	}

	if opts.ScriptPath != "" {
		code, err := os.ReadFile(opts.ScriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read script: %v\n", err)
			return 1
		}
		eng, err := script.New(d,
			script.WithTimeout(cfg.Script.Timeout()),
			script.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create script engine: %v\n", err)
			return 1
		}
		defer eng.Close()
		change, err := eng.Run(string(code))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: script failed: %v\n", err)
			return 1
		}
		logger.Info().
			Str("script", opts.ScriptPath).
			Uint64("seq", change.Seq).
			Int("ops", len(change.Ops)).
			Msg("script applied")
	}

	if opts.Dump {
		out, err := fixture.Dump(d)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to dump document: %v\n", err)
			return 1
		}
		fmt.Printf("%s\n", out)
		return 0
	}

	printOutline(os.Stdout, d)
	return 0
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := cfg.ParseLevel()
	if err != nil {
		level = zerolog.InfoLevel
	}
	var w io.Writer = os.Stderr
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// printOutline lists the container's nodes in order with their text and
// anchored annotations, then the selection.
func printOutline(w io.Writer, d *document.Document) {
	fmt.Fprintf(w, "%s (%d nodes, seq %d)\n", d.ContainerID(), d.NodeCount(), d.Seq())
	c, err := d.Container(d.ContainerID())
	if err != nil {
		return
	}
	for _, id := range c.NodeIDs() {
		n := d.Node(id)
		if n == nil {
			fmt.Fprintf(w, "  %s (missing)\n", id)
			continue
		}
		prop, ok := d.Schema().TextProperty(n.Type())
		if !ok {
			fmt.Fprintf(w, "  %s %s\n", n.ID(), n.Type())
			continue
		}
		p := document.Path{n.ID(), prop}
		fmt.Fprintf(w, "  %s %s %q\n", n.ID(), n.Type(), d.Text(p))

		anns := d.Annotations(p)
		sort.Slice(anns, func(i, j int) bool { return anns[i].ID() < anns[j].ID() })
		for _, a := range anns {
			switch {
			case !a.IsContainerScoped():
				fmt.Fprintf(w, "    %s %s [%d,%d)\n", a.ID(), a.Type(), a.Start(), a.End())
			case a.StartPath().Equal(p):
				// Spanning annotations print once, under their start node.
				fmt.Fprintf(w, "    %s %s [%s:%d, %s:%d)\n",
					a.ID(), a.Type(), a.StartPath(), a.Start(), a.EndPath(), a.End())
			}
		}
	}
	switch s := d.Selection().(type) {
	case selection.Property:
		fmt.Fprintf(w, "selection %s [%d,%d)\n", s.Path, s.StartOffset, s.EndOffset)
	case selection.Container:
		fmt.Fprintf(w, "selection %s:%d .. %s:%d\n",
			s.StartPath, s.StartOffset, s.EndPath, s.EndOffset)
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.DocPath, "doc", "", "Path to a document fixture (JSON)")
	flag.StringVar(&opts.ScriptPath, "script", "", "Path to a Lua edit script")
	flag.StringVar(&opts.ScriptPath, "s", "", "Path to a Lua edit script (shorthand)")
	flag.BoolVar(&opts.Dump, "dump", false, "Print the document as fixture JSON instead of an outline")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level override (trace, debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Substance - structured document editing\n\n")
		fmt.Fprintf(os.Stderr, "Usage: substance [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  substance -doc article.json                   Print the document outline\n")
		fmt.Fprintf(os.Stderr, "  substance -doc article.json -s edit.lua       Apply an edit script\n")
		fmt.Fprintf(os.Stderr, "  substance -doc article.json -s edit.lua -dump Print the edited fixture JSON\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Substance %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}
