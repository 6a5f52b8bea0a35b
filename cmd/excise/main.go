// Package main is the entry point for the excise demo editor, a
// minimal terminal host for the deletion engine. It opens an HTML
// fragment, draws its visible text, and maps editing keys onto delete
// commands.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/net/html"

	"github.com/dshills/excise/internal/config"
	"github.com/dshills/excise/internal/dom"
	"github.com/dshills/excise/internal/engine"
	"github.com/dshills/excise/internal/policy"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	data, err := os.ReadFile(opts.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read file: %v\n", err)
		return 1
	}
	root, err := dom.ParseBody(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to parse file: %v\n", err)
		return 1
	}

	cfg := config.Default()
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	ed, err := newEditor(root, cfg, opts.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer ed.close()

	// Live-reload the policy configuration while the editor runs.
	if opts.ConfigPath != "" {
		watcher, err := config.Watch(opts.ConfigPath,
			func(cfg config.Config) { ed.reconfigure(cfg) },
			func(err error) { ed.setStatus(err.Error()) },
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer watcher.Close()
	}

	if err := ed.loop(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// options holds the parsed command line.
type options struct {
	ConfigPath string
	File       string
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to policy configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to policy configuration file (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Excise - range deletion demo editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: excise [options] file.html\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Backspace/Delete   delete character\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-W / Alt-D     delete word backward/forward\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-U / Ctrl-K    delete to line start/end\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-S             save\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-Q             quit\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Excise %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	opts.File = flag.Arg(0)
	return opts
}

// buildEngine assembles an engine for root from the given
// configuration. The returned script, when non-nil, must be closed
// when the engine is discarded.
func buildEngine(root *html.Node, cfg config.Config, rec engine.Recorder) (*engine.Engine, *policy.Script, error) {
	cl := cfg.Classifier()
	reg, script, err := cfg.Policy(cl)
	if err != nil {
		return nil, nil, err
	}
	eng := engine.New(root,
		engine.WithClassifier(cl),
		engine.WithPolicy(reg),
		engine.WithRecorder(rec),
	)
	return eng, script, nil
}
