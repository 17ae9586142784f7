package main

import (
	"fmt"
	"os"

	"github.com/funvibe/funcast/internal/binder"
	"github.com/mattn/go-isatty"
)

const usage = `funcast - variant binding generator

Reads funcast.yaml and generates the conversion edges and variant accessors
for the declared tagged-union containers.

Usage:
  funcast [options]

Options:
  -config <path>   config file (default: nearest funcast.yaml, searching upward)
  -n               dry run: print the generated source to stdout, write nothing
  -v               verbose progress output on stderr
  -help            show this help

The config file declares one binding per (container, variant, payload) triple:

  package: .
  output: funcast_gen.go
  bindings:
    - container: FooBar
      variant: Bar
      payload: Bar
`

func main() {
	var (
		configPath string
		dryRun     bool
		verbose    bool
	)

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "-help", "--help", "help":
			fmt.Print(usage)
			return
		case "-config", "--config":
			i++
			if i >= len(args) {
				fatalf("-config requires a path")
			}
			configPath = args[i]
		case "-n", "--dry-run":
			dryRun = true
		case "-v", "--verbose":
			verbose = true
		default:
			fatalf("unknown argument %q (use -help)", arg)
		}
	}

	if configPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			fatalf("resolving working directory: %v", err)
		}
		found, err := binder.FindConfig(wd)
		if err != nil {
			fatalf("%v", err)
		}
		if found == "" {
			fatalf("no funcast.yaml found in %s or any parent directory", wd)
		}
		configPath = found
	}

	var opts []binder.RunnerOption
	if dryRun {
		opts = append(opts, binder.WithDryRun())
	}
	if verbose {
		opts = append(opts, binder.WithLog(os.Stderr))
	}

	result, err := binder.NewRunner(configPath, opts...).Run()
	if err != nil {
		fatalf("%v", err)
	}

	if dryRun {
		fmt.Print(result.Content)
		return
	}
	if result.Wrote {
		fmt.Printf("Generated %s\n", result.Path)
	} else {
		fmt.Printf("%s is up to date\n", result.Path)
	}
}

func fatalf(format string, args ...any) {
	prefix := "error:"
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		prefix = "\x1b[31merror:\x1b[0m"
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", prefix, fmt.Sprintf(format, args...))
	os.Exit(1)
}
