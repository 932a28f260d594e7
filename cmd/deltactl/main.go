// Command deltactl composes, transforms, or diffs Delta JSON documents
// read from files, printing the result to stdout. Adapted in spirit
// from the teacher's cmd/main.go and cmd/test_delete one-shot demo
// binaries, restructured as real subcommands over stdlib flag rather
// than hard-coded scenarios.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/deltaweave/deltaweave/pkg/delta"
	"github.com/deltaweave/deltaweave/pkg/deltadiff"
	"github.com/deltaweave/deltaweave/pkg/deltawire"
	"github.com/deltaweave/deltaweave/pkg/embedhandlers"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "compose":
		err = runCompose(os.Args[2:])
	case "transform":
		err = runTransform(os.Args[2:])
	case "diff":
		err = runDiff(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "deltactl: unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "deltactl: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: deltactl <compose|transform|diff> [flags] a.json b.json

  compose a.json b.json            compose a followed by b
  transform a.json b.json           rebase b against a
  transform -priority a.json b.json rebase b against a, a wins ties
  diff a.json b.json                diff from a to b`)
}

func runCompose(args []string) error {
	fs := flag.NewFlagSet("compose", flag.ExitOnError)
	fs.Parse(args)

	a, b, err := readPair(fs.Args())
	if err != nil {
		return err
	}

	result, err := delta.Compose(a, b, defaultLookup())
	if err != nil {
		return fmt.Errorf("compose: %w", err)
	}
	return printDelta(result)
}

func runTransform(args []string) error {
	fs := flag.NewFlagSet("transform", flag.ExitOnError)
	priority := fs.Bool("priority", false, "give a priority over b on concurrent inserts")
	fs.Parse(args)

	a, b, err := readPair(fs.Args())
	if err != nil {
		return err
	}

	result, err := delta.Transform(a, b, *priority, defaultLookup())
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	return printDelta(result)
}

func runDiff(args []string) error {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	fs.Parse(args)

	a, b, err := readPair(fs.Args())
	if err != nil {
		return err
	}

	result, err := deltadiff.Diff(a, b)
	if err != nil {
		return fmt.Errorf("diff: %w", err)
	}
	return printDelta(result)
}

func readPair(paths []string) (a, b []delta.Op, err error) {
	if len(paths) != 2 {
		return nil, nil, fmt.Errorf("expected exactly two Delta JSON file paths, got %d", len(paths))
	}
	a, err = readDelta(paths[0])
	if err != nil {
		return nil, nil, err
	}
	b, err = readDelta(paths[1])
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func readDelta(path string) ([]delta.Op, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	ops, err := deltawire.UnmarshalDelta(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return ops, nil
}

func printDelta(ops []delta.Op) error {
	out, err := deltawire.MarshalDelta(ops)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// defaultLookup resolves the built-in "delta" and "image" embed
// handlers, enough for command-line use without a custom registry.
func defaultLookup() delta.HandlerLookup {
	return embedhandlers.NewDefaultRegistry().Lookup()
}
