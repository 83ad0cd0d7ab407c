// fdsfmt formats FDS case files.
//
// It parses each input document, normalizes every namelist record and
// rewrites it in the canonical 80-column wrapped form. With no
// arguments it filters stdin to stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/openfds/fdskit/pkg/canon"
)

func main() {
	write := flag.Bool("w", false, "write result back to the source file instead of stdout")
	list := flag.Bool("l", false, "list files whose formatting differs from the canonical form")
	strict := flag.Bool("strict", false, "reject malformed parameter text instead of skipping it")
	configFile := flag.String("config", "", "formatting options YAML file")
	flag.Parse()

	opts := &canon.Options{Strict: *strict}
	if *configFile != "" {
		loaded, err := canon.LoadOptions(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fdsfmt: %v\n", err)
			os.Exit(1)
		}
		opts = loaded
		if *strict {
			opts.Strict = true
		}
	}

	if flag.NArg() == 0 {
		if *write || *list {
			fmt.Fprintln(os.Stderr, "fdsfmt: -w and -l require file arguments")
			os.Exit(1)
		}
		if err := formatStdin(opts); err != nil {
			fmt.Fprintf(os.Stderr, "fdsfmt: %v\n", err)
			os.Exit(1)
		}
		return
	}

	exitCode := 0
	for _, path := range flag.Args() {
		if err := formatFile(path, opts, *write, *list); err != nil {
			fmt.Fprintf(os.Stderr, "fdsfmt: %s: %v\n", path, err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func formatStdin(opts *canon.Options) error {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	res, err := canon.Canonicalize(string(src), opts)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "fdsfmt: warning: %s\n", w)
	}
	_, err = os.Stdout.WriteString(res.Text)
	return err
}

func formatFile(path string, opts *canon.Options, write, list bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	res, err := canon.Canonicalize(string(src), opts)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "fdsfmt: %s: warning: %s\n", path, w)
	}

	switch {
	case list:
		if res.Text != string(src) {
			fmt.Println(path)
		}
	case write:
		if res.Text == string(src) {
			return nil
		}
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		return os.WriteFile(path, []byte(res.Text), info.Mode().Perm())
	default:
		_, err = os.Stdout.WriteString(res.Text)
		return err
	}
	return nil
}
