// fdskit is an interactive shell for inspecting FDS case files.
//
// It loads a case document, lets the user browse and search its
// namelist records, and writes the canonical rendering back out.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sahilm/fuzzy"

	"github.com/openfds/fdskit/pkg/canon"
	"github.com/openfds/fdskit/pkg/casefile"
	"github.com/openfds/fdskit/pkg/namelist"
)

func main() {
	configFile := flag.String("config", "", "formatting options YAML file")
	flag.Parse()

	s := &session{opts: &canon.Options{}}
	if *configFile != "" {
		opts, err := canon.LoadOptions(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fdskit: %v\n", err)
			os.Exit(1)
		}
		s.opts = opts
	}

	if flag.NArg() > 0 {
		if err := s.load(flag.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "fdskit: %v\n", err)
			os.Exit(1)
		}
	}

	completer := readline.NewPrefixCompleter(
		readline.PcItem("load"),
		readline.PcItem("list"),
		readline.PcItem("show", readline.PcItemDynamic(s.recordNames)),
		readline.PcItem("find"),
		readline.PcItem("fmt"),
		readline.PcItem("write"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "fdskit> ",
		HistoryFile:     "/tmp/fdskit_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		AutoComplete:    completer,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "fdskit: readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Println("fdskit interactive shell. Type 'help' for commands.")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := s.dispatch(line); err != nil {
			if err == errQuit {
				break
			}
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

var errQuit = fmt.Errorf("quit")

type session struct {
	path string
	nls  []*namelist.Namelist
	opts *canon.Options
}

func (s *session) load(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := casefile.Split(string(src))
	if err != nil {
		return err
	}
	nls, err := doc.Decode(s.opts.Strict)
	if err != nil {
		return err
	}
	s.path = path
	s.nls = nls
	fmt.Printf("loaded %s: %d records\n", path, len(nls))
	return nil
}

func (s *session) dispatch(line string) error {
	parts := strings.Fields(line)
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "load":
		if len(args) != 1 {
			return fmt.Errorf("usage: load <file>")
		}
		return s.load(args[0])

	case "list":
		return s.list()

	case "show":
		if len(args) != 1 {
			return fmt.Errorf("usage: show <index|id>")
		}
		return s.show(args[0])

	case "find":
		if len(args) == 0 {
			return fmt.Errorf("usage: find <query>")
		}
		return s.find(strings.Join(args, " "))

	case "fmt":
		return s.render(os.Stdout)

	case "write":
		path := s.path
		if len(args) >= 1 {
			path = args[0]
		}
		return s.write(path)

	case "help", "?":
		printHelp()
		return nil

	case "quit", "exit":
		return errQuit

	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func (s *session) list() error {
	if len(s.nls) == 0 {
		fmt.Println("no case loaded")
		return nil
	}
	fmt.Printf("%-5s %-8s %-24s %s\n", "#", "GROUP", "ID", "PARAMS")
	for i, nl := range s.nls {
		fmt.Printf("%-5d %-8s %-24s %d\n", i, nl.Label, recordID(nl), len(nl.Params()))
	}
	return nil
}

func (s *session) show(key string) error {
	nl, err := s.lookup(key)
	if err != nil {
		return err
	}
	text, err := nl.Format()
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

// find fuzzy-matches the query against "GROUP ID" strings and prints
// the records ranked by match quality.
func (s *session) find(query string) error {
	if len(s.nls) == 0 {
		fmt.Println("no case loaded")
		return nil
	}
	targets := make([]string, len(s.nls))
	for i, nl := range s.nls {
		targets[i] = strings.TrimSpace(nl.Label + " " + recordID(nl))
	}
	matches := fuzzy.Find(query, targets)
	if len(matches) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for _, m := range matches {
		fmt.Printf("%-5d %s\n", m.Index, targets[m.Index])
	}
	return nil
}

func (s *session) render(w io.Writer) error {
	if len(s.nls) == 0 {
		return fmt.Errorf("no case loaded")
	}
	text, err := casefile.Render(s.nls)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

func (s *session) write(path string) error {
	if path == "" {
		return fmt.Errorf("no output file (usage: write [file])")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

// lookup resolves a record by list index or by its ID parameter.
func (s *session) lookup(key string) (*namelist.Namelist, error) {
	if n, err := strconv.Atoi(key); err == nil {
		if n < 0 || n >= len(s.nls) {
			return nil, fmt.Errorf("index %d out of range (0..%d)", n, len(s.nls)-1)
		}
		return s.nls[n], nil
	}
	for _, nl := range s.nls {
		if recordID(nl) == key {
			return nl, nil
		}
	}
	return nil, fmt.Errorf("no record with ID %q", key)
}

// recordNames feeds tab completion for the show command.
func (s *session) recordNames(string) []string {
	var names []string
	for _, nl := range s.nls {
		if id := recordID(nl); id != "" {
			names = append(names, id)
		}
	}
	return names
}

func recordID(nl *namelist.Namelist) string {
	p := nl.Get("ID")
	if p == nil || len(p.Values) == 0 {
		return ""
	}
	return p.Values[0].Str()
}

func printHelp() {
	fmt.Println("commands:")
	fmt.Println("  load <file>       load a case file")
	fmt.Println("  list              list loaded records")
	fmt.Println("  show <index|id>   print one record in canonical form")
	fmt.Println("  find <query>      fuzzy-search records by group and ID")
	fmt.Println("  fmt               print the whole case in canonical form")
	fmt.Println("  write [file]      save the canonical case")
	fmt.Println("  quit              exit")
}
