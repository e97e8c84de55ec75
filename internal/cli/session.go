// Package cli implements the interactive shell of the bptree binary: a
// Session owns one integer tree and executes text commands against it.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/go-faker/faker/v4"
	"go.uber.org/zap"

	"github.com/alexhholmes/bptree"
)

// ErrExit is returned by Exec for the exit and quit commands.
var ErrExit = errors.New("exit requested")

// Session serializes every command and every metrics read on one tree.
type Session struct {
	mu   sync.Mutex
	tree *bptree.Tree[int]
	out  io.Writer
	log  *zap.Logger

	index *color.Color
	leaf  *color.Color
	fail  *color.Color
}

// NewSession creates a session printing to out. A nil log discards.
func NewSession(tree *bptree.Tree[int], out io.Writer, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		tree:  tree,
		out:   out,
		log:   log,
		index: color.New(color.FgCyan),
		leaf:  color.New(color.FgGreen),
		fail:  color.New(color.FgRed),
	}
}

// DisableColor turns off escape codes for this session's output.
func (s *Session) DisableColor() {
	s.index.DisableColor()
	s.leaf.DisableColor()
	s.fail.DisableColor()
}

// Stats, Len and Height make a Session usable as a metrics.Source.

func (s *Session) Stats() bptree.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Stats()
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Len()
}

func (s *Session) Height() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Height()
}

// Exec runs one command line. Blank lines are ignored. Command names are
// case-insensitive.
func (s *Session) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("exec", zap.String("command", cmd), zap.Strings("args", args))

	switch cmd {
	case "insert", "i":
		keys, err := parseKeys(args)
		if err != nil {
			return err
		}
		for _, key := range keys {
			s.tree.Insert(key)
		}
		fmt.Fprintf(s.out, "inserted %d\n", len(keys))
	case "remove", "delete", "d":
		keys, err := parseKeys(args)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if s.tree.Remove(key) {
				fmt.Fprintf(s.out, "removed %d\n", key)
			} else {
				fmt.Fprintf(s.out, "%d not found\n", key)
			}
		}
	case "find", "f":
		keys, err := parseKeys(args)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if s.tree.Find(key) {
				fmt.Fprintf(s.out, "%d: found\n", key)
			} else {
				fmt.Fprintf(s.out, "%d: not found\n", key)
			}
		}
	case "clear":
		s.tree.Clear()
		fmt.Fprintln(s.out, "cleared")
	case "dump", "p":
		s.dump()
	case "check":
		if err := s.tree.Verify(); err != nil {
			return fmt.Errorf("tree is corrupt: %w", err)
		}
		fmt.Fprintln(s.out, "ok")
	case "stats":
		s.printStats()
	case "len":
		fmt.Fprintln(s.out, s.tree.Len())
	case "load":
		if len(args) != 1 {
			return errors.New("usage: load <path>")
		}
		n, err := s.loadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "loaded %d keys from %s\n", n, args[0])
	case "seed":
		if len(args) != 1 {
			return errors.New("usage: seed <count>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid count %q", args[0])
		}
		if err := s.seed(n); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "seeded %d keys\n", n)
	case "help", "?":
		fmt.Fprint(s.out, helpText)
	case "exit", "quit", "q":
		return ErrExit
	default:
		return fmt.Errorf("unknown command %q, try help", fields[0])
	}
	return nil
}

// PrintError writes err in the session's error color.
func (s *Session) PrintError(err error) {
	s.fail.Fprintf(s.out, "error: %v\n", err)
}

// Dump prints the tree with index levels and the leaf chain colored apart.
func (s *Session) Dump() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dump()
}

func (s *Session) dump() {
	if s.tree.Len() == 0 {
		fmt.Fprintln(s.out, "(empty)")
		return
	}
	lines := strings.Split(s.tree.String(), "\n")
	for _, line := range lines[:len(lines)-1] {
		s.index.Fprintln(s.out, line)
	}
	s.leaf.Fprintln(s.out, lines[len(lines)-1])
}

func (s *Session) printStats() {
	st := s.tree.Stats()
	rows := []struct {
		name  string
		value uint64
	}{
		{"inserts", st.Inserts},
		{"removes", st.Removes},
		{"leaf splits", st.LeafSplits},
		{"index splits", st.IndexSplits},
		{"root grows", st.RootGrows},
		{"leaf borrows", st.LeafBorrows},
		{"index borrows", st.IndexBorrows},
		{"leaf merges", st.LeafMerges},
		{"index merges", st.IndexMerges},
		{"root collapses", st.RootCollapses},
	}
	for _, row := range rows {
		fmt.Fprintf(s.out, "%-15s %d\n", row.name, row.value)
	}
	fmt.Fprintf(s.out, "%-15s %d\n", "keys", s.tree.Len())
	fmt.Fprintf(s.out, "%-15s %d\n", "height", s.tree.Height())
}

// Load inserts the keys read from r, one integer per line. Blank lines are
// skipped. Nothing is inserted when any line is malformed.
func (s *Session) Load(r io.Reader) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(r)
}

// LoadFile is Load on the file at path.
func (s *Session) LoadFile(path string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadFile(path)
}

func (s *Session) loadFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open key file: %w", err)
	}
	defer f.Close()

	n, err := s.load(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

func (s *Session) load(r io.Reader) (int, error) {
	keys, err := ReadKeys(r)
	if err != nil {
		return 0, err
	}
	for _, key := range keys {
		s.tree.Insert(key)
	}
	s.log.Info("loaded keys", zap.Int("count", len(keys)), zap.Int("height", s.tree.Height()))
	return len(keys), nil
}

// ReadKeys parses one integer per line from r, skipping blank lines.
func ReadKeys(r io.Reader) ([]int, error) {
	var keys []int
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		key, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid key %q", lineNo, text)
		}
		keys = append(keys, key)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read keys: %w", err)
	}
	return keys, nil
}

// Seed inserts n distinct random keys drawn from [0, 10n).
func (s *Session) Seed(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed(n)
}

func (s *Session) seed(n int) error {
	if n <= 0 {
		return fmt.Errorf("seed count must be positive, got %d", n)
	}
	keys, err := faker.RandomInt(0, 10*n-1, n)
	if err != nil {
		return fmt.Errorf("failed to generate keys: %w", err)
	}
	for _, key := range keys {
		s.tree.Insert(key)
	}
	s.log.Info("seeded keys", zap.Int("count", len(keys)))
	return nil
}

func parseKeys(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, errors.New("expected at least one key")
	}
	keys := make([]int, len(args))
	for i, arg := range args {
		key, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid key %q", arg)
		}
		keys[i] = key
	}
	return keys, nil
}

const helpText = `commands:
  insert k...   insert keys (duplicates allowed)
  remove k...   remove one copy of each key
  find k...     report whether each key is stored
  clear         remove every key
  dump          print the tree level by level
  check         verify the tree structure
  stats         print operation counters
  len           print the number of stored keys
  load path     insert the keys of a file, one per line
  seed n        insert n random keys
  help          show this help
  exit, quit    leave the shell
`
