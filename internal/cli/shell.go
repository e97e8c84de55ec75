package cli

import (
	"errors"
	"io"

	"github.com/chzyer/readline"
)

var completer = readline.NewPrefixCompleter(
	readline.PcItem("insert"),
	readline.PcItem("remove"),
	readline.PcItem("find"),
	readline.PcItem("clear"),
	readline.PcItem("dump"),
	readline.PcItem("check"),
	readline.PcItem("stats"),
	readline.PcItem("len"),
	readline.PcItem("load"),
	readline.PcItem("seed"),
	readline.PcItem("help"),
	readline.PcItem("exit"),
)

// Run reads commands from the terminal until exit, EOF or an interrupt on
// an empty line. Command errors are printed and the loop goes on.
func (s *Session) Run(historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "bptree> ",
		HistoryFile:     historyFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	// Command output goes through readline so it does not clobber the prompt.
	s.mu.Lock()
	s.out = rl.Stdout()
	s.mu.Unlock()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := s.Exec(line); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
			s.PrintError(err)
		}
	}
}
