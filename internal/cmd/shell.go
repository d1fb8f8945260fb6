package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rickchristie/hookmux"
	"github.com/spf13/cobra"
)

const shellHelp = `Commands:
  on <namespace> <event> [priority=N] [name=NAME] [set k=v]... [return V] [halt] [fail MSG]
                             register a handler
  fire <namespace> <event> [k=v]...
                             trigger and show the result and bag changes
  exists <namespace> <event> check for an exact registration
  list                       show every binding in registry order
  stats                      show dispatcher counters
  metrics                    show counters in Prometheus text format
  help                       show this help
  quit                       leave the shell
`

// Shell interprets shell commands against a dispatcher.
type Shell struct {
	d   *hookmux.Dispatcher
	out io.Writer
	n   int
}

// NewShell creates a shell writing to out.
func NewShell(d *hookmux.Dispatcher, out io.Writer) *Shell {
	return &Shell{d: d, out: out}
}

// Exec runs one command line. It reports whether the shell should exit.
func (s *Shell) Exec(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	args := fields[1:]
	switch fields[0] {
	case "on":
		return false, s.on(args)
	case "fire":
		if len(args) < 2 {
			return false, errors.New("usage: fire <namespace> <event> [k=v]...")
		}
		params, err := parseAssignments(args[2:])
		if err != nil {
			return false, err
		}
		fire(s.out, s.d, args[0], args[1], params)
		return false, nil
	case "exists":
		if len(args) != 2 {
			return false, errors.New("usage: exists <namespace> <event>")
		}
		fmt.Fprintln(s.out, s.d.Exists(args[0], args[1]))
		return false, nil
	case "list":
		printBindings(s.out, s.d.Bindings())
		return false, nil
	case "stats":
		printStats(s.out, s.d.Stats())
		return false, nil
	case "metrics":
		return false, printMetrics(s.out, s.d.Stats())
	case "help":
		fmt.Fprint(s.out, shellHelp)
		return false, nil
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q, try help", fields[0])
	}
}

// on parses "on <namespace> <event> [options]" and registers the handler.
func (s *Shell) on(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: on <namespace> <event> [options]")
	}

	s.n++
	name := fmt.Sprintf("h%d", s.n)
	var (
		action   Action
		opts     []hookmux.RegisterOption
		operands = args[2:]
	)

	next := func(i int, word string) (string, error) {
		if i+1 >= len(operands) {
			return "", fmt.Errorf("%s needs a value", word)
		}
		return operands[i+1], nil
	}

	for i := 0; i < len(operands); i++ {
		word := operands[i]
		switch {
		case word == "halt":
			action.Halt = true
		case word == "set":
			value, err := next(i, word)
			if err != nil {
				return err
			}
			key, v, err := parseAssignment(value)
			if err != nil {
				return err
			}
			if action.Set == nil {
				action.Set = make(map[string]any)
			}
			action.Set[key] = v
			i++
		case word == "return":
			value, err := next(i, word)
			if err != nil {
				return err
			}
			action.Return = parseValue(value)
			i++
		case word == "fail":
			value, err := next(i, word)
			if err != nil {
				return err
			}
			action.Fail = value
			i++
		case strings.HasPrefix(word, "priority="):
			priority, err := strconv.Atoi(strings.TrimPrefix(word, "priority="))
			if err != nil {
				return fmt.Errorf("invalid priority: %w", err)
			}
			opts = append(opts, hookmux.WithPriority(priority))
		case strings.HasPrefix(word, "name="):
			name = strings.TrimPrefix(word, "name=")
		default:
			return fmt.Errorf("unknown option %q", word)
		}
	}

	if err := s.d.Register(args[0], args[1], action.Handler(name, s.out), opts...); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "registered %s\n", name)
	return nil
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive dispatcher shell",
		Long: `Start an interactive shell with an empty dispatcher. Register scripted
handlers with "on", trigger them with "fire" and inspect the registry.
Type "help" for the command list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(a, cmd.OutOrStdout())
		},
	}
}

func runShell(a *app, out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          a.cfg.Shell.Prompt,
		HistoryFile:     a.cfg.Shell.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		Stdout:          out,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	shell := NewShell(a.newDispatcher(), rl.Stdout())
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		quit, err := shell.Exec(line)
		if err != nil {
			fmt.Fprintf(rl.Stderr(), "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}
