package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/logice/logice/config"
	"github.com/logice/logice/solver"

	"github.com/chzyer/readline"
	"go.uber.org/zap"
)

type inputState int

const (
	readingQuery inputState = iota
	enumerateSolutions
)

type repl struct {
	interrupt chan os.Signal
	solver    *solver.Solver
	readline  *readline.Instance
	logger    *zap.Logger
	prompt    string
}

func newREPL(s *solver.Solver, cfg *config.Config, logger *zap.Logger) (*repl, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 cfg.Prompt,
		HistoryFile:            cfg.HistoryFile,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return nil, err
	}
	r := &repl{
		interrupt: make(chan os.Signal, 1),
		solver:    s,
		readline:  rl,
		logger:    logger,
		prompt:    cfg.Prompt,
	}
	signal.Notify(r.interrupt, syscall.SIGINT)
	return r, nil
}

func (r *repl) close() {
	signal.Stop(r.interrupt)
	r.readline.Close()
}

func (r *repl) mainLoop(initial string) error {
	state := readingQuery
	var solutions <-chan solver.Result
	var cancel func()
	if initial != "" {
		solutions, cancel = r.solver.Query(trimQuery(initial))
		state = enumerateSolutions
	}
	for {
		switch state {
		default:
			return fmt.Errorf("invalid state: %v", state)
		case readingQuery:
			query, isClose := r.readQuery()
			if isClose {
				return nil
			}
			if r.runCommand(query) {
				continue
			}
			r.logger.Debug("Query", zap.String("goal", query))
			solutions, cancel = r.solver.Query(query)
			state = enumerateSolutions
		case enumerateSolutions:
			if isClose := r.solutionState(solutions, cancel); isClose {
				state = readingQuery
			}
		}
	}
}

// readQuery reads lines until parens are balanced.
func (r *repl) readQuery() (string, bool) {
	r.readline.SetPrompt(r.prompt)
	var lines []string
	for {
		line, err := r.readline.Readline()
		if err == readline.ErrInterrupt {
			lines = nil
			r.readline.SetPrompt(r.prompt)
			continue
		}
		if err != nil {
			return "", true
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		lines = append(lines, line)
		if !balanced(strings.Join(lines, "\n")) {
			r.readline.SetPrompt("|  ")
			continue
		}
		break
	}
	query := strings.Join(lines, " ")
	r.readline.SaveHistory(query)
	return trimQuery(query), false
}

// runCommand executes lines starting with a colon, returning whether the
// line was a command.
func (r *repl) runCommand(line string) bool {
	if !strings.HasPrefix(line, ":") {
		return false
	}
	fields := strings.Fields(line)
	switch fields[0] {
	case ":consult":
		if err := consultAll(context.Background(), r.logger, r.solver, fields[1:]); err != nil {
			fmt.Println(err)
		}
	case ":dump":
		if prog := r.solver.Program(); prog != nil {
			prog.Dump(os.Stdout)
		}
	default:
		fmt.Println("Unknown command; expecting :consult FILE... or :dump")
	}
	return true
}

func (r *repl) solutionState(solutions <-chan solver.Result, cancel func()) bool {
	select {
	case result, ok := <-solutions:
		if ok && result.Err != nil {
			fmt.Println(result.Err)
			cancel()
			return true
		}
		if isClose := printSolution(result.Solution, ok); isClose {
			cancel()
			return true
		}
		if isClose := r.readCommand(); isClose {
			cancel()
			return true
		}
		return false
	case <-r.interrupt:
		cancel()
		return true
	}
}

func printSolution(solution solver.Solution, ok bool) bool {
	if !ok {
		fmt.Println("false.")
		return true
	}
	fmt.Println(solution)
	return false
}

func (r *repl) readCommand() bool {
	r.readline.SetPrompt("")
	defer r.readline.SetPrompt(r.prompt)
	for {
		line, err := r.readline.Readline()
		if err != nil {
			return true
		}
		line = strings.TrimSpace(line)
		if line == ";" {
			return false
		}
		if line == "." || line == "" {
			return true
		}
		fmt.Println("Expecting '.' or ';'")
	}
}

// balanced returns whether every paren outside of literals is closed.
func balanced(text string) bool {
	depth := 0
	inLiteral, escaped := false, false
	for _, ch := range text {
		switch {
		case escaped:
			escaped = false
		case inLiteral && ch == '\\':
			escaped = true
		case ch == '"':
			inLiteral = !inLiteral
		case inLiteral:
		case ch == '(':
			depth++
		case ch == ')':
			depth--
		}
	}
	return depth <= 0 && !inLiteral
}

// trimQuery removes a final '.', for those used to Prolog.
func trimQuery(query string) string {
	query = strings.TrimSpace(query)
	return strings.TrimSpace(strings.TrimSuffix(query, "."))
}
