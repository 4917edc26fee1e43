package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"todos/internal/exitcode"
	"todos/internal/input"
)

const shellCommand = "shell"

// runShell reads command lines until exit, quit or end of input. All lines
// share one service, so the store is opened once. Returns the exit code of
// the last command.
func (d *Dispatcher) runShell(ctx context.Context, args []string, out, errOut io.Writer) int {
	var common commonFlags
	rest, code := parseFlags(shellCommand, args, errOut, common.register)
	if code != exitcode.Success {
		return code
	}
	if len(rest) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", rest[0])
		return exitcode.UserError
	}

	cfg, code := loadConfig(common, errOut)
	if code != exitcode.Success {
		return code
	}

	svc, closeSvc, code := d.openService(ctx, cfg, errOut)
	if code != exitcode.Success {
		return code
	}
	defer closeSvc()

	reader := d.input
	if reader == nil {
		r, err := input.Open(cfg.HistoryPath())
		if err != nil {
			fmt.Fprintf(errOut, "warning: line editing unavailable: %v\n", err)
		}
		defer r.Close()
		reader = r
	}

	last := exitcode.Success
	for {
		if ctx.Err() != nil {
			return last
		}

		prompt := fmt.Sprintf("todos (%s)> ", strings.ToLower(svc.Mode().String()))
		line, err := reader.ReadLine(prompt)
		if err != nil {
			switch {
			case errors.Is(err, input.ErrInterrupt):
				fmt.Fprintln(out)
				continue
			case errors.Is(err, io.EOF):
				return last
			default:
				fmt.Fprintf(errOut, "error: read input: %v\n", err)
				return exitcode.UserError
			}
		}

		words := input.SplitWords(line)
		if len(words) == 0 {
			continue
		}

		switch strings.ToLower(words[0]) {
		case "exit", "quit":
			return last
		case shellCommand:
			fmt.Fprintln(errOut, "error: already in shell")
			last = exitcode.UserError
			continue
		}

		cmd, ok := d.registry.Find(words[0])
		if !ok {
			fmt.Fprintf(errOut, "error: unknown command: %s\n", words[0])
			last = exitcode.UserError
			continue
		}

		cmdArgs, code := parseFlags(cmd.Name(), words[1:], errOut, cmd.RegisterFlags)
		if code != exitcode.Success {
			last = code
			continue
		}
		last = cmd.Run(ctx, cfg, svc, cmdArgs, reader, out, errOut)
	}
}
