package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todos/internal/config"
	"todos/internal/exitcode"
	"todos/internal/input"
	"todos/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	mode string
}

// SetMode sets the mode flag (for testing).
func (c *AddCmd) SetMode(mode string) {
	c.mode = mode
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a task to the current mode" }
func (c *AddCmd) Usage() string     { return "todos add [--mode work|travel] <text...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.mode, "mode", "", "")
	fs.StringVar(&c.mode, "m", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in input.Reader, out, errOut io.Writer) int {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(errOut, "error: text required")
		return exitcode.UserError
	}

	mode := svc.Mode()
	if c.mode != "" {
		m, err := service.ParseMode(c.mode)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		mode = m
	}

	if _, err := svc.Add(ctx, text, mode); err != nil {
		return reportError(errOut, err)
	}
	return printOK(cfg, out)
}
