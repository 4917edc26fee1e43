package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todos/internal/config"
	"todos/internal/exitcode"
	"todos/internal/input"
	"todos/internal/output"
	"todos/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	yes bool
}

// SetYes sets the yes flag (for testing).
func (c *RmCmd) SetYes(yes bool) {
	c.yes = yes
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "todos rm [--yes] <ref>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in input.Reader, out, errOut io.Writer) int {
	task, code := resolveArgs(svc, args, errOut)
	if code != exitcode.Success {
		return code
	}

	if !c.yes {
		prompt := fmt.Sprintf("Delete To Do %q? Are you sure? [y/N]: ", output.NormalizeText(task.Text))
		confirmed, err := input.Confirm(in, prompt)
		if err != nil {
			fmt.Fprintf(errOut, "error: read confirmation: %v\n", err)
			return exitcode.UserError
		}
		if !confirmed {
			if !cfg.Quiet {
				fmt.Fprintln(out, "cancelled")
			}
			return exitcode.Success
		}
	}

	if err := svc.Remove(ctx, task.ID); err != nil {
		return reportError(errOut, err)
	}
	return printOK(cfg, out)
}
