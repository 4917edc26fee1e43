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
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todos` (no args) and `todos list [--all]`.
type ListCmd struct {
	all bool
}

// SetAll sets the all flag (for testing).
func (c *ListCmd) SetAll(all bool) {
	c.all = all
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "todos list [--all]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.all, "all", false, "")
	fs.BoolVar(&c.all, "a", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in input.Reader, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	p := output.NewPrinter(out)
	if c.all {
		return c.listAll(cfg, svc, p, out)
	}

	// Current mode only (no header)
	tasks := svc.Visible()
	for i, task := range tasks {
		p.Task(i+1, task)
	}
	if len(tasks) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}

// listAll prints a section per mode, skipping empty ones.
func (c *ListCmd) listAll(cfg *config.Config, svc service.Service, p *output.Printer, out io.Writer) int {
	all := svc.Tasks()
	current := svc.Mode()
	hasAnyTasks := false

	for _, mode := range []service.Mode{service.Work, service.Travel} {
		tasks := all.Filter(mode)
		if len(tasks) == 0 {
			continue
		}

		p.SectionHeader(mode, mode == current)
		for i, task := range tasks {
			p.TaskWithLetter(mode.Letter(), i+1, task)
		}
		hasAnyTasks = true
	}

	if !hasAnyTasks && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
