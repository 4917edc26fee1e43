package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"todos/internal/codec"
	"todos/internal/config"
	"todos/internal/exitcode"
	"todos/internal/input"
	"todos/internal/service"
)

func init() {
	Register(&ExportCmd{})
	Register(&ImportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	outputPath string
}

// SetOutput sets the output path (for testing).
func (c *ExportCmd) SetOutput(path string) {
	c.outputPath = path
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Print the stored task collection as JSON" }
func (c *ExportCmd) Usage() string     { return "todos export [--output <file>]" }
func (c *ExportCmd) NeedsStore() bool  { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.outputPath, "output", "", "")
	fs.StringVar(&c.outputPath, "o", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in input.Reader, out, errOut io.Writer) int {
	data, err := codec.EncodeTasks(svc.Tasks())
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	}
	data = codec.Pretty(data)

	if c.outputPath == "" {
		out.Write(data)
		return exitcode.Success
	}

	if err := os.WriteFile(c.outputPath, data, 0600); err != nil {
		fmt.Fprintf(errOut, "error: write %s: %v\n", c.outputPath, err)
		return exitcode.UserError
	}
	return printOK(cfg, out)
}

// ImportCmd implements the import command. The file replaces the stored
// collection.
type ImportCmd struct{}

func (c *ImportCmd) Name() string      { return "import" }
func (c *ImportCmd) Aliases() []string { return nil }
func (c *ImportCmd) Synopsis() string  { return "Replace all tasks with a JSON export" }
func (c *ImportCmd) Usage() string     { return "todos import <file>" }
func (c *ImportCmd) NeedsStore() bool  { return true }

func (c *ImportCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ImportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in input.Reader, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: file required")
		return exitcode.UserError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: read %s: %v\n", args[0], err)
		return exitcode.UserError
	}

	tasks, err := codec.DecodeTasks(data)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s: %v\n", args[0], err)
		return exitcode.UserError
	}

	if err := svc.Save(ctx, tasks); err != nil {
		return reportError(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "imported %d tasks\n", tasks.Len())
	}
	return exitcode.Success
}
