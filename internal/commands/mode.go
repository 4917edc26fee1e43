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
	"todos/internal/output"
	"todos/internal/service"
)

func init() {
	Register(&ModeCmd{})
	Register(&SwitchCmd{mode: service.Work})
	Register(&SwitchCmd{mode: service.Travel})
}

// ModeCmd implements the mode command.
type ModeCmd struct{}

func (c *ModeCmd) Name() string      { return "mode" }
func (c *ModeCmd) Aliases() []string { return nil }
func (c *ModeCmd) Synopsis() string  { return "Print or set the current mode" }
func (c *ModeCmd) Usage() string     { return "todos mode [work|travel]" }
func (c *ModeCmd) NeedsStore() bool  { return true }

func (c *ModeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ModeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in input.Reader, out, errOut io.Writer) int {
	if len(args) == 0 {
		output.NewPrinter(out).Mode(svc.Mode())
		return exitcode.Success
	}

	mode, err := service.ParseMode(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return setMode(ctx, cfg, svc, mode, out, errOut)
}

// SwitchCmd implements the work and travel commands.
type SwitchCmd struct {
	mode service.Mode
}

func (c *SwitchCmd) Name() string      { return strings.ToLower(c.mode.String()) }
func (c *SwitchCmd) Aliases() []string { return nil }
func (c *SwitchCmd) Synopsis() string  { return "Switch to " + c.mode.String() + " mode" }
func (c *SwitchCmd) Usage() string     { return "todos " + strings.ToLower(c.mode.String()) }
func (c *SwitchCmd) NeedsStore() bool  { return true }

func (c *SwitchCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SwitchCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in input.Reader, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	return setMode(ctx, cfg, svc, c.mode, out, errOut)
}

func setMode(ctx context.Context, cfg *config.Config, svc service.Service, mode service.Mode, out, errOut io.Writer) int {
	if err := svc.SetMode(ctx, mode); err != nil {
		return reportError(errOut, err)
	}
	return printOK(cfg, out)
}
