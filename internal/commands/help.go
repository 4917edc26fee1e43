package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todos/internal/config"
	"todos/internal/exitcode"
	"todos/internal/input"
	"todos/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todos help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in input.Reader, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todos                                          List tasks of the current mode
  todos list [common flags] [--all]              List tasks (--all: both modes)
  todos add [common flags] [--mode work|travel] <text...>
  todos create [common flags] [--mode work|travel] <text...>
  todos done [common flags] <ref>                Toggle completion
  todos edit [common flags] <ref> <text...>
  todos rm [common flags] [--yes] <ref>
  todos mode [common flags] [work|travel]
  todos work [common flags]
  todos travel [common flags]
  todos export [common flags] [--output <file>]
  todos import [common flags] <file>
  todos shell [common flags]
  todos ui [common flags]
  todos help
  todos version

Task references:
  3                N-th task of the current mode
  w3, t3           N-th task of the Work or Travel list
  <id>             task ID

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
