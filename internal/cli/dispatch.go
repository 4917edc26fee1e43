package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"todos/internal/commands"
	"todos/internal/config"
	"todos/internal/exitcode"
	"todos/internal/input"
	"todos/internal/service"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
	input    input.Reader
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// SetInput sets the reader used for confirmations and shell lines.
// Defaults to standard input.
func (d *Dispatcher) SetInput(r input.Reader) {
	d.input = r
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	quiet     bool
	debug     bool
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configDir, "config", "", "")
	fs.BoolVar(&f.quiet, "quiet", false, "")
	fs.BoolVar(&f.debug, "debug", false, "")
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	if cmdName == shellCommand {
		return d.runShell(ctx, args[1:], out, errOut)
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	var common commonFlags
	positionalArgs, code := parseFlags(cmd.Name(), args, errOut, common.register, cmd.RegisterFlags)
	if code != exitcode.Success {
		return code
	}

	cfg, code := loadConfig(common, errOut)
	if code != exitcode.Success {
		return code
	}

	var svc service.Service
	if cmd.NeedsStore() {
		var closeSvc func()
		svc, closeSvc, code = d.openService(ctx, cfg, errOut)
		if code != exitcode.Success {
			return code
		}
		defer closeSvc()
	}

	in := d.input
	if in == nil {
		in = input.NewBasic(os.Stdin, out)
	}

	// Run command
	return cmd.Run(ctx, cfg, svc, positionalArgs, in, out, errOut)
}

// parseFlags parses args with the given flag registrations and returns the
// positional arguments.
func parseFlags(name string, args []string, errOut io.Writer, register ...func(*flag.FlagSet)) ([]string, int) {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	for _, r := range register {
		r(fs)
	}

	if err := fs.Parse(args); err != nil {
		errStr := err.Error()

		// Check for missing flag value
		if strings.HasPrefix(errStr, "flag needs an argument:") {
			flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
			fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagName)
			return nil, exitcode.UserError
		}

		// Check for unknown flag
		if strings.HasPrefix(errStr, "flag provided but not defined:") {
			flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
			fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
			return nil, exitcode.UserError
		}

		fmt.Fprintf(errOut, "error: %s\n", errStr)
		return nil, exitcode.UserError
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return nil, exitcode.UserError
	}
	return positionalArgs, exitcode.Success
}

func loadConfig(common commonFlags, errOut io.Writer) (*config.Config, int) {
	cfg, err := config.Load(common.configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return nil, exitcode.ConfigError
	}
	cfg.Quiet = common.quiet
	cfg.Debug = common.debug
	return cfg, exitcode.Success
}

// openService creates the service and a func that releases it.
func (d *Dispatcher) openService(ctx context.Context, cfg *config.Config, errOut io.Writer) (service.Service, func(), int) {
	if d.factory == nil {
		fmt.Fprintln(errOut, "error: no storage configured")
		return nil, nil, exitcode.ConfigError
	}

	svc, err := d.factory(ctx, cfg)
	if err != nil {
		var cfgErr *config.Error
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return nil, nil, exitcode.ConfigError
		}
		fmt.Fprintf(errOut, "error: storage error: %s\n", err)
		return nil, nil, exitcode.StorageError
	}

	release := func() {
		if closer, ok := svc.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				fmt.Fprintf(errOut, "warning: close store: %v\n", err)
			}
		}
	}
	return svc, release, exitcode.Success
}
