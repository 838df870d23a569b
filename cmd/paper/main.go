package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-paper/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdConvert = "convert"
	cmdVersion = "version"
	cmdHelp    = "help"
)

// ErrUnknownCommand indicates a first argument that is neither a command
// nor a document path.
var ErrUnknownCommand = errors.New("unknown command")

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches args (os.Args shaped) and returns the exit code.
// A bare document path is shorthand for "convert <path>".
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch {
	case isCommand(cmd, cmdVersion):
		fmt.Fprintf(env.Stdout, "paper %s\n", Version)
		return ExitSuccess
	case isCommand(cmd, cmdHelp), cmd == "-h", cmd == "--help":
		runHelp(rest, env)
		return ExitSuccess
	case isCommand(cmd, cmdConvert):
	case looksLikeDocument(cmd):
		rest = args[1:]
	default:
		fmt.Fprintf(env.Stderr, "error: %v: %s\n", ErrUnknownCommand, cmd)
		printUsage(env.Stderr)
		return exitCodeFor(ErrUnknownCommand)
	}

	flags, positional, err := parseConvertFlags(rest)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	setMaxProcs(flags.common.verbose, env)
	warnUnknownEnvVars(env.Stderr)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// setMaxProcs configures GOMAXPROCS for container CPU quotas, logging the
// decision only in verbose mode.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(verbose bool, env *Environment) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}

// isCommand reports whether arg names cmd.
func isCommand(arg, cmd string) bool {
	return arg == cmd
}

// looksLikeDocument reports whether arg is a convertible file or an
// existing directory.
func looksLikeDocument(arg string) bool {
	if fileutil.DocumentKind(arg) != fileutil.KindUnknown {
		return true
	}
	if filepath.Ext(arg) != "" {
		return false
	}
	info, err := os.Stat(arg)
	return err == nil && info.IsDir()
}
