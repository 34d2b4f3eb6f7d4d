// Command hioload-mem creates, converts and batches DataPoint records, and
// drives the pools and sequences with synthetic load.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/lmittmann/tint"
	"github.com/momentics/hioload-mem/internal/pflagx"
	"github.com/spf13/pflag"
)

const EnvPrefix = "HIOLOAD_MEM_"

// errUsage marks argument errors that exit with status 2.
var errUsage = errors.New("usage")

type command struct {
	name  string
	args  string
	help  string
	flags func(fs *pflag.FlagSet) func(env *cmdEnv) error
}

type cmdEnv struct {
	args   []string
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
}

var commands = []command{
	{"add", "LEFT RIGHT", "add two unsigned integers", addFlags},
	{"generate", "", "generate a random data point as JSON", generateFlags},
	{"to-json", "", "convert a data point to JSON", toJSONFlags},
	{"from-json", "JSON", "parse a JSON data point and display it", fromJSONFlags},
	{"simulate", "", "feed random data points through a sequence and write the result", simulateFlags},
}

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stdout, os.Stderr))
}

func run(args, environ []string, stdout, stderr io.Writer) int {
	global := pflag.NewFlagSet("hioload-mem", pflag.ContinueOnError)
	global.SetOutput(stderr)
	global.SetInterspersed(false)
	logLevel := pflagx.FlagSetExt(global).LevelP("log-level", "L", slog.LevelInfo, "log level")
	logJSON := global.Bool("log-json", false, "use json logs")
	help := global.BoolP("help", "h", false, "show this help text")

	if err := global.Parse(args); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	if *help || global.NArg() == 0 {
		w := stderr
		if *help {
			w = stdout
		}
		usage(w, global)
		if *help {
			return 0
		}
		return 2
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == global.Arg(0) {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		fmt.Fprintf(stderr, "error: unknown command %q\n", global.Arg(0))
		usage(stderr, global)
		return 2
	}

	fs := pflag.NewFlagSet(cmd.name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	exec := cmd.flags(fs)
	fs.AddFlagSet(global)
	if err := pflagx.FlagSetExt(fs).ParseEnv(EnvPrefix, environ); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	if err := fs.Parse(global.Args()[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	if *help {
		fmt.Fprintf(stdout, "usage: hioload-mem %s [options] %s\n%s", cmd.name, cmd.args, fs.FlagUsages())
		return 0
	}

	var h slog.Handler
	if *logJSON {
		h = slog.NewJSONHandler(stderr, &slog.HandlerOptions{
			Level: logLevel,
		})
	} else {
		h = tint.NewHandler(stderr, &tint.Options{
			Level:   logLevel,
			NoColor: true,
		})
	}
	env := &cmdEnv{
		args:   fs.Args(),
		stdout: stdout,
		stderr: stderr,
		log:    slog.New(h).With("cmd", cmd.name),
	}

	if err := exec(env); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "error: %v\nusage: hioload-mem %s [options] %s\n%s", err, cmd.name, cmd.args, fs.FlagUsages())
			return 2
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func usage(w io.Writer, global *pflag.FlagSet) {
	fmt.Fprintf(w, "usage: hioload-mem [options] command [command options]\n\ncommands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.help)
	}
	fmt.Fprintf(w, "\noptions:\n%s\nflags may also be set as %sFLAG_NAME environment variables\n", global.FlagUsages(), EnvPrefix)
}

func addFlags(fs *pflag.FlagSet) func(env *cmdEnv) error {
	return func(env *cmdEnv) error {
		if len(env.args) != 2 {
			return fmt.Errorf("%w: expected 2 arguments, got %d", errUsage, len(env.args))
		}
		left, err := strconv.ParseUint(env.args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: left: %v", errUsage, err)
		}
		right, err := strconv.ParseUint(env.args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: right: %v", errUsage, err)
		}
		_, err = fmt.Fprintln(env.stdout, left+right)
		return err
	}
}
