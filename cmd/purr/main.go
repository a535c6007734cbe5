package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/draganm/purr/internal/concat"
	"github.com/draganm/purr/internal/config"
	"github.com/draganm/purr/internal/metrics"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)

	err := app.Run(hoistFlags(app, os.Args))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:            "purr",
		Usage:           "Purr(cat) FILE(s) to standard output.",
		ArgsUsage:       "[FILE]...",
		Version:         version,
		HideHelpCommand: true,
		Reader:          stdin,
		Writer:          stdout,
		ErrWriter:       stderr,
		OnUsageError: func(c *cli.Context, err error, _ bool) error {
			return err
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "number",
				Aliases: []string{"n"},
				Usage:   "Number all output lines, starting with 1.",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Diagnostic log level (debug, info, warn, error)",
				Value:   config.DefaultLogLevel,
				EnvVars: []string{config.LogLevelEnv},
				Hidden:  true,
			},
		},
		Action: func(c *cli.Context) error {
			cfg := &config.Config{
				Number:   c.Bool("number"),
				LogLevel: c.String("log-level"),
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := cfg.Logger(c.App.ErrWriter)
			if err != nil {
				return err
			}
			log = log.With("run_id", uuid.New().String()[:8])

			return run(c, cfg, log)
		},
	}
}

// hoistFlags moves flag tokens that follow positional inputs to the front so
// "purr FILE -n" numbers FILE. A bare "-" stays positional and everything
// after "--" is kept as input.
func hoistFlags(app *cli.App, args []string) []string {
	if len(args) < 2 {
		return args
	}

	takesValue := map[string]bool{}
	for _, f := range app.Flags {
		if _, ok := f.(*cli.BoolFlag); ok {
			continue
		}
		for _, name := range f.Names() {
			takesValue[name] = true
		}
	}

	flags := []string{args[0]}
	var inputs []string
	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		if arg == "--" {
			inputs = append(inputs, rest[i+1:]...)
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			inputs = append(inputs, arg)
			continue
		}

		flags = append(flags, arg)
		name := strings.TrimLeft(arg, "-")
		if !strings.Contains(name, "=") && takesValue[name] && i+1 < len(rest) {
			i++
			flags = append(flags, rest[i])
		}
	}
	if len(inputs) == 0 {
		return flags
	}
	// "--" keeps inputs that look like flags, such as a file named "-x",
	// from being parsed again.
	flags = append(flags, "--")
	return append(flags, inputs...)
}

func run(c *cli.Context, cfg *config.Config, log *slog.Logger) error {
	m := metrics.New()
	runner := concat.New(&concat.Config{
		Stdin:  c.App.Reader,
		Stdout: c.App.Writer,
		Number: cfg.Number,
		Logger: log,
	}, m)

	log.Info("Starting run", "inputs", c.Args().Len(), "number", cfg.Number)

	err := runner.Run(c.Context, c.Args().Slice())

	summary, serr := m.Summary()
	if serr != nil {
		log.Warn("Failed to gather metrics", "error", serr)
	} else {
		log.Debug("Run metrics", summary...)
	}

	if err != nil {
		log.Info("Run aborted", "error", err, "lines", runner.Emitted())
		return err
	}
	return nil
}
