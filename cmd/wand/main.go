package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ryferguson/cornwand/internal/config"
	"github.com/ryferguson/cornwand/internal/errors"
	"github.com/ryferguson/cornwand/pkg/publish"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	a := newApp()
	if err := a.rootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, errors.FromError(err, "W501"), a.errorStyle())
		os.Exit(1)
	}
}

// app holds state shared by every command.
type app struct {
	configDir   string
	logLevel    string
	logJSON     bool
	noColor     bool
	errorFormat string

	// environ overrides the process environment when non-nil.
	environ map[string]string

	// newPutter builds the S3 client used by publish.
	newPutter func(cfg config.PublishConfig) publish.Putter

	cfg    *config.Config
	logger *slog.Logger
}

func newApp() *app {
	return &app{
		newPutter: func(cfg config.PublishConfig) publish.Putter {
			return publish.NewClient(publish.ClientOptions{
				Region:    cfg.Region,
				Endpoint:  cfg.Endpoint,
				PathStyle: cfg.PathStyle,
				Credentials: publish.Credentials{
					AccessKeyID:     cfg.AccessKeyID,
					SecretAccessKey: cfg.SecretAccessKey,
					SessionToken:    cfg.SessionToken,
				},
			})
		},
	}
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wand",
		Short: "Build HTML from the command line and from JSON documents",
		Long: `wand builds HTML markup.

Markup can be produced one tag at a time with "wand tag", or from JSON
documents describing nested tags with "wand render". "wand serve" previews
a directory of documents with live reload and "wand publish" uploads the
rendered pages to S3.

Settings are read from wand.json and WAND_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configDir, "config-dir", "C", ".", "Directory containing wand.json")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error (default from wand.json)")
	flags.BoolVar(&a.logJSON, "log-json", false, "Write logs as JSON")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	flags.StringVar(&a.errorFormat, "error-format", "", "Error output: pretty, compact or json (default json with --log-json, else pretty)")

	rootCmd.AddCommand(
		initCmd(a),
		tagCmd(),
		escCmd(),
		renderCmd(),
		serveCmd(a),
		publishCmd(a),
		explainCmd(),
		versionCmd(),
	)

	return rootCmd
}

// setup loads the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if err := a.setupOutput(); err != nil {
		return err
	}

	cfg, err := config.LoadWithEnv(a.configDir, a.environ)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if a.logJSON {
		cfg.Log.JSON = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel(), cfg.Log.JSON)
	slog.SetDefault(a.logger)
	return nil
}

// setupOutput applies the flags that do not depend on wand.json.
func (a *app) setupOutput() error {
	if a.noColor {
		errors.DisableColors()
	}
	if _, ok := errors.ParseStyle(a.errorFormat); !ok {
		return errors.New("W501").
			WithDetail("--error-format must be pretty, compact or json, got " + a.errorFormat + ".")
	}
	return nil
}

// errorStyle returns the style errors are printed in.
func (a *app) errorStyle() errors.Style {
	if a.errorFormat == "" && a.logJSON {
		return errors.StyleJSON
	}
	style, ok := errors.ParseStyle(a.errorFormat)
	if !ok {
		return errors.StylePretty
	}
	return style
}

func newLogger(w io.Writer, level slog.Level, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
