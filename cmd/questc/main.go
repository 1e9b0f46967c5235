// Command questc compiles Quest programs to JavaScript.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"questc/pkg/driver"
	qerrors "questc/pkg/errors"
)

const (
	exitUsage   = 64 // command line usage error
	exitFailure = 70 // compilation failed
)

// exitError carries the process exit status out of a command.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	cmd := newRootCommand(afero.NewOsFs(), os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}

// app is the state shared by the subcommands.
type app struct {
	fs     afero.Fs
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer

	config driver.Config
	logger *zap.Logger
}

func newRootCommand(fs afero.Fs, stdout, stderr io.Writer) *cobra.Command {
	a := &app{fs: fs, v: viper.New(), stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "questc",
		Short:         "Compile Quest programs to JavaScript",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.String(driver.KeyLogLevel, "", "log level: debug, info, warn, error")
	flags.String(driver.KeyColor, "", "colour diagnostics: auto, always, never")
	flags.String(driver.KeyOutDir, "", "directory for generated files")
	for _, key := range []string{driver.KeyLogLevel, driver.KeyColor, driver.KeyOutDir} {
		mustBindPFlag(a.v, key, flags)
	}

	root.AddCommand(a.newCompileCommand(), a.newBuildCommand(), a.newReplCommand())
	return root
}

// configure resolves flags, QUESTC_* environment variables and an optional
// .questc.yaml, in that order of precedence.
func (a *app) configure() error {
	a.v.SetEnvPrefix("QUESTC")
	a.v.AutomaticEnv()
	// This normalizes "-" to an underscore in env names.
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.SetConfigName(".questc")
	a.v.SetConfigType("yaml")
	a.v.AddConfigPath(".")
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	driver.SetDefaults(a.v)

	config, err := driver.LoadConfig(a.v)
	if err != nil {
		return err
	}
	a.config = config
	a.logger = driver.NewLogger(a.stderr, config.LogLevel)
	a.logger.Debug("Configuration loaded",
		zap.String("stage", string(config.Stage)),
		zap.String("out-dir", config.OutDir),
		zap.String("config-file", a.v.ConfigFileUsed()))
	return nil
}

func (a *app) options() driver.Options {
	return driver.OptionsFromConfig(a.config, a.logger, a.fs)
}

func (a *app) colored() bool {
	switch a.config.Color {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := a.stderr.(*os.File)
	return ok && qerrors.ColorEnabled(f)
}

// report prints err, with source excerpts for diagnostics, and returns the
// exit status to use.
func (a *app) report(err error) error {
	var usage *driver.UsageError
	if errors.As(err, &usage) {
		fmt.Fprintln(a.stderr, usage.Msg)
		return &exitError{code: exitUsage}
	}
	var diag *driver.DiagnosticsError
	if errors.As(err, &diag) {
		qerrors.DisplayErrors(a.stderr, diag.Errors, a.colored())
		return &exitError{code: exitFailure}
	}
	fmt.Fprintln(a.stderr, err)
	return &exitError{code: exitFailure}
}

func mustBindPFlag(v *viper.Viper, key string, flags *pflag.FlagSet) {
	if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
		panic(err)
	}
}
