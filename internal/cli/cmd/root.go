// Package cmd provides the Cobra commands of appplatform.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ubytes/appplatform/internal/cli"
	"github.com/ubytes/appplatform/internal/domain/build"
)

// skipAppAnnotation marks commands that run without loading the config.
const skipAppAnnotation = "appplatform/skip-app"

var buildInfo build.Info

// rootState is shared by the subcommands of one root command.
type rootState struct {
	opts cli.Options
	app  *cli.App
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	state := &rootState{}

	root := &cobra.Command{
		Use:   "appplatform",
		Short: "Host web content in a native window",
		Long: `appplatform opens a native window, embeds a web view in it and serves
permission requests, keyboard accelerators and window commands for the
hosted content.

Use 'appplatform run' to open a window, or the other subcommands to manage
stored permission decisions and the configuration file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipsApp(cmd) {
				return nil
			}

			app, err := cli.NewApp(state.opts)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			state.app = app
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if state.app != nil {
				_ = state.app.Close()
				state.app = nil
			}
		},
	}

	root.PersistentFlags().StringVar(&state.opts.ConfigFile, "config", "", "config file (default $XDG_CONFIG_HOME/appplatform/config.toml)")
	root.PersistentFlags().StringVar(&state.opts.LogLevel, "log-level", "", "override logging.level (trace, debug, info, warn, error)")

	root.AddCommand(
		newRunCmd(state),
		newPermissionsCmd(state),
		newConfigCmd(state),
		newVersionCmd(),
	)
	return root
}

// skipsApp reports whether cmd or one of its parents opted out of app init.
func skipsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipAppAnnotation] == "true" {
			return true
		}
	}
	return false
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func skipApp() map[string]string {
	return map[string]string{skipAppAnnotation: "true"}
}
