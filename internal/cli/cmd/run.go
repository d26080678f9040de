package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ubytes/appplatform/internal/bootstrap"
	domainurl "github.com/ubytes/appplatform/internal/domain/url"
	"github.com/ubytes/appplatform/internal/infrastructure/config"
)

type runOptions struct {
	backend string
	script  string
	noWatch bool
}

func newRunCmd(state *rootState) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [url]",
		Short: "Open the main window",
		Long: `Open the main window and load a URL in it.

Without an argument webview.start_url is loaded. Paths are opened as file://
URLs and bare hosts get https://.

Examples:
  appplatform run                          # load webview.start_url
  appplatform run example.com              # load https://example.com
  appplatform run ./index.html             # load a local file
  appplatform run --backend headless \
    --script app.js app://main             # drive scripted content`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, state, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.backend, "backend", "", "override backend.name (auto, webkitgtk, headless)")
	cmd.Flags().StringVar(&opts.script, "script", "", "headless backend: JavaScript file served as the start URL")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "do not apply config file edits to the running window")
	return cmd
}

func runRun(cmd *cobra.Command, state *rootState, opts *runOptions, args []string) error {
	app := state.app
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	backend := config.BackendName(opts.backend)
	valid := []config.BackendName{config.BackendAuto, config.BackendWebKitGTK, config.BackendHeadless}
	if backend != "" && !slices.Contains(valid, backend) {
		return fmt.Errorf("unknown backend %q (want auto, webkitgtk or headless)", opts.backend)
	}

	var startURL string
	if len(args) == 1 {
		startURL = domainurl.Normalize(args[0])
	}

	ctx, stop := signal.NotifyContext(app.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	return bootstrap.Run(ctx, bootstrap.RunInput{
		Manager:    app.Manager,
		StartURL:   startURL,
		Backend:    backend,
		ScriptFile: opts.script,
		Watch:      !opts.noWatch,
	})
}
