package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/ubytes/appplatform/internal/application/usecase"
	"github.com/ubytes/appplatform/internal/cli"
	"github.com/ubytes/appplatform/internal/cli/model"
	"github.com/ubytes/appplatform/internal/cli/styles"
	"github.com/ubytes/appplatform/internal/domain/entity"
	domainurl "github.com/ubytes/appplatform/internal/domain/url"
)

func newPermissionsCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "permissions",
		Aliases: []string{"perms"},
		Short:   "Manage stored permission decisions",
		Long: `List or clear the camera, microphone, location and other decisions that
were remembered for an origin.`,
	}
	cmd.AddCommand(newPermissionsListCmd(state), newPermissionsClearCmd(state))
	return cmd
}

func newPermissionsListCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "list [origin]",
		Short: "List stored decisions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := state.app
			if app == nil {
				return fmt.Errorf("app not initialized")
			}

			var origin string
			if len(args) == 1 {
				var err error
				if origin, err = parseOrigin(args[0]); err != nil {
					return err
				}
			}

			records, err := app.Permissions.List(app.Context(), origin)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), styles.NewPermissionsRenderer(app.Theme).RenderList(records))
			return nil
		},
	}
}

func newPermissionsClearCmd(state *rootState) *cobra.Command {
	var (
		typeName string
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "clear [origin]",
		Short: "Forget stored decisions",
		Long: `Forget the decisions stored for an origin, or for every origin with --all.
Without arguments in a terminal, pick the decisions to forget from a list.

Examples:
  appplatform permissions clear
  appplatform permissions clear https://meet.example.com
  appplatform permissions clear meet.example.com --type camera
  appplatform permissions clear --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := state.app
			if app == nil {
				return fmt.Errorf("app not initialized")
			}

			in := usecase.ClearInput{}
			switch {
			case all && len(args) == 1:
				return fmt.Errorf("--all does not take an origin")
			case all && typeName != "":
				return fmt.Errorf("--type requires an origin")
			case !all && len(args) == 0 && typeName != "":
				return fmt.Errorf("--type requires an origin")
			case !all && len(args) == 0:
				if !isTerminal(cmd.InOrStdin()) {
					return fmt.Errorf("give an origin or --all")
				}
				return runClearPicker(cmd, app)
			}

			scope := "all origins"
			if len(args) == 1 {
				origin, err := parseOrigin(args[0])
				if err != nil {
					return err
				}
				in.Origin = origin
				scope = origin
			}
			if typeName != "" {
				t, ok := entity.ParsePermissionType(typeName)
				if !ok {
					return fmt.Errorf("unknown permission type %q (want one of %s)", typeName, permissionTypeNames())
				}
				in.Type = t
				scope = fmt.Sprintf("%s %s", scope, t)
			}

			n, err := app.Permissions.Clear(app.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), styles.NewPermissionsRenderer(app.Theme).RenderCleared(n, scope))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "only clear this permission type")
	cmd.Flags().BoolVar(&all, "all", false, "clear every stored decision")
	return cmd
}

// isTerminal reports whether r is an interactive terminal.
var isTerminal = func(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}

func runClearPicker(cmd *cobra.Command, app *cli.App) error {
	m := model.NewClearPermissionsModel(app.Context(), app.Theme, app.Permissions)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	final, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := final.(model.ClearPermissionsModel)
	if !ok {
		return nil
	}
	if n := result.Cleared(); n > 0 {
		fmt.Fprint(cmd.OutOrStdout(), styles.NewPermissionsRenderer(app.Theme).RenderCleared(int64(n), "selected origins"))
	}
	return result.Err()
}

// parseOrigin accepts an origin, a full URL or a bare host.
func parseOrigin(arg string) (string, error) {
	origin := domainurl.ExtractOrigin(domainurl.Normalize(arg))
	if origin == "" {
		return "", fmt.Errorf("invalid origin %q", arg)
	}
	return origin, nil
}

func permissionTypeNames() string {
	types := entity.KnownPermissionTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
