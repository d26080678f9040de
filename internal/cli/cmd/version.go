package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ubytes/appplatform/internal/bootstrap"
	"github.com/ubytes/appplatform/internal/cli/styles"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Aliases:     []string{"about"},
		Short:       "Show version and build information",
		Long:        `Display version, build info, compiled backends and the repository URL.`,
		Args:        cobra.NoArgs,
		Annotations: skipApp(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderer := styles.NewAboutRenderer(styles.NewTheme())
			fmt.Fprintln(cmd.OutOrStdout(), renderer.Render(buildInfo, bootstrap.CompiledBackends()))
			return nil
		},
	}
}
