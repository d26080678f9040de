package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ubytes/appplatform/internal/cli/styles"
	"github.com/ubytes/appplatform/internal/infrastructure/config"
)

func newConfigCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Show where the configuration lives, print it, or (re)write it and its JSON schema.`,
	}
	cmd.AddCommand(
		newConfigPathCmd(state),
		newConfigShowCmd(state),
		newConfigSchemaCmd(state),
		newConfigInitCmd(state),
	)
	return cmd
}

func newConfigPathCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the config, schema and database paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := state.app
			if app == nil {
				return fmt.Errorf("app not initialized")
			}
			file := app.Manager.ConfigFile()
			renderer := styles.NewConfigRenderer(app.Theme)
			fmt.Fprint(cmd.OutOrStdout(), renderer.RenderPaths(file, config.SchemaFileFor(file), app.Config.Permissions.DatabasePath))
			return nil
		},
	}
}

func newConfigShowCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Long:  `Print the configuration after defaults and APPPLATFORM_* environment overrides are applied.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := state.app
			if app == nil {
				return fmt.Errorf("app not initialized")
			}
			data, err := config.MarshalTOML(app.Config)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigSchemaCmd(state *rootState) *cobra.Command {
	var stdout bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Write the JSON schema next to the config file",
		Long: `Regenerate config.schema.json so editors with TOML schema support can
complete and validate the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := state.app
			if app == nil {
				return fmt.Errorf("app not initialized")
			}
			if stdout {
				data, err := config.GenerateSchema()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}

			path := config.SchemaFileFor(app.Manager.ConfigFile())
			if err := config.GenerateSchemaFile(path); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), styles.NewConfigRenderer(app.Theme).RenderWritten("schema", path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the schema instead of writing it")
	return cmd
}

// config init runs without loading the config: Load would create the file
// it is about to write.
func newConfigInitCmd(state *rootState) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a default config file",
		Args:        cobra.NoArgs,
		Annotations: skipApp(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderer := styles.NewConfigRenderer(styles.NewTheme())
			out := cmd.OutOrStdout()

			path := state.opts.ConfigFile
			if path == "" {
				var err error
				if path, err = config.GetConfigFile(); err != nil {
					fmt.Fprint(out, renderer.RenderError(err))
					return err
				}
			}

			_, statErr := os.Stat(path)
			switch {
			case statErr == nil && !force:
				fmt.Fprint(out, renderer.RenderExists(path))
				return nil
			case statErr != nil && !errors.Is(statErr, fs.ErrNotExist):
				return fmt.Errorf("stat %s: %w", path, statErr)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			if err := config.WriteConfigOrdered(config.DefaultConfig(), path); err != nil {
				return err
			}
			schema := config.SchemaFileFor(path)
			if err := config.GenerateSchemaFile(schema); err != nil {
				return err
			}
			fmt.Fprint(out, renderer.RenderWritten("config", path))
			fmt.Fprint(out, renderer.RenderWritten("schema", schema))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config with defaults")
	return cmd
}
