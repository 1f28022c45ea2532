package main

import (
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/zicht/zrefs/internal/config"
	"github.com/zicht/zrefs/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage zrefs configuration.

Global config: ~/.config/zrefs/config.toml (or $ZREFS_CONFIG)
Local config:  .zrefs.toml (in the repository root)

ZREFS_PREFIX and ZREFS_REMOTE override both files.`,
		Example: `  zrefs config init          # Create default global config
  zrefs config show          # Show effective config
  zrefs config show --json   # Show effective config as JSON`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Example: `  zrefs config init           # Create global config
  zrefs config init -f        # Overwrite existing config
  zrefs config init -s        # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			if stdout {
				out.Print(config.DefaultConfig())
				return nil
			}

			path, err := cmd.Flags().GetString("config")
			if err != nil || path == "" {
				if path, err = config.Path(); err != nil {
					return err
				}
			}
			if err := config.Init(path, force); err != nil {
				return err
			}
			out.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			cfg := config.FromContext(ctx)
			if cfg == nil {
				d := config.Default()
				cfg = &d
			}

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}
			if err := toml.NewEncoder(out.Writer()).Encode(cfg); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
