package cli

import (
	"github.com/rileyhilliard/cpuglow/internal/config"
	"github.com/rileyhilliard/cpuglow/internal/errors"
	"github.com/spf13/cobra"
)

func newInitCmd(flags *rootFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write the default configuration to ~/.config/cpuglow/config.yaml,
or to the path given with --config.

Examples:
  cpuglow init
  cpuglow init --config ./cpuglow.yaml --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.Config
			if path == "" {
				path = config.DefaultPath()
			}
			if path == "" {
				return errors.New(errors.ErrConfig,
					"Can't work out where to put the config file",
					"Pass a path with --config.")
			}

			if err := config.Write(path, config.DefaultConfig(), force); err != nil {
				return err
			}
			cmd.Printf("Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config")
	return cmd
}
