package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hmans/todoql/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Creates a todoql.toml with default settings (or the path given by --config).

Refuses to overwrite an existing file unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}

		if err := config.Default().Save(configPath); err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
