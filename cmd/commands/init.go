package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/auctionpost/auctionpost/internal/cli"
	"github.com/auctionpost/auctionpost/pkg/files"
)

var initForce bool

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a settings file in the current directory",
		Long: `Creates the .auctionpost folder with a settings.yaml holding the
defaults. An existing settings file is left untouched unless --force is
given, which asks before resetting it to the defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to determine current directory: %w", err)
			}

			cli.PrintInfo("Initializing auctionpost in %s", cwd)

			created, err := files.InitProjectStructure()
			if err != nil {
				return fmt.Errorf("failed to initialize project: %w", err)
			}
			if created {
				cli.PrintSuccess("Created %s", files.SettingsPath())
				cli.PrintInfo("Run 'auctionpost' to start the interactive form")
				return nil
			}

			if !initForce {
				cli.PrintWarning("%s already exists, keeping it", files.SettingsPath())
				return nil
			}

			ok, err := cli.Confirm(fmt.Sprintf("Reset %s to the defaults?", files.SettingsPath()), false)
			if err != nil {
				return fmt.Errorf("no answer; pass --yes to reset %s", files.SettingsPath())
			}
			if !ok {
				cli.PrintInfo("Kept %s", files.SettingsPath())
				return nil
			}
			if err := files.WriteSettings(nil); err != nil {
				return err
			}
			cli.PrintSuccess("Reset %s", files.SettingsPath())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&initForce, "force", "f", false, "Reset an existing settings file to the defaults")
	return cmd
}
