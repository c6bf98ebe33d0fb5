package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/auctionpost/auctionpost/internal/cli"
	"github.com/auctionpost/auctionpost/internal/logging"
	"github.com/auctionpost/auctionpost/pkg/export"
	"github.com/auctionpost/auctionpost/pkg/render"
	"github.com/auctionpost/auctionpost/pkg/tui"
)

// Global flags
var (
	configPath  string
	quietFlag   bool
	noColorFlag bool
	yesFlag     bool
)

// runTUI is swapped out in tests
var runTUI = tui.Run

// NewRootCommand creates the auctionpost command with every subcommand
// attached
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "auctionpost",
		Short: "Create shareable IPL auction sold cards",
		Long: `Auctionpost builds "SOLD" announcement cards for IPL auction players.

Pick a player, a franchise and a price in the interactive form, watch the
card update live, and download it as a JPEG ready to share.

Run without a subcommand to start the interactive form.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cli.SetGlobalFlags(quietFlag, noColorFlag, yesFlag)
			cli.SetInput(cmd.InOrStdin())
			output, _ := cmd.Flags().GetString("output")
			return cli.ValidateOutputFormat(output)
		},
		RunE: runRoot,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (default .auctionpost/settings.yaml)")
	root.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress informational output")
	root.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVarP(&yesFlag, "yes", "y", false, "Answer yes to every confirmation")
	root.PersistentFlags().StringP("output", "o", "text", "Output format (text, json, yaml)")

	root.AddCommand(
		NewInitCommand(),
		NewVersionCommand(version),
		NewPlayersCommand(),
		NewTeamsCommand(),
		NewPriceCommand(),
		NewRenderCommand(),
	)

	return root
}

func runRoot(cmd *cobra.Command, args []string) error {
	cc := cli.NewCommandContext(configPath)
	settings, err := cc.LoadSettings()
	if err != nil {
		return err
	}
	cat, err := cc.LoadCatalog()
	if err != nil {
		return err
	}

	logger, closer, err := logging.ForTUI(settings.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	// the preview and the export share one logo cache
	logos := render.NewLogoSource(settings.Render, logger)
	rasterizer, err := newRasterizer(settings.Render, logos, logger)
	if err != nil {
		return err
	}

	logger.Info("starting interactive form", "backend", settings.Render.Backend, "players", len(cat.Players()))

	err = runTUI(tui.Config{
		Catalog:     cat,
		Rasterizer:  rasterizer,
		Logos:       logos,
		Saver:       export.DirSaver{Dir: settings.Output.Directory},
		Output:      settings.Output,
		ShowPreview: settings.UI.ShowPreview,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}
