package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/auctionpost/auctionpost/internal/cli"
	"github.com/auctionpost/auctionpost/internal/logging"
	"github.com/auctionpost/auctionpost/pkg/card"
	"github.com/auctionpost/auctionpost/pkg/export"
	"github.com/auctionpost/auctionpost/pkg/models"
	"github.com/auctionpost/auctionpost/pkg/render"
)

var (
	renderPlayer      string
	renderTeam        string
	renderPrice       string
	renderDir         string
	renderBackend     string
	renderCopyCaption bool
)

// Swapped out in tests
var (
	copyToClipboard = clipboard.WriteAll
	newRasterizer   = render.New
)

// NewRenderCommand creates the render command
func NewRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a sold card to a JPEG without the interactive form",
		Long: `Render the card for a player, team and price and save it as a JPEG.

The file is named <Player_Name>_<TEAM>_<suffix>.jpg and written to the
output directory from settings, or --dir. An existing file is only
replaced after confirmation, or with --yes.

Players are matched by id, full name, or a search that finds exactly one
player. Teams are matched by id or short name.

Examples:
  auctionpost render --player virat-kohli --team RCB --price 21
  auctionpost render --player "Jasprit Bumrah" --team mi --price 0.75 --dir out
  auctionpost render --player pant --team lsg --price 27 --copy-caption -o json`,
		Args: cobra.NoArgs,
		RunE: runRender,
	}

	cmd.Flags().StringVarP(&renderPlayer, "player", "p", "", "Player id, name or unique search term")
	cmd.Flags().StringVarP(&renderTeam, "team", "t", "", "Team id or short name")
	cmd.Flags().StringVar(&renderPrice, "price", "", "Sold price in crores")
	cmd.Flags().StringVarP(&renderDir, "dir", "d", "", "Output directory (overrides settings)")
	cmd.Flags().StringVar(&renderBackend, "backend", "", "Rasterizer: native or chrome (overrides settings)")
	cmd.Flags().BoolVar(&renderCopyCaption, "copy-caption", false, "Copy a share caption to the clipboard")
	cmd.MarkFlagRequired("player")
	cmd.MarkFlagRequired("team")
	cmd.MarkFlagRequired("price")

	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	if err := cli.ValidatePrice(renderPrice); err != nil {
		return err
	}

	cc := cli.NewCommandContext(configPath)
	settings, err := cc.LoadSettings()
	if err != nil {
		return err
	}

	player, err := cc.FindPlayer(renderPlayer)
	if err != nil {
		return err
	}
	team, err := cc.FindTeam(renderTeam)
	if err != nil {
		return err
	}

	if renderBackend != "" {
		if err := cli.ValidateBackend(renderBackend); err != nil {
			return err
		}
		settings.Render.Backend = renderBackend
	}
	dir := settings.Output.Directory
	if renderDir != "" {
		dir = renderDir
	}
	if err := cli.ValidateDirectoryPath(dir); err != nil {
		return err
	}

	logger := logging.ForCLI(settings.Log)
	rasterizer, err := newRasterizer(settings.Render, render.NewLogoSource(settings.Render, logger), logger)
	if err != nil {
		return err
	}

	sel := models.Selection{Player: &player, Team: &team, PriceText: renderPrice}
	result, err := runExport(cmd, rasterizer, dir, settings.Output, logger, sel)
	if err != nil || result == nil {
		return err
	}

	if renderCopyCaption {
		caption := card.Derive(sel).Caption()
		if err := copyToClipboard(caption); err != nil {
			cli.PrintWarning("Could not copy caption: %v", err)
		} else {
			cli.PrintSuccess("Caption copied to clipboard")
		}
	}

	output, _ := cmd.Flags().GetString("output")
	if output != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), output, result)
	}

	cli.PrintInfo("Saved %s (%dx%d, %s) in %s", result.Path, result.Width, result.Height, cli.FormatBytes(int64(result.Bytes)), result.Duration.Round(time.Millisecond))
	return nil
}

func runExport(cmd *cobra.Command, r render.Rasterizer, dir string, out models.OutputSettings, logger *log.Logger, sel models.Selection) (*export.Result, error) {
	var notifier export.Notifier = cli.Notifier{}
	output, _ := cmd.Flags().GetString("output")
	if output != string(cli.FormatText) {
		// keep stdout parseable
		notifier = export.Discard
	}

	pipeline := export.New(r, export.DirSaver{Dir: dir}, notifier, logger, export.OptionsFromSettings(out))

	path := filepath.Join(dir, pipeline.Filename(*sel.Player, *sel.Team))
	if ok, err := confirmOverwrite(path); err != nil || !ok {
		return nil, err
	}

	result, err := pipeline.Run(cmd.Context(), sel)
	if err != nil {
		if errors.Is(err, export.ErrIncomplete) {
			return nil, fmt.Errorf("cannot render: %w", err)
		}
		return nil, fmt.Errorf("failed to render card: %w", err)
	}
	return result, nil
}

// confirmOverwrite asks before an export replaces an existing file
func confirmOverwrite(path string) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return true, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", path, err)
	}

	ok, err := cli.Confirm(fmt.Sprintf("%s already exists. Overwrite?", path), false)
	if err != nil {
		return false, fmt.Errorf("%s already exists; pass --yes to overwrite", path)
	}
	if !ok {
		cli.PrintInfo("Kept existing %s", path)
	}
	return ok, nil
}
