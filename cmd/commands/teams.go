package commands

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/auctionpost/auctionpost/internal/cli"
	"github.com/auctionpost/auctionpost/internal/logging"
	"github.com/auctionpost/auctionpost/pkg/models"
	"github.com/auctionpost/auctionpost/pkg/render"
)

const logoProbeLimit = 4

// TeamsResult is the structured output of the teams command
type TeamsResult struct {
	Count int        `json:"count" yaml:"count"`
	Teams []TeamItem `json:"teams" yaml:"teams"`
}

// TeamItem is one row of TeamsResult. Logo is only set by --check-logos.
type TeamItem struct {
	ID        string `json:"id" yaml:"id"`
	ShortName string `json:"short_name" yaml:"short_name"`
	Name      string `json:"name" yaml:"name"`
	Primary   string `json:"primary_color" yaml:"primary_color"`
	Text      string `json:"text_color" yaml:"text_color"`
	Pattern   string `json:"bg_pattern" yaml:"bg_pattern"`
	Logo      string `json:"logo,omitempty" yaml:"logo,omitempty"`
	LogoError string `json:"logo_error,omitempty" yaml:"logo_error,omitempty"`
}

var teamsCheckLogos bool

// newLogoSource is swapped out in tests
var newLogoSource = func(timeout time.Duration, logger *log.Logger) render.LogoSource {
	return render.NewFetcher(timeout, logger)
}

// NewTeamsCommand creates the teams command
func NewTeamsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List the franchises",
		Long: `List the ten franchises with their colors and background pattern.

With --check-logos every logo is downloaded and decoded, and teams whose
card would fall back to the short name are reported.

Examples:
  auctionpost teams
  auctionpost teams --check-logos
  auctionpost teams -o yaml`,
		Args: cobra.NoArgs,
		RunE: runTeams,
	}

	cmd.Flags().BoolVar(&teamsCheckLogos, "check-logos", false, "Download every logo and report failures")

	return cmd
}

func runTeams(cmd *cobra.Command, args []string) error {
	cc := cli.NewCommandContext(configPath)
	settings, err := cc.LoadSettings()
	if err != nil {
		return err
	}
	cat, err := cc.LoadCatalog()
	if err != nil {
		return err
	}

	teams := cat.Teams()
	result := TeamsResult{Count: len(teams)}
	for _, t := range teams {
		result.Teams = append(result.Teams, TeamItem{
			ID:        t.ID,
			ShortName: t.ShortName,
			Name:      t.Name,
			Primary:   t.PrimaryColor,
			Text:      t.TextColor,
			Pattern:   string(t.BgPattern),
		})
	}

	if teamsCheckLogos {
		logger := logging.ForCLI(settings.Log)
		src := newLogoSource(settings.Render.LogoTimeout, logger)
		if err := checkLogos(cmd.Context(), src, teams, result.Teams); err != nil {
			return err
		}
	}

	output, _ := cmd.Flags().GetString("output")
	if output != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), output, result)
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	columns := []string{"ID", "SHORT", "NAME", "PATTERN"}
	if teamsCheckLogos {
		columns = append(columns, "LOGO")
	}
	table.Header(append(columns, "COLORS")...)
	for i, item := range result.Teams {
		row := []string{item.ID, item.ShortName, cli.TruncateString(item.Name, 30), item.Pattern}
		if teamsCheckLogos {
			row = append(row, item.Logo)
		}
		// ANSI swatch goes last so it cannot skew tab alignment
		row = append(row, cli.Swatch(teams[i].ShortName, teams[i].PrimaryColor, teams[i].TextColor))
		table.Row(row...)
	}
	table.Flush()

	if teamsCheckLogos {
		failed := 0
		for _, item := range result.Teams {
			if item.LogoError != "" {
				failed++
				cli.PrintWarning("%s logo unavailable (%s), the card will show %s", item.ShortName, item.LogoError, item.ShortName)
			}
		}
		if failed == 0 {
			cli.PrintSuccess("All %d logos loaded", len(teams))
		}
	}
	return nil
}

// checkLogos probes every logo concurrently and records the outcome in
// items, which must be index-aligned with teams. A failed probe is a
// result, not an error; only cancellation aborts.
func checkLogos(ctx context.Context, src render.LogoSource, teams []models.Team, items []TeamItem) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(logoProbeLimit)

	for i, t := range teams {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := src.Logo(ctx, t.LogoURL); err != nil {
				items[i].Logo = "fallback"
				items[i].LogoError = err.Error()
				return nil
			}
			items[i].Logo = "ok"
			return nil
		})
	}
	return g.Wait()
}
