package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/auctionpost/auctionpost/internal/cli"
	"github.com/auctionpost/auctionpost/pkg/price"
	"github.com/auctionpost/auctionpost/pkg/search"
)

// PlayersResult is the structured output of the players command
type PlayersResult struct {
	Query   string       `json:"query" yaml:"query"`
	Count   int          `json:"count" yaml:"count"`
	Players []PlayerItem `json:"players" yaml:"players"`
}

// PlayerItem is one row of PlayersResult
type PlayerItem struct {
	ID           string  `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Country      string  `json:"country" yaml:"country"`
	Specialism   string  `json:"specialism" yaml:"specialism"`
	Age          int     `json:"age" yaml:"age"`
	ReservePrice float64 `json:"reserve_price_lakhs" yaml:"reserve_price_lakhs"`
}

// NewPlayersCommand creates the players command
func NewPlayersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "players [query...]",
		Short: "Search the player catalog",
		Long: `List players whose name, country or role contains the query.

With no query the first 10 players are shown, the same as the empty
search box in the interactive form.

Field filters narrow the list further:
  name:<text>       country:<text>     role:batter|bowler|ar|wk
  age:<30           base:>=200         (reserve price in lakhs)
Prefix a term with - or NOT to exclude it. Terms are ANDed unless joined
with OR, and combine left to right. AND, OR and NOT with nothing to join
are searched as plain words.
Quote values with spaces: name:"pat c".

Examples:
  # First ten players
  auctionpost players

  # Everyone from Australia
  auctionpost players australia

  # All bowlers as JSON
  auctionpost players bowler -o json

  # Indian bowlers under 30
  auctionpost players country:india role:bowler age:<30

  # Keepers or anyone from England
  auctionpost players role:wk OR country:england`,
		RunE: runPlayers,
	}
}

func runPlayers(cmd *cobra.Command, args []string) error {
	cc := cli.NewCommandContext(configPath)
	cat, err := cc.LoadCatalog()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	matches, err := search.Players(query, cat.Players())
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}

	result := PlayersResult{Query: query, Count: len(matches), Players: []PlayerItem{}}
	for _, p := range matches {
		result.Players = append(result.Players, PlayerItem{
			ID:           p.ID,
			Name:         p.DisplayName(),
			Country:      p.Country,
			Specialism:   string(p.Specialism),
			Age:          p.Age,
			ReservePrice: p.ReservePrice,
		})
	}

	output, _ := cmd.Flags().GetString("output")
	if output != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), output, result)
	}

	if len(matches) == 0 {
		cli.PrintInfo("No players match '%s'", query)
		return nil
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("ID", "NAME", "COUNTRY", "ROLE", "AGE", "BASE")
	for _, p := range result.Players {
		table.Row(
			p.ID,
			cli.TruncateString(p.Name, 28),
			p.Country,
			p.Specialism,
			strconv.Itoa(p.Age),
			price.FormatReserve(p.ReservePrice),
		)
	}
	table.Flush()
	return nil
}
