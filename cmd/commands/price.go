package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/auctionpost/auctionpost/internal/cli"
	"github.com/auctionpost/auctionpost/pkg/card"
	"github.com/auctionpost/auctionpost/pkg/price"
)

// PriceResult is the structured output of the price command
type PriceResult struct {
	Input   string `json:"input" yaml:"input"`
	Value   string `json:"value" yaml:"value"`
	Unit    string `json:"unit" yaml:"unit"`
	Display string `json:"display" yaml:"display"`
}

// NewPriceCommand creates the price command
func NewPriceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "price <crores>",
		Short: "Show how a sold price appears on the card",
		Long: `Format a price given in crores the way the card's price tag shows it.

Amounts below one crore are shown in lakhs. Input that is not a number
shows as 0.

Examples:
  auctionpost price 2        # ₹2 CR
  auctionpost price 0.5      # ₹50 LAKH
  auctionpost price 24.75    # ₹24.75 CR`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := price.Format(args[0])
			result := PriceResult{
				Input:   args[0],
				Value:   f.Value,
				Unit:    string(f.Unit),
				Display: card.RupeeSign + f.String(),
			}

			output, _ := cmd.Flags().GetString("output")
			if output != string(cli.FormatText) {
				return cli.OutputResults(cmd.OutOrStdout(), output, result)
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Display)
			return nil
		},
	}
}
