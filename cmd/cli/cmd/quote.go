// Package cmd - quote command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"parking-fee/core/fee"
	"parking-fee/internal/config"
	"parking-fee/internal/logging"
)

var (
	quoteTable   string
	quoteEntry   string
	quoteExit    string
	outputFormat string
	showDetails  bool
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Compute the fee for one stay",
	Long: `Price a stay between --entry and --exit against a price table.

Timestamps are RFC 3339 (2024-03-01T08:00:00-03:00) or Unix epoch milliseconds.

Examples:
  parking-fee quote --table standard --entry 2024-03-01T08:00:00Z --exit 2024-03-01T10:20:00Z
  parking-fee quote --table standard --entry 1709280000000 --exit 1709288400000 --format json`,
	Args: cobra.NoArgs,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVarP(&quoteTable, "table", "t", "", "price table id")
	quoteCmd.Flags().StringVar(&quoteEntry, "entry", "", "entry instant")
	quoteCmd.Flags().StringVar(&quoteExit, "exit", "", "exit instant")
	quoteCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json)")
	quoteCmd.Flags().BoolVarP(&showDetails, "details", "d", true, "show the per-tier breakdown")
	_ = quoteCmd.MarkFlagRequired("table")
	_ = quoteCmd.MarkFlagRequired("entry")
	_ = quoteCmd.MarkFlagRequired("exit")

	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	entry, err := fee.ParseInstant(quoteEntry)
	if err != nil {
		return fmt.Errorf("--entry: %w", err)
	}
	exit, err := fee.ParseInstant(quoteExit)
	if err != nil {
		return fmt.Errorf("--exit: %w", err)
	}

	registry, err := loadTables(ctx)
	if err != nil {
		return fmt.Errorf("failed to load price tables: %w", err)
	}
	table, err := registry.Get(ctx, quoteTable)
	if err != nil {
		return err
	}

	quote, err := fee.NewCalculator().Calculate(table, entry, exit)
	if err != nil {
		return err
	}
	logging.Debug("stay priced",
		zap.String("table_id", table.ID),
		zap.Int("billable_minutes", quote.BillableMinutes),
		zap.Stringer("amount", quote.Amount))

	cfg := config.Get()
	format := outputFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	details := showDetails
	if !cmd.Flags().Changed("details") {
		details = cfg.Output.ShowDetails
	}

	switch format {
	case "json":
		return printQuoteJSON(cmd.OutOrStdout(), quote)
	case "cli", "":
		printQuote(cmd.OutOrStdout(), table.Name, cfg.Pricing.Currency, quote, details)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func printQuoteJSON(w io.Writer, quote *fee.Quote) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(quote)
}

func printQuote(w io.Writer, tableName, currency string, quote *fee.Quote, details bool) {
	fmt.Fprintln(w, "┌─────────────────────────────────────────────────────────────────────────┐")
	fmt.Fprintf(w, "│ %-71s │\n", truncate("PARKING FEE - "+tableName, 71))
	fmt.Fprintln(w, "├─────────────────────────────────────────────────────────────────────────┤")
	fmt.Fprintf(w, "│ %-50s %20s │\n", "Tolerance", fmt.Sprintf("%d min", quote.ToleranceMinutes))

	if quote.WithinTolerance {
		fmt.Fprintf(w, "│ %-50s %20s │\n", "Billable time", "within tolerance")
	} else {
		fmt.Fprintf(w, "│ %-50s %20s │\n", "Billable time", fmt.Sprintf("%d min", quote.BillableMinutes))
	}

	if details {
		for _, line := range quote.Lines {
			fmt.Fprintf(w, "│   └─ %-46s %20s │\n",
				truncate(string(line.Tier)+": "+line.Formula, 46),
				line.Amount.StringFixed(2))
		}
	}

	fmt.Fprintln(w, "├─────────────────────────────────────────────────────────────────────────┤")
	fmt.Fprintf(w, "│ %-50s %20s │\n", "TOTAL", currency+" "+quote.Amount.StringFixed(2))
	fmt.Fprintln(w, "└─────────────────────────────────────────────────────────────────────────┘")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
