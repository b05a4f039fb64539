// Package cmd - tables command
package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"parking-fee/core/schedule"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the loaded price tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		registry, err := loadTables(ctx)
		if err != nil {
			return fmt.Errorf("failed to load price tables: %w", err)
		}
		tables, err := registry.List(ctx)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tTOLERANCE\tUNTIL\tRECURRING\tMAX CHARGE")
		for _, s := range tables {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				s.ID, s.Name, orDash(s.InitialTolerance), describeUntil(s), describeRecurring(s), describeMaxCharge(s))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}

func describeUntil(s *schedule.Schedule) string {
	if s.Until == nil {
		return "-"
	}
	return fmt.Sprintf("%s up to %s", s.Until.Value, s.Until.Duration)
}

func describeRecurring(s *schedule.Schedule) string {
	if s.Recurring == nil {
		return "-"
	}
	return fmt.Sprintf("%s every %s from %s", s.Recurring.Value, s.Recurring.Every, s.Recurring.From)
}

func describeMaxCharge(s *schedule.Schedule) string {
	if s.MaxCharge == nil {
		return "-"
	}
	return fmt.Sprintf("%s within %s", s.MaxCharge.Value, s.MaxCharge.Period)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
