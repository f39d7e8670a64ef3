package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"servicios/internal/core"
	"servicios/internal/services"
	"servicios/internal/store"
)

type storeRunner func(cmd *cobra.Command, fn func(context.Context, store.Store) error) error

func newSummaryCmd(withStore storeRunner) *cobra.Command {
	var user, month string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print income, expenses and balance for one month",
		Example: `  servicios-cli summary --user demo
  servicios-cli summary --user demo --month 2024-06`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := core.CurrentMonth(time.Now())
			if month != "" {
				parsed, err := core.ParseMonth(month)
				if err != nil {
					return fmt.Errorf("invalid --month %q, use YYYY-MM: %w", month, err)
				}
				m = parsed
			}
			return withStore(cmd, func(ctx context.Context, st store.Store) error {
				view, err := services.NewReportService(st).Finances(ctx, user, m)
				if err != nil {
					return err
				}
				return printSummary(cmd.OutOrStdout(), view)
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user id whose records are reported (required)")
	cmd.Flags().StringVar(&month, "month", "", "month as YYYY-MM (default: current month)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newClientsCmd(withStore storeRunner) *cobra.Command {
	var user, term string

	cmd := &cobra.Command{
		Use:   "clients",
		Short: "List clients with their service count and billed total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(ctx context.Context, st store.Store) error {
				view, err := services.NewReportService(st).Clients(ctx, user, term)
				if err != nil {
					return err
				}
				return printClients(cmd.OutOrStdout(), view)
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user id whose clients are listed (required)")
	cmd.Flags().StringVarP(&term, "search", "q", "", "case-insensitive name filter")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func printSummary(out io.Writer, v services.FinanceView) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t\n", v.Month.Label())
	fmt.Fprintf(tw, "Cobrado\t%s\t\n", v.Summary.TotalPaid.Display())
	fmt.Fprintf(tw, "Pendiente\t%s\t\n", v.Summary.TotalPending.Display())
	fmt.Fprintf(tw, "Gastos\t%s\t\n", v.Summary.TotalExpenses.Display())
	fmt.Fprintf(tw, "Balance\t%s\t\n", v.Summary.Balance.Display())
	fmt.Fprintf(tw, "Servicios\t%d\t\n", len(v.Services))
	for _, t := range v.ByType {
		fmt.Fprintf(tw, "  %s (%d)\t%s\t\n", t.Type.Label(), t.Count, t.Total.Display())
	}
	return tw.Flush()
}

func printClients(out io.Writer, v services.ClientsView) error {
	if len(v.Visible) == 0 {
		_, err := fmt.Fprintln(out, "No clients found.")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NOMBRE\tTELÉFONO\tSERVICIOS\tTOTAL\tÚLTIMO")
	for _, c := range v.Visible {
		last := "-"
		if d, ok := c.LastService(); ok {
			last = d.Display()
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			c.Name, dash(c.Phone), c.TotalServices, c.TotalAmount.Display(), last)
	}
	fmt.Fprintf(tw, "TOTAL (%d clientes)\t\t%d\t%s\t\n",
		len(v.Rollup.Clients), v.Rollup.TotalServices, v.Rollup.TotalAmount.Display())
	return tw.Flush()
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
