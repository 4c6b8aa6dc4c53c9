package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/diewo77/invoicedesk/internal/services"
)

func (c *cli) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show record counts, revenue and outstanding amounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			s, err := services.NewInvoiceService(c.store, nil).Summary(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			counts := newTable("PRODUCTS", "CLIENTS", "INVOICES", "UNPAID", "OVERDUE")
			counts.add(
				strconv.Itoa(s.Products),
				strconv.Itoa(s.Clients),
				strconv.Itoa(s.Invoices),
				strconv.Itoa(s.Unpaid),
				strconv.Itoa(s.Overdue),
			)
			counts.render(out)

			printAmounts(out, "REVENUE", s.Revenue)
			printAmounts(out, "OUTSTANDING", s.Outstanding)

			if len(s.Recent) > 0 {
				fmt.Fprintln(out)
				recent := newTable("NUMBER", "ISSUED", "STATUS", "TOTAL")
				for _, inv := range s.Recent {
					recent.add(inv.Number, inv.IssueDate.Format(dateLayout), string(inv.Status),
						inv.TotalGross.StringFixed(2)+" "+inv.Currency)
				}
				recent.render(out)
			}
			return nil
		},
	}
}

func printAmounts(w io.Writer, title string, amounts []services.Amount) {
	if len(amounts) == 0 {
		return
	}
	fmt.Fprintln(w)
	t := newTable(title, "CURRENCY")
	for _, a := range amounts {
		t.add(a.Total.StringFixed(2), a.Currency)
	}
	t.render(w)
}
