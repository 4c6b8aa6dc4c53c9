package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/diewo77/invoicedesk/internal/export"
	"github.com/diewo77/invoicedesk/internal/models"
	"github.com/diewo77/invoicedesk/internal/screens"
)

const dateLayout = "2006-01-02"

// invoiceScreen returns a loaded invoice screen.
func (c *cli) invoiceScreen(cmd *cobra.Command, yes bool) (*screens.InvoiceScreen, error) {
	deps := c.deps(cmd, yes)
	is := screens.NewInvoiceScreen(c.store, c.dispatcher(deps), deps)
	ctx, cancel := c.context(cmd)
	defer cancel()
	if err := is.Refresh(ctx); err != nil {
		return nil, err
	}
	return is, nil
}

func (c *cli) invoicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invoices",
		Aliases: []string{"invoice"},
		Short:   "Issue, settle and export invoices",
	}
	cmd.AddCommand(
		c.invoiceListCmd(),
		c.invoiceCreateCmd(),
		c.invoicePaidCmd(),
		c.invoiceDeleteCmd(),
		c.invoiceExportCmd(),
		c.invoiceEmailCmd(),
	)
	return cmd
}

func (c *cli) invoiceListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List invoices, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			is, err := c.invoiceScreen(cmd, false)
			if err != nil {
				return err
			}
			names := map[uint]string{}
			for _, cl := range is.Clients() {
				names[cl.ID] = cl.Name
			}
			t := newTable("ID", "NUMBER", "CLIENT", "ISSUED", "DUE", "STATUS", "TOTAL")
			for _, inv := range is.Items() {
				client, ok := names[inv.ClientID]
				if !ok {
					client = fmt.Sprintf("#%d", inv.ClientID)
				}
				t.add(
					itoa(inv.ID),
					inv.Number,
					client,
					inv.IssueDate.Format(dateLayout),
					inv.DueDate.Format(dateLayout),
					string(inv.Status),
					inv.TotalGross.StringFixed(2)+" "+inv.Currency,
				)
			}
			t.render(cmd.OutOrStdout())
			return nil
		},
	}
}

// parseProductLine parses PRODUCT_ID[:QTY].
func parseProductLine(s string) (uint, decimal.Decimal, error) {
	idPart, qtyPart, found := strings.Cut(s, ":")
	id, err := parseID(idPart)
	if err != nil {
		return 0, decimal.Decimal{}, err
	}
	qty := decimal.NewFromInt(1)
	if found {
		if qty, err = decimal.NewFromString(qtyPart); err != nil {
			return 0, decimal.Decimal{}, fmt.Errorf("quantity %q: %w", qtyPart, err)
		}
	}
	return id, qty, nil
}

// parseCustomLine parses DESCRIPTION:QTY:PRICE[:VAT].
func parseCustomLine(s string, defaultVAT decimal.Decimal) (models.InvoiceItem, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return models.InvoiceItem{}, fmt.Errorf("line %q: want DESCRIPTION:QTY:PRICE[:VAT]", s)
	}
	nums := make([]decimal.Decimal, 0, 3)
	for _, p := range parts[1:] {
		d, err := decimal.NewFromString(p)
		if err != nil {
			return models.InvoiceItem{}, fmt.Errorf("line %q: %w", s, err)
		}
		nums = append(nums, d)
	}
	vat := defaultVAT
	if len(nums) == 3 {
		vat = nums[2]
	}
	return models.InvoiceItem{Description: parts[0], Quantity: nums[0], UnitPrice: nums[1], VATRate: vat}, nil
}

func (c *cli) invoiceCreateCmd() *cobra.Command {
	var (
		clientID   uint
		products   []string
		lines      []string
		issue, due string
		currency   string
		notes      string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Issue an invoice",
		Example: `  invoicedesk invoices create --client 3 --product 1:2 --product 4
  invoicedesk invoices create --client 3 --line "Consulting:8:1200:21" --due 2025-07-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			is, err := c.invoiceScreen(cmd, false)
			if err != nil {
				return err
			}
			ctx, cancel := c.context(cmd)
			defer cancel()

			is.Editor.OpenNew()
			d := is.Editor.Draft()
			d.ClientID = clientID
			d.Notes = notes
			if currency != "" {
				d.Currency = strings.ToUpper(currency)
			}
			if issue != "" {
				t, err := time.Parse(dateLayout, issue)
				if err != nil {
					return fmt.Errorf("--issue: %w", err)
				}
				d.IssueDate = t
				d.DueDate = t.AddDate(0, 0, c.cfg.App.PaymentDays)
			}
			if due != "" {
				t, err := time.Parse(dateLayout, due)
				if err != nil {
					return fmt.Errorf("--due: %w", err)
				}
				d.DueDate = t
			}
			for _, arg := range products {
				id, qty, err := parseProductLine(arg)
				if err != nil {
					return err
				}
				p, err := c.store.GetProduct(ctx, id)
				if err != nil {
					return err
				}
				d.AddProductLine(p, qty)
			}
			for _, arg := range lines {
				item, err := parseCustomLine(arg, c.cfg.App.VATRate())
				if err != nil {
					return err
				}
				d.Lines = append(d.Lines, item)
			}

			saved, err := is.Editor.Save(ctx)
			if err != nil {
				return c.report(cmd, err)
			}
			if inv, ok := is.Find(saved.ID); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s %s\n", inv.Number, inv.TotalGross.StringFixed(2), inv.Currency)
			}
			return nil
		},
	}
	cmd.Flags().UintVar(&clientID, "client", 0, "Client ID")
	cmd.Flags().StringArrayVar(&products, "product", nil, "Product line as ID[:QTY], repeatable")
	cmd.Flags().StringArrayVar(&lines, "line", nil, "Custom line as DESCRIPTION:QTY:PRICE[:VAT], repeatable")
	cmd.Flags().StringVar(&issue, "issue", "", "Issue date (YYYY-MM-DD), default today")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD), default issue date plus the payment term")
	cmd.Flags().StringVar(&currency, "currency", "", "Currency code")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes printed on the invoice")
	return cmd
}

func (c *cli) invoicePaidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paid ID",
		Short: "Mark an invoice as paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			is, err := c.invoiceScreen(cmd, false)
			if err != nil {
				return err
			}
			ctx, cancel := c.context(cmd)
			defer cancel()
			_, err = is.MarkPaid(ctx, id)
			return err
		},
	}
}

func (c *cli) invoiceDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.checkConfirmable(yes); err != nil {
				return err
			}
			is, err := c.invoiceScreen(cmd, yes)
			if err != nil {
				return err
			}
			ctx, cancel := c.context(cmd)
			defer cancel()
			_, err = is.Delete(ctx, id)
			return err
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (c *cli) invoiceExportCmd() *cobra.Command {
	var format, outDir string
	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Write an invoice as pdf, xlsx, csv, json or xml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				f = export.Format(format)
			}
			is, err := c.invoiceScreen(cmd, false)
			if err != nil {
				return err
			}
			ctx, cancel := c.context(cmd)
			defer cancel()
			artifact, err := is.Export(ctx, id, f)
			if err != nil {
				return err
			}

			if outDir == "" {
				outDir = c.cfg.App.ExportDir
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", outDir, err)
			}
			path := filepath.Join(outDir, artifact.Filename)
			if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatPDF), "pdf, xlsx, csv, json or xml")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: export_dir from the config)")
	return cmd
}

func (c *cli) invoiceEmailCmd() *cobra.Command {
	var open bool
	cmd := &cobra.Command{
		Use:   "email ID",
		Short: "Compose the invoice e-mail",
		Long: `Compose the e-mail for an invoice. With --open the mailto: link is handed
to the desktop mail program, otherwise it is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			deps := c.deps(cmd, false)
			d := c.dispatcher(deps)
			if open {
				d.Opener = export.BrowserOpener{}
			} else {
				d.Opener = export.PrintOpener{W: cmd.OutOrStdout()}
			}
			is := screens.NewInvoiceScreen(c.store, d, deps)
			ctx, cancel := c.context(cmd)
			defer cancel()
			if err := is.Refresh(ctx); err != nil {
				return err
			}
			_, err = is.Email(ctx, id)
			return err
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "Open the message in the default mail program")
	return cmd
}
