package main

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/diewo77/invoicedesk/internal/models"
	"github.com/diewo77/invoicedesk/internal/screens"
)

type productFlags struct {
	code, name, description string
	price, vat              string
}

func (f *productFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.code, "code", "", "Product code")
	cmd.Flags().StringVar(&f.name, "name", "", "Product name")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.price, "price", "", "Unit price without VAT")
	cmd.Flags().StringVar(&f.vat, "vat", "", "VAT rate in percent")
}

// apply copies the flags the user set onto p.
func (f *productFlags) apply(cmd *cobra.Command, p *models.Product) error {
	set := cmd.Flags().Changed
	if set("code") {
		p.Code = f.code
	}
	if set("name") {
		p.Name = f.name
	}
	if set("description") {
		p.Description = f.description
	}
	if set("price") {
		d, err := decimal.NewFromString(f.price)
		if err != nil {
			return err
		}
		p.UnitPrice = d
	}
	if set("vat") {
		d, err := decimal.NewFromString(f.vat)
		if err != nil {
			return err
		}
		p.VATRate = d
	}
	return nil
}

func (c *cli) productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "List and edit products",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			ps := screens.NewProductScreen(c.store, c.deps(cmd, false))
			if err := ps.Refresh(ctx); err != nil {
				return err
			}
			ps.SetQuery(search)
			t := newTable("ID", "CODE", "NAME", "PRICE", "VAT %")
			for _, p := range ps.Visible() {
				t.add(itoa(p.ID), p.Code, p.Name, p.UnitPrice.StringFixed(2), p.VATRate.String())
			}
			t.render(cmd.OutOrStdout())
			return nil
		},
	}
	list.Flags().StringVarP(&search, "search", "s", "", "Filter by code, name or description")

	var addFlags productFlags
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			ps := screens.NewProductScreen(c.store, c.deps(cmd, false))
			ps.Editor.OpenNew()
			if err := addFlags.apply(cmd, ps.Editor.Draft()); err != nil {
				return err
			}
			_, err := ps.Editor.Save(ctx)
			return c.report(cmd, err)
		},
	}
	addFlags.bind(add)

	var editFlags productFlags
	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := c.context(cmd)
			defer cancel()
			ps := screens.NewProductScreen(c.store, c.deps(cmd, false))
			if err := ps.Refresh(ctx); err != nil {
				return err
			}
			if err := ps.Edit(id); err != nil {
				return err
			}
			if err := editFlags.apply(cmd, ps.Editor.Draft()); err != nil {
				return err
			}
			_, err = ps.Editor.Save(ctx)
			return c.report(cmd, err)
		},
	}
	editFlags.bind(edit)

	var yes bool
	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.checkConfirmable(yes); err != nil {
				return err
			}
			ctx, cancel := c.context(cmd)
			defer cancel()
			ps := screens.NewProductScreen(c.store, c.deps(cmd, yes))
			if err := ps.Refresh(ctx); err != nil {
				return err
			}
			_, err = ps.Delete(ctx, id)
			return err
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	cmd.AddCommand(list, add, edit, del)
	return cmd
}
