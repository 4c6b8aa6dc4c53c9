package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/diewo77/invoicedesk/internal/models"
	"github.com/diewo77/invoicedesk/internal/screens"
)

type clientFlags struct {
	name, clientType, country    string
	email, phone, address, notes string
	nip, ico, vat                string
}

func (f *clientFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Client name")
	cmd.Flags().StringVar(&f.clientType, "type", "", "company or individual")
	cmd.Flags().StringVar(&f.country, "country", "", "ISO country code, e.g. CZ or PL")
	cmd.Flags().StringVar(&f.email, "email", "", "E-mail address invoices are sent to")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&f.address, "address", "", "Postal address")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Notes")
	cmd.Flags().StringVar(&f.nip, "nip", "", "Polish NIP")
	cmd.Flags().StringVar(&f.ico, "ico", "", "Czech IČO")
	cmd.Flags().StringVar(&f.vat, "vat", "", "VAT number (DIČ in CZ)")
}

// apply copies the flags the user set onto cl.
func (f *clientFlags) apply(cmd *cobra.Command, cl *models.Client) {
	set := cmd.Flags().Changed
	copyIf := func(flag string, dst *string, v string) {
		if set(flag) {
			*dst = v
		}
	}
	copyIf("name", &cl.Name, f.name)
	copyIf("email", &cl.Email, f.email)
	copyIf("phone", &cl.Phone, f.phone)
	copyIf("address", &cl.Address, f.address)
	copyIf("notes", &cl.Notes, f.notes)
	copyIf("nip", &cl.NIPNumber, f.nip)
	copyIf("ico", &cl.ICONumber, f.ico)
	copyIf("vat", &cl.VATNumber, f.vat)
	if set("country") {
		cl.Country = strings.ToUpper(f.country)
	}
	if set("type") {
		cl.Type = models.ClientType(f.clientType)
	}
}

func (c *cli) clientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clients",
		Aliases: []string{"client"},
		Short:   "List and edit clients",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List clients with their tax identifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			cs := screens.NewClientScreen(c.store, c.deps(cmd, false))
			if err := cs.Refresh(ctx); err != nil {
				return err
			}
			cs.SetQuery(search)
			t := newTable("ID", "NAME", "COUNTRY", "TAX ID", "EMAIL")
			for _, r := range cs.Rows() {
				t.add(itoa(r.ID), r.Name, r.Country, r.TaxID, r.Email)
			}
			t.render(cmd.OutOrStdout())
			return nil
		},
	}
	list.Flags().StringVarP(&search, "search", "s", "", "Filter by name, e-mail or tax identifier")

	var addFlags clientFlags
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			cs := screens.NewClientScreen(c.store, c.deps(cmd, false))
			cs.Editor.OpenNew()
			addFlags.apply(cmd, cs.Editor.Draft())
			_, err := cs.Editor.Save(ctx)
			return c.report(cmd, err)
		},
	}
	addFlags.bind(add)

	var editFlags clientFlags
	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := c.context(cmd)
			defer cancel()
			cs := screens.NewClientScreen(c.store, c.deps(cmd, false))
			if err := cs.Refresh(ctx); err != nil {
				return err
			}
			if err := cs.Edit(id); err != nil {
				return err
			}
			editFlags.apply(cmd, cs.Editor.Draft())
			_, err = cs.Editor.Save(ctx)
			return c.report(cmd, err)
		},
	}
	editFlags.bind(edit)

	var yes bool
	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a client without invoices",
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
			cs := screens.NewClientScreen(c.store, c.deps(cmd, yes))
			if err := cs.Refresh(ctx); err != nil {
				return err
			}
			_, err = cs.Delete(ctx, id)
			return err
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	cmd.AddCommand(list, add, edit, del)
	return cmd
}
