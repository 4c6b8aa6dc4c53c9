package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diewo77/invoicedesk/internal/models"
	"github.com/diewo77/invoicedesk/internal/screens"
)

type companyFlags struct {
	name, email, phone, website        string
	address, city, postalCode, country string
	vat, ico, bankAccount, iban        string
}

func (f *companyFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "Company name")
	fl.StringVar(&f.email, "email", "", "E-mail address")
	fl.StringVar(&f.phone, "phone", "", "Phone number")
	fl.StringVar(&f.website, "website", "", "Website")
	fl.StringVar(&f.address, "address", "", "Street address")
	fl.StringVar(&f.city, "city", "", "City")
	fl.StringVar(&f.postalCode, "postal-code", "", "Postal code")
	fl.StringVar(&f.country, "country", "", "ISO country code")
	fl.StringVar(&f.vat, "vat", "", "VAT number")
	fl.StringVar(&f.ico, "ico", "", "Company registration number (IČO)")
	fl.StringVar(&f.bankAccount, "bank-account", "", "Bank account number")
	fl.StringVar(&f.iban, "iban", "", "IBAN")
}

// apply copies the flags the user set onto c.
func (f *companyFlags) apply(cmd *cobra.Command, c *models.CompanySettings) {
	set := cmd.Flags().Changed
	copyIf := func(flag string, dst *string, v string) {
		if set(flag) {
			*dst = v
		}
	}
	copyIf("name", &c.Name, f.name)
	copyIf("email", &c.Email, f.email)
	copyIf("phone", &c.Phone, f.phone)
	copyIf("website", &c.Website, f.website)
	copyIf("address", &c.Address, f.address)
	copyIf("city", &c.City, f.city)
	copyIf("postal-code", &c.PostalCode, f.postalCode)
	copyIf("vat", &c.VATNumber, f.vat)
	copyIf("ico", &c.ICONumber, f.ico)
	copyIf("bank-account", &c.BankAccount, f.bankAccount)
	copyIf("iban", &c.IBAN, f.iban)
	if set("country") {
		c.Country = strings.ToUpper(f.country)
	}
}

func (c *cli) companyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Show or change the issuing company",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the issuing company",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			cs := screens.NewCompanyScreen(c.store, c.deps(cmd, false))
			if err := cs.Refresh(ctx); err != nil {
				return err
			}
			co, ok := cs.Current()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("(no company configured)"))
				return nil
			}
			t := newTable("FIELD", "VALUE")
			t.add("Name", co.Name)
			t.add("Address", strings.ReplaceAll(co.FullAddress(), "\n", ", "))
			t.add("E-mail", co.Email)
			t.add("Phone", co.Phone)
			t.add("VAT", co.VATNumber)
			t.add("IČO", co.ICONumber)
			t.add("Account", co.BankAccount)
			t.add("IBAN", co.IBAN)
			t.render(cmd.OutOrStdout())
			return nil
		},
	}

	var flags companyFlags
	set := &cobra.Command{
		Use:   "set",
		Short: "Change the issuing company, creating it when missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			cs := screens.NewCompanyScreen(c.store, c.deps(cmd, false))
			if err := cs.Refresh(ctx); err != nil {
				return err
			}
			cs.Open()
			flags.apply(cmd, cs.Editor.Draft())
			_, err := cs.Editor.Save(ctx)
			return c.report(cmd, err)
		},
	}
	flags.bind(set)

	cmd.AddCommand(show, set)
	return cmd
}
