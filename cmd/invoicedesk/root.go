package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/diewo77/invoicedesk/i18n"
	"github.com/diewo77/invoicedesk/internal/config"
	"github.com/diewo77/invoicedesk/internal/db"
	"github.com/diewo77/invoicedesk/internal/export"
	"github.com/diewo77/invoicedesk/internal/logger"
	"github.com/diewo77/invoicedesk/internal/notify"
	"github.com/diewo77/invoicedesk/internal/screens"
	"github.com/diewo77/invoicedesk/internal/store"
)

var version = "dev"

// errNeedsConfirmation is returned when a delete cannot be confirmed.
var errNeedsConfirmation = errors.New("confirmation required: stdin is not a terminal, pass --yes")

// cli carries what every command needs. The store is opened lazily in
// PersistentPreRunE unless a test injected one.
type cli struct {
	configPath string
	timeout    time.Duration
	lang       string

	cfg   *config.Config
	log   zerolog.Logger
	store store.Store

	in          io.Reader
	interactive func() bool
}

func newCLI() *cli {
	return &cli{
		in:          os.Stdin,
		interactive: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		log:         zerolog.Nop(),
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "invoicedesk",
		Short: "Manage products, clients and invoices",
		Long: `invoicedesk keeps the product catalogue, the client list and the invoices
of a small business, and exports invoices as PDF, XLSX, CSV, JSON or XML.

Configuration is read from the YAML file given by --config (or
$INVOICEDESK_CONFIG) and from environment variables, a .env file included.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 30*time.Second, "Timeout for each command")
	root.PersistentFlags().StringVar(&c.lang, "lang", "", "Message language (en, cs, pl); defaults to $LANG")

	root.AddCommand(
		c.productsCmd(),
		c.clientsCmd(),
		c.invoicesCmd(),
		c.companyCmd(),
		c.summaryCmd(),
		c.migrateCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	if c.lang == "" {
		c.lang = i18n.DetectLanguage(os.Getenv("LANG"))
	}
	if c.cfg == nil {
		_ = godotenv.Load()
		cfg, err := config.Load(c.configPath)
		if err != nil {
			return err
		}
		if err := logger.Setup(cfg.Log.Logger()); err != nil {
			return err
		}
		c.cfg = cfg
		c.log = logger.WithComponent("cli")
	}
	if c.store != nil || cmd.Name() == "migrate" {
		return nil
	}
	conn, err := db.Setup(c.cfg, c.log)
	if err != nil {
		return err
	}
	c.store = store.NewGorm(conn)
	return nil
}

func (c *cli) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), c.timeout)
}

// deps builds screen dependencies printing notifications to stderr.
func (c *cli) deps(cmd *cobra.Command, yes bool) screens.Deps {
	return screens.Deps{
		Notifier:       notify.Multi(notify.NewConsole(cmd.ErrOrStderr()), notify.NewLog(c.log)),
		Confirmer:      c.confirmer(cmd, yes),
		Log:            c.log,
		Lang:           c.lang,
		DefaultVATRate: c.cfg.App.VATRate(),
		DefaultCountry: c.cfg.App.DefaultCountry,
		Currency:       c.cfg.App.Currency,
		PaymentDays:    c.cfg.App.PaymentDays,
	}
}

func (c *cli) dispatcher(deps screens.Deps) *export.Dispatcher {
	d := export.NewDispatcher(export.DefaultRegistry(), deps.Notifier, c.log)
	d.Lang = c.lang
	if c.cfg.App.Template != "" {
		d.Template = c.cfg.App.Template
	}
	return d
}

// confirmer asks on the terminal, or approves when --yes was given.
func (c *cli) confirmer(cmd *cobra.Command, yes bool) screens.Confirmer {
	if yes {
		return screens.AlwaysConfirm
	}
	return screens.ConfirmFunc(func(ctx context.Context, prompt string) (bool, error) {
		if !c.interactive() {
			return false, errNeedsConfirmation
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N] ", prompt)
		answer, err := bufio.NewReader(c.in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes", nil
	})
}

// checkConfirmable fails early when a delete could never be confirmed.
func (c *cli) checkConfirmable(yes bool) error {
	if !yes && !c.interactive() {
		return errNeedsConfirmation
	}
	return nil
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}

// report prints the violations of a ValidationError and passes err through.
func (c *cli) report(cmd *cobra.Command, err error) error {
	var verr *screens.ValidationError
	if errors.As(err, &verr) {
		for _, field := range verr.Violations.Fields() {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", field, i18n.T(c.lang, verr.Violations[field]))
		}
	}
	return err
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }
