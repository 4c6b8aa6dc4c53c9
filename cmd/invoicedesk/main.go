// Command invoicedesk manages products, clients and invoices from the terminal.
package main

import (
	"fmt"
	"os"
)

func main() {
	c := newCLI()
	if err := c.rootCmd().Execute(); err != nil {
		c.log.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
