package export

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// Mail is a composed message handed to the user's mail program.
type Mail struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// URL returns the mailto: link for the message.
func (m Mail) URL() string {
	q := "subject=" + mailtoEscape(m.Subject) + "&body=" + mailtoEscape(m.Body)
	return "mailto:" + url.PathEscape(m.To) + "?" + q
}

// mailtoEscape percent-encodes spaces too; mail clients do not decode "+".
func mailtoEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// composeMail fills the fixed invoice message for doc.
func composeMail(doc Document) Mail {
	_, _, gross := doc.Totals()
	body := strings.Join([]string{
		doc.tf("email.greeting", doc.Client.Name),
		"",
		doc.tf("email.body", doc.Invoice.Number, gross.StringFixed(2), doc.Currency(), doc.date(doc.Invoice.DueDate)),
		"",
		doc.label("email.closing"),
		doc.Company.Name,
	}, "\n")
	return Mail{
		To:      doc.Client.Email,
		Subject: doc.tf("email.subject", doc.Invoice.Number),
		Body:    body,
	}
}

// Opener hands a mailto: link to whatever handles it.
type Opener interface {
	Open(ctx context.Context, target string) error
}

// BrowserOpener opens links with the desktop's default handler.
type BrowserOpener struct{}

func (BrowserOpener) Open(ctx context.Context, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", cmd.Path, err)
	}
	// the handler may keep running; reap it without blocking the caller
	go func() { _ = cmd.Wait() }()
	return nil
}

// PrintOpener writes the link to w instead of opening it.
type PrintOpener struct {
	W io.Writer
}

func (p PrintOpener) Open(_ context.Context, target string) error {
	_, err := fmt.Fprintln(p.W, target)
	return err
}
