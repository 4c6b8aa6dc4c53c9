package notify

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// Console prints notifications to a terminal stream.
type Console struct {
	w io.Writer
}

// NewConsole returns a notifier writing to w, usually os.Stderr.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Success(msg string) {
	fmt.Fprintf(c.w, "%s %s\n", successStyle.Render("✓"), msg)
}

func (c *Console) Error(msg string) {
	fmt.Fprintf(c.w, "%s %s\n", errorStyle.Render("✗"), msg)
}
