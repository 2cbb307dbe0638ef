package output

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Error prints a formatted error to stderr.
func Error(format string, args ...any) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("ERROR: ")+fmt.Sprintf(format, args...))
}

// Warning prints a formatted warning to stderr.
func Warning(format string, args ...any) {
	fmt.Fprintln(os.Stderr, warningStyle.Render("WARNING: ")+fmt.Sprintf(format, args...))
}

// Success prints a formatted confirmation to stdout.
func Success(format string, args ...any) {
	fmt.Fprintln(os.Stdout, successStyle.Render(fmt.Sprintf(format, args...)))
}
