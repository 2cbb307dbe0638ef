package monitor

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/marcus/freeform/internal/models"
)

// copyToClipboard copies text to the system clipboard.
// Uses pbcopy on macOS, xclip on Linux, clip.exe on Windows.
func copyToClipboard(text string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	case "linux":
		// Try xclip first, fall back to xsel
		if _, err := exec.LookPath("xclip"); err == nil {
			cmd = exec.Command("xclip", "-selection", "clipboard")
		} else if _, err := exec.LookPath("xsel"); err == nil {
			cmd = exec.Command("xsel", "--clipboard", "--input")
		} else {
			return fmt.Errorf("no clipboard tool found (install xclip or xsel)")
		}
	case "windows":
		cmd = exec.Command("clip.exe")
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// formatCardsAsMarkdown renders cards as a markdown checklist under the
// lane title. Disabled cards are checked off; folders list their contents
// one level down.
func formatCardsAsMarkdown(title string, cards []models.Item, folders map[string][]models.Item) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", title)
	for _, c := range cards {
		writeCardLine(&sb, c, "")
		if c.IsContainer() {
			for _, child := range folders[c.ID] {
				writeCardLine(&sb, child, "  ")
			}
		}
	}
	return sb.String()
}

func writeCardLine(sb *strings.Builder, c models.Item, indent string) {
	box := "[ ]"
	if c.Disabled {
		box = "[x]"
	}
	label := c.Label
	if c.IsContainer() {
		label += "/"
	}
	fmt.Fprintf(sb, "%s- %s %s\n", indent, box, label)
}
