package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var asciiLogo = []string{
	`████████╗███████╗ ██████╗██╗  ██╗███╗   ███╗ ██████╗  ██████╗ ██████╗`,
	`╚══██╔══╝██╔════╝██╔════╝██║  ██║████╗ ████║██╔═══██╗██╔═══██╗██╔══██╗`,
	`   ██║   █████╗  ██║     ███████║██╔████╔██║██║   ██║██║   ██║██║  ██║`,
	`   ██║   ██╔══╝  ██║     ██╔══██║██║╚██╔╝██║██║   ██║██║   ██║██║  ██║`,
	`   ██║   ███████╗╚██████╗██║  ██║██║ ╚═╝ ██║╚██████╔╝╚██████╔╝██████╔╝`,
	`   ╚═╝   ╚══════╝ ╚═════╝╚═╝  ╚═╝╚═╝     ╚═╝ ╚═════╝  ╚═════╝ ╚═════╝`,
}

// renderSplash is shown before the first window size is known and while the
// first page is loading.
func renderSplash(width, height int, status string) string {
	logoStyle := lipgloss.NewStyle().Foreground(colorAccent)
	labelStyle := lipgloss.NewStyle().Foreground(colorText)

	var lines []string
	if width >= lipgloss.Width(asciiLogo[0]) {
		for _, l := range asciiLogo {
			lines = append(lines, logoStyle.Render(l))
		}
	} else {
		lines = append(lines, logoStyle.Bold(true).Render("techmood"))
	}
	lines = append(lines, "", labelStyle.Render("tech news, scored by mood"))
	if status != "" {
		lines = append(lines, "", helpDimStyle.Render(status))
	}

	content := strings.Join(lines, "\n")
	contentHeight := strings.Count(content, "\n") + 1

	topPad := (height - contentHeight) / 3
	if topPad < 0 {
		topPad = 0
	}

	// Center horizontally
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		strings.Repeat("\n", topPad)+content)
}
