package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/techmood/internal/bookmark"
)

func renderPreview(e *bookmark.Entry, width, height, scroll int) string {
	if e == nil {
		return lipglossCenter("Select an article", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render(e.Title)

	meta := []string{e.SourceName()}
	if e.Category != "" {
		meta = append(meta, e.Category)
	}
	if e.PublishedAt != nil {
		meta = append(meta, e.PublishedAt.Format("Jan 2, 2006"))
	}
	source := previewSourceStyle.Render(strings.Join(meta, " · "))

	badge := sentimentBadge(e.Article)
	if e.Saved {
		badge += "  " + itemSavedStyle.Render("★ saved")
	}

	desc := e.CleanSummary()
	if desc == "" {
		desc = "(No summary available)"
	}

	body := previewBodyStyle.Width(contentWidth).Render(wrapText(desc, contentWidth))
	link := previewLinkStyle.Width(contentWidth).Render("Read more: " + e.SourceURL)

	content := lipgloss.JoinVertical(lipgloss.Left, title, source, badge, "", body, "", link)

	// Apply scroll offset
	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	// Pad to fill height
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if lipgloss.Width(line)+1+lipgloss.Width(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
