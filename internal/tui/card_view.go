package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/techmood/internal/bookmark"
)

// renderCardView shows one article full screen. Used on narrow terminals
// where there is no preview pane.
func renderCardView(e bookmark.Entry, index, total int, width, height int) string {
	cardWidth := width - 4
	if cardWidth < 20 {
		cardWidth = 20
	}
	inner := cardWidth - 6

	var body []string

	meta := e.SourceName()
	if e.PublishedAt != nil {
		meta += " · " + e.PublishedAt.Format("Jan 2")
	}
	if e.Category != "" {
		meta += " · " + e.Category
	}
	body = append(body, cardMetaStyle.Render(meta), "")
	body = append(body, cardTitleStyle.Width(inner).Render(e.Title), "")
	body = append(body, sentimentBadge(e.Article))
	if e.Saved {
		body = append(body, itemSavedStyle.Render("★ saved"))
	}
	body = append(body, "")

	summary := e.CleanSummary()
	if summary == "" {
		summary = "(No summary available)"
	}
	body = append(body, cardBodyStyle.Width(inner).Render(wrapText(summary, inner)))
	body = append(body, "", previewLinkStyle.Width(inner).Render(e.SourceURL))

	card := cardStyle.Width(cardWidth).Render(strings.Join(body, "\n"))

	counter := cardMetaStyle.Render(formatCounter(index+1, total))
	content := lipgloss.JoinVertical(lipgloss.Center, card, counter)

	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, strings.Join(lines, "\n"))
}

func formatCounter(n, total int) string {
	if total <= 0 {
		return ""
	}
	return fmt.Sprintf("%d of %d", n, total)
}
