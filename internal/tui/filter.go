package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// hiddenCategory is served by the API but never offered as a pill.
const hiddenCategory = "General Tech"

// categoryBar is a single-select row of category pills. Index 0 is "All".
type categoryBar struct {
	categories []string
	active     int
}

func newCategoryBar(categories []string) categoryBar {
	var out []string
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" || strings.EqualFold(c, hiddenCategory) {
			continue
		}
		out = append(out, c)
	}
	return categoryBar{categories: out}
}

func (f *categoryBar) len() int {
	return len(f.categories) + 1
}

// selected returns the active category, "" for All.
func (f *categoryBar) selected() string {
	if f.active == 0 {
		return ""
	}
	return f.categories[f.active-1]
}

func (f *categoryBar) next() {
	f.active = (f.active + 1) % f.len()
}

func (f *categoryBar) prev() {
	f.active = (f.active - 1 + f.len()) % f.len()
}

// selectIndex picks pill i, where 0 is All. Out of range is ignored.
func (f *categoryBar) selectIndex(i int) bool {
	if i < 0 || i >= f.len() {
		return false
	}
	f.active = i
	return true
}

// selectName keeps the current category selected after the list is
// replaced, falling back to All.
func (f *categoryBar) selectName(name string) {
	f.active = 0
	for i, c := range f.categories {
		if c == name {
			f.active = i + 1
			return
		}
	}
}

func (f *categoryBar) label() string {
	if s := f.selected(); s != "" {
		return s
	}
	return "All"
}

func (f *categoryBar) render(width int) string {
	sep := tabSeparatorStyle.Render(" · ")

	labels := append([]string{"All"}, f.categories...)
	parts := make([]string, len(labels))
	for i, l := range labels {
		style := tabInactiveStyle
		if i == f.active {
			style = tabActiveStyle
		}
		if i > 0 && i < 10 {
			l = strconv.Itoa(i) + " " + l
		}
		parts[i] = style.Render(l)
	}

	// Build row with · separators, stopping when we'd exceed width
	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorSurface).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}
