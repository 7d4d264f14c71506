package tui

import (
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/matheuskafuri/techmood/internal/article"
)

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
		{"test", 0, ""},
	}
	for _, tt := range tests {
		got := truncateStr(tt.input, tt.n)
		if got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestTruncateStrUTF8(t *testing.T) {
	got := truncateStr("日本語テスト", 5)
	want := "日本..."
	if got != want {
		t.Errorf("truncateStr(Japanese, 5) = %q, want %q", got, want)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m"},
		{now.Add(-3 * time.Hour), "3h"},
		{now.Add(-2 * 24 * time.Hour), "2d"},
	}
	for _, tt := range tests {
		got := relativeTime(tt.t)
		if got != tt.want {
			t.Errorf("relativeTime(%v ago) = %q, want %q", now.Sub(tt.t), got, tt.want)
		}
	}
}

func TestRelativeTimeOld(t *testing.T) {
	old := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	got := relativeTime(old)
	if got != "Jun 15" {
		t.Errorf("relativeTime(old date) = %q, want %q", got, "Jun 15")
	}
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		n, cursor, height int
		start, end        int
	}{
		{0, 0, 30, 0, 0},
		{5, 0, 30, 0, 5},
		{24, 0, 30, 0, 10},
		{24, 9, 30, 0, 10},
		{24, 10, 30, 1, 11},
		{24, 23, 30, 14, 24},
		{3, 2, 1, 2, 3},
	}
	for _, tt := range tests {
		start, end := visibleRange(tt.n, tt.cursor, tt.height)
		if start != tt.start || end != tt.end {
			t.Errorf("visibleRange(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tt.n, tt.cursor, tt.height, start, end, tt.start, tt.end)
		}
	}
}

func TestBadgeText(t *testing.T) {
	tests := []struct {
		a    article.Article
		want string
	}{
		{article.Article{SentimentLabel: "positive", SentimentScore: 0.82}, "positive +0.82"},
		{article.Article{SentimentLabel: "NEGATIVE", SentimentScore: -0.4}, "negative -0.40"},
		{article.Article{SentimentLabel: "hopeful", SentimentScore: 0}, "neutral +0.00"},
	}
	for _, tt := range tests {
		if got := badgeText(tt.a); got != tt.want {
			t.Errorf("badgeText(%q, %v) = %q, want %q", tt.a.SentimentLabel, tt.a.SentimentScore, got, tt.want)
		}
	}
}

func TestCategoryBar(t *testing.T) {
	bar := newCategoryBar([]string{"AI", "General Tech", " ", "Crypto"})
	if bar.len() != 3 {
		t.Fatalf("len() = %d, want 3 (All, AI, Crypto)", bar.len())
	}
	if bar.selected() != "" || bar.label() != "All" {
		t.Errorf("new bar selects %q, want All", bar.selected())
	}

	bar.next()
	if bar.selected() != "AI" {
		t.Errorf("next() selects %q, want AI", bar.selected())
	}
	bar.prev()
	bar.prev()
	if bar.selected() != "Crypto" {
		t.Errorf("prev() wraps to %q, want Crypto", bar.selected())
	}

	if bar.selectIndex(5) {
		t.Error("selectIndex(5) should be out of range")
	}
	if !bar.selectIndex(1) || bar.selected() != "AI" {
		t.Errorf("selectIndex(1) selects %q, want AI", bar.selected())
	}

	refreshed := newCategoryBar([]string{"Crypto", "AI"})
	refreshed.selectName(bar.selected())
	if refreshed.selected() != "AI" {
		t.Errorf("selectName kept %q, want AI", refreshed.selected())
	}
	refreshed.selectName("Gone")
	if refreshed.selected() != "" {
		t.Errorf("selectName of a missing category selects %q, want All", refreshed.selected())
	}
}

func TestRenderWindow(t *testing.T) {
	got := ansi.Strip(renderWindow(6, 10))
	want := "1 … 4 5 [6] 7 8 … 10"
	if got != want {
		t.Errorf("renderWindow(6, 10) = %q, want %q", got, want)
	}
}

func TestPagerView(t *testing.T) {
	p := newPager()
	if got := pagerView(p, 3, 10); got != "page 3/10" {
		t.Errorf("pagerView(3, 10) = %q", got)
	}
	if got := pagerView(p, 1, 0); got != "page 1/1" {
		t.Errorf("pagerView(1, 0) = %q", got)
	}
}

func TestFormatCounter(t *testing.T) {
	if got := formatCounter(1, 12); got != "1 of 12" {
		t.Errorf("formatCounter(1, 12) = %q, want %q", got, "1 of 12")
	}
	if got := formatCounter(1, 0); got != "" {
		t.Errorf("formatCounter(1, 0) = %q, want empty", got)
	}
}
