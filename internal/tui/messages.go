package tui

import (
	"github.com/matheuskafuri/techmood/internal/feed"
	"github.com/matheuskafuri/techmood/internal/search"
)

type categoriesMsg struct {
	categories []string
	err        error
}

type pageFetchedMsg struct {
	res feed.Result
}

type countMsg struct {
	res feed.CountResult
}

type searchDoneMsg struct {
	res search.Result
}

type suggestionsMsg struct {
	prefix string
	items  []string
}

type errMsg struct {
	err error
}

// statusMsg is a one-off notice shown in the status bar until the next key.
type statusMsg struct {
	text string
}
