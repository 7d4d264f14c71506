package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/techmood/internal/article"
	"github.com/matheuskafuri/techmood/internal/bookmark"
	"github.com/matheuskafuri/techmood/internal/browser"
	"github.com/matheuskafuri/techmood/internal/config"
	"github.com/matheuskafuri/techmood/internal/feed"
	"github.com/matheuskafuri/techmood/internal/search"
	"github.com/matheuskafuri/techmood/internal/viewport"
	"go.uber.org/zap"
)

const requestTimeout = 15 * time.Second

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type mode int

const (
	modeFeed mode = iota
	modeSearchInput
	modeSearch
	modeSaved
	modeCard
	modeHelp
)

// Catalog lists the categories offered as pills.
type Catalog interface {
	Categories(ctx context.Context) ([]string, error)
}

type App struct {
	cfg       *config.Config
	catalog   Catalog
	feed      *feed.Controller
	search    *search.Session
	bookmarks *bookmark.Store
	log       *zap.Logger
	open      func(string) error
	adapter   viewport.Adapter

	entries  []bookmark.Entry
	cursor   int
	focus    focusPane
	mode     mode
	prevMode mode

	width   int
	height  int
	started bool

	// Sub-components
	searchInput textinput.Model
	spinner     spinner.Model
	pager       paginator.Model
	categories  categoryBar

	// State
	observed      map[string]bool // seen-marked during the current load
	fresh         bool
	searching     bool
	previewScroll int
	currentDate   string
	notice        string
	err           error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg       *config.Config
	Catalog   Catalog
	Feed      *feed.Controller
	Search    *search.Session
	Bookmarks *bookmark.Store
	Log       *zap.Logger
	Open      func(string) error
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Search articles..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100
	ti.ShowSuggestions = true

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	a := &App{
		cfg:         opts.Cfg,
		catalog:     opts.Catalog,
		feed:        opts.Feed,
		search:      opts.Search,
		bookmarks:   opts.Bookmarks,
		log:         opts.Log,
		open:        opts.Open,
		adapter:     viewport.Adapter{Breakpoint: opts.Cfg.Breakpoint},
		searchInput: ti,
		spinner:     sp,
		pager:       newPager(),
		categories:  newCategoryBar(nil),
		observed:    map[string]bool{},
		currentDate: time.Now().Format("Jan 2"),
	}
	if a.log == nil {
		a.log = zap.NewNop()
	}
	if a.open == nil {
		a.open = browser.Open
	}
	return a
}

// Init loads categories and the article count. The first page is loaded
// once the terminal size, and so the layout, is known.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.fetchCategoriesCmd(),
		a.fetchCountCmd(a.feed.State().Filter),
		a.spinner.Tick,
	)
}

func (a *App) fetchCategoriesCmd() tea.Cmd {
	if a.catalog == nil {
		return nil
	}
	c := a.catalog
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		cats, err := c.Categories(ctx)
		return categoriesMsg{categories: cats, err: err}
	}
}

func (a *App) fetchCountCmd(f feed.Filter) tea.Cmd {
	ctrl := a.feed
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return countMsg{res: ctrl.FetchCount(ctx, f)}
	}
}

// loadPage starts loading a feed page. Out of range pages are a no-op.
func (a *App) loadPage(page int) tea.Cmd {
	req, err := a.feed.Begin(page)
	if err != nil {
		return nil
	}
	a.observed = map[string]bool{}
	if req.Cached {
		a.syncFeed()
		return a.afterFeedLoad()
	}

	ctrl := a.feed
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return pageFetchedMsg{res: ctrl.Fetch(ctx, req)}
	})
}

func (a *App) afterFeedLoad() tea.Cmd {
	if a.feed.State().Status != feed.StatusReady {
		return nil
	}
	return tea.Batch(a.markSeenCmd(), a.prefetchCmd())
}

func (a *App) prefetchCmd() tea.Cmd {
	if !a.cfg.Prefetch {
		return nil
	}
	ctrl := a.feed
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		ctrl.PrefetchNext(ctx)
		return nil
	}
}

func (a *App) setCategory() tea.Cmd {
	f := feed.Filter{Category: a.categories.selected()}
	if !a.feed.SetFilter(f) {
		return nil
	}
	a.cursor = 0
	return tea.Batch(a.loadPage(1), a.fetchCountCmd(f))
}

func (a *App) submitSearch() tea.Cmd {
	q := strings.TrimSpace(a.searchInput.Value())
	a.searchInput.Blur()
	if q == "" {
		a.mode = a.prevMode
		return nil
	}
	a.mode = modeSearch
	a.searching = true
	a.entries = nil
	a.cursor = 0

	s := a.search
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		res, _ := s.Submit(ctx, q)
		return searchDoneMsg{res: res}
	})
}

func (a *App) searchPageCmd(dir int) tea.Cmd {
	cur := a.search.Current()
	if (dir > 0 && !cur.HasMore) || (dir < 0 && cur.Page == 0) || cur.Term == "" {
		return nil
	}
	a.searching = true
	s := a.search
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		var res search.Result
		if dir > 0 {
			res, _ = s.Next(ctx)
		} else {
			res, _ = s.Prev(ctx)
		}
		return searchDoneMsg{res: res}
	})
}

func (a *App) suggestCmd() tea.Cmd {
	prefix := strings.TrimSpace(a.searchInput.Value())
	if len([]rune(prefix)) < search.MinSuggest {
		return nil
	}
	s := a.search
	log := a.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := s.Suggest(ctx, prefix)
		if err != nil {
			log.Debug("autocomplete failed", zap.String("prefix", prefix), zap.Error(err))
			return nil
		}
		return suggestionsMsg{prefix: prefix, items: items}
	}
}

// markSeenCmd records every on-screen article not yet recorded during the
// current load.
func (a *App) markSeenCmd() tea.Cmd {
	list := a.visible()
	start, end := visibleRange(len(list), a.cursor, a.contentHeight())
	var ids []string
	for _, e := range list[start:end] {
		ids = append(ids, e.ID)
	}
	return a.markIDsCmd(ids)
}

func (a *App) markIDsCmd(ids []string) tea.Cmd {
	var fresh []string
	for _, id := range ids {
		if id == "" || a.observed[id] {
			continue
		}
		a.observed[id] = true
		fresh = append(fresh, id)
	}
	if len(fresh) == 0 || a.bookmarks == nil {
		return nil
	}
	bm := a.bookmarks
	return func() tea.Msg {
		if _, err := bm.MarkSeenMany(fresh); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (a *App) openCmd(url string) tea.Cmd {
	open := a.open
	return func() tea.Msg {
		if err := open(url); err != nil {
			return errMsg{err: err}
		}
		return statusMsg{text: "opened in browser"}
	}
}

func (a *App) annotate(arts []article.Article) []bookmark.Entry {
	if a.bookmarks == nil {
		out := make([]bookmark.Entry, len(arts))
		for i, art := range arts {
			out[i] = bookmark.Entry{Article: art}
		}
		return out
	}
	return a.bookmarks.Annotate(arts)
}

// syncFeed replaces the list with the feed's current page when the feed is
// the list being shown.
func (a *App) syncFeed() {
	if a.listMode() != modeFeed {
		return
	}
	a.entries = a.annotate(a.feed.State().Articles)
	a.cursor = 0
	a.previewScroll = 0
}

func (a *App) showSaved() {
	a.mode = modeSaved
	a.entries = a.annotate(a.savedArticles())
	a.cursor = 0
	a.previewScroll = 0
}

func (a *App) savedArticles() []article.Article {
	if a.bookmarks == nil {
		return nil
	}
	return a.bookmarks.Saved()
}

func (a *App) showFeed() tea.Cmd {
	a.mode = modeFeed
	a.observed = map[string]bool{}
	a.syncFeed()
	return a.markSeenCmd()
}

// visible is the list as displayed, with seen articles hidden in fresh mode.
func (a *App) visible() []bookmark.Entry {
	if !a.fresh || a.listMode() == modeSaved {
		return a.entries
	}
	out := make([]bookmark.Entry, 0, len(a.entries))
	for _, e := range a.entries {
		if !e.Seen {
			out = append(out, e)
		}
	}
	return out
}

// listMode is the list-showing mode beneath any overlay.
func (a *App) listMode() mode {
	switch a.mode {
	case modeCard, modeHelp, modeSearchInput:
		return a.prevMode
	}
	return a.mode
}

func (a *App) selected() *bookmark.Entry {
	list := a.visible()
	if a.cursor < 0 || a.cursor >= len(list) {
		return nil
	}
	e := list[a.cursor]
	return &e
}

func (a *App) loading() bool {
	if a.listMode() == modeSearch {
		return a.searching
	}
	return a.feed.State().Status == feed.StatusLoading
}

func (a *App) contentHeight() int {
	headerHeight := 1
	filterHeight := 1
	statusHeight := 1
	h := a.height - headerHeight - filterHeight - statusHeight - 4 // borders
	if h < 3 {
		h = 3
	}
	return h
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.searchInput.Width = max(10, msg.Width-6)
		l := a.adapter.For(msg.Width)
		if l.IsMobile {
			a.focus = focusList
		}
		changed := a.feed.SetLayout(l)
		if !a.started {
			a.started = true
			return a, a.loadPage(a.feed.State().Page)
		}
		if changed {
			return a, a.loadPage(a.feed.State().Page)
		}
		return a, a.markSeenCmd()

	case tea.KeyMsg:
		// Clear sticky error and notices on any keypress
		a.err = nil
		a.notice = ""
		return a.handleKey(msg)

	case categoriesMsg:
		if msg.err != nil {
			a.log.Warn("loading categories", zap.Error(msg.err))
			a.notice = "categories unavailable"
			return a, nil
		}
		current := a.categories.selected()
		a.categories = newCategoryBar(msg.categories)
		a.categories.selectName(current)
		return a, nil

	case pageFetchedMsg:
		if _, applied := a.feed.Apply(msg.res); !applied {
			return a, nil
		}
		a.syncFeed()
		return a, a.afterFeedLoad()

	case countMsg:
		// A count arriving after the page can bring the next page into range.
		if st := a.feed.ApplyCount(msg.res); st.Status == feed.StatusReady {
			return a, a.prefetchCmd()
		}
		return a, nil

	case searchDoneMsg:
		if !a.search.IsCurrent(msg.res) {
			return a, nil
		}
		a.searching = false
		if a.listMode() != modeSearch {
			return a, nil
		}
		a.entries = a.annotate(msg.res.Articles)
		a.cursor = 0
		a.previewScroll = 0
		a.observed = map[string]bool{}
		return a, a.markSeenCmd()

	case suggestionsMsg:
		if msg.prefix == strings.TrimSpace(a.searchInput.Value()) {
			a.searchInput.SetSuggestions(msg.items)
		}
		return a, nil

	case errMsg:
		a.err = msg.err
		return a, nil

	case statusMsg:
		a.notice = msg.text
		return a, nil

	case spinner.TickMsg:
		if a.loading() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// Mode-specific handling
	switch a.mode {
	case modeSearchInput:
		return a.handleSearchInputKey(msg)
	case modeCard:
		return a.handleCardKey(msg)
	case modeHelp:
		switch msg.String() {
		case "?", "esc", "q":
			a.mode = a.prevMode
		}
		return a, nil
	}

	list := a.visible()
	mobile := a.feed.State().Layout.IsMobile

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(list)-1 {
			a.cursor++
			a.previewScroll = 0
			return a, a.markSeenCmd()
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "tab":
		if mobile {
			return a, nil
		}
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "n", "right", "l":
		return a, a.pageCmd(1)
	case "p", "left", "h":
		return a, a.pageCmd(-1)
	case "c", "C":
		if a.mode != modeFeed {
			return a, nil
		}
		if msg.String() == "c" {
			a.categories.next()
		} else {
			a.categories.prev()
		}
		return a, a.setCategory()
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if a.mode != modeFeed {
			return a, nil
		}
		if a.categories.selectIndex(int(msg.String()[0] - '0')) {
			return a, a.setCategory()
		}
		return a, nil
	case "/":
		a.prevMode = a.mode
		a.mode = modeSearchInput
		a.searchInput.SetValue("")
		a.searchInput.SetSuggestions(nil)
		a.searchInput.Focus()
		return a, textinput.Blink
	case "esc":
		switch a.mode {
		case modeSearch:
			a.search.Reset()
			a.searching = false
			return a, a.showFeed()
		case modeSaved:
			return a, a.showFeed()
		}
		return a, nil
	case "s":
		return a, a.toggleSave()
	case "S":
		if a.mode == modeSaved {
			return a, a.showFeed()
		}
		a.showSaved()
		return a, nil
	case "R":
		return a, a.resetSeen()
	case "u":
		a.fresh = !a.fresh
		a.cursor = 0
		a.previewScroll = 0
		return a, a.markSeenCmd()
	case "o":
		if e := a.selected(); e != nil {
			return a, a.openCmd(e.SourceURL)
		}
		return a, nil
	case "enter":
		if e := a.selected(); e != nil {
			a.prevMode = a.mode
			a.mode = modeCard
			return a, a.markIDsCmd([]string{e.ID})
		}
		return a, nil
	case "?":
		a.prevMode = a.mode
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) pageCmd(dir int) tea.Cmd {
	switch a.mode {
	case modeFeed:
		return a.loadPage(a.feed.State().Page + dir)
	case modeSearch:
		return a.searchPageCmd(dir)
	}
	return nil
}

func (a *App) toggleSave() tea.Cmd {
	e := a.selected()
	if e == nil || a.bookmarks == nil {
		return nil
	}
	saved, err := a.bookmarks.ToggleSave(e.Article)
	if err != nil {
		a.err = err
		return nil
	}
	for i := range a.entries {
		if a.entries[i].ID == e.ID {
			a.entries[i].Saved = saved
		}
	}
	if a.listMode() == modeSaved && !saved {
		a.entries = a.annotate(a.savedArticles())
		if a.cursor >= len(a.entries) {
			a.cursor = max(0, len(a.entries)-1)
		}
	}
	if saved {
		a.notice = "saved"
	} else {
		a.notice = "removed from saved"
	}
	return nil
}

func (a *App) resetSeen() tea.Cmd {
	if a.bookmarks == nil {
		return nil
	}
	if err := a.bookmarks.ResetSeen(); err != nil {
		a.err = err
		return nil
	}
	for i := range a.entries {
		a.entries[i].Seen = false
	}
	a.observed = map[string]bool{}
	a.cursor = 0
	a.notice = "seen history cleared"
	return a.markSeenCmd()
}

func (a *App) handleSearchInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = a.prevMode
		a.searchInput.Blur()
		return a, nil
	case "enter":
		return a, a.submitSearch()
	}

	before := a.searchInput.Value()
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	// Only ask for suggestions on actual value changes, not cursor moves etc.
	if a.searchInput.Value() != before {
		return a, tea.Batch(cmd, a.suggestCmd())
	}
	return a, cmd
}

func (a *App) handleCardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := a.visible()
	switch msg.String() {
	case "esc", "enter", "backspace":
		a.mode = a.prevMode
		return a, nil
	case "q":
		return a, tea.Quit
	case "n", "j", "right", "down":
		if a.cursor < len(list)-1 {
			a.cursor++
			return a, a.markIDsCmd([]string{list[a.cursor].ID})
		}
		return a, nil
	case "p", "k", "left", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "o":
		if e := a.selected(); e != nil {
			return a, a.openCmd(e.SourceURL)
		}
		return a, nil
	case "s":
		return a, a.toggleSave()
	}
	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  techmood")
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	list := a.visible()
	if a.mode == modeCard && a.cursor < len(list) {
		status := renderStatusBar(statusInfo{
			count: len(list),
			label: a.modeLabel(),
			hints: "n next  p prev  s save  o open  esc back",
		}, a.width)
		card := renderCardView(list[a.cursor], a.cursor, len(list), a.width, a.height-1)
		return lipgloss.JoinVertical(lipgloss.Left, card, status)
	}

	if !a.started || (len(a.entries) == 0 && a.feed.State().Status == feed.StatusIdle && a.listMode() == modeFeed) {
		return renderSplash(a.width, a.height, a.spinner.View()+" loading")
	}

	contentHeight := a.contentHeight()
	mobile := a.feed.State().Layout.IsMobile

	// Header
	headerLeft := headerStyle.Render("techmood")
	headerRight := headerDateStyle.Render(a.currentDate)
	if a.listMode() == modeFeed && !mobile {
		st := a.feed.State()
		headerRight = renderWindow(st.Page, st.TotalPages()) + "  " + headerRight
	}
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Filter bar, replaced by the search bar or a mode title
	var filter string
	switch a.mode {
	case modeSearchInput:
		filter = a.searchInput.View()
	case modeSearch:
		filter = a.searchTitle()
	case modeSaved:
		filter = headerStyle.Render("★ Saved articles")
	default:
		filter = a.categories.render(a.width)
	}

	// List pane
	listWidth := int(float64(a.width) * 0.35)
	if mobile {
		listWidth = a.width
	}
	previewWidth := a.width - listWidth - 1 // gap

	innerListW := listWidth - 4 // border + padding
	listContent := renderList(list, a.cursor, contentHeight, innerListW, a.emptyText())
	if a.loading() && len(list) == 0 {
		listContent = lipglossCenter(a.spinner.View()+" loading", innerListW, contentHeight)
	}

	var listPane string
	if a.focus == focusList {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	content := listPane
	if !mobile {
		innerPreviewW := previewWidth - 4
		previewContent := renderPreview(a.selected(), innerPreviewW, contentHeight, a.previewScroll)

		var previewPane string
		if a.focus == focusPreview {
			previewPane = previewPaneActiveStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
		} else {
			previewPane = previewPaneStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
		}
		content = lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)
	}

	status := renderStatusBar(a.statusInfo(len(list)), a.width)

	// Error display
	if a.err != nil {
		status = errorStyle.Render(a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, filter, content, status)
}

func (a *App) modeLabel() string {
	switch a.listMode() {
	case modeSearch:
		return "search"
	case modeSaved:
		return "saved"
	default:
		return a.categories.label()
	}
}

func (a *App) searchTitle() string {
	cur := a.search.Current()
	title := searchPromptStyle.Render("search: ") + cur.Query
	if cur.Corrected != "" && !strings.EqualFold(cur.Corrected, cur.Query) {
		title += helpDimStyle.Render("  showing results for ") + cur.Corrected
	}
	return lipgloss.NewStyle().PaddingLeft(1).Render(title)
}

func (a *App) emptyText() string {
	switch {
	case a.listMode() == modeFeed && a.feed.State().Status == feed.StatusFailed:
		return "Could not load articles"
	case a.listMode() == modeSearch && a.search.Current().Failed:
		return "Search failed"
	case a.listMode() == modeSaved:
		return "Nothing saved yet. Press s on an article"
	case a.fresh && len(a.entries) > 0:
		return "Nothing new here. Press u to show all"
	default:
		return "No articles found"
	}
}

func (a *App) statusInfo(count int) statusInfo {
	s := statusInfo{
		count:   count,
		label:   a.modeLabel(),
		fresh:   a.fresh && a.listMode() != modeSaved,
		loading: a.loading(),
		notice:  a.notice,
	}
	switch a.listMode() {
	case modeFeed:
		st := a.feed.State()
		s.pager = pagerView(a.pager, st.Page, st.TotalPages())
		s.failed = st.Status == feed.StatusFailed
		s.hints = "n/p page  c category  / search  s save  S saved  ? help  q quit"
	case modeSearch:
		cur := a.search.Current()
		s.pager = fmt.Sprintf("page %d", cur.Page+1)
		if cur.HasMore {
			s.pager += "+"
		}
		s.failed = cur.Failed
		s.hints = "n/p page  s save  o open  esc back"
	case modeSaved:
		s.hints = "s remove  o open  esc back"
	}
	if a.mode == modeSearchInput {
		s.hints = "esc cancel  tab complete  enter search"
		if recent := a.recentSearches(); len(recent) > 0 && a.searchInput.Value() == "" {
			s.notice = "recent: " + strings.Join(recent, " · ")
		}
	}
	return s
}

func (a *App) recentSearches() []string {
	if a.bookmarks == nil {
		return nil
	}
	return a.bookmarks.RecentSearches()
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("techmood")
	dim := helpDimStyle

	help := title + dim.Render(" · Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓      Move through the list\n" +
		"  n/p, ←/→      Next / previous page\n" +
		"  tab           Switch focus between list and preview\n" +
		"  enter         Read article card\n\n" +
		dim.Render("Feed") + "\n" +
		"  c / C         Next / previous category\n" +
		"  0-9           Pick category by number (0 = All)\n" +
		"  u             Show only articles you have not seen\n" +
		"  R             Forget seen articles\n\n" +
		dim.Render("Actions") + "\n" +
		"  /             Search (tab completes)\n" +
		"  s             Save / unsave article\n" +
		"  S             Saved articles\n" +
		"  o             Open article in browser\n\n" +
		dim.Render("General") + "\n" +
		"  esc           Back to the feed\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c     Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	applyTheme(opts.Cfg.Theme)
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
