package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/matheuskafuri/techmood/internal/api"
	"github.com/matheuskafuri/techmood/internal/article"
	"github.com/matheuskafuri/techmood/internal/bookmark"
	"github.com/matheuskafuri/techmood/internal/browser"
	"github.com/matheuskafuri/techmood/internal/feed"
	"github.com/matheuskafuri/techmood/internal/search"
	"github.com/matheuskafuri/techmood/internal/viewport"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagCategory string
	flagSource   string
	flagAll      bool
	flagPage     int
	flagWidth    int
	flagOnly     string
	flagOpen     bool
	flagClear    bool
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List article categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.Close()

		cats, err := e.client.Categories(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetching categories: %w", err)
		}
		for _, c := range cats {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
		return nil
	},
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of articles",
	Long: `Print the number of articles matching --category and --source.

With --all, print the count of every category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		if !flagAll {
			n, err := e.client.Count(cmd.Context(), flagCategory, flagSource)
			if err != nil {
				return fmt.Errorf("counting articles: %w", err)
			}
			fmt.Fprintln(out, n)
			return nil
		}

		cats, err := e.client.Categories(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetching categories: %w", err)
		}
		counts, err := e.client.CategoryCounts(cmd.Context(), cats)
		if err != nil {
			return err
		}
		width := 0
		for _, c := range cats {
			width = max(width, len(c))
		}
		for _, c := range cats {
			fmt.Fprintf(out, "%-*s  %d\n", width, c, counts[c])
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of the feed",
	Long: `Print one page of the feed, ordered the way the browser shows it.

The page size follows --width: narrow terminals get 12 articles per page,
wide ones 24.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.Close()

		bm, err := e.bookmarks()
		if err != nil {
			return err
		}

		if flagOnly != "" {
			return listBucket(cmd, e, bm)
		}

		ctrl := feed.New(e.client, e.feedOptions(flagWidth)...)
		ctrl.SetFilter(feed.Filter{Category: flagCategory, Source: flagSource})
		ctrl.RefreshCount(cmd.Context())

		st, err := ctrl.LoadPage(cmd.Context(), flagPage)
		if errors.Is(err, feed.ErrOutOfRange) {
			return fmt.Errorf("page %d out of range (1-%d)", flagPage, st.TotalPages())
		}
		if err != nil {
			return err
		}
		if st.Status == feed.StatusFailed {
			return fmt.Errorf("could not load %s page %d", st.Filter.Label(), st.Page)
		}

		out := cmd.OutOrStdout()
		printEntries(out, bm.Annotate(st.Articles))
		fmt.Fprintf(out, "\n%s · page %d/%d · %d articles\n", st.Filter.Label(), st.Page, st.TotalPages(), st.Count)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search articles",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.Close()

		bm, err := e.bookmarks()
		if err != nil {
			return err
		}

		s := search.New(e.client, search.WithRecorder(bm), search.WithLogger(e.log))
		res, ok := s.Submit(cmd.Context(), strings.Join(args, " "))
		if !ok {
			return search.ErrNoQuery
		}
		for i := 1; i < flagPage && !res.Failed; i++ {
			if res, err = s.Next(cmd.Context()); err != nil {
				return fmt.Errorf("page %d: %w", flagPage, err)
			}
		}
		if res.Failed {
			return fmt.Errorf("search for %q failed", res.Query)
		}

		out := cmd.OutOrStdout()
		if res.Corrected != "" && !strings.EqualFold(res.Corrected, res.Query) {
			fmt.Fprintf(out, "Showing results for %q\n\n", res.Corrected)
		}
		if len(res.Articles) == 0 {
			fmt.Fprintln(out, "No articles found.")
			return nil
		}
		printEntries(out, bm.Annotate(res.Articles))
		more := ""
		if res.HasMore {
			more = fmt.Sprintf(" · more with --page %d", res.Page+2)
		}
		fmt.Fprintf(out, "\npage %d · %d results%s\n", res.Page+1, res.Count, more)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.Close()

		bm, err := e.bookmarks()
		if err != nil {
			return err
		}

		a, err := e.client.Article(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetching article %s: %w", args[0], err)
		}

		var flags []string
		if bm.IsSaved(a.ID) {
			flags = append(flags, "★ saved")
		}
		if bm.IsSeen(a.ID) {
			flags = append(flags, "seen")
		}
		if _, err := bm.MarkSeen(a.ID); err != nil {
			e.log.Warn("marking article seen", zap.String("id", a.ID), zap.Error(err))
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, a.Title)
		meta := a.SourceName()
		if a.PublishedAt != nil {
			meta += " · " + a.PublishedAt.Local().Format("Jan 2 2006")
		}
		if a.Category != "" {
			meta += " · " + a.Category
		}
		if len(flags) > 0 {
			meta += " · " + strings.Join(flags, " · ")
		}
		fmt.Fprintf(out, "%s · %s\n\n", meta, badge(a))
		if summary := a.CleanSummary(); summary != "" {
			fmt.Fprintf(out, "%s\n\n", summary)
		}
		fmt.Fprintln(out, a.SourceURL)

		if flagOpen {
			return browser.Open(a.SourceURL)
		}
		return nil
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recent searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, bm, err := openLocal()
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		if flagClear {
			if err := bm.ClearRecentSearches(); err != nil {
				return fmt.Errorf("clearing recent searches: %w", err)
			}
			fmt.Fprintln(out, "Recent searches cleared.")
			return nil
		}
		for _, q := range bm.RecentSearches() {
			fmt.Fprintln(out, q)
		}
		return nil
	},
}

var subscribeCmd = &cobra.Command{
	Use:   "subscribe <email>",
	Short: "Subscribe an email address to the newsletter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.Close()

		res, err := e.client.Subscribe(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !res.Success {
			return fmt.Errorf("subscription rejected: %s", res.Message)
		}
		msg := res.Message
		if msg == "" {
			msg = "Subscribed " + args[0] + "."
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func init() {
	countCmd.Flags().StringVar(&flagCategory, "category", "", "only count this category")
	countCmd.Flags().StringVar(&flagSource, "source", "", "only count this source")
	countCmd.Flags().BoolVar(&flagAll, "all", false, "count every category")

	listCmd.Flags().StringVar(&flagCategory, "category", "", "only list this category")
	listCmd.Flags().StringVar(&flagSource, "source", "", "only list this source")
	listCmd.Flags().IntVar(&flagPage, "page", 1, "page to print, starting at 1")
	listCmd.Flags().IntVar(&flagWidth, "width", 0, "terminal width used to pick the page size (0 = wide)")
	listCmd.Flags().StringVar(&flagOnly, "only", "", "list a single bucket as served: images or text")

	showCmd.Flags().BoolVar(&flagOpen, "open", false, "open the article in the browser")
	recentCmd.Flags().BoolVar(&flagClear, "clear", false, "forget recent searches")

	searchCmd.Flags().IntVar(&flagPage, "page", 1, "result page, starting at 1")
}

// listBucket prints one page of a single bucket as the API serves it,
// without interleaving.
func listBucket(cmd *cobra.Command, e *env, bm *bookmark.Store) error {
	fetch := e.client.ImageArticles
	switch flagOnly {
	case "images":
	case "text":
		fetch = e.client.TextArticles
	default:
		return fmt.Errorf("invalid --only value %q (want images or text)", flagOnly)
	}

	l := viewport.Adapter{Breakpoint: e.cfg.Breakpoint}.For(flagWidth)
	page, err := fetch(cmd.Context(), api.Query{
		Category: flagCategory,
		Source:   flagSource,
		Page:     flagPage - 1,
		Limit:    l.HalfCount,
	})
	if err != nil {
		return fmt.Errorf("fetching %s: %w", flagOnly, err)
	}

	out := cmd.OutOrStdout()
	printEntries(out, bm.Annotate(page.Articles))
	fmt.Fprintf(out, "\n%s · page %d · %d articles\n", flagOnly, flagPage, page.Count)
	return nil
}

func printEntries(w io.Writer, entries []bookmark.Entry) {
	for _, e := range entries {
		mark := " "
		if e.Saved {
			mark = "★"
		}
		fmt.Fprintf(w, "%s %-16s %-12s %s\n", mark, badge(e.Article), e.SourceName(), e.Title)
	}
}

func badge(a article.Article) string {
	return fmt.Sprintf("%s %+.2f", a.Sentiment(), a.SentimentScore)
}
