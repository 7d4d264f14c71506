package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matheuskafuri/techmood/internal/article"
	"github.com/matheuskafuri/techmood/internal/bookmark"
	"github.com/matheuskafuri/techmood/internal/config"
	"github.com/matheuskafuri/techmood/internal/export"
	"github.com/spf13/cobra"
)

var (
	flagSince  string
	flagFormat string
	flagOutput string
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved articles",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved articles, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, bm, err := openLocal()
		if err != nil {
			return err
		}
		defer e.Close()

		arts, err := savedSince(bm, flagSince)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(arts) == 0 {
			fmt.Fprintln(out, "No saved articles.")
			return nil
		}
		for _, a := range arts {
			fmt.Fprintf(out, "%-10s %-16s %s\n           %s\n", a.ID, badge(a), a.Title, a.SourceURL)
		}
		return nil
	},
}

var savedExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved articles as a feed",
	Long: `Write saved articles as an RSS, Atom or JSON feed.

The feed goes to stdout unless --output is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(flagFormat)
		if err != nil {
			return err
		}

		e, bm, err := openLocal()
		if err != nil {
			return err
		}
		defer e.Close()

		arts, err := savedSince(bm, flagSince)
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if flagOutput != "" {
			f, err := os.Create(flagOutput)
			if err != nil {
				return fmt.Errorf("creating %s: %w", flagOutput, err)
			}
			defer f.Close()
			w = f
		}

		opts := export.Options{Link: e.cfg.APIURL}
		if err := export.Write(w, format, arts, opts); err != nil {
			return fmt.Errorf("writing %s feed: %w", format, err)
		}
		if flagOutput != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d article(s) to %s.\n", len(arts), flagOutput)
		}
		return nil
	},
}

var savedRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a saved article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, bm, err := openLocal()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := bm.RemoveSaved(args[0]); err != nil {
			if errors.Is(err, bookmark.ErrNotFound) {
				return fmt.Errorf("no saved article with id %s", args[0])
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", args[0])
		return nil
	},
}

var resetSeenCmd = &cobra.Command{
	Use:   "reset-seen",
	Short: "Forget which articles have been seen",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, bm, err := openLocal()
		if err != nil {
			return err
		}
		defer e.Close()

		n := bm.SeenCount()
		if err := bm.ResetSeen(); err != nil {
			return fmt.Errorf("resetting seen articles: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Forgot %d seen article(s).\n", n)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show local store statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, bm, err := openLocal()
		if err != nil {
			return err
		}
		defer e.Close()

		dbPath := config.StorePath()
		keys, size, err := e.db.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		lastOpened := "never"
		if t := e.db.LastOpened(); !t.IsZero() {
			lastOpened = t.Local().Format("Jan 2 2006 15:04")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Store: %s\n", dbPath)
		fmt.Fprintf(out, "Keys: %d\n", keys)
		fmt.Fprintf(out, "Size: %s\n", formatBytes(size))
		fmt.Fprintf(out, "Saved: %d\n", len(bm.Saved()))
		fmt.Fprintf(out, "Seen: %d (limit %d)\n", bm.SeenCount(), e.cfg.SeenLimit)
		fmt.Fprintf(out, "Recent searches: %d\n", len(bm.RecentSearches()))
		fmt.Fprintf(out, "Last opened: %s\n", lastOpened)

		entries, err := e.db.Keys()
		if err != nil {
			return fmt.Errorf("listing keys: %w", err)
		}
		for _, k := range entries {
			fmt.Fprintf(out, "  %-16s %8s  updated %s\n", k.Key, formatBytes(int64(k.Size)), k.UpdatedAt.Local().Format("Jan 2 15:04"))
		}
		return nil
	},
}

func init() {
	savedListCmd.Flags().StringVar(&flagSince, "since", "", "only articles published in the last duration (e.g., 7d, 24h)")
	savedExportCmd.Flags().StringVar(&flagSince, "since", "", "only articles published in the last duration (e.g., 7d, 24h)")
	savedExportCmd.Flags().StringVar(&flagFormat, "format", string(export.RSS), "feed format: rss, atom or json")
	savedExportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write to a file instead of stdout")

	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedExportCmd)
	savedCmd.AddCommand(savedRemoveCmd)
}

// openLocal is setup plus the bookmark store, for commands that only touch
// local state.
func openLocal() (*env, *bookmark.Store, error) {
	e, err := setup()
	if err != nil {
		return nil, nil, err
	}
	bm, err := e.bookmarks()
	if err != nil {
		e.Close()
		return nil, nil, err
	}
	return e, bm, nil
}

func savedSince(bm *bookmark.Store, since string) ([]article.Article, error) {
	arts := bm.Saved()
	if since == "" {
		return arts, nil
	}
	d, err := parseSince(since)
	if err != nil {
		return nil, fmt.Errorf("invalid --since value: %w", err)
	}
	return filterSince(arts, time.Now().Add(-d)), nil
}

// filterSince keeps articles published at or after cutoff. Articles with no
// publish time are kept.
func filterSince(arts []article.Article, cutoff time.Time) []article.Article {
	var out []article.Article
	for _, a := range arts {
		if a.PublishedAt == nil || !a.PublishedAt.Before(cutoff) {
			out = append(out, a)
		}
	}
	return out
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
