package cmd

import (
	"fmt"
	"os"

	"github.com/matheuskafuri/techmood/internal/update"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig string
	flagCheck  bool
)

var rootCmd = &cobra.Command{
	Use:   "techmood",
	Short: "Sentiment-scored tech news in your terminal",
	Long:  "techmood browses tech news scored for sentiment by the Tech Mood API, with bookmarks and seen tracking kept locally.",
	RunE:  runTUI,

	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "check GitHub for a newer release")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(subscribeCmd)
	rootCmd.AddCommand(savedCmd)
	rootCmd.AddCommand(resetSeenCmd)
	rootCmd.AddCommand(statsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "techmood %s (commit: %s, built: %s)\n", version, commit, date)
		if !flagCheck {
			return nil
		}
		res, err := updateChecker.Check(cmd.Context(), version)
		if err != nil {
			return err
		}
		if res == nil {
			fmt.Fprintln(out, "You are on the latest release.")
			return nil
		}
		fmt.Fprintf(out, "Update available: %s %s\n", res.LatestVersion, res.URL)
		return nil
	},
}

var updateChecker = update.Checker{}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
