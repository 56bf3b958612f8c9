// internal/cli/score.go
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/opsci/wikisense/internal/api"
	"github.com/opsci/wikisense/internal/client"
	"github.com/opsci/wikisense/internal/formatter"
	"github.com/opsci/wikisense/internal/reference"
	"github.com/opsci/wikisense/internal/resolver"
	"github.com/opsci/wikisense/internal/utils"
)

var validOutputFormats = []string{"table", "json", "yaml", "yml"}

var (
	scoreStart      string
	scoreEnd        string
	scoreLang       string
	scoreOutput     string
	scoreBatchSize  int
	scoreWorkers    int
	scoreBlacklist  string
	scoreSockpuppet string
)

// scoreCmd represents the wikiosint score command, the sole analysis
// entrypoint onto internal/api.Analyze (spec.md §6).
var scoreCmd = &cobra.Command{
	Use:   "score [pages...]",
	Short: "Score one or more Wikipedia pages for sensitivity",
	Long: `Resolves each page (bare title or full URL, possibly mixing
language editions), fans out the metric collectors over the given date
range, and prints the Heat/Quality/Risk/Sensitivity composite scores.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScore,
}

func init() {
	now := time.Now().UTC()
	defaultEnd := now.Format("2006-01-02")
	defaultStart := now.AddDate(0, -1, 0).Format("2006-01-02")

	scoreCmd.Flags().StringVar(&scoreStart, "start", defaultStart, "analysis window start (YYYY-MM-DD)")
	scoreCmd.Flags().StringVar(&scoreEnd, "end", defaultEnd, "analysis window end (YYYY-MM-DD)")
	scoreCmd.Flags().StringVarP(&scoreLang, "lang", "l", "", "default language for pages without a detectable one (default: auto-detect, falling back to config)")
	scoreCmd.Flags().StringVarP(&scoreOutput, "output", "o", "table", "output format (table, json, yaml)")
	scoreCmd.Flags().IntVar(&scoreBatchSize, "batch-size", 0, "pages per batch (0 uses config/default)")
	scoreCmd.Flags().IntVar(&scoreWorkers, "workers", 0, "base worker pool size (0 uses config/default)")
	scoreCmd.Flags().StringVar(&scoreBlacklist, "blacklist", "", "path to the domain blacklist file (empty uses config)")
	scoreCmd.Flags().StringVar(&scoreSockpuppet, "sockpuppets", "", "path to the sockpuppet username list (empty uses config)")

	viper.BindPFlag("default_language", scoreCmd.Flags().Lookup("lang"))
	viper.BindPFlag("batch_size", scoreCmd.Flags().Lookup("batch-size"))
	viper.BindPFlag("worker_base", scoreCmd.Flags().Lookup("workers"))
	viper.BindPFlag("blacklist_path", scoreCmd.Flags().Lookup("blacklist"))
	viper.BindPFlag("sockpuppet_path", scoreCmd.Flags().Lookup("sockpuppets"))
}

func runScore(cmd *cobra.Command, args []string) error {
	pages := utils.UniqueStrings(args)

	defaultLang := scoreLang
	if defaultLang == "" {
		defaultLang = resolver.DetectDefaultLanguage(pages, viper.GetString("default_language"))
	}

	if !utils.Contains(validOutputFormats, scoreOutput) {
		return fmt.Errorf("unsupported output format %q (want one of %v)", scoreOutput, validOutputFormats)
	}

	blacklistPath := utils.SetOrDefault(scoreBlacklist, viper.GetString("blacklist_path"))
	sockpuppetPath := utils.SetOrDefault(scoreSockpuppet, viper.GetString("sockpuppet_path"))

	blacklist, err := reference.LoadDomainSet(blacklistPath)
	if err != nil {
		return fmt.Errorf("loading blacklist: %w", err)
	}
	suspects, err := reference.LoadUsernameSet(sockpuppetPath)
	if err != nil {
		return fmt.Errorf("loading sockpuppet list: %w", err)
	}

	var clientOpts []client.Option
	if ua := viper.GetString("user_agent"); ua != "" {
		clientOpts = append(clientOpts, client.WithUserAgent(ua))
	}
	wikiClient := client.New(clientOpts...)

	opts := api.Options{
		Client:     wikiClient,
		Blacklist:  blacklist,
		Suspects:   suspects,
		BatchSize:  viper.GetInt("batch_size"),
		WorkerBase: viper.GetInt("worker_base"),
		Logger:     log.Logger,
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "analyzing %d page(s), window %s..%s, default language %q\n", len(pages), scoreStart, scoreEnd, defaultLang)
	}

	result, err := api.Analyze(context.Background(), pages, scoreStart, scoreEnd, defaultLang, opts)
	if err != nil && result == nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	output, err := formatter.FormatAnalysis(result, scoreOutput)
	if err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	fmt.Print(output)
	return nil
}
