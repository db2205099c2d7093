// Command painminer collects first-person business pain narratives from
// Reddit threads and writes classified results to CSV and SQLite.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/painminer/internal/config"
	"github.com/jonesrussell/painminer/internal/logger"
	"github.com/jonesrussell/painminer/internal/output"
	"github.com/jonesrussell/painminer/internal/pipeline"
	"github.com/jonesrussell/painminer/internal/reddit"
	"github.com/jonesrussell/painminer/internal/rejected"
	"github.com/jonesrussell/painminer/internal/storage"
)

const version = "1.0.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "painminer",
	Short: "Mine first-person business pain narratives from Reddit",
	Long: `painminer discovers promising discussion threads, ranks their
comments for pain potential, and collects only comments that pass a strict
multi-gate classifier. Accepted and rejected records are written to CSV
and SQLite for later analysis.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a full collection pass",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCollection(cmd.Context())
	},
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Preview ranked thread candidates without fetching comments",
	RunE: func(cmd *cobra.Command, args []string) error {
		top, _ := cmd.Flags().GetInt("top")
		return runDiscovery(cmd.Context(), top)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "painminer.yaml",
		"config file (missing file falls back to defaults)")
	discoverCmd.Flags().Int("top", 25, "number of ranked threads to show")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("painminer version %s\n", version)
		},
	})
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(discoverCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads config, builds the logger and the Reddit client.
func setup() (*config.Config, logger.Logger, *reddit.Client, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Debug,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create logger: %w", err)
	}

	client := reddit.NewClient(cfg.Source.UserAgent,
		reddit.WithTimeout(cfg.Source.RequestTimeout),
		reddit.WithRequestsPerMinute(cfg.Source.RequestsPerMinute),
		reddit.WithLogger(log),
	)
	return cfg, log, client, nil
}

func runCollection(ctx context.Context) error {
	cfg, log, client, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	rejectedPath := filepath.Join(cfg.Output.Dir, cfg.Output.RejectedThreadFile)
	rejectedSet, err := loadRejectedSet(rejectedPath)
	if err != nil {
		return err
	}
	if rejectedSet.Len() > 0 {
		log.Info("loaded previously rejected threads", logger.Int("count", rejectedSet.Len()))
	}
	sizeBefore := rejectedSet.Len()

	store, err := storage.Open(filepath.Join(cfg.Output.Dir, cfg.Output.DatabaseFile))
	if err != nil {
		return err
	}
	defer store.Close()

	csvSink, err := output.NewCSVSink(
		filepath.Join(cfg.Output.Dir, "pain_analysis.csv"),
		filepath.Join(cfg.Output.Dir, "rejected_comments.csv"),
	)
	if err != nil {
		return err
	}
	defer csvSink.Close()

	sink := pipeline.MultiSink{store, csvSink}
	pl := pipeline.New(cfg, client, sink, client.BaseURL(), log)

	result, err := pl.Run(ctx, rejectedSet)
	if err != nil {
		return fmt.Errorf("collection run: %w", err)
	}

	if err := saveRejectedSet(rejectedPath, result.Rejected, result.Rejected.Len()-sizeBefore); err != nil {
		return err
	}

	printSummary(result)
	return nil
}

func runDiscovery(ctx context.Context, top int) error {
	cfg, log, client, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	rejectedPath := filepath.Join(cfg.Output.Dir, cfg.Output.RejectedThreadFile)
	rejectedSet, err := loadRejectedSet(rejectedPath)
	if err != nil {
		return err
	}

	pl := pipeline.New(cfg, client, nil, client.BaseURL(), log)
	candidates, err := pl.Discover(ctx, rejectedSet)
	if err != nil {
		return err
	}

	if top > len(candidates) {
		top = len(candidates)
	}
	fmt.Printf("Top %d of %d ranked threads in r/%s:\n\n", top, len(candidates), cfg.Discovery.Subreddit)
	for i, c := range candidates[:top] {
		fmt.Printf("%3d. [%6.1f] %s\n", i+1, c.CombinedScore, c.Title)
		fmt.Printf("     %d upvotes, %d comments", c.Upvotes, c.CommentCount)
		if len(c.MatchedKeywords) > 0 {
			fmt.Printf(", keywords: %v", c.MatchedKeywords)
		}
		fmt.Printf("\n     %s\n", c.URL)
	}
	return nil
}

func loadRejectedSet(path string) (rejected.Set, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return rejected.NewSet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open rejected thread file: %w", err)
	}
	defer f.Close()

	set, err := rejected.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse rejected thread file: %w", err)
	}
	return set, nil
}

func saveRejectedSet(path string, set rejected.Set, addedThisRun int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create rejected thread file: %w", err)
	}
	defer f.Close()

	if err := set.Encode(f, addedThisRun, time.Now()); err != nil {
		return fmt.Errorf("write rejected thread file: %w", err)
	}
	return nil
}

func printSummary(result *pipeline.Result) {
	s := result.Stats
	fmt.Printf("\nCollection complete: %d accepted, %d rejected\n", s.Accepted, s.Rejected)
	fmt.Printf("  Threads processed:     %d (%d under relaxed thresholds)\n", s.ThreadsProcessed, s.RelaxedThreads)
	fmt.Printf("  Candidates ranked:     %d\n", s.CandidatesRanked)
	fmt.Printf("  Hard negatives pruned: %d\n", s.HardNegativeFiltered)
	fmt.Printf("  Low potential pruned:  %d\n", s.LowPotentialFiltered)

	if len(s.CategoryCounts) > 0 {
		fmt.Println("  Categories:")
		for category, n := range s.CategoryCounts {
			fmt.Printf("    %-25s %d\n", category, n)
		}
	}
}
