package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"pyvet/internal/analyzer"
	"pyvet/internal/cache"
	"pyvet/internal/config"
	"pyvet/internal/crawler"
	"pyvet/internal/diag"
	"pyvet/internal/git"
	"pyvet/internal/report"
	"pyvet/internal/rules"
	"pyvet/internal/storage"
	"pyvet/internal/version"
)

var (
	rootCmd = &cobra.Command{
		Use:   "pyvet",
		Short: "Static analysis for Python codebases",
	}

	dbPath  string
	cfgPath string
	verbose bool

	outputPath    string
	jobs          int
	noCache       bool
	noStore       bool
	printFindings bool
	changedOnly   bool
	baseRef       string

	historyLimit int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Default DB path comes from the config, the flag wins when set
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the scan history database (SQLite)")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Like --db, the report path defaults from the config
	scanCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Report file path (default report.json)")
	scanCmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Concurrent file analyses (default: one per CPU)")
	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable the findings cache")
	scanCmd.Flags().BoolVar(&noStore, "no-store", false, "Skip recording the run in the history database")
	scanCmd.Flags().BoolVar(&printFindings, "print", false, "Print findings to stdout as well")
	scanCmd.Flags().BoolVar(&changedOnly, "changed-only", false, "Scan only files changed in git")
	scanCmd.Flags().StringVar(&baseRef, "base", "HEAD", "Git ref to diff against for --changed-only")

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Runs to list")
	historyCmd.AddCommand(historyShowCmd)

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig builds the effective config and installs the logger.
func loadConfig() *config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.InitLogger(cfg.Log.Format, cfg.Log.Level, verbose)
	if dbPath != "" {
		cfg.History.Path = dbPath
	}
	return cfg
}

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a Python project and write the findings report",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := "."
		if len(args) > 0 {
			path = args[0]
		}

		cfg := loadConfig()
		if outputPath == "" {
			outputPath = cfg.Report.Output
		}
		ctx := context.Background()
		started := time.Now()

		// 1. Discover files
		files, err := crawler.New(cfg.Scan.Exclude).Discover(path)
		if err != nil {
			log.Fatalf("Failed to discover files: %v", err)
		}

		// 2. Narrow to git changes when asked
		if changedOnly {
			files, err = filterChanged(path, files)
			if err != nil {
				log.Fatalf("Failed to resolve git changes: %v", err)
			}
		}

		// 3. Set up the findings cache
		opts := analyzer.Options{Jobs: jobs}
		if opts.Jobs == 0 {
			opts.Jobs = cfg.Scan.Jobs
		}
		if !noCache && !cfg.Cache.Disabled {
			c, err := cache.Open(cfg.Cache.Dir)
			if err != nil {
				slog.Warn("findings cache disabled", "err", err)
			} else {
				opts.Cache = c
			}
		}

		// 4. Analyze
		sum, err := analyzer.Run(ctx, files, opts)
		if err != nil {
			log.Fatalf("Scan failed: %v", err)
		}

		// 5. Write the report
		if err := report.WriteJSON(outputPath, sum.Diagnostics); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		if printFindings {
			report.PrintFindings(os.Stdout, sum.Diagnostics)
		}
		report.PrintSummary(os.Stdout, outputPath, sum.Diagnostics)
		slog.Debug("scan finished",
			"files", sum.Files,
			"skipped", sum.Skipped,
			"cache_hits", sum.CacheHits,
			"elapsed", time.Since(started))

		// 6. Record the run. The report is already on disk, so a broken
		// history database only costs a warning.
		if noStore {
			return
		}
		store, err := storage.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			slog.Warn("history store unavailable, run not recorded", "err", err)
			return
		}
		defer store.Close()

		run := &diag.Run{
			ID:          newRunID(started),
			StartedAt:   started,
			Root:        path,
			Files:       sum.Files,
			Diagnostics: sum.Diagnostics,
		}
		if err := store.SaveRun(ctx, run); err != nil {
			slog.Warn("failed to record run", "err", err)
		}
	},
}

// filterChanged keeps only the discovered files that differ from the base
// ref in git.
func filterChanged(root string, files []string) ([]string, error) {
	dir := root
	if fi, err := os.Stat(root); err == nil && !fi.IsDir() {
		dir = filepath.Dir(root)
	}

	changed, err := git.ChangedFiles(dir, baseRef)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(changed))
	for _, p := range changed {
		set[p] = true
	}

	var kept []string
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			continue
		}
		if set[abs] {
			kept = append(kept, f)
		}
	}
	return kept, nil
}

func newRunID(t time.Time) string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return t.UTC().Format("20060102T150405") + "-" + hex.EncodeToString(buf)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded scan runs",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		store, err := storage.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			log.Fatalf("Failed to open history database: %v", err)
		}
		defer store.Close()

		runs, err := store.ListRuns(context.Background(), historyLimit)
		if err != nil {
			log.Fatalf("Failed to list runs: %v", err)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return
		}
		for _, r := range runs {
			fmt.Printf("%s  %s  files=%d issues=%d  %s\n",
				r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Files, r.Issues, r.Root)
		}
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the findings of a recorded run",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		store, err := storage.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			log.Fatalf("Failed to open history database: %v", err)
		}
		defer store.Close()

		run, err := store.LoadRun(context.Background(), args[0])
		if err != nil {
			log.Fatalf("Failed to load run: %v", err)
		}
		fmt.Printf("Run %s (%s) scanned %d files under %s\n",
			run.ID, run.StartedAt.Local().Format("2006-01-02 15:04:05"), run.Files, run.Root)
		report.PrintFindings(os.Stdout, run.Diagnostics)
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the built-in rules",
	Run: func(cmd *cobra.Command, args []string) {
		for _, r := range rules.Registry() {
			m := r.Meta()
			fmt.Printf("%-10s %-16s %-8s %s\n", m.ID, m.Category, m.Severity, m.Summary)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
