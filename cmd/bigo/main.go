package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sort"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"

	"github.com/asymptotic-dev/bigo/internal/mcpserver"
	"github.com/asymptotic-dev/bigo/pkg/analyzer"
	"github.com/asymptotic-dev/bigo/pkg/cache"
	"github.com/asymptotic-dev/bigo/pkg/config"
	"github.com/asymptotic-dev/bigo/pkg/models"
	"github.com/asymptotic-dev/bigo/pkg/output"
	"github.com/asymptotic-dev/bigo/pkg/progress"
	"github.com/asymptotic-dev/bigo/pkg/scanner"
	"github.com/asymptotic-dev/bigo/pkg/watch"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

// loadConfig resolves the effective configuration, honoring the global
// --config flag when set.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		return cfg, nil
	}
	return config.LoadOrDefault(), nil
}

// newEstimator builds an estimator from config settings.
func newEstimator(cfg *config.Config) *analyzer.Estimator {
	var est *analyzer.Estimator
	if cfg.Analysis.Fingerprints {
		est = analyzer.NewEstimator()
	} else {
		est = analyzer.NewEstimatorWithRules(nil)
	}
	est.SetWorkers(cfg.Analysis.Workers)
	return est
}

func main() {
	app := &cli.App{
		Name:     "bigo",
		Usage:    "Big-O complexity estimation for C and C++ code",
		Version:  version,
		Metadata: make(map[string]interface{}),
		Description: `Bigo statically estimates the worst-case time complexity of every
function in a C or C++ codebase, from nested loops and recursion patterns
down to recognizable algorithm shapes like binary search.

Estimates are heuristic upper bounds, not proofs.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"BIGO_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown, toon",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Disable caching",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
			&cli.StringFlag{
				Name:  "pprof",
				Usage: "Enable pprof profiling and write to specified prefix (creates <prefix>.cpu.pprof and <prefix>.mem.pprof)",
			},
		},
		Before: func(c *cli.Context) error {
			if pprofPrefix := c.String("pprof"); pprofPrefix != "" {
				cpuFile, err := os.Create(pprofPrefix + ".cpu.pprof")
				if err != nil {
					return fmt.Errorf("failed to create CPU profile: %w", err)
				}
				if err := pprof.StartCPUProfile(cpuFile); err != nil {
					cpuFile.Close()
					return fmt.Errorf("failed to start CPU profile: %w", err)
				}
				// Store file handle for cleanup
				c.App.Metadata["pprofCPU"] = cpuFile
			}
			return nil
		},
		After: func(c *cli.Context) error {
			if pprofPrefix := c.String("pprof"); pprofPrefix != "" {
				// Stop CPU profile
				pprof.StopCPUProfile()
				if cpuFile, ok := c.App.Metadata["pprofCPU"].(*os.File); ok {
					cpuFile.Close()
					color.Green("CPU profile written to %s.cpu.pprof", pprofPrefix)
				}

				// Write memory profile
				memFile, err := os.Create(pprofPrefix + ".mem.pprof")
				if err != nil {
					return fmt.Errorf("failed to create memory profile: %w", err)
				}
				defer memFile.Close()

				runtime.GC() // Get up-to-date statistics
				if err := pprof.WriteHeapProfile(memFile); err != nil {
					return fmt.Errorf("failed to write memory profile: %w", err)
				}
				color.Green("Memory profile written to %s.mem.pprof", pprofPrefix)
			}
			return nil
		},
		Commands: []*cli.Command{
			analyzeCmd(),
			watchCmd(),
			mcpCmd(),
			cacheCmd(),
			configCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Estimate Big-O complexity of functions",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max-degree",
				Usage: "Highest polynomial degree allowed before a warning (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "no-fingerprints",
				Usage: "Disable structural pattern matching",
			},
			&cli.BoolFlag{
				Name:  "fail-on-warnings",
				Usage: "Exit with code 2 when any function exceeds thresholds",
			},
		},
		Action: runAnalyzeCmd,
	}
}

func runAnalyzeCmd(c *cli.Context) error {
	paths := getPaths(c)

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("max-degree") {
		cfg.Thresholds.MaxDegree = c.Int("max-degree")
	}
	if c.Bool("no-fingerprints") {
		cfg.Analysis.Fingerprints = false
	}

	scan := scanner.NewScanner(cfg)

	var files []string
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("invalid path %s: %w", path, err)
		}
		found, err := scan.ScanDir(absPath)
		if err != nil {
			return fmt.Errorf("failed to scan directory %s: %w", path, err)
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	cacheEnabled := cfg.Cache.Enabled && !c.Bool("no-cache")
	fileCache, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, cacheEnabled)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}

	var cached []models.FileAnalysis
	var pending []string
	for _, f := range files {
		if fa, ok := fileCache.GetFileAnalysis(f); ok {
			cached = append(cached, *fa)
		} else {
			pending = append(pending, f)
		}
	}

	est := newEstimator(cfg)
	defer est.Close()

	tracker := progress.NewTracker("Estimating complexity...", len(pending))
	analysis, err := est.AnalyzeProjectWithProgress(pending, tracker.Tick)
	tracker.FinishSuccess()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	for i := range analysis.Files {
		if err := fileCache.SetFileAnalysis(analysis.Files[i].Path, &analysis.Files[i]); err != nil {
			color.Yellow("Cache write failed for %s: %v", analysis.Files[i].Path, err)
		}
	}

	if len(cached) > 0 {
		analysis.Files = append(analysis.Files, cached...)
		sort.Slice(analysis.Files, func(i, j int) bool {
			return analysis.Files[i].Path < analysis.Files[j].Path
		})
		analysis.Summary = analyzer.Summarize(analysis.Files)
	}

	thresholds := models.Thresholds{
		MaxDegree:       cfg.Thresholds.MaxDegree,
		FlagExponential: cfg.Thresholds.FlagExponential,
		FlagEstimates:   cfg.Thresholds.FlagEstimates,
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if err := formatter.Output(output.BuildReport(analysis, thresholds)); err != nil {
		return err
	}

	if (c.Bool("verbose") || cfg.Output.Verbose) && formatter.Format() == output.FormatText {
		formatter.Info("%d files analyzed, %d served from cache", len(pending), len(cached))
	}

	if c.Bool("fail-on-warnings") {
		exceeded := 0
		for _, fa := range analysis.Files {
			for _, fn := range fa.Functions {
				if thresholds.Exceeds(fn.Complexity) {
					exceeded++
				}
			}
		}
		if exceeded > 0 {
			return cli.Exit(fmt.Sprintf("%d functions exceed complexity thresholds", exceeded), 2)
		}
	}

	return nil
}

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Watch for file changes and re-estimate",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "debounce",
				Usage: "Debounce duration (overrides config)",
			},
		},
		Action: runWatchCmd,
	}
}

func runWatchCmd(c *cli.Context) error {
	paths := getPaths(c)

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	if c.IsSet("debounce") {
		debounce = c.Duration("debounce")
	}

	absPath, err := filepath.Abs(paths[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	watcher, err := watch.NewWatcher(absPath, cfg, debounce)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	cacheEnabled := cfg.Cache.Enabled && !c.Bool("no-cache")
	fileCache, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, cacheEnabled)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}

	watcher.SetCallback(func(changedPath string) {
		est := newEstimator(cfg)
		fa, err := est.AnalyzeFile(changedPath)
		est.Close()
		if err != nil {
			color.Red("Analysis error: %v", err)
			return
		}

		fmt.Printf("%s: %d functions\n", changedPath, len(fa.Functions))
		for _, fn := range fa.Functions {
			display := fn.Display
			if cfg.Output.Color {
				display = output.ComplexityColor(fn.Complexity.Class(), fn.Display)
			}
			fmt.Printf("  %s:%d %s  %s - %s\n", fa.Path, fn.StartLine, fn.Name, display, fn.Reason)
		}

		if err := fileCache.SetFileAnalysis(changedPath, fa); err != nil {
			color.Yellow("Cache write failed: %v", err)
		}
	})

	// Handle Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nStopping watch...")
		cancel()
	}()

	return watcher.Start(ctx)
}

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run as a Model Context Protocol server over stdio",
		Description: `Exposes complexity estimation as MCP tools so coding agents can ask
for the Big-O profile of a project or a single function body.`,
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return mcpserver.NewServer(version).Run(ctx)
}

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the analysis cache",
		Subcommands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show cache statistics",
				Action: runCacheStatsCmd,
			},
			{
				Name:   "clear",
				Usage:  "Remove all cached analysis results",
				Action: runCacheClearCmd,
			},
		},
	}
}

func runCacheStatsCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	fileCache, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}

	stats, err := fileCache.GetStats()
	if err != nil {
		return fmt.Errorf("failed to read cache stats: %w", err)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	table := output.NewTable(
		"Cache",
		[]string{"Stat", "Value"},
		[][]string{
			{"Directory", cfg.Cache.Dir},
			{"Entries", fmt.Sprintf("%d", stats.Entries)},
			{"Total size", fmt.Sprintf("%d bytes", stats.TotalSize)},
			{"Oldest entry", stats.OldestAge.Round(time.Second).String()},
			{"Newest entry", stats.NewestAge.Round(time.Second).String()},
		},
		nil,
		stats,
	)
	return formatter.Output(table)
}

func runCacheClearCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	fileCache, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}

	if err := fileCache.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	color.Green("Cache cleared")
	return nil
}

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Subcommands: []*cli.Command{
			{
				Name:   "validate",
				Usage:  "Validate a configuration file",
				Action: runConfigValidateCmd,
			},
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: runConfigShowCmd,
			},
		},
	}
}

func runConfigValidateCmd(c *cli.Context) error {
	source := c.String("config")
	if source == "" {
		source = config.FindConfig()
	}

	cfg, err := loadConfig(c)
	if err != nil {
		color.Red("Configuration validation failed:")
		fmt.Printf("  - %s\n", err)
		return err
	}
	if err := cfg.Validate(); err != nil {
		color.Red("Configuration validation failed:")
		fmt.Printf("  - %s\n", err)
		return err
	}

	if source != "" {
		color.Green("Configuration valid: %s", source)
	} else {
		color.Yellow("No config file found. Default configuration is valid.")
	}
	return nil
}

func runConfigShowCmd(c *cli.Context) error {
	source := c.String("config")
	if source == "" {
		source = config.FindConfig()
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if source != "" {
		fmt.Printf("# Configuration from: %s\n\n", source)
	} else {
		fmt.Println("# Default configuration (no config file found)")
	}

	content, err := toml.Marshal(*cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Print(string(content))

	return nil
}
