package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mergelens/internal/config"
	"mergelens/internal/diffsum"
	"mergelens/internal/explain"
	"mergelens/internal/git"
	"mergelens/internal/llm"
	"mergelens/internal/report"
	"mergelens/internal/risk"
	"mergelens/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "mergelens",
	Short: "Explains merge conflicts and code changes",
	Long:  "Inspects the working tree for merge conflicts and asks a reasoning model to explain each one",
}

var verbose bool

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	explainCmd.Flags().Bool("test", false, "run against a fixed synthetic conflict instead of the repository")
	explainCmd.Flags().Bool("pick", false, "interactively select which conflicted files to explain")
	explainCmd.Flags().Bool("pager", false, "view the report in a scrollable pager")
	riskCmd.Flags().Bool("staged", false, "assess staged changes instead of the working tree")
	summarizeCmd.Flags().Bool("staged", false, "summarize staged changes instead of the working tree")

	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(riskCmd)
	rootCmd.AddCommand(summarizeCmd)
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Detect merge conflicts and explain each one",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		if err := cfg.RequireOpenRouter(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		logger := newLogger()
		defer logger.Sync()

		explainer := llm.NewOpenRouterClient(cfg.OpenRouterKey, cfg.OpenRouterBaseURL, cfg.Model, logger)

		testMode, _ := cmd.Flags().GetBool("test")
		pick, _ := cmd.Flags().GetBool("pick")
		pager, _ := cmd.Flags().GetBool("pager")

		var files []git.ConflictFile
		if testMode {
			fmt.Println("Testing with a sample conflict...")
			files = []git.ConflictFile{sampleConflictFile()}
		} else {
			fmt.Println("Checking for merge conflicts...")
			repo := git.New(".")
			files = repo.ConflictedFiles()

			if pick && len(files) > 0 {
				selected, err := ui.SelectConflictedFiles(conflictPaths(files))
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error selecting files: %v\n", err)
					os.Exit(1)
				}
				files = filterFiles(files, selected)
			}
		}

		explanations := collectExplanations(cmd.Context(), explainer, files)

		presenter := report.NewPresenter(os.Stdout)
		if pager {
			if err := ui.ShowReport("Merge Conflict Report", presenter.Render(files, explanations)); err != nil {
				fmt.Fprintf(os.Stderr, "Error showing report: %v\n", err)
				os.Exit(1)
			}
			return
		}

		if err := presenter.Present(files, explanations); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
			os.Exit(1)
		}
	},
}

var riskCmd = &cobra.Command{
	Use:   "risk [diff-file]",
	Short: "Estimate the risk of the current changes",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		if err := cfg.RequireOpenRouter(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		logger := newLogger()
		defer logger.Sync()

		staged, _ := cmd.Flags().GetBool("staged")
		diffText, err := loadDiffInput(args, staged)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading diff: %v\n", err)
			os.Exit(1)
		}
		if diffText == "" {
			fmt.Println("No changes to assess.")
			return
		}

		client := llm.NewOpenRouterClient(cfg.OpenRouterKey, cfg.OpenRouterBaseURL, cfg.Model, logger)
		completion, err := client.Complete(cmd.Context(), risk.Prompt(diffText))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error assessing risk: %v\n", err)
			os.Exit(1)
		}

		assessment := risk.Parse(completion)
		fmt.Printf("Risk Score: %d\n", assessment.Score)
		fmt.Printf("Reason: %s\n", assessment.Reason)
	},
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize [diff-file]",
	Short: "Summarize the current changes in one sentence",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		if err := cfg.RequireHuggingFace(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		logger := newLogger()
		defer logger.Sync()

		staged, _ := cmd.Flags().GetBool("staged")
		diffText, err := loadDiffInput(args, staged)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading diff: %v\n", err)
			os.Exit(1)
		}
		if diffText == "" {
			fmt.Println("No changes to summarize.")
			return
		}

		client := llm.NewHuggingFaceClient(cfg.HuggingFaceToken, cfg.SummaryURL, logger)
		summary, err := client.Complete(cmd.Context(), diffsum.SummaryPrompt(diffsum.Clean(diffText)))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error summarizing diff: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Summary:", diffsum.Polish(summary))
	},
}

// collectExplanations fans out across files and gathers one explanation per
// region. Service failures are captured as values, never abort the run, and
// results are keyed by path and region index so presentation order does not
// depend on arrival order.
func collectExplanations(ctx context.Context, explainer llm.Explainer, files []git.ConflictFile) map[report.RegionKey]report.Explanation {
	if ctx == nil {
		ctx = context.Background()
	}

	results := make(map[report.RegionKey]report.Explanation)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, file := range files {
		file := file
		g.Go(func() error {
			for i, region := range file.Regions {
				req := explain.BuildRequest(region, file.Path)
				text, err := explainer.Explain(ctx, req)

				mu.Lock()
				results[report.RegionKey{Path: file.Path, Region: i}] = report.Explanation{Text: text, Err: err}
				mu.Unlock()
			}
			return nil
		})
	}

	// Workers only record failures as values, so Wait has nothing to report.
	_ = g.Wait()
	return results
}

func loadDiffInput(args []string, staged bool) (string, error) {
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(content), nil
	}

	repo := git.New(".")
	return repo.Diff(staged)
}

func conflictPaths(files []git.ConflictFile) []string {
	var paths []string
	for _, file := range files {
		paths = append(paths, file.Path)
	}
	return paths
}

func filterFiles(files []git.ConflictFile, keep []string) []git.ConflictFile {
	wanted := make(map[string]bool, len(keep))
	for _, path := range keep {
		wanted[path] = true
	}

	var filtered []git.ConflictFile
	for _, file := range files {
		if wanted[file.Path] {
			filtered = append(filtered, file)
		}
	}
	return filtered
}

// sampleConflictFile is the fixture behind --test: a conflict with known
// spans and labels so the full flow can run outside a repository.
func sampleConflictFile() git.ConflictFile {
	return git.ConflictFile{
		Path: "sample_file.py",
		Regions: []git.ConflictRegion{
			{
				StartLine:      10,
				EndLine:        18,
				HeadBranch:     "main",
				IncomingBranch: "feature-branch",
				HeadLines: []string{
					"def calculate_total(items):",
					"    total = 0",
					"    for item in items:",
					"        total += item.price",
					"    return total",
				},
				IncomingLines: []string{
					"def calculate_total(items):",
					"    total = 0.0",
					"    for item in items:",
					"        total += item.price * (1 + item.tax_rate)",
					"    return round(total, 2)",
				},
			},
		},
	}
}
