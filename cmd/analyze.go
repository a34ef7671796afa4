package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/tweetsift-cli/internal/analysis"
	"github.com/KaramelBytes/tweetsift-cli/internal/clean"
	cfgpkg "github.com/KaramelBytes/tweetsift-cli/internal/config"
	"github.com/KaramelBytes/tweetsift-cli/internal/manifest"
	"github.com/KaramelBytes/tweetsift-cli/internal/report"
	"github.com/KaramelBytes/tweetsift-cli/internal/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	anaMetrics []string
	anaQuiet   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <csv...>",
	Short: "Explore, clean and summarize one or more tweet datasets",
	Long: `Runs the full pipeline: statistics on the raw data, then cleaning, then writes
the cleaned CSV, results.json and a run manifest into the output directory.
Several inputs (or globs) are processed in order, each into its own subdirectory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		metrics, err := analysis.ParseMetrics(anaMetrics)
		if err != nil {
			return err
		}
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		dirs := outputDirs(c.OutputDir, files)
		total := len(files)
		for i, path := range files {
			if total > 1 && !anaQuiet {
				fmt.Printf("[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			if err := runAnalyze(cmd.Context(), c, path, dirs[i], metrics); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		return nil
	},
}

// runAnalyze runs the pipeline for one input. Nothing is written unless the
// input loads and validates; after that every artifact is written on its own
// and failures are joined.
func runAnalyze(ctx context.Context, c *cfgpkg.Global, path, outDir string, metrics []analysis.Metric) error {
	names, err := c.Names()
	if err != nil {
		return err
	}
	tbl, err := loadTable(c, path)
	if err != nil {
		return err
	}
	ex, err := analysis.NewExplorer(tbl, c.ExplorerOptions())
	if err != nil {
		return err
	}
	st, err := ex.Run(ctx, metrics...)
	if err != nil {
		return err
	}
	results, err := report.Format(st, c.Scheme(), names).Marshal(c.JSONIndent)
	if err != nil {
		return err
	}

	cleaner := clean.New(logger.With(zap.String("input", filepath.Base(path))))
	cleaned, rep := cleaner.Pipeline(tbl, c.TextColumn, c.LabelColumn)
	delim, _ := c.Delim()
	csvData, err := utils.EncodeCSV(cleaned.Records(), delim)
	if err != nil {
		return err
	}

	m := manifest.New("analyze", path, outDir)
	m.SetFileName(c.ManifestFile)
	m.TextColumn, m.LabelColumn = c.TextColumn, c.LabelColumn
	m.RowsLoaded, m.RowsCleaned = tbl.Len(), cleaned.Len()
	m.Cleaning = rep
	m.Warnings = rep.Warnings
	for _, mt := range metrics {
		m.Metrics = append(m.Metrics, string(mt))
	}

	var errs []error
	if err := writeArtifact(m, manifest.KindCleaned, outDir, c.CleanedFile, csvData); err != nil {
		errs = append(errs, err)
	} else if !anaQuiet {
		fmt.Printf("✓ Wrote cleaned dataset (%d rows) to %s\n", cleaned.Len(), filepath.Join(outDir, c.CleanedFile))
	}
	if err := writeArtifact(m, manifest.KindResults, outDir, c.ResultsFile, results); err != nil {
		errs = append(errs, err)
	} else if !anaQuiet {
		fmt.Printf("✓ Wrote results to %s\n", filepath.Join(outDir, c.ResultsFile))
	}
	if err := m.Save(); err != nil {
		errs = append(errs, fmt.Errorf("write manifest: %w", err))
	}
	logger.Info("run finished", zap.String("run_id", m.ID), zap.String("input", path), zap.Int("errors", len(errs)))

	if !anaQuiet {
		for _, w := range rep.Warnings {
			warnf("%s", w)
		}
		fmt.Println()
		fmt.Print(st.Markdown(names.Labels(c.Scheme())))
		fmt.Println()
		fmt.Print(rep.Markdown())
	}
	return errors.Join(errs...)
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringSliceVar(&anaMetrics, "metrics", nil, "comma-separated metrics to compute (default all): total_tweets, average_length, common_words, longest_3_tweets, uppercase_words")
	analyzeCmd.Flags().BoolVar(&anaQuiet, "quiet", false, "suppress progress and summary output")
}
