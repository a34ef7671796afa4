package cmd

import (
	"fmt"
	"os"

	"github.com/KaramelBytes/tweetsift-cli/internal/analysis"
	"github.com/KaramelBytes/tweetsift-cli/internal/report"
	"github.com/KaramelBytes/tweetsift-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	expMetrics  []string
	expOutput   string
	expMarkdown bool
	expRaw      bool
)

var exploreCmd = &cobra.Command{
	Use:   "explore <csv>",
	Short: "Compute per-label statistics without cleaning",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		metrics, err := analysis.ParseMetrics(expMetrics)
		if err != nil {
			return err
		}
		names, err := c.Names()
		if err != nil {
			return err
		}
		tbl, err := loadTable(c, args[0])
		if err != nil {
			return err
		}
		ex, err := analysis.NewExplorer(tbl, c.ExplorerOptions())
		if err != nil {
			return err
		}
		st, err := ex.Run(cmd.Context(), metrics...)
		if err != nil {
			return err
		}

		var out []byte
		switch {
		case expMarkdown:
			out = []byte(st.Markdown(names.Labels(c.Scheme())))
		case expRaw:
			out, err = report.Raw(st, c.Scheme()).Marshal(c.JSONIndent)
		default:
			out, err = report.Format(st, c.Scheme(), names).Marshal(c.JSONIndent)
		}
		if err != nil {
			return err
		}

		if expOutput != "" {
			if err := utils.SafeWriteFile(expOutput, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(os.Stderr, "✓ Wrote statistics to %s\n", expOutput)
			return nil
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
	exploreCmd.Flags().StringSliceVar(&expMetrics, "metrics", nil, "comma-separated metrics to compute (default all)")
	exploreCmd.Flags().StringVarP(&expOutput, "output", "o", "", "optional path to write the statistics")
	exploreCmd.Flags().BoolVar(&expMarkdown, "markdown", false, "print a human summary instead of JSON")
	exploreCmd.Flags().BoolVar(&expRaw, "raw", false, "keep raw label codes and full-precision averages")
	exploreCmd.MarkFlagsMutuallyExclusive("markdown", "raw")
}
