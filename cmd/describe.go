package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/tweetsift-cli/internal/analysis"
	"github.com/KaramelBytes/tweetsift-cli/internal/parser"
	"github.com/spf13/cobra"
)

var descOutput string

var describeCmd = &cobra.Command{
	Use:   "describe <csv>",
	Short: "Print a schema and missing-value summary of a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		path := args[0]
		// describe works on any CSV, so the text/label columns are not required
		tbl, err := parser.LoadFile(path, c.ParserOptions())
		if err != nil {
			return err
		}
		p, err := analysis.Describe(filepath.Base(path), tbl)
		if err != nil {
			return err
		}
		md := p.Markdown()
		if descOutput != "" {
			if err := os.WriteFile(descOutput, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote description to %s\n", descOutput)
			return nil
		}
		fmt.Println(md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringVarP(&descOutput, "output", "o", "", "optional path to write the description (Markdown)")
}
