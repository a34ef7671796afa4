package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/tweetsift-cli/internal/clean"
	"github.com/KaramelBytes/tweetsift-cli/internal/manifest"
	"github.com/KaramelBytes/tweetsift-cli/internal/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cleanOutput string

var cleanCmd = &cobra.Command{
	Use:   "clean <csv>",
	Short: "Clean the text column and write the cleaned CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		path := args[0]
		tbl, err := loadTable(c, path)
		if err != nil {
			return err
		}
		cleaner := clean.New(logger.With(zap.String("input", filepath.Base(path))))
		cleaned, rep := cleaner.Pipeline(tbl, c.TextColumn, c.LabelColumn)
		delim, _ := c.Delim()
		data, err := utils.EncodeCSV(cleaned.Records(), delim)
		if err != nil {
			return err
		}

		dir, name := c.OutputDir, c.CleanedFile
		if cleanOutput != "" {
			dir, name = filepath.Dir(cleanOutput), filepath.Base(cleanOutput)
		}
		m := manifest.New("clean", path, dir)
		m.SetFileName(c.ManifestFile)
		m.TextColumn, m.LabelColumn = c.TextColumn, c.LabelColumn
		m.RowsLoaded, m.RowsCleaned = tbl.Len(), cleaned.Len()
		m.Cleaning = rep
		m.Warnings = rep.Warnings

		werr := writeArtifact(m, manifest.KindCleaned, dir, name, data)
		if err := m.Save(); err != nil {
			warnf("failed to write manifest: %v", err)
		}
		if werr != nil {
			return werr
		}
		fmt.Printf("✓ Wrote cleaned dataset (%d rows) to %s\n", cleaned.Len(), filepath.Join(dir, name))
		for _, w := range rep.Warnings {
			warnf("%s", w)
		}
		fmt.Print(rep.Markdown())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "", "path of the cleaned CSV (default <output_dir>/<cleaned_file>)")
}
