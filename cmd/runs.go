package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/KaramelBytes/tweetsift-cli/internal/manifest"
	"github.com/spf13/cobra"
)

var runsVerbose bool

var runsCmd = &cobra.Command{
	Use:   "runs [dir]",
	Short: "List recorded pipeline runs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, file := "results", manifest.FileName
		if cfg != nil {
			root, file = cfg.OutputDir, cfg.ManifestFile
		}
		if len(args) == 1 {
			root = args[0]
		}
		if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
			fmt.Println("(no runs)")
			return nil
		}
		runs, problems, err := manifest.List(root, file)
		if err != nil {
			return err
		}
		for _, p := range problems {
			warnf("skipping unreadable manifest %s", p)
		}
		if len(runs) == 0 {
			fmt.Println("(no runs)")
			return nil
		}
		for _, r := range runs {
			fmt.Printf("- %s: %s %s (%s) rows %d → %d\n",
				r.ID, r.Command, r.Input, r.StartedAt.Format("2006-01-02 15:04:05"), r.RowsLoaded, r.RowsCleaned)
			if !runsVerbose {
				continue
			}
			for _, a := range r.Artifacts {
				status := "ok"
				if !a.Written {
					status = "failed: " + a.Error
				}
				fmt.Printf("    %s: %s (%d bytes, %s)\n", a.Kind, a.Path, a.Bytes, status)
			}
			for _, w := range r.Warnings {
				fmt.Printf("    ⚠ %s\n", w)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().BoolVarP(&runsVerbose, "verbose", "v", false, "show artifacts and warnings for each run")
}
