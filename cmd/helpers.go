package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	cfgpkg "github.com/KaramelBytes/tweetsift-cli/internal/config"
	"github.com/KaramelBytes/tweetsift-cli/internal/dataset"
	"github.com/KaramelBytes/tweetsift-cli/internal/manifest"
	"github.com/KaramelBytes/tweetsift-cli/internal/parser"
	"github.com/KaramelBytes/tweetsift-cli/internal/utils"
	"go.uber.org/zap"
)

// expandInputs resolves globs and literal paths, dropping duplicates.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// keep literal paths so the loader reports a precise error
			matches = []string{arg}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, dataset.Configf("input", "no input files matched")
	}
	sort.Strings(files)
	return files, nil
}

// outputDirs assigns one output directory per input. A single input writes
// into root; several inputs get a subdirectory each, named after the file and
// suffixed on collision.
func outputDirs(root string, files []string) []string {
	if len(files) == 1 {
		return []string{root}
	}
	out := make([]string, len(files))
	used := map[string]int{}
	for i, f := range files {
		base := filepath.Base(f)
		safe := strings.TrimSuffix(base, filepath.Ext(base))
		if safe == "" {
			safe = "dataset"
		}
		used[safe]++
		if n := used[safe]; n > 1 {
			safe = fmt.Sprintf("%s__%d", safe, n)
		}
		out[i] = filepath.Join(root, safe)
	}
	return out
}

// loadTable reads path and checks that it has rows and that the text and
// label columns exist.
func loadTable(c *cfgpkg.Global, path string) (*dataset.Table, error) {
	t, err := parser.LoadFile(path, c.ParserOptions())
	if err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", path, dataset.ErrEmptyDataset)
	}
	if err := dataset.RequireColumns(t, c.TextColumn, c.LabelColumn); err != nil {
		return nil, err
	}
	logger.Debug("loaded table", zap.String("path", path), zap.Int("rows", t.Len()), zap.Strings("columns", t.Columns()))
	return t, nil
}

// writeArtifact writes data to dir/name atomically and records the outcome
// in the manifest. Failures are returned, never fatal to sibling artifacts.
func writeArtifact(m *manifest.Run, kind, dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	err := utils.EnsureDir(dir)
	if err == nil {
		err = utils.SafeWriteFile(path, data)
	}
	if err != nil {
		err = fmt.Errorf("write %s: %w", path, err)
		logger.Error("artifact not written", zap.String("kind", kind), zap.Error(err))
	}
	if m != nil {
		m.AddArtifact(kind, path, len(data), err)
	}
	return err
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "⚠ Warning: "+format+"\n", args...)
}
