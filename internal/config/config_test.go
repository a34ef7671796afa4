package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/tweetsift-cli/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, "Text", c.TextColumn)
	assert.Equal(t, "Biased", c.LabelColumn)
	assert.Equal(t, dataset.DefaultScheme(), c.Scheme())
	assert.Equal(t, "tweets_dataset_cleaned.csv", c.CleanedFile)
	assert.Equal(t, "results.json", c.ResultsFile)
	assert.Equal(t, 4, c.JSONIndent)
	assert.Equal(t, 10, c.ExplorerOptions().CommonWordsTop)
	assert.Equal(t, 3, c.ExplorerOptions().LongestTop)
	assert.Equal(t, ',', c.ParserOptions().Delimiter)
	assert.Contains(t, c.ParserOptions().NAValues, "NaN")

	names, err := c.Names()
	require.NoError(t, err)
	assert.Equal(t, "antisemitic", names["1"])
	assert.Equal(t, "non_antisemitic", names["0"])
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("text_column: Tweet\nlongest_top: 5\n"), 0o644))
	t.Setenv("TWEETSIFT_LONGEST_TOP", "7")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Tweet", c.TextColumn)
	assert.Equal(t, 7, c.LongestTop)
}

func TestSaveThenLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c, err := Load("")
	require.NoError(t, err)
	c.Delimiter = ";"
	c.PositiveName = "biased"
	require.NoError(t, Save(c, ""))

	_, err = os.Stat(filepath.Join(home, ".tweetsift", "config.yaml"))
	require.NoError(t, err)

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ';', got.ParserOptions().Delimiter)
	assert.Equal(t, "biased", got.PositiveName)
}

func TestLoadBrokenFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("text_column: [unclosed\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejects(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cases := map[string]func(*Global){
		"same columns":   func(c *Global) { c.LabelColumn = c.TextColumn },
		"empty text":     func(c *Global) { c.TextColumn = " " },
		"delimiter":      func(c *Global) { c.Delimiter = ";;" },
		"quote":          func(c *Global) { c.Delimiter = `"` },
		"negative top":   func(c *Global) { c.CommonWordsTop = -1 },
		"nested file":    func(c *Global) { c.ResultsFile = "a/b.json" },
		"log level":      func(c *Global) { c.LogLevel = "loud" },
		"chained names":  func(c *Global) { c.PositiveName = "0" },
		"same codes":     func(c *Global) { c.NegativeLabel = c.PositiveLabel },
		"indent too big": func(c *Global) { c.JSONIndent = 12 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c, err := Load("")
			require.NoError(t, err)
			mutate(c)
			err = c.Validate()
			assert.True(t, dataset.IsConfigError(err), "got %v", err)
		})
	}
}

func TestDelimTab(t *testing.T) {
	c := &Global{Delimiter: `\t`}
	r, err := c.Delim()
	require.NoError(t, err)
	assert.Equal(t, '\t', r)
}
