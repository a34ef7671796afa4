package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/KaramelBytes/tweetsift-cli/internal/analysis"
	"github.com/KaramelBytes/tweetsift-cli/internal/dataset"
	"github.com/KaramelBytes/tweetsift-cli/internal/logging"
	"github.com/KaramelBytes/tweetsift-cli/internal/parser"
	"github.com/KaramelBytes/tweetsift-cli/internal/report"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Input columns and label encoding
	TextColumn    string   `mapstructure:"text_column" yaml:"text_column"`
	LabelColumn   string   `mapstructure:"label_column" yaml:"label_column"`
	PositiveLabel string   `mapstructure:"positive_label" yaml:"positive_label"`
	NegativeLabel string   `mapstructure:"negative_label" yaml:"negative_label"`
	NAValues      []string `mapstructure:"na_values" yaml:"na_values"`
	Delimiter     string   `mapstructure:"delimiter" yaml:"delimiter"`

	// Display names used in results.json
	PositiveName    string `mapstructure:"positive_name" yaml:"positive_name"`
	NegativeName    string `mapstructure:"negative_name" yaml:"negative_name"`
	UnspecifiedName string `mapstructure:"unspecified_name" yaml:"unspecified_name"`

	// Statistics
	CommonWordsTop int `mapstructure:"common_words_top" yaml:"common_words_top"`
	LongestTop     int `mapstructure:"longest_top" yaml:"longest_top"`

	// Outputs
	OutputDir    string `mapstructure:"output_dir" yaml:"output_dir"`
	CleanedFile  string `mapstructure:"cleaned_file" yaml:"cleaned_file"`
	ResultsFile  string `mapstructure:"results_file" yaml:"results_file"`
	ManifestFile string `mapstructure:"manifest_file" yaml:"manifest_file"`
	JSONIndent   int    `mapstructure:"json_indent" yaml:"json_indent"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Dir returns ~/.tweetsift.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".tweetsift"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.tweetsift/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TWEETSIFT")
	v.AutomaticEnv()

	v.SetDefault("text_column", "Text")
	v.SetDefault("label_column", "Biased")
	v.SetDefault("positive_label", "1")
	v.SetDefault("negative_label", "0")
	v.SetDefault("na_values", dataset.DefaultNAValues)
	v.SetDefault("delimiter", ",")
	v.SetDefault("positive_name", "antisemitic")
	v.SetDefault("negative_name", "non_antisemitic")
	v.SetDefault("unspecified_name", "unspecified")
	v.SetDefault("common_words_top", 10)
	v.SetDefault("longest_top", 3)
	v.SetDefault("output_dir", "results")
	v.SetDefault("cleaned_file", "tweets_dataset_cleaned.csv")
	v.SetDefault("results_file", "results.json")
	v.SetDefault("manifest_file", "run.json")
	v.SetDefault("json_indent", 4)
	v.SetDefault("log_level", "info")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// a missing file is fine; a broken one is not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Validate reports the first invalid setting as a *dataset.ConfigError.
func (c *Global) Validate() error {
	if strings.TrimSpace(c.TextColumn) == "" {
		return dataset.Configf("text_column", "must not be empty")
	}
	if strings.TrimSpace(c.LabelColumn) == "" {
		return dataset.Configf("label_column", "must not be empty")
	}
	if c.TextColumn == c.LabelColumn {
		return dataset.Configf("label_column", "must differ from text_column (%q)", c.TextColumn)
	}
	if strings.TrimSpace(c.PositiveLabel) == "" || strings.TrimSpace(c.NegativeLabel) == "" {
		return dataset.Configf("positive_label", "label codes must not be empty")
	}
	if _, err := c.Delim(); err != nil {
		return err
	}
	if c.CommonWordsTop < 0 {
		return dataset.Configf("common_words_top", "must be >= 0, got %d", c.CommonWordsTop)
	}
	if c.LongestTop < 0 {
		return dataset.Configf("longest_top", "must be >= 0, got %d", c.LongestTop)
	}
	if c.JSONIndent < 1 || c.JSONIndent > 8 {
		return dataset.Configf("json_indent", "must be between 1 and 8, got %d", c.JSONIndent)
	}
	for field, name := range map[string]string{
		"cleaned_file":  c.CleanedFile,
		"results_file":  c.ResultsFile,
		"manifest_file": c.ManifestFile,
	} {
		if name == "" || filepath.Base(name) != name {
			return dataset.Configf(field, "must be a plain file name, got %q", name)
		}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return &dataset.ConfigError{Field: "log_level", Reason: "invalid level", Err: err}
	}
	if _, err := c.Names(); err != nil {
		return err
	}
	return nil
}

// Delim returns the single-rune CSV delimiter. "\t" and "tab" mean a tab.
func (c *Global) Delim() (rune, error) {
	d := c.Delimiter
	switch d {
	case "":
		return ',', nil
	case `\t`, "tab":
		return '\t', nil
	}
	if utf8.RuneCountInString(d) != 1 {
		return 0, dataset.Configf("delimiter", "must be a single character, got %q", d)
	}
	r, _ := utf8.DecodeRuneInString(d)
	if r == '"' || r == '\n' || r == '\r' {
		return 0, dataset.Configf("delimiter", "%q cannot be used as a delimiter", d)
	}
	return r, nil
}

// Scheme returns the label encoding.
func (c *Global) Scheme() dataset.LabelScheme {
	return dataset.LabelScheme{
		Positive: strings.TrimSpace(c.PositiveLabel),
		Negative: strings.TrimSpace(c.NegativeLabel),
	}
}

// Names returns the display-name mapping for results.json.
func (c *Global) Names() (report.Names, error) {
	return report.NewNames(c.Scheme(), c.PositiveName, c.NegativeName, c.UnspecifiedName)
}

// ParserOptions returns the CSV loader options.
func (c *Global) ParserOptions() parser.Options {
	opt := parser.DefaultOptions()
	if d, err := c.Delim(); err == nil {
		opt.Delimiter = d
	}
	if c.NAValues != nil {
		opt.NAValues = c.NAValues
	}
	return opt
}

// ExplorerOptions returns the statistics options.
func (c *Global) ExplorerOptions() analysis.Options {
	return analysis.Options{
		TextColumn:     c.TextColumn,
		LabelColumn:    c.LabelColumn,
		Scheme:         c.Scheme(),
		CommonWordsTop: c.CommonWordsTop,
		LongestTop:     c.LongestTop,
	}
}
