package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/tweetsift-cli/internal/config"
	"github.com/KaramelBytes/tweetsift-cli/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Column/output overrides (override config if set)
	flagTextColumn  string
	flagLabelColumn string
	flagOutputDir   string
	flagDelimiter   string

	// Loaded configuration
	cfg *cfgpkg.Global
	// Logger built before each command runs
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "tweetsift",
	Short: "tweetsift: explore, clean and summarize labeled tweet datasets",
	Long: `tweetsift loads a labeled tweet CSV, computes descriptive statistics per label,
cleans the text, and writes a cleaned CSV together with a results.json summary.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if cfg != nil {
			level = cfg.LogLevel
		}
		l, err := logging.New(level, debug)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)

	// Persistent global flags available to all subcommands
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ~/.tweetsift/config.yaml)")
	pf.BoolVar(&debug, "debug", false, "enable debug output")
	pf.StringVar(&flagTextColumn, "text-column", "", "name of the text column (overrides config)")
	pf.StringVar(&flagLabelColumn, "label-column", "", "name of the label column (overrides config)")
	pf.StringVar(&flagOutputDir, "output-dir", "", "directory for cleaned CSV, results and manifest (overrides config)")
	pf.StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (overrides config)")
}

func loadConfig() {
	// Optional .env next to the working directory feeds TWEETSIFT_* variables.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load .env: %v\n", err)
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
		return
	}
	cfg = c
	applyOverrides(cfg)
}

// applyOverrides copies the column and output flags onto c when set.
func applyOverrides(c *cfgpkg.Global) {
	f := rootCmd.PersistentFlags()
	if f.Changed("text-column") && flagTextColumn != "" {
		c.TextColumn = flagTextColumn
	}
	if f.Changed("label-column") && flagLabelColumn != "" {
		c.LabelColumn = flagLabelColumn
	}
	if f.Changed("output-dir") && flagOutputDir != "" {
		c.OutputDir = flagOutputDir
	}
	if f.Changed("delimiter") && flagDelimiter != "" {
		c.Delimiter = flagDelimiter
	}
}

// requireConfig returns the validated configuration.
func requireConfig() (*cfgpkg.Global, error) {
	if cfg == nil {
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		applyOverrides(c)
		cfg = c
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
