package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/tweetsift-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set tweetsift configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("text_column: %s\n", cfg.TextColumn)
		fmt.Printf("label_column: %s\n", cfg.LabelColumn)
		fmt.Printf("positive_label: %s\n", cfg.PositiveLabel)
		fmt.Printf("negative_label: %s\n", cfg.NegativeLabel)
		fmt.Printf("positive_name: %s\n", cfg.PositiveName)
		fmt.Printf("negative_name: %s\n", cfg.NegativeName)
		fmt.Printf("unspecified_name: %s\n", cfg.UnspecifiedName)
		fmt.Printf("na_values: %s\n", strings.Join(quoteAll(cfg.NAValues), ", "))
		fmt.Printf("delimiter: %q\n", cfg.Delimiter)
		fmt.Printf("common_words_top: %d\n", cfg.CommonWordsTop)
		fmt.Printf("longest_top: %d\n", cfg.LongestTop)
		fmt.Printf("output_dir: %s\n", cfg.OutputDir)
		fmt.Printf("cleaned_file: %s\n", cfg.CleanedFile)
		fmt.Printf("results_file: %s\n", cfg.ResultsFile)
		fmt.Printf("manifest_file: %s\n", cfg.ManifestFile)
		fmt.Printf("json_indent: %d\n", cfg.JSONIndent)
		fmt.Printf("log_level: %s\n", cfg.LogLevel)
		if err := cfg.Validate(); err != nil {
			fmt.Printf("⚠ Warning: %v\n", err)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		next := *cfg
		switch key {
		case "text_column":
			next.TextColumn = val
		case "label_column":
			next.LabelColumn = val
		case "positive_label":
			next.PositiveLabel = val
		case "negative_label":
			next.NegativeLabel = val
		case "positive_name":
			next.PositiveName = val
		case "negative_name":
			next.NegativeName = val
		case "unspecified_name":
			next.UnspecifiedName = val
		case "na_values":
			next.NAValues = splitList(val)
		case "delimiter":
			next.Delimiter = val
		case "common_words_top":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for common_words_top: %w", err)
			}
			next.CommonWordsTop = i
		case "longest_top":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for longest_top: %w", err)
			}
			next.LongestTop = i
		case "json_indent":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for json_indent: %w", err)
			}
			next.JSONIndent = i
		case "output_dir":
			next.OutputDir = val
		case "cleaned_file":
			next.CleanedFile = val
		case "results_file":
			next.ResultsFile = val
		case "manifest_file":
			next.ManifestFile = val
		case "log_level":
			next.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := next.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(&next, cfgFile); err != nil {
			return err
		}
		cfg = &next
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// splitList splits a comma-separated value. Empty items are kept because ""
// is a meaningful NA token.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func quoteAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strconv.Quote(s)
	}
	return out
}
