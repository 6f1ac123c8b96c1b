package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matsen/crystal/internal/config"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get or set repository configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the repository configuration",
	RunE:  runConfigGet,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	if humanOutput {
		fmt.Printf("pdf_root:                %s\n", cfg.PDFRoot)
		fmt.Printf("pdf_reader:              %s\n", cfg.PDFReader)
		fmt.Printf("cermine_jar:             %s\n", cfg.CermineJar)
		fmt.Printf("java_bin:                %s\n", cfg.JavaBin)
		fmt.Printf("extract_timeout_seconds: %d\n", cfg.ExtractTimeoutSeconds)
		fmt.Printf("match_threshold:         %d\n", cfg.Threshold())
	} else {
		outputJSON(cfg)
	}
	return nil
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a repository configuration value.

Keys: pdf_root, pdf_reader, cermine_jar, java_bin,
extract_timeout_seconds, match_threshold

Example:
  crystal config set cermine_jar ~/tools/cermine.jar`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	key, value := args[0], args[1]
	switch key {
	case "pdf_root":
		if err := config.ValidatePDFRoot(value); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg.PDFRoot = value
	case "pdf_reader":
		if err := config.ValidatePDFReader(value); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg.PDFReader = value
	case "cermine_jar":
		if err := config.ValidateCermineJar(value); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg.CermineJar = value
	case "java_bin":
		cfg.JavaBin = value
	case "extract_timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			exitWithError(ExitConfigError, "extract_timeout_seconds must be a non-negative integer")
		}
		cfg.ExtractTimeoutSeconds = n
	case "match_threshold":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 100 {
			exitWithError(ExitConfigError, "match_threshold must be in 1..100")
		}
		cfg.MatchThreshold = n
	default:
		exitWithError(ExitConfigError, "unknown config key: %s", key)
	}

	if err := cfg.Save(repoRoot); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Set %s = %s\n", key, value)
	} else {
		outputJSON(map[string]string{"status": "updated", "key": key, "value": value})
	}
	return nil
}
