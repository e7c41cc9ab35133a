package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"svgserve/internal/config"
)

var configFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage svgserve configuration",
	Long:  "View and manage the svgserve configuration stored in config.toml",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a config.toml with the default settings to the user config
directory, or to the path given with --config. Refuses to overwrite an
existing file.`,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Display the effective configuration after applying the config file
and environment overrides.

Examples:
  svgserve config show                 # Human-readable output
  svgserve config show --format json   # JSON output`,
	RunE: runConfigShow,
}

var configEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "List supported environment variables",
	Long:  "Display all supported svgserve environment variable overrides",
	Run:   runConfigEnv,
}

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "human", "Output format (json, human)")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEnvCmd)
	rootCmd.AddCommand(configCmd)
}

// configInitTarget resolves where config init writes to
func configInitTarget() (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	return config.DefaultPath()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	target, err := configInitTarget()
	if err != nil {
		return fmt.Errorf("cannot determine config path: %w", err)
	}

	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("config file %s already exists", target)
	}

	if err := config.Default().Save(target); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}

	fmt.Printf("Wrote %s\n", target)
	return nil
}

// ConfigShowResponse is the JSON output format for config show
type ConfigShowResponse struct {
	ConfigPath   string               `json:"configPath,omitempty"`
	UsedDefaults bool                 `json:"usedDefaults"`
	EnvOverrides []config.EnvOverride `json:"envOverrides,omitempty"`
	Config       *config.ServerConfig `json:"config"`
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	result, err := config.Load(configFlag)
	if err != nil {
		return err
	}

	overrides, err := result.Config.ApplyEnv()
	if err != nil {
		return err
	}
	result.EnvOverrides = overrides

	if configFormat == "json" {
		return outputConfigJSON(result)
	}
	outputConfigHuman(result)
	return nil
}

func outputConfigJSON(result *config.LoadResult) error {
	response := ConfigShowResponse{
		ConfigPath:   result.ConfigPath,
		UsedDefaults: result.UsedDefaults,
		EnvOverrides: result.EnvOverrides,
		Config:       result.Config,
	}

	output, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot format output: %w", err)
	}

	fmt.Println(string(output))
	return nil
}

func outputConfigHuman(result *config.LoadResult) {
	fmt.Println("svgserve Configuration")
	fmt.Println(strings.Repeat("─", 50))

	if result.UsedDefaults {
		fmt.Println("Source: defaults (no config file found)")
	} else if result.ConfigPath != "" {
		fmt.Printf("Source: %s\n", result.ConfigPath)
	}

	if len(result.EnvOverrides) > 0 {
		fmt.Println("\nEnvironment Overrides:")
		for _, ov := range result.EnvOverrides {
			fmt.Printf("  %s=%s → %s\n", ov.EnvVar, ov.Value, ov.Field)
		}
	}

	cfg := result.Config
	defaults := config.Default()

	fmt.Println()
	printConfigValue("bind", cfg.BindAddress, defaults.BindAddress)
	printConfigValue("port", cfg.Port, defaults.Port)
	printConfigValue("index", cfg.IndexRoute, defaults.IndexRoute)
	printConfigValue("root", cfg.RootDir, defaults.RootDir)

	fmt.Println("\nlogging:")
	printConfigValue("  format", cfg.Logging.Format, defaults.Logging.Format)
	printConfigValue("  level", cfg.Logging.Level, defaults.Logging.Level)

	fmt.Println()
	fmt.Println("Use 'svgserve config show --format json' for JSON output")
	fmt.Println("Use 'svgserve config env' to see supported environment variables")
}

func printConfigValue(name string, value, defaultValue interface{}) {
	modified := ""
	if fmt.Sprintf("%v", value) != fmt.Sprintf("%v", defaultValue) {
		modified = fmt.Sprintf(" (default: %v)", defaultValue)
	}
	fmt.Printf("%s: %v%s\n", name, value, modified)
}

func runConfigEnv(cmd *cobra.Command, args []string) {
	fmt.Println("Supported svgserve Environment Variables")
	fmt.Println(strings.Repeat("─", 50))
	fmt.Println()

	for _, v := range config.SupportedEnvVars() {
		fmt.Printf("  %-22s %s\n", v[0], v[1])
	}

	fmt.Println()
	fmt.Println("Example usage:")
	fmt.Println("  SVGSERVE_PORT=8080 svgserve ./diagrams")
	fmt.Println("  SVGSERVE_LOG_LEVEL=debug svgserve")
}
