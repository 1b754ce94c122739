package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ShahwaizZahid/Job-Listing/config"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage joblist configuration",
	Long: `config — Manage joblist configuration

Display and manage joblist configuration settings.

Configuration sources (in order of precedence):
1. Environment variables (JOBLIST_* prefix)
2. Project config (./joblist.toml, searched up directories)
3. User config (~/.joblist/config.toml)
4. System config (/etc/joblist/config.toml)
5. Default values

Examples:
  joblist config show             # Show current configuration
  joblist config show --format json
  joblist config init             # Write the default user config
  joblist config validate         # Validate current configuration`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the current joblist configuration from all sources",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file",
	Long:  "Write a config file populated with the default settings to ~/.joblist/config.toml or the given path",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	Long:  "Validate that the current joblist configuration is valid",
	RunE:  runConfigValidate,
}

var (
	configFormat    string
	configInitForce bool
)

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file (a backup is kept)")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configValidateCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	// Load configuration so the viper instance has every source merged
	if _, err := config.Load(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings := config.GetViper().AllSettings()

	switch configFormat {
	case "json":
		data, err := json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		fmt.Println(string(data))

	case "toml":
		data, err := toml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
		fmt.Printf("# joblist configuration\n%s", string(data))

	default:
		return fmt.Errorf("unsupported format: %s (supported: toml, json)", configFormat)
	}

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := config.UserConfigPath()
	if len(args) == 1 {
		configPath = args[0]
	}

	if err := config.WriteDefault(configPath, configInitForce); err != nil {
		return err
	}

	pterm.Success.Printf("Wrote default config to %s\n", configPath)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	fmt.Println("✓ Configuration is valid")
	return nil
}
