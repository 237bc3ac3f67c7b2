package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"warpeace/internal/config"
	"warpeace/internal/workspace"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage warpeace configuration",
	Long: `Manage warpeace configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (WARPEACE_*, e.g. WARPEACE_INPUT_BOOK)
3. Config file (~/.warpeace/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Configuration file: %s\n\n", used)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(yamlData)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long:  `Create a default configuration file at <workspace>/config.yaml listing every option.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		root := viper.GetString("workspace")
		if root == "" {
			if root, err = workspace.DefaultRoot(); err != nil {
				return err
			}
		}
		if _, err := workspace.EnsureAt(root); err != nil {
			return err
		}
		path, err := writeDefaultConfig(root)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created default configuration: %s\n", path)
		return nil
	},
}

// writeDefaultConfig writes the defaults under root and refuses to replace
// an existing file.
func writeDefaultConfig(root string) (path string, err error) {
	path = workspace.ConfigPath(root)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file already exists: %s", path)
	}

	yamlData, err := yaml.Marshal(config.Default())
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close config file: %w", closeErr)
		}
	}()

	header := "# warpeace configuration\n" +
		"#\n" +
		"# Empty war_terms / peace_terms select the built-in lists.\n" +
		"# Every key can be overridden with WARPEACE_<SECTION>_<KEY>.\n\n"
	if _, err := f.WriteString(header); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	if _, err := f.Write(yamlData); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
