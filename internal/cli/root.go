package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"warpeace/internal/config"
	"warpeace/internal/logging"
	"warpeace/internal/workspace"
)

const version = "warpeace v0.3.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "warpeace",
	Short: "Classify the chapters of a book as war-related or peace-related",
	Long: `warpeace splits a book into chapters at every CHAPTER marker and compares
how densely each chapter uses a list of war terms against a list of peace terms.

A chapter is war-related when its war density is strictly greater than its
peace density, and peace-related otherwise.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		level := logging.ParseLevel(viper.GetString("log.level"))
		if verbose {
			level = slog.LevelDebug
		}
		logging.Init(cmd.ErrOrStderr(), viper.GetBool("log.json"), level)
		if used := viper.ConfigFileUsed(); used != "" {
			slog.Debug("using config file", "path", used)
		}
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.warpeace/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON")
	rootCmd.PersistentFlags().String("workspace", "", "workspace directory (default: $HOME/.warpeace)")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("log-json"))
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables. A missing default
// config file is fine; a missing --config file is not.
func initConfig() error {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
		return nil
	}

	root := viper.GetString("workspace")
	if root == "" {
		var err error
		root, err = workspace.DefaultRoot()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return nil
		}
	}
	viper.AddConfigPath(root)
	viper.SetConfigType("yaml")
	viper.SetConfigName("config")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// bindFlags maps a command's flags onto config keys. Binding happens when the
// command runs so commands sharing a key do not overwrite each other.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("bind --%s: %w", flag, err)
		}
	}
	return nil
}

// loadConfig resolves the effective configuration, filling in workspace paths.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Workspace == "" {
		root, err := workspace.DefaultRoot()
		if err != nil {
			return config.Config{}, err
		}
		cfg.Workspace = root
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = workspace.StorePath(cfg.Workspace)
	}
	return cfg, nil
}
