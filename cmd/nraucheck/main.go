// nraucheck cross-checks NRAU-Baltic contest logs: every claimed contact
// is reconciled against the counterpart's own log, graded 0/1/2 and
// tallied into per-participant scores with per-band multipliers.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"nraucheck/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "nraucheck",
	Short: "NRAU-Baltic contest log cross-checker",
	Long: `nraucheck scores the two NRAU-Baltic sessions (CW and PH) from folders
of submitted Cabrillo logs.

Every claimed QSO is located in the counterpart's log, checked for
frequency and contest-window legality and time drift, and its exchange is
graded 0/1/2. Stations that never submitted a log earn partial trust once
enough independent logs claim them. The run emits a results CSV plus one
UBN-style annotation file per participant.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		lc := zap.NewProductionConfig()
		if verbose {
			lc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = lc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// versionCmd prints build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the nraucheck version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("nraucheck 1.0.0")
	},
}

// initConfigCmd writes a default config file for editing
var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists", configPath)
		}
		cfg := config.DefaultConfig()
		if err := cfg.Save(configPath); err != nil {
			return err
		}
		logger.Info("Wrote default config", zap.String("path", configPath))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "nraucheck.yaml", "path to config file")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file when present, falling back to defaults
// (with env overrides) when the default path is absent.
func loadConfig() (*config.Config, error) {
	if rootCmd.PersistentFlags().Changed("config") {
		return config.Load(configPath)
	}
	return config.LoadOrDefault(configPath)
}
