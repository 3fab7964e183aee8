package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"charity_dao/config"
)

var (
	dataDir string
	envFile string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "datadir", "d", "", "Data directory holding config.json, state and the journal")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", config.EnvFilename, "Optional .env file with TREASURY_* overrides")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(proposalsCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "treasuryd",
	Short: "Governed charity treasury",
	Long:  "Runs and inspects a charity treasury where stakeholders propose, vote on and release payouts from a pooled fund.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges defaults, datadir/config.json and the environment, in that order.
func loadConfig() (config.Local, error) {
	cfg, err := config.LoadConfigFromDisk(dataDir)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyEnv(envFile); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func reportErrorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
