// Package cli implements the meridian command line: init, run, miner,
// export, import, reset-data, following the reference node's own
// subcommand vocabulary.
package cli

import (
	"fmt"

	"github.com/meridianchain/meridian/internal/config"
	"github.com/meridianchain/meridian/internal/nodelog"
	"github.com/spf13/cobra"
)

const meridianVersion = "0.1.0"

var (
	configPath string
	version    bool
)

var rootCmd = &cobra.Command{
	Use:   "meridian",
	Short: "Meridian is a blockchain full node",
	Long:  `Meridian runs a full node backed by an append-only merkle log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if version {
			fmt.Printf("meridian version %s\n", meridianVersion)
			return nil
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "meridian.json", "path to the node config file")
	rootCmd.Flags().BoolVar(&version, "version", false, "print the version and exit")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(minerCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetDataCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger, err := nodelog.New(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}
	nodelog.Set(logger)
	return cfg, nil
}
