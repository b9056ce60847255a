package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/meridianchain/meridian/internal/config"
	"github.com/meridianchain/meridian/internal/identity"
	"github.com/spf13/cobra"
)

var initDataDir string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a node's data directory and config file",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringVar(&initDataDir, "data-dir", "", "data directory (overrides the config default)")
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("init: %s already exists", configPath)
	}

	cfg := config.Default()
	if initDataDir != "" {
		cfg.Node.DataDir = initDataDir
	}

	if err := os.MkdirAll(cfg.Node.DataDir, 0755); err != nil {
		return fmt.Errorf("init: creating data directory: %w", err)
	}
	if err := config.Save(configPath, cfg); err != nil {
		return fmt.Errorf("init: writing config: %w", err)
	}

	id, err := identity.Load(cfg.Node.DataDir)
	if err != nil {
		return fmt.Errorf("init: generating node identity: %w", err)
	}

	fmt.Printf("initialized node %s\n", id)
	fmt.Printf("  config:    %s\n", configPath)
	fmt.Printf("  data dir:  %s\n", filepath.Clean(cfg.Node.DataDir))
	return nil
}
