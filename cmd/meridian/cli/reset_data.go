package cli

import (
	"fmt"
	"os"

	"github.com/meridianchain/meridian/internal/config"
	"github.com/spf13/cobra"
)

var resetDataForce bool

var resetDataCmd = &cobra.Command{
	Use:   "reset-data",
	Short: "Discard the local chainstate so the merkle log starts empty",
	RunE:  runResetData,
}

func init() {
	resetDataCmd.Flags().BoolVar(&resetDataForce, "force", false, "skip the confirmation prompt")
}

func runResetData(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if !resetDataForce {
		fmt.Printf("this deletes %s. continue? [y/N] ", chainstatePath(cfg))
		var reply string
		fmt.Scanln(&reply)
		if reply != "y" && reply != "Y" {
			fmt.Println("aborted")
			return nil
		}
	}

	if err := os.Remove(chainstatePath(cfg)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reset-data: removing chainstate: %w", err)
	}

	fmt.Println("local state discarded; the merkle log will start empty on the next run")
	return nil
}
