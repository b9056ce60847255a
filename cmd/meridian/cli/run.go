package cli

import (
	"fmt"
	"net/http"

	"github.com/meridianchain/meridian/internal/chainstate"
	"github.com/meridianchain/meridian/internal/identity"
	"github.com/meridianchain/meridian/internal/node"
	"github.com/meridianchain/meridian/internal/nodelog"
	"github.com/meridianchain/meridian/internal/rpc"
	"github.com/spf13/cobra"
)

var runListenAddr string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the node: load its merkle log and serve the RPC surface",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runListenAddr, "listen", "", "RPC listen address (overrides config)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runListenAddr != "" {
		cfg.RPC.ListenAddr = runListenAddr
	}

	id, err := identity.Load(cfg.Node.DataDir)
	if err != nil {
		return fmt.Errorf("run: loading node identity: %w", err)
	}

	state, err := chainstate.Open(chainstatePath(cfg))
	if err != nil {
		return fmt.Errorf("run: opening chainstate: %w", err)
	}
	defer state.Close()

	mmrSize, err := state.MMRSize()
	if err != nil {
		return fmt.Errorf("run: reading mmr size: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	log := node.New(mmrSize, store)

	nodelog.L().Infow("run: node starting", "node_id", id.String(), "mmr_size", mmrSize, "listen", cfg.RPC.ListenAddr)

	server := rpc.NewServer(log)
	return http.ListenAndServe(cfg.RPC.ListenAddr, server)
}
