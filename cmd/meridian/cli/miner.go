package cli

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/meridianchain/meridian/internal/blockhash"
	"github.com/meridianchain/meridian/internal/chainstate"
	"github.com/meridianchain/meridian/internal/miner"
	"github.com/meridianchain/meridian/internal/node"
	"github.com/meridianchain/meridian/internal/nodelog"
	"github.com/spf13/cobra"
)

var minerInterval time.Duration

var minerCmd = &cobra.Command{
	Use:   "miner",
	Short: "Run the block production loop against a node's merkle log",
	RunE:  runMiner,
}

func init() {
	minerCmd.Flags().DurationVar(&minerInterval, "interval", 5*time.Second, "time between block production attempts")
}

func runMiner(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	state, err := chainstate.Open(chainstatePath(cfg))
	if err != nil {
		return fmt.Errorf("miner: opening chainstate: %w", err)
	}
	defer state.Close()

	mmrSize, err := state.MMRSize()
	if err != nil {
		return fmt.Errorf("miner: reading mmr size: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	log := node.New(mmrSize, store)

	var signingKey *ecdsa.PrivateKey
	if cfg.Checkpoint.KeyPath != "" {
		signingKey, err = loadSigningKey(cfg.Checkpoint.KeyPath)
		if err != nil {
			return fmt.Errorf("miner: loading checkpoint signing key: %w", err)
		}
	}

	minerCfg := miner.Config{
		CheckpointEveryNBlocks: cfg.Checkpoint.EveryNBlocks,
		SigningKey:             signingKey,
		PublishCheckpoint:      state.SetLastCheckpoint,
	}

	m := miner.New(minerCfg, persistingLog{log: log, state: state}, newToyAssembler(), nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	nodelog.L().Infow("miner: starting", "interval", minerInterval, "mmr_size", mmrSize)
	err = m.Run(ctx, minerInterval)
	if err == context.Canceled {
		return nil
	}
	return err
}

// persistingLog wraps a *node.Log so every committed push also records the
// new size in chainstate, letting a restart resume instead of replaying.
type persistingLog struct {
	log   *node.Log
	state *chainstate.DB
}

func (p persistingLog) MMRSize() uint64 { return p.log.MMRSize() }

func (p persistingLog) Push(leaf blockhash.Hash) (uint64, error) {
	return p.log.Push(leaf)
}

func (p persistingLog) Root() (blockhash.Hash, error) { return p.log.Root() }

func (p persistingLog) Commit() error {
	if err := p.log.Commit(); err != nil {
		return err
	}
	return p.state.SetMMRSize(p.log.MMRSize())
}

func (p persistingLog) PeakElements() ([]blockhash.Hash, error) { return p.log.PeakElements() }
