package cli

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/meridianchain/meridian/internal/chainstate"
	"github.com/meridianchain/meridian/internal/node"
	"github.com/meridianchain/meridian/mmr"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Stream the merkle log's leaves, one hex digest per line",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	state, err := chainstate.Open(chainstatePath(cfg))
	if err != nil {
		return fmt.Errorf("export: opening chainstate: %w", err)
	}
	defer state.Close()

	mmrSize, err := state.MMRSize()
	if err != nil {
		return fmt.Errorf("export: reading mmr size: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	log := node.New(mmrSize, store)

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("export: creating %s: %w", exportOut, err)
		}
		defer f.Close()
		out = f
	}
	w := bufio.NewWriter(out)
	defer w.Flush()

	var count uint64
	for pos := uint64(0); pos < log.MMRSize(); pos++ {
		if mmr.PosHeightInTree(pos) != 0 {
			continue // internal node, not a leaf
		}
		elem, found, err := log.Elem(pos)
		if err != nil {
			return fmt.Errorf("export: reading pos %d: %w", pos, err)
		}
		if !found {
			return fmt.Errorf("export: leaf at pos %d missing from store", pos)
		}
		if _, err := fmt.Fprintln(w, hex.EncodeToString(elem[:])); err != nil {
			return fmt.Errorf("export: writing: %w", err)
		}
		count++
	}

	fmt.Fprintf(os.Stderr, "exported %d leaves\n", count)
	return nil
}
