package cli

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/meridianchain/meridian/internal/blockhash"
	"github.com/meridianchain/meridian/internal/chainstate"
	"github.com/meridianchain/meridian/internal/node"
	"github.com/spf13/cobra"
)

var importIn string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replay a leaf stream into the merkle log, rebuilding size and peaks",
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importIn, "in", "", "input file (default: stdin)")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	state, err := chainstate.Open(chainstatePath(cfg))
	if err != nil {
		return fmt.Errorf("import: opening chainstate: %w", err)
	}
	defer state.Close()

	mmrSize, err := state.MMRSize()
	if err != nil {
		return fmt.Errorf("import: reading mmr size: %w", err)
	}
	alreadyImported, err := state.ImportedLeaves()
	if err != nil {
		return fmt.Errorf("import: reading import progress: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	log := node.New(mmrSize, store)

	in := os.Stdin
	if importIn != "" {
		f, err := os.Open(importIn)
		if err != nil {
			return fmt.Errorf("import: opening %s: %w", importIn, err)
		}
		defer f.Close()
		in = f
	}

	scanner := bufio.NewScanner(in)
	var lineNum, imported uint64
	for scanner.Scan() {
		lineNum++
		if lineNum <= alreadyImported {
			continue // already replayed by a previous, interrupted run
		}

		line := scanner.Text()
		raw, err := hex.DecodeString(line)
		if err != nil {
			return fmt.Errorf("import: line %d: invalid hex: %w", lineNum, err)
		}
		if len(raw) != len(blockhash.Hash{}) {
			return fmt.Errorf("import: line %d: want %d bytes, got %d", lineNum, len(blockhash.Hash{}), len(raw))
		}
		var leaf blockhash.Hash
		copy(leaf[:], raw)

		if _, err := log.Push(leaf); err != nil {
			return fmt.Errorf("import: line %d: pushing leaf: %w", lineNum, err)
		}
		if err := log.Commit(); err != nil {
			return fmt.Errorf("import: line %d: committing: %w", lineNum, err)
		}
		if err := state.SetMMRSize(log.MMRSize()); err != nil {
			return fmt.Errorf("import: line %d: recording mmr size: %w", lineNum, err)
		}
		if err := state.SetImportedLeaves(lineNum); err != nil {
			return fmt.Errorf("import: line %d: recording import progress: %w", lineNum, err)
		}
		imported++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("import: reading input: %w", err)
	}

	fmt.Fprintf(os.Stderr, "imported %d leaves (%d already present)\n", imported, alreadyImported)
	return nil
}
