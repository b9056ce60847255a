// Package miner runs the node's block production loop: assemble a
// candidate header, verify it, then push its hash into the merkle log and
// periodically publish a signed checkpoint. Mirrors the build-append-flush
// shape of a massif commit: the candidate is fully formed before anything is
// staged, and nothing is pushed unless every check passes.
package miner

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"time"

	"github.com/meridianchain/meridian/internal/blockhash"
	"github.com/meridianchain/meridian/internal/checkpoint"
	"github.com/meridianchain/meridian/internal/headercheck"
	"github.com/meridianchain/meridian/internal/nodelog"
)

// Log is the subset of the node's merkle log the miner drives.
type Log interface {
	MMRSize() uint64
	Push(leaf blockhash.Hash) (uint64, error)
	Root() (blockhash.Hash, error)
	Commit() error
	// PeakElements returns the elements at the current peak positions, in
	// the same decreasing-height order mmr.GetPeaks enumerates them.
	PeakElements() ([]blockhash.Hash, error)
}

// Assembler builds a candidate header for the block following parent. It is
// the miner's only collaborator for block construction - out of scope per
// the core spec, named here only as an interface.
type Assembler interface {
	Assemble(parent *headercheck.Header) (*headercheck.Header, blockhash.Hash, error)
}

// Config controls checkpoint cadence, signing, and publication.
type Config struct {
	CheckpointEveryNBlocks uint64
	SigningKey             *ecdsa.PrivateKey
	// PublishCheckpoint, if set, receives every signed checkpoint envelope
	// for durable storage. Without it, a published checkpoint is only
	// logged, not kept.
	PublishCheckpoint func(envelope []byte) error
}

// Miner drives the production loop.
type Miner struct {
	cfg                   Config
	log                   Log
	assembler             Assembler
	lastHeader            *headercheck.Header
	blocksSinceCheckpoint uint64
}

// New constructs a Miner. lastHeader is the tip header to build on (nil at
// genesis).
func New(cfg Config, log Log, assembler Assembler, lastHeader *headercheck.Header) *Miner {
	return &Miner{cfg: cfg, log: log, assembler: assembler, lastHeader: lastHeader}
}

// Run attempts to produce one block every interval until ctx is cancelled,
// then returns ctx.Err(). A failed attempt is logged and the loop goes on.
func (m *Miner) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := m.produceOne(ctx); err != nil {
				nodelog.L().Errorw("miner: block production failed", "error", err)
			}
		}
	}
}

func (m *Miner) produceOne(ctx context.Context) error {
	candidate, leaf, err := m.assembler.Assemble(m.lastHeader)
	if err != nil {
		return fmt.Errorf("miner: assembling candidate: %w", err)
	}

	if err := headercheck.Run(m.lastHeader, candidate, nil); err != nil {
		return fmt.Errorf("miner: candidate failed verification: %w", err)
	}

	pos, err := m.log.Push(leaf)
	if err != nil {
		return fmt.Errorf("miner: pushing block hash: %w", err)
	}
	if err := m.log.Commit(); err != nil {
		return fmt.Errorf("miner: committing batch: %w", err)
	}

	m.lastHeader = candidate
	m.blocksSinceCheckpoint++
	nodelog.L().Infow("miner: produced block", "number", candidate.Number, "pos", pos)

	if m.cfg.CheckpointEveryNBlocks > 0 && m.blocksSinceCheckpoint >= m.cfg.CheckpointEveryNBlocks {
		if err := m.publishCheckpoint(); err != nil {
			return err
		}
		m.blocksSinceCheckpoint = 0
	}
	return nil
}

func (m *Miner) publishCheckpoint() error {
	if m.cfg.SigningKey == nil {
		return nil
	}
	root, err := m.log.Root()
	if err != nil {
		return fmt.Errorf("miner: reading root for checkpoint: %w", err)
	}
	peaks, err := m.log.PeakElements()
	if err != nil {
		return fmt.Errorf("miner: reading peaks for checkpoint: %w", err)
	}
	state := checkpoint.NewState(m.log.MMRSize(), root, peaks)

	envelope, err := checkpoint.Sign(state, m.cfg.SigningKey)
	if err != nil {
		return fmt.Errorf("miner: signing checkpoint: %w", err)
	}
	if m.cfg.PublishCheckpoint != nil {
		if err := m.cfg.PublishCheckpoint(envelope); err != nil {
			return fmt.Errorf("miner: persisting checkpoint: %w", err)
		}
	}
	nodelog.L().Infow("miner: published checkpoint", "mmr_size", state.MMRSize, "bytes", len(envelope))
	return nil
}
