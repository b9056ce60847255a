// Package chainstate holds small node-local bookkeeping that is not the
// merkle log's concern: import/restart progress and the checkpoint cadence
// counter. It is deliberately separate from the MMR's own store so that
// store implementation stays a pure positional element map.
package chainstate

import (
	"encoding/binary"

	"go.etcd.io/bbolt"
)

var (
	bucketProgress = []byte("progress")

	keyImportedLeaves = []byte("imported_leaves")
	keyCheckpointTick = []byte("checkpoint_tick")
	keyMMRSize        = []byte("mmr_size")
	keyLastCheckpoint = []byte("last_checkpoint")
)

// DB wraps a bbolt database holding the node's side-state.
type DB struct {
	bolt *bbolt.DB
}

// Open opens (creating if absent) the bbolt database at path and ensures its
// buckets exist.
func Open(path string) (*DB, error) {
	bolt, err := bbolt.Open(path, 0666, nil)
	if err != nil {
		return nil, err
	}
	if err := bolt.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketProgress)
		return err
	}); err != nil {
		_ = bolt.Close()
		return nil, err
	}
	return &DB{bolt: bolt}, nil
}

// Close closes the underlying database.
func (db *DB) Close() error {
	return db.bolt.Close()
}

// ImportedLeaves returns the count of leaves successfully replayed by the
// most recent import run, or 0 if none has ever run.
func (db *DB) ImportedLeaves() (uint64, error) {
	return db.getUint64(keyImportedLeaves)
}

// SetImportedLeaves records import progress, so a crashed import can resume
// from the last successfully committed leaf rather than restarting.
func (db *DB) SetImportedLeaves(n uint64) error {
	return db.putUint64(keyImportedLeaves, n)
}

// CheckpointTick returns the number of blocks produced since the last
// published checkpoint.
func (db *DB) CheckpointTick() (uint64, error) {
	return db.getUint64(keyCheckpointTick)
}

// SetCheckpointTick updates the checkpoint cadence counter.
func (db *DB) SetCheckpointTick(n uint64) error {
	return db.putUint64(keyCheckpointTick, n)
}

// MMRSize returns the element count the node last ran with, or 0 if the
// node has never committed a leaf.
func (db *DB) MMRSize() (uint64, error) {
	return db.getUint64(keyMMRSize)
}

// SetMMRSize records the merkle log's current size, so the node can resume
// at the right position after a restart instead of replaying from empty.
func (db *DB) SetMMRSize(n uint64) error {
	return db.putUint64(keyMMRSize, n)
}

// LastCheckpoint returns the most recently published checkpoint envelope, or
// nil if the node has never published one.
func (db *DB) LastCheckpoint() ([]byte, error) {
	var data []byte
	err := db.bolt.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketProgress).Get(keyLastCheckpoint)
		if raw == nil {
			return nil
		}
		data = append([]byte(nil), raw...)
		return nil
	})
	return data, err
}

// SetLastCheckpoint persists a signed checkpoint envelope, replacing
// whichever one was published before it.
func (db *DB) SetLastCheckpoint(envelope []byte) error {
	return db.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketProgress).Put(keyLastCheckpoint, envelope)
	})
}

func (db *DB) getUint64(key []byte) (uint64, error) {
	var v uint64
	err := db.bolt.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketProgress).Get(key)
		if raw == nil {
			return nil
		}
		v = binary.BigEndian.Uint64(raw)
		return nil
	})
	return v, err
}

func (db *DB) putUint64(key []byte, v uint64) error {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], v)
	return db.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketProgress).Put(key, raw[:])
	})
}
