// Package peerstore tracks a minimal reputation table for gossip peers: a
// score, last-seen time, and a ban expiry. It does not implement networking
// or peer discovery itself - those are out of scope - only the scoring
// policy a real transport would call into on connection events.
//
// No third party dependency models this narrowly scoped bookkeeping any
// better than the standard library: the only state is a handful of integers
// and timestamps per peer, keyed by an opaque peer id string, kept in a
// bucket of a bbolt database the caller has already opened.
package peerstore

import (
	"encoding/json"
	"time"

	"go.etcd.io/bbolt"
)

var bucketPeers = []byte("peer_scores")

// Score is a peer's reputation; higher is better behaved.
type Score int32

// Scoring configuration, following the shape (not the exact numbers) of the
// reference node's peer store: a starting score, a threshold below which a
// peer is banned, and how long a ban lasts.
const (
	DefaultScore Score         = 100
	BanScore     Score         = 40
	BanDuration  time.Duration = 24 * time.Hour
)

// Named score adjustments a transport layer reports on connection events.
const (
	AdjustPing                 Score = 1
	AdjustFailedToPing         Score = -6
	AdjustTimeout              Score = -20
	AdjustUnexpectedDisconnect Score = -10
)

// Status records a peer's current standing.
type Status struct {
	Score       Score     `json:"score"`
	LastSeen    time.Time `json:"last_seen"`
	BannedUntil time.Time `json:"banned_until"`
}

// Banned reports whether the peer is currently under a ban.
func (s Status) Banned() bool {
	return time.Now().Before(s.BannedUntil)
}

// Store is a peerstore backed by a bbolt bucket.
type Store struct {
	bolt *bbolt.DB
}

// Open opens (creating if absent) the peer store's bucket within an
// already-open bbolt database; the caller owns the database's lifecycle.
func Open(db *bbolt.DB) (*Store, error) {
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPeers)
		return err
	}); err != nil {
		return nil, err
	}
	return &Store{bolt: db}, nil
}

// Get returns a peer's status, or DefaultScore with a zero LastSeen if the
// peer has never been recorded.
func (s *Store) Get(peerID string) (Status, error) {
	var status Status
	found := false
	err := s.bolt.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketPeers).Get([]byte(peerID))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &status)
	})
	if err != nil {
		return Status{}, err
	}
	if !found {
		status.Score = DefaultScore
	}
	return status, nil
}

// Adjust applies delta to the peer's score, updates LastSeen to now, and
// bans the peer for BanDuration if the score drops to or below BanScore.
func (s *Store) Adjust(peerID string, delta Score) (Status, error) {
	status, err := s.Get(peerID)
	if err != nil {
		return Status{}, err
	}
	status.Score += delta
	status.LastSeen = time.Now()
	if status.Score <= BanScore {
		status.BannedUntil = time.Now().Add(BanDuration)
	}
	return status, s.put(peerID, status)
}

func (s *Store) put(peerID string, status Status) error {
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return s.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPeers).Put([]byte(peerID), data)
	})
}

// Count returns the number of peers ever recorded.
func (s *Store) Count() (int, error) {
	n := 0
	err := s.bolt.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPeers).ForEach(func(_, _ []byte) error {
			n++
			return nil
		})
	})
	return n, err
}
