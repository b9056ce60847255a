package mmr

import "errors"

// ErrGetRootOnEmpty is returned by (*MMR).Root when the mmr holds no elements.
// It signals a contract violation by the caller rather than a data integrity
// problem.
var ErrGetRootOnEmpty = errors.New("mmr: get root on empty mmr")

// ErrInconsistentStore is returned when a position the engine's logic
// requires to exist was absent from the store, or the batch. This indicates
// store corruption, an invalid mmr size, or unsafe concurrent mutation of the
// underlying store; callers should treat it as fatal.
var ErrInconsistentStore = errors.New("mmr: inconsistent store")
