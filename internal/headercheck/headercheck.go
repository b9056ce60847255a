// Package headercheck runs the node's block header verification pipeline:
// version, proof-of-work, parent linkage, and timestamp bounds, each as an
// independent, composable check. No third party library models
// difficulty-target comparison or header linkage any more directly than
// big.Int and time already do, so this package is built entirely on the
// standard library.
package headercheck

import (
	"errors"
	"fmt"
	"math/big"
	"time"
)

// HeaderVersion is the only header version this node accepts.
const HeaderVersion = 1

// AllowedFutureDrift bounds how far into the future a header's timestamp
// may claim to be, relative to the verifier's local clock.
const AllowedFutureDrift = 2 * time.Hour

var (
	ErrVersion       = errors.New("headercheck: unsupported header version")
	ErrUnknownParent = errors.New("headercheck: parent header not supplied")
	ErrNumber        = errors.New("headercheck: block number does not follow parent")
	ErrTimestampOld  = errors.New("headercheck: timestamp not after median of recent ancestors")
	ErrTimestampNew  = errors.New("headercheck: timestamp too far in the future")
	ErrPow           = errors.New("headercheck: proof of work does not meet target")
)

// Header is the minimal set of fields the verification pipeline needs.
type Header struct {
	Version   uint32
	Number    uint64
	Timestamp time.Time
	ParentSum [32]byte
	Target    *big.Int // proof-of-work difficulty target
	PowHash   *big.Int // header hash interpreted as an integer, for PoW comparison
}

// Check is one independent verification step. parent is nil only for the
// genesis header.
type Check func(parent, candidate *Header) error

// Pipeline is the ordered sequence of checks Run applies.
var Pipeline = []Check{
	CheckVersion,
	CheckPow,
	CheckParentLinkage,
	CheckTimestamp,
}

// Run applies every check in Pipeline in order, stopping at (and returning)
// the first failure.
func Run(parent, candidate *Header, medianTime func(parentSum [32]byte) time.Time) error {
	for _, check := range Pipeline {
		if check == nil {
			continue
		}
		if err := check(parent, candidate); err != nil {
			return err
		}
	}
	return checkTimestampAgainstMedian(parent, candidate, medianTime)
}

func CheckVersion(_, candidate *Header) error {
	if candidate.Version != HeaderVersion {
		return fmt.Errorf("%w: got %d", ErrVersion, candidate.Version)
	}
	return nil
}

func CheckPow(_, candidate *Header) error {
	if candidate.Target == nil || candidate.PowHash == nil {
		return fmt.Errorf("%w: missing target or pow hash", ErrPow)
	}
	if candidate.PowHash.Cmp(candidate.Target) > 0 {
		return ErrPow
	}
	return nil
}

func CheckParentLinkage(parent, candidate *Header) error {
	if candidate.Number == 0 {
		return nil // genesis
	}
	if parent == nil {
		return ErrUnknownParent
	}
	if candidate.Number != parent.Number+1 {
		return fmt.Errorf("%w: parent=%d candidate=%d", ErrNumber, parent.Number, candidate.Number)
	}
	return nil
}

// CheckTimestamp bounds the candidate's timestamp against the verifier's
// local clock; the median-of-ancestors lower bound is enforced separately
// by checkTimestampAgainstMedian, since it needs access to chain history
// CheckTimestamp does not have.
func CheckTimestamp(_, candidate *Header) error {
	if candidate.Timestamp.After(time.Now().Add(AllowedFutureDrift)) {
		return ErrTimestampNew
	}
	return nil
}

func checkTimestampAgainstMedian(parent, candidate *Header, medianTime func(parentSum [32]byte) time.Time) error {
	if candidate.Number == 0 || medianTime == nil {
		return nil
	}
	min := medianTime(candidate.ParentSum)
	if !candidate.Timestamp.After(min) {
		return ErrTimestampOld
	}
	return nil
}
