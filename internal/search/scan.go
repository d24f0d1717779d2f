package search

import (
	"context"
	"iter"

	"github.com/Klingon-tech/keeta-cli/internal/account"
)

// ScanRequest selects the derivation space for Scan.
type ScanRequest struct {
	Algorithms  []string // probed in this order
	Start, End  int      // inclusive index range
	IncludeZero bool     // also yield probes with no balance
}

// Scan validates req and returns a lazy sequence of probe results.
// Nothing is queried until the sequence is ranged over, and every range
// probes afresh. Failed probes are always yielded with StatusError;
// zero-balance probes only when IncludeZero is set. If ctx is cancelled
// the sequence ends with one error candidate carrying ctx.Err().
func (e *Engine) Scan(ctx context.Context, seed []byte, req ScanRequest) (iter.Seq[Candidate], error) {
	if len(req.Algorithms) == 0 {
		return nil, ErrNoAlgorithms
	}
	if req.Start < 0 || req.Start > req.End || req.End > int(account.MaxIndex) {
		return nil, &RangeError{Start: req.Start, End: req.End}
	}
	algos := make([]account.Algorithm, 0, len(req.Algorithms))
	for _, name := range req.Algorithms {
		if name == "" {
			return nil, &account.UnknownAlgorithmError{Value: name}
		}
		algo, err := account.ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		algos = append(algos, algo)
	}
	if err := checkSeed(seed); err != nil {
		return nil, err
	}

	seed = append([]byte(nil), seed...)
	start, end := uint32(req.Start), uint32(req.End)

	return func(yield func(Candidate) bool) {
		for _, algo := range algos {
			for index := start; ; index++ {
				if err := ctx.Err(); err != nil {
					yield(Candidate{Algorithm: algo, Index: index, Status: StatusError, Err: err})
					return
				}
				c := e.probe(ctx, seed, algo, index)
				if c.Status != StatusZero || req.IncludeZero {
					if !yield(c) {
						return
					}
				}
				if index == end {
					break
				}
			}
		}
	}, nil
}
