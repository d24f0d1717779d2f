// Package search explores the accounts derivable from a seed and ranks
// them by on-chain balance.
//
// Probes run one at a time in a fixed order: algorithms in the given
// order, indices ascending within each algorithm. Ranking and tie-breaking
// depend on that order.
package search

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/Klingon-tech/keeta-cli/internal/account"
	klog "github.com/Klingon-tech/keeta-cli/internal/log"
	"github.com/Klingon-tech/keeta-cli/pkg/types"
	"github.com/rs/zerolog"
)

// BalanceSource answers balance queries for an account.
type BalanceSource interface {
	Balances(ctx context.Context, addr types.Address) (types.Balances, error)
}

// DeriveFunc derives the account for a seed, index and algorithm.
type DeriveFunc func(seed []byte, index uint32, algo account.Algorithm) (*account.Account, error)

// Status classifies the outcome of one probe.
type Status string

const (
	StatusFound Status = "found"
	StatusZero  Status = "zero"
	StatusError Status = "error"
)

// Candidate is the outcome of probing one (algorithm, index) pair.
type Candidate struct {
	Algorithm account.Algorithm
	Index     uint32
	Account   *account.Account // nil when derivation failed
	Balances  types.Balances
	Total     *big.Int // sum of absolute balances; zero unless Status is found
	Status    Status
	Err       error // set when Status is error
}

// Address returns the candidate's account address, or the zero address.
func (c Candidate) Address() types.Address {
	if c.Account == nil {
		return types.Address{}
	}
	return c.Account.Address()
}

var (
	// ErrNotFound is returned by Search when no probe found a positive balance.
	ErrNotFound = errors.New("no derived account holds a balance")
	// ErrNoAlgorithms is returned by Scan for an empty algorithm list.
	ErrNoAlgorithms = errors.New("no algorithms to scan")
)

// RangeError reports an invalid index range.
type RangeError struct {
	Start, End int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid index range [%d, %d]: want 0 <= start <= end <= %d", e.Start, e.End, account.MaxIndex)
}

// Engine runs probes against a balance source.
type Engine struct {
	source       BalanceSource
	derive       DeriveFunc
	probeTimeout time.Duration
	log          zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithProbeTimeout bounds each balance query. A query that runs longer is
// recorded as an error probe and the search moves on.
func WithProbeTimeout(d time.Duration) Option {
	return func(e *Engine) { e.probeTimeout = d }
}

// WithDeriveFunc replaces account.Derive.
func WithDeriveFunc(f DeriveFunc) Option {
	return func(e *Engine) { e.derive = f }
}

// WithLogger replaces the search component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New creates an engine that queries source.
func New(source BalanceSource, opts ...Option) *Engine {
	e := &Engine{
		source: source,
		derive: account.Derive,
		log:    klog.Search,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// probe derives one account and queries its balances. It never fails;
// problems are recorded on the candidate.
func (e *Engine) probe(ctx context.Context, seed []byte, algo account.Algorithm, index uint32) Candidate {
	c := Candidate{Algorithm: algo, Index: index, Total: new(big.Int)}

	acct, err := e.derive(seed, index, algo)
	if err != nil {
		c.Status, c.Err = StatusError, fmt.Errorf("derive: %w", err)
		e.logProbe(c)
		return c
	}
	c.Account = acct

	qctx := ctx
	if e.probeTimeout > 0 {
		var cancel context.CancelFunc
		qctx, cancel = context.WithTimeout(ctx, e.probeTimeout)
		defer cancel()
	}

	balances, err := e.source.Balances(qctx, acct.Address())
	if err != nil {
		c.Status, c.Err = StatusError, fmt.Errorf("query balances: %w", err)
		e.logProbe(c)
		return c
	}
	c.Balances = balances

	if total := balances.Sum(); total.Sign() > 0 {
		c.Total = total
		c.Status = StatusFound
	} else {
		c.Status = StatusZero
	}
	e.logProbe(c)
	return c
}

func (e *Engine) logProbe(c Candidate) {
	ev := e.log.Debug().
		Str("algo", string(c.Algorithm)).
		Uint32("index", c.Index).
		Str("status", string(c.Status))
	if c.Account != nil {
		ev = ev.Str("address", c.Account.Address().String())
	}
	if c.Err != nil {
		ev = ev.Err(c.Err)
	}
	if c.Status == StatusFound {
		ev = ev.Str("total", c.Total.String())
	}
	ev.Msg("Probe")
}

func checkSeed(seed []byte) error {
	if len(seed) != account.SeedSize {
		return fmt.Errorf("%w: must be %d bytes, got %d", account.ErrInvalidSeed, account.SeedSize, len(seed))
	}
	return nil
}
