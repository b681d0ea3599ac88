package rsacrt

import (
	"context"
	"math/big"

	"github.com/pkg/errors"
)

// ErrSearchExhausted is returned when a bounded factor search runs out of
// candidates without finding a factor. The unbounded defaults never return
// it.
var ErrSearchExhausted = errors.New("rsacrt: search exhausted without finding a factor")

// FactorStrategy defines the interface for factor-recovery strategies.
// Implement this interface to plug a custom factoring method into a Client.
type FactorStrategy interface {
	// FindFactor attempts to recover a proper factor of key.N. Bounded
	// searches report exhaustion as ErrSearchExhausted.
	FindFactor(ctx context.Context, key *KeyMaterial) (*big.Int, error)

	// Name returns a human-readable name for this strategy.
	Name() string
}

// SearchConfig bounds and parallelizes a factor search. The zero value is
// the compatibility default: unbounded and serial, matching the original
// algorithms.
type SearchConfig struct {
	// MaxAttempts caps the number of candidates tried (witness bases or
	// cofactor values). 0 = unbounded.
	MaxAttempts int64

	// NumWorkers controls parallelization of the witness base search.
	// 0 or 1 = serial; values above 1 enable the worker pool; a negative
	// value auto-detects from the CPU count.
	NumWorkers int
}

// DefaultSearchConfig returns the compatibility default: unbounded, serial.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{}
}

// WitnessStrategy recovers a factor through the square-root-of-unity witness
// search. This is the primary method: it converges fast for any valid key
// regardless of the size of e.
type WitnessStrategy struct {
	Config SearchConfig
}

// NewWitnessStrategy creates a witness-search strategy with default settings.
func NewWitnessStrategy() *WitnessStrategy {
	return &WitnessStrategy{Config: DefaultSearchConfig()}
}

// WithConfig sets the search configuration for the strategy.
func (s *WitnessStrategy) WithConfig(cfg SearchConfig) *WitnessStrategy {
	s.Config = cfg
	return s
}

// Name returns the name of this strategy.
func (s *WitnessStrategy) Name() string {
	return "WitnessSearch"
}

// FindFactor implements the FactorStrategy interface.
func (s *WitnessStrategy) FindFactor(ctx context.Context, key *KeyMaterial) (*big.Int, error) {
	if s.Config.NumWorkers == 0 || s.Config.NumWorkers == 1 {
		return witnessSearch(ctx, key.E, key.D, key.N, s.Config.MaxAttempts)
	}
	return parallelWitnessSearch(ctx, key.E, key.D, key.N, s.Config.MaxAttempts, s.Config.NumWorkers)
}

// CofactorStrategy recovers a factor through the Diophantine cofactor
// search. Effective when the public exponent is small; the expected number
// of candidates grows with e.
type CofactorStrategy struct {
	Config SearchConfig
}

// NewCofactorStrategy creates a cofactor-search strategy with default
// settings.
func NewCofactorStrategy() *CofactorStrategy {
	return &CofactorStrategy{Config: DefaultSearchConfig()}
}

// WithConfig sets the search configuration for the strategy.
func (s *CofactorStrategy) WithConfig(cfg SearchConfig) *CofactorStrategy {
	s.Config = cfg
	return s
}

// Name returns the name of this strategy.
func (s *CofactorStrategy) Name() string {
	return "CofactorSearch"
}

// FindFactor implements the FactorStrategy interface. The candidate
// cofactors are tried in increasing order; NumWorkers is ignored.
func (s *CofactorStrategy) FindFactor(ctx context.Context, key *KeyMaterial) (*big.Int, error) {
	return cofactorSearch(ctx, key.N, key.E, key.D, s.Config.MaxAttempts)
}
