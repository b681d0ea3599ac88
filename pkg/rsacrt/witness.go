package rsacrt

import (
	"context"
	"math/big"
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// witnessChunk is the number of candidate bases handed to a worker at once.
const witnessChunk = 8

// FindFactorByWitnessSearch returns a proper factor of n given a public and
// private exponent pair for it, following Handbook of Applied Cryptography
// §8.2.2(i): e·d − 1 is a multiple of the order of every element mod n, so
// writing e·d − 1 = t·2^s with t odd and squaring a^t repeatedly exposes,
// with probability at least 1/2 per base, a non-trivial square root of unity
// x; gcd(x − 1, n) is then a proper factor. Bases are tried as a = 2, 3, 4, …
// and the search never returns the trivial factors 1 or n.
//
// The search is unbounded: on a triple that does not satisfy the RSA key
// relation it may never return. Use WitnessStrategy to bound or cancel it.
func FindFactorByWitnessSearch(e, d, n *big.Int) (*big.Int, error) {
	return witnessSearch(context.Background(), e, d, n, 0)
}

// witnessParams decomposes e·d − 1 into t·2^s with t odd.
func witnessParams(e, d, n *big.Int) (t *big.Int, s uint, err error) {
	ed1 := new(big.Int).Mul(e, d)
	ed1.Sub(ed1, one)
	if ed1.Sign() <= 0 || ed1.Bit(0) != 0 {
		// For n a product of two odd primes, λ(n) is even and so is any
		// multiple of it.
		return nil, 0, errors.New("rsacrt: e·d − 1 is not a positive even number")
	}
	s = trailingZeros(ed1)
	t = ed1.Rsh(ed1, s)
	return t, s, nil
}

func witnessSearch(ctx context.Context, e, d, n *big.Int, maxBases int64) (*big.Int, error) {
	t, s, err := witnessParams(e, d, n)
	if err != nil {
		return nil, err
	}
	base := big.NewInt(2)
	for tried := int64(0); maxBases == 0 || tried < maxBases; tried++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "rsacrt: witness search canceled")
		}
		if f := tryWitnessBase(base, t, s, n); f != nil {
			return f, nil
		}
		base.Add(base, one)
	}
	return nil, ErrSearchExhausted
}

// tryWitnessBase runs the squaring chain for a single base a. It returns a
// proper factor of n, or nil when the base is a dead end (the chain reaches
// 1 or n−1 before a non-trivial square root of unity appears).
func tryWitnessBase(a, t *big.Int, s uint, n *big.Int) *big.Int {
	nMinus1 := new(big.Int).Sub(n, one)
	x := new(big.Int).Exp(a, t, n)
	sq := new(big.Int)
	for i := uint(1); i <= s; i++ {
		if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
			return nil
		}
		sq.Mul(x, x)
		sq.Mod(sq, n)
		if sq.Cmp(one) == 0 {
			// x² ≡ 1 (mod n) with x ≢ ±1: a non-trivial square root
			// of unity, so gcd(x − 1, n) is a proper factor.
			f := new(big.Int).Sub(x, one)
			return f.GCD(nil, nil, f, n)
		}
		x, sq = sq, x
	}
	return nil
}

// parallelWitnessSearch evaluates candidate bases across a worker pool; the
// first success wins and cancels the rest. Different bases are independent,
// so this changes only the order in which bases are examined, not the
// contract.
func parallelWitnessSearch(ctx context.Context, e, d, n *big.Int, maxBases int64, numWorkers int) (*big.Int, error) {
	t, s, err := witnessParams(e, d, n)
	if err != nil {
		return nil, err
	}
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workChan := make(chan [2]int64, numWorkers)
	resultChan := make(chan *big.Int, 1)

	// Generate base ranges [start, end).
	go func() {
		defer close(workChan)
		start := int64(2)
		for {
			end := start + witnessChunk
			if maxBases > 0 && end > 2+maxBases {
				end = 2 + maxBases
			}
			if end <= start {
				return
			}
			select {
			case <-ctx.Done():
				return
			case workChan <- [2]int64{start, end}:
			}
			start = end
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case r, ok := <-workChan:
					if !ok {
						return
					}
					for a := r[0]; a < r[1]; a++ {
						if f := tryWitnessBase(big.NewInt(a), t, s, n); f != nil {
							select {
							case resultChan <- f:
							default:
							}
							cancel()
							return
						}
					}
				}
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case f := <-resultChan:
		return f, nil
	case <-done:
		// Workers drained: either a late result, cancellation, or a
		// bounded search that ran out of bases.
		select {
		case f := <-resultChan:
			return f, nil
		default:
		}
		if err := parent.Err(); err != nil {
			return nil, errors.Wrap(err, "rsacrt: witness search canceled")
		}
		return nil, ErrSearchExhausted
	}
}
