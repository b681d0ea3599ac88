package rsacrt

import (
	"context"
	"math/big"

	"github.com/pkg/errors"
)

// FindFactorByCofactorSearch returns a proper factor of n by guessing the
// cofactor k in e·d − 1 = k·(p−1)·(q−1). Eliminating q via n = p·q turns the
// relation into a quadratic in p with coefficients
//
//	a = k,  b = d·e − k·n − k − 1,  c = k·n
//
// and the search tries k = 1, 2, 3, … until SolveQuadratic produces an
// integer root that properly divides n. d is typically about the size of n,
// so the right k is on the order of e; with a small public exponent the
// search is short.
//
// The search is unbounded: a triple for which the relation does not hold in
// this exact form (for example d reduced modulo λ(n) rather than φ(n)) never
// terminates. Use CofactorStrategy to bound or cancel it.
func FindFactorByCofactorSearch(n, e, d *big.Int) (*big.Int, error) {
	return cofactorSearch(context.Background(), n, e, d, 0)
}

func cofactorSearch(ctx context.Context, n, e, d *big.Int, maxCofactor int64) (*big.Int, error) {
	de := new(big.Int).Mul(d, e)
	k := new(big.Int).Set(one)
	b := new(big.Int)
	kn := new(big.Int)
	for tried := int64(0); maxCofactor == 0 || tried < maxCofactor; tried++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "rsacrt: cofactor search canceled")
		}
		kn.Mul(k, n)
		b.Sub(de, kn)
		b.Sub(b, k)
		b.Sub(b, one)
		if p, ok := SolveQuadratic(k, b, kn); ok && isProperFactor(p, n) {
			return p, nil
		}
		k.Add(k, one)
	}
	return nil, ErrSearchExhausted
}
