package rsacrt

import (
	"math/big"

	"github.com/pkg/errors"
)

var one = big.NewInt(1)

// KeyMaterial is an RSA key as generated or transmitted without its CRT
// form: the modulus n, public exponent e and private exponent d, satisfying
// e·d ≡ 1 (mod λ(n)). It is read-only to this package.
type KeyMaterial struct {
	N *big.Int // modulus, product of two distinct odd primes
	E *big.Int // public exponent
	D *big.Int // private exponent
}

// NewKeyMaterial performs basic shape checks on an (n, e, d) triple. It does
// not (and cannot, without factoring) verify the key relation itself.
func NewKeyMaterial(n, e, d *big.Int) (*KeyMaterial, error) {
	if n == nil || e == nil || d == nil {
		return nil, errors.New("rsacrt: key material requires n, e and d")
	}
	if n.Sign() <= 0 || n.Bit(0) == 0 {
		return nil, errors.New("rsacrt: modulus must be a positive odd number")
	}
	if e.Cmp(one) <= 0 || d.Cmp(one) <= 0 {
		return nil, errors.New("rsacrt: exponents must be greater than one")
	}
	return &KeyMaterial{N: n, E: e, D: d}, nil
}

// Factorization holds the two prime factors of the modulus, ordered P < Q.
type Factorization struct {
	P *big.Int
	Q *big.Int
}

// NewFactorization derives the full factorization from one recovered factor.
// The raw factor may be either prime; the result is canonicalized so that
// P < Q. A factor that is trivial or does not divide n is rejected with
// ErrFactorizationMismatch.
func NewFactorization(factor, n *big.Int) (*Factorization, error) {
	if !isProperFactor(factor, n) {
		return nil, ErrFactorizationMismatch
	}
	p := new(big.Int).Set(factor)
	q := new(big.Int).Quo(n, factor)
	switch p.Cmp(q) {
	case 0:
		// n must be a product of two distinct primes
		return nil, ErrFactorizationMismatch
	case 1:
		p, q = q, p
	}
	return &Factorization{P: p, Q: q}, nil
}

// CrtParameters are the precomputed values used for CRT-accelerated
// decryption. Invariant: Coeff·Q ≡ 1 (mod P).
type CrtParameters struct {
	Exp1  *big.Int // d mod (p−1)
	Exp2  *big.Int // d mod (q−1)
	Coeff *big.Int // q⁻¹ mod p
}

// CrtKey is a complete RSA private key in CRT form.
type CrtKey struct {
	KeyMaterial
	Factorization
	CrtParameters
}

// Equal reports whether two completed keys hold identical values.
func (k *CrtKey) Equal(other *CrtKey) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.N.Cmp(other.N) == 0 &&
		k.E.Cmp(other.E) == 0 &&
		k.D.Cmp(other.D) == 0 &&
		k.P.Cmp(other.P) == 0 &&
		k.Q.Cmp(other.Q) == 0 &&
		k.Exp1.Cmp(other.Exp1) == 0 &&
		k.Exp2.Cmp(other.Exp2) == 0 &&
		k.Coeff.Cmp(other.Coeff) == 0
}
