package rsacrt

import (
	"math/big"

	"github.com/pkg/errors"
)

// ErrFactorizationMismatch is returned when a supposed factorization does
// not multiply back to the modulus. It indicates a caller error (a violated
// factor-finder contract), not a recoverable condition.
var ErrFactorizationMismatch = errors.New("rsacrt: factors do not multiply to the modulus")

// ErrInvalidKeyRelation is returned when e and d fail the key congruence
// against a recovered factorization.
var ErrInvalidKeyRelation = errors.New("rsacrt: e and d do not satisfy the RSA key relation")

// CompleteCrt computes the CRT parameters for an ordered factorization:
// Exp1 = d mod (p−1), Exp2 = d mod (q−1), Coeff = q⁻¹ mod p.
func CompleteCrt(f *Factorization, d *big.Int) *CrtParameters {
	pMinus1 := new(big.Int).Sub(f.P, one)
	qMinus1 := new(big.Int).Sub(f.Q, one)
	return &CrtParameters{
		Exp1:  new(big.Int).Mod(d, pMinus1),
		Exp2:  new(big.Int).Mod(d, qMinus1),
		Coeff: new(big.Int).ModInverse(f.Q, f.P),
	}
}

// CompleteKey validates a factorization against the key material and derives
// the full CRT private key. The checks are defensive: p·q must equal n
// (ErrFactorizationMismatch otherwise) and the exponents must satisfy
// e·d ≡ 1 (mod p−1) and (mod q−1), which together are equivalent to the
// λ(n) congruence (ErrInvalidKeyRelation otherwise).
func CompleteKey(key *KeyMaterial, f *Factorization) (*CrtKey, error) {
	check := new(big.Int).Mul(f.P, f.Q)
	if check.Cmp(key.N) != 0 || f.P.Cmp(f.Q) == 0 {
		return nil, ErrFactorizationMismatch
	}
	ed := new(big.Int).Mul(key.E, key.D)
	congruence := new(big.Int)
	for _, prime := range []*big.Int{f.P, f.Q} {
		pMinus1 := new(big.Int).Sub(prime, one)
		if congruence.Mod(ed, pMinus1).Cmp(one) != 0 {
			return nil, ErrInvalidKeyRelation
		}
	}
	return &CrtKey{
		KeyMaterial:   *key,
		Factorization: *f,
		CrtParameters: *CompleteCrt(f, key.D),
	}, nil
}

// CompleteCrtKey recovers the factorization of n with the witness search and
// derives the complete CRT private key. It is the package-level convenience
// form of Client.CompleteKey with default settings.
func CompleteCrtKey(n, e, d *big.Int) (*CrtKey, error) {
	key, err := NewKeyMaterial(n, e, d)
	if err != nil {
		return nil, err
	}
	factor, err := FindFactorByWitnessSearch(e, d, n)
	if err != nil {
		return nil, err
	}
	f, err := NewFactorization(factor, n)
	if err != nil {
		return nil, err
	}
	return CompleteKey(key, f)
}
