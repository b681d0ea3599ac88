package rsacrt

import (
	"math/big"

	"github.com/cronokirby/safenum"
	"github.com/pkg/errors"
)

// ErrDecryption is returned for ciphertexts outside [0, n) and for CRT
// computations that fail the re-encryption check.
var ErrDecryption = errors.New("rsacrt: decryption error")

// Decrypt applies the RSA private operation to the ciphertext c using the
// recovered CRT parameters: m₁ = c^Exp1 mod p, m₂ = c^Exp2 mod q, then
// Garner recombination through Coeff. The exponentiations run on
// constant-time naturals. To defend against errors in the CRT computation
// the result is raised back to e and compared against c before returning.
func (k *CrtKey) Decrypt(c *big.Int) (*big.Int, error) {
	if c.Sign() < 0 || c.Cmp(k.N) >= 0 {
		return nil, ErrDecryption
	}

	pMod := safenum.ModulusFromBytes(k.P.Bytes())
	qMod := safenum.ModulusFromBytes(k.Q.Bytes())
	cNat := new(safenum.Nat).SetBytes(c.Bytes())
	bits := uint(k.N.BitLen())

	m := new(safenum.Nat).Exp(cNat, new(safenum.Nat).SetBytes(k.Exp1.Bytes()), pMod)
	m2 := new(safenum.Nat).Exp(cNat, new(safenum.Nat).SetBytes(k.Exp2.Bytes()), qMod)
	m.ModSub(m, m2, pMod)
	m.ModMul(m, new(safenum.Nat).SetBytes(k.Coeff.Bytes()), pMod)
	m.Mul(m, new(safenum.Nat).SetBytes(k.Q.Bytes()), bits)
	m.Add(m, m2, bits)

	plain := new(big.Int).SetBytes(m.Bytes())
	check := new(big.Int).Exp(plain, k.E, k.N)
	if check.Cmp(c) != 0 {
		return nil, ErrDecryption
	}
	return plain, nil
}
