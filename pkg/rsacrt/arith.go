package rsacrt

import "math/big"

// Isqrt computes the integer square root of a non-negative n using Newton's
// method, starting from 2^⌈bitlen(n)/2⌉ and iterating
// current = (current + n/current) / 2 until successive values differ by at
// most one. It returns the root and true only when n is a perfect square.
// n must not be negative; negative discriminants are rejected by the caller.
func Isqrt(n *big.Int) (*big.Int, bool) {
	prev := new(big.Int)
	cur := new(big.Int).Lsh(one, uint(n.BitLen()+1)/2)
	diff := new(big.Int)
	for diff.Sub(prev, cur).CmpAbs(one) > 0 {
		prev.Set(cur)
		diff.Quo(n, cur)
		cur.Add(cur, diff)
		cur.Rsh(cur, 1)
	}
	root := prev
	if cur.Cmp(prev) < 0 {
		root = cur
	}
	if diff.Mul(root, root).Cmp(n) != 0 {
		return nil, false
	}
	return root, true
}

// SolveQuadratic returns an integer root of a·x² + b·x + c = 0, restricted
// to the "+" branch of the quadratic formula x = (−b + √(b²−4ac)) / 2a.
// All steps use exact integer arithmetic: the discriminant must be a perfect
// square and 2a must divide the numerator evenly, otherwise ok is false.
func SolveQuadratic(a, b, c *big.Int) (*big.Int, bool) {
	disc := new(big.Int).Mul(a, c)
	disc.Lsh(disc, 2)
	disc.Sub(new(big.Int).Mul(b, b), disc)
	if disc.Sign() < 0 {
		return nil, false
	}
	root, ok := Isqrt(disc)
	if !ok {
		return nil, false
	}
	numerator := root.Sub(root, b)
	twoA := disc.Lsh(a, 1) // discriminant buffer no longer needed
	quo, rem := new(big.Int).QuoRem(numerator, twoA, new(big.Int))
	if rem.Sign() != 0 {
		return nil, false
	}
	return quo, true
}

// trailingZeros returns the exponent of the largest power of two dividing x.
// x must be non-zero.
func trailingZeros(x *big.Int) uint {
	var s uint
	for x.Bit(int(s)) == 0 {
		s++
	}
	return s
}

// isProperFactor reports whether f is a non-trivial proper divisor of n.
func isProperFactor(f, n *big.Int) bool {
	if f == nil || f.Cmp(one) <= 0 || f.Cmp(n) >= 0 {
		return false
	}
	return new(big.Int).Mod(n, f).Sign() == 0
}
