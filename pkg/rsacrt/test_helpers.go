package rsacrt

import (
	"crypto/rand"
	"math/big"
	"testing"
)

// loadTestKey2048 reads the documented 2048-bit sample key from the fixtures
// directory.
func loadTestKey2048(t *testing.T) *KeyMaterial {
	t.Helper()
	parser := &JSONParser{}
	keys, err := parser.ParseKeyMaterial("../../fixtures/test_key_2048.json")
	if err != nil {
		t.Fatalf("Failed to load 2048-bit fixture: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("Expected one key in fixture, got %d", len(keys))
	}
	return keys[0]
}

// textbookKey returns the toy RSA key p=53, q=61, n=3233, e=17, d=2753.
func textbookKey(t *testing.T) *KeyMaterial {
	t.Helper()
	return keyFromInt64s(t, 3233, 17, 2753)
}

func keyFromInt64s(t *testing.T, n, e, d int64) *KeyMaterial {
	t.Helper()
	key, err := NewKeyMaterial(big.NewInt(n), big.NewInt(e), big.NewInt(d))
	if err != nil {
		t.Fatalf("Failed to build key material: %v", err)
	}
	return key
}

// generateKeyMaterial produces a fresh valid (n, e, d) triple from two
// random primes of the given bit size. d is computed modulo φ(n), not λ(n),
// so that the cofactor relation e·d − 1 = k·(p−1)·(q−1) holds exactly and
// both search methods apply.
func generateKeyMaterial(t *testing.T, bits int, e int64) *KeyMaterial {
	t.Helper()
	eBig := big.NewInt(e)
	for {
		p, err := rand.Prime(rand.Reader, bits)
		if err != nil {
			t.Fatalf("Failed to generate prime: %v", err)
		}
		q, err := rand.Prime(rand.Reader, bits)
		if err != nil {
			t.Fatalf("Failed to generate prime: %v", err)
		}
		if p.Cmp(q) == 0 {
			continue
		}
		pMinus1 := new(big.Int).Sub(p, one)
		qMinus1 := new(big.Int).Sub(q, one)
		phi := new(big.Int).Mul(pMinus1, qMinus1)
		d := new(big.Int).ModInverse(eBig, phi)
		if d == nil {
			continue
		}
		n := new(big.Int).Mul(p, q)
		key, err := NewKeyMaterial(n, eBig, d)
		if err != nil {
			t.Fatalf("Generated invalid key material: %v", err)
		}
		return key
	}
}
