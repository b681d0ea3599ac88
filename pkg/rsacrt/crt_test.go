package rsacrt

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
)

func checkCrtInvariants(t *testing.T, k *CrtKey) {
	t.Helper()
	if new(big.Int).Mul(k.P, k.Q).Cmp(k.N) != 0 {
		t.Error("p·q != n")
	}
	if k.P.Cmp(k.Q) >= 0 {
		t.Errorf("Ordering violated: p = %s, q = %s", k.P, k.Q)
	}
	pMinus1 := new(big.Int).Sub(k.P, one)
	qMinus1 := new(big.Int).Sub(k.Q, one)
	if new(big.Int).Mod(k.D, pMinus1).Cmp(k.Exp1) != 0 {
		t.Error("exp1 != d mod (p−1)")
	}
	if new(big.Int).Mod(k.D, qMinus1).Cmp(k.Exp2) != 0 {
		t.Error("exp2 != d mod (q−1)")
	}
	check := new(big.Int).Mul(k.Coeff, k.Q)
	if check.Mod(check, k.P).Cmp(one) != 0 {
		t.Error("coeff·q mod p != 1")
	}
}

func TestCompleteCrt_KnownValues(t *testing.T) {
	f := &Factorization{P: big.NewInt(53), Q: big.NewInt(61)}
	params := CompleteCrt(f, big.NewInt(2753))
	if params.Exp1.Int64() != 49 {
		t.Errorf("Exp1 = %s, want 49", params.Exp1)
	}
	if params.Exp2.Int64() != 53 {
		t.Errorf("Exp2 = %s, want 53", params.Exp2)
	}
	if params.Coeff.Int64() != 20 {
		t.Errorf("Coeff = %s, want 20", params.Coeff)
	}
}

func TestNewFactorization_CanonicalOrdering(t *testing.T) {
	n := big.NewInt(3233)
	// The raw factor found may be either prime.
	for _, raw := range []int64{53, 61} {
		f, err := NewFactorization(big.NewInt(raw), n)
		if err != nil {
			t.Fatalf("NewFactorization(%d) failed: %v", raw, err)
		}
		if f.P.Int64() != 53 || f.Q.Int64() != 61 {
			t.Errorf("From factor %d: got (%s, %s), want (53, 61)", raw, f.P, f.Q)
		}
	}
}

func TestNewFactorization_Rejects(t *testing.T) {
	n := big.NewInt(143)
	for _, raw := range []int64{1, 143, 7, 200} {
		if _, err := NewFactorization(big.NewInt(raw), n); !errors.Is(err, ErrFactorizationMismatch) {
			t.Errorf("NewFactorization(%d, 143): got %v, want ErrFactorizationMismatch", raw, err)
		}
	}
}

func TestCompleteKey(t *testing.T) {
	key := textbookKey(t)
	f, err := NewFactorization(big.NewInt(61), key.N)
	if err != nil {
		t.Fatalf("NewFactorization failed: %v", err)
	}
	k, err := CompleteKey(key, f)
	if err != nil {
		t.Fatalf("CompleteKey failed: %v", err)
	}
	checkCrtInvariants(t, k)
}

func TestCompleteKey_Idempotent(t *testing.T) {
	key := textbookKey(t)
	f, err := NewFactorization(big.NewInt(53), key.N)
	if err != nil {
		t.Fatalf("NewFactorization failed: %v", err)
	}
	k1, err := CompleteKey(key, f)
	if err != nil {
		t.Fatalf("First completion failed: %v", err)
	}
	k2, err := CompleteKey(key, f)
	if err != nil {
		t.Fatalf("Second completion failed: %v", err)
	}
	if !k1.Equal(k2) {
		t.Error("Identical inputs should yield identical CRT parameters")
	}
}

func TestCompleteKey_FactorizationMismatch(t *testing.T) {
	key := textbookKey(t)
	wrong := &Factorization{P: big.NewInt(53), Q: big.NewInt(59)}
	if _, err := CompleteKey(key, wrong); !errors.Is(err, ErrFactorizationMismatch) {
		t.Fatalf("Got %v, want ErrFactorizationMismatch", err)
	}
}

func TestCompleteKey_InvalidKeyRelation(t *testing.T) {
	key := keyFromInt64s(t, 3233, 17, 2755) // d off by two
	f := &Factorization{P: big.NewInt(53), Q: big.NewInt(61)}
	if _, err := CompleteKey(key, f); !errors.Is(err, ErrInvalidKeyRelation) {
		t.Fatalf("Got %v, want ErrInvalidKeyRelation", err)
	}
}

func TestCompleteCrtKey(t *testing.T) {
	key := textbookKey(t)
	k, err := CompleteCrtKey(key.N, key.E, key.D)
	if err != nil {
		t.Fatalf("CompleteCrtKey failed: %v", err)
	}
	checkCrtInvariants(t, k)
	if k.P.Int64() != 53 || k.Q.Int64() != 61 {
		t.Errorf("Got (%s, %s), want (53, 61)", k.P, k.Q)
	}
}

func TestCompleteCrtKey_EndToEnd2048(t *testing.T) {
	key := loadTestKey2048(t)
	k, err := CompleteCrtKey(key.N, key.E, key.D)
	if err != nil {
		t.Fatalf("CompleteCrtKey failed on the 2048-bit sample: %v", err)
	}
	checkCrtInvariants(t, k)
	if !k.P.ProbablyPrime(20) {
		t.Error("Recovered p is not prime")
	}
	if !k.Q.ProbablyPrime(20) {
		t.Error("Recovered q is not prime")
	}
	t.Logf("p = %s", k.P.Text(16))
	t.Logf("q = %s", k.Q.Text(16))
}
