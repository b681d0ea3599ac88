// Package rsacrt recovers the prime factorization of an RSA modulus from a
// working (n, e, d) triple and derives the complete Chinese-Remainder-Theorem
// (CRT) form of the private key: the primes p and q, the per-prime exponents
// d mod (p−1) and d mod (q−1), and the coefficient q⁻¹ mod p.
//
// The factorization uses the fact that e·d − 1 is a multiple of the group
// order of (ℤ/nℤ)*. Two methods are implemented:
//
//   - Witness search (the primary method, Handbook of Applied Cryptography
//     §8.2.2(i)): hunt for a non-trivial square root of unity mod n and
//     extract a factor with a gcd.
//   - Cofactor search: guess the multiplier k in e·d − 1 = k·(p−1)·(q−1)
//     and solve the resulting quadratic for p with exact integer arithmetic.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/rsa-crt-recover/pkg/rsacrt"
//
//	// Create a client with default settings
//	client := rsacrt.NewClient()
//
//	// Complete a key that was transmitted without its CRT form
//	key, err := client.CompleteKey(ctx, n, e, d)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("p = %s\nq = %s\n", key.P.Text(16), key.Q.Text(16))
//
// # Customization
//
// You can bound or parallelize the search:
//
//	strategy := rsacrt.NewWitnessStrategy().
//	    WithConfig(rsacrt.SearchConfig{
//	        MaxAttempts: 1 << 16,
//	        NumWorkers:  8,
//	    })
//
//	client := rsacrt.NewClient().WithStrategy(strategy)
//
// # Custom Strategies
//
// Implement the FactorStrategy interface to plug in a custom factoring
// method:
//
//	type MyStrategy struct{}
//
//	func (s *MyStrategy) FindFactor(ctx context.Context, key *rsacrt.KeyMaterial) (*big.Int, error) {
//	    // Your custom factoring logic
//	}
//
//	func (s *MyStrategy) Name() string {
//	    return "MyCustomStrategy"
//	}
//
//	client := rsacrt.NewClient().WithStrategy(&MyStrategy{})
//
// Both built-in searches are unbounded by default: on a triple that does not
// satisfy the RSA key relation they may never return. Hosts needing bounded
// latency should set SearchConfig.MaxAttempts or cancel the context.
package rsacrt
