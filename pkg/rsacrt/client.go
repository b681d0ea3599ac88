package rsacrt

import (
	"context"
	"math/big"

	"github.com/pkg/errors"
)

// Client is the high-level entry point for completing RSA private keys.
type Client struct {
	strategy FactorStrategy
	parser   KeyParser
}

// NewClient creates a client using the witness search with default settings
// and a JSON key parser.
func NewClient() *Client {
	return &Client{
		strategy: NewWitnessStrategy(),
		parser:   &JSONParser{},
	}
}

// WithStrategy sets the factor-recovery strategy.
func (c *Client) WithStrategy(s FactorStrategy) *Client {
	c.strategy = s
	return c
}

// WithParser sets the key material parser used by CompleteKeyFromFile.
func (c *Client) WithParser(p KeyParser) *Client {
	c.parser = p
	return c
}

// CompleteKey recovers the two prime factors of n from the (n, e, d) triple
// and derives the CRT form of the private key.
func (c *Client) CompleteKey(ctx context.Context, n, e, d *big.Int) (*CrtKey, error) {
	key, err := NewKeyMaterial(n, e, d)
	if err != nil {
		return nil, err
	}
	factor, err := c.strategy.FindFactor(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "rsacrt: %s found no factor", c.strategy.Name())
	}
	f, err := NewFactorization(factor, n)
	if err != nil {
		return nil, err
	}
	return CompleteKey(key, f)
}

// CompleteKeyFromFile parses key material from a file and completes the
// first (n, e, d) triple found in it.
func (c *Client) CompleteKeyFromFile(ctx context.Context, path string) (*CrtKey, error) {
	keys, err := c.parser.ParseKeyMaterial(path)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, errors.Errorf("rsacrt: no key material found in %s", path)
	}
	return c.CompleteKey(ctx, keys[0].N, keys[0].E, keys[0].D)
}
