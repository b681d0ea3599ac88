package rsacrt

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"math/big"

	"github.com/pkg/errors"
)

const privateKeyPemType = "RSA PRIVATE KEY"

// ToRSAPrivateKey converts the completed key into the standard library
// representation, validated and with the CRT values precomputed.
func (k *CrtKey) ToRSAPrivateKey() (*rsa.PrivateKey, error) {
	if !k.E.IsInt64() || k.E.Int64() > int64(maxInt) {
		return nil, errors.New("rsacrt: public exponent does not fit the crypto/rsa representation")
	}
	priv := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{
			N: new(big.Int).Set(k.N),
			E: int(k.E.Int64()),
		},
		D:      new(big.Int).Set(k.D),
		Primes: []*big.Int{new(big.Int).Set(k.P), new(big.Int).Set(k.Q)},
	}
	if err := priv.Validate(); err != nil {
		return nil, errors.Wrap(err, "rsacrt: completed key failed validation")
	}
	priv.Precompute()
	return priv, nil
}

const maxInt = int(^uint(0) >> 1)

// EncodePrivateKeyPEM renders the completed key as a PKCS#1 PEM block,
// CRT parameters included.
func EncodePrivateKeyPEM(k *CrtKey) ([]byte, error) {
	priv, err := k.ToRSAPrivateKey()
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{
		Type:  privateKeyPemType,
		Bytes: x509.MarshalPKCS1PrivateKey(priv),
	}), nil
}

// DecodePrivateKeyPEM parses a PKCS#1 PEM private key back into a CrtKey.
func DecodePrivateKeyPEM(b []byte) (*CrtKey, error) {
	block, _ := pem.Decode(b)
	if block == nil {
		return nil, errors.New("rsacrt: no PEM block found")
	}
	if block.Type != privateKeyPemType {
		return nil, errors.New("rsacrt: invalid PEM block type")
	}
	priv, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, errors.Wrap(err, "rsacrt: failed to parse PKCS#1 key")
	}
	return CompletedKeyFromRSA(priv)
}

// CompletedKeyFromRSA rebuilds a CrtKey from a standard library private key
// that already carries its two primes, running the same validation as the
// recovery path.
func CompletedKeyFromRSA(priv *rsa.PrivateKey) (*CrtKey, error) {
	if len(priv.Primes) != 2 {
		return nil, errors.New("rsacrt: key must have exactly two primes")
	}
	key, err := NewKeyMaterial(priv.N, big.NewInt(int64(priv.E)), priv.D)
	if err != nil {
		return nil, err
	}
	f, err := NewFactorization(priv.Primes[0], priv.N)
	if err != nil {
		return nil, err
	}
	return CompleteKey(key, f)
}
