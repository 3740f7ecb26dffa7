package curves

import (
	"math/big"

	"filippo.io/edwards25519"
)

type Ed25519Curve struct{}

func (c *Ed25519Curve) Name() string {
	return NameEd25519
}

func (c *Ed25519Curve) Order() *big.Int {
	// l = 2^252 + 27742317777372353535851937790883648493
	s, _ := new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)
	return s
}

func (c *Ed25519Curve) Fingerprint(secret *big.Int) ([]byte, error) {
	s, err := c.scalar(secret)
	if err != nil {
		return nil, err
	}
	return new(edwards25519.Point).ScalarBaseMult(s).Bytes(), nil
}

// scalar reduces n modulo l and converts it to the little-endian canonical
// encoding edwards25519 expects.
func (c *Ed25519Curve) scalar(n *big.Int) (*edwards25519.Scalar, error) {
	bytes := new(big.Int).Mod(n, c.Order()).Bytes()

	var buf [32]byte
	// Reverse bytes for little-endian
	for i := 0; i < len(bytes); i++ {
		buf[len(bytes)-1-i] = bytes[i]
	}

	return edwards25519.NewScalar().SetCanonicalBytes(buf[:])
}
