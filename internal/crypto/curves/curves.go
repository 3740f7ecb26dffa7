// Package curves computes public fingerprints of a recovered secret: the
// compressed encoding of secret·G on a named curve. A fingerprint can be
// compared with a published key without disclosing the secret itself.
package curves

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/smallyu/go-sss-recover/pkg/sss"
)

// Curve defines the operations needed to fingerprint a secret.
type Curve interface {
	// Name returns the name of the curve.
	Name() string

	// Order returns the order of the base point (group order).
	Order() *big.Int

	// Fingerprint reduces secret modulo Order and returns the compressed
	// serialization of secret·G.
	Fingerprint(secret *big.Int) ([]byte, error)
}

const (
	NameSecp256k1 = "secp256k1"
	NameEd25519   = "ed25519"
)

// ByName returns the curve registered under name (case-insensitive).
func ByName(name string) (Curve, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameSecp256k1:
		return NewSecp256k1(), nil
	case NameEd25519:
		return &Ed25519Curve{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", sss.ErrUnsupportedCurve, name)
	}
}

// FingerprintHex is a convenience wrapper returning the hex encoding of
// c.Fingerprint(big.NewInt(secret)).
func FingerprintHex(c Curve, secret int64) (string, error) {
	fp, err := c.Fingerprint(big.NewInt(secret))
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(fp), nil
}

type Secp256k1 struct{}

func (c *Secp256k1) Name() string {
	return NameSecp256k1
}

func (c *Secp256k1) Order() *big.Int {
	return secp256k1.S256().Params().N
}

func (c *Secp256k1) Fingerprint(secret *big.Int) ([]byte, error) {
	k := new(big.Int).Mod(secret, c.Order())
	if k.Sign() == 0 {
		return nil, errors.New("curves: secret is zero modulo the secp256k1 order")
	}

	var s secp256k1.ModNScalar
	s.SetByteSlice(k.Bytes())

	var p secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&s, &p)
	p.ToAffine()

	return secp256k1.NewPublicKey(&p.X, &p.Y).SerializeCompressed(), nil
}

// NewSecp256k1 returns a new instance of the Secp256k1 curve wrapper
func NewSecp256k1() Curve {
	return &Secp256k1{}
}
