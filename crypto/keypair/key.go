package keypair

import (
	"bytes"
	"crypto/ed25519"
	"crypto/elliptic"
	"encoding/hex"
	"io"
	"math/big"

	"github.com/user00000001/tesrasdk-go/errors"
)

var ErrBadKey = errors.Derive(errors.ErrInvalidParams, "malformed key")

// PrivateKey holds the secret of any supported key type. D is the
// big-endian scalar for ECDSA and SM2 keys and the 32-byte seed for
// Ed25519 keys.
type PrivateKey struct {
	Type  KeyType
	Curve CurveLabel
	D     []byte
}

// NewPrivateKey checks that d is a valid secret for the type and curve.
func NewPrivateKey(d []byte, t KeyType, c CurveLabel) (*PrivateKey, error) {
	k := &PrivateKey{Type: t, Curve: c, D: append([]byte(nil), d...)}
	if t == EDDSA {
		if c != ED25519 {
			return nil, errors.WithDetailf(ErrUnsupportedKey, "%s key on curve %s", t, c)
		}
		if len(d) != ed25519.SeedSize {
			return nil, errors.WithDetailf(ErrBadKey, "ed25519 seed is %d bytes", len(d))
		}
		return k, nil
	}
	crv, err := curve(t, c)
	if err != nil {
		return nil, err
	}
	n := new(big.Int).SetBytes(d)
	if n.Sign() == 0 || n.Cmp(crv.Params().N) >= 0 {
		return nil, errors.WithDetail(ErrBadKey, "scalar out of range")
	}
	return k, nil
}

// PrivateKeyFromHex decodes a hex secret. An empty type selects a
// P-256 ECDSA key, the network's default.
func PrivateKeyFromHex(s string, t KeyType, c CurveLabel) (*PrivateKey, error) {
	d, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.WithDetailf(ErrBadKey, "%s", err)
	}
	if t == 0 {
		t, c = ECDSA, P256
	}
	return NewPrivateKey(d, t, c)
}

// GenerateKey makes a fresh key using randomness from rand.
func GenerateKey(rand io.Reader, t KeyType, c CurveLabel) (*PrivateKey, error) {
	if t == EDDSA {
		seed := make([]byte, ed25519.SeedSize)
		if _, err := io.ReadFull(rand, seed); err != nil {
			return nil, errors.Wrap(err, "reading seed")
		}
		return NewPrivateKey(seed, t, c)
	}
	crv, err := curve(t, c)
	if err != nil {
		return nil, err
	}
	d, _, _, err := elliptic.GenerateKey(crv, rand)
	if err != nil {
		return nil, errors.Wrap(err, "generating key")
	}
	return NewPrivateKey(d, t, c)
}

func (k *PrivateKey) Hex() string {
	return hex.EncodeToString(k.D)
}

// DefaultScheme returns the scheme implied by the key's type and curve.
func (k *PrivateKey) DefaultScheme() (SignatureScheme, error) {
	return DefaultScheme(k.Type, k.Curve)
}

// Public derives the public key.
func (k *PrivateKey) Public() (*PublicKey, error) {
	if k.Type == EDDSA {
		if len(k.D) != ed25519.SeedSize {
			return nil, errors.WithDetail(ErrBadKey, "ed25519 seed length")
		}
		pub := ed25519.NewKeyFromSeed(k.D).Public().(ed25519.PublicKey)
		return &PublicKey{Type: EDDSA, Curve: ED25519, Ed: pub}, nil
	}
	crv, err := curve(k.Type, k.Curve)
	if err != nil {
		return nil, err
	}
	x, y := crv.ScalarBaseMult(k.D)
	return &PublicKey{Type: k.Type, Curve: k.Curve, X: x, Y: y}, nil
}

// PublicKey is an ECDSA or SM2 point (X, Y) or an Ed25519 key (Ed).
type PublicKey struct {
	Type  KeyType
	Curve CurveLabel
	X, Y  *big.Int
	Ed    ed25519.PublicKey
}

// Bytes returns the serialized key. A P-256 ECDSA key is its bare
// 33-byte compressed point; every other key is prefixed by its type
// and curve label.
func (p *PublicKey) Bytes() []byte {
	if p.Type == EDDSA {
		return append([]byte{byte(EDDSA), byte(ED25519)}, p.Ed...)
	}
	crv, err := curve(p.Type, p.Curve)
	if err != nil {
		return nil
	}
	point := elliptic.MarshalCompressed(crv, p.X, p.Y)
	if p.Type == ECDSA && p.Curve == P256 {
		return point
	}
	return append([]byte{byte(p.Type), byte(p.Curve)}, point...)
}

func (p *PublicKey) Hex() string {
	return hex.EncodeToString(p.Bytes())
}

func (p *PublicKey) Equal(q *PublicKey) bool {
	return bytes.Equal(p.Bytes(), q.Bytes())
}

// ParsePublicKey decodes the output of Bytes.
func ParsePublicKey(b []byte) (*PublicKey, error) {
	if len(b) == 33 && (b[0] == 2 || b[0] == 3) {
		return parsePoint(ECDSA, P256, b)
	}
	if len(b) < 3 {
		return nil, errors.WithDetailf(ErrBadKey, "public key is %d bytes", len(b))
	}
	t, c, data := KeyType(b[0]), CurveLabel(b[1]), b[2:]
	switch t {
	case ECDSA, SM2:
		return parsePoint(t, c, data)
	case EDDSA:
		if c != ED25519 {
			return nil, errors.WithDetailf(ErrUnsupportedKey, "%s key on curve %s", t, c)
		}
		if len(data) != ed25519.PublicKeySize {
			return nil, errors.WithDetailf(ErrBadKey, "ed25519 key is %d bytes", len(data))
		}
		return &PublicKey{Type: t, Curve: c, Ed: append(ed25519.PublicKey(nil), data...)}, nil
	}
	return nil, errors.WithDetailf(ErrUnsupportedKey, "key type 0x%02x", byte(t))
}

// PublicKeyFromHex decodes a hex serialized key.
func PublicKeyFromHex(s string) (*PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.WithDetailf(ErrBadKey, "%s", err)
	}
	return ParsePublicKey(b)
}

func parsePoint(t KeyType, c CurveLabel, data []byte) (*PublicKey, error) {
	crv, err := curve(t, c)
	if err != nil {
		return nil, err
	}
	var x, y *big.Int
	switch {
	case len(data) > 0 && data[0] == 4:
		x, y = elliptic.Unmarshal(crv, data)
	default:
		x, y = elliptic.UnmarshalCompressed(crv, data)
	}
	if x == nil {
		return nil, errors.WithDetailf(ErrBadKey, "invalid %s point", c)
	}
	return &PublicKey{Type: t, Curve: c, X: x, Y: y}, nil
}
