// Package keypair implements the key and signature formats of the
// network: ECDSA over the NIST curves, SM2 with SM3, and Ed25519.
//
// Keys and signatures serialize in the node's wire forms. Signing and
// verification are local; a remote or hardware signer can stand in for
// Sign through the Signer interface.
package keypair

import (
	"crypto/elliptic"
	"fmt"
	"strings"

	"github.com/tjfoc/gmsm/sm2"

	"github.com/user00000001/tesrasdk-go/errors"
)

// KeyType is the algorithm family of a key.
type KeyType byte

const (
	ECDSA KeyType = 0x12
	SM2   KeyType = 0x13
	EDDSA KeyType = 0x14
)

func (t KeyType) String() string {
	switch t {
	case ECDSA:
		return "ECDSA"
	case SM2:
		return "SM2"
	case EDDSA:
		return "EDDSA"
	}
	return fmt.Sprintf("KeyType(0x%02x)", byte(t))
}

// CurveLabel names the curve of a key in serialized form.
type CurveLabel byte

const (
	P224      CurveLabel = 1
	P256      CurveLabel = 2
	P384      CurveLabel = 3
	P521      CurveLabel = 4
	SM2P256V1 CurveLabel = 20
	ED25519   CurveLabel = 25
)

func (c CurveLabel) String() string {
	switch c {
	case P224:
		return "P-224"
	case P256:
		return "P-256"
	case P384:
		return "P-384"
	case P521:
		return "P-521"
	case SM2P256V1:
		return "sm2p256v1"
	case ED25519:
		return "ed25519"
	}
	return fmt.Sprintf("CurveLabel(%d)", byte(c))
}

// SignatureScheme selects the digest and algorithm of a signature.
type SignatureScheme byte

const (
	SHA224withECDSA SignatureScheme = iota
	SHA256withECDSA
	SHA384withECDSA
	SHA512withECDSA
	SHA3_224withECDSA
	SHA3_256withECDSA
	SHA3_384withECDSA
	SHA3_512withECDSA
	RIPEMD160withECDSA
	SM3withSM2
	SHA512withEdDSA
)

var schemeNames = [...]string{
	SHA224withECDSA:    "SHA224withECDSA",
	SHA256withECDSA:    "SHA256withECDSA",
	SHA384withECDSA:    "SHA384withECDSA",
	SHA512withECDSA:    "SHA512withECDSA",
	SHA3_224withECDSA:  "SHA3-224withECDSA",
	SHA3_256withECDSA:  "SHA3-256withECDSA",
	SHA3_384withECDSA:  "SHA3-384withECDSA",
	SHA3_512withECDSA:  "SHA3-512withECDSA",
	RIPEMD160withECDSA: "RIPEMD160withECDSA",
	SM3withSM2:         "SM3withSM2",
	SHA512withEdDSA:    "SHA512withEdDSA",
}

func (s SignatureScheme) String() string {
	if int(s) < len(schemeNames) {
		return schemeNames[s]
	}
	return fmt.Sprintf("SignatureScheme(%d)", byte(s))
}

var ErrUnsupportedScheme = errors.Derive(errors.ErrUnsupportedScheme, "unsupported signature scheme")

// ParseScheme returns the scheme with the given name, ignoring case.
func ParseScheme(name string) (SignatureScheme, error) {
	for i, n := range schemeNames {
		if strings.EqualFold(n, name) {
			return SignatureScheme(i), nil
		}
	}
	return 0, errors.WithDetailf(ErrUnsupportedScheme, "unknown scheme %q", name)
}

// keyType returns the key family a scheme signs with.
func (s SignatureScheme) keyType() (KeyType, bool) {
	switch {
	case s <= RIPEMD160withECDSA:
		return ECDSA, true
	case s == SM3withSM2:
		return SM2, true
	case s == SHA512withEdDSA:
		return EDDSA, true
	}
	return 0, false
}

// checkScheme reports whether scheme can sign with keys of type t.
func checkScheme(t KeyType, scheme SignatureScheme) error {
	kt, ok := scheme.keyType()
	if !ok {
		return errors.WithDetailf(ErrUnsupportedScheme, "unknown scheme %d", byte(scheme))
	}
	if kt != t {
		return errors.WithDetailf(ErrUnsupportedScheme, "%s cannot sign with a %s key", scheme, t)
	}
	return nil
}

// curve returns the elliptic curve for an ECDSA or SM2 key.
func curve(t KeyType, c CurveLabel) (elliptic.Curve, error) {
	switch {
	case t == ECDSA && c == P224:
		return elliptic.P224(), nil
	case t == ECDSA && c == P256:
		return elliptic.P256(), nil
	case t == ECDSA && c == P384:
		return elliptic.P384(), nil
	case t == ECDSA && c == P521:
		return elliptic.P521(), nil
	case t == SM2 && c == SM2P256V1:
		return sm2.P256Sm2(), nil
	}
	return nil, errors.WithDetailf(ErrUnsupportedKey, "%s key on curve %s", t, c)
}

var ErrUnsupportedKey = errors.Derive(errors.ErrUnsupportedScheme, "unsupported key type")

// DefaultScheme returns the scheme used when a caller does not pick
// one. The key's type and curve must be a known combination.
func DefaultScheme(t KeyType, c CurveLabel) (SignatureScheme, error) {
	switch t {
	case ECDSA, SM2:
		if _, err := curve(t, c); err != nil {
			return 0, err
		}
		if t == SM2 {
			return SM3withSM2, nil
		}
		return SHA256withECDSA, nil
	case EDDSA:
		if c == ED25519 {
			return SHA512withEdDSA, nil
		}
	}
	return 0, errors.WithDetailf(ErrUnsupportedKey, "%s key on curve %s", t, c)
}
