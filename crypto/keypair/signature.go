package keypair

import (
	"context"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"math/big"

	"github.com/tjfoc/gmsm/sm2"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"

	"github.com/user00000001/tesrasdk-go/errors"
)

// SM2UserID is the signer identity mixed into SM3withSM2 digests.
const SM2UserID = "1234567812345678"

var ErrBadSignature = errors.Derive(errors.ErrSerialization, "malformed signature")

// Signature is a scheme tag and the raw signature value: r||s for
// the ECDSA and SM2 schemes, 64 bytes for Ed25519.
type Signature struct {
	Scheme SignatureScheme
	Value  []byte
}

// Bytes returns the serialized signature. SHA256withECDSA
// signatures are the bare value; SM3withSM2 carries the user id and
// a zero byte after the scheme; other schemes carry just the scheme.
func (s *Signature) Bytes() []byte {
	switch s.Scheme {
	case SHA256withECDSA:
		return append([]byte(nil), s.Value...)
	case SM3withSM2:
		b := append([]byte{byte(s.Scheme)}, SM2UserID...)
		b = append(b, 0)
		return append(b, s.Value...)
	}
	return append([]byte{byte(s.Scheme)}, s.Value...)
}

// ParseSignature decodes the output of Bytes.
func ParseSignature(b []byte) (*Signature, error) {
	if len(b) == 64 {
		return &Signature{Scheme: SHA256withECDSA, Value: append([]byte(nil), b...)}, nil
	}
	if len(b) < 2 {
		return nil, errors.WithDetailf(ErrBadSignature, "%d bytes", len(b))
	}
	scheme := SignatureScheme(b[0])
	if _, ok := scheme.keyType(); !ok {
		return nil, errors.WithDetailf(ErrUnsupportedScheme, "scheme byte 0x%02x", b[0])
	}
	v := b[1:]
	if scheme == SM3withSM2 {
		i := 0
		for i < len(v) && v[i] != 0 {
			i++
		}
		if i == len(v) {
			return nil, errors.WithDetail(ErrBadSignature, "sm2 user id not terminated")
		}
		v = v[i+1:]
	}
	if len(v) == 0 || len(v)%2 != 0 {
		return nil, errors.WithDetailf(ErrBadSignature, "%s value is %d bytes", scheme, len(v))
	}
	return &Signature{Scheme: scheme, Value: append([]byte(nil), v...)}, nil
}

// Signer is a signing capability. Implementations may block on a
// device or a remote service and must honor ctx.
type Signer interface {
	Sign(ctx context.Context, key *PrivateKey, scheme SignatureScheme, msg []byte) (*Signature, error)
}

// LocalSigner signs in-process.
type LocalSigner struct{}

func (LocalSigner) Sign(ctx context.Context, key *PrivateKey, scheme SignatureScheme, msg []byte) (*Signature, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Sign(key, scheme, msg)
}

func schemeHash(scheme SignatureScheme) hash.Hash {
	switch scheme {
	case SHA224withECDSA:
		return sha256.New224()
	case SHA256withECDSA:
		return sha256.New()
	case SHA384withECDSA:
		return sha512.New384()
	case SHA512withECDSA:
		return sha512.New()
	case SHA3_224withECDSA:
		return sha3.New224()
	case SHA3_256withECDSA:
		return sha3.New256()
	case SHA3_384withECDSA:
		return sha3.New384()
	case SHA3_512withECDSA:
		return sha3.New512()
	case RIPEMD160withECDSA:
		return ripemd160.New()
	}
	return nil
}

func digest(scheme SignatureScheme, msg []byte) []byte {
	h := schemeHash(scheme)
	h.Write(msg)
	return h.Sum(nil)
}

// Sign signs msg with key under scheme.
func Sign(key *PrivateKey, scheme SignatureScheme, msg []byte) (*Signature, error) {
	if err := checkScheme(key.Type, scheme); err != nil {
		return nil, err
	}
	if key.Type == EDDSA {
		if len(key.D) != ed25519.SeedSize {
			return nil, errors.WithDetail(ErrBadKey, "ed25519 seed length")
		}
		v := ed25519.Sign(ed25519.NewKeyFromSeed(key.D), msg)
		return &Signature{Scheme: scheme, Value: v}, nil
	}

	pub, err := key.Public()
	if err != nil {
		return nil, err
	}
	d := new(big.Int).SetBytes(key.D)
	var r, s *big.Int
	if key.Type == SM2 {
		priv := &sm2.PrivateKey{
			PublicKey: sm2.PublicKey{Curve: sm2.P256Sm2(), X: pub.X, Y: pub.Y},
			D:         d,
		}
		r, s, err = sm2.Sm2Sign(priv, msg, []byte(SM2UserID), rand.Reader)
	} else {
		crv, _ := curve(key.Type, key.Curve)
		priv := &ecdsa.PrivateKey{
			PublicKey: ecdsa.PublicKey{Curve: crv, X: pub.X, Y: pub.Y},
			D:         d,
		}
		r, s, err = ecdsa.Sign(rand.Reader, priv, digest(scheme, msg))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "signing with %s", scheme)
	}
	size := (pubCurveBits(pub) + 7) / 8
	v := make([]byte, 2*size)
	r.FillBytes(v[:size])
	s.FillBytes(v[size:])
	return &Signature{Scheme: scheme, Value: v}, nil
}

func pubCurveBits(p *PublicKey) int {
	crv, err := curve(p.Type, p.Curve)
	if err != nil {
		return 0
	}
	return crv.Params().BitSize
}

// Verify reports whether sig is a valid signature of msg by pub.
func Verify(pub *PublicKey, msg []byte, sig *Signature) bool {
	if checkScheme(pub.Type, sig.Scheme) != nil {
		return false
	}
	if pub.Type == EDDSA {
		return len(pub.Ed) == ed25519.PublicKeySize && ed25519.Verify(pub.Ed, msg, sig.Value)
	}
	if len(sig.Value) == 0 || len(sig.Value)%2 != 0 {
		return false
	}
	half := len(sig.Value) / 2
	r := new(big.Int).SetBytes(sig.Value[:half])
	s := new(big.Int).SetBytes(sig.Value[half:])
	crv, err := curve(pub.Type, pub.Curve)
	if err != nil {
		return false
	}
	if pub.Type == SM2 {
		return sm2.Sm2Verify(&sm2.PublicKey{Curve: crv, X: pub.X, Y: pub.Y}, msg, []byte(SM2UserID), r, s)
	}
	return ecdsa.Verify(&ecdsa.PublicKey{Curve: crv, X: pub.X, Y: pub.Y}, digest(sig.Scheme, msg), r, s)
}
