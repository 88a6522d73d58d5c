// Package int128 implements the fixed-width 128-bit integers used for
// native asset amounts and wasm contract arguments.
//
// Both I128 (two's complement) and U128 hold two 64-bit words and
// serialize as 16 little-endian bytes, low word first.
package int128

import (
	"encoding/binary"
	"encoding/hex"
	"io"
	"math"
	"math/big"
	"math/bits"
	"strings"

	"github.com/user00000001/tesrasdk-go/encoding/blockchain"
	"github.com/user00000001/tesrasdk-go/errors"
)

// Size is the serialized size in bytes.
const Size = 16

var (
	ErrInvalidAmount = errors.Derive(errors.ErrInvalidParams, "invalid amount")
	ErrOverflow      = errors.Derive(errors.ErrOverflow, "value exceeds 128 bits")
)

var (
	two128  = new(big.Int).Lsh(big.NewInt(1), 128)
	maxU128 = new(big.Int).Sub(two128, big.NewInt(1))
	maxI128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minI128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// I128 is a signed 128-bit integer in two's complement.
type I128 struct {
	Lo, Hi uint64
}

// U128 is an unsigned 128-bit integer.
type U128 struct {
	Lo, Hi uint64
}

var (
	MaxI128 = I128{Lo: math.MaxUint64, Hi: math.MaxInt64}
	MinI128 = I128{Lo: 0, Hi: 1 << 63}
	MaxU128 = U128{Lo: math.MaxUint64, Hi: math.MaxUint64}
)

// OneBits128 returns the all-ones pattern: MaxU128, or -1 when
// reinterpreted as an I128.
func OneBits128() U128 {
	return MaxU128
}

// FromInt sign-extends v.
func FromInt(v int64) I128 {
	var hi uint64
	if v < 0 {
		hi = math.MaxUint64
	}
	return I128{Lo: uint64(v), Hi: hi}
}

func FromUint64(v uint64) U128 {
	return U128{Lo: v}
}

// FromBig converts v, failing with ErrOverflow outside the signed range.
func FromBig(v *big.Int) (I128, error) {
	if v.Cmp(minI128) < 0 || v.Cmp(maxI128) > 0 {
		return I128{}, errors.WithDetailf(ErrOverflow, "%s out of signed range", v)
	}
	u := new(big.Int).Set(v)
	if u.Sign() < 0 {
		u.Add(u, two128)
	}
	lo, hi := split(u)
	return I128{Lo: lo, Hi: hi}, nil
}

// U128FromBig converts v. Values outside [0, 2^128) fail with
// ErrOverflow unless wrap is set, in which case they are reduced
// modulo 2^128.
func U128FromBig(v *big.Int, wrap bool) (U128, error) {
	u := v
	if v.Sign() < 0 || v.Cmp(maxU128) > 0 {
		if !wrap {
			return U128{}, errors.WithDetailf(ErrOverflow, "%s out of unsigned range", v)
		}
		u = new(big.Int).Mod(v, two128)
	}
	lo, hi := split(u)
	return U128{Lo: lo, Hi: hi}, nil
}

func split(u *big.Int) (lo, hi uint64) {
	var buf [Size]byte
	u.FillBytes(buf[:])
	return binary.BigEndian.Uint64(buf[8:]), binary.BigEndian.Uint64(buf[:8])
}

// FromDecimalString parses a base-10 integer in the signed range.
func FromDecimalString(s string) (I128, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return I128{}, errors.WithDetailf(ErrInvalidAmount, "%q is not an integer", s)
	}
	x, err := FromBig(v)
	if err != nil {
		return I128{}, errors.WithDetailf(ErrInvalidAmount, "%s out of signed range", s)
	}
	return x, nil
}

// U128FromDecimalString parses a non-negative base-10 integer below 2^128.
func U128FromDecimalString(s string) (U128, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return U128{}, errors.WithDetailf(ErrInvalidAmount, "%q is not an integer", s)
	}
	x, err := U128FromBig(v, false)
	if err != nil {
		return U128{}, errors.WithDetailf(ErrInvalidAmount, "%s out of unsigned range", s)
	}
	return x, nil
}

// BigPow returns a**b.
func BigPow(a int64, b uint) *big.Int {
	return new(big.Int).Exp(big.NewInt(a), new(big.Int).SetUint64(uint64(b)), nil)
}

// ParseAmount parses a non-negative decimal amount such as "1.5" and
// scales it by 10**decimals. More fractional digits than decimals is
// ErrInvalidAmount; a scaled value of 2^128 or more is ErrOverflow.
func ParseAmount(s string, decimals uint) (U128, error) {
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" || !allDigits(whole) || !allDigits(frac) {
		return U128{}, errors.WithDetailf(ErrInvalidAmount, "%q is not a decimal amount", s)
	}
	if uint(len(frac)) > decimals {
		return U128{}, errors.WithDetailf(ErrInvalidAmount, "%q has more than %d decimals", s, decimals)
	}
	v, _ := new(big.Int).SetString(whole+frac, 10)
	v.Mul(v, BigPow(10, decimals-uint(len(frac))))
	return U128FromBig(v, false)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// CompareTo returns -1, 0 or 1. The high words compare as signed,
// the low words as unsigned.
func (x I128) CompareTo(y I128) int {
	xh, yh := int64(x.Hi), int64(y.Hi)
	switch {
	case xh < yh:
		return -1
	case xh > yh:
		return 1
	}
	return cmpUint64(x.Lo, y.Lo)
}

// CompareTo returns -1, 0 or 1.
func (x U128) CompareTo(y U128) int {
	if c := cmpUint64(x.Hi, y.Hi); c != 0 {
		return c
	}
	return cmpUint64(x.Lo, y.Lo)
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (x I128) Sign() int {
	switch {
	case int64(x.Hi) < 0:
		return -1
	case x.Hi == 0 && x.Lo == 0:
		return 0
	}
	return 1
}

func (x I128) IsZero() bool { return x.Hi == 0 && x.Lo == 0 }
func (x U128) IsZero() bool { return x.Hi == 0 && x.Lo == 0 }

// Add returns x+y, wrapping on overflow.
func (x I128) Add(y I128) I128 {
	lo, carry := bits.Add64(x.Lo, y.Lo, 0)
	hi, _ := bits.Add64(x.Hi, y.Hi, carry)
	return I128{Lo: lo, Hi: hi}
}

// Neg returns -x. Neg(MinI128) is MinI128.
func (x I128) Neg() I128 {
	return I128{Lo: ^x.Lo, Hi: ^x.Hi}.Add(I128{Lo: 1})
}

// ToI128 reinterprets x, failing if the top bit is set.
func (x U128) ToI128() (I128, error) {
	if x.Hi>>63 != 0 {
		return I128{}, errors.WithDetailf(ErrOverflow, "%s exceeds the signed range", x)
	}
	return I128(x), nil
}

func (x U128) Big() *big.Int {
	v := new(big.Int).SetUint64(x.Hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(x.Lo))
}

func (x I128) Big() *big.Int {
	v := U128(x).Big()
	if int64(x.Hi) < 0 {
		v.Sub(v, two128)
	}
	return v
}

func (x I128) String() string { return x.Big().String() }
func (x U128) String() string { return x.Big().String() }

// PutUint64 writes v little-endian into buf at byte offset idx, which
// must be 0 or 8 for a 16-byte buffer.
func PutUint64(buf []byte, idx int, v uint64) {
	binary.LittleEndian.PutUint64(buf[idx:idx+8], v)
}

func (x I128) Bytes() [Size]byte {
	var buf [Size]byte
	PutUint64(buf[:], 0, x.Lo)
	PutUint64(buf[:], 8, x.Hi)
	return buf
}

func (x U128) Bytes() [Size]byte {
	return I128(x).Bytes()
}

// FromBytes decodes 16 little-endian bytes.
func FromBytes(b []byte) (I128, error) {
	if len(b) != Size {
		return I128{}, errors.WithDetailf(blockchain.ErrRange, "int128 needs %d bytes, got %d", Size, len(b))
	}
	return I128{Lo: binary.LittleEndian.Uint64(b), Hi: binary.LittleEndian.Uint64(b[8:])}, nil
}

func (x I128) SerializeHex() string {
	b := x.Bytes()
	return hex.EncodeToString(b[:])
}

// DeserializeHex decodes the output of SerializeHex.
func DeserializeHex(s string) (I128, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return I128{}, errors.Sub(errors.ErrSerialization, err)
	}
	return FromBytes(b)
}

func (x I128) WriteTo(w io.Writer) (int64, error) {
	b := x.Bytes()
	n, err := w.Write(b[:])
	return int64(n), err
}

// Read reads 16 little-endian bytes from r.
func Read(r io.Reader) (I128, error) {
	b, err := blockchain.ReadBytes(r, Size, "int128")
	if err != nil {
		return I128{}, err
	}
	return FromBytes(b)
}

func (x I128) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

func (x *I128) UnmarshalText(b []byte) error {
	v, err := FromDecimalString(string(b))
	if err != nil {
		return err
	}
	*x = v
	return nil
}
