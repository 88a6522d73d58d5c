package vm

import "math/big"

// LedgerIntSize is the minimum width of a ledger-compatible integer.
const LedgerIntSize = 8

// EncodeInt returns n as a little-endian two's-complement byte string
// of minimal length: redundant sign bytes are stripped, and a 0x00 is
// added when a non-negative value's top byte has its high bit set.
// Zero is the empty string.
//
// With ledger set the result is extended on the high end to an even
// length of at least LedgerIntSize bytes, using 0x00 for non-negative
// values and 0xff for negative ones.
func EncodeInt(n *big.Int, ledger bool) []byte {
	var be []byte
	switch n.Sign() {
	case 1:
		be = n.Bytes()
		if be[0]&0x80 != 0 {
			be = append([]byte{0}, be...)
		}
	case -1:
		// ^(|n|-1) is the two's-complement pattern of n.
		m := new(big.Int).Neg(n)
		m.Sub(m, big.NewInt(1))
		mag := m.Bytes()
		size := len(mag)
		if size == 0 || mag[0]&0x80 != 0 {
			size++
		}
		be = make([]byte, size)
		copy(be[size-len(mag):], mag)
		for i := range be {
			be[i] ^= 0xff
		}
	}
	le := reverse(be)
	if ledger {
		width := len(le)
		if width < LedgerIntSize {
			width = LedgerIntSize
		}
		if width%2 != 0 {
			width++
		}
		var fill byte
		if n.Sign() < 0 {
			fill = 0xff
		}
		for len(le) < width {
			le = append(le, fill)
		}
	}
	return le
}

// DecodeInt reads a little-endian two's-complement integer. Any
// width is accepted, so high-end padding is harmless.
func DecodeInt(b []byte) *big.Int {
	if len(b) == 0 {
		return new(big.Int)
	}
	be := reverse(b)
	n := new(big.Int).SetBytes(be)
	if be[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(8*len(be))))
	}
	return n
}

func reverse(b []byte) []byte {
	r := make([]byte, len(b))
	for i, c := range b {
		r[len(b)-1-i] = c
	}
	return r
}
