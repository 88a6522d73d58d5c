package vm

import (
	"encoding/binary"
	"math/big"
)

// PushdataBytes returns the shortest push of in. The empty string is
// OP_0.
func PushdataBytes(in []byte) []byte {
	l := len(in)
	if l == 0 {
		return []byte{byte(OP_0)}
	}
	if l <= 75 {
		return append([]byte{byte(OP_DATA_1) + uint8(l) - 1}, in...)
	}
	if l < 1<<8 {
		return append([]byte{byte(OP_PUSHDATA1), uint8(l)}, in...)
	}
	if l < 1<<16 {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(l))
		return append([]byte{byte(OP_PUSHDATA2), b[0], b[1]}, in...)
	}
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(l))
	return append([]byte{byte(OP_PUSHDATA4), b[0], b[1], b[2], b[3]}, in...)
}

// PushdataInt64 pushes n, using the single-byte ops for -1 through 16.
func PushdataInt64(n int64) []byte {
	return PushdataBigInt(big.NewInt(n), false)
}

// PushdataBigInt pushes n. Values -1 through 16 use the single-byte
// ops; everything else pushes EncodeInt(n, ledger).
func PushdataBigInt(n *big.Int, ledger bool) []byte {
	if n.IsInt64() {
		switch v := n.Int64(); {
		case v == -1:
			return []byte{byte(OP_PUSHM1)}
		case v == 0:
			return []byte{byte(OP_0)}
		case v >= 1 && v <= 16:
			return []byte{uint8(OP_1) + uint8(v) - 1}
		}
	}
	return PushdataBytes(EncodeInt(n, ledger))
}

// PushdataBool pushes OP_TRUE or OP_FALSE.
func PushdataBool(b bool) []byte {
	if b {
		return []byte{byte(OP_TRUE)}
	}
	return []byte{byte(OP_FALSE)}
}
