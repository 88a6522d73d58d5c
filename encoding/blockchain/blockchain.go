// Package blockchain provides the tools for encoding
// data primitives in blockchain structures: compact-size
// varints, length-prefixed byte strings and fixed-width
// little-endian integers.
package blockchain

import (
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/wire"

	"github.com/user00000001/tesrasdk-go/errors"
)

// pver is passed to the btcd wire helpers, which ignore it for the
// primitives used here.
const pver = 0

// MaxVarBytes bounds any single length-prefixed field read from an
// untrusted stream.
const MaxVarBytes = 1 << 24

var (
	ErrRange    = errors.Derive(errors.ErrSerialization, "value out of range")
	ErrBadBool  = errors.Derive(errors.ErrSerialization, "invalid boolean byte")
	ErrTooLarge = errors.Derive(errors.ErrSerialization, "length prefix too large")
)

// readErr classifies a low-level read failure as a serialization error.
func readErr(err error, field string) error {
	if err == nil {
		return nil
	}
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return errors.Sub(errors.ErrSerialization, errors.Wrap(err, "reading "+field))
}

// VarUintSize returns the number of bytes WriteVarUint emits for val.
func VarUintSize(val uint64) int {
	return wire.VarIntSerializeSize(val)
}

// WriteVarUint writes val as a compact-size integer: one byte below
// 0xfd, else a 0xfd, 0xfe or 0xff marker followed by 2, 4 or 8
// little-endian bytes.
func WriteVarUint(w io.Writer, val uint64) error {
	return wire.WriteVarInt(w, pver, val)
}

// ReadVarUint reads a compact-size integer. Non-canonical encodings
// are rejected.
func ReadVarUint(r io.Reader) (uint64, error) {
	v, err := wire.ReadVarInt(r, pver)
	return v, readErr(err, "varint")
}

// WriteVarBytes writes b prefixed by its compact-size length.
func WriteVarBytes(w io.Writer, b []byte) error {
	return wire.WriteVarBytes(w, pver, b)
}

// ReadVarBytes reads a compact-size length and that many bytes. A
// length above max fails with ErrTooLarge before anything is read.
func ReadVarBytes(r io.Reader, max uint32, field string) ([]byte, error) {
	n, err := ReadVarUint(r)
	if err != nil {
		return nil, errors.Wrap(err, field)
	}
	if n > uint64(max) {
		return nil, errors.WithDetailf(ErrTooLarge, "%s is %d bytes; max is %d", field, n, max)
	}
	return ReadBytes(r, int(n), field)
}

// WriteVarString writes s as var-bytes.
func WriteVarString(w io.Writer, s string) error {
	return wire.WriteVarString(w, pver, s)
}

// ReadVarString reads a var-bytes field as a string.
func ReadVarString(r io.Reader, max uint32, field string) (string, error) {
	b, err := ReadVarBytes(r, max, field)
	return string(b), err
}

// readChunk caps the buffer ReadBytes commits to before the data
// has arrived.
const readChunk = 1 << 16

// ReadBytes reads exactly n bytes. Large fields are read in chunks so
// a length prefix on a short stream costs no more than the bytes that
// are actually there.
func ReadBytes(r io.Reader, n int, field string) ([]byte, error) {
	if n < 0 {
		return nil, errors.WithDetailf(ErrRange, "%s length %d", field, n)
	}
	buf := make([]byte, 0, minInt(n, readChunk))
	for len(buf) < n {
		k := minInt(n-len(buf), readChunk)
		if cap(buf)-len(buf) < k {
			grown := make([]byte, len(buf), minInt(n, 2*cap(buf)+k))
			copy(grown, buf)
			buf = grown
		}
		_, err := io.ReadFull(r, buf[len(buf):len(buf)+k])
		if err != nil {
			return nil, readErr(err, field)
		}
		buf = buf[:len(buf)+k]
	}
	return buf, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ReadByte reads a single byte.
func ReadByte(r io.Reader, field string) (byte, error) {
	var b [1]byte
	_, err := io.ReadFull(r, b[:])
	return b[0], readErr(err, field)
}

func WriteByte(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

// WriteBool writes 1 for true and 0 for false.
func WriteBool(w io.Writer, v bool) error {
	if v {
		return WriteByte(w, 1)
	}
	return WriteByte(w, 0)
}

// ReadBool reads a boolean byte. Any value other than 0 or 1 fails.
func ReadBool(r io.Reader, field string) (bool, error) {
	b, err := ReadByte(r, field)
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, errors.WithDetailf(ErrBadBool, "%s: 0x%02x", field, b)
}

func WriteUint16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func WriteUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func WriteUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func ReadUint16(r io.Reader, field string) (uint16, error) {
	b, err := ReadBytes(r, 2, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func ReadUint32(r io.Reader, field string) (uint32, error) {
	b, err := ReadBytes(r, 4, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func ReadUint64(r io.Reader, field string) (uint64, error) {
	b, err := ReadBytes(r, 8, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}
