package vm

import (
	"bytes"
	"fmt"
	"io"
	"math/big"

	"github.com/user00000001/tesrasdk-go/encoding/blockchain"
	"github.com/user00000001/tesrasdk-go/errors"
)

// ItemType tags a serialized stack item.
type ItemType byte

const (
	ByteArrayType ItemType = 0x00
	BooleanType   ItemType = 0x01
	IntegerType   ItemType = 0x02
	InterfaceType ItemType = 0x40
	ArrayType     ItemType = 0x80
	StructType    ItemType = 0x81
	MapType       ItemType = 0x82
)

func (t ItemType) String() string {
	switch t {
	case ByteArrayType:
		return "ByteArray"
	case BooleanType:
		return "Boolean"
	case IntegerType:
		return "Integer"
	case InterfaceType:
		return "Interface"
	case ArrayType:
		return "Array"
	case StructType:
		return "Struct"
	case MapType:
		return "Map"
	}
	return fmt.Sprintf("ItemType(0x%02x)", byte(t))
}

// Limits applied when decoding untrusted items.
const (
	MaxItemDepth = 32
	MaxItemCount = 1024

	// MaxIntegerSize is the widest Integer, in bytes, either direction
	// of the codec accepts.
	MaxIntegerSize = 32
)

// Item is a VM stack item: ByteArray, Boolean, Integer, *Array,
// *Struct or *Map. Containers are pointers because the VM treats them
// as references.
type Item interface {
	Type() ItemType
}

type (
	ByteArray []byte
	Boolean   bool
	Integer   struct{ Value *big.Int }
	Array     struct{ Items []Item }
	Struct    struct{ Items []Item }
	Map       struct{ Entries []MapEntry }
)

// MapEntry is one key/value pair of a Map, in insertion order.
type MapEntry struct {
	Key, Value Item
}

func (ByteArray) Type() ItemType { return ByteArrayType }
func (Boolean) Type() ItemType   { return BooleanType }
func (Integer) Type() ItemType   { return IntegerType }
func (*Array) Type() ItemType    { return ArrayType }
func (*Struct) Type() ItemType   { return StructType }
func (*Map) Type() ItemType      { return MapType }

// NewInteger returns an Integer item for v.
func NewInteger(v int64) Integer {
	return Integer{Value: big.NewInt(v)}
}

// Set stores value under key, replacing an existing entry with an
// equal key.
func (m *Map) Set(key, value Item) {
	if i := m.index(key); i >= 0 {
		m.Entries[i].Value = value
		return
	}
	m.Entries = append(m.Entries, MapEntry{Key: key, Value: value})
}

// index returns the position of the first entry whose key equals
// key, or -1.
func (m *Map) index(key Item) int {
	for i, e := range m.Entries {
		if Equal(e.Key, key) {
			return i
		}
	}
	return -1
}

// IsPrimitive reports whether it may serve as a map key.
func IsPrimitive(it Item) bool {
	switch it.(type) {
	case ByteArray, Boolean, Integer:
		return true
	}
	return false
}

// Equal compares items structurally.
func Equal(a, b Item) bool {
	switch a := a.(type) {
	case ByteArray:
		b, ok := b.(ByteArray)
		return ok && bytes.Equal(a, b)
	case Boolean:
		b, ok := b.(Boolean)
		return ok && a == b
	case Integer:
		b, ok := b.(Integer)
		return ok && a.Value.Cmp(b.Value) == 0
	case *Array:
		b, ok := b.(*Array)
		return ok && equalItems(a.Items, b.Items)
	case *Struct:
		b, ok := b.(*Struct)
		return ok && equalItems(a.Items, b.Items)
	case *Map:
		b, ok := b.(*Map)
		if !ok || len(a.Entries) != len(b.Entries) {
			return false
		}
		for i := range a.Entries {
			if !Equal(a.Entries[i].Key, b.Entries[i].Key) || !Equal(a.Entries[i].Value, b.Entries[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

func equalItems(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// SerializeItem returns the tagged binary form of it.
func SerializeItem(it Item) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeItem(&buf, it, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeItem(w *bytes.Buffer, it Item, depth int) error {
	if depth > MaxItemDepth {
		return ErrItemDepth
	}
	if it == nil {
		return errors.WithDetail(ErrUnknownTag, "nil item")
	}
	w.WriteByte(byte(it.Type()))
	switch it := it.(type) {
	case ByteArray:
		return blockchain.WriteVarBytes(w, it)
	case Boolean:
		return blockchain.WriteBool(w, bool(it))
	case Integer:
		if it.Value == nil {
			return errors.WithDetail(ErrBadValue, "nil integer")
		}
		b := EncodeInt(it.Value, false)
		if len(b) > MaxIntegerSize {
			return errors.WithDetailf(ErrIntTooLarge, "%d bytes; max is %d", len(b), MaxIntegerSize)
		}
		return blockchain.WriteVarBytes(w, b)
	case *Array:
		return writeItems(w, it.Items, depth)
	case *Struct:
		return writeItems(w, it.Items, depth)
	case *Map:
		if err := blockchain.WriteVarUint(w, uint64(len(it.Entries))); err != nil {
			return err
		}
		for i, e := range it.Entries {
			if e.Key == nil || !IsPrimitive(e.Key) {
				return errors.WithDetailf(ErrMapKey, "key of type %T", e.Key)
			}
			if err := writeItem(w, e.Key, depth+1); err != nil {
				return err
			}
			if it.index(e.Key) < i {
				return errors.WithDetailf(ErrDuplicateKey, "entry %d", i)
			}
			if err := writeItem(w, e.Value, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return errors.WithDetailf(ErrUnknownTag, "cannot serialize %T", it)
}

func writeItems(w *bytes.Buffer, items []Item, depth int) error {
	if err := blockchain.WriteVarUint(w, uint64(len(items))); err != nil {
		return err
	}
	for _, sub := range items {
		if err := writeItem(w, sub, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// DeserializeItem decodes one tagged item that must span all of b.
func DeserializeItem(b []byte) (Item, error) {
	r := bytes.NewReader(b)
	it, err := ReadItem(r)
	if err != nil {
		return nil, err
	}
	if r.Len() > 0 {
		return nil, errors.WithDetailf(ErrTrailingBytes, "%d bytes after item", r.Len())
	}
	return it, nil
}

// ReadItem decodes one tagged item from r.
func ReadItem(r io.Reader) (Item, error) {
	return readItem(r, 0)
}

func readItem(r io.Reader, depth int) (Item, error) {
	if depth > MaxItemDepth {
		return nil, ErrItemDepth
	}
	tag, err := blockchain.ReadByte(r, "item tag")
	if err != nil {
		return nil, err
	}
	switch ItemType(tag) {
	case ByteArrayType:
		b, err := blockchain.ReadVarBytes(r, blockchain.MaxVarBytes, "byte array")
		if err != nil {
			return nil, err
		}
		return ByteArray(b), nil
	case BooleanType:
		v, err := blockchain.ReadBool(r, "boolean")
		return Boolean(v), err
	case IntegerType:
		b, err := blockchain.ReadVarBytes(r, MaxIntegerSize, "integer")
		if err != nil {
			return nil, err
		}
		return Integer{Value: DecodeInt(b)}, nil
	case ArrayType, StructType:
		items, err := readItems(r, depth)
		if err != nil {
			return nil, err
		}
		if ItemType(tag) == StructType {
			return &Struct{Items: items}, nil
		}
		return &Array{Items: items}, nil
	case MapType:
		n, err := readCount(r)
		if err != nil {
			return nil, err
		}
		m := &Map{}
		for i := 0; i < n; i++ {
			k, err := readItem(r, depth+1)
			if err != nil {
				return nil, err
			}
			if !IsPrimitive(k) {
				return nil, errors.WithDetailf(ErrMapKey, "key of type %s", k.Type())
			}
			if m.index(k) >= 0 {
				return nil, errors.WithDetailf(ErrDuplicateKey, "entry %d", i)
			}
			v, err := readItem(r, depth+1)
			if err != nil {
				return nil, err
			}
			m.Entries = append(m.Entries, MapEntry{Key: k, Value: v})
		}
		return m, nil
	}
	return nil, errors.WithDetailf(ErrUnknownTag, "tag 0x%02x", tag)
}

func readCount(r io.Reader) (int, error) {
	n, err := blockchain.ReadVarUint(r)
	if err != nil {
		return 0, err
	}
	if n > MaxItemCount {
		return 0, errors.WithDetailf(ErrItemCount, "%d items", n)
	}
	return int(n), nil
}

func readItems(r io.Reader, depth int) ([]Item, error) {
	n, err := readCount(r)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		it, err := readItem(r, depth+1)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}
