package vm

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/user00000001/tesrasdk-go/encoding/blockchain"
	"github.com/user00000001/tesrasdk-go/errors"
)

func TestSerializeItem(t *testing.T) {
	m := &Map{}
	m.Set(ByteArray("k"), NewInteger(1))
	m.Set(ByteArray("k"), NewInteger(2))

	cases := []struct {
		item Item
		want string
	}{
		{ByteArray("abc"), "0003616263"},
		{ByteArray(nil), "0000"},
		{Boolean(true), "0101"},
		{Boolean(false), "0100"},
		{NewInteger(0), "0200"},
		{NewInteger(-1), "0201ff"},
		{NewInteger(1000000000), "020400ca9a3b"},
		{&Array{Items: []Item{NewInteger(1), Boolean(false)}}, "8002" + "020101" + "0100"},
		{&Struct{}, "8100"},
		{m, "8201" + "00016b" + "020102"},
	}
	for _, c := range cases {
		b, err := SerializeItem(c.item)
		require.NoError(t, err)
		require.Equal(t, c.want, hex.EncodeToString(b), "SerializeItem(%v)", c.item)

		got, err := DeserializeItem(b)
		require.NoError(t, err)
		require.True(t, Equal(got, c.item), "DeserializeItem(%x) = %#v", b, got)
	}
}

func TestSerializeItemErrors(t *testing.T) {
	_, err := SerializeItem(Integer{})
	require.True(t, errors.Is(err, errors.ErrInvalidParams), "nil integer: %v", err)

	bad := &Map{Entries: []MapEntry{{Key: &Array{}, Value: Boolean(true)}}}
	_, err = SerializeItem(bad)
	require.Equal(t, ErrMapKey, errors.Root(err))

	var deep Item = ByteArray("x")
	for i := 0; i <= MaxItemDepth+1; i++ {
		deep = &Array{Items: []Item{deep}}
	}
	_, err = SerializeItem(deep)
	require.Equal(t, ErrItemDepth, errors.Root(err))

	wide := Integer{Value: new(big.Int).Lsh(big.NewInt(1), 300)}
	_, err = SerializeItem(wide)
	require.Equal(t, ErrIntTooLarge, errors.Root(err))
	require.True(t, errors.Is(err, errors.ErrOverflow))

	// 2^255 - 1 is the widest value that fits in 32 bytes.
	edge := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
	b, err := SerializeItem(Integer{Value: edge})
	require.NoError(t, err)
	got, err := DeserializeItem(b)
	require.NoError(t, err)
	require.True(t, Equal(got, Integer{Value: edge}))

	dup := &Map{Entries: []MapEntry{
		{Key: ByteArray("k"), Value: NewInteger(1)},
		{Key: ByteArray("k"), Value: NewInteger(2)},
	}}
	_, err = SerializeItem(dup)
	require.Equal(t, ErrDuplicateKey, errors.Root(err))
}

func TestDeserializeItemErrors(t *testing.T) {
	cases := []struct {
		hex     string
		wantErr error
		kind    error
	}{
		{"40", ErrUnknownTag, errors.ErrUnsupportedType},
		{"83", ErrUnknownTag, errors.ErrUnsupportedType},
		{"01ff", blockchain.ErrBadBool, errors.ErrSerialization},
		{"0101ff", ErrTrailingBytes, errors.ErrSerialization},
		{"000361", nil, errors.ErrSerialization},
		{"020100" + "00", ErrTrailingBytes, errors.ErrSerialization},
		{"80fd0104", ErrItemCount, errors.ErrSerialization},
		{"8201" + "8000" + "0101", ErrMapKey, errors.ErrUnsupportedType},
		{"8202" + "00016b" + "020101" + "00016b" + "020102", ErrDuplicateKey, errors.ErrSerialization},
		{"0221" + "01" + strings.Repeat("00", 32), blockchain.ErrTooLarge, errors.ErrSerialization},
		{"", nil, errors.ErrSerialization},
	}
	for _, c := range cases {
		b, _ := hex.DecodeString(c.hex)
		_, err := DeserializeItem(b)
		require.Error(t, err, "DeserializeItem(%s)", c.hex)
		if c.wantErr != nil {
			require.Equal(t, c.wantErr, errors.Root(err), "DeserializeItem(%s)", c.hex)
		}
		require.True(t, errors.Is(err, c.kind), "DeserializeItem(%s) = %v, want kind %v", c.hex, err, c.kind)
	}
}

func TestDeserializeItemDepth(t *testing.T) {
	var b []byte
	for i := 0; i <= MaxItemDepth+1; i++ {
		b = append(b, byte(ArrayType), 1)
	}
	b = append(b, byte(BooleanType), 1)
	_, err := DeserializeItem(b)
	require.Equal(t, ErrItemDepth, errors.Root(err))

	// exactly at the limit decodes
	b = b[4:]
	_, err = DeserializeItem(b)
	require.NoError(t, err)
}

func itemGen(depth int) *rapid.Generator[Item] {
	prims := []*rapid.Generator[Item]{
		rapid.Map(rapid.SliceOfN(rapid.Byte(), 0, 40), func(b []byte) Item { return ByteArray(b) }),
		rapid.Map(rapid.Bool(), func(v bool) Item { return Boolean(v) }),
		rapid.Map(rapid.Int64(), func(v int64) Item { return NewInteger(v) }),
	}
	if depth == 0 {
		return rapid.OneOf(prims...)
	}
	sub := itemGen(depth - 1)
	key := rapid.OneOf(prims...)
	return rapid.OneOf(append(prims,
		rapid.Map(rapid.SliceOfN(sub, 0, 4), func(items []Item) Item { return &Array{Items: items} }),
		rapid.Map(rapid.SliceOfN(sub, 0, 4), func(items []Item) Item { return &Struct{Items: items} }),
		rapid.Custom(func(t *rapid.T) Item {
			m := &Map{}
			n := rapid.IntRange(0, 3).Draw(t, "entries")
			for i := 0; i < n; i++ {
				m.Set(key.Draw(t, "key"), sub.Draw(t, "value"))
			}
			return m
		}),
	)...)
}

func TestItemRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		it := itemGen(3).Draw(t, "item")
		b, err := SerializeItem(it)
		if err != nil {
			t.Fatal(err)
		}
		got, err := DeserializeItem(b)
		if err != nil {
			t.Fatalf("DeserializeItem(%x): %v", b, err)
		}
		if !Equal(got, it) {
			t.Fatalf("round trip of %x changed the item", b)
		}
		b2, _ := SerializeItem(got)
		if !bytes.Equal(b, b2) {
			t.Fatalf("re-serialized %x want %x", b2, b)
		}
	})
}

func TestEqual(t *testing.T) {
	if Equal(NewInteger(1), ByteArray{1}) {
		t.Error("Integer(1) equal to ByteArray(01)")
	}
	if !Equal(Integer{Value: big.NewInt(7)}, NewInteger(7)) {
		t.Error("Integer(7) not equal to itself")
	}
	if Equal(&Array{Items: []Item{Boolean(true)}}, &Struct{Items: []Item{Boolean(true)}}) {
		t.Error("Array equal to Struct")
	}
}
