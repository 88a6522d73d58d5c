package vm

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"testing"
)

func TestPushdataBytes(t *testing.T) {
	type testStruct struct {
		data []byte
		want []byte
	}
	cases := []testStruct{{
		data: nil,
		want: []byte{byte(OP_0)},
	}, {
		data: make([]byte, 0),
		want: []byte{byte(OP_0)},
	}, {
		data: []byte{0x05},
		want: []byte{0x01, 0x05},
	}}

	for i := 2; i <= 75; i++ {
		data := bytes.Repeat([]byte{0x01}, i)
		cases = append(cases, testStruct{
			data: data,
			want: append([]byte{byte(i)}, data...),
		})
	}
	data := bytes.Repeat([]byte{0x01}, 76)
	cases = append(cases, testStruct{
		data: data,
		want: append([]byte{byte(OP_PUSHDATA1), 0x4c}, data...),
	})
	data = bytes.Repeat([]byte{0x01}, 256)
	cases = append(cases, testStruct{
		data: data,
		want: append([]byte{byte(OP_PUSHDATA2), 0x00, 0x01}, data...),
	})
	data = bytes.Repeat([]byte{0x01}, 65536)
	cases = append(cases, testStruct{
		data: data,
		want: append([]byte{byte(OP_PUSHDATA4), 0x00, 0x00, 0x01, 0x00}, data...),
	})

	for _, c := range cases {
		got := PushdataBytes(c.data)
		if !bytes.Equal(got, c.want) {
			t.Errorf("PushdataBytes(%d bytes) = %x want %x", len(c.data), got[:min(len(got), 8)], c.want[:min(len(c.want), 8)])
		}
		insts, err := ParseProgram(got)
		if err != nil || len(insts) != 1 || !bytes.Equal(insts[0].Data, c.data) {
			t.Errorf("ParseProgram(PushdataBytes(%d bytes)) did not round trip: %v", len(c.data), err)
		}
	}
}

func TestPushdataInt64(t *testing.T) {
	cases := []struct {
		num  int64
		want string
	}{
		{-1, "4f"},
		{0, "00"},
		{1, "51"},
		{16, "60"},
		{17, "0111"},
		{-2, "01fe"},
		{127, "017f"},
		{128, "028000"},
		{255, "02ff00"},
		{1000000000, "0400ca9a3b"},
		{-129, "027fff"},
	}
	for _, c := range cases {
		got := hex.EncodeToString(PushdataInt64(c.num))
		if got != c.want {
			t.Errorf("PushdataInt64(%d) = %s want %s", c.num, got, c.want)
		}
	}
}

func TestPushdataBigIntLedger(t *testing.T) {
	got := hex.EncodeToString(PushdataBigInt(big.NewInt(1000000000), true))
	const want = "08" + "00ca9a3b00000000"
	if got != want {
		t.Errorf("PushdataBigInt(1e9, ledger) = %s want %s", got, want)
	}
	if got := hex.EncodeToString(PushdataBigInt(big.NewInt(5), true)); got != "55" {
		t.Errorf("PushdataBigInt(5, ledger) = %s want 55", got)
	}
}

func TestPushdataBool(t *testing.T) {
	if !bytes.Equal(PushdataBool(true), []byte{0x51}) || !bytes.Equal(PushdataBool(false), []byte{0x00}) {
		t.Errorf("PushdataBool = %x %x", PushdataBool(true), PushdataBool(false))
	}
}
