package abi

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/testutil"
)

func TestParseTypedArgs(t *testing.T) {
	args := `[
		"String:did:tst:x",
		"Address:AXK2KtCfcJnSMyRzSwTuwTKgNrtx5aXfFX",
		"ByteArray:0a0b",
		"Long:1000000000",
		"Int:3",
		"Boolean:false",
		12,
		true,
		"plain",
		"did:tst:y",
		["Integer:-2", []],
		{"name": "amount", "value": "Long:5"}
	]`
	ps, err := ParseTypedArgs([]byte(args))
	if err != nil {
		testutil.FatalErr(t, err)
	}
	require.Len(t, ps, 12)

	want := []Type{
		TypeString, TypeAddress, TypeByteArray, TypeLong, TypeInt, TypeBoolean,
		TypeInteger, TypeBoolean, TypeString, TypeString, TypeArray, TypeLong,
	}
	for i, p := range ps {
		require.Equal(t, want[i], p.Type, "argument %d", i)
	}
	require.Equal(t, "did:tst:x", ps[0].Value)
	a, _ := ps[1].AsAddress()
	require.Equal(t, testutil.Key1Addr, a.Base58())
	require.Equal(t, []byte{0x0a, 0x0b}, ps[2].Value)
	require.Equal(t, "did:tst:y", ps[9].Value)
	inner, _ := ps[10].AsArray()
	require.Len(t, inner, 2)
	n, _ := inner[0].AsInt()
	require.Equal(t, int64(-2), n.Int64())
	require.Equal(t, "amount", ps[11].Name)
}

func TestParseTypedArgsGolden(t *testing.T) {
	args := `["String:ont", "Address:AXK2KtCfcJnSMyRzSwTuwTKgNrtx5aXfFX",
		"Address:AecaeSEBkt5GcBCxwz1F41TvdjX3dnKBkJ", 1000000000]`
	ps, err := ParseTypedArgs([]byte(args))
	require.NoError(t, err)
	got, err := BuildInvocationScript(goldenContract(t), "transferNativeAsset", ps, WithLedgerCompatible(false))
	require.NoError(t, err)
	testutil.ExpectScriptEqual(t, got, testutil.MustDecodeHex(goldenPayload), "typed args")
}

func TestParseTypedArgsErrors(t *testing.T) {
	cases := []string{
		`{"a": 1}`,
		`["ByteArray:zz"]`,
		`["Long:1.5"]`,
		`[1.5]`,
		`["Boolean:yes"]`,
		`[{"name": "x"}]`,
		`[null]`,
	}
	for _, c := range cases {
		_, err := ParseTypedArgs([]byte(c))
		if errors.Root(err) != ErrBadValue {
			t.Errorf("ParseTypedArgs(%s) err = %v, want ErrBadValue", c, err)
		}
	}
	_, err := ParseTypedArgs([]byte(`["Address:nope"]`))
	if !errors.Is(err, errors.ErrInvalidParams) {
		t.Errorf("bad address err = %v", err)
	}
}
