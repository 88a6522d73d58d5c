package vmutil

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/user00000001/tesrasdk-go/crypto/keypair"
	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/testutil"
)

func testKeys(t testing.TB) []*keypair.PublicKey {
	var pubs []*keypair.PublicKey
	for _, h := range []string{testutil.Key1Priv, testutil.Key2Priv, testutil.Key3Priv} {
		k, err := keypair.PrivateKeyFromHex(h, 0, 0)
		if err != nil {
			t.Fatal(err)
		}
		pub, err := k.Public()
		if err != nil {
			t.Fatal(err)
		}
		pubs = append(pubs, pub)
	}
	return pubs
}

func TestSingleSigProgram(t *testing.T) {
	pub, err := keypair.PublicKeyFromHex(testutil.Key1Pub)
	if err != nil {
		t.Fatal(err)
	}
	prog := SingleSigProgram(pub)
	if got, want := hex.EncodeToString(prog), "21"+testutil.Key1Pub+"ac"; got != want {
		t.Errorf("SingleSigProgram = %s want %s", got, want)
	}
	if got := AddressFromPubKey(pub).Base58(); got != testutil.Key1Addr {
		t.Errorf("AddressFromPubKey = %s want %s", got, testutil.Key1Addr)
	}

	parsed, err := ParseSingleSigProgram(prog)
	if err != nil {
		testutil.FatalErr(t, err)
	}
	if !parsed.Equal(pub) {
		t.Errorf("ParseSingleSigProgram = %s", spew.Sdump(parsed))
	}

	_, err = ParseSingleSigProgram(prog[:len(prog)-1])
	if errors.Root(err) != ErrSingleSigFormat {
		t.Errorf("ParseSingleSigProgram(no CHECKSIG) err = %v", err)
	}
}

func TestMultiSigProgram(t *testing.T) {
	pubs := testKeys(t)
	prog, err := MultiSigProgram(2, pubs)
	if err != nil {
		testutil.FatalErr(t, err)
	}
	reordered, err := MultiSigProgram(2, []*keypair.PublicKey{pubs[2], pubs[0], pubs[1]})
	if err != nil {
		testutil.FatalErr(t, err)
	}
	testutil.ExpectScriptEqual(t, reordered, prog, "key order")

	if prog[0] != 0x52 || prog[len(prog)-2] != 0x53 || prog[len(prog)-1] != 0xae {
		t.Errorf("MultiSigProgram = %x, want 52 ... 53 ae", prog)
	}

	m, keys, err := ParseMultiSigProgram(prog)
	if err != nil {
		testutil.FatalErr(t, err)
	}
	if m != 2 || len(keys) != 3 {
		t.Fatalf("ParseMultiSigProgram = %d, %d keys", m, len(keys))
	}
	sorted := keypair.SortPublicKeys(pubs)
	for i := range keys {
		if !keys[i].Equal(sorted[i]) {
			t.Errorf("key %d = %s want %s", i, keys[i].Hex(), sorted[i].Hex())
		}
	}

	reversed := []*keypair.PublicKey{sorted[2], sorted[1], sorted[0]}
	ordered, err := OrderedMultiSigProgram(2, reversed)
	if err != nil {
		testutil.FatalErr(t, err)
	}
	if bytes.Equal(ordered, prog) {
		t.Errorf("OrderedMultiSigProgram sorted its keys")
	}
	_, keys, err = ParseMultiSigProgram(ordered)
	if err != nil {
		testutil.FatalErr(t, err)
	}
	again, err := OrderedMultiSigProgram(2, keys)
	if err != nil {
		testutil.FatalErr(t, err)
	}
	testutil.ExpectScriptEqual(t, again, ordered, "parsed key order")

	a1, err := AddressFromMultiPubKeys(2, pubs)
	if err != nil {
		t.Fatal(err)
	}
	a2, _ := AddressFromMultiPubKeys(2, []*keypair.PublicKey{pubs[1], pubs[2], pubs[0]})
	if a1 != a2 {
		t.Errorf("multisig address depends on key order: %s != %s", a1, a2)
	}
}

func TestMultiSigParams(t *testing.T) {
	pubs := testKeys(t)
	many := make([]*keypair.PublicKey, 17)
	for i := range many {
		many[i] = pubs[i%3]
	}
	cases := []struct {
		m    int
		keys []*keypair.PublicKey
	}{
		{0, pubs},
		{4, pubs},
		{-1, pubs},
		{1, nil},
		{2, many},
	}
	for _, c := range cases {
		testutil.ExpectError(t, ErrBadValue, "MultiSigProgram", func() error {
			_, err := MultiSigProgram(c.m, c.keys)
			return err
		})
	}
}

func TestParseMultiSigProgramErrors(t *testing.T) {
	pubs := testKeys(t)
	good, _ := MultiSigProgram(2, pubs)

	cases := map[string][]byte{
		"no checkmultisig": good[:len(good)-1],
		"count mismatch":   append(append([]byte{}, good[:len(good)-2]...), 0x52, 0xae),
		"quorum too big":   append([]byte{0x54}, good[1:]...),
		"short":            {0x51, 0xae},
	}
	for name, prog := range cases {
		_, _, err := ParseMultiSigProgram(prog)
		if !errors.Is(err, errors.ErrSerialization) {
			t.Errorf("%s: err = %v, want serialization error", name, err)
		}
	}
}

func TestInvocationProgram(t *testing.T) {
	sigs := [][]byte{make([]byte, 64), {1, 2, 3}}
	prog := InvocationProgram(sigs)
	if prog[0] != 0x40 || prog[65] != 0x03 {
		t.Errorf("InvocationProgram = %x", prog)
	}
	got, err := ParseInvocationProgram(prog)
	if err != nil {
		t.Fatal(err)
	}
	testutil.ExpectEqual(t, got, sigs, "ParseInvocationProgram")

	_, err = ParseInvocationProgram([]byte{0x51})
	if !errors.Is(err, errors.ErrInvalidParams) {
		t.Errorf("ParseInvocationProgram(PUSH1) err = %v", err)
	}
}
