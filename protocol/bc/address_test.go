package bc

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/user00000001/tesrasdk-go/errors"
)

func TestAddressForms(t *testing.T) {
	cases := []struct {
		hex    string
		base58 string
	}{
		{"aa6e06c79f864152ab7f3139074aad822ffea855", "AXK2KtCfcJnSMyRzSwTuwTKgNrtx5aXfFX"},
		{"fa88f5244be19659bbd24477caeeacac7cbf781b", "AecaeSEBkt5GcBCxwz1F41TvdjX3dnKBkJ"},
	}
	for _, c := range cases {
		a, err := AddressFromHex(c.hex)
		if err != nil {
			t.Fatal(err)
		}
		if got := a.Base58(); got != c.base58 {
			t.Errorf("Base58(%s) = %s want %s", c.hex, got, c.base58)
		}
		b, err := AddressFromBase58(c.base58)
		if err != nil {
			t.Fatal(err)
		}
		if b != a {
			t.Errorf("AddressFromBase58(%s) = %s want %s", c.base58, b.Hex(), c.hex)
		}
	}
}

func TestAddressFromVMCode(t *testing.T) {
	code, _ := hex.DecodeString("2102df6f28e327352a44720f2b384e55034c1a7f54ba31785aa3a338f613a5b7cc26ac")
	got := AddressFromVMCode(code)
	const want = "aa6e06c79f864152ab7f3139074aad822ffea855"
	if got.Hex() != want {
		t.Errorf("AddressFromVMCode = %s want %s", got.Hex(), want)
	}
}

func TestContractHash(t *testing.T) {
	a, err := AddressFromReversedHex("cd948340ffcf11d4f5494140c93885583110f3e9")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := a.Hex(), "e9f31031588538c9404149f5d411cfff408394cd"; got != want {
		t.Errorf("Hex() = %s want %s", got, want)
	}
	if got := a.ReversedHex(); got != "cd948340ffcf11d4f5494140c93885583110f3e9" {
		t.Errorf("ReversedHex() = %s", got)
	}
	if TSTContract.Hex() != "0000000000000000000000000000000000000001" {
		t.Errorf("TSTContract = %s", TSTContract.Hex())
	}
}

func TestBadAddress(t *testing.T) {
	cases := []string{
		"",
		"AXK2KtCfcJnSMyRzSwTuwTKgNrtx5aXfFY", // checksum
		"1BoatSLRHtKNngkdXEeobR76b53LETtpyT", // wrong version
		"0OIl",
	}
	for _, c := range cases {
		_, err := AddressFromBase58(c)
		if errors.Root(err) != ErrBadAddress {
			t.Errorf("AddressFromBase58(%q) err = %v want %v", c, err, ErrBadAddress)
		}
		if !errors.Is(err, errors.ErrInvalidParams) {
			t.Errorf("AddressFromBase58(%q) err is not invalid params", c)
		}
	}
	if _, err := AddressFromHex("aa6e"); errors.Root(err) != ErrBadAddress {
		t.Errorf("AddressFromHex(short) err = %v", err)
	}
}

func TestAddressJSON(t *testing.T) {
	var v struct{ From, To Address }
	err := json.Unmarshal([]byte(`{"From":"AXK2KtCfcJnSMyRzSwTuwTKgNrtx5aXfFX","To":"fa88f5244be19659bbd24477caeeacac7cbf781b"}`), &v)
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	const want = `{"From":"AXK2KtCfcJnSMyRzSwTuwTKgNrtx5aXfFX","To":"AecaeSEBkt5GcBCxwz1F41TvdjX3dnKBkJ"}`
	if string(b) != want {
		t.Errorf("json = %s want %s", b, want)
	}
}

func TestH256(t *testing.T) {
	const display = "3e5eda38af88b669e2f6bcb2015f7181ffc3f30dc4e086da8a1ca78d4d5f03a7"
	h, err := H256FromReversedHex(display)
	if err != nil {
		t.Fatal(err)
	}
	if h.String() != display {
		t.Errorf("String() = %s want %s", h.String(), display)
	}
	if h[0] != 0xa7 {
		t.Errorf("h[0] = %x want a7", h[0])
	}
	if _, err := H256FromReversedHex("3e5e"); !errors.Is(err, errors.ErrInvalidParams) {
		t.Errorf("short hash err = %v", err)
	}
}
