package bc

import (
	"bytes"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/user00000001/tesrasdk-go/errors"
)

// AddressVersion prefixes the hash in the base58 form.
const AddressVersion = 0x17

const AddressSize = 20

var ErrBadAddress = errors.Derive(errors.ErrInvalidParams, "malformed address")

// Address is the hash of a verification program or contract code.
type Address [AddressSize]byte

// Native contract addresses.
var (
	TSTContract        = nativeContract(1)
	TSGContract        = nativeContract(2)
	IdentityContract   = nativeContract(3)
	AuthContract       = nativeContract(6)
	GovernanceContract = nativeContract(7)
)

func nativeContract(n byte) (a Address) {
	a[AddressSize-1] = n
	return a
}

// AddressFromVMCode returns the program hash of code:
// RIPEMD160(SHA256(code)).
func AddressFromVMCode(code []byte) (a Address) {
	copy(a[:], btcutil.Hash160(code))
	return a
}

// AddressFromBytes copies a 20-byte slice.
func AddressFromBytes(b []byte) (a Address, err error) {
	if len(b) != AddressSize {
		return a, errors.WithDetailf(ErrBadAddress, "got %d bytes, want %d", len(b), AddressSize)
	}
	copy(a[:], b)
	return a, nil
}

// AddressFromBase58 decodes the user-facing text form.
func AddressFromBase58(s string) (Address, error) {
	payload, version, err := base58.CheckDecode(s)
	if err != nil {
		return Address{}, errors.WithDetailf(ErrBadAddress, "%q: %s", s, err)
	}
	if version != AddressVersion {
		return Address{}, errors.WithDetailf(ErrBadAddress, "%q: version 0x%02x", s, version)
	}
	return AddressFromBytes(payload)
}

// AddressFromHex decodes hex in serialized byte order.
func AddressFromHex(s string) (Address, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, errors.WithDetailf(ErrBadAddress, "%q: %s", s, err)
	}
	return AddressFromBytes(b)
}

// AddressFromReversedHex decodes a contract hash in display order.
func AddressFromReversedHex(s string) (Address, error) {
	a, err := AddressFromHex(s)
	if err != nil {
		return a, err
	}
	return a.reversed(), nil
}

func (a Address) reversed() (r Address) {
	for i := range a {
		r[AddressSize-1-i] = a[i]
	}
	return r
}

func (a Address) Base58() string {
	return base58.CheckEncode(a[:], AddressVersion)
}

func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

func (a Address) ReversedHex() string {
	return a.reversed().Hex()
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) IsZero() bool {
	return a == Address{}
}

// String returns the base58 form.
func (a Address) String() string {
	return a.Base58()
}

func (a Address) Compare(b Address) int {
	return bytes.Compare(a[:], b[:])
}

// MarshalText returns the base58 form.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Base58()), nil
}

// UnmarshalText accepts the base58 form or 40 hex digits.
func (a *Address) UnmarshalText(b []byte) error {
	s := string(b)
	var (
		v   Address
		err error
	)
	if len(s) == 2*AddressSize {
		v, err = AddressFromHex(s)
	} else {
		v, err = AddressFromBase58(s)
	}
	if err != nil {
		return err
	}
	*a = v
	return nil
}
