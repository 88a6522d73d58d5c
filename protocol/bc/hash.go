package bc

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/user00000001/tesrasdk-go/errors"
)

// H256 is a 32-byte hash in serialized byte order.
type H256 [chainhash.HashSize]byte

// HashFromChainhash converts a transaction hash.
func HashFromChainhash(h chainhash.Hash) H256 {
	return H256(h)
}

// H256FromReversedHex decodes a hash in display order, the form nodes
// and explorers print for transaction and block hashes.
func H256FromReversedHex(s string) (H256, error) {
	if len(s) != 2*chainhash.HashSize {
		return H256{}, errors.WithDetailf(errors.ErrInvalidParams, "hash %q is not %d bytes", s, chainhash.HashSize)
	}
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return H256{}, errors.Sub(errors.ErrInvalidParams, err)
	}
	return H256(*h), nil
}

// H256FromHex decodes a hash in serialized order.
func H256FromHex(s string) (h H256, err error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, errors.Sub(errors.ErrInvalidParams, err)
	}
	if len(b) != len(h) {
		return h, errors.WithDetailf(errors.ErrInvalidParams, "hash %q is not %d bytes", s, len(h))
	}
	copy(h[:], b)
	return h, nil
}

// String returns the display (byte-reversed) hex form.
func (h H256) String() string {
	return chainhash.Hash(h).String()
}

func (h H256) Hex() string {
	return hex.EncodeToString(h[:])
}

func (h H256) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *H256) UnmarshalText(b []byte) error {
	v, err := H256FromReversedHex(string(b))
	if err != nil {
		return err
	}
	*h = v
	return nil
}
