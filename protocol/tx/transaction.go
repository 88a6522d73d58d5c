package tx

import (
	"bytes"
	"encoding/hex"
	"io"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/user00000001/tesrasdk-go/encoding/blockchain"
	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/protocol/bc"
)

// Type selects the payload layout.
type Type byte

const (
	Deploy     Type = 0xd0
	Invoke     Type = 0xd1
	InvokeWasm Type = 0xd2
)

func (t Type) String() string {
	switch t {
	case Deploy:
		return "Deploy"
	case Invoke:
		return "Invoke"
	case InvokeWasm:
		return "InvokeWasm"
	}
	return "Type(0x" + strconv.FormatUint(uint64(t), 16) + ")"
}

// CurrentVersion is the only version this package produces.
const CurrentVersion = 0

// MaxSigs bounds the signature list.
const MaxSigs = 16

const maxAttributes = 1 << 10

var (
	ErrTooManySigs    = errors.Derive(errors.ErrSignatureLimit, "too many signatures")
	ErrBadType        = errors.Derive(errors.ErrSerialization, "unknown transaction type")
	ErrTrailing       = errors.Derive(errors.ErrSerialization, "trailing garbage")
	ErrPayloadMissing = errors.Derive(errors.ErrInvalidParams, "payload does not match transaction type")
	ErrBadGas         = errors.Derive(errors.ErrInvalidParams, "invalid gas value")
)

// Transaction is an unsigned or signed transaction. A zero Payer
// means none was set.
type Transaction struct {
	Version    byte
	Type       Type
	Nonce      uint32
	GasPrice   uint64
	GasLimit   uint64
	Payer      bc.Address
	Payload    Payload
	Attributes []Attribute
	Sigs       []*Sig
}

// Bytes returns the full serialized transaction.
func (tx *Transaction) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	_, err := tx.WriteTo(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnsignedBytes returns the part of the transaction covered by
// signatures.
func (tx *Transaction) UnsignedBytes() ([]byte, error) {
	var buf bytes.Buffer
	ew := errors.NewWriter(&buf)
	if err := tx.writeUnsigned(ew); err != nil {
		return nil, err
	}
	if ew.Err() != nil {
		return nil, ew.Err()
	}
	return buf.Bytes(), nil
}

// Digest is the message signers sign: the double SHA-256 of the
// unsigned bytes.
func (tx *Transaction) Digest() ([]byte, error) {
	b, err := tx.UnsignedBytes()
	if err != nil {
		return nil, err
	}
	return chainhash.DoubleHashB(b), nil
}

// Hash is the transaction id. Its String form is byte-reversed, as
// nodes and explorers display it.
func (tx *Transaction) Hash() (chainhash.Hash, error) {
	b, err := tx.UnsignedBytes()
	if err != nil {
		return chainhash.Hash{}, err
	}
	return chainhash.DoubleHashH(b), nil
}

// Serialize returns the hex form accepted by nodes.
func (tx *Transaction) Serialize() (string, error) {
	b, err := tx.MarshalText()
	return string(b), err
}

// Deserialize parses the hex form. The whole string must be consumed.
func Deserialize(s string) (*Transaction, error) {
	tx := new(Transaction)
	err := tx.UnmarshalText([]byte(s))
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// MarshalText fulfills the encoding.TextMarshaler interface.
func (tx *Transaction) MarshalText() ([]byte, error) {
	b, err := tx.Bytes()
	if err != nil {
		return nil, err
	}
	enc := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(enc, b)
	return enc, nil
}

// UnmarshalText fulfills the encoding.TextUnmarshaler interface.
// On failure tx is left unchanged.
func (tx *Transaction) UnmarshalText(text []byte) error {
	decoded := make([]byte, hex.DecodedLen(len(text)))
	_, err := hex.Decode(decoded, text)
	if err != nil {
		return errors.Sub(errors.ErrSerialization, err)
	}

	var parsed Transaction
	r := bytes.NewReader(decoded)
	_, err = parsed.ReadFrom(r)
	if err != nil {
		return err
	}
	if trailing := r.Len(); trailing > 0 {
		return errors.WithDetailf(ErrTrailing, "%d bytes", trailing)
	}
	*tx = parsed
	return nil
}

// WriteTo writes the full transaction to w.
func (tx *Transaction) WriteTo(w io.Writer) (int64, error) {
	if len(tx.Sigs) > MaxSigs {
		return 0, errors.WithDetailf(ErrTooManySigs, "%d signatures; max is %d", len(tx.Sigs), MaxSigs)
	}
	// Encode into a buffer first so w never sees a partial transaction.
	var buf bytes.Buffer
	ew := errors.NewWriter(&buf)
	if err := tx.writeUnsigned(ew); err != nil {
		return 0, err
	}
	blockchain.WriteVarUint(ew, uint64(len(tx.Sigs)))
	for i, sig := range tx.Sigs {
		if err := sig.writeTo(ew); err != nil {
			return 0, errors.Wrapf(err, "writing sig %d", i)
		}
	}
	if ew.Err() != nil {
		return 0, ew.Err()
	}
	n, err := buf.WriteTo(w)
	return n, err
}

// assumes w has sticky errors
func (tx *Transaction) writeUnsigned(w io.Writer) error {
	if err := checkPayload(tx.Type, tx.Payload); err != nil {
		return err
	}
	blockchain.WriteByte(w, tx.Version)
	blockchain.WriteByte(w, byte(tx.Type))
	blockchain.WriteUint32(w, tx.Nonce)
	blockchain.WriteUint64(w, tx.GasPrice)
	blockchain.WriteUint64(w, tx.GasLimit)
	w.Write(tx.Payer[:])
	tx.Payload.writeTo(w)
	if len(tx.Attributes) > maxAttributes {
		return errors.WithDetailf(errors.ErrInvalidParams, "%d attributes", len(tx.Attributes))
	}
	blockchain.WriteVarUint(w, uint64(len(tx.Attributes)))
	for _, a := range tx.Attributes {
		a.writeTo(w)
	}
	return nil
}

// ReadFrom reads one transaction from r. Bytes after it are left
// unread.
func (tx *Transaction) ReadFrom(r io.Reader) (int64, error) {
	er := errors.NewReader(r)
	err := tx.readFrom(er)
	return er.BytesRead(), err
}

func (tx *Transaction) readFrom(r io.Reader) (err error) {
	if tx.Version, err = blockchain.ReadByte(r, "version"); err != nil {
		return err
	}
	t, err := blockchain.ReadByte(r, "type")
	if err != nil {
		return err
	}
	tx.Type = Type(t)
	if tx.Nonce, err = blockchain.ReadUint32(r, "nonce"); err != nil {
		return err
	}
	if tx.GasPrice, err = blockchain.ReadUint64(r, "gas price"); err != nil {
		return err
	}
	if tx.GasLimit, err = blockchain.ReadUint64(r, "gas limit"); err != nil {
		return err
	}
	payer, err := blockchain.ReadBytes(r, bc.AddressSize, "payer")
	if err != nil {
		return err
	}
	copy(tx.Payer[:], payer)

	switch tx.Type {
	case Invoke, InvokeWasm:
		p := new(InvokeCode)
		err = p.readFrom(r)
		tx.Payload = p
	case Deploy:
		p := new(DeployCode)
		err = p.readFrom(r)
		tx.Payload = p
	default:
		return errors.WithDetailf(ErrBadType, "type 0x%02x", t)
	}
	if err != nil {
		return errors.Wrap(err, "reading payload")
	}

	n, err := blockchain.ReadVarUint(r)
	if err != nil {
		return errors.Wrap(err, "reading attribute count")
	}
	if n > maxAttributes {
		return errors.WithDetailf(blockchain.ErrTooLarge, "%d attributes", n)
	}
	tx.Attributes = nil
	for i := uint64(0); i < n; i++ {
		var a Attribute
		if err := a.readFrom(r); err != nil {
			return errors.Wrapf(err, "reading attribute %d", i)
		}
		tx.Attributes = append(tx.Attributes, a)
	}

	n, err = blockchain.ReadVarUint(r)
	if err != nil {
		return errors.Wrap(err, "reading sig count")
	}
	if n > MaxSigs {
		return errors.WithDetailf(ErrTooManySigs, "%d signatures; max is %d", n, MaxSigs)
	}
	tx.Sigs = nil
	for i := uint64(0); i < n; i++ {
		sig := new(Sig)
		if err := sig.readFrom(r); err != nil {
			return errors.Wrapf(err, "reading sig %d", i)
		}
		tx.Sigs = append(tx.Sigs, sig)
	}
	return nil
}

// ParseGas parses a decimal gas price or limit.
func ParseGas(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.WithDetailf(ErrBadGas, "%q", s)
	}
	return v, nil
}
