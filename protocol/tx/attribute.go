package tx

import (
	"io"

	"github.com/user00000001/tesrasdk-go/encoding/blockchain"
)

// AttributeUsage says how an attribute's data is meant.
type AttributeUsage byte

const (
	AttrNonce          AttributeUsage = 0x00
	AttrScript         AttributeUsage = 0x20
	AttrDescriptionURL AttributeUsage = 0x81
	AttrDescription    AttributeUsage = 0x90
)

const maxAttributeData = 1 << 16

// Attribute is an opaque annotation covered by the signing digest.
type Attribute struct {
	Usage AttributeUsage
	Data  []byte
}

// assumes w has sticky errors
func (a *Attribute) writeTo(w io.Writer) {
	blockchain.WriteByte(w, byte(a.Usage))
	blockchain.WriteVarBytes(w, a.Data)
}

func (a *Attribute) readFrom(r io.Reader) error {
	u, err := blockchain.ReadByte(r, "attribute usage")
	if err != nil {
		return err
	}
	a.Usage = AttributeUsage(u)
	a.Data, err = blockchain.ReadVarBytes(r, maxAttributeData, "attribute data")
	return err
}
