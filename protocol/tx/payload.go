package tx

import (
	"io"

	"github.com/user00000001/tesrasdk-go/encoding/blockchain"
	"github.com/user00000001/tesrasdk-go/errors"
)

// VMType tags deployed code with the VM that runs it. The codec does
// not interpret it.
type VMType byte

const (
	NeoVM  VMType = 1
	WasmVM VMType = 3
)

const maxDeployField = 1 << 16

// Payload is the type-specific body: *InvokeCode or *DeployCode.
type Payload interface {
	writeTo(w io.Writer)
	readFrom(r io.Reader) error
}

// InvokeCode carries an invocation script (Invoke) or a wasm call
// (InvokeWasm).
type InvokeCode struct {
	Code []byte
}

// assumes w has sticky errors
func (p *InvokeCode) writeTo(w io.Writer) {
	blockchain.WriteVarBytes(w, p.Code)
}

func (p *InvokeCode) readFrom(r io.Reader) (err error) {
	p.Code, err = blockchain.ReadVarBytes(r, blockchain.MaxVarBytes, "code")
	return err
}

// DeployCode carries contract code and its metadata.
type DeployCode struct {
	Code        []byte
	VMType      VMType
	Name        string
	Version     string
	Author      string
	Email       string
	Description string
}

// assumes w has sticky errors
func (p *DeployCode) writeTo(w io.Writer) {
	blockchain.WriteVarBytes(w, p.Code)
	blockchain.WriteByte(w, byte(p.VMType))
	for _, s := range p.fields() {
		blockchain.WriteVarString(w, *s)
	}
}

func (p *DeployCode) readFrom(r io.Reader) (err error) {
	if p.Code, err = blockchain.ReadVarBytes(r, blockchain.MaxVarBytes, "code"); err != nil {
		return err
	}
	vm, err := blockchain.ReadByte(r, "vm type")
	if err != nil {
		return err
	}
	p.VMType = VMType(vm)
	names := [...]string{"name", "version", "author", "email", "description"}
	for i, s := range p.fields() {
		if *s, err = blockchain.ReadVarString(r, maxDeployField, names[i]); err != nil {
			return err
		}
	}
	return nil
}

func (p *DeployCode) fields() []*string {
	return []*string{&p.Name, &p.Version, &p.Author, &p.Email, &p.Description}
}

func checkPayload(t Type, p Payload) error {
	switch p.(type) {
	case *InvokeCode:
		if t == Invoke || t == InvokeWasm {
			return nil
		}
	case *DeployCode:
		if t == Deploy {
			return nil
		}
	}
	return errors.WithDetailf(ErrPayloadMissing, "%s with %T", t, p)
}
