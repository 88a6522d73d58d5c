package vmutil

import (
	"bytes"
	"math/big"

	"github.com/user00000001/tesrasdk-go/encoding/blockchain"
	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/protocol/bc"
	"github.com/user00000001/tesrasdk-go/protocol/vm"
)

// NativeInvokeSyscall is the interop service that dispatches a call to
// a native contract.
const NativeInvokeSyscall = "Tesra.Native.Invoke"

// Builder assembles a program one instruction at a time. The first
// failure is remembered and returned by Build; later calls are no-ops.
type Builder struct {
	program []byte
	err     error
}

func NewBuilder() *Builder {
	return &Builder{}
}

// AddInt64 adds a pushdata instruction for an integer value.
func (b *Builder) AddInt64(n int64) *Builder {
	return b.AddRawBytes(vm.PushdataInt64(n))
}

// AddBigInt adds a pushdata instruction for n. With ledger set, data
// pushes are padded for hardware wallet parsers.
func (b *Builder) AddBigInt(n *big.Int, ledger bool) *Builder {
	if n == nil {
		return b.fail(errors.WithDetail(ErrBadValue, "nil integer"))
	}
	return b.AddRawBytes(vm.PushdataBigInt(n, ledger))
}

// AddBool adds OP_TRUE or OP_FALSE.
func (b *Builder) AddBool(v bool) *Builder {
	return b.AddRawBytes(vm.PushdataBool(v))
}

// AddData adds a pushdata instruction for a given byte string.
func (b *Builder) AddData(data []byte) *Builder {
	return b.AddRawBytes(vm.PushdataBytes(data))
}

// AddAddress pushes the 20 address bytes.
func (b *Builder) AddAddress(a bc.Address) *Builder {
	return b.AddData(a[:])
}

// AddRawBytes simply appends the given bytes to the program. (It does
// not introduce a pushdata opcode.)
func (b *Builder) AddRawBytes(data []byte) *Builder {
	if b.err == nil {
		b.program = append(b.program, data...)
	}
	return b
}

// AddOp adds the given opcode to the program.
func (b *Builder) AddOp(op vm.Op) *Builder {
	return b.AddRawBytes([]byte{byte(op)})
}

// AddSyscall adds SYSCALL with the interop service name as its operand.
func (b *Builder) AddSyscall(name string) *Builder {
	if name == "" {
		return b.fail(errors.WithDetail(ErrBadValue, "empty syscall name"))
	}
	var buf bytes.Buffer
	buf.WriteByte(byte(vm.OP_SYSCALL))
	if err := blockchain.WriteVarString(&buf, name); err != nil {
		return b.fail(err)
	}
	return b.AddRawBytes(buf.Bytes())
}

// AddAppCall adds APPCALL with contract as its operand.
func (b *Builder) AddAppCall(contract bc.Address) *Builder {
	return b.AddOp(vm.OP_APPCALL).AddRawBytes(contract[:])
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Build produces the bytecode of the program, or the first error
// recorded while building it.
func (b *Builder) Build() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.program, nil
}
