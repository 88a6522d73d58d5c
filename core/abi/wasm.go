package abi

import (
	"bytes"
	"math/big"

	"github.com/user00000001/tesrasdk-go/encoding/blockchain"
	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/math/int128"
	"github.com/user00000001/tesrasdk-go/protocol/bc"
	"github.com/user00000001/tesrasdk-go/protocol/vm"
)

// BuildWasmInvocationScript returns the payload code of a wasm
// contract call: the contract address followed by the var-bytes
// argument blob, whose first entry is the method name.
//
// Integer and Long arguments are 16-byte little-endian signed values,
// Int is a 4-byte little-endian unsigned value. Map and Struct have
// no wasm form.
func BuildWasmInvocationScript(contract bc.Address, method string, params []Parameter) ([]byte, error) {
	var args bytes.Buffer
	if err := writeWasm(&args, String(method), 0); err != nil {
		return nil, err
	}
	for i, p := range params {
		if err := writeWasm(&args, p, 0); err != nil {
			return nil, errors.Wrapf(err, "parameter %d", i)
		}
	}

	var buf bytes.Buffer
	buf.Write(contract.Bytes())
	if err := blockchain.WriteVarBytes(&buf, args.Bytes()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeWasm(w *bytes.Buffer, p Parameter, depth int) error {
	if depth > vm.MaxItemDepth {
		return vm.ErrItemDepth
	}
	if err := p.check(); err != nil {
		return err
	}
	switch p.Type {
	case TypeString:
		return blockchain.WriteVarString(w, p.Value.(string))
	case TypeByteArray:
		return blockchain.WriteVarBytes(w, p.Value.([]byte))
	case TypeAddress:
		w.Write(p.Value.(bc.Address).Bytes())
	case TypeH256:
		h := p.Value.(bc.H256)
		w.Write(h[:])
	case TypeBoolean:
		return blockchain.WriteBool(w, p.Value.(bool))
	case TypeInteger, TypeLong:
		n, err := int128.FromBig(p.Value.(*big.Int))
		if err != nil {
			return err
		}
		b := n.Bytes()
		w.Write(b[:])
	case TypeInt:
		n := p.Value.(*big.Int)
		if n.Sign() < 0 || !n.IsUint64() || n.Uint64() > 1<<32-1 {
			return errors.WithDetailf(ErrBadValue, "Int %s out of range", n)
		}
		return blockchain.WriteUint32(w, uint32(n.Uint64()))
	case TypeArray:
		elems := p.Value.([]Parameter)
		if err := blockchain.WriteVarUint(w, uint64(len(elems))); err != nil {
			return err
		}
		for _, e := range elems {
			if err := writeWasm(w, e, depth+1); err != nil {
				return err
			}
		}
	default:
		return errors.WithDetailf(ErrUnsupported, "%s has no wasm form", p.Type)
	}
	return nil
}
