package abi

import (
	"math/big"

	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/protocol/bc"
	"github.com/user00000001/tesrasdk-go/protocol/vm"
	"github.com/user00000001/tesrasdk-go/protocol/vmutil"
)

// An Option adjusts how invocation scripts are built.
type Option func(*options)

type options struct {
	ledger bool
}

// WithLedgerCompatible controls the padding of integer pushes for
// hardware wallet parsers. It is on by default.
func WithLedgerCompatible(on bool) Option {
	return func(o *options) { o.ledger = on }
}

func buildOptions(opts []Option) options {
	o := options{ledger: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// BuildInvocationScript returns a NEO-style call of method on
// contract: the parameters packed into one array, the method name,
// then APPCALL.
func BuildInvocationScript(contract bc.Address, method string, params []Parameter, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)
	b := vmutil.NewBuilder()
	if err := pushParams(b, params, o, 0); err != nil {
		return nil, err
	}
	b.AddInt64(int64(len(params))).AddOp(vm.OP_PACK)
	b.AddData([]byte(method))
	b.AddAppCall(contract)
	return b.Build()
}

// BuildNativeInvocationScript returns a call of method on a native
// contract. Each parameter is pushed as its own stack item, followed
// by the method name, the contract, the invoke version and the
// native invoke syscall.
func BuildNativeInvocationScript(contract bc.Address, method string, params []Parameter, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)
	b := vmutil.NewBuilder()
	if err := pushParams(b, params, o, 0); err != nil {
		return nil, err
	}
	b.AddData([]byte(method))
	b.AddAddress(contract)
	b.AddInt64(0)
	b.AddSyscall(vmutil.NativeInvokeSyscall)
	return b.Build()
}

// pushParams pushes ps last first, so the first parameter ends on
// top of the stack.
func pushParams(b *vmutil.Builder, ps []Parameter, o options, depth int) error {
	for i := len(ps) - 1; i >= 0; i-- {
		if err := pushParam(b, ps[i], o, depth); err != nil {
			return errors.Wrapf(err, "parameter %d", i)
		}
	}
	return nil
}

func pushParam(b *vmutil.Builder, p Parameter, o options, depth int) error {
	if depth > vm.MaxItemDepth {
		return vm.ErrItemDepth
	}
	if err := p.check(); err != nil {
		return err
	}
	switch p.Type {
	case TypeBoolean:
		b.AddBool(p.Value.(bool))
	case TypeInteger, TypeLong, TypeInt:
		b.AddBigInt(p.Value.(*big.Int), o.ledger)
	case TypeByteArray, TypeString, TypeAddress, TypeH256:
		v, _ := p.AsBytes()
		b.AddData(v)
	case TypeArray:
		elems := p.Value.([]Parameter)
		if err := pushParams(b, elems, o, depth+1); err != nil {
			return err
		}
		b.AddInt64(int64(len(elems))).AddOp(vm.OP_PACK)
	case TypeStruct:
		b.AddInt64(0).AddOp(vm.OP_NEWSTRUCT).AddOp(vm.OP_TOALTSTACK)
		for _, f := range p.Value.([]Parameter) {
			if err := pushParam(b, f, o, depth+1); err != nil {
				return err
			}
			b.AddOp(vm.OP_DUPFROMALTSTACK).AddOp(vm.OP_SWAP).AddOp(vm.OP_APPEND)
		}
		b.AddOp(vm.OP_FROMALTSTACK)
	case TypeMap:
		entries := p.Value.([]MapEntry)
		if _, err := mapKeys(entries); err != nil {
			return err
		}
		b.AddOp(vm.OP_NEWMAP).AddOp(vm.OP_TOALTSTACK)
		for _, e := range entries {
			b.AddOp(vm.OP_DUPFROMALTSTACK)
			if err := pushParam(b, e.Key, o, depth+1); err != nil {
				return err
			}
			if err := pushParam(b, e.Value, o, depth+1); err != nil {
				return err
			}
			b.AddOp(vm.OP_SETITEM)
		}
		b.AddOp(vm.OP_FROMALTSTACK)
	}
	return nil
}
