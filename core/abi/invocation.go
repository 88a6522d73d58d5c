package abi

import (
	"github.com/user00000001/tesrasdk-go/protocol/bc"
	"github.com/user00000001/tesrasdk-go/protocol/vmutil"
)

// Invocation is a contract call recovered from an invocation script.
type Invocation struct {
	Contract bc.Address
	Method   string
	Native   bool
	Args     []Parameter
}

// DecodeInvocation reverses BuildInvocationScript and
// BuildNativeInvocationScript. Arguments come back untyped: byte
// strings as ByteArray, small pushes as Integer.
func DecodeInvocation(script []byte) (*Invocation, error) {
	inv, err := vmutil.DecodeInvocation(script)
	if err != nil {
		return nil, err
	}
	return &Invocation{
		Contract: inv.Contract,
		Method:   inv.Method,
		Native:   inv.Native,
		Args:     fromItems(inv.Args),
	}, nil
}
