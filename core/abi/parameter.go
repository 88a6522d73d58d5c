// Package abi converts typed contract-call parameters to and from
// the byte forms the VMs consume: push-opcode invocation scripts,
// wasm argument blobs and tagged stack items.
package abi

import (
	"math/big"
	"unicode/utf8"

	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/protocol/bc"
	"github.com/user00000001/tesrasdk-go/protocol/vm"
)

// Type names a parameter type as it appears in ABI files and typed
// argument strings.
type Type string

const (
	TypeBoolean   Type = "Boolean"
	TypeInteger   Type = "Integer"
	TypeByteArray Type = "ByteArray"
	TypeString    Type = "String"
	TypeArray     Type = "Array"
	TypeMap       Type = "Map"
	TypeStruct    Type = "Struct"
	TypeAddress   Type = "Address"
	TypeH256      Type = "H256"
	TypeLong      Type = "Long"
	TypeInt       Type = "Int"
	TypeAny       Type = "Any"
	TypeVoid      Type = "Void"
	TypeInterface Type = "Interface"
)

var (
	ErrUnsupported = errors.Derive(errors.ErrUnsupportedType, "unsupported parameter type")
	ErrBadValue    = errors.Derive(errors.ErrInvalidParams, "parameter value does not match its type")
	ErrMapKey      = errors.Derive(errors.ErrUnsupportedType, "map key must be a byte string, integer or boolean")
)

// Parameter is a typed value. The Go type of Value is fixed by Type:
//
//	Boolean                  bool
//	Integer, Long, Int       *big.Int
//	ByteArray                []byte
//	String                   string
//	Address                  bc.Address
//	H256                     bc.H256
//	Array, Struct            []Parameter
//	Map                      []MapEntry
type Parameter struct {
	Name  string
	Type  Type
	Value interface{}
}

// MapEntry is one pair of a Map parameter, kept in insertion order.
type MapEntry struct {
	Key, Value Parameter
}

func Bool(v bool) Parameter          { return Parameter{Type: TypeBoolean, Value: v} }
func Int(v int64) Parameter          { return Parameter{Type: TypeInteger, Value: big.NewInt(v)} }
func BigInt(v *big.Int) Parameter    { return Parameter{Type: TypeInteger, Value: new(big.Int).Set(v)} }
func Bytes(v []byte) Parameter       { return Parameter{Type: TypeByteArray, Value: v} }
func String(v string) Parameter      { return Parameter{Type: TypeString, Value: v} }
func Address(v bc.Address) Parameter { return Parameter{Type: TypeAddress, Value: v} }
func H256(v bc.H256) Parameter       { return Parameter{Type: TypeH256, Value: v} }
func Array(elems ...Parameter) Parameter {
	return Parameter{Type: TypeArray, Value: elems}
}
func Struct(fields ...Parameter) Parameter {
	return Parameter{Type: TypeStruct, Value: fields}
}
func Map(entries ...MapEntry) Parameter {
	return Parameter{Type: TypeMap, Value: entries}
}

// Named returns p with its name set.
func (p Parameter) Named(name string) Parameter {
	p.Name = name
	return p
}

// check verifies that Value has the Go type Type requires.
func (p Parameter) check() error {
	ok := false
	switch p.Type {
	case TypeBoolean:
		_, ok = p.Value.(bool)
	case TypeInteger, TypeLong, TypeInt:
		var n *big.Int
		n, ok = p.Value.(*big.Int)
		ok = ok && n != nil
	case TypeByteArray:
		_, ok = p.Value.([]byte)
	case TypeString:
		_, ok = p.Value.(string)
	case TypeAddress:
		_, ok = p.Value.(bc.Address)
	case TypeH256:
		_, ok = p.Value.(bc.H256)
	case TypeArray, TypeStruct:
		_, ok = p.Value.([]Parameter)
	case TypeMap:
		_, ok = p.Value.([]MapEntry)
	default:
		return errors.WithDetailf(ErrUnsupported, "%q", p.Type)
	}
	if !ok {
		return errors.WithDetailf(ErrBadValue, "%s parameter %q holds %T", p.Type, p.Name, p.Value)
	}
	return nil
}

// AsBool interprets a Boolean, Integer or ByteArray result the way
// the VM does: non-zero is true.
func (p Parameter) AsBool() (bool, error) {
	switch v := p.Value.(type) {
	case bool:
		return v, nil
	case *big.Int:
		return v.Sign() != 0, nil
	case []byte:
		for _, c := range v {
			if c != 0 {
				return true, nil
			}
		}
		return false, nil
	}
	return false, errors.WithDetailf(ErrBadValue, "%s is not a boolean", p.Type)
}

// AsInt interprets an Integer, Boolean or ByteArray result. Byte
// arrays hold a little-endian two's-complement integer.
func (p Parameter) AsInt() (*big.Int, error) {
	switch v := p.Value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case bool:
		if v {
			return big.NewInt(1), nil
		}
		return new(big.Int), nil
	case []byte:
		return vm.DecodeInt(v), nil
	}
	return nil, errors.WithDetailf(ErrBadValue, "%s is not an integer", p.Type)
}

// AsBytes returns the byte form of a scalar result.
func (p Parameter) AsBytes() ([]byte, error) {
	switch v := p.Value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case bc.Address:
		return v.Bytes(), nil
	case bc.H256:
		return v[:], nil
	case *big.Int:
		return vm.EncodeInt(v, false), nil
	case bool:
		if v {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	}
	return nil, errors.WithDetailf(ErrBadValue, "%s has no byte form", p.Type)
}

// AsString interprets a String or ByteArray result as UTF-8 text.
func (p Parameter) AsString() (string, error) {
	switch v := p.Value.(type) {
	case string:
		return v, nil
	case []byte:
		if !utf8.Valid(v) {
			return "", errors.WithDetail(ErrBadValue, "byte array is not UTF-8")
		}
		return string(v), nil
	}
	return "", errors.WithDetailf(ErrBadValue, "%s is not a string", p.Type)
}

// AsAddress interprets an Address or 20-byte ByteArray result.
func (p Parameter) AsAddress() (bc.Address, error) {
	switch v := p.Value.(type) {
	case bc.Address:
		return v, nil
	case []byte:
		return bc.AddressFromBytes(v)
	}
	return bc.Address{}, errors.WithDetailf(ErrBadValue, "%s is not an address", p.Type)
}

// AsArray returns the elements of an Array or Struct result.
func (p Parameter) AsArray() ([]Parameter, error) {
	if v, ok := p.Value.([]Parameter); ok {
		return v, nil
	}
	return nil, errors.WithDetailf(ErrBadValue, "%s is not an array", p.Type)
}
