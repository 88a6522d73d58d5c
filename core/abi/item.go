package abi

import (
	"math/big"

	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/protocol/bc"
	"github.com/user00000001/tesrasdk-go/protocol/vm"
)

// Encode returns the tagged stack-item form of p.
func Encode(p Parameter) ([]byte, error) {
	it, err := ToItem(p)
	if err != nil {
		return nil, err
	}
	return vm.SerializeItem(it)
}

// Decode parses a tagged stack item, such as a contract's return
// value. Byte strings come back as ByteArray whatever they were
// encoded from; use the As accessors to interpret them.
func Decode(b []byte) (Parameter, error) {
	it, err := vm.DeserializeItem(b)
	if err != nil {
		return Parameter{}, err
	}
	return FromItem(it), nil
}

// ToItem converts p to the stack item the VM would hold for it.
func ToItem(p Parameter) (vm.Item, error) {
	return toItem(p, 0)
}

func toItem(p Parameter, depth int) (vm.Item, error) {
	if depth > vm.MaxItemDepth {
		return nil, vm.ErrItemDepth
	}
	if err := p.check(); err != nil {
		return nil, err
	}
	switch v := p.Value.(type) {
	case bool:
		return vm.Boolean(v), nil
	case *big.Int:
		return vm.Integer{Value: v}, nil
	case []byte:
		return vm.ByteArray(v), nil
	case string:
		return vm.ByteArray(v), nil
	case bc.Address:
		return vm.ByteArray(v.Bytes()), nil
	case bc.H256:
		return vm.ByteArray(v[:]), nil
	case []Parameter:
		items, err := toItems(v, depth)
		if err != nil {
			return nil, err
		}
		if p.Type == TypeStruct {
			return &vm.Struct{Items: items}, nil
		}
		return &vm.Array{Items: items}, nil
	case []MapEntry:
		keys, err := mapKeys(v)
		if err != nil {
			return nil, err
		}
		m := &vm.Map{Entries: make([]vm.MapEntry, 0, len(v))}
		for i, e := range v {
			val, err := toItem(e.Value, depth+1)
			if err != nil {
				return nil, err
			}
			m.Entries = append(m.Entries, vm.MapEntry{Key: keys[i], Value: val})
		}
		return m, nil
	}
	return nil, errors.WithDetailf(ErrUnsupported, "%s", p.Type)
}

func toItems(ps []Parameter, depth int) ([]vm.Item, error) {
	items := make([]vm.Item, 0, len(ps))
	for _, sub := range ps {
		it, err := toItem(sub, depth+1)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// FromItem converts a stack item to a Parameter.
func FromItem(it vm.Item) Parameter {
	switch it := it.(type) {
	case vm.ByteArray:
		return Bytes([]byte(it))
	case vm.Boolean:
		return Bool(bool(it))
	case vm.Integer:
		return BigInt(it.Value)
	case *vm.Array:
		return Array(fromItems(it.Items)...)
	case *vm.Struct:
		return Struct(fromItems(it.Items)...)
	case *vm.Map:
		entries := make([]MapEntry, 0, len(it.Entries))
		for _, e := range it.Entries {
			entries = append(entries, MapEntry{Key: FromItem(e.Key), Value: FromItem(e.Value)})
		}
		return Map(entries...)
	}
	return Parameter{Type: TypeInterface}
}

func fromItems(items []vm.Item) []Parameter {
	ps := make([]Parameter, 0, len(items))
	for _, it := range items {
		ps = append(ps, FromItem(it))
	}
	return ps
}

// mapKeys converts the keys of entries to stack items. Keys must be
// primitives and no two may be equal as stack items, so String("k")
// and Bytes([]byte("k")) collide.
func mapKeys(entries []MapEntry) ([]vm.Item, error) {
	keys := make([]vm.Item, 0, len(entries))
	for i, e := range entries {
		if !isPrimitive(e.Key.Type) {
			return nil, errors.WithDetailf(ErrMapKey, "key of type %s", e.Key.Type)
		}
		k, err := toItem(e.Key, 0)
		if err != nil {
			return nil, err
		}
		for j, prev := range keys {
			if vm.Equal(prev, k) {
				return nil, errors.WithDetailf(ErrBadValue, "map entries %d and %d have equal keys", j, i)
			}
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// isPrimitive reports whether parameters of type t become byte
// strings, integers or booleans on the stack.
func isPrimitive(t Type) bool {
	switch t {
	case TypeByteArray, TypeString, TypeAddress, TypeH256,
		TypeBoolean, TypeInteger, TypeLong, TypeInt:
		return true
	}
	return false
}
