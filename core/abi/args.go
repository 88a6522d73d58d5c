package abi

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"strings"

	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/protocol/bc"
)

// ParseTypedArgs parses a JSON array of call arguments. Strings of
// the form "Type:value" produce a parameter of that type:
//
//	"String:did:tst:Ad..."   String, everything after the first colon
//	"ByteArray:0a0b"         ByteArray from hex
//	"Address:AXK2..."        Address from base58
//	"H256:3e5e..."           H256 in display (reversed) order
//	"Long:123", "Int:1"      Long or Int
//	"Integer:-5"             Integer
//	"Boolean:true"           Boolean
//
// Plain JSON numbers are Integers, booleans are Booleans, other
// strings are Strings and nested arrays are Arrays. An object
// {"name": ..., "value": ...} yields a named parameter.
func ParseTypedArgs(data []byte) ([]Parameter, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw []interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.WithDetailf(ErrBadValue, "arguments: %s", err)
	}
	return parseArgList(raw, 0)
}

func parseArgList(raw []interface{}, depth int) ([]Parameter, error) {
	ps := make([]Parameter, 0, len(raw))
	for i, v := range raw {
		p, err := parseArg(v, depth)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i)
		}
		ps = append(ps, p)
	}
	return ps, nil
}

func parseArg(v interface{}, depth int) (Parameter, error) {
	if depth > maxArgDepth {
		return Parameter{}, errors.WithDetail(ErrBadValue, "arguments nested too deeply")
	}
	switch v := v.(type) {
	case bool:
		return Bool(v), nil
	case json.Number:
		n, ok := new(big.Int).SetString(v.String(), 10)
		if !ok {
			return Parameter{}, errors.WithDetailf(ErrBadValue, "%s is not an integer", v)
		}
		return BigInt(n), nil
	case string:
		return parseTyped(v)
	case []interface{}:
		elems, err := parseArgList(v, depth+1)
		if err != nil {
			return Parameter{}, err
		}
		return Array(elems...), nil
	case map[string]interface{}:
		val, ok := v["value"]
		if !ok {
			return Parameter{}, errors.WithDetail(ErrBadValue, "object argument has no value")
		}
		p, err := parseArg(val, depth+1)
		if err != nil {
			return Parameter{}, err
		}
		name, _ := v["name"].(string)
		return p.Named(name), nil
	}
	return Parameter{}, errors.WithDetailf(ErrBadValue, "unexpected %T", v)
}

const maxArgDepth = 32

func parseTyped(s string) (Parameter, error) {
	prefix, rest, found := strings.Cut(s, ":")
	if !found {
		return String(s), nil
	}
	switch Type(prefix) {
	case TypeString:
		return String(rest), nil
	case TypeByteArray:
		b, err := hex.DecodeString(rest)
		if err != nil {
			return Parameter{}, errors.WithDetailf(ErrBadValue, "ByteArray %q: %s", rest, err)
		}
		return Bytes(b), nil
	case TypeAddress:
		a, err := bc.AddressFromBase58(rest)
		if err != nil {
			return Parameter{}, err
		}
		return Address(a), nil
	case TypeH256:
		h, err := bc.H256FromReversedHex(rest)
		if err != nil {
			return Parameter{}, err
		}
		return H256(h), nil
	case TypeInteger, TypeLong, TypeInt:
		n, ok := new(big.Int).SetString(rest, 10)
		if !ok {
			return Parameter{}, errors.WithDetailf(ErrBadValue, "%s %q is not an integer", prefix, rest)
		}
		return Parameter{Type: Type(prefix), Value: n}, nil
	case TypeBoolean:
		switch rest {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		}
		return Parameter{}, errors.WithDetailf(ErrBadValue, "Boolean %q", rest)
	}
	// Not a known type prefix, so the colon is part of a plain string.
	return String(s), nil
}
