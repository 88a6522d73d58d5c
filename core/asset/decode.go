package asset

import (
	"math/big"

	"github.com/user00000001/tesrasdk-go/core/abi"
	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/protocol/bc"
	"github.com/user00000001/tesrasdk-go/protocol/tx"
)

// Transfer describes a recognized transfer or transferFrom.
type Transfer struct {
	Token  Token
	Method string

	// States holds every leg of a transfer. For transferFrom it holds
	// the single owner-to-recipient leg.
	States []State

	// Sender is the allowance holder of a transferFrom.
	Sender bc.Address
}

// DecodeTransfer recognizes native TST and TSG transfers. Anything
// else fails with ErrNotTransfer.
func DecodeTransfer(t *tx.Transaction) (*Transfer, error) {
	tr, err := decodeTransfer(t)
	if err != nil {
		log.Tracef("not a transfer: %v", err)
		return nil, errors.Sub(ErrNotTransfer, err)
	}
	return tr, nil
}

func decodeTransfer(t *tx.Transaction) (*Transfer, error) {
	code, ok := t.Payload.(*tx.InvokeCode)
	if !ok || t.Type != tx.Invoke {
		return nil, errors.New("not an invoke transaction")
	}
	inv, err := abi.DecodeInvocation(code.Code)
	if err != nil {
		return nil, err
	}
	if !inv.Native {
		return nil, errors.New("not a native call")
	}
	token, ok := tokenByContract(inv.Contract)
	if !ok {
		return nil, errors.New("not a token contract")
	}
	if len(inv.Args) != 1 {
		return nil, errors.New("unexpected argument count")
	}

	tr := &Transfer{Token: token, Method: inv.Method}
	switch inv.Method {
	case MethodTransfer:
		legs, err := inv.Args[0].AsArray()
		if err != nil {
			return nil, err
		}
		if len(legs) == 0 {
			return nil, errors.New("no transfer states")
		}
		for _, leg := range legs {
			f, err := fields(leg, 3)
			if err != nil {
				return nil, err
			}
			s, err := state(f[0], f[1], f[2])
			if err != nil {
				return nil, err
			}
			tr.States = append(tr.States, s)
		}
	case MethodTransferFrom:
		f, err := fields(inv.Args[0], 4)
		if err != nil {
			return nil, err
		}
		if tr.Sender, err = f[0].AsAddress(); err != nil {
			return nil, err
		}
		s, err := state(f[1], f[2], f[3])
		if err != nil {
			return nil, err
		}
		tr.States = []State{s}
	default:
		return nil, errors.New("method " + inv.Method)
	}
	return tr, nil
}

func fields(p abi.Parameter, n int) ([]abi.Parameter, error) {
	if p.Type != abi.TypeStruct {
		return nil, errors.New("argument is not a struct")
	}
	f, _ := p.AsArray()
	if len(f) != n {
		return nil, errors.New("unexpected struct size")
	}
	return f, nil
}

func state(from, to, amount abi.Parameter) (State, error) {
	var (
		s   State
		err error
	)
	if s.From, err = from.AsAddress(); err != nil {
		return s, err
	}
	if s.To, err = to.AsAddress(); err != nil {
		return s, err
	}
	var n *big.Int
	if n, err = amount.AsInt(); err != nil {
		return s, err
	}
	s.Amount = n
	return s, checkAmount(n)
}
