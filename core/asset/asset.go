// Package asset builds and recognizes transactions of the native
// TST and TSG token contracts.
package asset

import (
	"math/big"
	"strings"

	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/protocol/bc"
)

var (
	ErrUnknownToken = errors.Derive(errors.ErrInvalidParams, "unknown token")
	ErrBadAmount    = errors.Derive(errors.ErrInvalidParams, "amount must be a positive integer")
	ErrNotTransfer  = errors.Derive(errors.ErrNotTransfer, "not a native token transfer")
)

// Token is a native token contract.
type Token struct {
	Symbol   string
	Contract bc.Address
	Decimals uint
}

var (
	TST = Token{Symbol: "TST", Contract: bc.TSTContract, Decimals: 1}
	TSG = Token{Symbol: "TSG", Contract: bc.TSGContract, Decimals: 9}
)

// TokenBySymbol looks a token up by symbol, ignoring case.
func TokenBySymbol(s string) (Token, error) {
	switch strings.ToUpper(s) {
	case TST.Symbol:
		return TST, nil
	case TSG.Symbol:
		return TSG, nil
	}
	return Token{}, errors.WithDetailf(ErrUnknownToken, "%q", s)
}

func tokenByContract(a bc.Address) (Token, bool) {
	switch a {
	case TST.Contract:
		return TST, true
	case TSG.Contract:
		return TSG, true
	}
	return Token{}, false
}

// State is one leg of a transfer.
type State struct {
	From   bc.Address
	To     bc.Address
	Amount *big.Int
}

func checkAmount(n *big.Int) error {
	if n == nil || n.Sign() <= 0 {
		return errors.WithDetailf(ErrBadAmount, "got %v", n)
	}
	return nil
}
