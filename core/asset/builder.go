package asset

import (
	"math/big"

	"github.com/user00000001/tesrasdk-go/core/abi"
	"github.com/user00000001/tesrasdk-go/core/txbuilder"
	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/protocol/bc"
	"github.com/user00000001/tesrasdk-go/protocol/tx"
)

// Native method names.
const (
	MethodTransfer     = "transfer"
	MethodTransferFrom = "transferFrom"
	MethodApprove      = "approve"
	MethodAllowance    = "allowance"
	MethodBalanceOf    = "balanceOf"
)

// MakeTransferTx returns a transfer of amount from one address to
// another. A zero payer means from pays the gas.
func MakeTransferTx(token Token, from, to bc.Address, amount *big.Int, payer bc.Address, gasPrice, gasLimit uint64) (*tx.Transaction, error) {
	if payer.IsZero() {
		payer = from
	}
	return MakeMultiTransferTx(token, []State{{From: from, To: to, Amount: amount}}, payer, gasPrice, gasLimit)
}

// MakeMultiTransferTx returns one transfer carrying every state. Each
// distinct sender must sign it.
func MakeMultiTransferTx(token Token, states []State, payer bc.Address, gasPrice, gasLimit uint64) (*tx.Transaction, error) {
	if len(states) == 0 {
		return nil, errors.WithDetail(errors.ErrInvalidParams, "no transfer states")
	}
	structs := make([]abi.Parameter, 0, len(states))
	for i, s := range states {
		if err := checkAmount(s.Amount); err != nil {
			return nil, errors.Wrapf(err, "state %d", i)
		}
		structs = append(structs, abi.Struct(abi.Address(s.From), abi.Address(s.To), abi.BigInt(s.Amount)))
	}
	params := []abi.Parameter{abi.Array(structs...)}
	return txbuilder.MakeNativeTx(token.Contract, MethodTransfer, params, payer, gasPrice, gasLimit)
}

// MakeApproveTx lets spender move up to amount of from's tokens.
func MakeApproveTx(token Token, from, spender bc.Address, amount *big.Int, payer bc.Address, gasPrice, gasLimit uint64) (*tx.Transaction, error) {
	if err := checkAmount(amount); err != nil {
		return nil, err
	}
	params := []abi.Parameter{abi.Struct(abi.Address(from), abi.Address(spender), abi.BigInt(amount))}
	return txbuilder.MakeNativeTx(token.Contract, MethodApprove, params, payerOr(payer, from), gasPrice, gasLimit)
}

// MakeTransferFromTx moves amount from owner to to under an allowance
// granted to sender.
func MakeTransferFromTx(token Token, sender, owner, to bc.Address, amount *big.Int, payer bc.Address, gasPrice, gasLimit uint64) (*tx.Transaction, error) {
	if err := checkAmount(amount); err != nil {
		return nil, err
	}
	params := []abi.Parameter{abi.Struct(abi.Address(sender), abi.Address(owner), abi.Address(to), abi.BigInt(amount))}
	return txbuilder.MakeNativeTx(token.Contract, MethodTransferFrom, params, payerOr(payer, sender), gasPrice, gasLimit)
}

// MakeWithdrawTSGTx claims TSG unbound by from's TST holdings and
// sends it to to.
func MakeWithdrawTSGTx(from, to bc.Address, amount *big.Int, payer bc.Address, gasPrice, gasLimit uint64) (*tx.Transaction, error) {
	return MakeTransferFromTx(TSG, from, TST.Contract, to, amount, payer, gasPrice, gasLimit)
}

// BalanceOfScript returns the code of a pre-executed balance query.
func BalanceOfScript(token Token, addr bc.Address) ([]byte, error) {
	return abi.BuildNativeInvocationScript(token.Contract, MethodBalanceOf, []abi.Parameter{abi.Address(addr)})
}

// AllowanceScript returns the code of a pre-executed allowance
// query.
func AllowanceScript(token Token, owner, spender bc.Address) ([]byte, error) {
	params := []abi.Parameter{abi.Struct(abi.Address(owner), abi.Address(spender))}
	return abi.BuildNativeInvocationScript(token.Contract, MethodAllowance, params)
}

func payerOr(payer, def bc.Address) bc.Address {
	if payer.IsZero() {
		return def
	}
	return payer
}
