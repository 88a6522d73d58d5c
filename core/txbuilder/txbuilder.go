// Package txbuilder assembles contract-call transactions and adds
// signatures to them.
package txbuilder

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/user00000001/tesrasdk-go/core/abi"
	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/protocol/bc"
	"github.com/user00000001/tesrasdk-go/protocol/tx"
)

// MakeInvokeTx returns an unsigned transaction calling method on a
// NEO-style contract.
func MakeInvokeTx(contract bc.Address, method string, params []abi.Parameter, payer bc.Address, gasPrice, gasLimit uint64, opts ...abi.Option) (*tx.Transaction, error) {
	code, err := abi.BuildInvocationScript(contract, method, params, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "building call of %s", method)
	}
	return newTx(tx.Invoke, &tx.InvokeCode{Code: code}, payer, gasPrice, gasLimit)
}

// MakeNativeTx returns an unsigned transaction calling method on a
// native contract.
func MakeNativeTx(contract bc.Address, method string, params []abi.Parameter, payer bc.Address, gasPrice, gasLimit uint64, opts ...abi.Option) (*tx.Transaction, error) {
	code, err := abi.BuildNativeInvocationScript(contract, method, params, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "building native call of %s", method)
	}
	return newTx(tx.Invoke, &tx.InvokeCode{Code: code}, payer, gasPrice, gasLimit)
}

// MakeWasmTx returns an unsigned transaction calling method on a wasm
// contract.
func MakeWasmTx(contract bc.Address, method string, params []abi.Parameter, payer bc.Address, gasPrice, gasLimit uint64) (*tx.Transaction, error) {
	code, err := abi.BuildWasmInvocationScript(contract, method, params)
	if err != nil {
		return nil, errors.Wrapf(err, "building wasm call of %s", method)
	}
	return newTx(tx.InvokeWasm, &tx.InvokeCode{Code: code}, payer, gasPrice, gasLimit)
}

// DeployParams describes a contract deployment.
type DeployParams struct {
	Code        []byte
	VMType      tx.VMType
	Name        string
	Version     string
	Author      string
	Email       string
	Description string

	Payer    bc.Address
	GasPrice uint64
	GasLimit uint64
}

// MakeDeployTx returns an unsigned deployment transaction. The
// contract's address is bc.AddressFromVMCode(p.Code).
func MakeDeployTx(p DeployParams) (*tx.Transaction, error) {
	if len(p.Code) == 0 {
		return nil, errors.WithDetail(errors.ErrInvalidParams, "empty contract code")
	}
	switch p.VMType {
	case tx.NeoVM, tx.WasmVM:
	default:
		return nil, errors.WithDetailf(errors.ErrInvalidParams, "vm type %d", p.VMType)
	}
	payload := &tx.DeployCode{
		Code:        p.Code,
		VMType:      p.VMType,
		Name:        p.Name,
		Version:     p.Version,
		Author:      p.Author,
		Email:       p.Email,
		Description: p.Description,
	}
	return newTx(tx.Deploy, payload, p.Payer, p.GasPrice, p.GasLimit)
}

func newTx(typ tx.Type, payload tx.Payload, payer bc.Address, gasPrice, gasLimit uint64) (*tx.Transaction, error) {
	if gasLimit == 0 {
		return nil, errors.WithDetail(tx.ErrBadGas, "zero gas limit")
	}
	nonce, err := newNonce()
	if err != nil {
		return nil, err
	}
	return &tx.Transaction{
		Version:  tx.CurrentVersion,
		Type:     typ,
		Nonce:    nonce,
		GasPrice: gasPrice,
		GasLimit: gasLimit,
		Payer:    payer,
		Payload:  payload,
	}, nil
}

func newNonce() (uint32, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, errors.Wrap(err, "reading nonce")
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}
