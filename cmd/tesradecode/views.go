package main

import (
	"encoding/hex"

	"github.com/user00000001/tesrasdk-go/core/abi"
	"github.com/user00000001/tesrasdk-go/core/asset"
	"github.com/user00000001/tesrasdk-go/protocol/bc"
	"github.com/user00000001/tesrasdk-go/protocol/tx"
	"github.com/user00000001/tesrasdk-go/protocol/vm"
)

type txView struct {
	Hash       string          `json:"hash"`
	Type       string          `json:"type"`
	Version    byte            `json:"version"`
	Nonce      uint32          `json:"nonce"`
	GasPrice   uint64          `json:"gas_price"`
	GasLimit   uint64          `json:"gas_limit"`
	Payer      *bc.Address     `json:"payer,omitempty"`
	Code       string          `json:"code,omitempty"`
	Asm        string          `json:"asm,omitempty"`
	Deploy     *deployView     `json:"deploy,omitempty"`
	Invocation *invocationView `json:"invocation,omitempty"`
	Transfer   *transferView   `json:"transfer,omitempty"`
	Sigs       []sigView       `json:"sigs"`
}

type deployView struct {
	VMType      byte   `json:"vm_type"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Author      string `json:"author"`
	Email       string `json:"email"`
	Description string `json:"description"`
}

type invocationView struct {
	Contract bc.Address  `json:"contract"`
	Method   string      `json:"method"`
	Native   bool        `json:"native"`
	Args     []paramView `json:"args"`
}

type transferView struct {
	Token  string      `json:"token"`
	Method string      `json:"method"`
	Sender *bc.Address `json:"sender,omitempty"`
	States []stateView `json:"states"`
}

type stateView struct {
	From   bc.Address `json:"from"`
	To     bc.Address `json:"to"`
	Amount string     `json:"amount"`
}

type sigView struct {
	Address bc.Address `json:"address"`
	M       int        `json:"m"`
	PubKeys []string   `json:"pubkeys"`
	SigData []string   `json:"sigs"`
}

type paramView struct {
	Name  string      `json:"name,omitempty"`
	Type  abi.Type    `json:"type"`
	Value interface{} `json:"value"`
}

type entryView struct {
	Key   paramView `json:"key"`
	Value paramView `json:"value"`
}

func newTxView(t *tx.Transaction) (*txView, error) {
	h, err := t.Hash()
	if err != nil {
		return nil, err
	}
	v := &txView{
		Hash:     h.String(),
		Type:     t.Type.String(),
		Version:  t.Version,
		Nonce:    t.Nonce,
		GasPrice: t.GasPrice,
		GasLimit: t.GasLimit,
		Sigs:     []sigView{},
	}
	if !t.Payer.IsZero() {
		payer := t.Payer
		v.Payer = &payer
	}

	switch p := t.Payload.(type) {
	case *tx.InvokeCode:
		v.Code = hex.EncodeToString(p.Code)
		if t.Type == tx.Invoke {
			v.Asm, _ = vm.Disassemble(p.Code)
			if inv, err := abi.DecodeInvocation(p.Code); err == nil {
				v.Invocation = newInvocationView(inv)
			}
		}
	case *tx.DeployCode:
		v.Code = hex.EncodeToString(p.Code)
		v.Deploy = &deployView{
			VMType:      byte(p.VMType),
			Name:        p.Name,
			Version:     p.Version,
			Author:      p.Author,
			Email:       p.Email,
			Description: p.Description,
		}
	}

	if tr, err := asset.DecodeTransfer(t); err == nil {
		v.Transfer = newTransferView(tr)
	}

	for _, s := range t.Sigs {
		addr, err := s.Address()
		if err != nil {
			return nil, err
		}
		sv := sigView{Address: addr, M: s.M}
		for _, pk := range s.PubKeys {
			sv.PubKeys = append(sv.PubKeys, pk.Hex())
		}
		for _, sig := range s.SigData {
			sv.SigData = append(sv.SigData, hex.EncodeToString(sig))
		}
		v.Sigs = append(v.Sigs, sv)
	}
	return v, nil
}

func newInvocationView(inv *abi.Invocation) *invocationView {
	return &invocationView{
		Contract: inv.Contract,
		Method:   inv.Method,
		Native:   inv.Native,
		Args:     newParamViews(inv.Args),
	}
}

func newTransferView(tr *asset.Transfer) *transferView {
	v := &transferView{Token: tr.Token.Symbol, Method: tr.Method}
	if !tr.Sender.IsZero() {
		sender := tr.Sender
		v.Sender = &sender
	}
	for _, s := range tr.States {
		v.States = append(v.States, stateView{From: s.From, To: s.To, Amount: s.Amount.String()})
	}
	return v
}

func newParamViews(ps []abi.Parameter) []paramView {
	views := make([]paramView, 0, len(ps))
	for _, p := range ps {
		views = append(views, newParamView(p))
	}
	return views
}

// newParamView renders byte strings as hex and integers as decimal
// strings, so values survive JSON without loss.
func newParamView(p abi.Parameter) paramView {
	v := paramView{Name: p.Name, Type: p.Type}
	switch val := p.Value.(type) {
	case []byte:
		v.Value = hex.EncodeToString(val)
	case []abi.Parameter:
		v.Value = newParamViews(val)
	case []abi.MapEntry:
		entries := make([]entryView, 0, len(val))
		for _, e := range val {
			entries = append(entries, entryView{newParamView(e.Key), newParamView(e.Value)})
		}
		v.Value = entries
	case interface{ String() string }:
		v.Value = val.String()
	default:
		v.Value = val
	}
	return v
}
