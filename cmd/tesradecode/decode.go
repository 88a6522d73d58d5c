package main

import (
	"encoding/hex"

	"github.com/urfave/cli/v2"

	"github.com/user00000001/tesrasdk-go/core/abi"
	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/protocol/bc"
	"github.com/user00000001/tesrasdk-go/protocol/tx"
	"github.com/user00000001/tesrasdk-go/protocol/vm"
)

var txCommand = &cli.Command{
	Name:      "tx",
	Usage:     "decode a hex-encoded transaction",
	ArgsUsage: "[hex]",
	Action: func(c *cli.Context) error {
		s, err := input(c)
		if err != nil {
			return err
		}
		t, err := tx.Deserialize(s)
		if err != nil {
			return errors.Wrap(err, "decoding transaction")
		}
		v, err := newTxView(t)
		if err != nil {
			return err
		}
		return output(c, t, v)
	},
}

type scriptView struct {
	Asm        string          `json:"asm"`
	Invocation *invocationView `json:"invocation,omitempty"`
}

var scriptCommand = &cli.Command{
	Name:      "script",
	Usage:     "disassemble a hex-encoded VM script",
	ArgsUsage: "[hex]",
	Action: func(c *cli.Context) error {
		b, err := hexInput(c)
		if err != nil {
			return err
		}
		asm, err := vm.Disassemble(b)
		if err != nil {
			return errors.Wrap(err, "disassembling")
		}
		v := scriptView{Asm: asm}
		inv, err := abi.DecodeInvocation(b)
		if err == nil {
			v.Invocation = newInvocationView(inv)
		}
		return output(c, inv, v)
	},
}

var itemCommand = &cli.Command{
	Name:      "item",
	Usage:     "decode a hex-encoded serialized stack item",
	ArgsUsage: "[hex]",
	Action: func(c *cli.Context) error {
		b, err := hexInput(c)
		if err != nil {
			return err
		}
		p, err := abi.Decode(b)
		if err != nil {
			return errors.Wrap(err, "decoding item")
		}
		return output(c, p, newParamView(p))
	},
}

type addressView struct {
	Base58      string `json:"base58"`
	Hex         string `json:"hex"`
	ReversedHex string `json:"reversed_hex"`
}

var addressCommand = &cli.Command{
	Name:      "address",
	Usage:     "convert an address between base58 and hex",
	ArgsUsage: "[base58 | hex]",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "reversed",
			Usage: "read hex input in display (byte-reversed) order, as contract hashes are shown",
		},
	},
	Action: func(c *cli.Context) error {
		s, err := input(c)
		if err != nil {
			return err
		}
		a, err := parseAddress(s, c.Bool("reversed"))
		if err != nil {
			return err
		}
		return output(c, a, addressView{
			Base58:      a.Base58(),
			Hex:         a.Hex(),
			ReversedHex: a.ReversedHex(),
		})
	},
}

type argsView struct {
	Script string `json:"script"`
	Asm    string `json:"asm,omitempty"`
}

var argsCommand = &cli.Command{
	Name:      "args",
	Usage:     "build an invocation script from typed JSON arguments",
	ArgsUsage: `['["String:hello", "Long:1"]']`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "contract",
			Usage:    "contract address, base58 or reversed hex",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "method",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "vm",
			Value: "native",
			Usage: "invocation form: native, neo or wasm",
		},
		&cli.BoolFlag{
			Name:  "ledger",
			Value: true,
			Usage: "pad integer pushes the way hardware wallets expect",
		},
	},
	Action: func(c *cli.Context) error {
		s, err := input(c)
		if err != nil {
			return err
		}
		params, err := abi.ParseTypedArgs([]byte(s))
		if err != nil {
			return err
		}
		contract, err := parseAddress(c.String("contract"), true)
		if err != nil {
			return err
		}

		var script []byte
		opt := abi.WithLedgerCompatible(c.Bool("ledger"))
		switch c.String("vm") {
		case "native":
			script, err = abi.BuildNativeInvocationScript(contract, c.String("method"), params, opt)
		case "neo":
			script, err = abi.BuildInvocationScript(contract, c.String("method"), params, opt)
		case "wasm":
			script, err = abi.BuildWasmInvocationScript(contract, c.String("method"), params)
		default:
			return errors.WithDetailf(errors.ErrInvalidParams, "unknown vm %q", c.String("vm"))
		}
		if err != nil {
			return err
		}
		v := argsView{Script: hex.EncodeToString(script)}
		if c.String("vm") != "wasm" {
			v.Asm, _ = vm.Disassemble(script)
		}
		return output(c, params, v)
	},
}

func hexInput(c *cli.Context) ([]byte, error) {
	s, err := input(c)
	if err != nil {
		return nil, err
	}
	b, err := hex.DecodeString(s)
	return b, errors.Sub(errors.ErrInvalidParams, err)
}

// parseAddress accepts base58, or 40 hex digits in serialized or
// display order.
func parseAddress(s string, reversed bool) (bc.Address, error) {
	if len(s) != 2*len(bc.Address{}) {
		return bc.AddressFromBase58(s)
	}
	if reversed {
		return bc.AddressFromReversedHex(s)
	}
	return bc.AddressFromHex(s)
}
