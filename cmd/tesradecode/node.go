package main

import (
	"math/big"

	"github.com/urfave/cli/v2"

	"github.com/user00000001/tesrasdk-go/core/asset"
	"github.com/user00000001/tesrasdk-go/core/config"
	"github.com/user00000001/tesrasdk-go/core/rpcclient"
	"github.com/user00000001/tesrasdk-go/core/txbuilder"
	"github.com/user00000001/tesrasdk-go/crypto/keypair"
	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/protocol/bc"
	"github.com/user00000001/tesrasdk-go/protocol/vmutil"
)

type transferResult struct {
	Hash string `json:"hash"`
	Tx   string `json:"tx"`
	Sent bool   `json:"sent"`
}

var transferCommand = &cli.Command{
	Name:  "transfer",
	Usage: "build and sign a native token transfer, and optionally submit it",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "key",
			Usage:    "hex P-256 private key of the sender",
			EnvVars:  []string{"TESRA_KEY"},
			Required: true,
		},
		&cli.StringFlag{
			Name:     "to",
			Usage:    "base58 recipient address",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "amount in the token's smallest unit",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "token",
			Value: asset.TST.Symbol,
		},
		&cli.StringFlag{
			Name:  "payer",
			Usage: "base58 gas payer; the sender when empty",
		},
		&cli.BoolFlag{
			Name:  "send",
			Usage: "submit the signed transaction to the configured node",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		key, err := keypair.PrivateKeyFromHex(c.String("key"), keypair.ECDSA, keypair.P256)
		if err != nil {
			return err
		}
		pub, err := key.Public()
		if err != nil {
			return err
		}
		from := vmutil.AddressFromPubKey(pub)

		token, err := asset.TokenBySymbol(c.String("token"))
		if err != nil {
			return err
		}
		to, err := bc.AddressFromBase58(c.String("to"))
		if err != nil {
			return err
		}
		amount, ok := new(big.Int).SetString(c.String("amount"), 10)
		if !ok {
			return errors.WithDetailf(asset.ErrBadAmount, "%q", c.String("amount"))
		}
		var payer bc.Address
		if s := c.String("payer"); s != "" {
			payer, err = bc.AddressFromBase58(s)
			if err != nil {
				return err
			}
		}

		t, err := asset.MakeTransferTx(token, from, to, amount, payer, cfg.GasPrice, cfg.GasLimit)
		if err != nil {
			return err
		}
		ctx := c.Context
		tpl := txbuilder.NewTemplate(t)
		if err := tpl.Sign(ctx, key); err != nil {
			return err
		}
		if c.Bool("send") {
			t, err = txbuilder.FinalizeTx(ctx, rpcclient.New(cfg), tpl)
			if err != nil {
				return err
			}
		} else {
			t = tpl.Transaction()
		}

		h, err := t.Hash()
		if err != nil {
			return err
		}
		raw, err := t.Serialize()
		if err != nil {
			return err
		}
		return output(c, t, transferResult{Hash: h.String(), Tx: raw, Sent: c.Bool("send")})
	},
}

var balanceCommand = &cli.Command{
	Name:      "balance",
	Usage:     "query the native balances of an address",
	ArgsUsage: "[base58]",
	Action: func(c *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		s, err := input(c)
		if err != nil {
			return err
		}
		addr, err := bc.AddressFromBase58(s)
		if err != nil {
			return err
		}
		b, err := rpcclient.New(cfg).GetBalance(c.Context, addr)
		if err != nil {
			return err
		}
		return output(c, b, b)
	},
}
