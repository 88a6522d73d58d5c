package asset

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user00000001/tesrasdk-go/core/abi"
	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/protocol/bc"
	"github.com/user00000001/tesrasdk-go/protocol/tx"
	"github.com/user00000001/tesrasdk-go/testutil"
)

var (
	alice = bc.Address{0xa1}
	bob   = bc.Address{0xb0}
	carol = bc.Address{0xc0}
)

func code(t *tx.Transaction) string {
	return hex.EncodeToString(t.Payload.(*tx.InvokeCode).Code)
}

func TestMakeTransferTx(t *testing.T) {
	got, err := MakeTransferTx(TST, alice, bob, big.NewInt(100), bc.Address{}, 500, 20000)
	if err != nil {
		testutil.FatalErr(t, err)
	}
	testutil.ExpectEqual(t, got.Payer, alice, "payer defaults to sender")
	want := "00c66b" +
		"14" + hex.EncodeToString(alice.Bytes()) + "6a7cc8" +
		"14" + hex.EncodeToString(bob.Bytes()) + "6a7cc8" +
		"086400000000000000" + "6a7cc8" + // ledger-padded 100
		"6c" + "51c1" +
		"087472616e73666572" + // "transfer"
		"140000000000000000000000000000000000000001" +
		"00" +
		"681354657372612e4e61746976652e496e766f6b65"
	testutil.ExpectEqual(t, code(got), want, "transfer code")

	got, err = MakeTransferTx(TSG, alice, bob, big.NewInt(7), carol, 500, 20000)
	if err != nil {
		testutil.FatalErr(t, err)
	}
	testutil.ExpectEqual(t, got.Payer, carol, "explicit payer")
}

func TestBadAmount(t *testing.T) {
	for _, amount := range []*big.Int{nil, big.NewInt(0), big.NewInt(-5)} {
		testutil.ExpectError(t, ErrBadAmount, "transfer "+amount.String(), func() error {
			_, err := MakeTransferTx(TST, alice, bob, amount, bc.Address{}, 0, 20000)
			return err
		})
		testutil.ExpectError(t, ErrBadAmount, "approve "+amount.String(), func() error {
			_, err := MakeApproveTx(TST, alice, bob, amount, bc.Address{}, 0, 20000)
			return err
		})
		testutil.ExpectError(t, ErrBadAmount, "withdraw "+amount.String(), func() error {
			_, err := MakeWithdrawTSGTx(alice, bob, amount, bc.Address{}, 0, 20000)
			return err
		})
	}
	_, err := MakeMultiTransferTx(TST, nil, alice, 0, 20000)
	require.True(t, errors.Is(err, errors.ErrInvalidParams))
}

func TestDecodeTransfer(t *testing.T) {
	states := []State{
		{From: alice, To: carol, Amount: big.NewInt(5)},
		{From: bob, To: carol, Amount: big.NewInt(1000000000)},
	}
	multi, err := MakeMultiTransferTx(TSG, states, carol, 500, 20000)
	require.NoError(t, err)

	got, err := DecodeTransfer(multi)
	require.NoError(t, err)
	require.Equal(t, TSG, got.Token)
	require.Equal(t, MethodTransfer, got.Method)
	require.Len(t, got.States, 2)
	for i := range states {
		require.Equal(t, states[i].From, got.States[i].From)
		require.Equal(t, states[i].To, got.States[i].To)
		require.Equal(t, 0, states[i].Amount.Cmp(got.States[i].Amount), "amount %d", i)
	}

	// Round trip through the wire form.
	raw, err := multi.Serialize()
	require.NoError(t, err)
	back, err := tx.Deserialize(raw)
	require.NoError(t, err)
	got, err = DecodeTransfer(back)
	require.NoError(t, err)
	require.Len(t, got.States, 2)
}

func TestDecodeWithdraw(t *testing.T) {
	w, err := MakeWithdrawTSGTx(alice, bob, big.NewInt(42), bc.Address{}, 500, 20000)
	require.NoError(t, err)
	require.Equal(t, alice, w.Payer)

	got, err := DecodeTransfer(w)
	require.NoError(t, err)
	require.Equal(t, TSG, got.Token)
	require.Equal(t, MethodTransferFrom, got.Method)
	require.Equal(t, alice, got.Sender)
	require.Len(t, got.States, 1)
	require.Equal(t, TST.Contract, got.States[0].From)
	require.Equal(t, bob, got.States[0].To)
	require.Equal(t, int64(42), got.States[0].Amount.Int64())
}

func TestDecodeNotTransfer(t *testing.T) {
	approve, err := MakeApproveTx(TST, alice, bob, big.NewInt(1), bc.Address{}, 0, 20000)
	require.NoError(t, err)

	golden, err := tx.Deserialize(testutil.GoldenTransferTx)
	require.NoError(t, err)

	other, err := MakeTransferTx(TST, alice, bob, big.NewInt(1), bc.Address{}, 0, 20000)
	require.NoError(t, err)
	script, err := abi.BuildNativeInvocationScript(bc.GovernanceContract, MethodTransfer,
		[]abi.Parameter{abi.Array(abi.Struct(abi.Address(alice), abi.Address(bob), abi.Int(1)))})
	require.NoError(t, err)
	other.Payload = &tx.InvokeCode{Code: script}

	deploy := &tx.Transaction{Type: tx.Deploy, Payload: &tx.DeployCode{Code: []byte{1}}}

	cases := []struct {
		name string
		tx   *tx.Transaction
	}{
		{"approve", approve},
		{"neo-style call", golden},
		{"other native contract", other},
		{"deploy", deploy},
	}
	for _, c := range cases {
		_, err := DecodeTransfer(c.tx)
		if errors.Root(err) != ErrNotTransfer {
			t.Errorf("%s: err = %v, want ErrNotTransfer", c.name, err)
		}
		if !errors.Is(err, errors.ErrNotTransfer) {
			t.Errorf("%s: err kind = %v", c.name, err)
		}
	}
}

func TestQueryScripts(t *testing.T) {
	script, err := BalanceOfScript(TST, alice)
	require.NoError(t, err)
	want := "14" + hex.EncodeToString(alice.Bytes()) +
		"0962616c616e63654f66" + // "balanceOf"
		"140000000000000000000000000000000000000001" +
		"00" +
		"681354657372612e4e61746976652e496e766f6b65"
	require.Equal(t, want, hex.EncodeToString(script))

	script, err = AllowanceScript(TSG, alice, bob)
	require.NoError(t, err)
	inv, err := abi.DecodeInvocation(script)
	require.NoError(t, err)
	require.Equal(t, MethodAllowance, inv.Method)
	require.Equal(t, TSG.Contract, inv.Contract)
	f, err := inv.Args[0].AsArray()
	require.NoError(t, err)
	require.Len(t, f, 2)
}

func TestTokenBySymbol(t *testing.T) {
	cases := []struct {
		in   string
		want Token
	}{
		{"TST", TST},
		{"tsg", TSG},
	}
	for _, c := range cases {
		got, err := TokenBySymbol(c.in)
		require.NoError(t, err)
		require.Equal(t, c.want, got)
	}
	_, err := TokenBySymbol("ont")
	require.Equal(t, ErrUnknownToken, errors.Root(err))
}
