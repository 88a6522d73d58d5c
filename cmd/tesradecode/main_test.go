package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/user00000001/tesrasdk-go/core/abi"
	"github.com/user00000001/tesrasdk-go/core/asset"
	"github.com/user00000001/tesrasdk-go/core/txbuilder"
	"github.com/user00000001/tesrasdk-go/protocol/bc"
	"github.com/user00000001/tesrasdk-go/protocol/tx"
	"github.com/user00000001/tesrasdk-go/testutil"
)

// run executes the tool with args and stdin, returning stdout and
// stderr.
func run(t *testing.T, stdin string, args ...string) (string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.Reader = strings.NewReader(stdin)
	err := app.Run(append([]string{"tesradecode"}, args...))
	if err != nil {
		t.Fatalf("tesradecode %s: %v\nstderr: %s", strings.Join(args, " "), err, stderr.String())
	}
	return stdout.String(), stderr.String()
}

func decodeJSON(t *testing.T, s string, v interface{}) {
	t.Helper()
	if err := json.Unmarshal([]byte(s), v); err != nil {
		t.Fatalf("output %q: %v", s, err)
	}
}

func TestTx(t *testing.T) {
	out, _ := run(t, testutil.GoldenTransferTx+"\n", "tx")

	var got struct {
		Type       string
		Nonce      uint32
		GasPrice   uint64 `json:"gas_price"`
		Payer      string
		Invocation struct {
			Method string
			Native bool
		}
		Transfer *json.RawMessage
		Sigs     []struct {
			Address string
			M       int
			PubKeys []string
		}
	}
	decodeJSON(t, out, &got)
	testutil.ExpectEqual(t, got.Type, "Invoke", "type")
	testutil.ExpectEqual(t, got.Nonce, uint32(0x5d490960), "nonce")
	testutil.ExpectEqual(t, got.GasPrice, uint64(500), "gas price")
	testutil.ExpectEqual(t, got.Payer, testutil.Key1Addr, "payer")
	testutil.ExpectEqual(t, got.Invocation.Method, "transferNativeAsset", "method")
	testutil.ExpectEqual(t, got.Invocation.Native, false, "native")
	if got.Transfer != nil {
		t.Errorf("app-call transfer decoded as native transfer: %s", *got.Transfer)
	}
	if len(got.Sigs) != 1 {
		t.Fatalf("got %d sigs, want 1", len(got.Sigs))
	}
	testutil.ExpectEqual(t, got.Sigs[0].Address, testutil.Key1Addr, "signer address")
	testutil.ExpectEqual(t, got.Sigs[0].PubKeys, []string{testutil.Key1Pub}, "signer key")
}

func TestTxDump(t *testing.T) {
	out, _ := run(t, "", "--dump", "tx", testutil.GoldenTransferTx)
	if !strings.Contains(out, "tx.Transaction") {
		t.Errorf("dump output lacks the transaction type:\n%s", out)
	}
}

func TestAddress(t *testing.T) {
	out, _ := run(t, "", "address", testutil.Key1Addr)
	var v addressView
	decodeJSON(t, out, &v)

	out, _ = run(t, "", "address", v.Hex)
	var back addressView
	decodeJSON(t, out, &back)
	testutil.ExpectEqual(t, back, v, "hex round trip")

	out, _ = run(t, "", "address", "--reversed", v.ReversedHex)
	decodeJSON(t, out, &back)
	testutil.ExpectEqual(t, back.Base58, testutil.Key1Addr, "reversed hex round trip")
}

func TestArgs(t *testing.T) {
	addr, err := bc.AddressFromBase58(testutil.Key1Addr)
	if err != nil {
		testutil.FatalErr(t, err)
	}
	want, err := asset.BalanceOfScript(asset.TST, addr)
	if err != nil {
		testutil.FatalErr(t, err)
	}

	out, _ := run(t, fmt.Sprintf(`["Address:%s"]`, testutil.Key1Addr),
		"args", "--contract", asset.TST.Contract.ReversedHex(), "--method", "balanceOf")
	var v argsView
	decodeJSON(t, out, &v)
	testutil.ExpectEqual(t, v.Script, hex.EncodeToString(want), "script")
	if !strings.Contains(v.Asm, "'balanceOf'") {
		t.Errorf("asm %q lacks the method name", v.Asm)
	}
}

func TestScriptAndItem(t *testing.T) {
	script, err := abi.BuildNativeInvocationScript(asset.TSG.Contract, "name", nil)
	if err != nil {
		testutil.FatalErr(t, err)
	}
	out, _ := run(t, "", "script", hex.EncodeToString(script))
	var sv struct {
		Asm        string
		Invocation struct{ Method string }
	}
	decodeJSON(t, out, &sv)
	testutil.ExpectEqual(t, sv.Invocation.Method, "name", "method")

	item, err := abi.Encode(abi.Struct(abi.Int(7), abi.Bytes([]byte{0xca, 0xfe})))
	if err != nil {
		testutil.FatalErr(t, err)
	}
	out, _ = run(t, hex.EncodeToString(item), "item")
	var pv struct {
		Type  string
		Value []struct{ Type, Value string }
	}
	decodeJSON(t, out, &pv)
	testutil.ExpectEqual(t, pv.Type, "Struct", "item type")
	testutil.ExpectEqual(t, len(pv.Value), 2, "field count")
	testutil.ExpectEqual(t, pv.Value[0].Value, "7", "integer field")
	testutil.ExpectEqual(t, pv.Value[1].Value, "cafe", "bytes field")
}

func TestTransfer(t *testing.T) {
	var posted string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Data string }
		json.NewDecoder(r.Body).Decode(&req)
		posted = req.Data
		io.WriteString(w, `{"Action":"sendrawtransaction","Desc":"SUCCESS","Error":0,"Result":"","Version":"1.0.0"}`)
	}))
	defer srv.Close()
	t.Setenv("TESRA_NETWORK", "local")
	t.Setenv("TESRA_REST_URL", srv.URL)

	for _, send := range []bool{false, true} {
		args := []string{"--stats", "transfer", "--key", testutil.Key1Priv, "--to", testutil.Key1Addr, "--amount", "100", "--token", "tsg"}
		if send {
			args = append(args, "--send")
		}
		out, stderr := run(t, "", args...)
		var res transferResult
		decodeJSON(t, out, &res)
		testutil.ExpectEqual(t, res.Sent, send, "sent")

		got, err := tx.Deserialize(res.Tx)
		if err != nil {
			testutil.FatalErr(t, err)
		}
		if err := txbuilder.VerifySignatures(got); err != nil {
			testutil.FatalErr(t, err)
		}
		tr, err := asset.DecodeTransfer(got)
		if err != nil {
			testutil.FatalErr(t, err)
		}
		testutil.ExpectEqual(t, tr.Token, asset.TSG, "token")
		testutil.ExpectEqual(t, tr.States[0].Amount.Int64(), int64(100), "amount")
		testutil.ExpectEqual(t, got.GasLimit, uint64(20000), "gas limit")
		if !strings.Contains(stderr, "txbuilder.sign") {
			t.Errorf("stats output lacks the sign counter:\n%s", stderr)
		}
		if send {
			testutil.ExpectEqual(t, posted, res.Tx, "posted transaction")
		}
	}
}
