package testutil

import (
	"encoding/hex"
	"strings"
)

// Fixture keys. Key1 signs the golden transfer below; the others are
// fixed so multisig tests produce stable programs.
const (
	Key1Priv = "49855b16636e70f100cc5f4f42bc20a6535d7414fb8845e7310f8dd065a97221"
	Key1Pub  = "02df6f28e327352a44720f2b384e55034c1a7f54ba31785aa3a338f613a5b7cc26"
	Key1Addr = "AXK2KtCfcJnSMyRzSwTuwTKgNrtx5aXfFX"

	Key2Priv = "70789d4ac31576c61c5d12e38a66de605b18faf2c8d60a2c1952a6286b67318f"
	Key3Priv = "3d2e5ef6f5a94e0d2c2d6df5a0c4a8ad2b8c0b2f3e6e3e1d9e4f5a6b7c8d9e0f"
)

// GoldenTransferTx is a signed invoke transaction transferring 1000000000
// units of the TST asset from Key1Addr to AecaeSEBkt5GcBCxwz1F41TvdjX3dnKBkJ.
var GoldenTransferTx = strings.Join([]string{
	"00d1", "6009495d", "f401000000000000", "204e000000000000",
	"aa6e06c79f864152ab7f3139074aad822ffea855",
	"5e", "0400ca9a3b14fa88f5244be19659bbd24477caeeacac7cbf781b14aa6e06c79f864152ab7f3139074aad822ffea855036f6e7454c1137472616e736665724e6174697665417373657467e9f31031588538c9404149f5d411cfff408394cd",
	"00",
	"01", "41", "40", "43443452de4b5374af440118b0a0c9f25fc31324ea23e9c5754fa335cfac776a795893d3accb6386a8d54ef616b2c9ead411704e3328a3e124584be8b174e5de",
	"23", "21", "02df6f28e327352a44720f2b384e55034c1a7f54ba31785aa3a338f613a5b7cc26", "ac",
}, "")

// MustDecodeHex decodes s or panics.
func MustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
