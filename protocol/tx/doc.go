/*
Package tx holds the transaction envelope and its wire codec.

A serialized transaction is

	version   byte
	type      byte      (Deploy 0xd0, Invoke 0xd1, InvokeWasm 0xd2)
	nonce     uint32    little-endian
	gasPrice  uint64    little-endian
	gasLimit  uint64    little-endian
	payer     [20]byte
	payload             (depends on type)
	attributes          varint count, then usage byte + var-bytes each
	sigs                varint count, then invocation + verification
	                    programs as var-bytes each

Everything before the signature list is covered by the signing
digest, the double SHA-256 of those bytes.
*/
package tx
