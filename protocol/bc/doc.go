/*
Package bc provides the fundamental value types shared by the
transaction codec and the script tools: 20-byte addresses (account
program hashes and contract hashes) and 32-byte hashes.

Addresses have three text forms. Base58 is the user-facing form: a
version byte 0x17 followed by the 20 hash bytes, base58check encoded.
Hex is the serialized byte order. Reversed hex is the display order
used for contract hashes.
*/
package bc
