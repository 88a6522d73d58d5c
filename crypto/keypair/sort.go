package keypair

import (
	"bytes"
	"sort"
)

// ComparePublicKeys orders keys by type, then curve, then X and Y
// (ECDSA and SM2) or raw bytes (Ed25519). Multi-signature programs
// list their keys in this order.
func ComparePublicKeys(a, b *PublicKey) int {
	if a.Type != b.Type {
		return cmpByte(byte(a.Type), byte(b.Type))
	}
	if a.Type == EDDSA {
		return bytes.Compare(a.Ed, b.Ed)
	}
	if a.Curve != b.Curve {
		return cmpByte(byte(a.Curve), byte(b.Curve))
	}
	if c := a.X.Cmp(b.X); c != 0 {
		return c
	}
	return a.Y.Cmp(b.Y)
}

func cmpByte(a, b byte) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// SortPublicKeys returns a sorted copy of keys.
func SortPublicKeys(keys []*PublicKey) []*PublicKey {
	sorted := append([]*PublicKey(nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ComparePublicKeys(sorted[i], sorted[j]) < 0
	})
	return sorted
}
