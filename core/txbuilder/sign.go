package txbuilder

import (
	"context"

	"github.com/codahale/metrics"

	"github.com/user00000001/tesrasdk-go/crypto/keypair"
	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/protocol/tx"
	"github.com/user00000001/tesrasdk-go/protocol/vmutil"
)

var (
	ErrNotSigner     = errors.Derive(errors.ErrInvalidParams, "key is not one of the signers")
	ErrAlreadySigned = errors.Derive(errors.ErrInvalidParams, "key has already signed")
	ErrQuorum        = errors.Derive(errors.ErrInvalidParams, "signature entry has a different quorum")
	ErrForeignSig    = errors.Derive(errors.ErrInvalidParams, "existing signature does not verify")
	ErrIncomplete    = errors.Derive(errors.ErrInvalidParams, "transaction is not fully signed")
)

// SignFunc produces a signature of msg with key. It may block, for
// example on a hardware device, and must return promptly once ctx is
// done.
type SignFunc func(ctx context.Context, key *keypair.PrivateKey, scheme keypair.SignatureScheme, msg []byte) (*keypair.Signature, error)

// LocalSignFunc signs in-process.
var LocalSignFunc SignFunc = keypair.LocalSigner{}.Sign

// An Option modifies a signing call.
type Option func(*signOptions)

type signOptions struct {
	scheme    keypair.SignatureScheme
	hasScheme bool
	sign      SignFunc
}

// WithScheme overrides the scheme implied by the key's curve.
func WithScheme(s keypair.SignatureScheme) Option {
	return func(o *signOptions) { o.scheme, o.hasScheme = s, true }
}

// WithSignFunc replaces LocalSignFunc.
func WithSignFunc(f SignFunc) Option {
	return func(o *signOptions) { o.sign = f }
}

// WithSigner signs through s.
func WithSigner(s keypair.Signer) Option {
	return WithSignFunc(s.Sign)
}

// signature holds everything a mutation needs, computed before the
// transaction's signature list is touched.
type signature struct {
	pub   *keypair.PublicKey
	bytes []byte
}

func sign(ctx context.Context, t *tx.Transaction, key *keypair.PrivateKey, opts []Option) (*signature, error) {
	o := signOptions{sign: LocalSignFunc}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.hasScheme {
		s, err := key.DefaultScheme()
		if err != nil {
			return nil, err
		}
		o.scheme = s
	}
	pub, err := key.Public()
	if err != nil {
		return nil, err
	}
	digest, err := t.Digest()
	if err != nil {
		return nil, err
	}
	sig, err := o.sign(ctx, key, o.scheme, digest)
	if err != nil {
		metrics.Counter("txbuilder.sign.error").Add()
		return nil, errors.Wrapf(err, "signing with %s", o.scheme)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !keypair.Verify(pub, digest, sig) {
		metrics.Counter("txbuilder.sign.error").Add()
		return nil, errors.WithDetail(keypair.ErrBadSignature, "signer returned a signature that does not verify")
	}
	metrics.Counter("txbuilder.sign").Add()
	return &signature{pub: pub, bytes: sig.Bytes()}, nil
}

// Sign replaces t's signature list with a single signature by key.
func Sign(ctx context.Context, t *tx.Transaction, key *keypair.PrivateKey, opts ...Option) error {
	sig, err := sign(ctx, t, key, opts)
	if err != nil {
		return err
	}
	t.Sigs = []*tx.Sig{singleSig(sig)}
	log.Debugf("replaced signatures with one by %s", sig.pub.Hex())
	return nil
}

// AddSign appends a single-key signature entry by key. It fails with
// tx.ErrTooManySigs when t already has tx.MaxSigs entries.
func AddSign(ctx context.Context, t *tx.Transaction, key *keypair.PrivateKey, opts ...Option) error {
	if err := checkRoom(t); err != nil {
		return err
	}
	sig, err := sign(ctx, t, key, opts)
	if err != nil {
		return err
	}
	if err := checkRoom(t); err != nil {
		return err
	}
	sigs := make([]*tx.Sig, len(t.Sigs), len(t.Sigs)+1)
	copy(sigs, t.Sigs)
	t.Sigs = append(sigs, singleSig(sig))
	log.Debugf("added signature %d by %s", len(t.Sigs), sig.pub.Hex())
	return nil
}

func checkRoom(t *tx.Transaction) error {
	if len(t.Sigs) >= tx.MaxSigs {
		metrics.Counter("txbuilder.sign.limit").Add()
		log.Warnf("signature limit reached (%d entries)", len(t.Sigs))
		return errors.WithDetailf(tx.ErrTooManySigs, "already %d entries", len(t.Sigs))
	}
	return nil
}

func singleSig(sig *signature) *tx.Sig {
	return &tx.Sig{PubKeys: []*keypair.PublicKey{sig.pub}, M: 1, SigData: [][]byte{sig.bytes}}
}

// SignThreshold adds key's signature to the m-of-pubkeys entry of t,
// creating the entry if there is none. Entries are matched by key set
// regardless of order. Within an entry signatures follow the entry's
// key order, canonical for new entries, so a new signature is
// inserted at its signer's rank.
func SignThreshold(ctx context.Context, t *tx.Transaction, m int, pubkeys []*keypair.PublicKey, key *keypair.PrivateKey, opts ...Option) error {
	if _, err := vmutil.MultiSigProgram(m, pubkeys); err != nil {
		return err
	}
	keys := keypair.SortPublicKeys(pubkeys)
	pub, err := key.Public()
	if err != nil {
		return err
	}
	if indexOf(keys, pub) < 0 {
		return errors.WithDetailf(ErrNotSigner, "%s", pub.Hex())
	}

	idx := findEntry(t.Sigs, keys)
	if idx < 0 {
		if err := checkRoom(t); err != nil {
			return err
		}
	} else {
		if t.Sigs[idx].M != m {
			return errors.WithDetailf(ErrQuorum, "entry wants %d, got %d", t.Sigs[idx].M, m)
		}
		// An entry read off the wire keeps its program's key order.
		keys = t.Sigs[idx].PubKeys
	}
	rank := indexOf(keys, pub)

	digest, err := t.Digest()
	if err != nil {
		return err
	}
	var (
		existing [][]byte
		ranks    []int
	)
	if idx >= 0 {
		existing = t.Sigs[idx].SigData
		ranks, err = signerRanks(keys, digest, existing)
		if err != nil {
			return err
		}
		for _, r := range ranks {
			if r == rank {
				return errors.WithDetailf(ErrAlreadySigned, "%s", pub.Hex())
			}
		}
	}

	sig, err := sign(ctx, t, key, opts)
	if err != nil {
		return err
	}

	pos := 0
	for pos < len(ranks) && ranks[pos] < rank {
		pos++
	}
	data := make([][]byte, 0, len(existing)+1)
	data = append(data, existing[:pos]...)
	data = append(data, sig.bytes)
	data = append(data, existing[pos:]...)
	entry := &tx.Sig{PubKeys: keys, M: m, SigData: data}

	sigs := make([]*tx.Sig, len(t.Sigs), len(t.Sigs)+1)
	copy(sigs, t.Sigs)
	if idx >= 0 {
		sigs[idx] = entry
	} else {
		if len(sigs) >= tx.MaxSigs {
			return errors.WithDetailf(tx.ErrTooManySigs, "already %d entries", len(sigs))
		}
		sigs = append(sigs, entry)
	}
	t.Sigs = sigs
	log.Debugf("threshold entry %d-of-%d now has %d signatures", m, len(keys), len(data))
	return nil
}

func indexOf(keys []*keypair.PublicKey, k *keypair.PublicKey) int {
	for i, key := range keys {
		if key.Equal(k) {
			return i
		}
	}
	return -1
}

// findEntry returns the index of the entry over exactly the keys of
// sorted, or -1. A single-key entry matches a 1-of-1 key set.
func findEntry(sigs []*tx.Sig, sorted []*keypair.PublicKey) int {
	for i, s := range sigs {
		if len(s.PubKeys) != len(sorted) {
			continue
		}
		entry := keypair.SortPublicKeys(s.PubKeys)
		same := true
		for j := range entry {
			if !entry[j].Equal(sorted[j]) {
				same = false
				break
			}
		}
		if same {
			return i
		}
	}
	return -1
}

// signerRanks attributes each signature in data to a key of keys.
func signerRanks(keys []*keypair.PublicKey, digest []byte, data [][]byte) ([]int, error) {
	ranks := make([]int, 0, len(data))
	for i, b := range data {
		r, err := signerRank(keys, digest, b)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		ranks = append(ranks, r)
	}
	return ranks, nil
}

func signerRank(keys []*keypair.PublicKey, digest, b []byte) (int, error) {
	sig, err := keypair.ParseSignature(b)
	if err != nil {
		return -1, err
	}
	for i, k := range keys {
		if keypair.Verify(k, digest, sig) {
			return i, nil
		}
	}
	return -1, ErrForeignSig
}

// VerifySignatures checks that every entry of t carries at least M
// valid signatures, each by a distinct key in the entry's key order.
func VerifySignatures(t *tx.Transaction) error {
	if len(t.Sigs) == 0 {
		return errors.WithDetail(ErrIncomplete, "no signatures")
	}
	digest, err := t.Digest()
	if err != nil {
		return err
	}
	for i, s := range t.Sigs {
		keys := s.PubKeys
		m := s.M
		if len(keys) == 1 && m < 1 {
			m = 1
		}
		if len(s.SigData) < m {
			return errors.WithDetailf(ErrIncomplete, "entry %d has %d of %d signatures", i, len(s.SigData), m)
		}
		last := -1
		for j, b := range s.SigData {
			r, err := signerRank(keys, digest, b)
			if err != nil {
				return errors.Wrapf(err, "entry %d signature %d", i, j)
			}
			if r <= last {
				return errors.WithDetailf(ErrForeignSig, "entry %d signature %d out of key order", i, j)
			}
			last = r
		}
	}
	return nil
}
