package txbuilder

import (
	"context"
	"sync"

	"github.com/user00000001/tesrasdk-go/crypto/keypair"
	"github.com/user00000001/tesrasdk-go/protocol/tx"
)

// Template is a transaction being signed by several parties. Its
// methods serialize, so concurrent signers never interleave their
// updates of the signature list.
type Template struct {
	mu sync.Mutex
	tx *tx.Transaction
}

// NewTemplate takes ownership of t. Callers must not modify t
// directly afterwards.
func NewTemplate(t *tx.Transaction) *Template {
	return &Template{tx: t}
}

func (tpl *Template) Sign(ctx context.Context, key *keypair.PrivateKey, opts ...Option) error {
	tpl.mu.Lock()
	defer tpl.mu.Unlock()
	return Sign(ctx, tpl.tx, key, opts...)
}

func (tpl *Template) AddSign(ctx context.Context, key *keypair.PrivateKey, opts ...Option) error {
	tpl.mu.Lock()
	defer tpl.mu.Unlock()
	return AddSign(ctx, tpl.tx, key, opts...)
}

func (tpl *Template) SignThreshold(ctx context.Context, m int, pubkeys []*keypair.PublicKey, key *keypair.PrivateKey, opts ...Option) error {
	tpl.mu.Lock()
	defer tpl.mu.Unlock()
	return SignThreshold(ctx, tpl.tx, m, pubkeys, key, opts...)
}

// Transaction returns a copy of the transaction with its signature
// list as of now.
func (tpl *Template) Transaction() *tx.Transaction {
	tpl.mu.Lock()
	defer tpl.mu.Unlock()
	cp := *tpl.tx
	cp.Sigs = append([]*tx.Sig(nil), tpl.tx.Sigs...)
	return &cp
}

// Serialize returns the hex form of the transaction.
func (tpl *Template) Serialize() (string, error) {
	tpl.mu.Lock()
	defer tpl.mu.Unlock()
	return tpl.tx.Serialize()
}
