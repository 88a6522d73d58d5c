package txbuilder

import (
	"context"

	"github.com/user00000001/tesrasdk-go/protocol/tx"
)

// Submitter submits a transaction to a node so that it may be
// confirmed in a block.
type Submitter interface {
	Submit(ctx context.Context, t *tx.Transaction) error
}
