package txbuilder

import (
	"context"

	"github.com/codahale/metrics"

	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/protocol/tx"
)

// FinalizeTx checks that every signature entry of the template's
// transaction is satisfied and submits it.
func FinalizeTx(ctx context.Context, s Submitter, tpl *Template) (*tx.Transaction, error) {
	t := tpl.Transaction()
	if err := VerifySignatures(t); err != nil {
		return nil, err
	}
	if err := s.Submit(ctx, t); err != nil {
		metrics.Counter("txbuilder.submit.error").Add()
		h, herr := t.Hash()
		if herr != nil {
			return nil, err
		}
		log.Errorf("submitting %s: %v", h, err)
		return nil, errors.Wrapf(err, "tx=%s", h)
	}
	return t, nil
}
