package tx

import (
	"bytes"
	"io"

	"github.com/user00000001/tesrasdk-go/crypto/keypair"
	"github.com/user00000001/tesrasdk-go/encoding/blockchain"
	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/protocol/bc"
	"github.com/user00000001/tesrasdk-go/protocol/vm"
	"github.com/user00000001/tesrasdk-go/protocol/vmutil"
)

const maxProgram = 1 << 16

var ErrBadSig = errors.Derive(errors.ErrSerialization, "malformed signature entry")

// Sig is one signature entry: M of PubKeys must sign, and SigData
// holds the signatures produced so far. A single-key entry has one
// key and M == 1. For multisig entries PubKeys are in program order,
// which is canonical for entries built here but may differ for
// entries read off the wire, and SigData follows that order.
type Sig struct {
	PubKeys []*keypair.PublicKey
	M       int
	SigData [][]byte
}

// VerificationProgram returns the program the signatures satisfy.
func (s *Sig) VerificationProgram() ([]byte, error) {
	switch {
	case len(s.PubKeys) == 0:
		return nil, errors.WithDetail(errors.ErrInvalidParams, "signature entry without keys")
	case len(s.PubKeys) == 1 && s.M <= 1:
		return vmutil.SingleSigProgram(s.PubKeys[0]), nil
	}
	return vmutil.OrderedMultiSigProgram(s.M, s.PubKeys)
}

// Address is the address whose authority this entry proves.
func (s *Sig) Address() (bc.Address, error) {
	prog, err := s.VerificationProgram()
	if err != nil {
		return bc.Address{}, err
	}
	return bc.AddressFromVMCode(prog), nil
}

// assumes w has sticky errors
func (s *Sig) writeTo(w io.Writer) error {
	verif, err := s.VerificationProgram()
	if err != nil {
		return err
	}
	blockchain.WriteVarBytes(w, vmutil.InvocationProgram(s.SigData))
	blockchain.WriteVarBytes(w, verif)
	return nil
}

func (s *Sig) readFrom(r io.Reader) error {
	invoc, err := blockchain.ReadVarBytes(r, maxProgram, "invocation program")
	if err != nil {
		return err
	}
	verif, err := blockchain.ReadVarBytes(r, maxProgram, "verification program")
	if err != nil {
		return err
	}
	sigs, err := vmutil.ParseInvocationProgram(invoc)
	if err != nil {
		return errors.Sub(ErrBadSig, err)
	}
	if len(verif) == 0 {
		return errors.WithDetail(ErrBadSig, "empty verification program")
	}
	switch vm.Op(verif[len(verif)-1]) {
	case vm.OP_CHECKSIG:
		pk, err := vmutil.ParseSingleSigProgram(verif)
		if err != nil {
			return err
		}
		s.PubKeys, s.M = []*keypair.PublicKey{pk}, 1
	case vm.OP_CHECKMULTISIG:
		m, pks, err := vmutil.ParseMultiSigProgram(verif)
		if err != nil {
			return err
		}
		s.PubKeys, s.M = pks, m
	default:
		return errors.WithDetailf(ErrBadSig, "verification program ends with %s", vm.Op(verif[len(verif)-1]))
	}
	s.SigData = sigs

	// Only minimal pushes are accepted, so writeTo emits what was read.
	if again, err := s.VerificationProgram(); err != nil || !bytes.Equal(again, verif) {
		return errors.WithDetail(ErrBadSig, "verification program is not minimally encoded")
	}
	if again := vmutil.InvocationProgram(sigs); !bytes.Equal(again, invoc) {
		return errors.WithDetail(ErrBadSig, "invocation program is not minimally encoded")
	}
	return nil
}
