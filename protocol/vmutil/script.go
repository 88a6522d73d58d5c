package vmutil

import (
	"github.com/user00000001/tesrasdk-go/crypto/keypair"
	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/protocol/bc"
	"github.com/user00000001/tesrasdk-go/protocol/vm"
)

// MaxMultiSigKeys bounds N in an M-of-N verification program.
const MaxMultiSigKeys = 16

var (
	ErrBadValue        = errors.Derive(errors.ErrInvalidParams, "bad value")
	ErrMultisigFormat  = errors.Derive(errors.ErrSerialization, "bad multisig program format")
	ErrSingleSigFormat = errors.Derive(errors.ErrSerialization, "bad single-sig program format")
)

// SingleSigProgram returns the verification program for one key:
// <pubkey> CHECKSIG.
func SingleSigProgram(pk *keypair.PublicKey) []byte {
	prog, _ := NewBuilder().AddData(pk.Bytes()).AddOp(vm.OP_CHECKSIG).Build()
	return prog
}

// ParseSingleSigProgram returns the key of a single-sig program.
func ParseSingleSigProgram(prog []byte) (*keypair.PublicKey, error) {
	pops, err := vm.ParseProgram(prog)
	if err != nil {
		return nil, err
	}
	if len(pops) != 2 || pops[1].Op != vm.OP_CHECKSIG || !isDataPush(pops[0]) {
		return nil, ErrSingleSigFormat
	}
	pk, err := keypair.ParsePublicKey(pops[0].Data)
	if err != nil {
		return nil, errors.Sub(ErrSingleSigFormat, err)
	}
	return pk, nil
}

// MultiSigProgram returns a program requiring nrequired signatures
// from pubkeys. Keys are emitted in canonical order, so the result
// does not depend on the order of pubkeys. The result is:
// <nrequired> <pubkey>... <npubkeys> CHECKMULTISIG
func MultiSigProgram(nrequired int, pubkeys []*keypair.PublicKey) ([]byte, error) {
	err := checkMultiSigParams(int64(nrequired), int64(len(pubkeys)))
	if err != nil {
		return nil, err
	}
	return OrderedMultiSigProgram(nrequired, keypair.SortPublicKeys(pubkeys))
}

// OrderedMultiSigProgram is MultiSigProgram with the keys emitted in
// the order given.
func OrderedMultiSigProgram(nrequired int, pubkeys []*keypair.PublicKey) ([]byte, error) {
	err := checkMultiSigParams(int64(nrequired), int64(len(pubkeys)))
	if err != nil {
		return nil, err
	}
	builder := NewBuilder()
	builder.AddInt64(int64(nrequired))
	for _, pk := range pubkeys {
		builder.AddData(pk.Bytes())
	}
	builder.AddInt64(int64(len(pubkeys))).AddOp(vm.OP_CHECKMULTISIG)
	return builder.Build()
}

// ParseMultiSigProgram returns the quorum and keys of a multisig
// program, keys in program order.
func ParseMultiSigProgram(prog []byte) (int, []*keypair.PublicKey, error) {
	pops, err := vm.ParseProgram(prog)
	if err != nil {
		return 0, nil, err
	}
	if len(pops) < 4 {
		return 0, nil, errors.WithDetail(ErrMultisigFormat, "too few instructions")
	}
	if pops[len(pops)-1].Op != vm.OP_CHECKMULTISIG {
		return 0, nil, errors.WithDetail(ErrMultisigFormat, "no CHECKMULTISIG")
	}
	npubkeys, err := pushedInt(pops[len(pops)-2])
	if err != nil {
		return 0, nil, errors.Wrap(err, "parsing npubkeys")
	}
	if int(npubkeys) != len(pops)-3 {
		return 0, nil, errors.WithDetailf(ErrMultisigFormat, "%d keys declared, %d present", npubkeys, len(pops)-3)
	}
	nrequired, err := pushedInt(pops[0])
	if err != nil {
		return 0, nil, errors.Wrap(err, "parsing nrequired")
	}
	err = checkMultiSigParams(nrequired, npubkeys)
	if err != nil {
		return 0, nil, errors.Sub(ErrMultisigFormat, err)
	}

	pubkeys := make([]*keypair.PublicKey, 0, npubkeys)
	for _, pop := range pops[1 : len(pops)-2] {
		if !isDataPush(pop) {
			return 0, nil, errors.WithDetailf(ErrMultisigFormat, "%s in key list", pop.Op)
		}
		pk, err := keypair.ParsePublicKey(pop.Data)
		if err != nil {
			return 0, nil, errors.Sub(ErrMultisigFormat, err)
		}
		pubkeys = append(pubkeys, pk)
	}
	return int(nrequired), pubkeys, nil
}

// InvocationProgram pushes each signature in order.
func InvocationProgram(sigs [][]byte) []byte {
	builder := NewBuilder()
	for _, sig := range sigs {
		builder.AddData(sig)
	}
	prog, _ := builder.Build()
	return prog
}

// ParseInvocationProgram returns the signatures pushed by prog.
func ParseInvocationProgram(prog []byte) ([][]byte, error) {
	pops, err := vm.ParseProgram(prog)
	if err != nil {
		return nil, err
	}
	sigs := make([][]byte, 0, len(pops))
	for _, pop := range pops {
		if !isDataPush(pop) {
			return nil, errors.WithDetailf(vm.ErrBadValue, "%s in invocation program", pop.Op)
		}
		sigs = append(sigs, pop.Data)
	}
	return sigs, nil
}

// AddressFromPubKey is the address controlled by a single key.
func AddressFromPubKey(pk *keypair.PublicKey) bc.Address {
	return bc.AddressFromVMCode(SingleSigProgram(pk))
}

// AddressFromMultiPubKeys is the address controlled by nrequired of
// pubkeys.
func AddressFromMultiPubKeys(nrequired int, pubkeys []*keypair.PublicKey) (bc.Address, error) {
	prog, err := MultiSigProgram(nrequired, pubkeys)
	if err != nil {
		return bc.Address{}, err
	}
	return bc.AddressFromVMCode(prog), nil
}

func isDataPush(inst vm.Instruction) bool {
	return inst.Op >= vm.OP_DATA_1 && inst.Op <= vm.OP_PUSHDATA4
}

func pushedInt(inst vm.Instruction) (int64, error) {
	if !inst.Op.IsPush() {
		return 0, errors.WithDetailf(ErrMultisigFormat, "%s is not a push", inst.Op)
	}
	n := vm.DecodeInt(inst.Data)
	if !n.IsInt64() {
		return 0, errors.WithDetail(ErrMultisigFormat, "integer out of range")
	}
	return n.Int64(), nil
}

func checkMultiSigParams(nrequired, npubkeys int64) error {
	if nrequired < 1 {
		return errors.WithDetail(ErrBadValue, "quorum must be at least 1")
	}
	if npubkeys > MaxMultiSigKeys {
		return errors.WithDetailf(ErrBadValue, "%d keys, at most %d allowed", npubkeys, MaxMultiSigKeys)
	}
	if nrequired > npubkeys {
		return errors.WithDetail(ErrBadValue, "quorum too big")
	}
	return nil
}
