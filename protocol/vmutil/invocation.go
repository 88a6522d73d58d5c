package vmutil

import (
	"math/big"

	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/protocol/bc"
	"github.com/user00000001/tesrasdk-go/protocol/vm"
)

// ErrNotInvocation is returned for programs that do anything other
// than build arguments and call a contract.
var ErrNotInvocation = errors.Derive(errors.ErrUnsupportedType, "not an invocation program")

// Invocation is a decoded contract call.
type Invocation struct {
	Contract bc.Address
	Method   string
	// Native calls go through the native syscall and pass their
	// arguments as separate stack items; NEO-style calls pass one
	// packed array.
	Native bool
	Args   []vm.Item
}

// DecodeInvocation runs the argument-building part of prog over a
// symbolic stack and returns the call it ends in. Only push, PACK,
// NEWSTRUCT, NEWMAP, SETITEM, APPEND, SWAP and the altstack ops are
// understood. The program must end with the native SYSCALL envelope
// or an APPCALL.
func DecodeInvocation(prog []byte) (*Invocation, error) {
	insts, err := vm.ParseProgram(prog)
	if err != nil {
		return nil, err
	}
	if len(insts) == 0 {
		return nil, errors.WithDetail(ErrNotInvocation, "empty program")
	}
	var m machine
	for _, inst := range insts[:len(insts)-1] {
		if err := m.step(inst); err != nil {
			return nil, err
		}
		if len(m.stack)+len(m.alt) > vm.MaxItemCount {
			return nil, vm.ErrItemCount
		}
	}
	if len(m.alt) != 0 {
		return nil, errors.WithDetail(ErrNotInvocation, "altstack not empty")
	}

	last := insts[len(insts)-1]
	switch last.Op {
	case vm.OP_SYSCALL:
		return m.nativeCall(string(last.Data))
	case vm.OP_APPCALL:
		return m.appCall(last.Data)
	}
	return nil, errors.WithDetailf(ErrNotInvocation, "ends with %s", last.Op)
}

type machine struct {
	stack, alt []vm.Item
}

func (m *machine) push(it vm.Item) { m.stack = append(m.stack, it) }

func (m *machine) pop() (vm.Item, error) {
	if len(m.stack) == 0 {
		return nil, errors.WithDetail(ErrNotInvocation, "stack underflow")
	}
	it := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return it, nil
}

func (m *machine) popInt() (int, error) {
	it, err := m.pop()
	if err != nil {
		return 0, err
	}
	n, ok := itemInt(it)
	if !ok || !n.IsInt64() || n.Sign() < 0 || n.Int64() > vm.MaxItemCount {
		return 0, errors.WithDetail(ErrNotInvocation, "bad count")
	}
	return int(n.Int64()), nil
}

func (m *machine) step(inst vm.Instruction) error {
	switch op := inst.Op; {
	case op == vm.OP_PUSHM1 || (op >= vm.OP_1 && op <= vm.OP_16):
		m.push(vm.Integer{Value: vm.DecodeInt(inst.Data)})
	case op.IsPush():
		m.push(vm.ByteArray(inst.Data))
	case op == vm.OP_PACK:
		n, err := m.popInt()
		if err != nil {
			return err
		}
		arr := &vm.Array{Items: make([]vm.Item, 0, n)}
		for i := 0; i < n; i++ {
			it, err := m.pop()
			if err != nil {
				return err
			}
			arr.Items = append(arr.Items, it)
		}
		m.push(arr)
	case op == vm.OP_NEWSTRUCT:
		n, err := m.popInt()
		if err != nil {
			return err
		}
		st := &vm.Struct{Items: make([]vm.Item, n)}
		for i := range st.Items {
			st.Items[i] = vm.Boolean(false)
		}
		m.push(st)
	case op == vm.OP_NEWMAP:
		m.push(&vm.Map{})
	case op == vm.OP_TOALTSTACK:
		it, err := m.pop()
		if err != nil {
			return err
		}
		m.alt = append(m.alt, it)
	case op == vm.OP_DUPFROMALTSTACK || op == vm.OP_FROMALTSTACK:
		if len(m.alt) == 0 {
			return errors.WithDetail(ErrNotInvocation, "altstack underflow")
		}
		m.push(m.alt[len(m.alt)-1])
		if op == vm.OP_FROMALTSTACK {
			m.alt = m.alt[:len(m.alt)-1]
		}
	case op == vm.OP_SWAP:
		if len(m.stack) < 2 {
			return errors.WithDetail(ErrNotInvocation, "stack underflow")
		}
		n := len(m.stack)
		m.stack[n-1], m.stack[n-2] = m.stack[n-2], m.stack[n-1]
	case op == vm.OP_APPEND:
		it, err := m.pop()
		if err != nil {
			return err
		}
		c, err := m.pop()
		if err != nil {
			return err
		}
		switch c := c.(type) {
		case *vm.Array:
			c.Items = append(c.Items, it)
		case *vm.Struct:
			c.Items = append(c.Items, it)
		default:
			return errors.WithDetailf(ErrNotInvocation, "APPEND to %s", c.Type())
		}
	case op == vm.OP_SETITEM:
		return m.setItem()
	default:
		return errors.WithDetailf(ErrNotInvocation, "unexpected %s", op)
	}
	return nil
}

func (m *machine) setItem() error {
	val, err := m.pop()
	if err != nil {
		return err
	}
	key, err := m.pop()
	if err != nil {
		return err
	}
	c, err := m.pop()
	if err != nil {
		return err
	}
	switch c := c.(type) {
	case *vm.Map:
		if !vm.IsPrimitive(key) {
			return vm.ErrMapKey
		}
		c.Set(key, val)
		return nil
	case *vm.Array:
		return setIndex(c.Items, key, val)
	case *vm.Struct:
		return setIndex(c.Items, key, val)
	}
	return errors.WithDetailf(ErrNotInvocation, "SETITEM on %s", c.Type())
}

func setIndex(items []vm.Item, key, val vm.Item) error {
	n, ok := itemInt(key)
	if !ok || !n.IsInt64() || n.Sign() < 0 || n.Int64() >= int64(len(items)) {
		return errors.WithDetail(ErrNotInvocation, "SETITEM index out of range")
	}
	items[n.Int64()] = val
	return nil
}

func (m *machine) nativeCall(service string) (*Invocation, error) {
	if service != NativeInvokeSyscall {
		return nil, errors.WithDetailf(ErrNotInvocation, "syscall %q", service)
	}
	version, err := m.popInt()
	if err != nil || version != 0 {
		return nil, errors.WithDetail(ErrNotInvocation, "bad native invoke version")
	}
	contract, err := m.popBytes()
	if err != nil {
		return nil, err
	}
	addr, err := bc.AddressFromBytes(contract)
	if err != nil {
		return nil, errors.Sub(ErrNotInvocation, err)
	}
	method, err := m.popBytes()
	if err != nil {
		return nil, err
	}
	inv := &Invocation{Contract: addr, Method: string(method), Native: true}
	for i := len(m.stack) - 1; i >= 0; i-- {
		inv.Args = append(inv.Args, m.stack[i])
	}
	return inv, nil
}

func (m *machine) appCall(operand []byte) (*Invocation, error) {
	addr, err := bc.AddressFromBytes(operand)
	if err != nil {
		return nil, errors.Sub(ErrNotInvocation, err)
	}
	method, err := m.popBytes()
	if err != nil {
		return nil, err
	}
	args, err := m.pop()
	if err != nil {
		return nil, err
	}
	arr, ok := args.(*vm.Array)
	if !ok || len(m.stack) != 0 {
		return nil, errors.WithDetail(ErrNotInvocation, "arguments are not one packed array")
	}
	return &Invocation{Contract: addr, Method: string(method), Args: arr.Items}, nil
}

func (m *machine) popBytes() ([]byte, error) {
	it, err := m.pop()
	if err != nil {
		return nil, err
	}
	b, ok := it.(vm.ByteArray)
	if !ok {
		return nil, errors.WithDetailf(ErrNotInvocation, "want bytes, got %s", it.Type())
	}
	return b, nil
}

// itemInt reads a count or index the way the VM does: small-int ops
// are Integers, anything else is a data push holding the
// little-endian encoding.
func itemInt(it vm.Item) (*big.Int, bool) {
	switch it := it.(type) {
	case vm.Integer:
		return it.Value, true
	case vm.ByteArray:
		if len(it) > 8 {
			return nil, false
		}
		return vm.DecodeInt(it), true
	}
	return nil, false
}
