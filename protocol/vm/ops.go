package vm

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/math/checked"
)

type Op uint8

func (op Op) String() string {
	return ops[op].name
}

type Instruction struct {
	Op   Op
	Len  int
	Data []byte
}

const (
	OP_0     Op = 0x00
	OP_FALSE Op = 0x00 // synonym

	OP_DATA_1  Op = 0x01
	OP_DATA_20 Op = 0x14
	OP_DATA_33 Op = 0x21
	OP_DATA_64 Op = 0x40
	OP_DATA_75 Op = 0x4b

	OP_PUSHDATA1 Op = 0x4c
	OP_PUSHDATA2 Op = 0x4d
	OP_PUSHDATA4 Op = 0x4e
	OP_PUSHM1    Op = 0x4f

	OP_1    Op = 0x51
	OP_TRUE Op = 0x51 // synonym
	OP_16   Op = 0x60

	OP_NOP             Op = 0x61
	OP_JMP             Op = 0x62
	OP_JMPIF           Op = 0x63
	OP_JMPIFNOT        Op = 0x64
	OP_CALL            Op = 0x65
	OP_RET             Op = 0x66
	OP_APPCALL         Op = 0x67
	OP_SYSCALL         Op = 0x68
	OP_TAILCALL        Op = 0x69
	OP_DUPFROMALTSTACK Op = 0x6a

	OP_TOALTSTACK   Op = 0x6b
	OP_FROMALTSTACK Op = 0x6c
	OP_XDROP        Op = 0x6d
	OP_XSWAP        Op = 0x72
	OP_XTUCK        Op = 0x73
	OP_DEPTH        Op = 0x74
	OP_DROP         Op = 0x75
	OP_DUP          Op = 0x76
	OP_NIP          Op = 0x77
	OP_OVER         Op = 0x78
	OP_PICK         Op = 0x79
	OP_ROLL         Op = 0x7a
	OP_ROT          Op = 0x7b
	OP_SWAP         Op = 0x7c
	OP_TUCK         Op = 0x7d

	OP_CAT    Op = 0x7e
	OP_SUBSTR Op = 0x7f
	OP_LEFT   Op = 0x80
	OP_RIGHT  Op = 0x81
	OP_SIZE   Op = 0x82

	OP_INVERT Op = 0x83
	OP_AND    Op = 0x84
	OP_OR     Op = 0x85
	OP_XOR    Op = 0x86
	OP_EQUAL  Op = 0x87

	OP_INC         Op = 0x8b
	OP_DEC         Op = 0x8c
	OP_SIGN        Op = 0x8d
	OP_NEGATE      Op = 0x8f
	OP_ABS         Op = 0x90
	OP_NOT         Op = 0x91
	OP_NZ          Op = 0x92
	OP_ADD         Op = 0x93
	OP_SUB         Op = 0x94
	OP_MUL         Op = 0x95
	OP_DIV         Op = 0x96
	OP_MOD         Op = 0x97
	OP_SHL         Op = 0x98
	OP_SHR         Op = 0x99
	OP_BOOLAND     Op = 0x9a
	OP_BOOLOR      Op = 0x9b
	OP_NUMEQUAL    Op = 0x9c
	OP_NUMNOTEQUAL Op = 0x9e
	OP_LT          Op = 0x9f
	OP_GT          Op = 0xa0
	OP_LTE         Op = 0xa1
	OP_GTE         Op = 0xa2
	OP_MIN         Op = 0xa3
	OP_MAX         Op = 0xa4
	OP_WITHIN      Op = 0xa5

	OP_SHA1          Op = 0xa7
	OP_SHA256        Op = 0xa8
	OP_HASH160       Op = 0xa9
	OP_HASH256       Op = 0xaa
	OP_CHECKSIG      Op = 0xac
	OP_VERIFY        Op = 0xad
	OP_CHECKMULTISIG Op = 0xae

	OP_ARRAYSIZE Op = 0xc0
	OP_PACK      Op = 0xc1
	OP_UNPACK    Op = 0xc2
	OP_PICKITEM  Op = 0xc3
	OP_SETITEM   Op = 0xc4
	OP_NEWARRAY  Op = 0xc5
	OP_NEWSTRUCT Op = 0xc6
	OP_NEWMAP    Op = 0xc7
	OP_APPEND    Op = 0xc8
	OP_REVERSE   Op = 0xc9
	OP_REMOVE    Op = 0xca
	OP_HASKEY    Op = 0xcb
	OP_KEYS      Op = 0xcc
	OP_VALUES    Op = 0xcd

	OP_THROW      Op = 0xf0
	OP_THROWIFNOT Op = 0xf1
)

// Operand sizes of the ops that carry inline data other than pushes.
const (
	jumpOperandSize    = 2
	appcallOperandSize = 20
)

type opInfo struct {
	op   Op
	name string
}

var (
	ops = [256]opInfo{
		OP_0:         {OP_0, "0"},
		OP_PUSHDATA1: {OP_PUSHDATA1, "PUSHDATA1"},
		OP_PUSHDATA2: {OP_PUSHDATA2, "PUSHDATA2"},
		OP_PUSHDATA4: {OP_PUSHDATA4, "PUSHDATA4"},
		OP_PUSHM1:    {OP_PUSHM1, "PUSHM1"},

		OP_NOP:             {OP_NOP, "NOP"},
		OP_JMP:             {OP_JMP, "JMP"},
		OP_JMPIF:           {OP_JMPIF, "JMPIF"},
		OP_JMPIFNOT:        {OP_JMPIFNOT, "JMPIFNOT"},
		OP_CALL:            {OP_CALL, "CALL"},
		OP_RET:             {OP_RET, "RET"},
		OP_APPCALL:         {OP_APPCALL, "APPCALL"},
		OP_SYSCALL:         {OP_SYSCALL, "SYSCALL"},
		OP_TAILCALL:        {OP_TAILCALL, "TAILCALL"},
		OP_DUPFROMALTSTACK: {OP_DUPFROMALTSTACK, "DUPFROMALTSTACK"},

		OP_TOALTSTACK:   {OP_TOALTSTACK, "TOALTSTACK"},
		OP_FROMALTSTACK: {OP_FROMALTSTACK, "FROMALTSTACK"},
		OP_XDROP:        {OP_XDROP, "XDROP"},
		OP_XSWAP:        {OP_XSWAP, "XSWAP"},
		OP_XTUCK:        {OP_XTUCK, "XTUCK"},
		OP_DEPTH:        {OP_DEPTH, "DEPTH"},
		OP_DROP:         {OP_DROP, "DROP"},
		OP_DUP:          {OP_DUP, "DUP"},
		OP_NIP:          {OP_NIP, "NIP"},
		OP_OVER:         {OP_OVER, "OVER"},
		OP_PICK:         {OP_PICK, "PICK"},
		OP_ROLL:         {OP_ROLL, "ROLL"},
		OP_ROT:          {OP_ROT, "ROT"},
		OP_SWAP:         {OP_SWAP, "SWAP"},
		OP_TUCK:         {OP_TUCK, "TUCK"},

		OP_CAT:    {OP_CAT, "CAT"},
		OP_SUBSTR: {OP_SUBSTR, "SUBSTR"},
		OP_LEFT:   {OP_LEFT, "LEFT"},
		OP_RIGHT:  {OP_RIGHT, "RIGHT"},
		OP_SIZE:   {OP_SIZE, "SIZE"},

		OP_INVERT: {OP_INVERT, "INVERT"},
		OP_AND:    {OP_AND, "AND"},
		OP_OR:     {OP_OR, "OR"},
		OP_XOR:    {OP_XOR, "XOR"},
		OP_EQUAL:  {OP_EQUAL, "EQUAL"},

		OP_INC:         {OP_INC, "INC"},
		OP_DEC:         {OP_DEC, "DEC"},
		OP_SIGN:        {OP_SIGN, "SIGN"},
		OP_NEGATE:      {OP_NEGATE, "NEGATE"},
		OP_ABS:         {OP_ABS, "ABS"},
		OP_NOT:         {OP_NOT, "NOT"},
		OP_NZ:          {OP_NZ, "NZ"},
		OP_ADD:         {OP_ADD, "ADD"},
		OP_SUB:         {OP_SUB, "SUB"},
		OP_MUL:         {OP_MUL, "MUL"},
		OP_DIV:         {OP_DIV, "DIV"},
		OP_MOD:         {OP_MOD, "MOD"},
		OP_SHL:         {OP_SHL, "SHL"},
		OP_SHR:         {OP_SHR, "SHR"},
		OP_BOOLAND:     {OP_BOOLAND, "BOOLAND"},
		OP_BOOLOR:      {OP_BOOLOR, "BOOLOR"},
		OP_NUMEQUAL:    {OP_NUMEQUAL, "NUMEQUAL"},
		OP_NUMNOTEQUAL: {OP_NUMNOTEQUAL, "NUMNOTEQUAL"},
		OP_LT:          {OP_LT, "LT"},
		OP_GT:          {OP_GT, "GT"},
		OP_LTE:         {OP_LTE, "LTE"},
		OP_GTE:         {OP_GTE, "GTE"},
		OP_MIN:         {OP_MIN, "MIN"},
		OP_MAX:         {OP_MAX, "MAX"},
		OP_WITHIN:      {OP_WITHIN, "WITHIN"},

		OP_SHA1:          {OP_SHA1, "SHA1"},
		OP_SHA256:        {OP_SHA256, "SHA256"},
		OP_HASH160:       {OP_HASH160, "HASH160"},
		OP_HASH256:       {OP_HASH256, "HASH256"},
		OP_CHECKSIG:      {OP_CHECKSIG, "CHECKSIG"},
		OP_VERIFY:        {OP_VERIFY, "VERIFY"},
		OP_CHECKMULTISIG: {OP_CHECKMULTISIG, "CHECKMULTISIG"},

		OP_ARRAYSIZE: {OP_ARRAYSIZE, "ARRAYSIZE"},
		OP_PACK:      {OP_PACK, "PACK"},
		OP_UNPACK:    {OP_UNPACK, "UNPACK"},
		OP_PICKITEM:  {OP_PICKITEM, "PICKITEM"},
		OP_SETITEM:   {OP_SETITEM, "SETITEM"},
		OP_NEWARRAY:  {OP_NEWARRAY, "NEWARRAY"},
		OP_NEWSTRUCT: {OP_NEWSTRUCT, "NEWSTRUCT"},
		OP_NEWMAP:    {OP_NEWMAP, "NEWMAP"},
		OP_APPEND:    {OP_APPEND, "APPEND"},
		OP_REVERSE:   {OP_REVERSE, "REVERSE"},
		OP_REMOVE:    {OP_REMOVE, "REMOVE"},
		OP_HASKEY:    {OP_HASKEY, "HASKEY"},
		OP_KEYS:      {OP_KEYS, "KEYS"},
		OP_VALUES:    {OP_VALUES, "VALUES"},

		OP_THROW:      {OP_THROW, "THROW"},
		OP_THROWIFNOT: {OP_THROWIFNOT, "THROWIFNOT"},
	}

	opsByName map[string]opInfo
)

// IsPush reports whether op only pushes a constant.
func (op Op) IsPush() bool {
	return op <= OP_16 && op != 0x50
}

// ParseOp parses the op at position pc in prog, returning the parsed
// instruction (opcode plus any associated data).
func ParseOp(prog []byte, pc int) (inst Instruction, err error) {
	if len(prog) > math.MaxInt32 {
		return inst, ErrLongProgram
	}
	l := len(prog)
	if pc < 0 || pc >= l {
		return inst, ErrShortProgram
	}
	opcode := Op(prog[pc])
	inst.Op = opcode
	inst.Len = 1

	// operand returns the n bytes after a prefix of size skip.
	operand := func(skip, n int) error {
		size, ok := checked.AddInt(skip, n)
		if !ok {
			return errors.WithDetail(checked.ErrOverflow, "data length exceeds max program size")
		}
		inst.Len += size
		end, ok := checked.AddInt(pc, inst.Len)
		if !ok {
			return errors.WithDetail(checked.ErrOverflow, "data length exceeds max program size")
		}
		if end > l {
			return errors.WithDetailf(ErrShortProgram, "%s at %d needs %d bytes", opcode, pc, size)
		}
		inst.Data = prog[pc+1+skip : end]
		return nil
	}
	// prefix reads an n-byte little-endian length after the opcode.
	prefix := func(n int) (int, error) {
		if pc+1+n > l {
			return 0, errors.WithDetailf(ErrShortProgram, "%s at %d", opcode, pc)
		}
		var buf [8]byte
		copy(buf[:], prog[pc+1:pc+1+n])
		v := binary.LittleEndian.Uint64(buf[:])
		if v > math.MaxInt32 {
			return 0, errors.WithDetail(checked.ErrOverflow, "data length exceeds max program size")
		}
		return int(v), nil
	}

	switch {
	case opcode == OP_PUSHM1:
		inst.Data = []byte{0xff}
	case opcode >= OP_1 && opcode <= OP_16:
		inst.Data = []byte{uint8(opcode-OP_1) + 1}
	case opcode >= OP_DATA_1 && opcode <= OP_DATA_75:
		err = operand(0, int(opcode))
	case opcode == OP_PUSHDATA1:
		var n int
		if n, err = prefix(1); err == nil {
			err = operand(1, n)
		}
	case opcode == OP_PUSHDATA2:
		var n int
		if n, err = prefix(2); err == nil {
			err = operand(2, n)
		}
	case opcode == OP_PUSHDATA4:
		var n int
		if n, err = prefix(4); err == nil {
			err = operand(4, n)
		}
	case opcode == OP_JMP || opcode == OP_JMPIF || opcode == OP_JMPIFNOT || opcode == OP_CALL:
		err = operand(0, jumpOperandSize)
	case opcode == OP_APPCALL || opcode == OP_TAILCALL:
		err = operand(0, appcallOperandSize)
	case opcode == OP_SYSCALL:
		err = syscallOperand(prog, pc, &inst)
	}
	if err != nil {
		return Instruction{}, err
	}
	return inst, nil
}

// syscallOperand reads the compact-size length and name after SYSCALL.
func syscallOperand(prog []byte, pc int, inst *Instruction) error {
	rest := prog[pc+1:]
	if len(rest) == 0 {
		return errors.WithDetailf(ErrShortProgram, "SYSCALL at %d", pc)
	}
	var n, size int
	switch rest[0] {
	case 0xfd:
		size = 3
	case 0xfe:
		size = 5
	case 0xff:
		size = 9
	default:
		size = 1
		n = int(rest[0])
	}
	if len(rest) < size {
		return errors.WithDetailf(ErrShortProgram, "SYSCALL at %d", pc)
	}
	if size > 1 {
		var buf [8]byte
		copy(buf[:], rest[1:size])
		v := binary.LittleEndian.Uint64(buf[:])
		if v > math.MaxInt32 {
			return errors.WithDetail(checked.ErrOverflow, "syscall name too long")
		}
		n = int(v)
	}
	end, ok := checked.AddInt(size, n)
	if !ok || end > len(rest) {
		return errors.WithDetailf(ErrShortProgram, "SYSCALL at %d", pc)
	}
	inst.Len += end
	inst.Data = rest[size:end]
	return nil
}

// ParseProgram disassembles prog.
func ParseProgram(prog []byte) ([]Instruction, error) {
	var result []Instruction
	for pc := 0; pc < len(prog); { // update pc inside the loop
		inst, err := ParseOp(prog, pc)
		if err != nil {
			return nil, err
		}
		result = append(result, inst)
		var ok bool
		pc, ok = checked.AddInt(pc, inst.Len)
		if !ok {
			return nil, errors.WithDetail(checked.ErrOverflow, "program counter exceeds max program size")
		}
	}
	return result, nil
}

// OpByName returns the opcode with the given name, as printed by
// Op.String.
func OpByName(name string) (Op, bool) {
	info, ok := opsByName[name]
	return info.op, ok
}

func init() {
	for i := 1; i <= 75; i++ {
		ops[i] = opInfo{Op(i), fmt.Sprintf("DATA_%d", i)}
	}
	for i := uint8(0); i <= 15; i++ {
		op := uint8(OP_1) + i
		ops[op] = opInfo{Op(op), fmt.Sprintf("%d", i+1)}
	}

	opsByName = make(map[string]opInfo)
	for _, info := range ops {
		if info.name != "" {
			opsByName[info.name] = info
		}
	}
	opsByName["FALSE"] = ops[OP_0]
	opsByName["TRUE"] = ops[OP_1]
	opsByName["PUSHF"] = ops[OP_0]
	opsByName["PUSHT"] = ops[OP_1]

	for i := 0; i <= 255; i++ {
		if ops[i].name == "" {
			ops[i] = opInfo{Op(i), fmt.Sprintf("NOPx%02x", i)}
		}
	}
}
