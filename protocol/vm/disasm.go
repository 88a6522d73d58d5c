package vm

import (
	"fmt"
	"strings"
	"unicode"
)

// Disassemble renders prog as space-separated instructions. Push data
// and call operands follow their opcode, as 'text' when printable and
// as 0x-prefixed hex otherwise.
func Disassemble(prog []byte) (string, error) {
	insts, err := ParseProgram(prog)
	if err != nil {
		return "", err
	}
	var result []string
	for _, inst := range insts {
		switch {
		case inst.Op >= OP_DATA_1 && inst.Op <= OP_PUSHDATA4,
			inst.Op == OP_SYSCALL, inst.Op == OP_APPCALL, inst.Op == OP_TAILCALL:
			result = append(result, inst.Op.String()+" "+operandString(inst.Data))
		case inst.Op == OP_JMP, inst.Op == OP_JMPIF, inst.Op == OP_JMPIFNOT, inst.Op == OP_CALL:
			off := int16(uint16(inst.Data[0]) | uint16(inst.Data[1])<<8)
			result = append(result, fmt.Sprintf("%s %d", inst.Op, off))
		default:
			result = append(result, inst.Op.String())
		}
	}
	return strings.Join(result, " "), nil
}

func operandString(data []byte) string {
	if len(data) > 0 && strings.IndexFunc(string(data), isUnprintable) < 0 {
		return "'" + string(data) + "'"
	}
	return fmt.Sprintf("0x%x", data)
}

func isUnprintable(r rune) bool {
	return r == '\'' || !unicode.IsPrint(r) || r > unicode.MaxASCII
}
