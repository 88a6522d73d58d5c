package vm

import (
	"bytes"
	"fmt"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/user00000001/tesrasdk-go/errors"
)

func TestParseOp(t *testing.T) {
	cases := []struct {
		prog    []byte
		pc      int
		want    Instruction
		wantErr error
	}{{
		prog: []byte{byte(OP_ADD)},
		want: Instruction{Op: OP_ADD, Len: 1},
	}, {
		prog: []byte{byte(OP_16)},
		want: Instruction{Op: OP_16, Data: []byte{16}, Len: 1},
	}, {
		prog: []byte{byte(OP_PUSHM1)},
		want: Instruction{Op: OP_PUSHM1, Data: []byte{0xff}, Len: 1},
	}, {
		prog: []byte{0x05, 1, 1, 1, 1, 1},
		want: Instruction{Op: 0x05, Data: []byte{1, 1, 1, 1, 1}, Len: 6},
	}, {
		prog: []byte{0x05, 1, 1, 1, 1, 1, 255},
		want: Instruction{Op: 0x05, Data: []byte{1, 1, 1, 1, 1}, Len: 6},
	}, {
		prog: []byte{byte(OP_PUSHDATA1), 1, 1},
		want: Instruction{Op: OP_PUSHDATA1, Data: []byte{1}, Len: 3},
	}, {
		prog: []byte{byte(OP_PUSHDATA2), 1, 0, 1, 255},
		want: Instruction{Op: OP_PUSHDATA2, Data: []byte{1}, Len: 4},
	}, {
		prog: []byte{byte(OP_PUSHDATA4), 1, 0, 0, 0, 1},
		want: Instruction{Op: OP_PUSHDATA4, Data: []byte{1}, Len: 6},
	}, {
		prog: []byte{byte(OP_JMP), 3, 0},
		want: Instruction{Op: OP_JMP, Data: []byte{3, 0}, Len: 3},
	}, {
		prog: append([]byte{byte(OP_APPCALL)}, bytes.Repeat([]byte{7}, 20)...),
		want: Instruction{Op: OP_APPCALL, Data: bytes.Repeat([]byte{7}, 20), Len: 21},
	}, {
		prog: []byte{byte(OP_SYSCALL), 3, 'a', 'b', 'c', byte(OP_RET)},
		want: Instruction{Op: OP_SYSCALL, Data: []byte("abc"), Len: 5},
	}, {
		prog: []byte{byte(OP_NOP), byte(OP_SYSCALL), 0xfd, 1, 0, 'x'},
		pc:   1,
		want: Instruction{Op: OP_SYSCALL, Data: []byte("x"), Len: 5},
	}, {
		prog:    []byte{},
		wantErr: ErrShortProgram,
	}, {
		prog:    []byte{byte(OP_0)},
		pc:      1,
		wantErr: ErrShortProgram,
	}, {
		prog:    []byte{0x01},
		wantErr: ErrShortProgram,
	}, {
		prog:    []byte{byte(OP_PUSHDATA1)},
		wantErr: ErrShortProgram,
	}, {
		prog:    []byte{byte(OP_PUSHDATA1), 1},
		wantErr: ErrShortProgram,
	}, {
		prog:    []byte{byte(OP_PUSHDATA2), 1},
		wantErr: ErrShortProgram,
	}, {
		prog:    []byte{byte(OP_PUSHDATA4), 1, 0, 0},
		wantErr: ErrShortProgram,
	}, {
		prog:    []byte{byte(OP_PUSHDATA4), 255, 255, 255, 0x7f, 1},
		wantErr: ErrShortProgram,
	}, {
		prog:    []byte{byte(OP_APPCALL), 1, 2},
		wantErr: ErrShortProgram,
	}, {
		prog:    []byte{byte(OP_SYSCALL), 4, 'a'},
		wantErr: ErrShortProgram,
	}, {
		prog:    []byte{byte(OP_SYSCALL)},
		wantErr: ErrShortProgram,
	}}

	for i, c := range cases {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			got, gotErr := ParseOp(c.prog, c.pc)
			if errors.Root(gotErr) != c.wantErr {
				t.Fatalf("ParseOp(%x, %d) error = %v want %v", c.prog, c.pc, gotErr, c.wantErr)
			}
			if c.wantErr != nil {
				if !errors.Is(gotErr, errors.ErrSerialization) {
					t.Errorf("ParseOp(%x) error is not a serialization error", c.prog)
				}
				return
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("ParseOp(%x, %d) = %s want %s", c.prog, c.pc, spew.Sdump(got), spew.Sdump(c.want))
			}
		})
	}
}

func TestParseProgram(t *testing.T) {
	prog := []byte{0x00, 0xc6, 0x6b, 0x02, 0xab, 0xcd, 0x6a, 0x7c, 0xc8, 0x6c, 0x51, 0xc1}
	insts, err := ParseProgram(prog)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, inst := range insts {
		names = append(names, inst.Op.String())
	}
	got := fmt.Sprint(names)
	const want = "[0 NEWSTRUCT TOALTSTACK DATA_2 DUPFROMALTSTACK SWAP APPEND FROMALTSTACK 1 PACK]"
	if got != want {
		t.Errorf("ParseProgram = %s want %s", got, want)
	}

	_, err = ParseProgram(prog[:4])
	if errors.Root(err) != ErrShortProgram {
		t.Errorf("ParseProgram(truncated) err = %v want %v", err, ErrShortProgram)
	}
}

func TestOpByName(t *testing.T) {
	cases := map[string]Op{
		"PUSHT":         OP_TRUE,
		"FALSE":         OP_0,
		"CHECKMULTISIG": OP_CHECKMULTISIG,
		"DATA_20":       OP_DATA_20,
		"16":            OP_16,
	}
	for name, want := range cases {
		got, ok := OpByName(name)
		if !ok || got != want {
			t.Errorf("OpByName(%s) = %v, %v want %v", name, got, ok, want)
		}
	}
	if _, ok := OpByName("JUMPIF"); ok {
		t.Error("OpByName(JUMPIF) found a non-existent op")
	}
	if got := Op(0x50).String(); got != "NOPx50" {
		t.Errorf("Op(0x50) = %s want NOPx50", got)
	}
}
