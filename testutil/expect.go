package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/user00000001/tesrasdk-go/errors"
	"github.com/user00000001/tesrasdk-go/protocol/vm"
)

var wd, _ = os.Getwd()

// ExpectEqual reports a mismatch between actual and expected, dumping
// both values in full so nested byte slices and big.Ints are legible.
func ExpectEqual(t testing.TB, actual, expected interface{}, msg string) {
	t.Helper()
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("%s: got\n%sexpected\n%s", msg, spew.Sdump(actual), spew.Sdump(expected))
	}
}

// ExpectScriptEqual compares two VM scripts and shows both
// disassembled on mismatch.
func ExpectScriptEqual(t testing.TB, actual, expected []byte, msg string) {
	t.Helper()
	if !bytes.Equal(actual, expected) {
		t.Errorf("%s:\n got  [%s]\n want [%s]", msg, Disassemble(actual), Disassemble(expected))
	}
}

// ExpectError checks that fn fails with an error whose root is expected.
func ExpectError(t testing.TB, expected error, msg string, fn func() error) {
	t.Helper()
	if actual := fn(); errors.Root(actual) != expected {
		t.Errorf("%s: got error %v, expected %v", msg, actual, expected)
	}
}

// ExpectKind checks that fn fails with an error of the given kind.
func ExpectKind(t testing.TB, kind error, msg string, fn func() error) {
	t.Helper()
	if actual := fn(); !errors.Is(actual, kind) {
		t.Errorf("%s: got error %v, expected kind %v", msg, actual, kind)
	}
}

// FatalErr stops the test, printing err with the frames recorded
// when it was wrapped, relative to the test's directory.
func FatalErr(t testing.TB, err error) {
	t.Helper()
	var b strings.Builder
	b.WriteString(err.Error())
	for _, f := range errors.Stack(err) {
		file := f.File
		if rel, rerr := filepath.Rel(wd, file); rerr == nil && !strings.HasPrefix(rel, "..") {
			file = rel
		}
		fmt.Fprintf(&b, "\n%s:%d: %s", file, f.Line, f.Func[strings.LastIndexByte(f.Func, '/')+1:])
	}
	t.Fatal(b.String())
}

// Disassemble renders prog with vm.Disassemble, falling back to raw
// hex for unparseable programs.
func Disassemble(prog []byte) string {
	s, err := vm.Disassemble(prog)
	if err != nil {
		return fmt.Sprintf("%x", prog)
	}
	return s
}
