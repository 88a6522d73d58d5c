package errors

import (
	"errors"
	"testing"
)

func TestWrap(t *testing.T) {
	err := errors.New("0")
	err1 := Wrap(err, "1")
	err2 := Wrap(err1, "2")
	err3 := Wrap(err2)

	if got := Root(err1); got != err {
		t.Fatalf("Root(%v)=%v want %v", err1, got, err)
	}

	if got := Root(err2); got != err {
		t.Fatalf("Root(%v)=%v want %v", err2, got, err)
	}

	if err2.Error() != "2: 1: 0" {
		t.Fatalf("err msg = %s want '2: 1: 0'", err2.Error())
	}

	if err3.Error() != "2: 1: 0" {
		t.Fatalf("err msg = %s want '2: 1: 0'", err3.Error())
	}
}

func TestWrapNil(t *testing.T) {
	var err error

	err1 := Wrap(err, "1")
	if err1 != nil {
		t.Fatal("wrapping nil error should yield nil")
	}
}

func TestWrapf(t *testing.T) {
	err := errors.New("0")
	err1 := Wrapf(err, "there are %d errors being wrapped", 1)
	if err1.Error() != "there are 1 errors being wrapped: 0" {
		t.Fatalf("err msg = %s want 'there are 1 errors being wrapped: 0'", err1.Error())
	}
}

func TestWrapMsg(t *testing.T) {
	err := errors.New("rooti")
	err1 := Wrap(err, "cherry", " ", "guava")
	if err1.Error() != "cherry guava: rooti" {
		t.Fatalf("err msg = %s want 'cherry guava: rooti'", err1.Error())
	}
}

func TestSub(t *testing.T) {
	inner := Wrap(errors.New("short"), "reading")
	err := Sub(ErrSerialization, inner)
	if Root(err) != ErrSerialization {
		t.Fatalf("Root(%v) = %v want %v", err, Root(err), ErrSerialization)
	}
	if err.Error() != "reading: short" {
		t.Fatalf("err msg = %s want 'reading: short'", err.Error())
	}
	if Sub(ErrSerialization, nil) != nil {
		t.Fatal("Sub of nil error should yield nil")
	}
}

func TestDeriveIs(t *testing.T) {
	errShort := Derive(ErrSerialization, "short program")
	err := WithDetailf(Wrap(errShort, "parsing"), "at offset %d", 7)
	if !Is(err, ErrSerialization) {
		t.Errorf("Is(%v, ErrSerialization) = false want true", err)
	}
	if Is(err, ErrOverflow) {
		t.Errorf("Is(%v, ErrOverflow) = true want false", err)
	}
	if Root(err) != errShort {
		t.Errorf("Root(%v) = %v want %v", err, Root(err), errShort)
	}
	if got := Detail(err); got != "at offset 7" {
		t.Errorf("Detail = %q want %q", got, "at offset 7")
	}
}

func TestCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, CodeSuccess},
		{ErrSignatureLimit, CodeSignatureLimit},
		{Wrap(Derive(ErrInvalidParams, "bad address")), CodeInvalidParams},
		{WithData(New("node said no"), "code", CodeSmartcodeError), CodeSmartcodeError},
		{New("something else"), CodeInternalError},
	}
	for _, c := range cases {
		if got := Code(c.err); got != c.want {
			t.Errorf("Code(%v) = %d want %d", c.err, got, c.want)
		}
	}
	if CodeText(CodeNotTransfer) != "not a transfer transaction" {
		t.Errorf("CodeText(%d) = %q", CodeNotTransfer, CodeText(CodeNotTransfer))
	}
}

func TestWithData(t *testing.T) {
	err := WithData(New("x"), "a", 1)
	err = WithData(err, "b", 2)
	data := Data(err)
	if data["a"] != 1 || data["b"] != 2 {
		t.Errorf("Data = %v want a=1 b=2", data)
	}
	if WithData(nil, "a", 1) != nil {
		t.Error("WithData(nil) should yield nil")
	}
}
