package checked

import (
	"math"
	"testing"
)

func TestAddInt(t *testing.T) {
	cases := []struct {
		a, b, want int
		wantOk     bool
	}{
		{2, 3, 5, true},
		{0, 0, 0, true},
		{math.MaxInt, 1, 0, false},
		{-1, 3, 0, false},
		{3, -1, 0, false},
	}
	for _, c := range cases {
		got, ok := AddInt(c.a, c.b)
		if got != c.want || ok != c.wantOk {
			t.Errorf("AddInt(%d, %d) = %d, %v want %d, %v", c.a, c.b, got, ok, c.want, c.wantOk)
		}
	}
}
