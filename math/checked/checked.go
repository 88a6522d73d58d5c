// Package checked implements the overflow-checked length arithmetic
// the script parser uses for operands and the program counter.
package checked

import (
	"math"

	"github.com/user00000001/tesrasdk-go/errors"
)

var ErrOverflow = errors.Derive(errors.ErrOverflow, "arithmetic overflow")

// AddInt returns a + b for non-negative lengths and offsets.
// It reports false if either is negative or the sum overflows.
func AddInt(a, b int) (sum int, ok bool) {
	if a < 0 || b < 0 || a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}
