package errors

import (
	"fmt"
	"runtime"
)

// stackTraceSize bounds the frames kept per wrapped error.
const stackTraceSize = 10

// StackFrame is one caller recorded when an error was first wrapped.
type StackFrame struct {
	Func string
	File string
	Line int
}

func (f StackFrame) String() string {
	return fmt.Sprintf("%s:%d - %s", f.File, f.Line, f.Func)
}

// Stack returns the frames recorded by the first Wrap, Sub or
// WithDetail applied to err, or nil for plain errors.
func Stack(err error) []StackFrame {
	if w, ok := err.(wrapperError); ok {
		return w.stack
	}
	return nil
}

// getStack records up to size callers, skipping skip frames above
// its own caller.
func getStack(skip, size int) []StackFrame {
	pc := make([]uintptr, size)
	n := runtime.Callers(skip+1, pc)
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pc[:n])
	trace := make([]StackFrame, 0, n)
	for {
		f, more := frames.Next()
		trace = append(trace, StackFrame{Func: f.Function, File: f.File, Line: f.Line})
		if !more {
			break
		}
	}
	return trace
}
