package errors

import "io"

// Reader and Writer wrap a stream so a sequence of field reads or
// writes can skip per-call error checks: after the first failure they
// stop touching the stream and keep returning that failure. Callers
// check Err once at the end.

// Reader counts bytes and remembers the first read error.
type Reader struct {
	r   io.Reader
	n   int64
	err error
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (r *Reader) Read(buf []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n, err := r.r.Read(buf)
	r.n += int64(n)
	r.err = err
	return n, err
}

// Err returns the first error, if any.
func (r *Reader) Err() error { return r.err }

// BytesRead returns the count of bytes consumed so far.
func (r *Reader) BytesRead() int64 { return r.n }

// Writer counts bytes and remembers the first write error.
type Writer struct {
	w   io.Writer
	n   int64
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Write(buf []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(buf)
	w.n += int64(n)
	w.err = err
	return n, err
}

// Err returns the first error, if any.
func (w *Writer) Err() error { return w.err }

// Written returns the count of bytes accepted so far.
func (w *Writer) Written() int64 { return w.n }
