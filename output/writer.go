package output

import (
	"bufio"
	"io"

	"github.com/CN-TU/go-flowfmt/flows"
)

const writeBufferSize = 64 * 1024

// Writer writes a rendering session to an output stream: the header line, one line per record,
// and the trailing line. Output is buffered. The first error is returned by every later call.
type Writer struct {
	plan     *Plan
	ctx      *Context
	writer   *bufio.Writer
	buf      []byte
	flush    bool
	began    bool
	finished bool
	summary  Summary
	err      error
}

// NewWriter returns a writer that renders records with plan and ctx to w.
func NewWriter(w io.Writer, plan *Plan, ctx *Context) *Writer {
	return &Writer{
		plan:   plan,
		ctx:    ctx,
		writer: bufio.NewWriterSize(w, writeBufferSize),
		buf:    make([]byte, 0, 512),
	}
}

// SetFlush enables flushing after every line.
func (w *Writer) SetFlush(flush bool) {
	w.flush = flush
}

// Begin writes the header line. It is called implicitly by the first Write.
func (w *Writer) Begin() error {
	if w.err != nil || w.began {
		return w.err
	}
	w.began = true
	w.err = w.plan.Prolog(w.writer, w.ctx)
	return w.err
}

// Write renders one record followed by a newline.
func (w *Writer) Write(rec flows.Record) error {
	if !w.began {
		if err := w.Begin(); err != nil {
			return err
		}
	}
	if w.err != nil {
		return w.err
	}
	w.buf = w.plan.AppendRecord(w.buf[:0], w.ctx, rec)
	w.buf = append(w.buf, '\n')
	if _, err := w.writer.Write(w.buf); err != nil {
		w.err = err
		return err
	}
	w.summary.Add(rec)
	if w.flush {
		w.err = w.writer.Flush()
	}
	return w.err
}

// Finish writes the trailing line and flushes the output. Calls after the first one only
// return the error state.
func (w *Writer) Finish() error {
	if w.finished {
		return w.err
	}
	w.finished = true
	if err := w.Begin(); err != nil {
		return err
	}
	if w.err = w.plan.Epilog(w.writer, w.ctx, &w.summary); w.err != nil {
		return w.err
	}
	w.err = w.writer.Flush()
	return w.err
}

// Summary returns the totals of the records written so far.
func (w *Writer) Summary() Summary {
	return w.summary
}
