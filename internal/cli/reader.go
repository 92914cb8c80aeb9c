package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

type lineResult struct {
	err  error
	text string
}

// LineReader reads answers line by line and gives up when the context ends.
//
// At most one read is in flight. A read abandoned by a canceled context is
// not lost: its line is handed to the next ReadLine call.
type LineReader struct {
	in      *bufio.Reader
	pending chan lineResult
	mu      sync.Mutex
}

// NewLineReader creates a LineReader over r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{in: bufio.NewReader(r)}
}

// ReadLine returns the next line with surrounding whitespace removed. A last
// line without a newline is still returned; io.EOF comes only once input is empty.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-r.next():
		r.mu.Lock()
		r.pending = nil
		r.mu.Unlock()

		if res.err != nil && !(errors.Is(res.err, io.EOF) && res.text != "") {
			return "", res.err
		}
		return strings.TrimSpace(res.text), nil
	}
}

// next returns the channel of the in-flight read, starting one if needed.
func (r *LineReader) next() <-chan lineResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending == nil {
		ch := make(chan lineResult, 1)
		r.pending = ch
		go func() {
			text, err := r.in.ReadString('\n')
			ch <- lineResult{text: text, err: err}
		}()
	}
	return r.pending
}
