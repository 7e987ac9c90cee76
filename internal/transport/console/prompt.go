package console

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
)

const maxLineBytes = 1 << 20

type lineResult struct {
	line string
	err  error
}

// lineReader reads input lines on its own goroutine so a pending prompt can
// give up when ctx is cancelled.
type lineReader struct {
	src   io.Reader
	lines chan lineResult
	once  sync.Once
}

func newLineReader(src io.Reader) *lineReader {
	return &lineReader{
		src:   src,
		lines: make(chan lineResult),
	}
}

func (lr *lineReader) start() {
	go func() {
		defer close(lr.lines)

		sc := bufio.NewScanner(lr.src)
		sc.Buffer(make([]byte, 0, 4096), maxLineBytes)
		for sc.Scan() {
			lr.lines <- lineResult{line: strings.TrimRight(sc.Text(), "\r")}
		}

		err := sc.Err()
		if err == nil {
			err = io.EOF
		}
		lr.lines <- lineResult{err: err}
	}()
}

// ReadLine returns the next line without its trailing newline.
func (lr *lineReader) ReadLine(ctx context.Context) (string, error) {
	lr.once.Do(lr.start)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-lr.lines:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	}
}
