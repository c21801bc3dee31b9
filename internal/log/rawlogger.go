package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// RawLogger records the exact text read as input and written as output.
type RawLogger interface {
	Log(in bool, data []byte)
}

// rawLogger implements RawLogger with thread-safe log.
type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw creates a new RawLogger. If writer is nil, returns a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// Log emits a timestamped header followed by the text itself.
// in=true means text read from the input, in=false means generated output.
func (r *rawLogger) Log(in bool, data []byte) {
	if len(data) == 0 {
		return
	}
	if r.w == nil {
		return
	}

	dir := "-> output"
	if in {
		dir = "<- input"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %d bytes\n",
		time.Now().Format("2006/01/02 15:04:05"),
		dir,
		len(data))
	b.Write(data)
	if data[len(data)-1] != '\n' {
		b.WriteByte('\n')
	}

	r.mu.Lock()
	_, _ = io.WriteString(r.w, b.String())
	r.mu.Unlock()
}
