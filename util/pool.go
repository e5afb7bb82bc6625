package util

import (
	"bufio"
	"io"
	"sync"
)

// DefaultBufSize is the read buffer size for session line readers (4 KiB).
const DefaultBufSize = 4 * 1024

// readerPool recycles buffered readers between sessions so a busy
// listener does not allocate a fresh buffer per connection.
var readerPool = sync.Pool{
	New: func() interface{} {
		return bufio.NewReaderSize(nil, DefaultBufSize)
	},
}

// GetReader returns a pooled reader reset onto r.  Callers must hand
// it back with [PutReader] when the session ends.
func GetReader(r io.Reader) *bufio.Reader {
	br := readerPool.Get().(*bufio.Reader)
	br.Reset(r)
	return br
}

// PutReader returns br to the pool.  The reader is detached from its
// source first so the pool never pins a closed connection.
func PutReader(br *bufio.Reader) {
	if br == nil {
		return
	}
	br.Reset(nil)
	readerPool.Put(br)
}
