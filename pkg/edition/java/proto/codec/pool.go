package codec

import (
	"bytes"
	"sync"
)

// bufs pools the encoder's packet buffers.
var bufs = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// maxPooledBuf is the largest buffer capacity put back into the pool.
const maxPooledBuf = 64 * 1024

func getBuf() (*bytes.Buffer, func()) {
	buf := bufs.Get().(*bytes.Buffer)
	buf.Reset()
	return buf, func() {
		if buf.Cap() <= maxPooledBuf {
			bufs.Put(buf)
		}
	}
}
