// Package connwrap wraps net.Conn to track its use.
package connwrap

import (
	"net"

	"go.uber.org/atomic"
)

// Conn is a wrapper around a net.Conn that tracks whether Close has been
// called and counts the bytes read and written.
type Conn struct {
	net.Conn // underlying connection
	closed   atomic.Bool
	read     atomic.Uint64
	written  atomic.Uint64
}

// New wraps c.
func New(c net.Conn) *Conn { return &Conn{Conn: c} }

func (c *Conn) Read(b []byte) (int, error) {
	n, err := c.Conn.Read(b)
	c.read.Add(uint64(n))
	return n, err
}

func (c *Conn) Write(b []byte) (int, error) {
	n, err := c.Conn.Write(b)
	c.written.Add(uint64(n))
	return n, err
}

func (c *Conn) Close() error {
	c.closed.Store(true)
	return c.Conn.Close()
}

// Closed reports whether Close was called.
func (c *Conn) Closed() bool {
	return c.closed.Load()
}

// BytesRead returns the number of bytes read from the connection.
func (c *Conn) BytesRead() uint64 { return c.read.Load() }

// BytesWritten returns the number of bytes written to the connection.
func (c *Conn) BytesWritten() uint64 { return c.written.Load() }
