package netutil

import (
	"bufio"
	"context"
	"net"
	"testing"

	"github.com/pires/go-proxyproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitHostPort(t *testing.T) {
	tests := []struct {
		addr string
		host string
		port uint16
		err  bool
	}{
		{"localhost", "localhost", DefaultPort, false},
		{"localhost:25566", "localhost", 25566, false},
		{"127.0.0.1:1", "127.0.0.1", 1, false},
		{"[::1]:25565", "::1", 25565, false},
		{"host:70000", "", 0, true},
		{"host:abc", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			host, port, err := SplitHostPort(tt.addr, DefaultPort)
			if tt.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.host, host)
			assert.Equal(t, tt.port, port)
		})
	}
}

func TestJoinHostPort(t *testing.T) {
	addr, err := JoinHostPort("example.com", 25565)
	require.NoError(t, err)
	assert.Equal(t, "example.com:25565", addr)
}

func TestHostStr(t *testing.T) {
	assert.Equal(t, "host", HostStr("host:123"))
	assert.Equal(t, "host", HostStr("host"))
}

func TestSplitHostPort_isMissingPortErr(t *testing.T) {
	_, _, err := net.SplitHostPort("host-without-port")
	require.True(t, isMissingPortErr(err))
}

func TestDialerProxyProtocol(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	headers := make(chan *proxyproto.Header, 1)
	go func() {
		c, err := ln.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		h, _ := proxyproto.Read(bufio.NewReader(c))
		headers <- h
	}()

	d := &Dialer{ProxyProtocol: true}
	conn, err := d.DialContext(context.Background(), ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	h := <-headers
	require.NotNil(t, h)
	assert.Equal(t, byte(2), h.Version)
	assert.Equal(t, conn.LocalAddr().String(), h.SourceAddr.String())
}

func TestDialerInvalidSOCKS5(t *testing.T) {
	d := &Dialer{SOCKS5: "socks5://%zz"}
	_, err := d.DialContext(context.Background(), "localhost")
	require.Error(t, err)
}
