package netutil

import (
	"errors"
	"net"
	"strconv"
)

// Host returns the host of net.Addr.
func Host(addr net.Addr) string {
	return HostStr(addr.String())
}

// HostStr returns the host of the address.
func HostStr(addr string) string {
	host, _, _ := splitHostPort(addr)
	return host
}

// SplitHostPort splits addr into host and port.
// A missing port is defaultPort.
func SplitHostPort(addr string, defaultPort uint16) (host string, port uint16, err error) {
	host, port, err = splitHostPort(addr)
	if port == 0 {
		port = defaultPort
	}
	return host, port, err
}

// JoinHostPort is the inverse of SplitHostPort.
// A missing port in addr is set to defaultPort.
func JoinHostPort(addr string, defaultPort uint16) (string, error) {
	host, port, err := SplitHostPort(addr, defaultPort)
	if err != nil {
		return "", err
	}
	return net.JoinHostPort(host, strconv.Itoa(int(port))), nil
}

func splitHostPort(addr string) (host string, port uint16, err error) {
	portInt := 0
	portStr := ""
	host, portStr, err = net.SplitHostPort(addr)
	if err == nil {
		portInt, err = strconv.Atoi(portStr)
		if err == nil && (portInt < 0 || portInt > 65535) {
			err = errors.New("port out of range: " + portStr)
		}
	} else if isMissingPortErr(err) {
		host = addr
		err = nil
	}
	return host, uint16(portInt), err
}

func isMissingPortErr(err error) bool {
	var addrErr *net.AddrError
	return err != nil && errors.As(err, &addrErr) && addrErr.Err == "missing port in address"
}
