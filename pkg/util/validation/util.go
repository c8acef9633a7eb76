package validation

import (
	"errors"
	"regexp"

	"go.minekube.com/bot/pkg/util/netutil"
)

// ValidHostPort checks a server address. The port is optional.
func ValidHostPort(hostAndPort string) error {
	host, _, err := netutil.SplitHostPort(hostAndPort, netutil.DefaultPort)
	if err != nil {
		return err
	}
	if host == "" {
		return errors.New("missing host")
	}
	return nil
}

const (
	UsernameMaxLength = 16
	UsernameErrMsg    = "must consist of 1-16 alphanumeric characters or '_'"
)

var usernameRegexp = regexp.MustCompile("^[A-Za-z0-9_]{1,16}$")

// ValidUsername reports whether str is a name the vanilla server accepts.
func ValidUsername(str string) bool {
	return usernameRegexp.MatchString(str)
}
