// Package version reports the build version of the bot.
package version

import (
	"net/http"
	"runtime/debug"
	"sync"
)

// Set using -ldflags "-X go.minekube.com/bot/pkg/version.version=v1.2.3"
var version string

const unknown = "unknown"

var buildVersion = sync.OnceValue(func() string {
	if version != "" {
		return version
	}
	// go install module@version stamps the main module version.
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return unknown
})

// String returns the version, "unknown" for local builds.
func String() string { return buildVersion() }

// UserAgent is sent to the session server.
func UserAgent() string { return "Minekube-Bot/" + String() }

// UserAgentHeader returns a header with the User-Agent set.
func UserAgentHeader() http.Header {
	return http.Header{"User-Agent": {UserAgent()}}
}
