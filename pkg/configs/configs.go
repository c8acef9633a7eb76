// Package configs provides the embedded default configuration file.
// Run `go generate ./pkg/configs` to update it from the root directory.
package configs

//go:generate cp ../../config.yml config.yml

import _ "embed"

// DefaultConfigBytes is the default configuration
// written by the `bot config` command.
//
//go:embed config.yml
var DefaultConfigBytes []byte
