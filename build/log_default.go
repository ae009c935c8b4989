//go:build !stdlog && !nolog
// +build !stdlog,!nolog

package build

// LoggingType is a log type that writes to the handler of the sub logger
// manager, if present.
const LoggingType = LogTypeDefault
