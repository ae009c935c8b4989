//go:build nolog
// +build nolog

package build

// LoggingType is a log type that writes nothing.
const LoggingType = LogTypeNone
