package main

import (
	"github.com/btcsuite/btclog/v2"
	"github.com/lightningnetwork/lnhd/build"
)

// Subsystem defines the logging code for the command line tool.
const Subsystem = "LNHD"

// log is a logger that is initialized with no output filters. Logging stays
// disabled until the Before hook installs the configured logger.
var log btclog.Logger

func init() {
	UseLogger(build.NewSubLogger(Subsystem, nil))
}

// UseLogger uses a specified Logger to output logging info.
func UseLogger(logger btclog.Logger) {
	log = logger
}
