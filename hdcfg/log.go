package hdcfg

import (
	"io"

	"github.com/btcsuite/btclog/v2"
	"github.com/lightningnetwork/lnhd/build"
	"github.com/lightningnetwork/lnhd/hdkeychain"
	"github.com/lightningnetwork/lnhd/keychain"
	"github.com/lightningnetwork/lnhd/lnutils"
)

// Subsystem defines the logging code for this subsystem.
const Subsystem = "CNFG"

// log is a logger that is initialized with no output filters.  This means the
// package will not perform any logging by default until the caller requests
// it.
var log btclog.Logger

// The default amount of logging is none.
func init() {
	UseLogger(build.NewSubLogger(Subsystem, nil))
}

// DisableLog disables all library log output.  Logging output is disabled by
// default until UseLogger is called.
func DisableLog() {
	UseLogger(btclog.Disabled)
}

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(logger btclog.Logger) {
	log = logger
}

// SubLogger names a subsystem and the function installing its logger.
type SubLogger struct {
	Subsystem string
	UseLogger func(btclog.Logger)
}

// SetupLoggers creates the loggers of all library subsystems and of the
// extra subsystems given, all writing to w, and applies the configured
// debug levels.
func SetupLoggers(cfg *Config, w io.Writer,
	extra ...SubLogger) (*build.SubLoggerManager, error) {

	manager := build.NewSubLoggerManager(
		build.NewConsoleHandler(cfg.LogConfig, w),
	)

	subLoggers := append([]SubLogger{
		{Subsystem, UseLogger},
		{hdkeychain.Subsystem, hdkeychain.UseLogger},
		{keychain.Subsystem, keychain.UseLogger},
	}, extra...)
	for _, s := range subLoggers {
		manager.RegisterSubLogger(s.Subsystem, s.UseLogger)
	}

	err := build.ParseAndSetDebugLevels(cfg.DebugLevel, manager)
	if err != nil {
		return nil, err
	}

	log.Debugf("Build settings: %v", build.Describe())
	log.Tracef("Using config %v", lnutils.SpewLogClosure(cfg))

	return manager, nil
}
