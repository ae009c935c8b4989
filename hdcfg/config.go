package hdcfg

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	flags "github.com/jessevdk/go-flags"
	"github.com/lightningnetwork/lnhd/build"
	"github.com/lightningnetwork/lnhd/hdkeychain"
)

const (
	// DefaultConfigFilename is the default configuration file name lnhd
	// tries to load.
	DefaultConfigFilename = "lnhd.conf"

	defaultNetwork    = "mainnet"
	defaultLogLevel   = "info"
	defaultEntropyLen = 256
)

var (
	// DefaultHomeDir is the default directory holding the config file.
	DefaultHomeDir = btcutil.AppDataDir("lnhd", false)

	// DefaultConfigFile is the default full path of the config file.
	DefaultConfigFile = filepath.Join(DefaultHomeDir, DefaultConfigFilename)
)

// Config holds the settings shared by all commands.
//
//nolint:lll
type Config struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`

	Network      string `long:"network" description:"The network extended keys are created for" choice:"mainnet" choice:"testnet3" choice:"regtest" choice:"simnet" choice:"signet"`
	DebugLevel   string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <global-level>,<subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	Uncompressed bool   `long:"uncompressed" description:"Encode plain public keys in the 65-byte uncompressed form"`
	EntropyBits  int    `long:"entropybits" description:"Bits of entropy of newly generated mnemonics, a multiple of 32 between 128 and 256"`

	LogConfig *build.LogConfig `group:"logging" namespace:"logging"`

	// NetParams is resolved from Network by ValidateConfig.
	NetParams *chaincfg.Params `no-flag:"true"`
}

// DefaultConfig returns all default values for the Config struct.
func DefaultConfig() Config {
	return Config{
		ConfigFile:  DefaultConfigFile,
		Network:     defaultNetwork,
		DebugLevel:  defaultLogLevel,
		EntropyBits: defaultEntropyLen,
		LogConfig:   build.DefaultLogConfig(),
	}
}

// Versions returns the extended key versions of the configured network.
func (c *Config) Versions() hdkeychain.Versions {
	return hdkeychain.VersionsForNet(c.NetParams)
}

// Compress returns whether plain public keys are encoded compressed.
func (c *Config) Compress() bool {
	return !c.Uncompressed
}

// LoadConfig initializes and parses the config using a config file and
// command line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
func LoadConfig(args []string) (*Config, error) {
	// Pre-parse the command line options to pick up an alternative config
	// file.
	preCfg := DefaultConfig()
	if _, err := flags.ParseArgs(&preCfg, args); err != nil {
		return nil, err
	}

	// Next, load any additional configuration options from the file.
	var configFileError error
	cfg := preCfg
	configFilePath := CleanAndExpandPath(preCfg.ConfigFile)
	if err := flags.IniParse(configFilePath, &cfg); err != nil {
		// If it's a parsing related error, then we'll return
		// immediately, otherwise we can proceed as possibly the config
		// file doesn't exist which is OK.
		if _, ok := err.(*flags.IniError); ok {
			return nil, err
		}

		configFileError = err
	}

	// Finally, parse the remaining command line options again to ensure
	// they take precedence.
	if _, err := flags.ParseArgs(&cfg, args); err != nil {
		return nil, err
	}

	// Make sure everything we just loaded makes sense.
	cleanCfg, err := ValidateConfig(cfg)
	if err != nil {
		return nil, err
	}

	// Warn about missing config file only after all other configuration is
	// done. Note this should go directly before the return.
	if configFileError != nil && configFilePath != DefaultConfigFile {
		log.Warnf("%v", configFileError)
	}

	return cleanCfg, nil
}

// ValidateConfig check the given configuration to be sane. The cleaned up
// config is returned on success.
func ValidateConfig(cfg Config) (*Config, error) {
	net, ok := hdkeychain.NetForName(cfg.Network)
	if !ok {
		return nil, fmt.Errorf("unknown network %q", cfg.Network)
	}
	cfg.NetParams = net

	if cfg.EntropyBits%32 != 0 || cfg.EntropyBits < 128 ||
		cfg.EntropyBits > 256 {

		return nil, fmt.Errorf("entropybits must be a multiple of 32 "+
			"between 128 and 256, got %d", cfg.EntropyBits)
	}

	return &cfg, nil
}

// CleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
// This function is taken from https://github.com/btcsuite/btcd
func CleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}

	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		var homeDir string
		u, err := user.Current()
		if err == nil {
			homeDir = u.HomeDir
		} else {
			homeDir = os.Getenv("HOME")
		}

		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but the variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}
