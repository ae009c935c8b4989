package main

import (
	"fmt"
	"os"

	"github.com/lightningnetwork/lnhd/build"
	"github.com/lightningnetwork/lnhd/hdcfg"
	"github.com/urfave/cli"
)

// configKey is the app metadata key the loaded config is stored under.
const configKey = "config"

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[lnhd] %v\n", err)
	os.Exit(1)
}

// globalFlags are the global cli flags forwarded to the config loader.
var globalFlags = []string{"configfile", "network", "debuglevel", "uncompressed"}

// configArgs turns the global flags the user set into command line options
// understood by hdcfg.LoadConfig.
func configArgs(ctx *cli.Context) []string {
	var args []string
	for _, name := range globalFlags {
		if !ctx.IsSet(name) {
			continue
		}

		if name == "uncompressed" {
			if ctx.Bool(name) {
				args = append(args, "--uncompressed")
			}
			continue
		}

		args = append(args, fmt.Sprintf("--%s=%s", name, ctx.String(name)))
	}

	return args
}

// loadConfig is the Before hook of the app. It loads the config and sets up
// logging to stderr.
func loadConfig(ctx *cli.Context) error {
	cfg, err := hdcfg.LoadConfig(configArgs(ctx))
	if err != nil {
		return err
	}

	_, err = hdcfg.SetupLoggers(cfg, ctx.App.ErrWriter, hdcfg.SubLogger{
		Subsystem: Subsystem,
		UseLogger: UseLogger,
	})
	if err != nil {
		return err
	}

	ctx.App.Metadata[configKey] = cfg

	log.Debugf("Using network %v", cfg.NetParams.Name)

	return nil
}

// getConfig returns the config loaded by the Before hook.
func getConfig(ctx *cli.Context) *hdcfg.Config {
	return ctx.App.Metadata[configKey].(*hdcfg.Config)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "lnhd"
	app.Usage = "create, derive and inspect hierarchical deterministic keys"
	app.Version = build.Describe()
	app.ErrWriter = os.Stderr
	app.Metadata = make(map[string]interface{})
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:      "configfile, C",
			Value:     hdcfg.DefaultConfigFile,
			Usage:     "The path to the configuration file.",
			TakesFile: true,
		},
		cli.StringFlag{
			Name: "network, n",
			Usage: "The network extended keys are created for, e.g. " +
				"mainnet, testnet3, regtest, simnet or signet.",
			Value: "mainnet",
		},
		cli.StringFlag{
			Name: "debuglevel, d",
			Usage: "The logging level of all subsystems, or " +
				"<subsystem>=<level> pairs separated by commas.",
			Value: "info",
		},
		cli.BoolFlag{
			Name: "uncompressed",
			Usage: "Encode plain public keys in the 65 byte " +
				"uncompressed form.",
		},
	}
	app.Before = loadConfig
	app.Commands = []cli.Command{
		newMasterCommand,
		newMnemonicCommand,
		deriveCommand,
		neuterCommand,
		inspectCommand,
		pubKeyCommand,
		addressCommand,
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}
