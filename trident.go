package main

import (
	"os"

	log "github.com/golang/glog"
	cli "github.com/urfave/cli/v2"
)

func init() {
	// -v is the glog verbosity here; keep the version flag on -V
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	app := &cli.App{
		Name:    app_name,
		Usage:   "cryptographic core utilities of the Trident RPC framework",
		Version: versionString(),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "v",
				Usage: "verbose log level",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "print error details and stacks",
			},
		},
		Before: context.initialize,
		Commands: []*cli.Command{
			digestCommand(),
			dhCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Flush()
		log.Exitln(err)
	}
	log.Flush()
}
