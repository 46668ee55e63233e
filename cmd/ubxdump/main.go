// Command ubxdump exercises the ubx decoder and generator against a file,
// for manual inspection and smoke testing. Grounded on de-bkg-gognss's
// cmd/rnxgo for the urfave/cli/v2 command shape.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"ubxcore/rxconfig"
	"ubxcore/ubx"
)

func main() {
	app := &cli.App{
		Name:  "ubxdump",
		Usage: "decode and generate u-blox UBX protocol frames",
		Commands: []*cli.Command{
			decodeCommand(),
			genCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func decodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "decode a UBX binary log file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "opt", Usage: "receiver option string, e.g. \"-EPHALL -STD_SLIP=10\""},
			&cli.BoolFlag{Name: "verbose", Usage: "log every message type seen"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("decode requires exactly one file argument", 1)
			}
			cfg := rxconfig.Parse(c.String("opt"))
			if err := rxconfig.Validate(cfg); err != nil {
				return cli.Exit(fmt.Sprintf("invalid options: %v", err), 1)
			}

			logger := logrus.New()
			if c.Bool("verbose") {
				logger.SetLevel(logrus.DebugLevel)
			}
			metrics := ubx.NewMetrics(prometheus.NewRegistry())
			dec := ubx.NewDecoder(cfg, logger, metrics)
			dec.EnableMsgType(c.Bool("verbose"))

			f, err := os.Open(c.Args().First())
			if err != nil {
				return cli.Exit(err, 1)
			}
			defer f.Close()

			var nFrames, nObs, nEph, nErr int
			for {
				st := dec.ReadFile(f)
				switch st {
				case ubx.StatusEOF:
					logger.WithFields(logrus.Fields{
						"frames":       nFrames,
						"observations": nObs,
						"ephemerides":  nEph,
						"errors":       nErr,
					}).Info("decode complete")
					return nil
				case ubx.StatusError:
					nErr++
					nFrames++
				case ubx.StatusObs:
					nObs++
					nFrames++
				case ubx.StatusEph, ubx.StatusSBAS, ubx.StatusIonUtc:
					nEph++
					nFrames++
				case ubx.StatusNone:
					nFrames++
				}
				if c.Bool("verbose") && dec.MsgType() != "" {
					logger.Debug(dec.MsgType())
				}
			}
		},
	}
}

func genCommand() *cli.Command {
	return &cli.Command{
		Name:      "gen",
		Usage:     "generate a UBX CFG-* frame from a command string",
		ArgsUsage: "\"<CFG-... text command>\"",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("gen requires exactly one command-string argument", 1)
			}
			dec := ubx.NewDecoder(rxconfig.Default(), nil, nil)
			buf := make([]byte, 1024)
			n := dec.Generate(c.Args().First(), buf)
			if n == 0 {
				return cli.Exit("could not generate frame: unknown or malformed command", 1)
			}
			fmt.Println(hex.EncodeToString(buf[:n]))
			return nil
		},
	}
}
