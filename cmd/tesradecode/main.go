// Command tesradecode decodes transactions, scripts, stack items and
// addresses from hex and prints them as JSON. It can also build, sign
// and submit native transfers.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"

	"github.com/user00000001/tesrasdk-go/log"
	"github.com/user00000001/tesrasdk-go/metrics"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "[tesradecode] %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "tesradecode",
		Usage: "decode and build Tesra transactions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "loglevel",
				Value: "off",
				Usage: "log level for library output on stderr (trace, debug, info, warn, error, off)",
			},
			&cli.BoolFlag{
				Name:  "dump",
				Usage: "print the decoded Go values instead of JSON",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "print metric counters on stderr before exiting",
			},
		},
		Before: func(c *cli.Context) error {
			return log.Setup(c.App.ErrWriter, c.String("loglevel"))
		},
		After: func(c *cli.Context) error {
			if !c.Bool("stats") {
				return nil
			}
			return writeJSON(c.App.ErrWriter, metrics.Snapshot())
		},
		Commands: []*cli.Command{
			txCommand,
			scriptCommand,
			itemCommand,
			addressCommand,
			argsCommand,
			transferCommand,
			balanceCommand,
		},
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Reader:    os.Stdin,
	}
}

// input returns the first argument, or all of stdin when there is
// none, with surrounding space removed.
func input(c *cli.Context) (string, error) {
	if c.Args().Present() {
		return strings.TrimSpace(c.Args().First()), nil
	}
	b, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func output(c *cli.Context, decoded, view interface{}) error {
	if c.Bool("dump") {
		spew.Fdump(c.App.Writer, decoded)
		return nil
	}
	return writeJSON(c.App.Writer, view)
}

func writeJSON(w io.Writer, v interface{}) error {
	j, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(j))
	return err
}
