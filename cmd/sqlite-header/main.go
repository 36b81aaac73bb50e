// Command sqlite-header decodes and inspects SQLite database file headers.
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	gosqlitehdr "github.com/wilhasse/go-sqlitehdr"
	"github.com/wilhasse/go-sqlitehdr/header"
)

// CLI defines the command-line interface for sqlite-header.
var CLI struct {
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" env:"SQLITEHDR_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" env:"SQLITEHDR_LOG_FORMAT" help:"Log format (text, json)"`

	Show   ShowCmd   `cmd:"" help:"Decode the header once and print it"`
	Watch  WatchCmd  `cmd:"" help:"Re-read the header periodically and print changes"`
	Verify VerifyCmd `cmd:"" help:"Compare the header with what the SQLite engine reports"`
}

// runContext is bound into every command's Run method.
type runContext struct {
	log *logrus.Logger
	out io.Writer
}

func newLogger(level, format string, w io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l, nil
}

// readHeader opens path and decodes its header.
func (rc *runContext) readHeader(path string) (*header.DatabaseHeader, header.Findings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open database")
	}
	defer f.Close()
	h, findings, err := gosqlitehdr.NewHeaderReader(f, header.WithLogger(rc.log)).ReadHeader()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "decode %s", path)
	}
	return h, findings, nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("sqlite-header"),
		kong.Description("SQLite database header decoder"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	log, err := newLogger(CLI.LogLevel, CLI.LogFormat, os.Stderr)
	ctx.FatalIfErrorf(err)
	err = ctx.Run(&runContext{log: log, out: os.Stdout})
	ctx.FatalIfErrorf(err)
}
