package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/wilhasse/go-sqlitehdr/internal/crosscheck"
)

// VerifyCmd checks the decoded header against the SQLite engine.
type VerifyCmd struct {
	Path string `arg:"" help:"Path to SQLite database file" type:"existingfile"`
}

func (c *VerifyCmd) Run(rc *runContext) error {
	h, _, err := rc.readHeader(c.Path)
	if err != nil {
		return err
	}
	db, err := crosscheck.OpenReadOnly(c.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	mismatches, err := crosscheck.Compare(context.Background(), db, h)
	if err != nil {
		return err
	}
	for _, m := range mismatches {
		rc.log.WithField("field", m.Field).Warn(m.String())
		fmt.Fprintln(rc.out, m)
	}
	if len(mismatches) > 0 {
		return errors.Errorf("%d field(s) differ from the engine", len(mismatches))
	}
	if h.WAL() {
		fmt.Fprintf(rc.out, "%s: wal mode, not compared: %s\n", c.Path, strings.Join(crosscheck.WALSkipped, ", "))
	}
	fmt.Fprintf(rc.out, "%s: header matches engine\n", c.Path)
	return nil
}
