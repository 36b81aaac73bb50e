package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	gosqlitehdr "github.com/wilhasse/go-sqlitehdr"
	"github.com/wilhasse/go-sqlitehdr/header"
)

// WatchCmd polls the header of a live database.
type WatchCmd struct {
	Path     string        `arg:"" help:"Path to SQLite database file" type:"existingfile"`
	Interval time.Duration `default:"1s" env:"SQLITEHDR_INTERVAL" help:"Time between reads"`
	Count    int           `help:"Stop after this many reads (0 means until interrupted)"`
}

func (c *WatchCmd) Run(rc *runContext) error {
	if c.Interval <= 0 {
		return errors.Errorf("interval must be positive, got %s", c.Interval)
	}
	f, err := os.Open(c.Path)
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	defer f.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hr := gosqlitehdr.NewHeaderReader(f, header.WithLogger(rc.log))
	return watch(ctx, hr, c.Interval, c.Count, rc.log, func(h *header.DatabaseHeader) {
		printSnapshot(rc.out, time.Now(), h)
	})
}

type headerSource interface {
	ReadHeader() (*header.DatabaseHeader, header.Findings, error)
}

// snapshot holds the header fields a writer changes on commit.
type snapshot struct {
	changeCounter uint32
	schemaCookie  uint32
	dbSize        uint32
	freePages     uint32
}

func snapshotOf(h *header.DatabaseHeader) snapshot {
	s := snapshot{
		changeCounter: h.ChangeCounter,
		schemaCookie:  h.SchemaCookie,
		freePages:     h.FreePages(),
	}
	if h.DatabaseSize != nil {
		s.dbSize = *h.DatabaseSize
	}
	return s
}

// watch reads src every interval and calls emit for the first header and
// for each header whose snapshot differs from the previous one. Decode
// failures are logged and do not stop the loop. count > 0 bounds the
// number of reads.
func watch(ctx context.Context, src headerSource, interval time.Duration, count int, log logrus.FieldLogger, emit func(*header.DatabaseHeader)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var (
		last  snapshot
		seen  bool
		reads int
	)
	for {
		h, _, err := src.ReadHeader()
		reads++
		if err != nil {
			log.WithError(err).WithField("read", reads).Error("read header")
		} else if s := snapshotOf(h); !seen || s != last {
			emit(h)
			last, seen = s, true
		}
		if count > 0 && reads >= count {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func printSnapshot(w io.Writer, at time.Time, h *header.DatabaseHeader) {
	size := "NULL"
	if h.DatabaseSize != nil {
		size = fmt.Sprintf("%d", *h.DatabaseSize)
	}
	fmt.Fprintf(w, "%s change=%d schema=%d pages=%s free=%d\n",
		at.Format(time.RFC3339), h.ChangeCounter, h.SchemaCookie, size, h.FreePages())
}
