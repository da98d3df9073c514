// Package clitest builds command contexts backed by a temporary directory.
package clitest

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/opjerryisgood-cloud/water-app/internal/cli"
	"github.com/opjerryisgood-cloud/water-app/internal/config"
	"github.com/opjerryisgood-cloud/water-app/internal/constants"
	"github.com/opjerryisgood-cloud/water-app/internal/storage"
	"github.com/opjerryisgood-cloud/water-app/internal/tracker"
)

// Date is the day every test context believes it is.
const Date = "2024-01-01"

// NewContext returns a file-backed context, its output buffer and the data file path.
func NewContext(t *testing.T, input string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dataDir := t.TempDir()
	opts := storage.Options{
		DataFile: filepath.Join(dataDir, constants.DataFileName),
	}

	now, err := time.ParseInLocation("2006-01-02 15:04", Date+" 09:30", time.Local)
	if err != nil {
		t.Fatal(err)
	}

	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Config:         config.NewDefaultConfig(),
		ConfigPath:     filepath.Join(dataDir, "config.yaml"),
		DataDir:        dataDir,
		StorageOptions: opts,
		Store:          storage.Open(constants.BackendFileJSON, opts),
		In:             strings.NewReader(input),
		Out:            out,
		TrackerOptions: []tracker.Option{tracker.WithClock(func() time.Time { return now })},
	}
	return ctx, out
}

// Reopen returns a fresh context over the same data directory, the way a
// second invocation of the binary would see it.
func Reopen(t *testing.T, ctx *cli.Context, input string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	next := &cli.Context{
		Config:         ctx.Config,
		ConfigPath:     ctx.ConfigPath,
		DataDir:        ctx.DataDir,
		StorageOptions: ctx.StorageOptions,
		Store:          storage.Open(constants.BackendFileJSON, ctx.StorageOptions),
		In:             strings.NewReader(input),
		Out:            out,
		TrackerOptions: ctx.TrackerOptions,
	}
	return next, out
}
