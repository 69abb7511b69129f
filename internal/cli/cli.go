// Package cli implements fakepeople's command-line subcommands.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/fakepeople/internal/config"
	"github.com/zarlcorp/fakepeople/internal/fixture"
	"github.com/zarlcorp/fakepeople/internal/person"
	"github.com/zarlcorp/fakepeople/internal/server"
)

// ErrInvalidFixture is returned by CmdCheck when the fixture has problems.
var ErrInvalidFixture = errors.New("invalid fixture")

// CmdGenerate writes a fresh fixture to path. It prints nothing.
func CmdGenerate(path string) error {
	return fixture.Generate(path, person.New(), fixture.RecordCount)
}

// CmdRecord prints one generated record, as JSON with --json.
func CmdRecord(w io.Writer, args []string) error {
	r := person.New().Generate()

	if hasFlag(args, "--json") {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}

	fmt.Fprintf(w, "  id:        %s\n", r.ID)
	fmt.Fprintf(w, "  email:     %s\n", r.Email)
	fmt.Fprintf(w, "  name:      %s\n", r.Name)
	fmt.Fprintf(w, "  is_parent: %t\n", r.IsParent)
	return nil
}

// CmdCheck validates the fixture at path and prints a report to w.
// It returns ErrInvalidFixture when the fixture has problems.
func CmdCheck(w io.Writer, path string, styled bool) error {
	fsys := zfilesystem.NewOSFileSystem(filepath.Dir(path))
	rep, err := fixture.Check(fsys, filepath.Base(path))
	if err != nil {
		return err
	}

	printReport(w, path, rep, newStyles(styled))

	if !rep.OK() {
		return fmt.Errorf("%s: %w", path, ErrInvalidFixture)
	}
	return nil
}

// CmdServe runs the HTTP API until ctx is cancelled. Settings come from
// .env, the environment and args.
func CmdServe(ctx context.Context, args []string, stderr io.Writer) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	cfg, err := config.Parse(args, os.Getenv, stderr)
	if err != nil {
		return err
	}

	log := cfg.NewLogger(stderr)
	if cfg.UnknownLevel != "" {
		log.Warn("unknown log level, defaulting to info", "level", cfg.UnknownLevel)
	}

	return server.New(cfg.Addr(), log).Run(ctx)
}

// CheckPath returns the fixture path named in args, or the default.
func CheckPath(args []string) string {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return fixture.DefaultPath
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if strings.EqualFold(a, flag) {
			return true
		}
	}
	return false
}
