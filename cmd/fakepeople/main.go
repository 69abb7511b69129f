package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/fakepeople/internal/cli"
	"github.com/zarlcorp/fakepeople/internal/fixture"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("fakepeople"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	cmd := "generate"
	var args []string
	if len(os.Args) > 1 {
		cmd, args = os.Args[1], os.Args[2:]
	}

	if err := run(ctx, cmd, args); err != nil {
		slog.Error(cmd, "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "generate":
		return cli.CmdGenerate(fixture.DefaultPath)
	case "check":
		return cli.CmdCheck(os.Stdout, cli.CheckPath(args), cli.IsTerminal())
	case "record":
		return cli.CmdRecord(os.Stdout, args)
	case "serve":
		return cli.CmdServe(ctx, args, os.Stderr)
	case "version":
		fmt.Printf("fakepeople %s\n", version)
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
