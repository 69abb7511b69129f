// Package config loads server settings from a .env file, the environment
// and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// defaults
const (
	DefaultHost     = "127.0.0.1"
	DefaultPort     = 3000
	DefaultLogLevel = "info"
)

// extra levels beyond slog's four
const (
	LevelTrace = slog.Level(-8)
	LevelOff   = slog.Level(1 << 10)
)

// ErrUnknownLevel is returned by ParseLevel for unrecognized level names.
var ErrUnknownLevel = errors.New("unknown log level")

// Config holds the settings for the HTTP server.
type Config struct {
	Host     string
	Port     int
	LogLevel slog.Level

	// UnknownLevel holds a log level name that was not recognized and
	// replaced by info. Empty when the level parsed cleanly.
	UnknownLevel string
}

// Addr returns host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// LoadDotEnv loads variables from path into the process environment.
// Variables already set are left alone. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Parse builds a Config. getenv supplies the defaults (PORT, HOST,
// LOG_LEVEL); args are flags that override them.
func Parse(args []string, getenv func(string) string, output io.Writer) (Config, error) {
	host := envOr(getenv, "HOST", DefaultHost)

	port := DefaultPort
	if v := getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: PORT %q: %w", v, err)
		}
		port = p
	}

	level := envOr(getenv, "LOG_LEVEL", DefaultLogLevel)

	fset := flag.NewFlagSet("serve", flag.ContinueOnError)
	fset.SetOutput(output)
	fset.StringVar(&host, "host", host, "the host to bind the server to (env HOST)")
	fset.IntVar(&port, "port", port, "the port the server will listen on (env PORT)")
	fset.StringVar(&level, "log-level", level, "trace, debug, info, warn, error or off (env LOG_LEVEL)")
	if err := fset.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if fset.NArg() > 0 {
		return Config{}, fmt.Errorf("parse config: unexpected arguments %v", fset.Args())
	}

	if port < 1 || port > 65535 {
		return Config{}, fmt.Errorf("parse config: port %d out of range", port)
	}
	if host == "" {
		return Config{}, errors.New("parse config: empty host")
	}

	cfg := Config{Host: host, Port: port}
	lvl, err := ParseLevel(level)
	if err != nil {
		cfg.LogLevel = slog.LevelInfo
		cfg.UnknownLevel = level
	} else {
		cfg.LogLevel = lvl
	}

	return cfg, nil
}

// ParseLevel maps a level name to a slog level. Names are case-insensitive.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "off":
		return LevelOff, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// NewLogger returns a text logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       c.LogLevel,
		ReplaceAttr: renameTrace,
	}))
}

// renameTrace prints LevelTrace as TRACE instead of DEBUG-4.
func renameTrace(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}
	return a
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
