// Package logger provides structured logging using Zap.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.Mutex
	sugar *zap.SugaredLogger
	// file is the open log file, nil when logging to stderr.
	file *os.File
)

// Options selects the level and destination of the global logger.
type Options struct {
	// Level is a zap level name ("debug", "info", "warn", "error").
	// Empty means warn.
	Level string
	// File, when set, receives log output instead of stderr.
	File string
}

// Init replaces the global logger. Console encoding is used on stderr,
// JSON when writing to a file. A log file opened by an earlier Init is
// closed.
func Init(opts Options) error {
	level := zapcore.WarnLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return fmt.Errorf("log level %q: %w", opts.Level, err)
		}
	}

	var (
		ws  zapcore.WriteSyncer
		enc zapcore.Encoder
		out *os.File
	)
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
			return fmt.Errorf("creating log dir: %w", err)
		}
		//nolint:gosec // log path is configured by the local user
		f, err := os.OpenFile(opts.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		out = f
		ws = zapcore.AddSync(f)
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		ws = zapcore.Lock(os.Stderr)
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	base := zap.New(zapcore.NewCore(enc, ws, level))

	mu.Lock()
	defer mu.Unlock()
	release()
	sugar = base.Sugar()
	file = out
	return nil
}

// release flushes the current logger and closes its file. mu must be held.
func release() {
	if sugar != nil {
		_ = sugar.Sync()
	}
	if file != nil {
		_ = file.Close()
		file = nil
	}
}

// Get returns the global sugared logger.
// If Init has not been called, it logs warnings and above to stderr.
func Get() *zap.SugaredLogger {
	mu.Lock()
	s := sugar
	mu.Unlock()
	if s != nil {
		return s
	}
	if err := Init(Options{}); err != nil {
		return zap.NewNop().Sugar()
	}
	return Get()
}

// Set installs l as the global logger. Tests use it with zaptest/observer.
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	release()
	sugar = l.Sugar()
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if sugar != nil {
		_ = sugar.Sync()
	}
}

// Close flushes the logger and closes the log file, if any. Call this
// before application exit. A later Get falls back to stderr.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	release()
	sugar = nil
}
