package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"sigh/interpreter-go/pkg/driver"
)

// newLogger writes to w. The console encoder with colored levels is used when
// w is a terminal or the manifest asks for it; JSON otherwise.
func newLogger(cfg driver.LogConfig, verbose bool, w io.Writer) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	format := cfg.Format
	if format == "" {
		format = driver.LogFormatJSON
		if isTerminal(w) {
			format = driver.LogFormatConsole
		}
	}

	var encoder zapcore.Encoder
	switch format {
	case driver.LogFormatConsole:
		encCfg := zap.NewDevelopmentEncoderConfig()
		if isTerminal(w) {
			encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		encoder = zapcore.NewConsoleEncoder(encCfg)
	default:
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core).With(zap.String("run_id", uuid.NewString())), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
