// Package logging builds the console logger used by the command line tool.
//
// Entries below error level go to stdout, errors go to stderr. The level
// names match the config file: "none" discards everything, "normal" logs
// from info up, "debug" logs everything.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Level names.
const (
	None   = "none"
	Normal = "normal"
	Debug  = "debug"
)

// ErrUnknownLevel indicates a level name outside None, Normal and Debug.
var ErrUnknownLevel = errors.New("unknown log level")

// New returns a console logger for level writing to the given streams.
// Colored level names are used only when a stream is a terminal.
func New(level string, stdout, stderr io.Writer) (*zap.Logger, error) {
	var minLevel zapcore.Level
	switch strings.ToLower(level) {
	case "", Normal:
		minLevel = zapcore.InfoLevel
	case Debug:
		minLevel = zapcore.DebugLevel
	case None:
		return zap.NewNop(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}

	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return minLevel <= lvl && lvl < zapcore.ErrorLevel
	})
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	coreLP := zapcore.NewCore(newEncoder(encoderConfig(stdout)), zapcore.Lock(zapcore.AddSync(stdout)), lowPriority)
	coreHP := zapcore.NewCore(newEncoder(encoderConfig(stderr)), zapcore.Lock(zapcore.AddSync(stderr)), highPriority)

	return zap.New(zapcore.NewTee(coreHP, coreLP)), nil
}

func encoderConfig(w io.Writer) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if isTerminal(w) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return ec
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

// consoleEnc prints errors by message only; wrapped chains would otherwise
// add an "errorVerbose" field to every console line.
type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	newFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			if e, ok := f.Interface.(error); ok {
				f.Interface = errors.New(e.Error())
			}
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
