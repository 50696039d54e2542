// Package logging builds the console logger used by the CLI.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Console levels.
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// ErrInvalidLevel indicates an unknown log level name.
var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel validates a level name. Empty means normal.
func ParseLevel(s string) (string, error) {
	switch l := strings.ToLower(strings.TrimSpace(s)); l {
	case "":
		return LevelNormal, nil
	case LevelNone, LevelNormal, LevelDebug:
		return l, nil
	}
	return "", fmt.Errorf("%w: %q (must be none, normal or debug)", ErrInvalidLevel, s)
}

// New returns a console logger. Entries below error go to out, errors and
// above go to errOut. Level "none" discards everything.
func New(level string, out, errOut io.Writer) (*zap.Logger, error) {
	level, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if level == LevelNone {
		return zap.NewNop(), nil
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder

	lowest := zapcore.InfoLevel
	if level == LevelDebug {
		lowest = zapcore.DebugLevel
	}

	low := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.AddSync(out),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lowest <= lvl && lvl < zapcore.ErrorLevel
		}))
	high := zapcore.NewCore(newEncoder(ec), zapcore.AddSync(errOut),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.ErrorLevel
		}))

	return zap.New(zapcore.NewTee(low, high)), nil
}

// consoleEnc prints error fields by message only, hiding verbose stacks.
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
	out := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			if e, ok := f.Interface.(error); ok {
				f.Interface = errors.New(e.Error())
			}
		}
		out = append(out, f)
	}
	return c.Encoder.EncodeEntry(ent, out)
}
