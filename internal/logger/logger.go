package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level is the logger verbosity level.
type Level = zapcore.Level

var (
	atomicLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	log         = newConsoleLogger()
)

func newConsoleLogger() *zap.SugaredLogger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		atomicLevel,
	)
	return zap.New(core).Sugar()
}

// ParseLevel parses a level name such as "debug" or "warn".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "fatal", "panic":
		return zapcore.FatalLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level: %q", s)
	}
}

// SetLevel changes the active verbosity for all loggers.
func SetLevel(level Level) {
	atomicLevel.SetLevel(level)
}

// EnableFile mirrors log output into a rotated file in addition to stderr.
func EnableFile(path string) {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleEnc := zap.NewDevelopmentEncoderConfig()
	consoleEnc.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEnc), zapcore.Lock(os.Stderr), atomicLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotator), atomicLevel),
	)
	log = zap.New(core).Sugar()
}

func Debug(format string, args ...any) { log.Debugf(format, args...) }
func Info(format string, args ...any)  { log.Infof(format, args...) }
func Warn(format string, args ...any)  { log.Warnf(format, args...) }
func Error(format string, args ...any) { log.Errorf(format, args...) }

// Sync flushes buffered log entries.
func Sync() {
	_ = log.Sync()
}
