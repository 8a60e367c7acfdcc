package logger

import (
	"os"
	"path/filepath"

	"campus-im/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// log defaults to a nop so library code can log before InitLogger runs
// (and so tests never need a log file).
var log = zap.NewNop()

// InitLogger sets up the rotating JSON logger and installs it as the zap
// global.
func InitLogger(cfg config.LogConfig) *zap.Logger {
	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
		panic("create log directory: " + err.Error())
	}

	level := getLogLevel(cfg.Level)

	writer := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(writer),
		level,
	)

	log = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	zap.ReplaceGlobals(log)

	return log
}

func getLogLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// The package-level helpers run every field through the sanitizer so
// credentials and key material never reach the log file, whichever call
// site emitted them.

func Debug(msg string, fields ...zap.Field) {
	log.Debug(msg, sanitizeFields(fields)...)
}

func Info(msg string, fields ...zap.Field) {
	log.Info(msg, sanitizeFields(fields)...)
}

func Warn(msg string, fields ...zap.Field) {
	log.Warn(msg, sanitizeFields(fields)...)
}

func Error(msg string, fields ...zap.Field) {
	log.Error(msg, sanitizeFields(fields)...)
}

func Fatal(msg string, fields ...zap.Field) {
	log.Fatal(msg, sanitizeFields(fields)...)
}

// WithField returns a child logger carrying one sanitized field.
func WithField(key string, value interface{}) *zap.Logger {
	return log.With(sanitizeFields([]zap.Field{zap.Any(key, value)})...)
}

// WithFields returns a child logger carrying the sanitized field set.
func WithFields(fields map[string]interface{}) *zap.Logger {
	zapFields := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		zapFields = append(zapFields, zap.Any(key, value))
	}
	return log.With(sanitizeFields(zapFields)...)
}

// Sync flushes buffered entries to disk.
func Sync() error {
	return log.Sync()
}
