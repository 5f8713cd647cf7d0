package logger

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar = zap.NewNop().Sugar()

func init() {
	if l, err := New("info", "console"); err == nil {
		sugar = l.Sugar()
	}
}

// New builds a zap logger. level is one of debug, info, warn, error; format is json or console.
func New(level, format string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	var config zap.Config
	if format == "json" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}
	} else {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	return config.Build(zap.AddCallerSkip(1))
}

// Setup replaces the package logger.
func Setup(level, format string) error {
	l, err := New(level, format)
	if err != nil {
		return err
	}
	sugar = l.Sugar()
	return nil
}

// Use installs an existing logger, mostly zap.NewNop() in tests.
func Use(l *zap.Logger) {
	sugar = l.Sugar()
}

func Sync() {
	_ = sugar.Sync()
}

func Info(format string, v ...interface{}) {
	sugar.Infof(format, v...)
}

func Error(format string, v ...interface{}) {
	sugar.Errorf(format, v...)
}

func Debug(format string, v ...interface{}) {
	if os.Getenv("ENVIRONMENT") == "development" {
		sugar.Debugf(format, v...)
	}
}

func Warn(format string, v ...interface{}) {
	sugar.Warnf(format, v...)
}

// WithContext prefixes a message with the caller location and an optional context value.
func WithContext(ctx interface{}, format string, v ...interface{}) string {
	_, file, line, _ := runtime.Caller(1)
	contextStr := fmt.Sprintf("%v:%d", file, line)
	if ctx != nil {
		contextStr = fmt.Sprintf("%v - %v", contextStr, ctx)
	}
	return fmt.Sprintf("[%s] %s", contextStr, fmt.Sprintf(format, v...))
}

// LogWorkflowError records a failed workflow operation without failing the caller.
func LogWorkflowError(operation, entityID string, err error) {
	Warn("Workflow error: operation=%s, entityID=%s, error=%v", operation, entityID, err)
}
