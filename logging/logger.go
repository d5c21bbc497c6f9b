package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the runner's own log, for configuration and startup diagnostics. Output that
// belongs to a test goes through the test logger instead.
type Logger struct {
	*zap.Logger
}

type LoggerOption struct {
	LogLevel string
	Core     zapcore.Core
}

type Option func(o *LoggerOption)

func WithLogLevel(logLevel string) Option {
	return func(o *LoggerOption) {
		o.LogLevel = logLevel
	}
}

// WithCore replaces the default encoder and output.
func WithCore(core zapcore.Core) Option {
	return func(o *LoggerOption) {
		o.Core = core
	}
}

func NewLogger(opts ...Option) (*Logger, error) {
	option := &LoggerOption{}
	for _, opt := range opts {
		opt(option)
	}

	if option.Core != nil {
		return &Logger{Logger: zap.New(option.Core)}, nil
	}

	logger, err := makeLogger(option.LogLevel)
	if err != nil {
		return nil, err
	}
	return &Logger{Logger: logger}, nil
}

func ParseLevel(logLevel string) zapcore.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func makeLogger(logLevel string) (*zap.Logger, error) {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(ParseLevel(logLevel))
	zapConfig.DisableStacktrace = true
	zapConfig.DisableCaller = true
	return zapConfig.Build()
}

// Printf writes a debug-level message, so that the runner log can stand in wherever a
// framework.Logger is expected.
func (l *Logger) Printf(message string, args ...interface{}) {
	l.Debug(fmt.Sprintf(message, args...))
}
