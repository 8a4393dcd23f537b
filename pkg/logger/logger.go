package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger keeps the printf-style API used across the services on top of zap.
type Logger struct {
	base  *zap.Logger
	info  func(template string, args ...interface{})
	warn  func(template string, args ...interface{})
	error func(template string, args ...interface{})
}

// New builds a logger from LOG_LEVEL and LOG_DEV.
func New() *Logger {
	return NewWithLevel(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_DEV") == "1")
}

func NewWithLevel(level string, dev bool) *Logger {
	lvl := levelFromString(level)

	var base *zap.Logger
	if dev {
		c := zap.NewDevelopmentConfig()
		c.Level = zap.NewAtomicLevelAt(lvl)
		built, err := c.Build()
		if err != nil {
			built = zap.NewNop()
		}
		base = built
	} else {
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(os.Stdout), lvl)
		base = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
	}

	return wrap(base)
}

func wrap(base *zap.Logger) *Logger {
	sugar := base.Sugar()
	return &Logger{
		base:  base,
		info:  sugar.Infof,
		warn:  sugar.Warnf,
		error: sugar.Errorf,
	}
}

func levelFromString(l string) zapcore.Level {
	switch l {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Named returns a child logger tagged with the given component name.
func (l *Logger) Named(name string) *Logger {
	return wrap(l.base.Named(name))
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.info(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.warn(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.error(format, args...)
}

func (l *Logger) Sync() error {
	return l.base.Sync()
}
