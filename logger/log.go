package logger

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu        sync.RWMutex
	level     = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	encoding  = "console"
	zapLogger *zap.SugaredLogger
)

func init() {
	if err := build(); err != nil {
		zapLogger = zap.NewNop().Sugar()
	}
}

// Init rebuilds the process logger. An empty lvl keeps the current level and an
// empty enc keeps the current encoding ("console" or "json").
func Init(lvl string, enc string) error {
	if lvl != "" {
		if err := setLevel(lvl); err != nil {
			return err
		}
	}
	if enc != "" {
		if enc != "console" && enc != "json" {
			return fmt.Errorf("unknown log encoding %q", enc)
		}
		mu.Lock()
		encoding = enc
		mu.Unlock()
	}
	return build()
}

func build() error {
	mu.Lock()
	defer mu.Unlock()
	var cfg zap.Config
	if encoding == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = level
	cfg.Encoding = encoding
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	zapLogger = l.Sugar()
	return nil
}

func sugar() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return zapLogger
}

func GetLevel() string {
	return level.Level().String()
}

// SetLevel changes the level of every logger handed out so far. Unknown levels
// fall back to debug, as an empty level always has.
func SetLevel(lvl string) {
	if err := setLevel(lvl); err != nil {
		level.SetLevel(zapcore.DebugLevel)
	}
	Debugf("Set logger level to %v", GetLevel())
}

func setLevel(lvl string) error {
	if lvl == "" {
		level.SetLevel(zapcore.DebugLevel)
		return nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(lvl))); err != nil {
		return err
	}
	level.SetLevel(l)
	return nil
}

// With returns a child logger carrying the given key/value pairs.
func With(keysAndValues ...interface{}) *zap.SugaredLogger {
	return sugar().Desugar().WithOptions(zap.AddCallerSkip(-1)).Sugar().With(keysAndValues...)
}

func Log(args ...interface{}) {
	switch GetLevel() {
	case "error":
		Error(args...)
	case "debug":
		Debug(args...)
	default:
		Info(args...)
	}
}

func Debug(args ...interface{}) {
	sugar().Debug(args...)
}

func Info(args ...interface{}) {
	sugar().Info(args...)
}

func Warn(args ...interface{}) {
	sugar().Warn(args...)
}

func Error(args ...interface{}) {
	sugar().Error(args...)
}

func Logf(template string, args ...interface{}) {
	switch GetLevel() {
	case "error":
		Errorf(template, args...)
	case "debug":
		Debugf(template, args...)
	default:
		Infof(template, args...)
	}
}

func Debugf(template string, args ...interface{}) {
	sugar().Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	sugar().Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	sugar().Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	sugar().Errorf(template, args...)
}
