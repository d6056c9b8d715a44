// Package xlog builds the zap loggers used by the vectrace tool.
package xlog

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	timeKey         = "time"
	EncodingJson    = "json"
	EncodingConsole = "console"
	FileMode        = "file"
	StderrMode      = "stderr"
)

var (
	levels = map[string]zapcore.Level{
		"debug": zap.DebugLevel,
		"info":  zap.InfoLevel,
		"warn":  zap.WarnLevel,
		"error": zap.ErrorLevel,
	}

	current = zap.NewNop()
	mutex   sync.RWMutex
)

// Conf selects where and how logs are written.
type Conf struct {
	ServiceName string `yaml:"service"`
	// directory of the log file
	Path string `yaml:"path"`
	// log file name
	Filename string `yaml:"filename"`
	// file or stderr
	Mode string `yaml:"mode"`
	// json or console
	Encoding   string `yaml:"encoding"`
	TimeFormat string `yaml:"time_format"`
	// debug, info, warn, error
	Level    string `yaml:"level"`
	Compress bool   `yaml:"compress"`
	KeepDays int    `yaml:"keep_days"`
	MaxSize  int    `yaml:"max_size"`
}

// Load replaces the process logger with one built from conf.
func Load(conf Conf) *zap.Logger {
	l := New(conf)

	mutex.Lock()
	defer mutex.Unlock()
	current = l
	return l
}

// Write returns the process logger. It is a no-op logger until Load.
func Write() *zap.Logger {
	mutex.RLock()
	defer mutex.RUnlock()
	return current
}

// New builds a logger without touching the process logger.
func New(conf Conf) *zap.Logger {
	defaultConf(&conf)

	opts := []zap.Option{zap.AddStacktrace(zap.ErrorLevel)}
	if len(conf.ServiceName) > 0 {
		opts = append(opts, zap.Fields(zap.String("service", conf.ServiceName)))
	}

	var write zapcore.WriteSyncer
	switch conf.Mode {
	case FileMode:
		write = rotating(conf)
	default:
		write = zapcore.Lock(os.Stderr)
	}

	level, ok := levels[conf.Level]
	if !ok {
		level = zap.InfoLevel
	}
	return zap.New(zapcore.NewCore(encoder(conf), write, level), opts...)
}

func rotating(conf Conf) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename: filepath.Join(conf.Path, conf.Filename),
		Compress: conf.Compress,
		MaxAge:   conf.KeepDays,
		MaxSize:  conf.MaxSize,
	})
}

func encoder(conf Conf) zapcore.Encoder {
	econf := zap.NewProductionEncoderConfig()
	econf.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(conf.TimeFormat))
	}
	econf.EncodeLevel = zapcore.LowercaseLevelEncoder
	econf.TimeKey = timeKey
	if conf.Encoding == EncodingJson {
		return zapcore.NewJSONEncoder(econf)
	}
	if conf.Mode != FileMode {
		econf.EncodeLevel = zapcore.LowercaseColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(econf)
}

func defaultConf(conf *Conf) {
	if len(conf.Path) == 0 {
		conf.Path = "logs"
	}
	if len(conf.Filename) == 0 {
		conf.Filename = "vectrace.log"
	}
	if len(conf.Mode) == 0 {
		conf.Mode = StderrMode
	}
	if len(conf.Level) == 0 {
		conf.Level = "info"
	}
	if len(conf.Encoding) == 0 {
		conf.Encoding = EncodingConsole
	}
	if len(conf.TimeFormat) == 0 {
		conf.TimeFormat = "2006-01-02 15:04:05"
	}
	if conf.MaxSize <= 0 {
		conf.MaxSize = 16
	}
}
