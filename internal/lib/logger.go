package lib

import (
	"io"
	"os"

	"gitlab.com/TitanInd/crowdfund-client/internal/interfaces"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	timeLayout = "2006-01-02T15:04:05"

	logFileMaxSizeMB  = 50
	logFileMaxBackups = 5
	logFileMaxAgeDays = 14
)

type LoggerConfig struct {
	Level    string
	Color    bool
	IsProd   bool
	JSON     bool
	FilePath string // empty disables file logging
}

func NewLogger(cfg LoggerConfig) (*Logger, error) {
	log, err := newLogger(cfg, nil)
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: log.Sugar()}, nil
}

// NewLoggerMemory additionally writes every entry to wr, used to assert on log output
func NewLoggerMemory(cfg LoggerConfig, wr io.Writer) (*Logger, error) {
	log, err := newLogger(cfg, wr)
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: log.Sugar()}, nil
}

// NewTestLogger logs only to stdout
func NewTestLogger() *Logger {
	log, _ := newLogger(LoggerConfig{Level: "debug"}, nil)
	return &Logger{SugaredLogger: log.Sugar()}
}

func newLogger(cfg LoggerConfig, extraWriter io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var cores []zapcore.Core

	if cfg.FilePath != "" {
		cores = append(cores, newFileCore(zapcore.DebugLevel, cfg.IsProd, cfg.JSON, cfg.FilePath))
	}
	if extraWriter != nil {
		memoryCore := zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.AddSync(extraWriter), level)
		cores = append(cores, memoryCore)
	}

	cores = append(cores, newConsoleCore(level, cfg.Color, cfg.IsProd, cfg.JSON))

	var core zapcore.Core
	if len(cores) > 1 {
		core = zapcore.NewTee(cores...)
	} else {
		core = cores[0]
	}

	opts := []zap.Option{
		zap.AddStacktrace(zap.ErrorLevel),
	}
	if !cfg.IsProd {
		opts = append(opts, zap.Development())
	}

	return zap.New(core, opts...), nil
}

func newConsoleCore(level zapcore.Level, color bool, isProd bool, isJSON bool) zapcore.Core {
	encoderCfg := newEncoderCfg(isProd, color, isJSON)
	return zapcore.NewCore(newEncoder(encoderCfg, isJSON), zapcore.AddSync(os.Stdout), level)
}

func newEncoderCfg(isProd bool, color bool, isJSON bool) zapcore.EncoderConfig {
	var encoderCfg zapcore.EncoderConfig
	if isProd {
		encoderCfg = zap.NewProductionEncoderConfig()
	} else {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	}

	if color && !isJSON {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return encoderCfg
}

func newEncoder(encoderCfg zapcore.EncoderConfig, isJSON bool) zapcore.Encoder {
	if isJSON {
		return zapcore.NewJSONEncoder(encoderCfg)
	}
	return zapcore.NewConsoleEncoder(encoderCfg)
}

// newFileCore writes to a size-rotated file
func newFileCore(level zapcore.Level, isProd bool, isJSON bool, path string) zapcore.Core {
	encoderCfg := newEncoderCfg(isProd, false, isJSON)
	if !isJSON {
		encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	}

	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		MaxAge:     logFileMaxAgeDays,
	}

	return zapcore.NewCore(newEncoder(encoderCfg, isJSON), zapcore.AddSync(writer), level)
}

type Logger struct {
	*zap.SugaredLogger
}

func (l *Logger) Named(name string) interfaces.ILogger {
	return &Logger{l.SugaredLogger.Named(name)}
}

func (l *Logger) With(args ...interface{}) interfaces.ILogger {
	return &Logger{l.SugaredLogger.With(args...)}
}

var _ interfaces.ILogger = (*Logger)(nil)
