// Package logger provides a centralized logging configuration for markwatch
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Global logger instance
	markwatchLogger *zap.Logger
	// Sugar logger for convenient logging
	sugar *zap.SugaredLogger
)

// LogConfig holds the logging configuration
type LogConfig struct {
	Level       string
	OutputPath  string
	MaxSize     int // megabytes
	MaxBackups  int
	MaxAge      int // days
	Compress    bool
	Development bool
	EnableJSON  bool
}

// DefaultConfig returns the default logging configuration
func DefaultConfig() *LogConfig {
	home, _ := os.UserHomeDir()
	return &LogConfig{
		Level:      "info",
		OutputPath: filepath.Join(home, ".markwatch", "logs", "markwatch.log"),
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	}
}

// Initialize sets up the global logger with the given configuration
func Initialize(cfg *LogConfig) error {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if cfg.EnableJSON {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		if cfg.Development {
			encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	logDir := filepath.Dir(cfg.OutputPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.OutputPath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	writers := []zapcore.WriteSyncer{zapcore.AddSync(fileWriter)}
	if cfg.Development {
		writers = append(writers, zapcore.AddSync(os.Stderr))
	}

	core := zapcore.NewCore(
		encoder,
		zapcore.NewMultiWriteSyncer(writers...),
		zap.NewAtomicLevelAt(level),
	)

	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	}
	if cfg.Development {
		opts = append(opts, zap.Development())
	}

	markwatchLogger = zap.New(core, opts...)
	sugar = markwatchLogger.Sugar()

	zap.ReplaceGlobals(markwatchLogger)

	return nil
}

// Get returns the global logger instance
func Get() *zap.Logger {
	if markwatchLogger == nil {
		Initialize(DefaultConfig())
	}
	return markwatchLogger
}

// GetSugar returns the sugared logger for convenient logging
func GetSugar() *zap.SugaredLogger {
	if sugar == nil {
		Get()
	}
	return sugar
}

// Sync flushes any buffered log entries
func Sync() error {
	if markwatchLogger != nil {
		return markwatchLogger.Sync()
	}
	return nil
}
