// Package logging builds the process logger.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger writing to stderr, and also to a rotating file when file is set.
// format "json" selects the production encoder; anything else is human-readable console output.
func New(level, format, file string) (*zap.Logger, error) {
	return build(level, format, file, zapcore.Lock(os.Stderr))
}

func build(levelStr, format, file string, console zapcore.WriteSyncer) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if levelStr != "" {
		if err := level.UnmarshalText([]byte(levelStr)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", levelStr, err)
		}
	}

	var encCfg zapcore.EncoderConfig
	var enc zapcore.Encoder
	if format == "json" {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg = zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	cores := []zapcore.Core{zapcore.NewCore(enc, console, level)}
	if file != "" {
		// Files always get JSON so they can be shipped as-is.
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), fileWriter, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)), nil
}
