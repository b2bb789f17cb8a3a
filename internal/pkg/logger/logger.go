package logger

import (
	"github.com/mountain-explorer/internal/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New создает zap логгер: json для продакшена, цветной console для уровня debug
func New(level string) (*zap.Logger, error) {
	return buildConfig(level).Build()
}

func buildConfig(level string) zap.Config {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if zapLevel == zapcore.DebugLevel {
		config.Development = true
		config.Encoding = "console"
		config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return config
}

// Coordinate - поле лога для точки
func Coordinate(key string, c domain.Coordinate) zap.Field {
	return zap.Float64s(key, []float64{c.Lat, c.Lon})
}
