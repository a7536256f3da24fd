package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var L *zap.Logger

func init() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	var err error
	L, err = config.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
}

// SetLevel 只能調高等級(warn/error)，無法辨識或低於 info 時維持 info
func SetLevel(level string) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil || lvl <= zapcore.InfoLevel {
		return
	}
	L = L.WithOptions(zap.IncreaseLevel(lvl))
}

// WithComponent 回傳帶有 component 欄位的 logger，供 MQ、handler、service、worker 使用
func WithComponent(component string) *zap.Logger {
	return L.With(zap.String("component", component))
}
