package logger

import (
	"go.uber.org/zap"
)

// Log is a no-op logger until Init is called, so packages and tests can
// log without any wiring.
var Log = zap.NewNop().Sugar()

func Init() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	Log = logger.Sugar()
}
