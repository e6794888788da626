package dispatch

import (
	"go.uber.org/zap"
)

type Logger interface {
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

// NewZapLogger wraps an application logger, tagging lines with the "dispatch" name.
func NewZapLogger(logger *zap.Logger) Logger {
	return logger.Named("dispatch").Sugar()
}

func NewStdLogger() (Logger, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return NewZapLogger(logger), nil
}
