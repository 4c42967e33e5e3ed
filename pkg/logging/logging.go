package logging

import (
	"go.uber.org/zap"
)

// New builds the process logger. Development mode switches to the
// human-readable console encoder with debug level enabled.
func New(development bool) (*zap.SugaredLogger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
