package utils

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger returns a production zap logger, or a development one when
// GAMEBOXD_DEV is set.
func NewLogger() *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if os.Getenv("GAMEBOXD_DEV") != "" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
