package main

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// newLogger returns a development logger at debug level when debug is set,
// otherwise a production JSON logger at info level.
func newLogger(debug bool) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, errors.Wrap(err, "create logger")
	}
	return logger, nil
}
