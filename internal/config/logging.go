package config

import (
	"fmt"
	"os"

	"github.com/BrugadaSyndrome/bslogger"
)

const (
	VerbosityMinimal = "minimal"
	VerbosityNormal  = "normal"
	VerbosityAll     = "all"
)

type LogConfig struct {
	Verbosity string `yaml:"verbosity"`
	File      string `yaml:"file"`
}

func (l LogConfig) validate() error {
	switch l.Verbosity {
	case VerbosityMinimal, VerbosityNormal, VerbosityAll:
		return nil
	}
	return fmt.Errorf("%w: log verbosity %q", ErrInvalid, l.Verbosity)
}

// OpenFile opens the mirror log file, or returns nil when none is set.
func (l LogConfig) OpenFile() (*os.File, error) {
	if l.File == "" {
		return nil, nil
	}
	return os.OpenFile(l.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func (l LogConfig) NewLogger(name string, file *os.File) *bslogger.Logger {
	var lg bslogger.Logger
	switch l.Verbosity {
	case VerbosityMinimal:
		lg = bslogger.NewLogger(name, bslogger.Minimal, file)
	case VerbosityAll:
		lg = bslogger.NewLogger(name, bslogger.All, file)
	default:
		lg = bslogger.NewLogger(name, bslogger.Normal, file)
	}
	return &lg
}
