// Package nodelog provides the process-wide structured logger used by every
// other internal package. It is seeded once by cmd/meridian's root command;
// until then it defaults to a development logger so library code and tests
// never observe a nil logger.
package nodelog

import "go.uber.org/zap"

var global = mustDevelopment()

func mustDevelopment() *zap.SugaredLogger {
	l, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return l.Sugar()
}

// Set replaces the package-wide logger. Called once from cmd/meridian after
// loading the config, whose log level comes from the config file or the
// MERIDIAN_LOG_LEVEL environment variable.
func Set(l *zap.SugaredLogger) {
	global = l
}

// L returns the current process-wide logger.
func L() *zap.SugaredLogger {
	return global
}

// New builds a SugaredLogger at the given level ("debug", "info", "warn",
// "error"), production-formatted (JSON) when json is true, console-formatted
// otherwise.
func New(level string, json bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if json {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
