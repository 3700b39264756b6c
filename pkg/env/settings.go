package env

import (
	"fmt"
	"os"
	"strings"

	"digital.vasic.microtest/pkg/bank"
	"digital.vasic.microtest/pkg/logging"
	"digital.vasic.microtest/pkg/runner"
)

// Variables read by FromLoader.
const (
	LogLevelVar  = "MICROTEST_LOG_LEVEL"
	LogFormatVar = "MICROTEST_LOG_FORMAT"
	LogFileVar   = "MICROTEST_LOG_FILE"
	StrictVar    = "MICROTEST_STRICT"
	PlanDirVar   = "MICROTEST_PLAN_DIR"
)

// Settings are the environment-driven knobs of a test run.
type Settings struct {
	LogLevel  logging.LogLevel
	LogFormat string // "console" or "json"
	LogFile   string // JSON copy of the log, optional
	Strict    bool
	PlanDir   string
}

// FromLoader reads Settings through l.
func FromLoader(l Loader) Settings {
	return Settings{
		LogLevel:  logging.ParseLevel(l.GetWithDefault(LogLevelVar, "info")),
		LogFormat: strings.ToLower(l.GetWithDefault(LogFormatVar, "console")),
		LogFile:   l.Get(LogFileVar),
		Strict:    l.GetBool(StrictVar, false),
		PlanDir:   l.Get(PlanDirVar),
	}
}

// Logger builds the logger described by s. When LogFile is set
// entries are also appended to that file as JSON lines.
func (s Settings) Logger() (logging.Logger, error) {
	var base logging.Logger
	switch s.LogFormat {
	case "", "console":
		base = logging.NewConsoleLogger(s.LogLevel)
	case "json":
		base = logging.NewJSONLoggerTo(os.Stdout, s.LogLevel)
	default:
		return nil, fmt.Errorf("unknown log format %q", s.LogFormat)
	}

	if s.LogFile == "" {
		return base, nil
	}
	file, err := logging.NewJSONLogger(logging.LoggerConfig{
		OutputPath: s.LogFile,
		Level:      s.LogLevel,
	})
	if err != nil {
		return nil, err
	}
	return logging.NewMultiLogger(base, file), nil
}

// RunnerOptions returns the runner options matching s.
func (s Settings) RunnerOptions(logger logging.Logger) []runner.RunnerOption {
	opts := []runner.RunnerOption{runner.WithLogger(logger)}
	if s.Strict {
		opts = append(opts, runner.WithStrictLookup())
	}
	return opts
}

// Bank loads the run plans stored in PlanDir. An unset PlanDir
// yields an empty bank.
func (s Settings) Bank() (*bank.Bank, error) {
	b := bank.New()
	if s.PlanDir == "" {
		return b, nil
	}
	if err := b.LoadDir(s.PlanDir); err != nil {
		return nil, err
	}
	return b, nil
}
