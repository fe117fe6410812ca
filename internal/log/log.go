package log

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// string representation that directly corresponds to zerolog.Level
type LogLevel string

const (
	DEBUG    LogLevel = "debug"
	INFO     LogLevel = "info"
	WARN     LogLevel = "warn"
	ERROR    LogLevel = "error"
	DISABLED LogLevel = "disabled"
	TRACE    LogLevel = "trace"
)

var Levels = [6]LogLevel{DEBUG, INFO, WARN, ERROR, DISABLED, TRACE}
var LogFile *os.File

func (ll LogLevel) String() string {
	return string(ll)
}

// Set implements pflag.Value so --log-level validates its argument.
func (ll *LogLevel) Set(v string) error {
	if index := slices.Index(Levels[:], LogLevel(v)); index >= 0 {
		*ll = LogLevel(v)
		return nil
	}
	return fmt.Errorf("must be one of %v", Levels)
}

func (ll LogLevel) Type() string {
	return "LogLevel"
}

// Init sets up the global zerolog logger with a level-filtered stderr
// writer, plus a second writer appending to logPath when one is given.
func Init(logLevel LogLevel, logPath string) error {
	level, err := toZerologLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to convert log level: %v", err)
	}

	writers := []io.Writer{
		&zerolog.FilteredLevelWriter{
			Writer: &zerolog.LevelWriterAdapter{Writer: os.Stderr},
			Level:  level,
		},
	}
	if logPath != "" {
		LogFile, err = os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
		if err != nil {
			return fmt.Errorf("failed to open log file: %v", err)
		}
		writers = append(writers, &zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: LogFile},
			Level:  level,
		})
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(level)
	log.Logger = logger
	return nil
}

func toZerologLevel(ll LogLevel) (zerolog.Level, error) {
	if index := slices.Index(Levels[:], ll); index >= 0 {
		// DISABLED and TRACE do not line up with the zerolog ordering
		switch index {
		case 4:
			return zerolog.Disabled, nil
		case 5:
			return zerolog.TraceLevel, nil
		}
		return zerolog.Level(index), nil
	}

	tostr := make([]string, 0, len(Levels))
	for _, l := range Levels {
		tostr = append(tostr, string(l))
	}
	return -100, fmt.Errorf("invalid log level (options: %s)", strings.Join(tostr, ", "))
}
