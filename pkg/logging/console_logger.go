package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

var levelColors = map[LogLevel]color.Attribute{
	LevelDebug: color.FgHiBlack,
	LevelInfo:  color.FgBlue,
	LevelWarn:  color.FgYellow,
	LevelError: color.FgRed,
}

// ConsoleLogger writes human-readable lines, colored by level
// when the destination is a terminal.
type ConsoleLogger struct {
	mu      *sync.Mutex
	output  io.Writer
	level   LogLevel
	colored bool
	fields  map[string]any
}

// NewConsoleLogger creates a console logger writing to stdout
// that drops entries below level.
func NewConsoleLogger(level LogLevel) *ConsoleLogger {
	return NewConsoleLoggerTo(os.Stdout, level, !color.NoColor)
}

// NewConsoleLoggerTo creates a console logger writing to w.
func NewConsoleLoggerTo(
	w io.Writer,
	level LogLevel,
	colored bool,
) *ConsoleLogger {
	return &ConsoleLogger{
		mu:      &sync.Mutex{},
		output:  w,
		level:   level,
		colored: colored,
		fields:  make(map[string]any),
	}
}

func (c *ConsoleLogger) paint(attr color.Attribute, s string) string {
	if !c.colored {
		return s
	}
	p := color.New(attr)
	p.EnableColor()
	return p.Sprint(s)
}

func (c *ConsoleLogger) log(level LogLevel, msg string, fields ...Field) {
	if level < c.level {
		return
	}

	all := mergeFields(c.fields, fields)
	var fieldStr string
	if len(all) > 0 {
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, all[k]))
		}
		fieldStr = " " + c.paint(
			color.FgHiBlack,
			"{"+strings.Join(parts, ", ")+"}",
		)
	}

	ts := c.paint(color.FgHiBlack, time.Now().Format("15:04:05"))
	lvl := c.paint(levelColors[level], fmt.Sprintf("%-5s", level))

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.output, "%s [%s] %s%s\n", ts, lvl, msg, fieldStr)
}

// Info logs an informational message.
func (c *ConsoleLogger) Info(msg string, fields ...Field) {
	c.log(LevelInfo, msg, fields...)
}

// Warn logs a warning message.
func (c *ConsoleLogger) Warn(msg string, fields ...Field) {
	c.log(LevelWarn, msg, fields...)
}

// Error logs an error message.
func (c *ConsoleLogger) Error(msg string, fields ...Field) {
	c.log(LevelError, msg, fields...)
}

// Debug logs a debug message.
func (c *ConsoleLogger) Debug(msg string, fields ...Field) {
	c.log(LevelDebug, msg, fields...)
}

// WithFields returns a new Logger sharing the destination with
// additional default fields.
func (c *ConsoleLogger) WithFields(fields ...Field) Logger {
	return &ConsoleLogger{
		mu:      c.mu,
		output:  c.output,
		level:   c.level,
		colored: c.colored,
		fields:  mergeFields(c.fields, fields),
	}
}

// Close is a no-op for ConsoleLogger.
func (c *ConsoleLogger) Close() error {
	return nil
}
