// Package logging provides the engine-wide leveled logger.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	once     sync.Once
	instance *log.Logger
)

func logger() *log.Logger {
	once.Do(func() {
		instance = log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "rama",
			CallerOffset:    1,
		})
		instance.SetLevel(log.InfoLevel)
	})
	return instance
}

// SetLevel changes the minimum level. Unknown names leave the level unchanged
// and return false.
func SetLevel(level string) bool {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger().Warnf("unknown log level %q", level)
		return false
	}
	logger().SetLevel(lvl)
	return true
}

// SetOutput redirects log output, mostly for tests.
func SetOutput(w io.Writer) {
	logger().SetOutput(w)
}

// With returns a child logger carrying a component prefix.
func With(prefix string) *log.Logger {
	return logger().WithPrefix("rama/" + prefix)
}

func Debug(msg string, args ...interface{}) {
	logger().Debugf(msg, args...)
}

func Info(msg string, args ...interface{}) {
	logger().Infof(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	logger().Warnf(msg, args...)
}

func Error(msg string, args ...interface{}) {
	logger().Errorf(msg, args...)
}

func Fatal(msg string, args ...interface{}) {
	logger().Fatalf(msg, args...)
}
