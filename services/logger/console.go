package logsvc

import (
	"log"
	"strings"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
)

// log levels, lowest first
const (
	LevelDebug = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

// ConsoleLogger writes to a std logger only. Used in DEV & TEST.
type ConsoleLogger struct {
	std   *log.Logger
	level int
}

var _ core.Logger = (*ConsoleLogger)(nil)

func NewConsoleLogger(std *log.Logger, conf *core.Config) *ConsoleLogger {
	level := LevelInfo
	if conf.Debug {
		level = LevelDebug
	}
	return &ConsoleLogger{std: std, level: level}
}

// ParseLevel returns the level named s (case insensitive), LevelInfo when unknown.
func ParseLevel(s string) int {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range levelNames {
		if name == s {
			return i
		}
	}
	return LevelInfo
}

func (l *ConsoleLogger) SetLevel(level int) { l.level = level }

func (l *ConsoleLogger) print(level int, msg string, args []interface{}) {
	if level < l.level {
		return
	}
	l.std.Printf("%s %s", levelNames[level], msg)
	for _, arg := range args {
		if sess, ok := sessionArg(arg); ok {
			l.std.Printf("  session: user=%d role=%s", sess.UserID, sess.Role)
			continue
		}
		l.std.Printf("  %+v", arg)
	}
}

func (l *ConsoleLogger) Debug(msg string, args ...interface{}) { l.print(LevelDebug, msg, args) }
func (l *ConsoleLogger) Info(msg string, args ...interface{})  { l.print(LevelInfo, msg, args) }
func (l *ConsoleLogger) Warn(msg string, args ...interface{})  { l.print(LevelWarn, msg, args) }
func (l *ConsoleLogger) Error(msg string, args ...interface{}) { l.print(LevelError, msg, args) }

func (l *ConsoleLogger) Fatal(msg string, args ...interface{}) {
	l.print(LevelFatal, msg, args)
	l.std.Fatal(msg)
}

// New returns the Rollbar logger when a token is configured, the console logger otherwise.
func New(std *log.Logger, conf *core.Config) core.Logger {
	if conf.RollbarToken != "" && !conf.TestMode {
		return NewRollbarLogger(std, conf)
	}
	return NewConsoleLogger(std, conf)
}
