// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
)

const tracePrefix = "TRACE: "

var traceEnabled bool

// Writer receives formatted log lines. Stdout carries command output, so logs
// go to stderr.
var Writer io.Writer = os.Stderr

// levels maps AWSCTL_LOG values onto apex levels. Trace is emitted at debug
// with tracePrefix on the message.
var levels = map[string]log.Level{
	"trace": log.DebugLevel,
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
	"fatal": log.FatalLevel,
}

var letters = map[log.Level]string{
	log.DebugLevel: "D",
	log.InfoLevel:  "I",
	log.WarnLevel:  "W",
	log.ErrorLevel: "E",
	log.FatalLevel: "F",
}

// InitLogger configures apex from the environment. AWSCTL_LOG picks the
// level, default error. AWSCTL_LOG_FORMAT=json switches to one JSON object
// per line.
func InitLogger() {
	level := strings.ToLower(os.Getenv("AWSCTL_LOG"))
	traceEnabled = level == "trace"

	log.SetHandler(NewHandler(os.Getenv("AWSCTL_LOG_FORMAT")))
	log.SetLevel(ParseLevel(level))
}

// NewHandler returns the handler for format. Anything but "json" gets the
// compact line handler.
func NewHandler(format string) log.Handler {
	if strings.EqualFold(format, "json") {
		return json.New(Writer)
	}
	return &CustomHandler{}
}

// ParseLevel maps an AWSCTL_LOG value onto an apex level. Unknown values
// resolve to error.
func ParseLevel(level string) log.Level {
	if l, ok := levels[strings.ToLower(level)]; ok {
		return l
	}
	return log.ErrorLevel
}

// CustomHandler writes "<timestamp> <letter> <message> k=v..." lines to
// Writer.
type CustomHandler struct{}

// HandleLog implements log.Handler.
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	letter, ok := letters[e.Level]
	if !ok {
		letter = "?"
	}

	var sb strings.Builder
	if msg, trace := strings.CutPrefix(e.Message, tracePrefix); trace {
		letter = "T"
		sb.WriteString(msg)
	} else {
		sb.WriteString(e.Message)
	}

	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&sb, " %s=%v", name, e.Fields.Get(name))
	}

	_, err := fmt.Fprintf(Writer, "%s %s %s\n", time.Now().Format(time.DateTime), letter, sb.String())
	return err
}

// Tracef logs below debug. It is a no-op unless AWSCTL_LOG=trace.
func Tracef(format string, args ...any) {
	if traceEnabled {
		log.Debug(tracePrefix + fmt.Sprintf(format, args...))
	}
}

func Debug(msg string) {
	log.Debug(msg)
}

func Debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

func Infof(format string, args ...any) {
	log.Infof(format, args...)
}

func Warnf(format string, args ...any) {
	log.Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	log.Errorf(format, args...)
}

// WithError returns an entry carrying err.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}

// WithFields returns an entry carrying fields, typically the service and API
// of the call being logged.
func WithFields(fields log.Fields) *log.Entry {
	return log.WithFields(fields)
}
