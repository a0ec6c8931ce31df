// Package logging builds the leveled logger shared by the HTTP server and the
// background workers.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/labstack/gommon/log"
)

// header renders every record as one JSON object.
const header = `{"time":"${time_rfc3339}","level":"${level}","prefix":"${prefix}","file":"${short_file}","line":"${line}"}`

// New returns a logger writing to stdout at the named level.
func New(prefix, level string) *log.Logger {
	return NewWithWriter(os.Stdout, prefix, level)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, prefix, level string) *log.Logger {
	l := log.New(prefix)
	l.SetOutput(w)
	l.SetHeader(header)
	l.SetLevel(ParseLevel(level))
	l.DisableColor()
	return l
}

// ParseLevel maps debug, info, warn and error (case-insensitive) onto gommon
// levels. Anything else means info.
func ParseLevel(s string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
