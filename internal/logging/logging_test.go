package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Lvl{
		"debug":   log.DEBUG,
		"INFO":    log.INFO,
		" warn ":  log.WARN,
		"warning": log.WARN,
		"error":   log.ERROR,
		"off":     log.OFF,
		"":        log.INFO,
		"verbose": log.INFO,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestNewWithWriter_JSONRecords(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "getyoursite", "info")

	l.Debug("hidden")
	assert.Zero(t, buf.Len())

	l.Infoj(log.JSON{"event": "contact.received", "id": "42"})
	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "getyoursite", rec["prefix"])
	assert.Equal(t, "contact.received", rec["event"])
}
