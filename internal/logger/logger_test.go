package logger

import (
	"bytes"
	"testing"
	"time"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerTo(&buf, "notice", "test")
	log.Debug("hidden")
	log.Notice("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "NOTICE")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logging.DEBUG, ParseLevel("debug"))
	assert.Equal(t, logging.ERROR, ParseLevel(" ERROR "))
	assert.Equal(t, logging.WARNING, ParseLevel("verbose"))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1230*time.Millisecond, Round(1234567*time.Microsecond))
	assert.Equal(t, 12340*time.Microsecond, Round(12341234*time.Nanosecond))
	assert.Equal(t, 500*time.Nanosecond, Round(500*time.Nanosecond))
}
