package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetLevel(Warning)

	logger := New("test")

	SetLevel(Warning)
	logger.Infof("hidden %d", 1)
	logger.Warningf("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden 1")
	assert.Contains(t, buf.String(), "shown 2")

	buf.Reset()
	SetLevel(Debug)
	logger.With("sensor", "meter").Debugf("resolved transform")
	assert.Contains(t, buf.String(), "resolved transform")
	assert.Contains(t, buf.String(), "meter")
	assert.Contains(t, buf.String(), "test")
}

func TestSetSinkReachesExistingLoggers(t *testing.T) {
	early := New("early").With("sensor", "flux")
	defer SetSink(os.Stderr)

	var first, second bytes.Buffer
	SetSink(&first)
	early.Warningf("to first")

	SetSink(&second)
	early.Warningf("to second")

	assert.Contains(t, first.String(), "to first")
	assert.NotContains(t, first.String(), "to second")
	assert.Contains(t, second.String(), "to second")
	assert.Contains(t, second.String(), "flux")
	assert.Contains(t, second.String(), "early")
}
