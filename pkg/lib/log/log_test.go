package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLazyLogger_UsesCurrentOutput(t *testing.T) {
	l := Logger("lib/log-test")

	buf := &bytes.Buffer{}
	SetOutput(buf)
	defer SetOutput(os.Stderr)

	l.Info("hello", "k", "v")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "subsystem=lib/log-test")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "0123", TruncateID("0123456789", 4))
	assert.Equal(t, "abc", TruncateID("abc", 8))
	assert.Equal(t, "abc", TruncateID("abc", 0))
}
