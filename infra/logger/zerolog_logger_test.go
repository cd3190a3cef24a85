package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZerologLoggerMethods(t *testing.T) {
	assert.NoError(t, os.Setenv("APP_ENV", "dev"))
	defer func() { assert.NoError(t, os.Unsetenv("APP_ENV")) }()
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLogger_TagsServiceAndComponent(t *testing.T) {
	t.Setenv("APP_ENV", "")
	var buf bytes.Buffer
	z := build(&buf, "web")
	z.Info().Msg("listening")

	out := buf.String()
	assert.Contains(t, out, `"service":"co2dash"`)
	assert.Contains(t, out, `"component":"web"`)
	assert.Contains(t, out, "listening")
}

func TestZerologLogger_InfoLevelOutsideDev(t *testing.T) {
	t.Setenv("APP_ENV", "")
	var buf bytes.Buffer
	z := build(&buf, "web")
	z.Debug().Msg("cache hit")
	assert.Empty(t, buf.String(), "debug output must be suppressed outside dev")
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debugf("ignored")
	l.Debugw("ignored", nil)
	l.Infof("ignored")
	l.Warnf("ignored")
	l.Errorf("ignored")
}
