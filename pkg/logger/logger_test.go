package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Level: "info", Output: &first, Service: "blog"})
	Init(Options{Level: "debug", Output: &second})

	l := Component("articles")
	l.Info().Msg("hello")

	assert.Zero(t, second.Len())

	var event map[string]any
	require.NoError(t, json.Unmarshal(first.Bytes(), &event))
	assert.Equal(t, "blog", event["service"])
	assert.Equal(t, "articles", event["component"])
	assert.Equal(t, "hello", event["message"])
}

func TestGet_BeforeInitIsDisabled(t *testing.T) {
	Reset()
	l := Get()
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}
