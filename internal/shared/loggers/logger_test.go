package loggers

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONOutput(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger, err := New("info", WithOutput(buf))
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Str(FieldUsername, "ada").Msg("portfolio viewed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "ada", line[FieldUsername])
	assert.Equal(t, "portfolio viewed", line["message"])
	assert.Contains(t, line, "time")
	assert.Contains(t, line, "caller")
}

func TestNew_ConsoleOutput(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger, err := New("debug", WithOutput(buf), WithFormat(FormatConsole))
	require.NoError(t, err)

	logger.Debug().Msg("flushing")

	assert.Contains(t, buf.String(), "flushing")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestNew_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := New("loud")
	assert.Error(t, err)

	_, err = New("info", WithFormat("xml"))
	assert.ErrorContains(t, err, `unknown log format "xml"`)
}

func TestCtx(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger, err := New("info", WithOutput(buf))
	require.NoError(t, err)

	ctx := logger.WithContext(context.Background())
	Ctx(ctx).Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")

	// without an attached logger nothing is written and nothing panics
	assert.NotPanics(t, func() {
		Ctx(context.Background()).Info().Msg("dropped")
	})
}
