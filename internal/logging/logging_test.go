package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "")
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	log, err = New(&buf, "debug")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	_, err = New(&buf, "loud")
	require.Error(t, err)
}

func TestOperationFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "info")
	require.NoError(t, err)

	Operation(log, "filter", logrus.Fields{"block_size": 64}).Info("done")
	Operation(log, "resynth", nil).Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "op=filter")
	assert.Contains(t, out, "block_size=64")
	assert.Contains(t, out, `msg=done`)
	assert.NotContains(t, out, "hidden")
}
