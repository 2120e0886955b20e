package logging

import (
	"bytes"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
	}()

	var buf bytes.Buffer
	require.NoError(t, Setup("debug", &buf))
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	log.Debug("visible")
	assert.Contains(t, buf.String(), "visible")

	require.NoError(t, Setup("error", &buf))
	buf.Reset()
	log.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestSetup_UnknownLevel(t *testing.T) {
	assert.Error(t, Setup("loud", nil))
}
