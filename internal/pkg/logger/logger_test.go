package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerboseLoggerEmitsFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, true)

	log.Info("intent resolved", map[string]interface{}{"action": "scan_ip"})

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "info", event["level"])
	assert.Equal(t, "intent resolved", event["message"])
	assert.Equal(t, "scan_ip", event["action"])
	assert.Equal(t, "investigator", event["component"])
}

func TestQuietLoggerOnlyEmitsErrors(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, false)

	log.Debug("noise", nil)
	log.Warn("noise", nil)
	assert.Zero(t, buf.Len())

	log.Error("save failed", errors.New("disk full"), nil)
	assert.Contains(t, buf.String(), "disk full")
}
