package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(NewJSON(&buf, false)).With("run_id", "r-1")

	l.Info(context.Background(), "run started", "submission", "81234567")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "run started", rec["msg"])
	assert.Equal(t, "r-1", rec["run_id"])
	assert.Equal(t, "81234567", rec["submission"])
}

func TestNilSLoggerDiscards(t *testing.T) {
	l := New(nil)

	assert.NotPanics(t, func() {
		l.Info(context.Background(), "x")
		l.With("k", "v").Error(context.Background(), "y")
	})
}
