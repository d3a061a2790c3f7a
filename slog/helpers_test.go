package slog_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// requestIDs returns the request_id of every JSON log line in data.
func requestIDs(t *testing.T, data []byte) []string {
	t.Helper()

	var ids []string
	for _, line := range bytes.Split(bytes.TrimSpace(data), []byte("\n")) {
		var entry struct {
			RequestID string `json:"request_id"`
		}
		require.NoError(t, json.Unmarshal(line, &entry))
		ids = append(ids, entry.RequestID)
	}
	return ids
}
