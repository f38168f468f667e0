package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLogger(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		level   string
		message string
	}{
		{"Success", http.StatusCreated, "INFO", "request completed"},
		{"Rejected", http.StatusConflict, "WARN", "request rejected"},
		{"Server Error", http.StatusBadGateway, "ERROR", "server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))
			handler := NewStructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/charges", nil))

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tc.level, entry["level"])
			assert.Equal(t, tc.message, entry["msg"])

			response := entry["response"].(map[string]any)
			assert.Equal(t, float64(tc.status), response["status"])
			request := entry["request"].(map[string]any)
			assert.Equal(t, "/charges", request["path"])
		})
	}
}
