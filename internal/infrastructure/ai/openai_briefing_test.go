package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resqnet/internal/domain/entity"
)

func completionServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"upstream failure","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-4o-mini",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]string{"role": "assistant", "content": content},
				},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRateSeverity_ParsesReply(t *testing.T) {
	srv := completionServer(t, http.StatusOK, " critical.\n")
	svc := NewOpenAIBriefingService("test-key", "", srv.URL+"/v1")

	sev, err := svc.RateSeverity(context.Background(), "Building collapsed with people trapped")

	require.NoError(t, err)
	assert.Equal(t, entity.SeverityCritical, sev)
}

func TestRateSeverity_UnknownReplyIsError(t *testing.T) {
	srv := completionServer(t, http.StatusOK, "Severe")
	svc := NewOpenAIBriefingService("test-key", "", srv.URL+"/v1")

	_, err := svc.RateSeverity(context.Background(), "Flood")

	assert.Error(t, err)
}

func TestRateSeverity_UpstreamFailure(t *testing.T) {
	srv := completionServer(t, http.StatusInternalServerError, "")
	svc := NewOpenAIBriefingService("test-key", "", srv.URL+"/v1")

	_, err := svc.RateSeverity(context.Background(), "Flood")

	assert.Error(t, err)
}

func TestSummarizeBriefing(t *testing.T) {
	srv := completionServer(t, http.StatusOK, "Two critical sites need machinery. Prioritise Old Town.")
	svc := NewOpenAIBriefingService("test-key", "gpt-4o-mini", srv.URL+"/v1")

	text, err := svc.SummarizeBriefing(context.Background(), []entity.Disaster{{ID: "d1", Type: "Flood"}})

	require.NoError(t, err)
	assert.Equal(t, "Two critical sites need machinery. Prioritise Old Town.", text)
}

func TestSummarizeBriefing_EmptyChoice(t *testing.T) {
	srv := completionServer(t, http.StatusOK, "")
	svc := NewOpenAIBriefingService("test-key", "", srv.URL+"/v1")

	_, err := svc.SummarizeBriefing(context.Background(), nil)

	assert.Error(t, err)
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "éé", truncate(strings.Repeat("é", 10), 5))
	assert.Equal(t, "", truncate("漢字", 2))

	long := strings.Repeat("洪水", maxPromptLength)
	cut := truncate(long, maxPromptLength)
	assert.True(t, utf8.ValidString(cut))
	assert.LessOrEqual(t, len(cut), maxPromptLength)
}
