package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planday/backend/domain"
)

func chatReply(t *testing.T, content string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}
}

func TestExtractParsesDrafts(t *testing.T) {
	srv := httptest.NewServer(chatReply(t, `[
		{"title": "Write report", "priority": "high", "estimated_duration": 90},
		{"title": "Email Sam", "priority": "low"}
	]`))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Model: "test"})
	drafts, err := client.Extract(context.Background(), "notes")
	require.NoError(t, err)

	require.Len(t, drafts, 2)
	assert.Equal(t, "Write report", drafts[0].Title)
	assert.Equal(t, domain.PriorityHigh, drafts[0].Priority)
	require.NotNil(t, drafts[0].EstimatedDuration)
	assert.Equal(t, 90, *drafts[0].EstimatedDuration)
	assert.Nil(t, drafts[1].EstimatedDuration)
}

func TestExtractToleratesCodeFencesAndProse(t *testing.T) {
	srv := httptest.NewServer(chatReply(t, "Here you go:\n```json\n[{\"title\": \"Buy milk\", \"priority\": \"medium\"}]\n```\nDone."))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	drafts, err := client.Extract(context.Background(), "notes")
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Buy milk", drafts[0].Title)
}

func TestExtractSanitizesDrafts(t *testing.T) {
	srv := httptest.NewServer(chatReply(t, `[
		{"title": "  ", "priority": "high"},
		{"title": "Valid", "priority": "whenever", "estimated_duration": -5}
	]`))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	drafts, err := client.Extract(context.Background(), "notes")
	require.NoError(t, err)

	require.Len(t, drafts, 1, "blank titles are dropped")
	assert.Equal(t, "Valid", drafts[0].Title)
	assert.Equal(t, domain.PriorityMedium, drafts[0].Priority, "unknown priority falls back to medium")
	assert.Nil(t, drafts[0].EstimatedDuration, "non-positive estimates are dropped")
}

func TestExtractEmptyArray(t *testing.T) {
	srv := httptest.NewServer(chatReply(t, "[]"))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	drafts, err := client.Extract(context.Background(), "nothing actionable here")
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestExtractUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.Extract(context.Background(), "notes")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnavailable))
}

func TestExtractUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.Extract(context.Background(), "notes")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnavailable))
}

func TestExtractNoArrayInReply(t *testing.T) {
	srv := httptest.NewServer(chatReply(t, "I could not find any tasks."))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.Extract(context.Background(), "notes")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInternal))
}

func TestExtractSendsAuthorization(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		chatReply(t, "[]")(w, r)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, APIKey: "sk-test"})
	_, err := client.Extract(context.Background(), "notes")
	require.NoError(t, err)
	assert.Equal(t, "Bearer sk-test", gotAuth)
}
