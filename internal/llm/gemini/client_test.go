package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legalyze/internal/config"
	"legalyze/internal/domain"
	"legalyze/internal/llm/gemini"
)

func newTestClient(serverURL string) *gemini.Client {
	cfg := &config.ProviderConfig{
		Provider:     "gemini",
		APIKey:       "test-gemini-key",
		DefaultModel: "gemini-2.5-flash",
		TimeoutSecs:  30,
	}
	return gemini.NewClientWithEndpoint(cfg, serverURL)
}

func successResponse(texts ...string) map[string]interface{} {
	parts := make([]map[string]interface{}, 0, len(texts))
	for _, t := range texts {
		parts = append(parts, map[string]interface{}{"text": t})
	}
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"role":  "model",
					"parts": parts,
				},
				"finishReason": "STOP",
			},
		},
	}
}

func TestClient_Generate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-gemini-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))

		contents := reqBody["contents"].([]interface{})
		require.Len(t, contents, 1)
		msg := contents[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])
		parts := msg["parts"].([]interface{})
		require.Len(t, parts, 1)
		assert.Equal(t, "analyze this", parts[0].(map[string]interface{})["text"])

		genConfig := reqBody["generationConfig"].(map[string]interface{})
		assert.Equal(t, float64(8192), genConfig["maxOutputTokens"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(successResponse(`{"summary":`, `"ok"}`))
	}))
	defer server.Close()

	out, err := newTestClient(server.URL).Generate(context.Background(), "analyze this")

	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, out.Text)
	assert.Equal(t, "gemini-2.5-flash", out.Model)
}

func TestClient_Generate_WhitespaceTextReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(successResponse("   "))
	}))
	defer server.Close()

	out, err := newTestClient(server.URL).Generate(context.Background(), "p")

	require.NoError(t, err)
	assert.Equal(t, "   ", out.Text)
}

func TestClient_Generate_ErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		header map[string]string
		kind   domain.ServiceErrorKind
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"bad key"}`, kind: domain.ServiceErrorAuth},
		{name: "forbidden", status: http.StatusForbidden, body: `{}`, kind: domain.ServiceErrorAuth},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{}`, header: map[string]string{"Retry-After": "30"}, kind: domain.ServiceErrorQuota},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, kind: domain.ServiceErrorUpstream},
		{name: "no candidates", status: http.StatusOK, body: `{"candidates":[]}`, kind: domain.ServiceErrorEmpty},
		{name: "no parts", status: http.StatusOK, body: `{"candidates":[{"content":{"parts":[]}}]}`, kind: domain.ServiceErrorEmpty},
		{name: "zero-length text", status: http.StatusOK, body: `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`, kind: domain.ServiceErrorEmpty},
		{name: "bad envelope", status: http.StatusOK, body: `not json`, kind: domain.ServiceErrorUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tt.header {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			out, err := newTestClient(server.URL).Generate(context.Background(), "p")

			assert.Nil(t, out)
			var svcErr *domain.ServiceError
			require.True(t, errors.As(err, &svcErr))
			assert.Equal(t, tt.kind, svcErr.Kind)
			assert.Equal(t, "gemini", svcErr.Provider)
			if tt.kind == domain.ServiceErrorQuota {
				assert.Equal(t, 30*time.Second, svcErr.RetryAfter)
			}
		})
	}
}

func TestClient_Generate_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(url).Generate(context.Background(), "p")

	var svcErr *domain.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, domain.ServiceErrorNetwork, svcErr.Kind)
}

func TestClient_Generate_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(successResponse("x"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL).Generate(ctx, "p")

	assert.ErrorIs(t, err, context.Canceled)
}
