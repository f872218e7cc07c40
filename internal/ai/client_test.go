package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func completionBody(t *testing.T, content string) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	require.NoError(t, err)
	return b
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	var gotReq struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		Temperature float64 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
	}
	var gotHeaders http.Header

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write(completionBody(t, "generated text"))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "secret-key", "openai/gpt-3.5-turbo", "", "http://localhost:5173")
	text, err := c.Complete(context.Background(), "summarize this", Options{Temperature: 0.2, MaxTokens: 100})
	require.NoError(t, err)
	require.Equal(t, "generated text", text)

	require.Equal(t, "openai/gpt-3.5-turbo", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	require.Equal(t, "user", gotReq.Messages[0].Role)
	require.Equal(t, "summarize this", gotReq.Messages[0].Content)
	require.Equal(t, 0.2, gotReq.Temperature)
	require.Equal(t, 100, gotReq.MaxTokens)

	require.Equal(t, "Bearer secret-key", gotHeaders.Get("Authorization"))
	require.Equal(t, "http://localhost:5173", gotHeaders.Get("HTTP-Referer"))
	require.Empty(t, gotHeaders.Get("OpenAI-Organization"))
}

func TestCompleteSendsOrgHeaderWhenConfigured(t *testing.T) {
	var gotOrg string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOrg = r.Header.Get("OpenAI-Organization")
		w.Write(completionBody(t, "ok"))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k", "m", "org-123", "ref")
	_, err := c.Complete(context.Background(), "p", Options{})
	require.NoError(t, err)
	require.Equal(t, "org-123", gotOrg)
}

func TestCompleteUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k", "m", "", "ref")
	_, err := c.Complete(context.Background(), "p", Options{})
	require.Error(t, err)

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	require.Equal(t, http.StatusTooManyRequests, ue.StatusCode)
	require.Contains(t, ue.Body, "quota exceeded")
}

func TestCompleteMissingChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"cmpl-1"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k", "m", "", "ref")
	_, err := c.Complete(context.Background(), "p", Options{})
	require.ErrorIs(t, err, ErrInvalidResponse)
}

func TestCompleteEmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k", "m", "", "ref")
	_, err := c.Complete(context.Background(), "p", Options{})
	require.ErrorIs(t, err, ErrInvalidResponse)
}
