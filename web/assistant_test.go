package web

import (
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"testing"
	"time"
)

func TestAssistantHandler_Ask(t *testing.T) {
	var systemInstruction string
	_, baseUrl := newFakeProvider(t, map[string]http.HandlerFunc{
		"/v1beta/models/gemini-2.5-flash:generateContent": func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				SystemInstruction struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"systemInstruction"`
			}

			if assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) && len(req.SystemInstruction.Parts) > 0 {
				systemInstruction = req.SystemInstruction.Parts[0].Text
			}

			_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Try Porto in spring."}]}}]}`))
		},
	})
	e := newTestEcho(t, baseUrl, 5*time.Second)

	rec, res := doJson(t, e, http.MethodPost, "/api/flights/ai-assistant", `{"query":"Where should I go in Portugal?"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, map[string]any{"response": "Try Porto in spring."}, res)
	assert.Equal(t, "You are a travel assistant.", systemInstruction)
}

func TestAssistantHandler_Ask_EmptyQuery(t *testing.T) {
	p, baseUrl := newFakeProvider(t, nil)
	e := newTestEcho(t, baseUrl, 5*time.Second)

	rec, res := doJson(t, e, http.MethodPost, "/api/flights/ai-assistant", `{"query":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"error": "Query is required"}, res)
	assert.Zero(t, p.Calls("/v1beta/models/gemini-2.5-flash:generateContent"))
}

func TestAssistantHandler_Ask_ProviderError(t *testing.T) {
	_, baseUrl := newFakeProvider(t, map[string]http.HandlerFunc{
		"/v1beta/models/gemini-2.5-flash:generateContent": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED"}}`))
		},
	})
	e := newTestEcho(t, baseUrl, 5*time.Second)

	rec, res := doJson(t, e, http.MethodPost, "/api/flights/ai-assistant", `{"query":"hello"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to process query with AI assistant", res["error"])
	assert.Equal(t, map[string]any{"error": map[string]any{"code": float64(429), "status": "RESOURCE_EXHAUSTED"}}, res["details"])
}

func TestAssistantHandler_Ask_NoCandidates(t *testing.T) {
	_, baseUrl := newFakeProvider(t, map[string]http.HandlerFunc{
		"/v1beta/models/gemini-2.5-flash:generateContent": staticJson(`{"candidates":[]}`),
	})
	e := newTestEcho(t, baseUrl, 5*time.Second)

	rec, res := doJson(t, e, http.MethodPost, "/api/flights/ai-assistant", `{"query":"hello"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "model returned no candidates", res["details"])
}
