package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salesflow-api/internal/domain/voice"
	"github.com/jhoicas/salesflow-api/internal/infrastructure/ai"
)

func TestAnthropicService_InterpretTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.Header.Get("x-api-key"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "claude-test", body["model"])

		text := "```json\n{\"intent\":\"product\",\"name\":\"Rice 5kg\",\"quantity\":10,\"unit_price\":25,\"currency\":\"ghs\",\"category\":\"\"}\n```"
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": text}},
		})
	}))
	defer srv.Close()

	svc := ai.NewAnthropicService("k", "claude-test").WithURL(srv.URL)
	d, err := svc.InterpretTranscript(context.Background(), "Rice 5kg, quantity 10, price 25 GHS")
	require.NoError(t, err)
	assert.Equal(t, voice.IntentProduct, d.Intent)
	assert.Equal(t, "Rice 5kg", d.Name)
	require.NotNil(t, d.Quantity)
	assert.Equal(t, 10, *d.Quantity)
	require.NotNil(t, d.UnitPrice)
	assert.True(t, d.UnitPrice.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, "GHS", d.Currency)
}

func TestAnthropicService_Errors(t *testing.T) {
	_, err := ai.NewAnthropicService("", "m").InterpretTranscript(context.Background(), "x")
	assert.Error(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer srv.Close()
	_, err = ai.NewAnthropicService("k", "m").WithURL(srv.URL).InterpretTranscript(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit_error")
}

func TestGeminiService_InterpretTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/gemini-test:generateContent"), r.URL.Path)
		assert.Equal(t, "g", r.URL.Query().Get("key"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]string{{"text": `{"intent":"sale","name":"Sugar","quantity":2,"unit_price":null}`}},
				},
			}},
		})
	}))
	defer srv.Close()

	svc := ai.NewGeminiService("g", "gemini-test").WithBaseURL(srv.URL + "/")
	d, err := svc.InterpretTranscript(context.Background(), "vendí 2 de azúcar")
	require.NoError(t, err)
	assert.Equal(t, voice.IntentSale, d.Intent)
	assert.Equal(t, "Sugar", d.Name)
	assert.Nil(t, d.UnitPrice)
}

func TestGeminiService_EmptyName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{"parts": []map[string]string{{"text": `{"intent":"product","name":""}`}}},
			}},
		})
	}))
	defer srv.Close()

	_, err := ai.NewGeminiService("g", "m").WithBaseURL(srv.URL).InterpretTranscript(context.Background(), "eh")
	assert.Error(t, err)
}
