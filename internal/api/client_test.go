package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pscheid92/vocapulse/internal/domain"
	apperrors "github.com/pscheid92/vocapulse/internal/errors"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, StaticToken("init-data-123"))
}

func TestGetDueCards(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/practice/due", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		assert.Equal(t, "tma init-data-123", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"cards": []map[string]any{
				{"id": 1, "korean": "안녕", "english": "hi"},
				{"id": 2, "korean": "네", "english": "yes"},
			},
			"total_due": 7,
		})
	})

	got, err := client.GetDueCards(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, 7, got.TotalDue)
	require.Len(t, got.Cards, 2)
	assert.Equal(t, int64(1), got.Cards[0].ID)
	assert.Equal(t, "안녕", got.Cards[0].Korean)
}

func TestSubmitReview(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/practice/review", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 42, body["card_id"])
		assert.Equal(t, "hard", body["difficulty"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"next_review":   "2026-09-01T00:00:00Z",
			"interval_days": 4,
			"remaining_due": 3,
		})
	})

	got, err := client.SubmitReview(context.Background(), 42, domain.DifficultyHard)
	require.NoError(t, err)
	assert.Equal(t, 3, got.RemainingDue)
	assert.Equal(t, 4, got.IntervalDays)
}

func TestSubmitReview_RejectsUnknownDifficulty(t *testing.T) {
	called := false
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.SubmitReview(context.Background(), 1, domain.Difficulty("impossible"))
	require.Error(t, err)
	assert.Equal(t, apperrors.TypeValidation, apperrors.TypeOf(err))
	assert.False(t, called, "invalid difficulty must not reach the network")
}

func TestTranslate(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cards/translate", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "사과", body["word"])

		_ = json.NewEncoder(w).Encode(domain.TranslationResult{
			Korean: "사과", English: "apple",
			ExampleKR: "사과를 먹어요", ExampleEN: "I eat an apple",
		})
	})

	got, err := client.Translate(context.Background(), "  사과  ")
	require.NoError(t, err)
	assert.Equal(t, "apple", got.English)
}

func TestTranslate_RejectsEmptyWord(t *testing.T) {
	client := NewClient("http://unused.invalid", nil)

	_, err := client.Translate(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, apperrors.TypeValidation, apperrors.TypeOf(err))
}

func TestCreateCard(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/cards", r.URL.Path)

		var body domain.TranslationResult
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "apple", body.English)

		_ = json.NewEncoder(w).Encode(map[string]any{"id": 9, "korean": body.Korean, "english": body.English})
	})

	got, err := client.CreateCard(context.Background(), domain.TranslationResult{Korean: "사과", English: "apple"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)
}

func TestGetStats(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stats", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total": 120,
			"due":   14,
			"distribution": map[string]int{
				"new": 10, "learning": 30, "young": 40, "mature": 40,
			},
		})
	})

	got, err := client.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 14, got.Due)
	assert.Equal(t, 30, got.Distribution.Learning)
}

func TestListCards(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cards", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"cards": []map[string]any{{"id": 5}}, "total": 11,
			"page": 2, "per_page": 10, "total_pages": 2,
		})
	})

	got, err := client.ListCards(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalPages)
	require.Len(t, got.Cards, 1)
}

func TestDeleteCard(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/cards/5", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]bool{"deleted": true})
	})

	require.NoError(t, client.DeleteCard(context.Background(), 5))
}

func TestErrorResponse_DetailIsSurfaced(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "word too long"})
	})

	_, err := client.Translate(context.Background(), "사과")
	require.Error(t, err)
	assert.Equal(t, apperrors.TypeValidation, apperrors.TypeOf(err))
	assert.Contains(t, err.Error(), "word too long")
	assert.False(t, apperrors.IsTransient(err))
}

func TestErrorResponse_ServerErrorIsTransient(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetStats(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsTransient(err))
}

func TestTransportFailureIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on
	client := NewClient(server.URL, nil)

	_, err := client.GetStats(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsTransient(err))
}

func TestNoTokenProviderSendsNoAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(domain.Stats{})
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, nil)
	_, err := client.GetStats(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}
