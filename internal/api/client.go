package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pscheid92/vocapulse/internal/domain"
	apperrors "github.com/pscheid92/vocapulse/internal/errors"
	"github.com/pscheid92/vocapulse/internal/metrics"
)

const (
	requestTimeout = 15 * time.Second

	// Translations are proxied through an LLM on the backend; two requests
	// per second with a small burst keeps a fast typist from hammering it.
	translateRate  = rate.Limit(2)
	translateBurst = 3
)

// TokenProvider returns the current auth payload (Telegram initData).
// An empty return sends the request unauthenticated.
type TokenProvider func() string

// Client talks to the trainer backend over HTTP.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	token            TokenProvider
	translateLimiter *rate.Limiter
}

var _ domain.API = (*Client)(nil)

// NewClient creates a trainer API client. token may be nil.
func NewClient(baseURL string, token TokenProvider) *Client {
	return &Client{
		baseURL:          strings.TrimRight(baseURL, "/"),
		httpClient:       &http.Client{Timeout: requestTimeout},
		token:            token,
		translateLimiter: rate.NewLimiter(translateRate, translateBurst),
	}
}

// StaticToken adapts a fixed token string into a TokenProvider.
func StaticToken(token string) TokenProvider {
	return func() string { return token }
}

// --- Practice ---

// GetDueCards fetches the due queue, bounded by limit, plus the
// authoritative total due count.
func (c *Client) GetDueCards(ctx context.Context, limit int) (*domain.DueCards, error) {
	var out domain.DueCards
	path := fmt.Sprintf("/api/practice/due?limit=%d", limit)
	if err := c.do(ctx, "get_due_cards", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitReview reports one rating and returns the server's scheduling
// verdict, including the authoritative remaining due count.
func (c *Client) SubmitReview(ctx context.Context, cardID int64, difficulty domain.Difficulty) (*domain.ReviewResult, error) {
	if err := difficulty.Validate(); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	body := map[string]any{"card_id": cardID, "difficulty": difficulty}
	var out domain.ReviewResult
	if err := c.do(ctx, "submit_review", http.MethodPost, "/api/practice/review", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Cards ---

// Translate asks the backend for a translation of word. Throttled client-side.
func (c *Client) Translate(ctx context.Context, word string) (*domain.TranslationResult, error) {
	if strings.TrimSpace(word) == "" {
		return nil, apperrors.ValidationError("word must not be empty")
	}
	if err := c.translateLimiter.Wait(ctx); err != nil {
		return nil, apperrors.NetworkError("translate throttled", err)
	}

	body := map[string]string{"word": strings.TrimSpace(word)}
	var out domain.TranslationResult
	if err := c.do(ctx, "translate", http.MethodPost, "/api/cards/translate", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCard persists a translation as a new card and returns the server's
// snapshot of it.
func (c *Client) CreateCard(ctx context.Context, tr domain.TranslationResult) (*domain.FlashcardSnapshot, error) {
	var out domain.FlashcardSnapshot
	if err := c.do(ctx, "create_card", http.MethodPost, "/api/cards", tr, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCards returns one page of the user's collection.
func (c *Client) ListCards(ctx context.Context, page, perPage int) (*domain.PaginatedCards, error) {
	var out domain.PaginatedCards
	path := fmt.Sprintf("/api/cards?page=%d&per_page=%d", page, perPage)
	if err := c.do(ctx, "list_cards", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCard returns a single card by id.
func (c *Client) GetCard(ctx context.Context, id int64) (*domain.FlashcardSnapshot, error) {
	var out domain.FlashcardSnapshot
	if err := c.do(ctx, "get_card", http.MethodGet, fmt.Sprintf("/api/cards/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCard patches the editable fields of a card.
func (c *Client) UpdateCard(ctx context.Context, id int64, upd domain.CardUpdate) (*domain.FlashcardSnapshot, error) {
	var out domain.FlashcardSnapshot
	if err := c.do(ctx, "update_card", http.MethodPut, fmt.Sprintf("/api/cards/%d", id), upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCard removes a card.
func (c *Client) DeleteCard(ctx context.Context, id int64) error {
	return c.do(ctx, "delete_card", http.MethodDelete, fmt.Sprintf("/api/cards/%d", id), nil, nil)
}

// --- Stats ---

// GetStats returns the collection summary used to seed the due-count
// broadcaster on first paint.
func (c *Client) GetStats(ctx context.Context) (*domain.Stats, error) {
	var out domain.Stats
	if err := c.do(ctx, "get_stats", http.MethodGet, "/api/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Plumbing ---

type errorBody struct {
	Detail string `json:"detail"`
}

func (c *Client) do(ctx context.Context, operation, method, path string, body, out any) error {
	start := time.Now()
	err := c.doOnce(ctx, method, path, body, out)
	metrics.APIRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestErrorsTotal.WithLabelValues(operation, string(apperrors.TypeOf(err))).Inc()
	}
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.InternalError("failed to encode request body", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.InternalError("failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != nil {
		if initData := c.token(); initData != "" {
			req.Header.Set("Authorization", "tma "+initData)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NetworkError("request failed", err).WithContext("path", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return apperrors.FromResponse(resp.StatusCode, eb.Detail).WithContext("path", path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.DecodeError("failed to decode response body", err).WithContext("path", path)
	}
	return nil
}
