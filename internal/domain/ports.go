package domain

import "context"

// API is the remote trainer backend. It is the source of truth for card
// scheduling: the client consumes review results, it never computes them.
type API interface {
	GetDueCards(ctx context.Context, limit int) (*DueCards, error)
	SubmitReview(ctx context.Context, cardID int64, difficulty Difficulty) (*ReviewResult, error)
	Translate(ctx context.Context, word string) (*TranslationResult, error)
	CreateCard(ctx context.Context, tr TranslationResult) (*FlashcardSnapshot, error)
	GetStats(ctx context.Context) (*Stats, error)

	ListCards(ctx context.Context, page, perPage int) (*PaginatedCards, error)
	GetCard(ctx context.Context, id int64) (*FlashcardSnapshot, error)
	UpdateCard(ctx context.Context, id int64, upd CardUpdate) (*FlashcardSnapshot, error)
	DeleteCard(ctx context.Context, id int64) error
}

// EnvelopeStore is TTL-bounded, single-slot persistence for serializable
// payloads. It is a pure cache of convenience: every consumer must be able
// to rebuild full state from the API when a slot comes back absent.
//
// Put and Clear swallow storage failures (logged, never returned); Get
// degrades corrupt or expired entries to a miss and deletes them so the
// failure cannot repeat.
type EnvelopeStore interface {
	Put(ctx context.Context, slot string, payload any)
	Get(ctx context.Context, slot string, out any) bool
	Clear(ctx context.Context, slot string)
}
