package domain

import (
	"fmt"
	"time"
)

// FlashcardSnapshot is a read-only copy of a server-owned card at fetch time.
// The SRS telemetry fields (ease factor, interval, repetitions, next review)
// are display-only: the server computes them, the client never does.
type FlashcardSnapshot struct {
	ID           int64     `json:"id"`
	Korean       string    `json:"korean"`
	English      string    `json:"english"`
	ExampleKR    string    `json:"example_kr,omitempty"`
	ExampleEN    string    `json:"example_en,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	NextReview   time.Time `json:"next_review"`
	EaseFactor   float64   `json:"ease_factor"`
	IntervalDays int       `json:"interval_days"`
	Repetitions  int       `json:"repetitions"`
}

// TranslationResult is the backend's translation of a single source word.
type TranslationResult struct {
	Korean    string `json:"korean"`
	English   string `json:"english"`
	ExampleKR string `json:"example_kr"`
	ExampleEN string `json:"example_en"`
}

// CardUpdate carries the editable fields of a card. Nil means "leave unchanged".
type CardUpdate struct {
	English   *string `json:"english,omitempty"`
	ExampleKR *string `json:"example_kr,omitempty"`
	ExampleEN *string `json:"example_en,omitempty"`
}

// DueCards is the authoritative due queue plus the authoritative count.
// TotalDue can exceed len(Cards) when the queue was fetched with a limit.
type DueCards struct {
	Cards    []FlashcardSnapshot `json:"cards"`
	TotalDue int                 `json:"total_due"`
}

// ReviewResult is the server's scheduling verdict for one submitted review.
type ReviewResult struct {
	NextReview   time.Time `json:"next_review"`
	IntervalDays int       `json:"interval_days"`
	RemainingDue int       `json:"remaining_due"`
}

// PaginatedCards is one page of the user's card collection.
type PaginatedCards struct {
	Cards      []FlashcardSnapshot `json:"cards"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PerPage    int                 `json:"per_page"`
	TotalPages int                 `json:"total_pages"`
}

// Distribution buckets the collection by SRS maturity.
type Distribution struct {
	New      int `json:"new"`
	Learning int `json:"learning"`
	Young    int `json:"young"`
	Mature   int `json:"mature"`
}

// Stats is the per-user collection summary. Due seeds the due-count
// broadcaster on first paint.
type Stats struct {
	Total        int          `json:"total"`
	Due          int          `json:"due"`
	Distribution Distribution `json:"distribution"`
}

// Difficulty is one of the three rating levels of a review.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Validate rejects difficulty values outside the three-level scale.
func (d Difficulty) Validate() error {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return nil
	default:
		return fmt.Errorf("invalid difficulty %q", string(d))
	}
}

// PromptSide is the card face shown as the question before reveal.
type PromptSide string

const (
	PromptKorean  PromptSide = "korean"
	PromptEnglish PromptSide = "english"
)
