package domain

import (
	"github.com/google/uuid"
)

// Storage slot names for the envelope store. Each slot holds at most one
// live payload per client (last-write-wins).
const (
	SlotPracticeSession = "practice_session"
	SlotAddCardDraft    = "addcard_draft"
)

// PracticeSession is the persisted shape of an in-progress practice run.
// The envelope store stamps it with a write timestamp; staleness is decided
// at read time, so the shape itself carries no expiry field.
type PracticeSession struct {
	SessionID    uuid.UUID           `json:"session_id"`
	Queue        []FlashcardSnapshot `json:"queue"`
	CurrentIndex int                 `json:"current_index"`
	Reviewed     int                 `json:"reviewed"`
	TotalDue     int                 `json:"total_due"`
	PromptSide   PromptSide          `json:"prompt_side"`
}

// Valid reports whether the session is internally consistent:
// 0 <= CurrentIndex < len(Queue), Reviewed <= CurrentIndex, TotalDue >= 0.
// A completed session clears its slot rather than persisting, so a resumed
// session must point at a real card. Anything that fails this check is
// treated as a cache miss.
func (s PracticeSession) Valid() bool {
	if len(s.Queue) == 0 {
		return false
	}
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Queue) {
		return false
	}
	if s.Reviewed > s.CurrentIndex || s.TotalDue < 0 {
		return false
	}
	switch s.PromptSide {
	case PromptKorean, PromptEnglish:
		return true
	default:
		return false
	}
}

// Remaining is the authoritative due count carried by a resumed session.
// It is the only non-server value the broadcaster may be set from.
func (s PracticeSession) Remaining() int {
	return s.TotalDue - s.Reviewed
}

// DraftRecord is the persisted shape of the add-card flow: the source word,
// the (possibly edited) translation, and whether the edit form was open.
type DraftRecord struct {
	SourceWord  string            `json:"source_word"`
	Translation TranslationResult `json:"translation"`
	Editing     bool              `json:"editing"`
}
