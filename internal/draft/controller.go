// Package draft implements the add-card flow: translate a source word, edit
// the result, save it as a card. It applies the same envelope discipline as
// the practice controller, with a different payload shape and no queue: the
// draft re-persists on every edit and only a successful save clears it.
package draft

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/pscheid92/vocapulse/internal/domain"
)

// Controller owns one in-flight translate -> edit -> save workflow.
// Translate and Save carry independent in-flight guards; persistence is an
// effect of every accepted mutation of the draft.
type Controller struct {
	api     domain.API
	store   domain.EnvelopeStore
	onError func(error)

	mu          sync.Mutex
	word        string
	translation *domain.TranslationResult
	editing     bool
	translating bool
	saving      bool
	lastError   string
}

// Option configures a Controller.
type Option func(*Controller)

// WithOnError installs a hook observing failures alongside the controller's
// own last-error state.
func WithOnError(hook func(error)) Option {
	return func(c *Controller) { c.onError = hook }
}

// NewController creates an empty draft controller. Call Load to adopt a
// persisted draft, if one survived.
func NewController(api domain.API, store domain.EnvelopeStore, opts ...Option) *Controller {
	c := &Controller{api: api, store: store}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load adopts a persisted draft: source word, translation fields, and the
// editing flag restore exactly. Without one the controller stays empty.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var rec domain.DraftRecord
	if !c.store.Get(ctx, domain.SlotAddCardDraft, &rec) {
		return
	}

	tr := rec.Translation
	c.word = rec.SourceWord
	c.translation = &tr
	c.editing = rec.Editing
	slog.Info("draft resumed", "word", rec.SourceWord, "editing", rec.Editing)
}

// SetWord updates the source word input. The word alone is not a draft;
// persistence starts once a translation exists.
func (c *Controller) SetWord(word string) {
	c.mu.Lock()
	c.word = word
	c.mu.Unlock()
}

// Translate fetches a translation for the current word. A second call while
// one is in flight is a no-op; a save in flight does not block it.
func (c *Controller) Translate(ctx context.Context) error {
	c.mu.Lock()
	word := strings.TrimSpace(c.word)
	if c.translating || word == "" {
		c.mu.Unlock()
		return nil
	}
	c.translating = true
	c.lastError = ""
	c.mu.Unlock()

	tr, err := c.api.Translate(ctx, word)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.translating = false

	if err != nil {
		c.lastError = err.Error()
		c.reportError(err)
		return err
	}

	c.translation = tr
	c.editing = false
	c.persistLocked(ctx)
	return nil
}

// SetEnglish edits the translation's English text and re-persists the draft.
func (c *Controller) SetEnglish(ctx context.Context, s string) {
	c.editField(ctx, func(tr *domain.TranslationResult) { tr.English = s })
}

// SetExampleKR edits the Korean example sentence and re-persists the draft.
func (c *Controller) SetExampleKR(ctx context.Context, s string) {
	c.editField(ctx, func(tr *domain.TranslationResult) { tr.ExampleKR = s })
}

// SetExampleEN edits the English example sentence and re-persists the draft.
func (c *Controller) SetExampleEN(ctx context.Context, s string) {
	c.editField(ctx, func(tr *domain.TranslationResult) { tr.ExampleEN = s })
}

func (c *Controller) editField(ctx context.Context, edit func(*domain.TranslationResult)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.translation == nil {
		return
	}
	edit(c.translation)
	c.persistLocked(ctx)
}

// SetEditing toggles the edit form and re-persists the draft.
func (c *Controller) SetEditing(ctx context.Context, editing bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.translation == nil {
		return
	}
	c.editing = editing
	c.persistLocked(ctx)
}

// Save creates the card from the edited translation. Success clears the
// draft slot and resets every field; failure leaves the draft and fields
// untouched so the user retries without re-entering anything. A second call
// while one is in flight is a no-op.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.saving || c.translation == nil {
		c.mu.Unlock()
		return nil
	}
	c.saving = true
	c.lastError = ""
	tr := *c.translation
	c.mu.Unlock()

	_, err := c.api.CreateCard(ctx, tr)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.saving = false

	if err != nil {
		c.lastError = err.Error()
		c.reportError(err)
		return err
	}

	c.store.Clear(ctx, domain.SlotAddCardDraft)
	c.word = ""
	c.translation = nil
	c.editing = false
	slog.Info("draft saved", "word", tr.Korean)
	return nil
}

// --- Accessors ---

// Word returns the current source word input.
func (c *Controller) Word() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.word
}

// Translation returns a copy of the current translation, or false before
// one exists.
func (c *Controller) Translation() (domain.TranslationResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.translation == nil {
		return domain.TranslationResult{}, false
	}
	return *c.translation, true
}

// Editing reports whether the edit form is open.
func (c *Controller) Editing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing
}

// Translating reports whether a translate call is in flight.
func (c *Controller) Translating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.translating
}

// Saving reports whether a save call is in flight.
func (c *Controller) Saving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saving
}

// LastError returns the most recent user-visible failure message, cleared
// by the next translate or save attempt.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// persistLocked writes the draft; callers hold c.mu and guarantee a
// non-nil translation.
func (c *Controller) persistLocked(ctx context.Context) {
	c.store.Put(ctx, domain.SlotAddCardDraft, domain.DraftRecord{
		SourceWord:  c.word,
		Translation: *c.translation,
		Editing:     c.editing,
	})
}

func (c *Controller) reportError(err error) {
	slog.Debug("draft controller error", "error", err)
	if c.onError != nil {
		c.onError(err)
	}
}
