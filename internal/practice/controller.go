package practice

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/pscheid92/vocapulse/internal/domain"
	"github.com/pscheid92/vocapulse/internal/duecount"
	"github.com/pscheid92/vocapulse/internal/metrics"
)

// DefaultDueCardLimit bounds the queue fetched for one session.
const DefaultDueCardLimit = 20

// State is the controller's position in the session lifecycle.
type State int

const (
	StateLoading State = iota
	StateAwaitingReveal
	StateAwaitingRating
	StateSubmitting
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAwaitingReveal:
		return "awaiting_reveal"
	case StateAwaitingRating:
		return "awaiting_rating"
	case StateSubmitting:
		return "submitting"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Controller owns the due-card queue, the reveal/rate loop, and the
// persistence of both. Methods are safe for concurrent use, but the model
// is one user-interaction goroutine: the Submitting state is the in-flight
// guard that makes rating submission exactly-once per card visit.
type Controller struct {
	api   domain.API
	store domain.EnvelopeStore
	due   *duecount.Broadcaster
	limit int

	coin    func() domain.PromptSide
	onError func(error)

	mu      sync.Mutex
	state   State
	session domain.PracticeSession
}

// Option configures a Controller.
type Option func(*Controller)

// WithDueCardLimit overrides the queue page size.
func WithDueCardLimit(limit int) Option {
	return func(c *Controller) { c.limit = limit }
}

// WithPromptCoin replaces the fair coin that picks each card's prompt side.
func WithPromptCoin(coin func() domain.PromptSide) Option {
	return func(c *Controller) { c.coin = coin }
}

// WithOnError installs a hook observing swallowed failures. The controller
// stays silent by default; the hook lets an embedder surface errors without
// changing transition logic.
func WithOnError(hook func(error)) Option {
	return func(c *Controller) { c.onError = hook }
}

// NewController creates a controller in Loading. Call Load to leave it.
func NewController(api domain.API, store domain.EnvelopeStore, due *duecount.Broadcaster, opts ...Option) *Controller {
	c := &Controller{
		api:   api,
		store: store,
		due:   due,
		limit: DefaultDueCardLimit,
		coin:  fairCoin,
		state: StateLoading,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func fairCoin() domain.PromptSide {
	if rand.IntN(2) == 0 {
		return domain.PromptKorean
	}
	return domain.PromptEnglish
}

// Load leaves Loading: it adopts an unexpired persisted session verbatim,
// or fetches a fresh queue. An empty fetch means all caught up and goes
// straight to Complete. On fetch failure the controller stays in Loading;
// there is no automatic retry.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateLoading {
		return nil
	}

	var persisted domain.PracticeSession
	if c.store.Get(ctx, domain.SlotPracticeSession, &persisted) && persisted.Valid() {
		// Adopt verbatim: no re-fetch, and the resumed card keeps its
		// persisted prompt side so a reload never re-randomizes it.
		c.session = persisted
		c.state = StateAwaitingReveal
		c.due.Set(persisted.Remaining())
		c.persistLocked(ctx)
		metrics.SessionsResumedTotal.Inc()
		slog.Info("practice session resumed",
			"session_id", c.session.SessionID.String(),
			"current_index", c.session.CurrentIndex,
			"reviewed", c.session.Reviewed,
		)
		return nil
	}

	fetched, err := c.api.GetDueCards(ctx, c.limit)
	if err != nil {
		c.reportError(err)
		return err
	}

	c.due.Set(fetched.TotalDue)

	if len(fetched.Cards) == 0 {
		c.completeLocked(ctx)
		return nil
	}

	c.session = domain.PracticeSession{
		SessionID:  uuid.New(),
		Queue:      fetched.Cards,
		TotalDue:   fetched.TotalDue,
		PromptSide: c.coin(),
	}
	c.state = StateAwaitingReveal
	c.persistLocked(ctx)
	slog.Info("practice session started",
		"session_id", c.session.SessionID.String(),
		"queue_len", len(fetched.Cards),
		"total_due", fetched.TotalDue,
	)
	return nil
}

// Reveal flips the current card to its answer side. A no-op outside
// AwaitingReveal. No network involved.
func (c *Controller) Reveal(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAwaitingReveal {
		return
	}
	c.state = StateAwaitingRating
	c.persistLocked(ctx)
}

// Rate submits the revealed card's difficulty. A second call while a
// submission is in flight is a no-op: the Submitting state is the guard,
// not any disabling of the event source. On failure the controller returns
// to AwaitingRating so the user can retry; on success it advances, adopts
// the server's remaining_due, and completes when the queue is exhausted.
func (c *Controller) Rate(ctx context.Context, difficulty domain.Difficulty) error {
	c.mu.Lock()
	if c.state != StateAwaitingRating {
		c.mu.Unlock()
		return nil
	}
	card := c.session.Queue[c.session.CurrentIndex]
	c.state = StateSubmitting
	c.persistLocked(ctx)
	c.mu.Unlock()

	result, err := c.api.SubmitReview(ctx, card.ID, difficulty)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = StateAwaitingRating
		c.persistLocked(ctx)
		c.reportError(err)
		return err
	}

	c.session.Reviewed++
	c.due.Set(result.RemainingDue)
	metrics.ReviewsSubmittedTotal.WithLabelValues(string(difficulty)).Inc()

	if c.session.CurrentIndex+1 < len(c.session.Queue) {
		c.session.CurrentIndex++
		c.session.PromptSide = c.coin()
		c.state = StateAwaitingReveal
		c.persistLocked(ctx)
		return nil
	}

	c.session.CurrentIndex++
	c.completeLocked(ctx)
	return nil
}

// --- Accessors ---

// State returns the controller's current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current returns the card under review, or false outside an active session.
func (c *Controller) Current() (domain.FlashcardSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateLoading || c.state == StateComplete {
		return domain.FlashcardSnapshot{}, false
	}
	return c.session.Queue[c.session.CurrentIndex], true
}

// Revealed reports whether the current card's answer side is showing.
func (c *Controller) Revealed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateAwaitingRating || c.state == StateSubmitting
}

// Snapshot returns a copy of the session for display (progress bar,
// reviewed counter). The queue slice is shared but read-only by contract.
func (c *Controller) Snapshot() domain.PracticeSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// --- Internals, callers hold c.mu ---

func (c *Controller) persistLocked(ctx context.Context) {
	c.store.Put(ctx, domain.SlotPracticeSession, c.session)
}

func (c *Controller) completeLocked(ctx context.Context) {
	c.state = StateComplete
	c.store.Clear(ctx, domain.SlotPracticeSession)
	metrics.SessionsCompletedTotal.Inc()
	slog.Info("practice session complete",
		"session_id", c.session.SessionID.String(),
		"reviewed", c.session.Reviewed,
	)
}

func (c *Controller) reportError(err error) {
	slog.Debug("practice controller error", "state", c.state.String(), "error", err)
	if c.onError != nil {
		c.onError(err)
	}
}
