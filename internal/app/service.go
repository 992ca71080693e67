package app

import (
	"context"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/pscheid92/vocapulse/internal/api"
	"github.com/pscheid92/vocapulse/internal/domain"
	"github.com/pscheid92/vocapulse/internal/draft"
	"github.com/pscheid92/vocapulse/internal/duecount"
	"github.com/pscheid92/vocapulse/internal/envelope"
	"github.com/pscheid92/vocapulse/internal/platform/config"
	"github.com/pscheid92/vocapulse/internal/practice"
)

// Service is the application layer. It constructs the shared pieces once
// and builds a controller per page mount; both controllers share one
// envelope store (separate slots) and one broadcaster.
type Service struct {
	api          domain.API
	store        domain.EnvelopeStore
	due          *duecount.Broadcaster
	dueCardLimit int
	statsGroup   singleflight.Group
}

// NewService wires the application from a config. Without REDIS_URL the
// envelope store runs in memory, which still satisfies every consumer: the
// store is a cache of convenience, not a system of record.
func NewService(cfg *config.Config, namespace string, clock clockwork.Clock) (*Service, error) {
	client := api.NewClient(cfg.APIBaseURL, api.StaticToken(cfg.APIAuthToken))

	var store domain.EnvelopeStore
	if cfg.RedisURL != "" {
		rdb, err := envelope.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		store = envelope.NewRedisStore(rdb, clock, namespace, cfg.SessionTTL)
	} else {
		store = envelope.NewMemoryStore(clock, cfg.SessionTTL)
	}

	return &Service{
		api:          client,
		store:        store,
		due:          duecount.NewBroadcaster(),
		dueCardLimit: cfg.DueCardLimit,
	}, nil
}

// NewServiceWith wires the application from already-built components.
func NewServiceWith(apiClient domain.API, store domain.EnvelopeStore, due *duecount.Broadcaster, dueCardLimit int) *Service {
	if dueCardLimit <= 0 {
		dueCardLimit = practice.DefaultDueCardLimit
	}
	return &Service{
		api:          apiClient,
		store:        store,
		due:          due,
		dueCardLimit: dueCardLimit,
	}
}

// API exposes the backend client for pages outside the two stateful flows
// (card list, card detail).
func (s *Service) API() domain.API {
	return s.api
}

// DueCount is the shared broadcaster handle for navigation badges.
func (s *Service) DueCount() *duecount.Broadcaster {
	return s.due
}

// RefreshDueCount seeds the broadcaster from the stats endpoint on first
// paint. Concurrent callers collapse into one request; each gets the count
// that request produced.
func (s *Service) RefreshDueCount(ctx context.Context) (int, error) {
	v, err, _ := s.statsGroup.Do("stats", func() (any, error) {
		stats, err := s.api.GetStats(ctx)
		if err != nil {
			return 0, err
		}
		s.due.Set(stats.Due)
		return stats.Due, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// NewPracticeController builds the controller for a practice page mount.
func (s *Service) NewPracticeController(opts ...practice.Option) *practice.Controller {
	opts = append([]practice.Option{practice.WithDueCardLimit(s.dueCardLimit)}, opts...)
	return practice.NewController(s.api, s.store, s.due, opts...)
}

// NewDraftController builds the controller for an add-card page mount.
func (s *Service) NewDraftController(opts ...draft.Option) *draft.Controller {
	return draft.NewController(s.api, s.store, opts...)
}
