package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/groomroom/groomroom/internal/domain"
	"github.com/groomroom/groomroom/internal/logging"
)

// DefaultTicketTTL is how long a fetched ticket is reused.
const DefaultTicketTTL = 15 * time.Minute

// TicketService fetches tickets from the tracker through an on-disk cache.
type TicketService struct {
	source  domain.TicketSource
	store   domain.TicketCacheStore
	baseURL string
	ttl     time.Duration
	now     func() time.Time
	log     *slog.Logger
}

// NewTicketService caches tickets from source, keyed to the tracker at
// baseURL. store may be nil to disable caching.
func NewTicketService(source domain.TicketSource, store domain.TicketCacheStore, baseURL string) *TicketService {
	return &TicketService{
		source:  source,
		store:   store,
		baseURL: baseURL,
		ttl:     DefaultTicketTTL,
		now:     time.Now,
		log:     logging.New("tickets"),
	}
}

// Fetch returns the ticket for key. A cached copy younger than the TTL is
// used unless refresh is set. Cache failures never fail the fetch.
func (s *TicketService) Fetch(ctx context.Context, dir, key string, refresh bool) (domain.Ticket, error) {
	c := s.loadCache(dir)
	if c != nil && !refresh {
		if t, ok := c.Lookup(key, s.now(), s.ttl); ok {
			s.log.Debug("ticket cache hit", "ticket", key)
			return t, nil
		}
	}

	t, err := s.source.Fetch(ctx, key)
	if err != nil {
		return domain.Ticket{}, err
	}

	if c != nil {
		c.Put(key, t, s.now())
		if err := s.store.Save(c); err != nil {
			s.log.Warn("saving ticket cache", "error", err)
		}
	}
	return t, nil
}

// loadCache returns the cache for dir, a fresh one when the stored cache is
// missing, unreadable or from another instance, and nil without a store.
func (s *TicketService) loadCache(dir string) *domain.TicketCache {
	if s.store == nil {
		return nil
	}
	c, err := s.store.Load(dir)
	if err != nil {
		s.log.Warn("loading ticket cache", "error", err)
		c = nil
	}
	if c == nil || c.IsInvalidated(s.baseURL) {
		if c != nil {
			_ = s.store.Invalidate(dir)
		}
		c = &domain.TicketCache{BaseURL: s.baseURL}
	}
	c.Dir = dir
	return c
}
