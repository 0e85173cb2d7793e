package domain

import "time"

// TicketCache holds tickets fetched from one tracker instance.
type TicketCache struct {
	Dir     string                  `json:"-"`
	BaseURL string                  `json:"base_url"`
	Entries map[string]CachedTicket `json:"entries"`
}

// CachedTicket is a fetched ticket and when it was fetched.
type CachedTicket struct {
	Ticket    Ticket    `json:"ticket"`
	FetchedAt time.Time `json:"fetched_at"`
}

// IsInvalidated reports whether the cache was filled from another instance.
func (c *TicketCache) IsInvalidated(baseURL string) bool {
	return c.BaseURL != baseURL
}

// Lookup returns the cached ticket for key if it is younger than ttl.
func (c *TicketCache) Lookup(key string, now time.Time, ttl time.Duration) (Ticket, bool) {
	e, ok := c.Entries[key]
	if !ok || now.Sub(e.FetchedAt) > ttl {
		return Ticket{}, false
	}
	return e.Ticket, true
}

// Put records t under key.
func (c *TicketCache) Put(key string, t Ticket, now time.Time) {
	if c.Entries == nil {
		c.Entries = make(map[string]CachedTicket)
	}
	c.Entries[key] = CachedTicket{Ticket: t, FetchedAt: now}
}
