package likes

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LikeCache provides an in-memory per-user cache of liked post ids, used to
// decorate post views with viewer like state without a store round trip on
// every list request. The store remains authoritative; toggles write through.
type LikeCache struct {
	mu     sync.RWMutex
	liked  map[uuid.UUID]map[int64]bool // userID -> postID -> liked
	expiry map[uuid.UUID]time.Time      // userID -> expiry time
	ttl    time.Duration
	logger *slog.Logger
}

// NewLikeCache creates a new like cache with the specified TTL
func NewLikeCache(ttl time.Duration, logger *slog.Logger) *LikeCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &LikeCache{
		liked:  make(map[uuid.UUID]map[int64]bool),
		expiry: make(map[uuid.UUID]time.Time),
		ttl:    ttl,
		logger: logger,
	}
}

// LikedPosts returns a copy of the user's liked set, or nil if the cache is
// empty or expired for this user.
func (c *LikeCache) LikedPosts(userID uuid.UUID) map[int64]bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	expiry, exists := c.expiry[userID]
	if !exists || time.Now().After(expiry) {
		return nil
	}

	// Copy so callers can't mutate cache state
	out := make(map[int64]bool, len(c.liked[userID]))
	for id, v := range c.liked[userID] {
		out[id] = v
	}
	return out
}

// SetLikedPosts replaces the user's cached liked set
func (c *LikeCache) SetLikedPosts(userID uuid.UUID, liked map[int64]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make(map[int64]bool, len(liked))
	for id, v := range liked {
		stored[id] = v
	}
	c.liked[userID] = stored
	c.expiry[userID] = time.Now().Add(c.ttl)

	c.logger.Debug("like cache updated",
		"user", userID,
		"liked_count", len(stored))
}

// SetLiked records a single liked post (toggle-on write-through)
func (c *LikeCache) SetLiked(userID uuid.UUID, postID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.liked[userID] == nil {
		// No snapshot yet; don't fabricate one from a single toggle
		return
	}
	c.liked[userID][postID] = true

	// Extend expiry on like action - active users keep their cache fresh
	c.expiry[userID] = time.Now().Add(c.ttl)
}

// RemoveLiked removes a post from the user's liked set (toggle-off)
func (c *LikeCache) RemoveLiked(userID uuid.UUID, postID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.liked[userID] != nil {
		delete(c.liked[userID], postID)
		c.expiry[userID] = time.Now().Add(c.ttl)
	}
}

// Invalidate removes all cached like state for a user
func (c *LikeCache) Invalidate(userID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.liked, userID)
	delete(c.expiry, userID)

	c.logger.Debug("like cache invalidated", "user", userID)
}
