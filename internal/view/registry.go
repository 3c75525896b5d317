package view

import (
	"time"

	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

// Registry keeps one controller per login session, keyed by session token.
// Controllers expire together with the session they belong to, and are
// closed when they leave the registry.
type Registry struct {
	deps        Deps
	controllers *cache.Cache
}

func NewRegistry(deps Deps, sessionTTL, cleanupInterval time.Duration) *Registry {
	controllers := cache.New(sessionTTL, cleanupInterval)
	controllers.OnEvicted(func(token string, v any) {
		log.Tracef("view controller for session %s... evicted", shortToken(token))
		if c, ok := v.(*Controller); ok {
			c.Close()
		}
	})
	return &Registry{
		deps:        deps,
		controllers: controllers,
	}
}

// For returns the controller of the session, creating it on first use.
// Every call extends the controller's lifetime.
func (r *Registry) For(token, userID string) *Controller {
	if c, ok := r.lookup(token, userID); ok {
		return c
	}

	// expired controllers are only closed when they are deleted
	r.controllers.DeleteExpired()

	created := NewController(userID, r.deps)
	for {
		if err := r.controllers.Add(token, created, cache.DefaultExpiration); err == nil {
			created.Start()
			return created
		}
		// lost a race with a concurrent request of the same session
		if c, ok := r.lookup(token, userID); ok {
			return c
		}
		// the token belongs to a controller of another user
		r.controllers.Delete(token)
	}
}

func (r *Registry) lookup(token, userID string) (*Controller, bool) {
	v, found := r.controllers.Get(token)
	if !found {
		return nil, false
	}
	c, ok := v.(*Controller)
	if !ok || c.UserID() != userID {
		return nil, false
	}
	r.controllers.SetDefault(token, c)
	return c, true
}

func (r *Registry) Remove(token string) {
	r.controllers.Delete(token)
}

// CloseAll removes every controller, ending their profile subscriptions.
func (r *Registry) CloseAll() {
	r.controllers.DeleteExpired()
	for token := range r.controllers.Items() {
		r.controllers.Delete(token)
	}
}

func (r *Registry) Count() int {
	return r.controllers.ItemCount()
}

func shortToken(token string) string {
	if len(token) > 6 {
		return token[:6]
	}
	return token
}
