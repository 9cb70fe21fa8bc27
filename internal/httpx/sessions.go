package httpx

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inqgamerz48/university-management-v2.0/internal/auth"
	"github.com/inqgamerz48/university-management-v2.0/internal/sessioncache"
)

// SessionCookie names the cookie carrying the browser session id.
const SessionCookie = "portal_session"

type registryEntry struct {
	manager  *auth.Manager
	cancel   context.CancelFunc
	lastSeen time.Time
}

// Registry maps browser session ids to their auth managers. Each manager
// runs its own keep-alive loop until the entry is dropped or swept. Provider
// sessions survive restarts through the session cache.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry

	cache   sessioncache.Store
	factory func() *auth.Manager
	ttl     time.Duration
}

func NewRegistry(cache sessioncache.Store, factory func() *auth.Manager, ttl time.Duration) *Registry {
	return &Registry{
		entries: make(map[string]*registryEntry),
		cache:   cache,
		factory: factory,
		ttl:     ttl,
	}
}

// SessionID returns the caller's session id, minting a cookie when absent.
func (r *Registry) SessionID(w http.ResponseWriter, req *http.Request) string {
	if cookie, err := req.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// Manager returns the manager for the given session id, creating it and
// restoring any cached provider session on first sight.
func (r *Registry) Manager(ctx context.Context, id string) *auth.Manager {
	r.mu.Lock()
	if entry, ok := r.entries[id]; ok {
		entry.lastSeen = time.Now()
		r.mu.Unlock()
		return entry.manager
	}

	manager := r.factory()
	runCtx, cancel := context.WithCancel(context.Background())
	r.entries[id] = &registryEntry{manager: manager, cancel: cancel, lastSeen: time.Now()}
	r.mu.Unlock()

	go manager.Run(runCtx)

	// track every state change, so a session the keep-alive loop renews
	// reaches the cache with its rotated tokens
	changes, unsubscribe := manager.Subscribe()
	go func() {
		defer unsubscribe()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-changes:
				r.Persist(runCtx, id, manager)
			}
		}
	}()

	session, _, err := r.cache.Get(ctx, id)
	if err != nil {
		log.Printf("session cache read failed for %s: %v", id, err)
	}
	manager.Restore(ctx, session)
	return manager
}

// Persist writes the manager's provider session to the cache, or removes the
// cached entry when the manager holds none. Writes for dropped sessions are
// discarded; the lock orders them against Drop.
func (r *Registry) Persist(ctx context.Context, id string, manager *auth.Manager) {
	snapshot := manager.Snapshot()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, alive := r.entries[id]; !alive {
		return
	}
	if snapshot.Session == nil {
		if err := r.cache.Delete(ctx, id); err != nil {
			log.Printf("session cache delete failed for %s: %v", id, err)
		}
		return
	}
	if err := r.cache.Put(ctx, id, *snapshot.Session, r.ttl); err != nil {
		log.Printf("session cache write failed for %s: %v", id, err)
	}
}

// Drop removes the entry and its cached session, stopping the keep-alive loop.
func (r *Registry) Drop(ctx context.Context, id string) {
	r.mu.Lock()
	entry, ok := r.entries[id]
	delete(r.entries, id)
	if err := r.cache.Delete(ctx, id); err != nil {
		log.Printf("session cache delete failed for %s: %v", id, err)
	}
	r.mu.Unlock()
	if ok {
		entry.cancel()
	}
}

// Sweep evicts managers idle past the registry TTL.
func (r *Registry) Sweep() int {
	cutoff := time.Now().Add(-r.ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, entry := range r.entries {
		if entry.lastSeen.Before(cutoff) {
			entry.cancel()
			delete(r.entries, id)
			evicted++
		}
	}
	return evicted
}

// Run sweeps idle managers until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := r.Sweep(); evicted > 0 {
				log.Printf("swept %d idle sessions", evicted)
			}
		}
	}
}
