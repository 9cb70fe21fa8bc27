// Package auth owns the authentication state for one browser session: the
// provider Session, the application UserProfile and a loading flag. Every
// mutation funnels through the named operations below; consumers only read
// snapshots or subscribe to change notifications.
package auth

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/inqgamerz48/university-management-v2.0/internal/backend"
	"github.com/inqgamerz48/university-management-v2.0/internal/provider"
	"github.com/inqgamerz48/university-management-v2.0/internal/role"
)

// SessionStore is the slice of the auth provider the manager consumes.
type SessionStore interface {
	SignInWithPassword(ctx context.Context, email, password string) (provider.Session, error)
	SignUp(ctx context.Context, email, password string, meta provider.Metadata) error
	SignOut(ctx context.Context, accessToken string) error
	Refresh(ctx context.Context, refreshToken string) (provider.Session, error)
	RequestPasswordReset(ctx context.Context, email string) error
}

// ProfileFetcher exchanges a session token for the application profile.
type ProfileFetcher interface {
	Me(ctx context.Context, token string) (backend.Profile, error)
}

// Change is emitted to subscribers whenever session or profile state moves.
type Change struct {
	Session *provider.Session
	Profile *backend.Profile
}

// Snapshot is a read-only copy of the current state.
type Snapshot struct {
	Session         *provider.Session
	Profile         *backend.Profile
	Loading         bool
	IsAuthenticated bool
}

type Manager struct {
	store    SessionStore
	profiles ProfileFetcher

	mu       sync.Mutex
	session  *provider.Session
	profile  *backend.Profile
	loading  bool
	fetchSeq uint64

	subMu   sync.Mutex
	subs    map[int]chan Change
	nextSub int

	// RefreshWindow is how far ahead of expiry the background loop renews
	// the session. RefreshInterval is the loop's tick.
	RefreshWindow   time.Duration
	RefreshInterval time.Duration
}

func NewManager(store SessionStore, profiles ProfileFetcher) *Manager {
	return &Manager{
		store:           store,
		profiles:        profiles,
		loading:         true,
		subs:            make(map[int]chan Change),
		RefreshWindow:   2 * time.Minute,
		RefreshInterval: 30 * time.Second,
	}
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Session:         copySession(m.session),
		Profile:         copyProfile(m.profile),
		Loading:         m.loading,
		IsAuthenticated: m.profile != nil,
	}
}

// Subscribe registers for change notifications. The returned cancel must be
// called when the consumer goes away. Slow consumers miss intermediate
// changes rather than blocking the manager.
func (m *Manager) Subscribe() (<-chan Change, func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	id := m.nextSub
	m.nextSub++
	ch := make(chan Change, 1)
	m.subs[id] = ch
	return ch, func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		delete(m.subs, id)
	}
}

func (m *Manager) notify() {
	snapshot := m.Snapshot()
	change := Change{Session: snapshot.Session, Profile: snapshot.Profile}
	m.subMu.Lock()
	defer m.subMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- change:
		default:
			// drop the stale change; the subscriber will see the next one
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- change:
			default:
			}
		}
	}
}

// Login exchanges credentials for a session, fetches the profile and returns
// the landing path for the resolved role. A provider rejection surfaces as an
// *provider.AuthError and leaves local state untouched. A session whose
// profile cannot be fetched is not a login: the session is revoked, state is
// cleared and the fetch error surfaces.
func (m *Manager) Login(ctx context.Context, email, password string) (string, error) {
	session, err := m.store.SignInWithPassword(ctx, email, password)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.session = &session
	m.fetchSeq++
	seq := m.fetchSeq
	m.loading = false
	m.mu.Unlock()

	profile, fetchErr := m.profiles.Me(ctx, session.AccessToken)
	if fetchErr != nil {
		m.mu.Lock()
		if seq == m.fetchSeq {
			m.session = nil
			m.profile = nil
			m.fetchSeq++
		}
		m.mu.Unlock()
		if err := m.store.SignOut(ctx, session.AccessToken); err != nil {
			log.Printf("revoking session after failed profile fetch: %v", err)
		}
		m.notify()
		return "", fetchErr
	}
	m.applyProfile(seq, &profile, nil)
	m.notify()

	return m.landingFor(&session), nil
}

// Signup creates the account with the profile fields as provider metadata.
// It does not authenticate the caller; login happens separately once the
// account exists.
func (m *Manager) Signup(ctx context.Context, email, password string, meta provider.Metadata) error {
	return m.store.SignUp(ctx, email, password, meta)
}

// Logout revokes the session at the provider and clears local state
// unconditionally; a failed revocation is logged, never surfaced, so the
// client can never believe it is still authenticated.
func (m *Manager) Logout(ctx context.Context) string {
	m.mu.Lock()
	session := m.session
	m.session = nil
	m.profile = nil
	m.loading = false
	m.fetchSeq++ // invalidate any in-flight profile fetch
	m.mu.Unlock()

	if session != nil {
		if err := m.store.SignOut(ctx, session.AccessToken); err != nil {
			log.Printf("logout revocation failed: %v", err)
		}
	}
	m.notify()
	return "/"
}

// RefreshUser re-fetches the profile for the held session. A 401 from the
// backend means the session no longer maps to a profile: the profile is
// cleared and no error is returned (absence is a state, not a failure).
func (m *Manager) RefreshUser(ctx context.Context) error {
	m.mu.Lock()
	session := m.session
	m.fetchSeq++
	seq := m.fetchSeq
	m.mu.Unlock()

	if session == nil {
		return nil
	}

	profile, err := m.profiles.Me(ctx, session.AccessToken)
	m.applyProfile(seq, &profile, err)
	m.notify()
	if err != nil && !backend.IsUnauthorized(err) {
		return err
	}
	return nil
}

// ResetPassword delegates to the provider and mutates nothing locally.
func (m *Manager) ResetPassword(ctx context.Context, email string) error {
	return m.store.RequestPasswordReset(ctx, email)
}

// Restore runs the initialization protocol: recover a persisted session,
// refreshing it when stale, then fetch the profile. The loading flag clears
// once the first resolution (success or absence) completes.
func (m *Manager) Restore(ctx context.Context, session provider.Session) {
	if session.AccessToken == "" {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
		m.notify()
		return
	}

	if !session.Valid() && session.RefreshToken != "" {
		refreshed, err := m.store.Refresh(ctx, session.RefreshToken)
		if err != nil {
			m.mu.Lock()
			m.loading = false
			m.mu.Unlock()
			m.notify()
			return
		}
		session = refreshed
	}

	m.mu.Lock()
	m.session = &session
	m.fetchSeq++
	seq := m.fetchSeq
	m.loading = false
	m.mu.Unlock()

	profile, err := m.profiles.Me(ctx, session.AccessToken)
	m.applyProfile(seq, &profile, err)
	m.notify()
}

// Run keeps the session alive, renewing it ahead of expiry and emitting a
// change on every renewal. A renewal the provider rejects destroys the
// session. Returns when ctx is cancelled.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.refreshIfDue(ctx)
		}
	}
}

func (m *Manager) refreshIfDue(ctx context.Context) {
	m.mu.Lock()
	session := m.session
	m.mu.Unlock()
	if session == nil || !session.ExpiresWithin(m.RefreshWindow) {
		return
	}

	refreshed, err := m.store.Refresh(ctx, session.RefreshToken)
	if err != nil {
		log.Printf("session refresh failed: %v", err)
		m.mu.Lock()
		m.session = nil
		m.profile = nil
		m.fetchSeq++
		m.mu.Unlock()
		m.notify()
		return
	}

	m.mu.Lock()
	m.session = &refreshed
	m.mu.Unlock()
	m.notify()
}

// applyProfile commits a fetch result unless a later operation superseded it
// (last-write-wins via sequence numbers; see the stale-fetch hazard in the
// design notes).
func (m *Manager) applyProfile(seq uint64, profile *backend.Profile, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if seq != m.fetchSeq {
		return
	}
	if err != nil {
		if backend.IsUnauthorized(err) {
			m.profile = nil
		}
		return
	}
	m.profile = profile
}

func (m *Manager) landingFor(session *provider.Session) string {
	m.mu.Lock()
	profile := m.profile
	m.mu.Unlock()
	if profile != nil {
		return profile.Role.Landing()
	}
	if session != nil {
		if r, err := role.Parse(session.Metadata["role"]); err == nil {
			return r.Landing()
		}
	}
	return role.Student.Landing()
}

func copySession(s *provider.Session) *provider.Session {
	if s == nil {
		return nil
	}
	copied := *s
	return &copied
}

func copyProfile(p *backend.Profile) *backend.Profile {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}
