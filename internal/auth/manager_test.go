package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/inqgamerz48/university-management-v2.0/internal/backend"
	"github.com/inqgamerz48/university-management-v2.0/internal/provider"
	"github.com/inqgamerz48/university-management-v2.0/internal/role"
)

type fakeStore struct {
	mu         sync.Mutex
	session    provider.Session
	signInErr  error
	signUpErr  error
	signOutErr error
	signOuts   int
	refreshed  provider.Session
	refreshErr error
	resetErr   error
}

func (f *fakeStore) SignInWithPassword(ctx context.Context, email, password string) (provider.Session, error) {
	if f.signInErr != nil {
		return provider.Session{}, f.signInErr
	}
	return f.session, nil
}

func (f *fakeStore) SignUp(ctx context.Context, email, password string, meta provider.Metadata) error {
	return f.signUpErr
}

func (f *fakeStore) SignOut(ctx context.Context, accessToken string) error {
	f.mu.Lock()
	f.signOuts++
	f.mu.Unlock()
	return f.signOutErr
}

func (f *fakeStore) Refresh(ctx context.Context, refreshToken string) (provider.Session, error) {
	if f.refreshErr != nil {
		return provider.Session{}, f.refreshErr
	}
	return f.refreshed, nil
}

func (f *fakeStore) RequestPasswordReset(ctx context.Context, email string) error {
	return f.resetErr
}

type fakeProfiles struct {
	mu      sync.Mutex
	profile backend.Profile
	err     error
	calls   int
	entered chan struct{}
	gate    chan struct{}
}

func (f *fakeProfiles) Me(ctx context.Context, token string) (backend.Profile, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return backend.Profile{}, f.err
	}
	return f.profile, nil
}

func liveSession() provider.Session {
	return provider.Session{
		Subject:      "user-1",
		Email:        "alice@uni.edu",
		AccessToken:  "tok-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().UTC().Add(time.Hour),
	}
}

func TestLoginFacultyLandsOnFacultyArea(t *testing.T) {
	store := &fakeStore{session: liveSession()}
	profiles := &fakeProfiles{profile: backend.Profile{ID: "user-1", Role: role.Faculty, Name: "Alice"}}
	manager := NewManager(store, profiles)

	landing, err := manager.Login(context.Background(), "alice@uni.edu", "password1")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if landing != "/faculty" {
		t.Fatalf("expected /faculty landing, got %s", landing)
	}

	snapshot := manager.Snapshot()
	if !snapshot.IsAuthenticated || snapshot.Profile == nil || snapshot.Profile.Role != role.Faculty {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}
	if snapshot.Loading {
		t.Fatalf("loading must clear after login")
	}
}

func TestLoginRejectionLeavesStateUntouched(t *testing.T) {
	store := &fakeStore{signInErr: &provider.AuthError{Status: 400, Message: "Invalid login credentials"}}
	profiles := &fakeProfiles{}
	manager := NewManager(store, profiles)

	_, err := manager.Login(context.Background(), "alice@uni.edu", "wrong")
	var authErr *provider.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}

	snapshot := manager.Snapshot()
	if snapshot.Session != nil || snapshot.Profile != nil {
		t.Fatalf("rejected login must not store partial state: %+v", snapshot)
	}
	if profiles.calls != 0 {
		t.Fatalf("profile must not be fetched after a rejection")
	}
}

func TestLoginFailsWhenProfileFetchFails(t *testing.T) {
	store := &fakeStore{session: liveSession()}
	profiles := &fakeProfiles{err: &backend.ApiError{Status: 500, Detail: "Internal Server Error"}}
	manager := NewManager(store, profiles)

	landing, err := manager.Login(context.Background(), "alice@uni.edu", "password1")
	var apiErr *backend.ApiError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected the fetch error to surface, got landing=%q err=%v", landing, err)
	}

	snapshot := manager.Snapshot()
	if snapshot.Session != nil || snapshot.Profile != nil || snapshot.IsAuthenticated {
		t.Fatalf("a session without a profile must not survive a login: %+v", snapshot)
	}
	if store.signOuts != 1 {
		t.Fatalf("expected the orphaned session to be revoked, got %d revocations", store.signOuts)
	}
}

func TestLogoutClearsStateEvenWhenRevocationFails(t *testing.T) {
	store := &fakeStore{session: liveSession(), signOutErr: errors.New("provider down")}
	profiles := &fakeProfiles{profile: backend.Profile{ID: "user-1", Role: role.Student}}
	manager := NewManager(store, profiles)

	if _, err := manager.Login(context.Background(), "alice@uni.edu", "password1"); err != nil {
		t.Fatalf("login error: %v", err)
	}

	landing := manager.Logout(context.Background())
	if landing != "/" {
		t.Fatalf("logout must land on /, got %s", landing)
	}
	snapshot := manager.Snapshot()
	if snapshot.Session != nil || snapshot.Profile != nil || snapshot.IsAuthenticated {
		t.Fatalf("logout must clear state unconditionally: %+v", snapshot)
	}
	if store.signOuts != 1 {
		t.Fatalf("expected one revocation attempt, got %d", store.signOuts)
	}
}

func TestRefreshUserIsIdempotent(t *testing.T) {
	store := &fakeStore{session: liveSession()}
	profiles := &fakeProfiles{profile: backend.Profile{ID: "user-1", Role: role.Student, Name: "Alice"}}
	manager := NewManager(store, profiles)

	if _, err := manager.Login(context.Background(), "alice@uni.edu", "password1"); err != nil {
		t.Fatalf("login error: %v", err)
	}

	if err := manager.RefreshUser(context.Background()); err != nil {
		t.Fatalf("refresh error: %v", err)
	}
	first := manager.Snapshot().Profile
	if err := manager.RefreshUser(context.Background()); err != nil {
		t.Fatalf("refresh error: %v", err)
	}
	second := manager.Snapshot().Profile
	if first == nil || second == nil || *first != *second {
		t.Fatalf("refreshUser must be a pure read: %+v vs %+v", first, second)
	}
}

func TestUnauthorizedProfileFetchClearsProfile(t *testing.T) {
	store := &fakeStore{session: liveSession()}
	profiles := &fakeProfiles{profile: backend.Profile{ID: "user-1", Role: role.Student}}
	manager := NewManager(store, profiles)

	if _, err := manager.Login(context.Background(), "alice@uni.edu", "password1"); err != nil {
		t.Fatalf("login error: %v", err)
	}

	profiles.mu.Lock()
	profiles.err = &backend.ApiError{Status: 401, Detail: "Could not validate credentials"}
	profiles.mu.Unlock()

	if err := manager.RefreshUser(context.Background()); err != nil {
		t.Fatalf("a 401 is absence, not an error: %v", err)
	}
	snapshot := manager.Snapshot()
	if snapshot.Profile != nil {
		t.Fatalf("profile must be absent after a 401")
	}
	if snapshot.Loading {
		t.Fatalf("loading must stay false")
	}
}

func TestStaleFetchDiscardedAfterLogout(t *testing.T) {
	store := &fakeStore{session: liveSession()}
	profiles := &fakeProfiles{
		profile: backend.Profile{ID: "user-1", Role: role.Student},
		entered: make(chan struct{}),
		gate:    make(chan struct{}),
	}
	manager := NewManager(store, profiles)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = manager.Login(context.Background(), "alice@uni.edu", "password1")
	}()

	<-profiles.entered // the profile fetch is in flight
	manager.Logout(context.Background())
	close(profiles.gate) // now let the slow fetch resolve
	<-done

	snapshot := manager.Snapshot()
	if snapshot.Profile != nil || snapshot.Session != nil {
		t.Fatalf("slow fetch resolving after logout must be discarded: %+v", snapshot)
	}
}

func TestRestoreWithoutSessionClearsLoading(t *testing.T) {
	manager := NewManager(&fakeStore{}, &fakeProfiles{})
	if !manager.Snapshot().Loading {
		t.Fatalf("manager must start loading")
	}
	manager.Restore(context.Background(), provider.Session{})
	snapshot := manager.Snapshot()
	if snapshot.Loading || snapshot.IsAuthenticated {
		t.Fatalf("absence of a session is not an error: %+v", snapshot)
	}
}

func TestRestoreRefreshesExpiredSession(t *testing.T) {
	store := &fakeStore{refreshed: liveSession()}
	profiles := &fakeProfiles{profile: backend.Profile{ID: "user-1", Role: role.Admin}}
	manager := NewManager(store, profiles)

	expired := liveSession()
	expired.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	manager.Restore(context.Background(), expired)

	snapshot := manager.Snapshot()
	if !snapshot.IsAuthenticated || snapshot.Session == nil || !snapshot.Session.Valid() {
		t.Fatalf("expected a refreshed, valid session: %+v", snapshot)
	}
}

func TestFailedRenewalDestroysSession(t *testing.T) {
	store := &fakeStore{session: liveSession(), refreshErr: &provider.AuthError{Status: 401, Message: "refresh token revoked"}}
	profiles := &fakeProfiles{profile: backend.Profile{ID: "user-1", Role: role.Student}}
	manager := NewManager(store, profiles)

	if _, err := manager.Login(context.Background(), "alice@uni.edu", "password1"); err != nil {
		t.Fatalf("login error: %v", err)
	}

	changes, cancel := manager.Subscribe()
	defer cancel()

	// force the renewal window to cover the whole session lifetime
	manager.RefreshWindow = 2 * time.Hour
	manager.refreshIfDue(context.Background())

	select {
	case change := <-changes:
		if change.Session != nil || change.Profile != nil {
			t.Fatalf("expected a signed-out change, got %+v", change)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected a session-change notification")
	}
	if manager.Snapshot().IsAuthenticated {
		t.Fatalf("failed renewal must destroy the session")
	}
}

func TestSubscribeSeesLogin(t *testing.T) {
	store := &fakeStore{session: liveSession()}
	profiles := &fakeProfiles{profile: backend.Profile{ID: "user-1", Role: role.Student}}
	manager := NewManager(store, profiles)

	changes, cancel := manager.Subscribe()
	defer cancel()

	if _, err := manager.Login(context.Background(), "alice@uni.edu", "password1"); err != nil {
		t.Fatalf("login error: %v", err)
	}

	select {
	case change := <-changes:
		if change.Session == nil {
			t.Fatalf("expected a session in the login change")
		}
	case <-time.After(time.Second):
		t.Fatalf("expected a change notification on login")
	}
}
