package httpx

import (
	"context"
	"testing"
	"time"

	"github.com/inqgamerz48/university-management-v2.0/internal/auth"
	"github.com/inqgamerz48/university-management-v2.0/internal/backend"
	"github.com/inqgamerz48/university-management-v2.0/internal/provider"
	"github.com/inqgamerz48/university-management-v2.0/internal/sessioncache"
)

type rotatingStore struct{}

func (rotatingStore) SignInWithPassword(context.Context, string, string) (provider.Session, error) {
	return provider.Session{
		Subject:      "user-1",
		AccessToken:  "tok-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().UTC().Add(30 * time.Second),
	}, nil
}

func (rotatingStore) Refresh(context.Context, string) (provider.Session, error) {
	return provider.Session{
		Subject:      "user-1",
		AccessToken:  "tok-2",
		RefreshToken: "refresh-2",
		ExpiresAt:    time.Now().UTC().Add(time.Hour),
	}, nil
}

func (rotatingStore) SignUp(context.Context, string, string, provider.Metadata) error { return nil }
func (rotatingStore) SignOut(context.Context, string) error                           { return nil }
func (rotatingStore) RequestPasswordReset(context.Context, string) error              { return nil }

type staticProfiles struct{}

func (staticProfiles) Me(context.Context, string) (backend.Profile, error) {
	return backend.Profile{ID: "user-1", Email: "alice@uni.edu", Role: "student"}, nil
}

// A session the keep-alive loop renews must reach the cache with its rotated
// tokens, otherwise a portal restart would try the consumed refresh token and
// sign the browser out.
func TestRegistryPersistsRenewedSessions(t *testing.T) {
	cache := sessioncache.NewMemory()
	registry := NewRegistry(cache, func() *auth.Manager {
		manager := auth.NewManager(rotatingStore{}, staticProfiles{})
		manager.RefreshWindow = time.Hour // the issued session is always due
		manager.RefreshInterval = 10 * time.Millisecond
		return manager
	}, time.Hour)

	ctx := context.Background()
	manager := registry.Manager(ctx, "sid-1")
	if _, err := manager.Login(ctx, "alice@uni.edu", "password1"); err != nil {
		t.Fatalf("login error: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		session, ok, err := cache.Get(ctx, "sid-1")
		if err != nil {
			t.Fatalf("cache read: %v", err)
		}
		if ok && session.AccessToken == "tok-2" && session.RefreshToken == "refresh-2" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("cached session never tracked the renewal: ok=%v token=%q", ok, session.AccessToken)
		}
		time.Sleep(10 * time.Millisecond)
	}

	registry.Drop(ctx, "sid-1")
	if _, ok, _ := cache.Get(ctx, "sid-1"); ok {
		t.Fatalf("dropped session must leave the cache")
	}
}
