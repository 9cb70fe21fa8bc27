package httpx

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/inqgamerz48/university-management-v2.0/internal/auth"
	"github.com/inqgamerz48/university-management-v2.0/internal/backend"
	"github.com/inqgamerz48/university-management-v2.0/internal/config"
	"github.com/inqgamerz48/university-management-v2.0/internal/provider"
	"github.com/inqgamerz48/university-management-v2.0/internal/sessioncache"
	"github.com/inqgamerz48/university-management-v2.0/internal/storage"
)

func unsignedToken(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	header, _ := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	encode := base64.RawURLEncoding.EncodeToString
	return encode(header) + "." + encode(payload) + ".sig"
}

type testAccount struct {
	password string
	profile  backend.Profile
}

// portalFixture wires a full portal over fake provider, backend and storage
// servers and returns a client with a cookie jar that does not follow
// redirects.
type portalFixture struct {
	portal *httptest.Server
	client *http.Client
	tokens map[string]backend.Profile
}

func newPortal(t *testing.T, accounts map[string]testAccount) *portalFixture {
	t.Helper()
	tokens := map[string]backend.Profile{}

	providerSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/token" && r.URL.Query().Get("grant_type") == "password":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			account, ok := accounts[body["email"]]
			if !ok || account.password != body["password"] {
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
				return
			}
			token := unsignedToken(t, map[string]interface{}{
				"sub":   account.profile.ID,
				"email": account.profile.Email,
				"exp":   time.Now().Add(time.Hour).Unix(),
				"user_metadata": map[string]string{
					"role": string(account.profile.Role),
					"name": account.profile.Name,
				},
			})
			tokens[token] = account.profile
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token":  token,
				"token_type":    "bearer",
				"expires_in":    3600,
				"refresh_token": "refresh-" + account.profile.ID,
				"user":          map[string]string{"id": account.profile.ID, "email": account.profile.Email},
			})
		case r.URL.Path == "/logout":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(providerSrv.Close)

	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		profile, ok := tokens[token]
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"})
			return
		}
		switch r.URL.Path {
		case "/auth/me":
			_ = json.NewEncoder(w).Encode(profile)
		case "/dashboard/student":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"enrolled_courses": 3})
		case "/dashboard/faculty":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"courses_teaching": 2})
		case "/dashboard/admin/stats":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"total_students": 120})
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Not found"})
		}
	}))
	t.Cleanup(backendSrv.Close)

	storageSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(storageSrv.Close)

	providerClient := provider.NewClient(providerSrv.URL, "anon-key", 5*time.Second)
	backendClient := backend.NewClient(backendSrv.URL, 5*time.Second)
	storageClient := storage.NewClient(storageSrv.URL, "service-key", 5*time.Second)

	registry := NewRegistry(sessioncache.NewMemory(), func() *auth.Manager {
		return auth.NewManager(providerClient, backendClient)
	}, time.Hour)

	server := NewServer(config.Config{}, registry, backendClient, storageClient)
	portal := httptest.NewServer(server.Router())
	t.Cleanup(portal.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &portalFixture{portal: portal, client: client, tokens: tokens}
}

func studentAccounts() map[string]testAccount {
	return map[string]testAccount{
		"alice@uni.edu": {
			password: "password1",
			profile:  backend.Profile{ID: "user-1", Email: "alice@uni.edu", Name: "Alice", Role: "student"},
		},
		"bob@uni.edu": {
			password: "password2",
			profile:  backend.Profile{ID: "user-2", Email: "bob@uni.edu", Name: "Bob", Role: "admin"},
		},
	}
}

func (f *portalFixture) postJSON(t *testing.T, path string, payload interface{}) *http.Response {
	t.Helper()
	body, _ := json.Marshal(payload)
	resp, err := f.client.Post(f.portal.URL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func (f *portalFixture) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := f.client.Get(f.portal.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func (f *portalFixture) login(t *testing.T, email, password, roleName string) {
	t.Helper()
	resp := f.postJSON(t, "/auth/login", map[string]string{
		"email": email, "password": password, "role": roleName,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("login failed with %d: %s", resp.StatusCode, raw)
	}
}

func TestLoginRedirectsToRoleLanding(t *testing.T) {
	fixture := newPortal(t, studentAccounts())

	resp := fixture.postJSON(t, "/auth/login", map[string]string{
		"email": "alice@uni.edu", "password": "password1", "role": "student",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Redirect string          `json:"redirect"`
		User     backend.Profile `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Redirect != "/student" {
		t.Fatalf("expected /student redirect, got %s", result.Redirect)
	}
	if result.User.Name != "Alice" {
		t.Fatalf("expected resolved profile, got %+v", result.User)
	}

	dashboard := fixture.get(t, "/student/")
	defer dashboard.Body.Close()
	if dashboard.StatusCode != http.StatusOK {
		t.Fatalf("expected dashboard 200, got %d", dashboard.StatusCode)
	}
}

func TestLoginValidationErrors(t *testing.T) {
	fixture := newPortal(t, studentAccounts())

	resp := fixture.postJSON(t, "/auth/login", map[string]string{
		"email": "not-an-email", "password": "password1", "role": "student",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	var result struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Errors["email"] != "Please enter a valid email address." {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
}

func TestLoginRejectedByProvider(t *testing.T) {
	fixture := newPortal(t, studentAccounts())

	resp := fixture.postJSON(t, "/auth/login", map[string]string{
		"email": "alice@uni.edu", "password": "wrongpassword", "role": "student",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var result map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&result)
	if result["error"] != "Invalid login credentials" {
		t.Fatalf("expected provider message, got %v", result)
	}
}

func TestAnonymousRedirectedToLanding(t *testing.T) {
	fixture := newPortal(t, studentAccounts())

	resp := fixture.get(t, "/student/")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if location := resp.Header.Get("Location"); location != "/" {
		t.Fatalf("expected redirect to /, got %s", location)
	}
}

func TestRoleMismatchRedirectedToUnauthorized(t *testing.T) {
	fixture := newPortal(t, studentAccounts())
	fixture.login(t, "alice@uni.edu", "password1", "student")

	resp := fixture.get(t, "/admin/")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if location := resp.Header.Get("Location"); location != "/unauthorized" {
		t.Fatalf("expected redirect to /unauthorized, got %s", location)
	}
}

func TestAdminAreaServesAdmin(t *testing.T) {
	fixture := newPortal(t, studentAccounts())
	fixture.login(t, "bob@uni.edu", "password2", "admin")

	resp := fixture.get(t, "/admin/")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var stats map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&stats)
	if stats["total_students"] != float64(120) {
		t.Fatalf("unexpected stats payload: %v", stats)
	}
}

func TestLogoutRevokesAccess(t *testing.T) {
	fixture := newPortal(t, studentAccounts())
	fixture.login(t, "alice@uni.edu", "password1", "student")

	resp := fixture.postJSON(t, "/auth/logout", map[string]string{})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var result map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&result)
	if result["redirect"] != "/" {
		t.Fatalf("expected redirect to /, got %v", result)
	}

	after := fixture.get(t, "/student/")
	defer after.Body.Close()
	if after.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 after logout, got %d", after.StatusCode)
	}
}

func TestNavServesRoleLinks(t *testing.T) {
	fixture := newPortal(t, studentAccounts())
	fixture.login(t, "alice@uni.edu", "password1", "student")

	resp := fixture.get(t, "/student/nav")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Role  string `json:"role"`
		Links []struct {
			Path  string `json:"path"`
			Label string `json:"label"`
		} `json:"links"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Role != "student" || len(result.Links) == 0 {
		t.Fatalf("unexpected nav payload: %+v", result)
	}
}

func TestSessionStateAnonymous(t *testing.T) {
	fixture := newPortal(t, studentAccounts())

	resp := fixture.get(t, "/auth/session")
	defer resp.Body.Close()

	var result struct {
		Authenticated bool `json:"authenticated"`
		Loading       bool `json:"loading"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Authenticated || result.Loading {
		t.Fatalf("expected resolved anonymous state, got %+v", result)
	}
}

func TestUploadRequiresAuthAndReturnsPublicURL(t *testing.T) {
	fixture := newPortal(t, studentAccounts())

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile("file", "essay.pdf")
	_, _ = part.Write([]byte("%PDF-1.4 test"))
	_ = writer.Close()

	anon, err := fixture.client.Post(fixture.portal.URL+"/files/submissions", writer.FormDataContentType(), bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	anon.Body.Close()
	if anon.StatusCode != http.StatusFound {
		t.Fatalf("expected anonymous upload redirect, got %d", anon.StatusCode)
	}

	fixture.login(t, "alice@uni.edu", "password1", "student")

	buf.Reset()
	writer = multipart.NewWriter(&buf)
	part, _ = writer.CreateFormFile("file", "essay.pdf")
	_, _ = part.Write([]byte("%PDF-1.4 test"))
	_ = writer.Close()

	resp, err := fixture.client.Post(fixture.portal.URL+"/files/submissions", writer.FormDataContentType(), bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, raw)
	}

	var result storage.UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Bucket != "submissions" || !strings.Contains(result.PublicURL, "/object/public/submissions/") {
		t.Fatalf("unexpected upload result: %+v", result)
	}
	if !strings.HasSuffix(result.Path, "/essay.pdf") {
		t.Fatalf("expected object path to keep the filename, got %s", result.Path)
	}
}
