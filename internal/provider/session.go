package provider

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the opaque credential issued by the auth provider. The portal
// never mints or verifies these tokens; it only reads the registered claims
// to know who the subject is and when the credential dies.
type Session struct {
	Subject      string            `json:"subject"`
	Email        string            `json:"email"`
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	TokenType    string            `json:"token_type"`
	IssuedAt     time.Time         `json:"issued_at"`
	ExpiresAt    time.Time         `json:"expires_at"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

func (s Session) Valid() bool {
	return s.AccessToken != "" && time.Now().UTC().Before(s.ExpiresAt)
}

// ExpiresWithin reports whether the session dies inside the given window,
// i.e. whether a refresh is due.
func (s Session) ExpiresWithin(window time.Duration) bool {
	return time.Now().UTC().Add(window).After(s.ExpiresAt)
}

type sessionClaims struct {
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	jwt.RegisteredClaims
}

// applyTokenClaims fills subject, timestamps and metadata from the access
// token. The token is provider-signed with a key the portal does not hold,
// so the claims are read without verification; authenticity is established
// by having received the token over the provider's TLS endpoint.
func (s *Session) applyTokenClaims() {
	if s.AccessToken == "" {
		return
	}
	var claims sessionClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s.AccessToken, &claims); err != nil {
		return
	}
	if claims.Subject != "" {
		s.Subject = claims.Subject
	}
	if claims.Email != "" && s.Email == "" {
		s.Email = claims.Email
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	if len(claims.UserMetadata) > 0 {
		if s.Metadata == nil {
			s.Metadata = make(map[string]string, len(claims.UserMetadata))
		}
		for key, value := range claims.UserMetadata {
			if str, ok := value.(string); ok {
				s.Metadata[key] = str
			}
		}
	}
}
