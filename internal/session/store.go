package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gcg-eyewear/storefront/internal/domain"
)

// persisted is the on-disk session shape: the two credential entries the
// admin console keeps between runs.
type persisted struct {
	AdminToken string            `json:"admin_token,omitempty"`
	AdminUser  *domain.AdminUser `json:"admin_user,omitempty"`
}

// Store holds the admin session credentials. It is passed explicitly to the
// API client and to route guards; there is no ambient global session. The
// invalidation callback fires exactly once per session even when several
// concurrent requests observe a 401 in the same tick.
type Store struct {
	mu           sync.Mutex
	path         string
	token        string
	user         *domain.AdminUser
	invalidated  bool
	onInvalidate func()
}

// Open loads the session store from the given file path, creating parent
// directories as needed. A missing file yields an empty (unauthenticated)
// store.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		// A corrupt session file is treated as logged out.
		return s, nil
	}

	s.token = p.AdminToken
	s.user = p.AdminUser
	return s, nil
}

// OnInvalidate registers the callback fired when the session is invalidated
// by a 401. The top-level router uses it to steer the operator back to the
// login flow; the transport layer itself never navigates.
func (s *Store) OnInvalidate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onInvalidate = fn
}

// SetSession stores the credentials from a successful login and persists
// them. It re-arms the invalidation callback for the new session.
func (s *Store) SetSession(token string, user domain.AdminUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.user = &user
	s.invalidated = false
	return s.persistLocked()
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns a copy of the current admin user, or nil when logged out.
func (s *Store) User() *domain.AdminUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether both a token and a user record are present.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.user != nil
}

// Clear removes the credentials (logout). It does not fire the invalidation
// callback; that is reserved for backend-driven invalidation.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	return s.persistLocked()
}

// Invalidate clears the credentials in response to a 401. The registered
// callback fires exactly once per session; later calls from concurrent
// requests are no-ops.
func (s *Store) Invalidate() {
	s.mu.Lock()
	if s.invalidated {
		s.mu.Unlock()
		return
	}
	s.invalidated = true
	s.token = ""
	s.user = nil
	_ = s.persistLocked()
	fn := s.onInvalidate
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// ExpiresWithin reports whether the token's exp claim falls within d from
// now. The claim is read without signature verification; the backend is
// the authority, this is only a local pre-check to skip a doomed request.
// Tokens without a readable exp claim report false.
func (s *Store) ExpiresWithin(d time.Duration) bool {
	token := s.Token()
	if token == "" {
		return false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return time.Until(exp.Time) < d
}

func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	p := persisted{AdminToken: s.token, AdminUser: s.user}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
