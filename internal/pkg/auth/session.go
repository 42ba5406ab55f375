package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/yigit/lmsadmin/internal/app/models"
)

const (
	sessionUserIDKey = "user_id"
	sessionEmailKey  = "email"
	sessionRoleKey   = "role"
	// sessionIDKey names the session so logout can revoke it in the RevocationStore
	sessionIDKey  = "sid"
	sessionExpKey = "exp"

	defaultSessionLifetime = 24 * time.Hour
)

// SessionConfig configures the cookie session store
type SessionConfig struct {
	Name   string
	Secret string
	MaxAge int
	Secure bool
}

// SessionManager stores the logged in principal in a signed cookie
type SessionManager struct {
	store    *sessions.CookieStore
	name     string
	lifetime time.Duration
	now      func() time.Time
}

// NewSessionManager creates a cookie backed session manager
func NewSessionManager(cfg SessionConfig) *SessionManager {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	lifetime := time.Duration(cfg.MaxAge) * time.Second
	if lifetime <= 0 {
		lifetime = defaultSessionLifetime
	}
	return &SessionManager{store: store, name: cfg.Name, lifetime: lifetime, now: time.Now}
}

// Start writes a new session for user
func (m *SessionManager) Start(w http.ResponseWriter, r *http.Request, user *models.User) error {
	session, err := m.store.Get(r, m.name)
	if err != nil {
		// a stale or tampered cookie still yields a fresh session
		session, _ = m.store.New(r, m.name)
	}
	session.Values[sessionUserIDKey] = user.ID
	session.Values[sessionEmailKey] = user.Email
	session.Values[sessionRoleKey] = string(user.RoleType)
	session.Values[sessionIDKey] = uuid.NewString()
	session.Values[sessionExpKey] = m.now().Add(m.lifetime).Unix()
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load returns the principal of the request session, if any. Sessions past their
// server-side expiry are ignored even when the client still sends the cookie.
func (m *SessionManager) Load(r *http.Request) (Principal, bool) {
	session, err := m.store.Get(r, m.name)
	if err != nil || session.IsNew {
		return Principal{}, false
	}

	userID, ok := session.Values[sessionUserIDKey].(int64)
	if !ok || userID <= 0 {
		return Principal{}, false
	}
	sid, _ := session.Values[sessionIDKey].(string)
	exp, _ := session.Values[sessionExpKey].(int64)
	if sid == "" || m.now().Unix() >= exp {
		return Principal{}, false
	}
	email, _ := session.Values[sessionEmailKey].(string)
	role, _ := session.Values[sessionRoleKey].(string)

	return Principal{
		UserID:      userID,
		Email:       email,
		Role:        models.RoleType(role),
		Source:      SourceSession,
		TokenID:     sid,
		TokenExpiry: exp,
	}, true
}

// End expires the session cookie
func (m *SessionManager) End(w http.ResponseWriter, r *http.Request) error {
	session, err := m.store.Get(r, m.name)
	if err != nil {
		session, _ = m.store.New(r, m.name)
	}
	session.Options.MaxAge = -1
	session.Values = map[interface{}]interface{}{}
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
