// Package session owns the authenticated identity. The store is the only
// writer of the persisted token/user entries; every mutation updates all
// subscribers synchronously.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clipstream/clipstream/internal/client/localstate"
	"github.com/clipstream/clipstream/internal/client/models"
	"github.com/clipstream/clipstream/internal/dbx"
	"github.com/clipstream/clipstream/internal/logging"
)

// Gateway is the slice of the backend API the store needs.
type Gateway interface {
	SignIn(ctx context.Context, creds models.Credentials) (models.AuthResult, error)
	SignUp(ctx context.Context, profile models.SignupProfile) (models.AuthResult, error)
}

// Observer receives the new session after every mutation; nil means
// logged out.
type Observer func(*models.Session)

// Store holds the current session and keeps it in sync with the durable
// token/user entries.
type Store struct {
	db  *sql.DB
	gw  Gateway
	log logging.Logger

	mu        sync.RWMutex
	current   *models.Session
	token     string
	observers []Observer
}

func NewStore(db *sql.DB, gw Gateway, log logging.Logger) *Store {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Store{db: db, gw: gw, log: log}
}

func (s *Store) repo() localstate.Repository {
	return localstate.NewSQLiteRepository(s.db)
}

// Restore loads the persisted identity. It fails safe: a read error,
// a missing token, or a malformed user record all yield an unauthenticated
// state, never an error. The invariant is token-first — without a token the
// user entry is ignored no matter what it contains.
func (s *Store) Restore(ctx context.Context) *models.Session {
	repo := s.repo()

	tokenRaw, err := repo.Get(ctx, localstate.KeyToken)
	if err != nil {
		s.log.Warn(ctx, "failed to read persisted token, treating as signed out", "error", err)
		return s.replace("", nil)
	}
	token := string(tokenRaw)
	if token == "" {
		return s.replace("", nil)
	}

	userRaw, err := repo.Get(ctx, localstate.KeyUser)
	if err != nil || len(userRaw) == 0 {
		s.log.Warn(ctx, "token present but user record unreadable, treating as signed out")
		return s.replace("", nil)
	}

	var sess models.Session
	if err := json.Unmarshal(userRaw, &sess); err != nil {
		s.log.Warn(ctx, "malformed persisted session, treating as signed out", "error", err)
		return s.replace("", nil)
	}

	if exp, ok := tokenExpiry(token); ok && exp.Before(time.Now()) {
		// informational only: the token stays opaque for auth purposes and
		// the backend remains the authority on its validity
		s.log.Warn(ctx, "stored bearer token looks expired", "expired_at", exp)
	}

	return s.replace(token, &sess)
}

// Login authenticates through the gateway, persists token and user as one
// logical unit, and publishes the new session.
func (s *Store) Login(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	res, err := s.gw.SignIn(ctx, creds)
	if err != nil {
		return nil, err
	}
	return s.accept(ctx, res)
}

// Signup mirrors Login over the sign-up operation.
func (s *Store) Signup(ctx context.Context, profile models.SignupProfile) (*models.Session, error) {
	res, err := s.gw.SignUp(ctx, profile)
	if err != nil {
		return nil, err
	}
	return s.accept(ctx, res)
}

func (s *Store) accept(ctx context.Context, res models.AuthResult) (*models.Session, error) {
	userRaw, err := json.Marshal(res.User)
	if err != nil {
		return nil, err
	}

	// both entries land in one transaction: a partial write must never
	// leave a token without its user or vice versa
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := localstate.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, localstate.KeyToken, []byte(res.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, localstate.KeyUser, userRaw)
	})
	if err != nil {
		return nil, err
	}

	sess := res.User
	return s.replace(res.Token, &sess), nil
}

// Logout clears both persisted entries and publishes a nil session.
func (s *Store) Logout(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := localstate.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, localstate.KeyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, localstate.KeyUser)
	})
	if err != nil {
		return err
	}
	s.replace("", nil)
	return nil
}

// Current returns the session, or nil when signed out.
func (s *Store) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// Token returns the in-memory bearer token ("" when signed out).
func (s *Store) Token(_ context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// TokenExpiry reports the token's exp claim when the token is a JWT
// carrying one. Display-only; an opaque token simply reports false.
func (s *Store) TokenExpiry() (time.Time, bool) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	return tokenExpiry(token)
}

// Subscribe registers an observer invoked synchronously on every mutation.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// replace swaps the session wholesale and notifies observers.
func (s *Store) replace(token string, sess *models.Session) *models.Session {
	s.mu.Lock()
	s.token = token
	s.current = sess
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(sess)
	}
	return sess
}

// tokenExpiry parses the token as an unverified JWT and extracts exp.
// Verification happens server-side; the claim is only read for display.
func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
