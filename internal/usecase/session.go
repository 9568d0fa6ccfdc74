package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/crors-digital/calltrack/internal/domain/model"
)

// Identity is the authenticated principal a session token maps to.
type Identity struct {
	UserID   int64      `json:"user_id"`
	Username string     `json:"username"`
	FullName string     `json:"full_name"`
	Role     model.Role `json:"role"`
}

// SessionStore maps opaque bearer tokens to authenticated identities.
// Tokens expire after the configured TTL. A missing token and an unknown
// token are indistinguishable to callers.
type SessionStore interface {
	// Create registers a new session and returns its token.
	Create(ctx context.Context, identity Identity) (string, error)
	// IsValid reports whether the token maps to a live session.
	IsValid(ctx context.Context, token string) bool
	// Resolve returns the identity behind the token, or false.
	Resolve(ctx context.Context, token string) (*Identity, bool)
	// Invalidate removes the session. Invalidating an absent token is a
	// no-op.
	Invalidate(ctx context.Context, token string) error
}

// newSessionToken returns a 256-bit random URL-safe token.
func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

type memorySession struct {
	identity  Identity
	expiresAt time.Time
}

// MemorySessionStore keeps sessions in process memory. Sessions are lost on
// restart and invisible to other instances; the redis backend covers
// multi-instance deployments.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	ttl      time.Duration
	logger   *zap.Logger
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemorySessionStore creates an in-memory session store and starts its
// expiry sweeper.
func NewMemorySessionStore(ttl time.Duration, logger *zap.Logger) *MemorySessionStore {
	s := &MemorySessionStore{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		logger:   logger,
		stop:     make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *MemorySessionStore) Create(ctx context.Context, identity Identity) (string, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// With 256 bits of entropy a collision means the RNG is broken.
	if _, exists := s.sessions[token]; exists {
		return "", fmt.Errorf("session token collision")
	}

	s.sessions[token] = memorySession{
		identity:  identity,
		expiresAt: time.Now().Add(s.ttl),
	}
	return token, nil
}

func (s *MemorySessionStore) IsValid(ctx context.Context, token string) bool {
	_, ok := s.Resolve(ctx, token)
	return ok
}

func (s *MemorySessionStore) Resolve(ctx context.Context, token string) (*Identity, bool) {
	if token == "" {
		return nil, false
	}

	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(sess.expiresAt) {
		// Expired entries are removed lazily here and periodically by the
		// sweeper.
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, false
	}

	identity := sess.identity
	return &identity, true
}

func (s *MemorySessionStore) Invalidate(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

// Close stops the expiry sweeper.
func (s *MemorySessionStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *MemorySessionStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			removed := 0
			for token, sess := range s.sessions {
				if now.After(sess.expiresAt) {
					delete(s.sessions, token)
					removed++
				}
			}
			s.mu.Unlock()
			if removed > 0 {
				s.logger.Debug("Swept expired sessions", zap.Int("removed", removed))
			}
		}
	}
}
