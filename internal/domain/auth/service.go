package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"gearhr/internal/domain/apperr"
	"gearhr/internal/platform/recordstore"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// SeedUser is created when the credential store loads empty.
type SeedUser struct {
	UserID   string
	Password string
	Role     string
	Email    string
}

type Service struct {
	mu    sync.Mutex
	store *recordstore.Store[string, Credential]
}

func NewService(backend recordstore.Backend) *Service {
	return &Service{store: recordstore.New[string, Credential](backend, CredentialCodec{})}
}

// Load reads the credential store and seeds it when it loads empty and
// seed has a password.
func (s *Service) Load(ctx context.Context, seed SeedUser) (recordstore.LoadStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.store.Load(ctx)
	if err != nil {
		return stats, err
	}
	if stats.Loaded > 0 || seed.UserID == "" || seed.Password == "" {
		return stats, nil
	}
	hash, err := HashPassword(seed.Password)
	if err != nil {
		return stats, err
	}
	cred := Credential{UserID: seed.UserID, Password: hash, Role: NormalizeRole(seed.Role), Email: seed.Email}
	if err := s.store.Put(ctx, cred); err != nil {
		return stats, err
	}
	slog.Info("seeded credential", "userId", seed.UserID, "role", cred.Role)
	return stats, nil
}

// Authenticate checks a password against the stored credential. Plaintext
// passwords from older files are accepted once and replaced with a bcrypt
// hash.
func (s *Service) Authenticate(ctx context.Context, userID, password string) (Credential, error) {
	userID = strings.TrimSpace(userID)
	cred, ok := s.store.Get(userID)
	if !ok || password == "" {
		return Credential{}, ErrInvalidCredentials
	}

	if IsHashed(cred.Password) {
		if err := CheckPassword(cred.Password, password); err != nil {
			return Credential{}, ErrInvalidCredentials
		}
		return redact(cred), nil
	}

	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(cred.Password)), []byte(password)) != 1 {
		return Credential{}, ErrInvalidCredentials
	}
	if err := s.upgrade(ctx, cred, password); err != nil {
		slog.Warn("password rehash failed", "userId", userID, "err", err)
	}
	return redact(cred), nil
}

// upgrade replaces the plaintext password seen by Authenticate with its hash.
// The write is skipped when the stored password changed in the meantime.
func (s *Service) upgrade(ctx context.Context, seen Credential, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.store.Get(seen.UserID)
	if !ok || current.Password != seen.Password {
		return nil
	}
	current.Password = hash
	return s.store.Put(ctx, current)
}

// SetCredential creates or replaces a login. The password is stored hashed.
func (s *Service) SetCredential(ctx context.Context, userID, password, role, email string) (Credential, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Credential{}, apperr.Invalid("userId", "is required")
	}
	if len(password) < 8 {
		return Credential{}, apperr.Invalid("password", "must be at least 8 characters")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return Credential{}, err
	}
	cred := Credential{UserID: userID, Password: hash, Role: NormalizeRole(role), Email: strings.TrimSpace(email)}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Put(ctx, cred); err != nil {
		return Credential{}, err
	}
	return redact(cred), nil
}

func (s *Service) Get(userID string) (Credential, error) {
	cred, ok := s.store.Get(userID)
	if !ok {
		return Credential{}, apperr.NotFound("user", userID)
	}
	return redact(cred), nil
}

func redact(c Credential) Credential {
	c.Password = ""
	c.Role = NormalizeRole(c.Role)
	return c
}
