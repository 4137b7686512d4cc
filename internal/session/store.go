package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/hostelworks/hostel-console/internal/dtos"
	"github.com/hostelworks/hostel-console/internal/models"
	"github.com/hostelworks/hostel-console/internal/storage"
	"github.com/hostelworks/hostel-console/internal/utils"
)

// ErrCorruptSession marks persisted session data that cannot be read back.
// Restore handles it itself by starting over unauthenticated.
var ErrCorruptSession = errors.New(utils.ErrCodeCorrupt)

// sealedPrefix marks a token encrypted at rest.
const sealedPrefix = "enc:v1:"

// Authenticator verifies credentials against the API.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*dtos.LoginResponse, error)
}

// Store is the single source of truth for who is logged in. Writes go to
// storage first and memory second, so after a crash Restore re-derives
// memory from whatever storage holds.
type Store struct {
	kv   storage.KV
	auth Authenticator
	key  []byte

	mu      sync.RWMutex
	current *Session
}

// NewStore builds a store over kv. key is nil for plaintext tokens or a
// utils.KeySize key to encrypt the token at rest.
func NewStore(kv storage.KV, auth Authenticator, key []byte) (*Store, error) {
	if kv == nil {
		return nil, errors.New("session: nil storage")
	}
	if key != nil && len(key) != utils.KeySize {
		return nil, fmt.Errorf("session: %w: want %d bytes, got %d", utils.ErrInvalidKey, utils.KeySize, len(key))
	}
	return &Store{kv: kv, auth: auth, key: key}, nil
}

// Restore loads the persisted session. Missing keys leave the store
// unauthenticated; unreadable data is wiped and also leaves it
// unauthenticated. Only storage I/O failures are returned.
func (s *Store) Restore(ctx context.Context) error {
	storedToken, hasToken, err := s.kv.Get(ctx, KeyToken)
	if err != nil {
		return fmt.Errorf("read %s: %w", KeyToken, err)
	}
	storedUser, hasUser, err := s.kv.Get(ctx, KeyUser)
	if err != nil {
		return fmt.Errorf("read %s: %w", KeyUser, err)
	}

	if !hasToken || !hasUser {
		utils.Logger.Debug("No persisted session found")
		s.setCurrent(nil)
		return nil
	}

	sess, err := s.decode(storedToken, storedUser)
	if err != nil {
		utils.Logger.WithError(err).Warn("Discarding unreadable persisted session")
		s.setCurrent(nil)
		if delErr := s.kv.Delete(ctx, KeyToken, KeyUser); delErr != nil {
			return fmt.Errorf("clear corrupt session: %w", delErr)
		}
		return nil
	}

	s.setCurrent(sess)
	utils.Logger.WithField("username", sess.User.String("username")).Debug("Session restored")
	return nil
}

// Login verifies the credentials and, when the API hands back a token,
// persists and activates the new session. Any failure returns false and
// leaves the previous session as it was.
func (s *Store) Login(ctx context.Context, username, password string) bool {
	log := utils.Logger.WithField("username", username)
	if s.auth == nil {
		log.Error("Login attempted without an authenticator")
		return false
	}

	resp, err := s.auth.Authenticate(ctx, username, password)
	if err != nil {
		log.WithError(err).Warn("Login failed")
		return false
	}
	if resp == nil || resp.Token == "" {
		log.Warn("Login response carried no token")
		return false
	}

	user := resp.User.Clone()
	if user == nil {
		user = models.UserProfile{}
	}
	encodedUser, err := json.Marshal(user)
	if err != nil {
		log.WithError(err).Error("Failed to encode user profile")
		return false
	}
	storedToken, err := s.sealToken(resp.Token)
	if err != nil {
		log.WithError(err).Error("Failed to encrypt token")
		return false
	}

	if err := s.kv.SetMany(ctx, map[string]string{
		KeyToken: storedToken,
		KeyUser:  string(encodedUser),
	}); err != nil {
		log.WithError(err).Error("Failed to persist session")
		return false
	}

	s.setCurrent(&Session{Token: resp.Token, User: user})
	log.WithFields(logrus.Fields{"role": user.String("role")}).Info("Logged in")
	return true
}

// Logout forgets the session in storage and memory. Memory is cleared even
// when storage fails; the storage error is returned so it can be reported.
func (s *Store) Logout(ctx context.Context) error {
	err := s.kv.Delete(ctx, KeyToken, KeyUser)
	s.setCurrent(nil)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to clear persisted session")
		return fmt.Errorf("clear session: %w", err)
	}
	utils.Logger.Debug("Logged out")
	return nil
}

// CurrentUser returns a copy of the active session, or false when nobody is
// logged in.
func (s *Store) CurrentUser() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Session{}, false
	}
	return s.current.clone(), true
}

// Token returns the active bearer token or "".
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

func (s *Store) setCurrent(sess *Session) {
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
}

func (s *Store) decode(storedToken, storedUser string) (*Session, error) {
	token, err := s.openToken(storedToken)
	if err != nil {
		return nil, fmt.Errorf("%w: token: %v", ErrCorruptSession, err)
	}
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrCorruptSession)
	}

	var raw any
	if err := json.Unmarshal([]byte(storedUser), &raw); err != nil {
		return nil, fmt.Errorf("%w: user: %v", ErrCorruptSession, err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: user is %T, not an object", ErrCorruptSession, raw)
	}
	return &Session{Token: token, User: models.UserProfile(obj)}, nil
}

func (s *Store) sealToken(token string) (string, error) {
	if s.key == nil {
		return token, nil
	}
	sealed, err := utils.Encrypt(s.key, token)
	if err != nil {
		return "", err
	}
	return sealedPrefix + sealed, nil
}

// openToken refuses a token whose stored form does not match the store's key
// setting, so a sealed token is never handed out as a bearer token.
func (s *Store) openToken(stored string) (string, error) {
	sealed, isSealed := strings.CutPrefix(stored, sealedPrefix)
	switch {
	case s.key == nil && isSealed:
		return "", errors.New("token is encrypted but no session key is configured")
	case s.key == nil:
		return stored, nil
	case !isSealed:
		return "", errors.New("token is stored in plaintext but a session key is configured")
	}
	return utils.Decrypt(s.key, sealed)
}
