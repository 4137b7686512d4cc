package session

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelworks/hostel-console/internal/dtos"
	"github.com/hostelworks/hostel-console/internal/models"
	"github.com/hostelworks/hostel-console/internal/storage"
	"github.com/hostelworks/hostel-console/internal/utils"
)

type stubAuth struct {
	mu    sync.Mutex
	resp  *dtos.LoginResponse
	err   error
	calls int
}

func (a *stubAuth) Authenticate(_ context.Context, _, _ string) (*dtos.LoginResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	return a.resp, a.err
}

// failingKV wraps a MemoryStore and fails writes on demand.
type failingKV struct {
	*storage.MemoryStore
	failSet    bool
	failDelete bool
}

func (f *failingKV) SetMany(ctx context.Context, values map[string]string) error {
	if f.failSet {
		return errors.New("disk full")
	}
	return f.MemoryStore.SetMany(ctx, values)
}

func (f *failingKV) Delete(ctx context.Context, keys ...string) error {
	if f.failDelete {
		return errors.New("read-only")
	}
	return f.MemoryStore.Delete(ctx, keys...)
}

func newStore(t *testing.T, kv storage.KV, auth Authenticator) *Store {
	t.Helper()
	s, err := NewStore(kv, auth, nil)
	require.NoError(t, err)
	return s
}

func stored(t *testing.T, kv storage.KV, key string) (string, bool) {
	t.Helper()
	v, ok, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	return v, ok
}

func testKey(t *testing.T) []byte {
	t.Helper()
	key, err := utils.DeriveKey([]byte("correct horse"), []byte("0123456789abcdef"))
	require.NoError(t, err)
	return key
}

func TestNewStoreRejectsShortKey(t *testing.T) {
	_, err := NewStore(storage.NewMemoryStore(), nil, []byte("short"))
	require.ErrorIs(t, err, utils.ErrInvalidKey)

	_, err = NewStore(nil, nil, nil)
	require.Error(t, err)
}

// ---------------------------------------------------------------------------
// Restore
// ---------------------------------------------------------------------------

func TestRestoreValidPairs(t *testing.T) {
	cases := []struct {
		name  string
		token string
		user  string
		want  models.UserProfile
	}{
		{"full profile", "tok-1", `{"username":"svce","role":"admin"}`, models.UserProfile{"username": "svce", "role": "admin"}},
		{"empty profile", "tok-2", `{}`, models.UserProfile{}},
		{"nested", "tok-3", `{"username":"a","prefs":{"theme":"dark"},"ids":[1,2]}`, models.UserProfile{
			"username": "a",
			"prefs":    map[string]any{"theme": "dark"},
			"ids":      []any{float64(1), float64(2)},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			kv := storage.NewMemoryStore()
			require.NoError(t, kv.SetMany(ctx, map[string]string{KeyToken: tc.token, KeyUser: tc.user}))

			s := newStore(t, kv, nil)
			require.NoError(t, s.Restore(ctx))

			sess, ok := s.CurrentUser()
			require.True(t, ok)
			assert.Equal(t, tc.token, sess.Token)
			assert.Equal(t, tc.want, sess.User)
			assert.Equal(t, tc.token, s.Token())
		})
	}
}

func TestRestoreCorruptUserClearsBothKeys(t *testing.T) {
	for _, user := range []string{"not json", `{"username":`, `[1,2]`, `null`, `"svce"`, `42`, ``} {
		t.Run(user, func(t *testing.T) {
			ctx := context.Background()
			kv := storage.NewMemoryStore()
			require.NoError(t, kv.SetMany(ctx, map[string]string{KeyToken: "tok", KeyUser: user}))

			s := newStore(t, kv, nil)
			require.NoError(t, s.Restore(ctx))

			_, ok := s.CurrentUser()
			assert.False(t, ok)
			assert.Empty(t, s.Token())
			_, ok = stored(t, kv, KeyToken)
			assert.False(t, ok)
			_, ok = stored(t, kv, KeyUser)
			assert.False(t, ok)
		})
	}
}

func TestRestoreEitherKeyAbsent(t *testing.T) {
	ctx := context.Background()

	onlyToken := storage.NewMemoryStore()
	require.NoError(t, onlyToken.SetMany(ctx, map[string]string{KeyToken: "tok"}))
	s := newStore(t, onlyToken, nil)
	require.NoError(t, s.Restore(ctx))
	_, ok := s.CurrentUser()
	assert.False(t, ok)
	assert.Equal(t, 1, onlyToken.Len(), "a lone key is left for the next login to overwrite")

	onlyUser := storage.NewMemoryStore()
	require.NoError(t, onlyUser.SetMany(ctx, map[string]string{KeyUser: `{}`}))
	s = newStore(t, onlyUser, nil)
	require.NoError(t, s.Restore(ctx))
	_, ok = s.CurrentUser()
	assert.False(t, ok)

	s = newStore(t, storage.NewMemoryStore(), nil)
	require.NoError(t, s.Restore(ctx))
	_, ok = s.CurrentUser()
	assert.False(t, ok)
}

func TestRestoreReturnsStorageErrors(t *testing.T) {
	kv, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	require.NoError(t, kv.Close())

	s := newStore(t, kv, nil)
	err = s.Restore(context.Background())
	require.ErrorIs(t, err, storage.ErrClosed)
}

// ---------------------------------------------------------------------------
// Login / Logout
// ---------------------------------------------------------------------------

func TestLoginPersistsPairAndActivates(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	auth := &stubAuth{resp: &dtos.LoginResponse{
		Token: "fresh",
		User:  models.UserProfile{"username": "svce", "role": "admin"},
	}}
	s := newStore(t, kv, auth)

	require.True(t, s.Login(ctx, "svce", "1234"))

	sess, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "fresh", sess.Token)
	assert.Equal(t, "admin", sess.User.String("role"))

	token, _ := stored(t, kv, KeyToken)
	assert.Equal(t, "fresh", token)
	user, _ := stored(t, kv, KeyUser)
	assert.JSONEq(t, `{"username":"svce","role":"admin"}`, user)
}

func TestLoginWithoutProfileStillWritesPair(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	s := newStore(t, kv, &stubAuth{resp: &dtos.LoginResponse{Token: "bare"}})

	require.True(t, s.Login(ctx, "svce", "1234"))
	user, ok := stored(t, kv, KeyUser)
	require.True(t, ok)
	assert.Equal(t, `{}`, user)

	// A profile-less session survives a restart.
	restored := newStore(t, kv, nil)
	require.NoError(t, restored.Restore(ctx))
	sess, ok := restored.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "bare", sess.Token)
	assert.Empty(t, sess.User)
	assert.NotNil(t, sess.User)
}

func TestLoginFailureLeavesPriorSession(t *testing.T) {
	failures := map[string]*stubAuth{
		"no token":      {resp: &dtos.LoginResponse{Message: "ok", User: models.UserProfile{"username": "x"}}},
		"nil response":  {},
		"network error": {err: errors.New("connection refused")},
	}
	for name, auth := range failures {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			kv := storage.NewMemoryStore()
			s := newStore(t, kv, &stubAuth{resp: &dtos.LoginResponse{Token: "prior", User: models.UserProfile{"username": "svce"}}})
			require.True(t, s.Login(ctx, "svce", "1234"))
			before, _ := s.CurrentUser()

			s.auth = auth
			assert.False(t, s.Login(ctx, "other", "pw"))
			assert.Equal(t, 1, auth.calls)

			after, ok := s.CurrentUser()
			require.True(t, ok)
			assert.Equal(t, before, after)
			token, _ := stored(t, kv, KeyToken)
			assert.Equal(t, "prior", token)
		})
	}
}

func TestLoginStorageFailureLeavesMemoryAlone(t *testing.T) {
	kv := &failingKV{MemoryStore: storage.NewMemoryStore(), failSet: true}
	s := newStore(t, kv, &stubAuth{resp: &dtos.LoginResponse{Token: "t"}})

	assert.False(t, s.Login(context.Background(), "svce", "1234"))
	_, ok := s.CurrentUser()
	assert.False(t, ok)
	assert.Zero(t, kv.Len())
}

func TestLogoutAlwaysUnauthenticates(t *testing.T) {
	ctx := context.Background()

	// From nothing, twice.
	s := newStore(t, storage.NewMemoryStore(), nil)
	require.NoError(t, s.Logout(ctx))
	require.NoError(t, s.Logout(ctx))
	_, ok := s.CurrentUser()
	assert.False(t, ok)

	// From an active session.
	kv := storage.NewMemoryStore()
	s = newStore(t, kv, &stubAuth{resp: &dtos.LoginResponse{Token: "t"}})
	require.True(t, s.Login(ctx, "svce", "1234"))
	require.NoError(t, s.Logout(ctx))
	_, ok = s.CurrentUser()
	assert.False(t, ok)
	assert.Empty(t, s.Token())
	assert.Zero(t, kv.Len())

	// Even when storage refuses.
	broken := &failingKV{MemoryStore: storage.NewMemoryStore()}
	s = newStore(t, broken, &stubAuth{resp: &dtos.LoginResponse{Token: "t"}})
	require.True(t, s.Login(ctx, "svce", "1234"))
	broken.failDelete = true
	require.Error(t, s.Logout(ctx))
	_, ok = s.CurrentUser()
	assert.False(t, ok)
}

func TestCurrentUserIsACopy(t *testing.T) {
	s := newStore(t, storage.NewMemoryStore(), &stubAuth{resp: &dtos.LoginResponse{
		Token: "t", User: models.UserProfile{"role": "admin"},
	}})
	require.True(t, s.Login(context.Background(), "svce", "1234"))

	sess, _ := s.CurrentUser()
	sess.User["role"] = "guest"

	again, _ := s.CurrentUser()
	assert.Equal(t, "admin", again.User.String("role"))
}

// ---------------------------------------------------------------------------
// Durability and encryption
// ---------------------------------------------------------------------------

func TestSessionSurvivesReopenWithSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	kv, err := storage.OpenSQLite(path)
	require.NoError(t, err)
	s := newStore(t, kv, &stubAuth{resp: &dtos.LoginResponse{Token: "durable", User: models.UserProfile{"username": "svce"}}})
	require.True(t, s.Login(ctx, "svce", "1234"))
	require.NoError(t, kv.Close())

	kv, err = storage.OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	restored := newStore(t, kv, nil)
	require.NoError(t, restored.Restore(ctx))
	sess, ok := restored.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "durable", sess.Token)
	assert.Equal(t, "svce", sess.User.String("username"))

	require.NoError(t, restored.Logout(ctx))
	again := newStore(t, kv, nil)
	require.NoError(t, again.Restore(ctx))
	_, ok = again.CurrentUser()
	assert.False(t, ok)
}

func TestEncryptedTokenAtRest(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	key := testKey(t)

	s, err := NewStore(kv, &stubAuth{resp: &dtos.LoginResponse{Token: "secret-token"}}, key)
	require.NoError(t, err)
	require.True(t, s.Login(ctx, "svce", "1234"))

	raw, _ := stored(t, kv, KeyToken)
	assert.NotEqual(t, "secret-token", raw)
	assert.NotContains(t, raw, "secret-token")

	restored, err := NewStore(kv, nil, key)
	require.NoError(t, err)
	require.NoError(t, restored.Restore(ctx))
	assert.Equal(t, "secret-token", restored.Token())
}

func TestWrongKeyIsTreatedAsCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()

	s, err := NewStore(kv, &stubAuth{resp: &dtos.LoginResponse{Token: "secret-token"}}, testKey(t))
	require.NoError(t, err)
	require.True(t, s.Login(ctx, "svce", "1234"))

	otherKey, err := utils.DeriveKey([]byte("wrong passphrase"), []byte("0123456789abcdef"))
	require.NoError(t, err)
	restored, err := NewStore(kv, nil, otherKey)
	require.NoError(t, err)
	require.NoError(t, restored.Restore(ctx))

	_, ok := restored.CurrentUser()
	assert.False(t, ok)
	assert.Zero(t, kv.Len())
}

func TestSealedTokenWithoutKeyIsTreatedAsCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()

	s, err := NewStore(kv, &stubAuth{resp: &dtos.LoginResponse{Token: "real-token"}}, testKey(t))
	require.NoError(t, err)
	require.True(t, s.Login(ctx, "svce", "1234"))

	raw, _ := stored(t, kv, KeyToken)
	assert.True(t, strings.HasPrefix(raw, sealedPrefix))

	restored := newStore(t, kv, nil)
	require.NoError(t, restored.Restore(ctx))

	_, ok := restored.CurrentUser()
	assert.False(t, ok)
	assert.Empty(t, restored.Token())
	assert.Zero(t, kv.Len())
}

func TestPlaintextTokenWithKeyIsTreatedAsCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()

	plain := newStore(t, kv, &stubAuth{resp: &dtos.LoginResponse{Token: "real-token"}})
	require.True(t, plain.Login(ctx, "svce", "1234"))
	raw, _ := stored(t, kv, KeyToken)
	assert.Equal(t, "real-token", raw)

	restored, err := NewStore(kv, nil, testKey(t))
	require.NoError(t, err)
	require.NoError(t, restored.Restore(ctx))

	_, ok := restored.CurrentUser()
	assert.False(t, ok)
	assert.Zero(t, kv.Len())
}

func TestDecodeFlagsCorruption(t *testing.T) {
	s := newStore(t, storage.NewMemoryStore(), nil)
	_, err := s.decode("tok", "{")
	assert.ErrorIs(t, err, ErrCorruptSession)
	_, err = s.decode("", "{}")
	assert.ErrorIs(t, err, ErrCorruptSession)
}

// ---------------------------------------------------------------------------
// Claims
// ---------------------------------------------------------------------------

func TestClaimsFromJWT(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "svce",
		"exp": exp.Unix(),
	}).SignedString([]byte("server-side-secret"))
	require.NoError(t, err)

	claims, err := Session{Token: token}.Claims()
	require.NoError(t, err)
	sub, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "svce", sub)
	got, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.True(t, exp.Equal(got.Time))

	_, err = Session{Token: "opaque-not-a-jwt"}.Claims()
	assert.Error(t, err)
}

func TestConcurrentReadersDuringLogin(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, storage.NewMemoryStore(), &stubAuth{resp: &dtos.LoginResponse{Token: "t"}})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if sess, ok := s.CurrentUser(); ok {
					assert.Equal(t, "t", sess.Token)
				}
				_ = s.Token()
			}
		}()
	}
	for i := 0; i < 10; i++ {
		assert.True(t, s.Login(ctx, "svce", "1234"))
		require.NoError(t, s.Logout(ctx))
	}
	wg.Wait()
}
