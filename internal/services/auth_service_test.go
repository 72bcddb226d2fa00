package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/diebraga/daily-diet-api/internal/models"
	"github.com/diebraga/daily-diet-api/internal/repo"
	"github.com/diebraga/daily-diet-api/internal/utils"
)

type fakeUserStore struct {
	users     map[string]*models.User
	nextID    int64
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}, nextID: 1}
}

func (f *fakeUserStore) addUser(username, password string, isAdmin bool) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &models.User{
		ID:           f.nextID,
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now(),
	}
	f.nextID++
	f.users[username] = user
	return user
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := f.users[username]
	return ok, nil
}

func (f *fakeUserStore) Create(_ context.Context, username, passwordHash string, isAdmin bool) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.users[username]; ok {
		return nil, repo.ErrDuplicate
	}
	user := &models.User{ID: f.nextID, Username: username, PasswordHash: passwordHash, IsAdmin: isAdmin}
	f.nextID++
	f.users[username] = user
	return user, nil
}

func appErr(t *testing.T, err error) *utils.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok, "expected *utils.AppError, got %T", err)
	return appErr
}

func TestLogin_Success(t *testing.T) {
	store := newFakeUserStore()
	store.addUser("admin", "admin123", true)

	issuer := testIssuer(time.Hour)
	svc := NewAuthService(store, issuer)

	result, err := svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", result.Username)

	claims, err := issuer.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.True(t, claims.IsAdmin)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), testIssuer(time.Hour))

	_, err := svc.Login(context.Background(), "ghost", "whatever")
	got := appErr(t, err)
	assert.Equal(t, http.StatusUnauthorized, got.Status)
	assert.Equal(t, "invalid credentials", got.Message)
}

func TestLogin_WrongPassword(t *testing.T) {
	store := newFakeUserStore()
	store.addUser("alice", "correct", false)
	svc := NewAuthService(store, testIssuer(time.Hour))

	_, err := svc.Login(context.Background(), "alice", "incorrect")
	got := appErr(t, err)
	assert.Equal(t, http.StatusUnauthorized, got.Status)
	// Same message as the unknown-user case, deliberately.
	assert.Equal(t, "invalid credentials", got.Message)
}

func TestSignUp_HashesPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, testIssuer(time.Hour))

	user, err := svc.SignUp(context.Background(), "bob", "s3cret", false)
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
}

func TestSignUp_FreshSaltPerHash(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, testIssuer(time.Hour))

	first, err := svc.SignUp(context.Background(), "u1", "same-password", false)
	require.NoError(t, err)
	second, err := svc.SignUp(context.Background(), "u2", "same-password", false)
	require.NoError(t, err)

	assert.NotEqual(t, first.PasswordHash, second.PasswordHash)
}

func TestSignUp_DuplicateUsername(t *testing.T) {
	store := newFakeUserStore()
	store.addUser("taken", "pw", false)
	svc := NewAuthService(store, testIssuer(time.Hour))

	_, err := svc.SignUp(context.Background(), "taken", "pw2", false)
	got := appErr(t, err)
	assert.Equal(t, http.StatusForbidden, got.Status)
	assert.Equal(t, "CONFLICT", got.Code)
}

func TestSignUp_DuplicateFromStoreConstraint(t *testing.T) {
	// The pre-check passes but the insert trips the unique index, as
	// happens when two sign-ups race. Must map to the same conflict,
	// not a 500.
	store := newFakeUserStore()
	store.createErr = repo.ErrDuplicate
	svc := NewAuthService(store, testIssuer(time.Hour))

	_, err := svc.SignUp(context.Background(), "racer", "pw", false)
	got := appErr(t, err)
	assert.Equal(t, http.StatusForbidden, got.Status)
	assert.Equal(t, "CONFLICT", got.Code)
}
