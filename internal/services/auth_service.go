package services

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/diebraga/daily-diet-api/internal/models"
	"github.com/diebraga/daily-diet-api/internal/repo"
	"github.com/diebraga/daily-diet-api/internal/utils"
)

// UserStore is what the auth service needs from the credential store.
// *repo.UserRepo satisfies it.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, username, passwordHash string, isAdmin bool) (*models.User, error)
}

type AuthService struct {
	users  UserStore
	tokens *TokenIssuer
}

type LoginResult struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

func NewAuthService(users UserStore, tokens *TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login verifies the credentials and issues a bearer token. Unknown
// username and wrong password return the same error; the two paths do
// different amounts of hashing work, matching the surface this API
// replaces.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errBadCredentials()
		}
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not look up user", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errBadCredentials()
	}

	token, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not generate token", nil)
	}

	return &LoginResult{Username: user.Username, Token: token}, nil
}

// SignUp creates a user record. The admin gate on the caller lives in
// the handler, off the claims the middleware attached. The existence
// check is a fast path only; the unique index on username is the real
// guard, so a duplicate surfacing from the insert maps to the same
// conflict error.
func (s *AuthService) SignUp(ctx context.Context, username, password string, isAdmin bool) (*models.User, error) {
	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not check existing users", nil)
	}
	if exists {
		return nil, errUsernameTaken()
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not secure password", nil)
	}

	user, err := s.users.Create(ctx, username, string(passwordHash), isAdmin)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, errUsernameTaken()
		}
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not create user", nil)
	}

	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, utils.NewAppError(http.StatusNotFound, "NOT_FOUND", "user not found", nil)
		}
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not look up user", nil)
	}
	return user, nil
}

func errBadCredentials() *utils.AppError {
	return utils.NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials", nil)
}

func errUsernameTaken() *utils.AppError {
	return utils.NewAppError(http.StatusForbidden, "CONFLICT", "username already exists", nil)
}
