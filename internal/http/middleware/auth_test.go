package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"

	"github.com/diebraga/daily-diet-api/internal/config"
	"github.com/diebraga/daily-diet-api/internal/services"
)

func gateRouter(tokens *services.TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.GET("/protected", RequireAuth(tokens, log), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetInt64(CtxUserID),
			"is_admin": c.GetBool(CtxIsAdmin),
		})
	})
	return router
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	tokens := services.NewTokenIssuer(&config.Config{JWTSecret: "s", TokenTTL: time.Hour})

	apitest.New().
		Handler(gateRouter(tokens)).
		Get("/protected").
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.error.code", "UNAUTHORIZED")).
		End()
}

func TestRequireAuth_NotBearer(t *testing.T) {
	tokens := services.NewTokenIssuer(&config.Config{JWTSecret: "s", TokenTTL: time.Hour})

	apitest.New().
		Handler(gateRouter(tokens)).
		Get("/protected").
		Header("Authorization", "Basic dXNlcjpwYXNz").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	tokens := services.NewTokenIssuer(&config.Config{JWTSecret: "s", TokenTTL: time.Hour})

	apitest.New().
		Handler(gateRouter(tokens)).
		Get("/protected").
		Header("Authorization", "Bearer garbage").
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.error.message", "invalid or missing token")).
		End()
}

func TestRequireAuth_ExpiredTokenSameResponseAsInvalid(t *testing.T) {
	expiredIssuer := services.NewTokenIssuer(&config.Config{JWTSecret: "s", TokenTTL: -time.Second})
	tok, err := expiredIssuer.Issue(1, false)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	tokens := services.NewTokenIssuer(&config.Config{JWTSecret: "s", TokenTTL: time.Hour})
	apitest.New().
		Handler(gateRouter(tokens)).
		Get("/protected").
		Header("Authorization", "Bearer "+tok).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.error.message", "invalid or missing token")).
		End()
}

func TestRequireAuth_ValidTokenAttachesClaims(t *testing.T) {
	tokens := services.NewTokenIssuer(&config.Config{JWTSecret: "s", TokenTTL: time.Hour})
	tok, err := tokens.Issue(7, true)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	apitest.New().
		Handler(gateRouter(tokens)).
		Get("/protected").
		Header("Authorization", "Bearer "+tok).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.user_id", float64(7))).
		Assert(jsonpath.Equal("$.is_admin", true)).
		End()
}
