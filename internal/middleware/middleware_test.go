package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/admin", AdminAuth(testSecret, "admin", zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func signToken(t *testing.T, secret, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  "user-1",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminAuthAllowsAdminRole(t *testing.T) {
	router := newAuthRouter()
	w := doRequest(router, "Bearer "+signToken(t, testSecret, "admin"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminAuthRejectsNonAdminRole(t *testing.T) {
	router := newAuthRouter()
	w := doRequest(router, "Bearer "+signToken(t, testSecret, "user"))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestAdminAuthRejectsMissingHeader(t *testing.T) {
	router := newAuthRouter()
	w := doRequest(router, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminAuthRejectsMalformedHeader(t *testing.T) {
	router := newAuthRouter()
	w := doRequest(router, signToken(t, testSecret, "admin"))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without Bearer prefix, got %d", w.Code)
	}
}

func TestAdminAuthRejectsWrongSecret(t *testing.T) {
	router := newAuthRouter()
	w := doRequest(router, "Bearer "+signToken(t, "other-secret", "admin"))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad signature, got %d", w.Code)
	}
}
