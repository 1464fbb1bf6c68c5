package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bankingmngt/banking_mngt_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router *gin.Engine
	secret string
}

func (suite *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.secret = "another-test-secret-key"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(logger))
	suite.router.GET("/protected", middleware.AuthMiddleware(suite.secret), func(c *gin.Context) {
		principal, ok := middleware.GetPrincipalFromCtx(c.Request.Context())
		if !ok {
			c.String(http.StatusInternalServerError, "principal missing")
			return
		}
		c.String(http.StatusOK, principal)
	})
}

func (suite *AuthMiddlewareTestSuite) signToken(secret, subject string, expiresAt time.Time) string {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	suite.Require().NoError(err)
	return signed
}

func (suite *AuthMiddlewareTestSuite) request(authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthMiddlewareTestSuite) TestValidToken_SetsPrincipal() {
	token := suite.signToken(suite.secret, "principal-42", time.Now().Add(time.Hour))
	w := suite.request("Bearer " + token)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("principal-42", w.Body.String())
}

func (suite *AuthMiddlewareTestSuite) TestMissingHeader() {
	w := suite.request("")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestMalformedHeader() {
	w := suite.request("Basic abc123")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestWrongSecret() {
	token := suite.signToken("some-other-secret", "principal-42", time.Now().Add(time.Hour))
	w := suite.request("Bearer " + token)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestExpiredToken() {
	token := suite.signToken(suite.secret, "principal-42", time.Now().Add(-time.Minute))
	w := suite.request("Bearer " + token)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "expired")
}

func (suite *AuthMiddlewareTestSuite) TestEmptySubject() {
	token := suite.signToken(suite.secret, "", time.Now().Add(time.Hour))
	w := suite.request("Bearer " + token)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}
