// internal/tests/auth_test.go
package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/sisvmarcas/crm-backend/internal/middleware"
	"github.com/sisvmarcas/crm-backend/internal/models"
	"github.com/sisvmarcas/crm-backend/internal/utils"
)

type AuthTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *AuthTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	suite.router = gin.New()
	suite.router.Use(middleware.I18nMiddleware())

	protected := suite.router.Group("/protected")
	protected.Use(middleware.AuthRequired())
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, _ := utils.GetUserIDFromContext(c)
			role, _ := utils.GetRoleFromContext(c)
			utils.SuccessResponse(c, gin.H{"user_id": userID, "role": role})
		})
		protected.GET("/admin", middleware.AdminRequired(), func(c *gin.Context) {
			utils.SuccessResponse(c, gin.H{"ok": true})
		})
	}
}

func (suite *AuthTestSuite) request(path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthTestSuite) TestMissingTokenRejected() {
	w := suite.request("/protected/me", "")
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthTestSuite) TestMalformedHeaderRejected() {
	req, _ := http.NewRequest("GET", "/protected/me", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthTestSuite) TestInvalidTokenRejected() {
	w := suite.request("/protected/me", "not-a-jwt")
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthTestSuite) TestValidTokenSetsIdentity() {
	userID := uuid.New()
	token, err := utils.GenerateJWT(userID, "Ana Souza", string(models.RoleVendedor), 1)
	assert.NoError(suite.T(), err)

	w := suite.request("/protected/me", token)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), userID.String())
	assert.Contains(suite.T(), w.Body.String(), string(models.RoleVendedor))
}

func (suite *AuthTestSuite) TestVendedorBlockedFromAdminRoute() {
	token, err := utils.GenerateJWT(uuid.New(), "Ana Souza", string(models.RoleVendedor), 1)
	assert.NoError(suite.T(), err)

	w := suite.request("/protected/admin", token)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *AuthTestSuite) TestAdminAllowedOnAdminRoute() {
	token, err := utils.GenerateJWT(uuid.New(), "Administrador", string(models.RoleAdmin), 1)
	assert.NoError(suite.T(), err)

	w := suite.request("/protected/admin", token)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *AuthTestSuite) TestRefreshTokenRoundTrip() {
	userID := uuid.New()
	refresh, err := utils.GenerateRefreshToken(userID, 24)
	assert.NoError(suite.T(), err)

	got, err := utils.ValidateRefreshToken(refresh)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), userID.String(), got)
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}
