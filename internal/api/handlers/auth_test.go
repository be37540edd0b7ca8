package handlers_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"team-task-backend/internal/api/handlers"
	apperrors "team-task-backend/internal/errors"
	"team-task-backend/internal/mocks"
	"team-task-backend/internal/service"
	"team-task-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// withCaller stands in for RequireAuth in handler tests
func withCaller(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func makeInvalidJSONRequest(router *gin.Engine, method, url string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, bytes.NewBufferString("invalid json"))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

// AuthHandlerTestSuite defines the test suite for AuthHandler
type AuthHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockAuthServiceInterface
	handler     *handlers.AuthHandler
	httpSuite   *testutils.HTTPTestSuite
}

// SetupTest sets up the test suite
func (suite *AuthHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockAuthServiceInterface(suite.ctrl)
	suite.handler = handlers.NewAuthHandler(suite.mockService)

	suite.httpSuite = testutils.SetupHTTPTest()
	authGroup := suite.httpSuite.Router.Group("/api/v1/auth")
	{
		authGroup.POST("/register", suite.handler.Register)
		authGroup.POST("/login", suite.handler.Login)
	}
}

// TearDownTest cleans up after each test
func (suite *AuthHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AuthHandlerTestSuite) authResponse() *service.AuthResponse {
	return &service.AuthResponse{
		AccessToken: "signed.jwt.token",
		TokenType:   "Bearer",
		ExpiresIn:   3600,
		User: &service.UserResponse{
			ID:        uuid.New(),
			Username:  "john_doe",
			Email:     "john@example.com",
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
}

// TestRegister tests the Register handler
func (suite *AuthHandlerTestSuite) TestRegister() {
	suite.T().Run("Success", func(t *testing.T) {
		expected := suite.authResponse()
		suite.mockService.EXPECT().
			Register(gomock.Any()).
			DoAndReturn(func(req *service.RegisterRequest) (*service.AuthResponse, error) {
				assert.Equal(t, "john_doe", req.Username)
				assert.Equal(t, "john@example.com", req.Email)
				return expected, nil
			})

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
			"username": "john_doe",
			"email":    "john@example.com",
			"password": "password123",
		})

		var response map[string]interface{}
		testutils.AssertJSONResponse(t, recorder, http.StatusCreated, &response)
		assert.Equal(t, "signed.jwt.token", response["access_token"])
		user := response["user"].(map[string]interface{})
		assert.Equal(t, "john_doe", user["username"])
		assert.NotContains(t, user, "password_hash")
	})

	suite.T().Run("Duplicate username", func(t *testing.T) {
		suite.mockService.EXPECT().Register(gomock.Any()).Return(nil, apperrors.ErrUsernameExists)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
			"username": "john_doe",
			"email":    "other@example.com",
			"password": "password123",
		})

		testutils.AssertErrorResponse(t, recorder, http.StatusConflict, "already exists")
	})

	suite.T().Run("Validation error", func(t *testing.T) {
		suite.mockService.EXPECT().Register(gomock.Any()).Return(nil, apperrors.NewValidationError("password", "must be at least 6 characters"))

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
			"username": "john_doe",
			"email":    "john@example.com",
			"password": "123",
		})

		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "password")
	})

	suite.T().Run("Invalid JSON", func(t *testing.T) {
		recorder := makeInvalidJSONRequest(suite.httpSuite.Router, http.MethodPost, "/api/v1/auth/register")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

// TestLogin tests the Login handler
func (suite *AuthHandlerTestSuite) TestLogin() {
	suite.T().Run("Success", func(t *testing.T) {
		suite.mockService.EXPECT().Login(gomock.Any()).Return(suite.authResponse(), nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
			"identifier": "john@example.com",
			"password":   "password123",
		})

		var response service.AuthResponse
		testutils.AssertJSONResponse(t, recorder, http.StatusOK, &response)
		assert.Equal(t, "Bearer", response.TokenType)
	})

	suite.T().Run("Invalid credentials", func(t *testing.T) {
		suite.mockService.EXPECT().Login(gomock.Any()).Return(nil, apperrors.ErrInvalidCredentials)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
			"identifier": "john_doe",
			"password":   "wrong",
		})

		testutils.AssertErrorResponse(t, recorder, http.StatusUnauthorized, "Invalid credentials")
	})

	suite.T().Run("Unexpected error is not leaked", func(t *testing.T) {
		suite.mockService.EXPECT().Login(gomock.Any()).Return(nil, errors.New("pq: connection refused"))

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
			"identifier": "john_doe",
			"password":   "password123",
		})

		testutils.AssertErrorResponse(t, recorder, http.StatusInternalServerError, "Internal server error")
		assert.NotContains(t, recorder.Body.String(), "connection refused")
	})
}

// TestAuthHandlerTestSuite runs the test suite
func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
