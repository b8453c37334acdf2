package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appidentity "github.com/hospicetrack/backend/internal/application/identity"
	"github.com/hospicetrack/backend/internal/domain/identity"
	"github.com/hospicetrack/backend/internal/infrastructure/auth"
	"github.com/hospicetrack/backend/internal/infrastructure/config"
	"github.com/hospicetrack/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newHandlerTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "hospicetrack-test",
		MaxRefreshCount:        10,
	})
}

func newAuthHandlerForTest(userRepo identity.UserRepository, jwtService *auth.JWTService) *AuthHandler {
	authService := appidentity.NewAuthService(
		userRepo,
		jwtService,
		auth.NewInMemoryTokenBlacklist(),
		appidentity.DefaultAuthServiceConfig(),
		zap.NewNop(),
	)
	return NewAuthHandler(authService)
}

func setupAuthRouter(handler *AuthHandler, jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// Public auth routes
	authGroup := r.Group("/api/v1/auth")
	{
		authGroup.POST("/register", handler.Register)
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/refresh", handler.RefreshToken)
	}

	// Protected auth routes (JWT required)
	protectedGroup := r.Group("/api/v1/auth")
	protectedGroup.Use(middleware.JWTAuthMiddleware(jwtService))
	{
		protectedGroup.POST("/logout", handler.Logout)
		protectedGroup.GET("/me", handler.GetCurrentUser)
		protectedGroup.PUT("/password", handler.ChangePassword)
	}

	return r
}

func createTestUserForHandler(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("rep@sunrisehospice.com", "Password123", "Jordan Avery")
	require.NoError(t, err)
	return user
}

func loginForTest(t *testing.T, router *gin.Engine) string {
	t.Helper()

	body, _ := json.Marshal(LoginRequest{
		Email:    "rep@sunrisehospice.com",
		Password: "Password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	token := data["token"].(map[string]interface{})
	return token["access_token"].(string)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("ExistsByEmail", mock.Anything, "rep@sunrisehospice.com").Return(false, nil)
	userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	jwtService := newHandlerTestJWTService()
	handler := newAuthHandlerForTest(userRepo, jwtService)
	router := setupAuthRouter(handler, jwtService)

	body, _ := json.Marshal(RegisterRequest{
		Email:    "rep@sunrisehospice.com",
		Password: "Password123",
		FullName: "Jordan Avery",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.True(t, response["success"].(bool))
	data := response["data"].(map[string]interface{})
	token := data["token"].(map[string]interface{})
	assert.NotEmpty(t, token["access_token"])
	assert.NotEmpty(t, token["refresh_token"])
	assert.Equal(t, "Bearer", token["token_type"])

	userData := data["user"].(map[string]interface{})
	assert.Equal(t, "rep@sunrisehospice.com", userData["email"])
	assert.Equal(t, "Jordan Avery", userData["full_name"])
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("ExistsByEmail", mock.Anything, "rep@sunrisehospice.com").Return(true, nil)

	jwtService := newHandlerTestJWTService()
	handler := newAuthHandlerForTest(userRepo, jwtService)
	router := setupAuthRouter(handler, jwtService)

	body, _ := json.Marshal(RegisterRequest{
		Email:    "rep@sunrisehospice.com",
		Password: "Password123",
		FullName: "Jordan Avery",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	user := createTestUserForHandler(t)
	userRepo.On("FindByEmail", mock.Anything, "rep@sunrisehospice.com").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	jwtService := newHandlerTestJWTService()
	handler := newAuthHandlerForTest(userRepo, jwtService)
	router := setupAuthRouter(handler, jwtService)

	body, _ := json.Marshal(LoginRequest{
		Email:    "rep@sunrisehospice.com",
		Password: "Password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.True(t, response["success"].(bool))
	data := response["data"].(map[string]interface{})
	token := data["token"].(map[string]interface{})
	assert.NotEmpty(t, token["access_token"])
	assert.NotEmpty(t, token["refresh_token"])
	assert.Equal(t, "Bearer", token["token_type"])

	userData := data["user"].(map[string]interface{})
	assert.Equal(t, "rep@sunrisehospice.com", userData["email"])
}

func TestAuthHandler_Login_InvalidRequestBody(t *testing.T) {
	userRepo := new(MockUserRepository)
	jwtService := newHandlerTestJWTService()
	handler := newAuthHandlerForTest(userRepo, jwtService)
	router := setupAuthRouter(handler, jwtService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	user := createTestUserForHandler(t)
	userRepo.On("FindByEmail", mock.Anything, "rep@sunrisehospice.com").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	jwtService := newHandlerTestJWTService()
	handler := newAuthHandlerForTest(userRepo, jwtService)
	router := setupAuthRouter(handler, jwtService)

	body, _ := json.Marshal(LoginRequest{
		Email:    "rep@sunrisehospice.com",
		Password: "WrongPassword1",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_RefreshToken_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	user := createTestUserForHandler(t)
	userRepo.On("FindByEmail", mock.Anything, "rep@sunrisehospice.com").Return(user, nil)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	jwtService := newHandlerTestJWTService()
	handler := newAuthHandlerForTest(userRepo, jwtService)
	router := setupAuthRouter(handler, jwtService)

	// First login to obtain a refresh token
	loginBody, _ := json.Marshal(LoginRequest{
		Email:    "rep@sunrisehospice.com",
		Password: "Password123",
	})
	loginReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(loginBody))
	loginReq.Header.Set("Content-Type", "application/json")
	loginW := httptest.NewRecorder()
	router.ServeHTTP(loginW, loginReq)
	require.Equal(t, http.StatusOK, loginW.Code)

	var loginResponse map[string]interface{}
	require.NoError(t, json.Unmarshal(loginW.Body.Bytes(), &loginResponse))
	loginData := loginResponse["data"].(map[string]interface{})
	loginToken := loginData["token"].(map[string]interface{})
	refreshToken := loginToken["refresh_token"].(string)
	require.NotEmpty(t, refreshToken)

	// Now refresh
	body, _ := json.Marshal(RefreshTokenRequest{RefreshToken: refreshToken})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.True(t, response["success"].(bool))
	data := response["data"].(map[string]interface{})
	token := data["token"].(map[string]interface{})
	assert.NotEmpty(t, token["access_token"])
	assert.NotEmpty(t, token["refresh_token"])
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	user := createTestUserForHandler(t)
	userRepo.On("FindByEmail", mock.Anything, "rep@sunrisehospice.com").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	jwtService := newHandlerTestJWTService()
	handler := newAuthHandlerForTest(userRepo, jwtService)
	router := setupAuthRouter(handler, jwtService)

	accessToken := loginForTest(t, router)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.True(t, response["success"].(bool))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Logged out successfully", data["message"])
}

func TestAuthHandler_Logout_Unauthorized(t *testing.T) {
	userRepo := new(MockUserRepository)
	jwtService := newHandlerTestJWTService()
	handler := newAuthHandlerForTest(userRepo, jwtService)
	router := setupAuthRouter(handler, jwtService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	user := createTestUserForHandler(t)
	userRepo.On("FindByEmail", mock.Anything, "rep@sunrisehospice.com").Return(user, nil)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	jwtService := newHandlerTestJWTService()
	handler := newAuthHandlerForTest(userRepo, jwtService)
	router := setupAuthRouter(handler, jwtService)

	accessToken := loginForTest(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.True(t, response["success"].(bool))
	data := response["data"].(map[string]interface{})
	userData := data["user"].(map[string]interface{})
	assert.Equal(t, "rep@sunrisehospice.com", userData["email"])
}

func TestAuthHandler_ChangePassword_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	user := createTestUserForHandler(t)
	userRepo.On("FindByEmail", mock.Anything, "rep@sunrisehospice.com").Return(user, nil)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	jwtService := newHandlerTestJWTService()
	handler := newAuthHandlerForTest(userRepo, jwtService)
	router := setupAuthRouter(handler, jwtService)

	accessToken := loginForTest(t, router)

	body, _ := json.Marshal(ChangePasswordRequest{
		OldPassword: "Password123",
		NewPassword: "NewPassword456",
	})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/auth/password", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.True(t, response["success"].(bool))
}
