package service

import (
	"context"
	"testing"
	"time"

	"github.com/ikkim/bestfoody-backend/internal/app/repository"
	"github.com/ikkim/bestfoody-backend/internal/db"
	"github.com/ikkim/bestfoody-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret-key"

func setupAuthTest(t *testing.T) (*gorm.DB, AuthService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	svc := NewAuthService(userRepo, testJWTSecret, 15*time.Minute, 7*24*time.Hour)
	return testDB, svc
}

func TestAuthService_Register(t *testing.T) {
	testDB, svc := setupAuthTest(t)
	defer db.CleanupTestDB(testDB)

	user, tokens, err := svc.Register("alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.Name)
	assert.NotZero(t, user.ID)

	// 비밀번호는 해시로만 저장된다
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, util.VerifyPassword(user.PasswordHash, "password123"))

	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := util.ValidateToken(tokens.AccessToken, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	testDB, svc := setupAuthTest(t)
	defer db.CleanupTestDB(testDB)

	_, _, err := svc.Register("alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	_, _, err = svc.Register("alice@example.com", "different456", "Alice Again")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	testDB, svc := setupAuthTest(t)
	defer db.CleanupTestDB(testDB)

	_, _, err := svc.Register("alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	user, tokens, err := svc.Login("alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	testDB, svc := setupAuthTest(t)
	defer db.CleanupTestDB(testDB)

	_, _, err := svc.Register("alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	// 비밀번호가 틀린 경우
	_, _, err = svc.Login("alice@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// 존재하지 않는 사용자도 같은 에러를 돌려준다
	_, _, err = svc.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_GetUserByID(t *testing.T) {
	testDB, svc := setupAuthTest(t)
	defer db.CleanupTestDB(testDB)

	created, _, err := svc.Register("alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	user, err := svc.GetUserByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, user.Email)

	_, err = svc.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// Redis가 꺼진 환경에서는 로그아웃이 조용히 성공한다
func TestAuthService_Logout_RedisDisabled(t *testing.T) {
	testDB, svc := setupAuthTest(t)
	defer db.CleanupTestDB(testDB)

	_, tokens, err := svc.Register("alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	err = svc.Logout(context.Background(), tokens.AccessToken)
	assert.NoError(t, err)
}
