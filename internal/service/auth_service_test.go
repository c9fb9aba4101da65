package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/MRinuka/yeng-app/config"
	"github.com/MRinuka/yeng-app/internal/dto"
	"github.com/MRinuka/yeng-app/internal/model"
	"github.com/MRinuka/yeng-app/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService() (AuthService, *mockUserRepo, *jwt.Manager) {
	userRepo := newMockUserRepo()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-tests",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 168 * time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(userRepo, nil, jwtMgr, cfg, zap.NewNop())
	return svc, userRepo, jwtMgr
}

// ── Register 测试 ──

func TestAuthService_Register_Success(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()

	req := &dto.RegisterRequest{
		Name:     "张三",
		Email:    "zhangsan@example.com",
		Password: "password123",
		Address:  "科伦坡 7 区",
	}

	result, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("注册成功应返回 Token 对")
	}
	if result.User.Role != model.RoleMember {
		t.Errorf("新用户角色应为 member，实际=%s", result.User.Role)
	}

	stored := userRepo.users[result.User.ID]
	if stored.PasswordHash == "password123" {
		t.Error("密码不应明文存储")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")); err != nil {
		t.Error("存储的密码哈希应能通过 bcrypt 校验")
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	userRepo.users["user-001"] = &model.User{
		UserID: "user-001",
		Email:  "zhangsan@example.com",
	}

	req := &dto.RegisterRequest{
		Name:     "张三",
		Email:    "zhangsan@example.com",
		Password: "password123",
	}

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("期望 ErrEmailTaken，实际: %v", err)
	}
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	userRepo.users["user-001"] = &model.User{
		UserID:       "user-001",
		Email:        "zhangsan@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleMember,
	}

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "zhangsan@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.User.ID != "user-001" {
		t.Errorf("期望 user-001，实际=%s", result.User.ID)
	}
	if result.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("expires_in 应为 Access Token 有效期秒数，实际=%d", result.ExpiresIn)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	userRepo.users["user-001"] = &model.User{
		UserID:       "user-001",
		Email:        "zhangsan@example.com",
		PasswordHash: string(hash),
	}

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "zhangsan@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("未注册邮箱应与密码错误返回同一错误，实际: %v", err)
	}
}

// ── RefreshToken 测试 ──

func TestAuthService_RefreshToken_Success(t *testing.T) {
	svc, userRepo, jwtMgr := setupTestAuthService()
	userRepo.users["user-001"] = &model.User{
		UserID: "user-001",
		Email:  "zhangsan@example.com",
		Role:   model.RoleMember,
	}

	refreshToken, err := jwtMgr.GenerateRefreshToken("user-001", model.RoleMember)
	if err != nil {
		t.Fatalf("生成 Refresh Token 失败: %v", err)
	}

	result, err := svc.RefreshToken(context.Background(), refreshToken)
	if err != nil {
		t.Fatalf("RefreshToken 应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("刷新成功应返回新的 Token 对")
	}
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc, userRepo, jwtMgr := setupTestAuthService()
	userRepo.users["user-001"] = &model.User{UserID: "user-001"}

	accessToken, _ := jwtMgr.GenerateAccessToken("user-001", model.RoleMember)

	_, err := svc.RefreshToken(context.Background(), accessToken)
	if !errors.Is(err, jwt.ErrTokenInvalid) {
		t.Errorf("Access Token 不应能用于刷新，实际: %v", err)
	}
}

// ── Logout / GetCurrentUser 测试 ──

func TestAuthService_Logout_WithoutRedis(t *testing.T) {
	svc, _, jwtMgr := setupTestAuthService()

	token, _ := jwtMgr.GenerateAccessToken("user-001", model.RoleMember)
	claims, _ := jwtMgr.ParseToken(token)

	if err := svc.Logout(context.Background(), claims); err != nil {
		t.Errorf("Redis 未启用时登出应降级成功: %v", err)
	}
}

func TestAuthService_GetCurrentUser_NotFound(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	_, err := svc.GetCurrentUser(context.Background(), "nonexistent")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}
