//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MRinuka/yeng-app/internal/model"
	"github.com/MRinuka/yeng-app/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=yeng password=yeng_password dbname=yeng_app_test sslmode=disable TimeZone=Asia/Colombo"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.User{},
		&model.Instructor{},
		&model.InstructorAvailability{},
		&model.YogaSession{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// setupSessionData 创建一个用户、一个教练和一条预约，返回清理函数
func setupSessionData(t *testing.T, status model.SessionStatus) (*model.User, *model.YogaSession, func()) {
	t.Helper()
	ctx := context.Background()

	user := &model.User{
		Name:         "测试用户",
		Email:        fmt.Sprintf("user-%d@example.com", time.Now().UnixNano()),
		PasswordHash: "x",
		Role:         model.RoleMember,
	}
	if err := testDB.WithContext(ctx).Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	instructor := &model.Instructor{Name: "测试教练", IsActive: true}
	if err := testDB.WithContext(ctx).Create(instructor).Error; err != nil {
		t.Fatalf("创建教练失败: %v", err)
	}

	session := &model.YogaSession{
		UserID:       user.UserID,
		InstructorID: instructor.InstructorID,
		Location:     "测试场馆",
		SessionDate:  time.Now().AddDate(0, 0, 7),
		StartTime:    "09:00",
		Status:       status,
	}
	if err := testDB.WithContext(ctx).Create(session).Error; err != nil {
		t.Fatalf("创建预约失败: %v", err)
	}

	cleanup := func() {
		testDB.Where("session_id = ?", session.SessionID).Delete(&model.YogaSession{})
		testDB.Where("instructor_id = ?", instructor.InstructorID).Delete(&model.Instructor{})
		testDB.Where("user_id = ?", user.UserID).Delete(&model.User{})
	}
	return user, session, cleanup
}

// ═══════════════════════════════════════════════════════════
// SessionRepository 门禁查询
// ═══════════════════════════════════════════════════════════

func TestSessionRepo_GetOwnedInStatuses(t *testing.T) {
	repo := repository.NewSessionRepo(testDB)
	ctx := context.Background()

	user, session, cleanup := setupSessionData(t, model.SessionStatusPending)
	defer cleanup()

	// 本人 + pending 状态应命中
	got, err := repo.GetOwnedInStatuses(ctx, session.SessionID, user.UserID, model.MutableStatuses)
	if err != nil {
		t.Fatalf("本人 pending 预约应可查到: %v", err)
	}
	if got.SessionID != session.SessionID {
		t.Errorf("期望 %s，实际=%s", session.SessionID, got.SessionID)
	}

	// 非本人应返回 record not found（与不存在无差别）
	_, err = repo.GetOwnedInStatuses(ctx, session.SessionID, "00000000-0000-0000-0000-000000000000", model.MutableStatuses)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("非本人期望 ErrRecordNotFound，实际: %v", err)
	}

	// 状态不在集合内同样返回 record not found
	_, err = repo.GetOwnedInStatuses(ctx, session.SessionID, user.UserID, []model.SessionStatus{model.SessionStatusDeclined})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("状态不符期望 ErrRecordNotFound，实际: %v", err)
	}
}

func TestSessionRepo_UpdateStatusIf(t *testing.T) {
	repo := repository.NewSessionRepo(testDB)
	ctx := context.Background()

	_, session, cleanup := setupSessionData(t, model.SessionStatusDeclined)
	defer cleanup()

	affected, err := repo.UpdateStatusIf(ctx, session.SessionID, model.SessionStatusDeclined, model.SessionStatusCleared)
	if err != nil {
		t.Fatalf("UpdateStatusIf 失败: %v", err)
	}
	if affected != 1 {
		t.Errorf("期望影响 1 行，实际=%d", affected)
	}

	// 状态已变化，重复清除应影响 0 行
	affected, err = repo.UpdateStatusIf(ctx, session.SessionID, model.SessionStatusDeclined, model.SessionStatusCleared)
	if err != nil {
		t.Fatalf("UpdateStatusIf 失败: %v", err)
	}
	if affected != 0 {
		t.Errorf("前置条件不满足时期望影响 0 行，实际=%d", affected)
	}
}
