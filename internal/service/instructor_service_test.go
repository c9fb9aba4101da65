package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/MRinuka/yeng-app/internal/model"
)

// ── 测试辅助 ──

func setupTestInstructorService() (InstructorService, *mockInstructorRepo, *mockAvailabilityRepo, *mockSessionRepo) {
	instructorRepo := newMockInstructorRepo()
	availabilityRepo := newMockAvailabilityRepo()
	sessionRepo := newMockSessionRepo()
	svc := NewInstructorService(instructorRepo, availabilityRepo, sessionRepo, zap.NewNop())
	return svc, instructorRepo, availabilityRepo, sessionRepo
}

func seedInstructorAccount(repo *mockInstructorRepo, instructorID, userID, name string) {
	uid := userID
	repo.instructors[instructorID] = &model.Instructor{
		InstructorID: instructorID,
		UserID:       &uid,
		Name:         name,
		IsActive:     true,
	}
}

// ── List / Get 测试 ──

func TestInstructorService_List_OnlyActive(t *testing.T) {
	svc, instructorRepo, _, _ := setupTestInstructorService()
	instructorRepo.instructors["inst-001"] = &model.Instructor{InstructorID: "inst-001", Name: "李教练", IsActive: true}
	instructorRepo.instructors["inst-002"] = &model.Instructor{InstructorID: "inst-002", Name: "王教练", IsActive: false}

	result, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 1 || result[0].Name != "李教练" {
		t.Errorf("列表应只含在职教练，实际: %+v", result)
	}
}

func TestInstructorService_Get_NotFound(t *testing.T) {
	svc, _, _, _ := setupTestInstructorService()

	_, err := svc.Get(context.Background(), "nonexistent")
	if !errors.Is(err, ErrInstructorNotFound) {
		t.Errorf("期望 ErrInstructorNotFound，实际: %v", err)
	}
}

// ── Availability 测试 ──

func TestInstructorService_Availability(t *testing.T) {
	svc, instructorRepo, availabilityRepo, _ := setupTestInstructorService()
	instructorRepo.instructors["inst-001"] = &model.Instructor{InstructorID: "inst-001", Name: "李教练", IsActive: true}
	availabilityRepo.windows = []model.InstructorAvailability{
		{InstructorID: "inst-001", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:30", IsActive: true},
		{InstructorID: "inst-001", DayOfWeek: 3, StartTime: "14:00", EndTime: "15:30", IsActive: true},
		{InstructorID: "inst-002", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:30", IsActive: true},
	}

	result, err := svc.Availability(context.Background(), "inst-001")
	if err != nil {
		t.Fatalf("Availability 应成功: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("期望 2 个时间窗，实际 %d 个", len(result))
	}
}

// ── Respond 测试 ──

func TestInstructorService_Respond_Accept(t *testing.T) {
	svc, instructorRepo, _, sessionRepo := setupTestInstructorService()
	seedInstructorAccount(instructorRepo, "inst-001", "iuser-001", "李教练")
	seedSession(sessionRepo, "sess-001", "user-001", "inst-001", model.SessionStatusPending)

	if err := svc.Respond(context.Background(), "iuser-001", "sess-001", "accept"); err != nil {
		t.Fatalf("Respond 应成功: %v", err)
	}
	if sessionRepo.sessions["sess-001"].Status != model.SessionStatusAccepted {
		t.Errorf("期望状态 accepted，实际=%s", sessionRepo.sessions["sess-001"].Status)
	}
}

func TestInstructorService_Respond_Decline(t *testing.T) {
	svc, instructorRepo, _, sessionRepo := setupTestInstructorService()
	seedInstructorAccount(instructorRepo, "inst-001", "iuser-001", "李教练")
	seedSession(sessionRepo, "sess-001", "user-001", "inst-001", model.SessionStatusPending)

	if err := svc.Respond(context.Background(), "iuser-001", "sess-001", "decline"); err != nil {
		t.Fatalf("Respond 应成功: %v", err)
	}
	if sessionRepo.sessions["sess-001"].Status != model.SessionStatusDeclined {
		t.Errorf("期望状态 declined，实际=%s", sessionRepo.sessions["sess-001"].Status)
	}
}

func TestInstructorService_Respond_NotInstructor(t *testing.T) {
	svc, _, _, sessionRepo := setupTestInstructorService()
	seedSession(sessionRepo, "sess-001", "user-001", "inst-001", model.SessionStatusPending)

	err := svc.Respond(context.Background(), "plain-user", "sess-001", "accept")
	if !errors.Is(err, ErrNotInstructor) {
		t.Errorf("期望 ErrNotInstructor，实际: %v", err)
	}
}

func TestInstructorService_Respond_OtherInstructorsSession(t *testing.T) {
	svc, instructorRepo, _, sessionRepo := setupTestInstructorService()
	seedInstructorAccount(instructorRepo, "inst-001", "iuser-001", "李教练")
	seedSession(sessionRepo, "sess-001", "user-001", "inst-002", model.SessionStatusPending)

	err := svc.Respond(context.Background(), "iuser-001", "sess-001", "accept")
	if !errors.Is(err, ErrSessionNotRespondable) {
		t.Errorf("他人名下预约应返回 ErrSessionNotRespondable，实际: %v", err)
	}
}

func TestInstructorService_Respond_AlreadyHandled(t *testing.T) {
	svc, instructorRepo, _, sessionRepo := setupTestInstructorService()
	seedInstructorAccount(instructorRepo, "inst-001", "iuser-001", "李教练")
	seedSession(sessionRepo, "sess-001", "user-001", "inst-001", model.SessionStatusAccepted)

	err := svc.Respond(context.Background(), "iuser-001", "sess-001", "decline")
	if !errors.Is(err, ErrSessionNotRespondable) {
		t.Errorf("已处理的预约不应可再次处理，实际: %v", err)
	}
}

// ── ListSessions 测试 ──

func TestInstructorService_ListSessions_FilterByStatus(t *testing.T) {
	svc, instructorRepo, _, sessionRepo := setupTestInstructorService()
	seedInstructorAccount(instructorRepo, "inst-001", "iuser-001", "李教练")
	seedSession(sessionRepo, "sess-001", "user-001", "inst-001", model.SessionStatusPending)
	seedSession(sessionRepo, "sess-002", "user-002", "inst-001", model.SessionStatusAccepted)
	seedSession(sessionRepo, "sess-003", "user-003", "inst-002", model.SessionStatusPending)

	result, err := svc.ListSessions(context.Background(), "iuser-001", "pending")
	if err != nil {
		t.Fatalf("ListSessions 应成功: %v", err)
	}
	if len(result) != 1 || result[0].ID != "sess-001" {
		t.Errorf("期望仅返回本教练的 pending 预约，实际: %+v", result)
	}
}
