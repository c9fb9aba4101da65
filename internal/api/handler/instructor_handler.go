package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MRinuka/yeng-app/internal/dto"
	"github.com/MRinuka/yeng-app/internal/service"
	"github.com/MRinuka/yeng-app/pkg/response"
)

// InstructorHandler 教练模块 HTTP 处理器
type InstructorHandler struct {
	instructorSvc service.InstructorService
}

// NewInstructorHandler 创建 InstructorHandler
func NewInstructorHandler(instructorSvc service.InstructorService) *InstructorHandler {
	return &InstructorHandler{instructorSvc: instructorSvc}
}

// ListInstructors 教练列表
// GET /api/v1/instructors
func (h *InstructorHandler) ListInstructors(c *gin.Context) {
	instructors, err := h.instructorSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": instructors})
}

// GetInstructor 教练详情
// GET /api/v1/instructors/:id
func (h *InstructorHandler) GetInstructor(c *gin.Context) {
	instructor, err := h.instructorSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleInstructorError(c, err)
		return
	}
	response.OK(c, instructor)
}

// GetAvailability 教练每周可约时间窗
// GET /api/v1/instructors/:id/availability
func (h *InstructorHandler) GetAvailability(c *gin.Context) {
	windows, err := h.instructorSvc.Availability(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleInstructorError(c, err)
		return
	}
	response.OK(c, gin.H{"list": windows})
}

// ListAssignedSessions 教练查询分配给自己的预约
// GET /api/v1/instructor/sessions
func (h *InstructorHandler) ListAssignedSessions(c *gin.Context) {
	var req dto.SessionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	sessions, err := h.instructorSvc.ListSessions(c.Request.Context(), userID, req.Status)
	if err != nil {
		h.handleInstructorError(c, err)
		return
	}
	response.OK(c, gin.H{"list": sessions})
}

// RespondSession 教练接受/拒绝预约
// POST /api/v1/instructor/sessions/:id/respond
func (h *InstructorHandler) RespondSession(c *gin.Context) {
	var req dto.RespondSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.instructorSvc.Respond(c.Request.Context(), userID, c.Param("id"), req.Action); err != nil {
		h.handleInstructorError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleInstructorError 统一处理教练模块业务错误
func (h *InstructorHandler) handleInstructorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInstructorNotFound):
		response.NotFound(c, 13001, "教练不存在")
	case errors.Is(err, service.ErrNotInstructor):
		response.Forbidden(c, 10003, "无权访问")
	case errors.Is(err, service.ErrSessionNotRespondable):
		response.NotFound(c, 13002, "预约不存在或已处理")
	default:
		response.InternalError(c)
	}
}
