package dto

// ── 教练模块 DTO ──

// InstructorResponse 教练信息响应
type InstructorResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	IsActive bool   `json:"is_active"`
}

// AvailabilityResponse 教练可约时间窗响应
type AvailabilityResponse struct {
	DayOfWeek int    `json:"day_of_week"` // 1=周一 … 7=周日
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// RespondSessionRequest 教练处理预约请求
type RespondSessionRequest struct {
	Action string `json:"action" binding:"required,oneof=accept decline"`
}
