package dto

// ── 预约会话模块 DTO ──

// CreateSessionRequest 创建预约请求
type CreateSessionRequest struct {
	InstructorID string `json:"instructor_id" binding:"required,uuid"`
	Location     string `json:"location"      binding:"required,max=255"`
	Date         string `json:"date"          binding:"required"` // "2006-01-02"
	StartTime    string `json:"start_time"    binding:"required"` // "HH:MM"
}

// UpdateSessionRequest 修改预约请求
// 修改会使已接受的预约重新回到 pending，需教练再次确认
type UpdateSessionRequest struct {
	Location  string `json:"location"   binding:"required,max=255"`
	Date      string `json:"date"       binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
}

// SessionListRequest 预约记录查询参数
type SessionListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=pending accepted declined cancelled cleared"`
}

// ClearSessionsRequest 批量清除请求
type ClearSessionsRequest struct {
	Status string `json:"status" binding:"required,oneof=declined cancelled"`
}

// ClearSessionsResponse 批量清除结果
// 逐条更新不具备跨记录原子性：Cleared 报告实际完成数
type ClearSessionsResponse struct {
	Cleared int    `json:"cleared"`
	Message string `json:"message,omitempty"`
}

// SessionResponse 预约会话响应
type SessionResponse struct {
	ID           string           `json:"id"`
	InstructorID string           `json:"instructor_id"`
	Instructor   *InstructorBrief `json:"instructor,omitempty"`
	Location     string           `json:"location"`
	Date         string           `json:"date"`
	StartTime    string           `json:"start_time"`
	Status       string           `json:"status"`
	CreatedAt    string           `json:"created_at"`
	UpdatedAt    string           `json:"updated_at"`
}

// TimeWindow 可约时间窗
type TimeWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// EditSessionResponse 编辑视图响应：会话详情 + 合并后的可选时间
// 会话当前预约的时间一定出现在 AvailableTimes 中（必要时补一个合成窗）
type EditSessionResponse struct {
	Session        SessionResponse `json:"session"`
	InstructorName string          `json:"instructor_name"`
	AvailableTimes []TimeWindow    `json:"available_times"`
}

// InstructorBrief 教练简要信息（嵌入会话响应）
type InstructorBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
