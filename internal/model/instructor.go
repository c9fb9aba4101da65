package model

// Instructor 教练表 — 对应 instructors
type Instructor struct {
	InstructorID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"instructor_id"`
	UserID       *string `gorm:"type:uuid;uniqueIndex"                          json:"user_id,omitempty"` // 关联登录账号，可为空
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Bio          string  `gorm:"type:varchar(500);not null;default:''"          json:"bio"`
	IsActive     bool    `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (Instructor) TableName() string { return "instructors" }

// InstructorAvailability 教练每周可约时间窗 — 对应 instructor_availabilities
// 只读输入：本服务从不写入该表，由教练侧后台维护
type InstructorAvailability struct {
	AvailabilityID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"availability_id"`
	InstructorID   string `gorm:"type:uuid;not null"                             json:"instructor_id"`
	DayOfWeek      int    `gorm:"type:smallint;not null"                         json:"day_of_week"` // 1=周一 … 7=周日
	StartTime      string `gorm:"type:varchar(5);not null"                       json:"start_time"`  // "HH:MM"
	EndTime        string `gorm:"type:varchar(5);not null"                       json:"end_time"`
	IsActive       bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

func (InstructorAvailability) TableName() string { return "instructor_availabilities" }
