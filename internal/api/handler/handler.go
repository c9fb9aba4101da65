package handler

import "github.com/MRinuka/yeng-app/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Session    *SessionHandler
	Instructor *InstructorHandler
	Store      *StoreHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Session:    NewSessionHandler(svc.Session, svc.Export, svc.Calendar),
		Instructor: NewInstructorHandler(svc.Instructor),
		Store:      NewStoreHandler(svc.Store),
	}
}
