package service

import (
	"go.uber.org/zap"

	"github.com/MRinuka/yeng-app/config"
	"github.com/MRinuka/yeng-app/internal/repository"
	"github.com/MRinuka/yeng-app/pkg/jwt"
	"github.com/MRinuka/yeng-app/pkg/redis"
)

// Service 所有业务 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Session    SessionService
	Instructor InstructorService
	Store      StoreService
	Export     ExportService
	Calendar   CalendarService
}

// NewService 创建 Service 聚合
// rdb 允许为 nil（Redis 不可用时登出降级为仅客户端丢弃 Token）
func NewService(repo *repository.Repository, rdb *redis.Client, jwtMgr *jwt.Manager, cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{
		Auth:       NewAuthService(repo.User, rdb, jwtMgr, cfg, logger),
		Session:    NewSessionService(repo.Session, repo.Instructor, repo.Availability, logger),
		Instructor: NewInstructorService(repo.Instructor, repo.Availability, repo.Session, logger),
		Store:      NewStoreService(repo.Product, repo.Cart, repo.Order, logger),
		Export:     NewExportService(repo.Session, logger),
		Calendar:   NewCalendarService(repo.Session, logger),
	}
}
