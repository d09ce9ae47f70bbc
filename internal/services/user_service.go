package services

import (
	"context"

	log "github.com/sirupsen/logrus"

	"committee-tracker/backend/internal/models"
	"committee-tracker/backend/internal/repositories"
)

// AdminService は管理者の認証とパスワード変更を扱います。
type AdminService struct {
	adminRepo *repositories.AdminRepository
	logger    *log.Logger
}

// NewAdminService は新しいAdminServiceを作成します。
func NewAdminService(adminRepo *repositories.AdminRepository, logger *log.Logger) *AdminService {
	return &AdminService{adminRepo: adminRepo, logger: logger}
}

// Authenticate はユーザー名とパスワードを検証し、一致した管理者を返します。
// 一致しない場合は repositories.ErrInvalidCredentials を返します。
func (s *AdminService) Authenticate(ctx context.Context, username, password string) (*models.AdminUser, error) {
	return s.adminRepo.Authenticate(ctx, username, password)
}

// Login はログイン画面からの認証を行います。
func (s *AdminService) Login(ctx context.Context, req models.LoginRequest) (*models.AdminUser, error) {
	user, err := s.adminRepo.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		s.logger.WithField("username", req.Username).Warn("login failed")
		return nil, err
	}
	s.logger.WithField("username", user.Username).Info("login succeeded")
	return user, nil
}

// ChangePassword は管理者のパスワードを変更します。存在しないユーザー名の場合は何もしません。
func (s *AdminService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	if err := s.adminRepo.SetPassword(ctx, req.Username, req.NewPassword); err != nil {
		return err
	}
	s.logger.WithField("username", req.Username).Info("admin password changed")
	return nil
}
