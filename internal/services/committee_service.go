package services

import (
	"context"

	log "github.com/sirupsen/logrus"

	"committee-tracker/backend/internal/models"
	"committee-tracker/backend/internal/repositories"
)

// CommitteeService は委員会関連のビジネスロジックを扱います。
type CommitteeService struct {
	committeeRepo *repositories.CommitteeRepository
	logger        *log.Logger
}

// NewCommitteeService は新しいCommitteeServiceを作成します。
func NewCommitteeService(committeeRepo *repositories.CommitteeRepository, logger *log.Logger) *CommitteeService {
	return &CommitteeService{committeeRepo: committeeRepo, logger: logger}
}

// ListCommittees はタスク付きの全委員会を取得します。
func (s *CommitteeService) ListCommittees(ctx context.Context) ([]models.Committee, error) {
	return s.committeeRepo.FindAll(ctx)
}

// GetCommittee は指定IDの委員会を取得します。
func (s *CommitteeService) GetCommittee(ctx context.Context, id int) (*models.Committee, error) {
	return s.committeeRepo.FindByID(ctx, id)
}

// GetSummary はダッシュボード用の集計を返します。
func (s *CommitteeService) GetSummary(ctx context.Context) (*models.Summary, error) {
	return s.committeeRepo.Summary(ctx)
}

// UpdateCommittee は委員会を更新します。存在チェックは行いません。
func (s *CommitteeService) UpdateCommittee(ctx context.Context, id int, u models.CommitteeUpdate) error {
	if err := s.committeeRepo.Update(ctx, id, u); err != nil {
		return err
	}
	s.logger.WithFields(log.Fields{
		"committee_id": id,
		"status":       u.Status,
		"percent":      u.Percent,
	}).Info("committee updated")
	return nil
}

// ReplaceTasks は委員会のタスク一覧を置き換えます。
func (s *CommitteeService) ReplaceTasks(ctx context.Context, committeeID int, tasks []models.TaskInput) error {
	if err := s.committeeRepo.ReplaceTasks(ctx, committeeID, tasks); err != nil {
		return err
	}
	s.logger.WithFields(log.Fields{
		"committee_id": committeeID,
		"tasks":        len(tasks),
	}).Info("committee tasks replaced")
	return nil
}

// DeleteCommittee は委員会とそのタスクを削除します。
func (s *CommitteeService) DeleteCommittee(ctx context.Context, id int) error {
	if err := s.committeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("committee_id", id).Warn("committee deleted")
	return nil
}
