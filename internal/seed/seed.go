// Package seed は初回起動時に委員会データと管理者アカウントを投入します。
package seed

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"

	"committee-tracker/backend/internal/repositories"
)

// デフォルトの管理者アカウント
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "sbs2569"
)

// Run は committees テーブルが空の場合に限り、固定の委員会一覧と管理者を1つのトランザクションで投入します。
// 既にデータがある場合は何もせず false を返します。
func Run(ctx context.Context, db *sqlx.DB, logger *log.Logger) (bool, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM committees"); err != nil {
		return false, fmt.Errorf("counting committees: %w", err)
	}
	if count > 0 {
		logger.WithField("committees", count).Debug("database already seeded")
		return false, nil
	}

	for _, c := range Committees() {
		if err := repositories.InsertCommittee(ctx, tx, c); err != nil {
			return false, fmt.Errorf("seeding committees: %w", err)
		}
	}

	// 既存の管理者は上書きしない
	var admins int
	if err := tx.GetContext(ctx, &admins,
		"SELECT COUNT(*) FROM admin_users WHERE username = ?", DefaultAdminUsername); err != nil {
		return false, fmt.Errorf("checking admin account: %w", err)
	}
	if admins == 0 {
		if _, err := repositories.CreateTx(ctx, tx, DefaultAdminUsername, DefaultAdminPassword); err != nil {
			return false, fmt.Errorf("seeding admin account: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing seed: %w", err)
	}
	logger.WithField("committees", len(Committees())).Info("seeded initial data")
	return true, nil
}
